package postgres

import (
	"context"

	"github.com/nclex-prep/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

type gormRepository struct {
	db     *gorm.DB
	quiz   repositories.QuizRepository
	course repositories.CourseRepository
}

// NewRepository wires the postgres-backed entity store.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &gormRepository{
		db:     db,
		quiz:   NewQuizPostgreSQL(db),
		course: NewCoursePostgreSQL(db),
	}
}

func (r *gormRepository) Quiz() repositories.QuizRepository {
	return r.quiz
}

func (r *gormRepository) Course() repositories.CourseRepository {
	return r.course
}

func (r *gormRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *gormRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// applyPaginationAndSort applies shared pagination and ordering rules.
func applyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int) *gorm.DB {
	if sortBy == "" {
		sortBy = "created_at"
	}
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	query = query.Order(sortBy + " " + sortOrder)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}
