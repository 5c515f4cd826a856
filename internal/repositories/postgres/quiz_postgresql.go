package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/nclex-prep/quiz-service/internal/models"
	"github.com/nclex-prep/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

type QuizPostgreSQL struct {
	db *gorm.DB
}

func NewQuizPostgreSQL(db *gorm.DB) repositories.QuizRepository {
	return &QuizPostgreSQL{db: db}
}

// Create persists a new quiz document
func (q *QuizPostgreSQL) Create(ctx context.Context, quiz *models.Quiz) error {
	return q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Check title uniqueness within the course
		exists, err := q.ExistsByTitle(ctx, quiz.Title, quiz.CourseID, nil)
		if err != nil {
			return fmt.Errorf("failed to check title uniqueness: %w", err)
		}
		if exists {
			return fmt.Errorf("quiz with title '%s' already exists in this course", quiz.Title)
		}

		quiz.Status = models.QuizDraft
		if err := tx.Create(quiz).Error; err != nil {
			return fmt.Errorf("failed to create quiz: %w", err)
		}

		return nil
	})
}

// GetByID retrieves a quiz by ID
func (q *QuizPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := q.db.WithContext(ctx).First(&quiz, id).Error
	if err != nil {
		return nil, err
	}

	quiz.ComputeDerived()
	return &quiz, nil
}

// Update overwrites the whole quiz document: last write wins, there is no
// version check.
func (q *QuizPostgreSQL) Update(ctx context.Context, quiz *models.Quiz) error {
	return q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Quiz
		if err := tx.First(&current, quiz.ID).Error; err != nil {
			return fmt.Errorf("quiz not found: %w", err)
		}

		if quiz.Title != current.Title {
			exists, err := q.ExistsByTitle(ctx, quiz.Title, quiz.CourseID, &quiz.ID)
			if err != nil {
				return fmt.Errorf("failed to check title uniqueness: %w", err)
			}
			if exists {
				return fmt.Errorf("quiz with title '%s' already exists in this course", quiz.Title)
			}
		}

		quiz.UpdatedAt = time.Now()
		if err := tx.Save(quiz).Error; err != nil {
			return fmt.Errorf("failed to update quiz: %w", err)
		}

		return nil
	})
}

// Delete soft deletes a quiz
func (q *QuizPostgreSQL) Delete(ctx context.Context, id uint) error {
	return q.db.WithContext(ctx).Delete(&models.Quiz{}, id).Error
}

// List retrieves quizzes with filters and pagination
func (q *QuizPostgreSQL) List(ctx context.Context, filters repositories.QuizFilters) ([]*models.Quiz, int64, error) {
	query := q.db.WithContext(ctx).Model(&models.Quiz{})
	query = q.applyFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	var quizzes []*models.Quiz
	if err := query.Find(&quizzes).Error; err != nil {
		return nil, 0, err
	}

	for _, quiz := range quizzes {
		quiz.ComputeDerived()
	}

	return quizzes, total, nil
}

// GetByCourse retrieves quizzes attached to a course
func (q *QuizPostgreSQL) GetByCourse(ctx context.Context, courseID uint, filters repositories.QuizFilters) ([]*models.Quiz, int64, error) {
	filters.CourseID = &courseID
	return q.List(ctx, filters)
}

// Search performs a title/description search on quizzes
func (q *QuizPostgreSQL) Search(ctx context.Context, query string, filters repositories.QuizFilters) ([]*models.Quiz, int64, error) {
	db := q.db.WithContext(ctx).Model(&models.Quiz{})

	if query != "" {
		pattern := fmt.Sprintf("%%%s%%", query)
		db = db.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	db = q.applyFilters(db, filters)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db = applyPaginationAndSort(db, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	var quizzes []*models.Quiz
	if err := db.Find(&quizzes).Error; err != nil {
		return nil, 0, err
	}

	for _, quiz := range quizzes {
		quiz.ComputeDerived()
	}

	return quizzes, total, nil
}

// UpdateStatus updates the status of a quiz
func (q *QuizPostgreSQL) UpdateStatus(ctx context.Context, id uint, status models.QuizStatus) error {
	return q.db.WithContext(ctx).
		Model(&models.Quiz{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

// ExistsByTitle checks if a quiz with the same title exists in a course
func (q *QuizPostgreSQL) ExistsByTitle(ctx context.Context, title string, courseID uint, excludeID *uint) (bool, error) {
	query := q.db.WithContext(ctx).
		Model(&models.Quiz{}).
		Where("title = ? AND course_id = ?", title, courseID)

	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// CountByCourse counts quizzes attached to a course
func (q *QuizPostgreSQL) CountByCourse(ctx context.Context, courseID uint) (int64, error) {
	var count int64
	err := q.db.WithContext(ctx).
		Model(&models.Quiz{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	return count, err
}

// GetCourseStats aggregates quiz statistics for a course. Question counts
// and points live inside the jsonb document, so the rows are loaded and
// derived fields computed in process.
func (q *QuizPostgreSQL) GetCourseStats(ctx context.Context, courseID uint) (*repositories.QuizStats, error) {
	total, err := q.CountByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to count course quizzes: %w", err)
	}

	var quizzes []models.Quiz
	if err := q.db.WithContext(ctx).Where("course_id = ?", courseID).Find(&quizzes).Error; err != nil {
		return nil, fmt.Errorf("failed to load course quizzes: %w", err)
	}

	stats := &repositories.QuizStats{QuizzesInCourse: int(total)}
	for i := range quizzes {
		quizzes[i].ComputeDerived()
		stats.QuestionCount += quizzes[i].QuestionCount
		stats.TotalPoints += quizzes[i].TotalPoints
		if quizzes[i].RequiresVideoCompletion {
			stats.GatedQuizzes++
		}
		switch quizzes[i].Status {
		case models.QuizPublished:
			stats.PublishedCount++
		case models.QuizDraft:
			stats.DraftCount++
		}
	}
	return stats, nil
}

// applyFilters applies common filters to a query
func (q *QuizPostgreSQL) applyFilters(query *gorm.DB, filters repositories.QuizFilters) *gorm.DB {
	if filters.CourseID != nil {
		query = query.Where("course_id = ?", *filters.CourseID)
	}
	if filters.ModuleID != nil {
		query = query.Where("module_id = ?", *filters.ModuleID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.CreatedBy != nil {
		query = query.Where("created_by = ?", *filters.CreatedBy)
	}
	return query
}
