package postgres

import (
	"context"

	"github.com/nclex-prep/quiz-service/internal/models"
	"github.com/nclex-prep/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

type CoursePostgreSQL struct {
	db *gorm.DB
}

func NewCoursePostgreSQL(db *gorm.DB) repositories.CourseRepository {
	return &CoursePostgreSQL{db: db}
}

// GetByID retrieves a course by ID
func (c *CoursePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	err := c.db.WithContext(ctx).First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// List retrieves courses with pagination
func (c *CoursePostgreSQL) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	query := c.db.WithContext(ctx).Model(&models.Course{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	var courses []*models.Course
	if err := query.Find(&courses).Error; err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

// GetModules retrieves the modules defined for a course in display order
func (c *CoursePostgreSQL) GetModules(ctx context.Context, courseID uint) ([]*models.Module, error) {
	var modules []*models.Module
	err := c.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("sort_order ASC").
		Find(&modules).Error
	return modules, err
}

// GetVideos retrieves the videos belonging to a course
func (c *CoursePostgreSQL) GetVideos(ctx context.Context, courseID uint) ([]*models.Video, error) {
	var videos []*models.Video
	err := c.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("created_at ASC").
		Find(&videos).Error
	return videos, err
}
