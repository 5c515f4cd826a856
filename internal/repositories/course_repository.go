package repositories

import (
	"context"

	"github.com/nclex-prep/quiz-service/internal/models"
)

// CourseRepository supplies the catalog facts the quiz save path depends on:
// which modules a course defines and which videos belong to it.
type CourseRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	List(ctx context.Context, filters CourseFilters) ([]*models.Course, int64, error)

	GetModules(ctx context.Context, courseID uint) ([]*models.Module, error)
	GetVideos(ctx context.Context, courseID uint) ([]*models.Video, error)
}
