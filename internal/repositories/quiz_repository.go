package repositories

import (
	"context"

	"github.com/nclex-prep/quiz-service/internal/models"
)

// QuizRepository interface for quiz-specific operations
type QuizRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, quiz *models.Quiz) error
	GetByID(ctx context.Context, id uint) (*models.Quiz, error)
	Update(ctx context.Context, quiz *models.Quiz) error
	Delete(ctx context.Context, id uint) error // Soft delete

	// Query operations
	List(ctx context.Context, filters QuizFilters) ([]*models.Quiz, int64, error)
	GetByCourse(ctx context.Context, courseID uint, filters QuizFilters) ([]*models.Quiz, int64, error)
	Search(ctx context.Context, query string, filters QuizFilters) ([]*models.Quiz, int64, error)

	// Status management
	UpdateStatus(ctx context.Context, id uint, status models.QuizStatus) error

	// Validation helpers
	ExistsByTitle(ctx context.Context, title string, courseID uint, excludeID *uint) (bool, error)
	CountByCourse(ctx context.Context, courseID uint) (int64, error)

	// Statistics
	GetCourseStats(ctx context.Context, courseID uint) (*QuizStats, error)
}
