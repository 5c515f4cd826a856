package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository aggregates the entity-store interfaces. The store is a plain
// last-write-wins document store: no optimistic locking, no cross-entity
// transactions beyond what a single Save needs.
type Repository interface {
	Quiz() QuizRepository
	Course() CourseRepository

	Ping(ctx context.Context) error
	Close() error
}

// IsNotFoundError reports whether err is the store's record-missing error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
