package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nclex-prep/quiz-service/internal/models"
	"github.com/nclex-prep/quiz-service/internal/repositories"
)

type courseService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewCourseService(repo repositories.Repository, logger *slog.Logger) CourseService {
	return &courseService{
		repo:   repo,
		logger: logger,
	}
}

func (s *courseService) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	course, err := s.repo.Course().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

func (s *courseService) List(ctx context.Context, filters repositories.CourseFilters) (*CourseListResponse, error) {
	courses, total, err := s.repo.Course().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return &CourseListResponse{
		Courses: courses,
		Total:   total,
		Limit:   filters.Limit,
		Offset:  filters.Offset,
	}, nil
}

func (s *courseService) GetModules(ctx context.Context, courseID uint) ([]*models.Module, error) {
	if _, err := s.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	modules, err := s.repo.Course().GetModules(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course modules: %w", err)
	}
	return modules, nil
}

func (s *courseService) GetVideos(ctx context.Context, courseID uint) ([]*models.Video, error) {
	if _, err := s.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	videos, err := s.repo.Course().GetVideos(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course videos: %w", err)
	}
	return videos, nil
}
