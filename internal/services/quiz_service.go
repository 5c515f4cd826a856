package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nclex-prep/quiz-service/internal/cache"
	"github.com/nclex-prep/quiz-service/internal/events"
	"github.com/nclex-prep/quiz-service/internal/models"
	"github.com/nclex-prep/quiz-service/internal/repositories"
	"github.com/nclex-prep/quiz-service/internal/validator"
)

const (
	quizCacheTTL     = 60 * time.Second
	quizCacheKeyFmt  = "quiz:%d"
	quizListCachePat = "quiz:list:*"
)

type quizService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	publisher events.EventPublisher
	logger    *slog.Logger
	opLogger  *ServiceLogger
	validator *validator.Validator
}

func NewQuizService(repo repositories.Repository, cacheService cache.CacheService, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) QuizService {
	return &quizService{
		repo:      repo,
		cache:     cacheService,
		publisher: publisher,
		logger:    logger,
		opLogger:  NewServiceLogger(logger, LogConfig{Service: "quiz-service", Component: "quiz"}),
		validator: v,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *quizService) Create(ctx context.Context, req *SaveQuizRequest, creatorID uint) (*QuizResponse, error) {
	op := s.opLogger.WithOperation(ctx, "create", creatorID)
	s.logger.Info("Creating quiz", "creator_id", creatorID, "title", req.Title, "course_id", req.CourseID)

	quiz := s.buildQuiz(req)
	quiz.Status = models.QuizDraft
	quiz.CreatedBy = creatorID

	if err := s.validateAndNormalize(ctx, quiz, req); err != nil {
		op.LogResult(0, "quiz", err)
		return nil, err
	}

	exists, err := s.repo.Quiz().ExistsByTitle(ctx, quiz.Title, quiz.CourseID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check quiz title: %w", err)
	}
	if exists {
		op.LogResult(0, "quiz", ErrQuizDuplicateTitle)
		return nil, ErrQuizDuplicateTitle
	}

	if err := s.repo.Quiz().Create(ctx, quiz); err != nil {
		op.LogResult(0, "quiz", err)
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	s.invalidateCache(ctx, quiz.ID)

	quiz.ComputeDerived()
	s.publishEvent(ctx, events.NewQuizCreatedEvent(quiz.ID, quiz.Title, quiz.CourseID, quiz.ModuleID, quiz.QuestionCount, quiz.TotalPoints, creatorID))

	op.LogResult(quiz.ID, "quiz", nil)
	return buildQuizResponse(quiz), nil
}

func (s *quizService) Update(ctx context.Context, id uint, req *SaveQuizRequest, userID uint) (*QuizResponse, error) {
	op := s.opLogger.WithOperation(ctx, "update", userID)
	s.logger.Info("Updating quiz", "quiz_id", id, "user_id", userID)

	existing, err := s.repo.Quiz().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			op.LogResult(id, "quiz", ErrQuizNotFound)
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	// The editor submits the whole document; the update replaces it. The
	// latest save wins regardless of what the row held in between.
	quiz := s.buildQuiz(req)
	quiz.ID = existing.ID
	quiz.Status = existing.Status
	quiz.CreatedBy = existing.CreatedBy
	quiz.CreatedAt = existing.CreatedAt

	if err := s.validateAndNormalize(ctx, quiz, req); err != nil {
		op.LogResult(id, "quiz", err)
		return nil, err
	}

	exists, err := s.repo.Quiz().ExistsByTitle(ctx, quiz.Title, quiz.CourseID, &id)
	if err != nil {
		return nil, fmt.Errorf("failed to check quiz title: %w", err)
	}
	if exists {
		op.LogResult(id, "quiz", ErrQuizDuplicateTitle)
		return nil, ErrQuizDuplicateTitle
	}

	if err := s.repo.Quiz().Update(ctx, quiz); err != nil {
		op.LogResult(id, "quiz", err)
		return nil, fmt.Errorf("failed to update quiz: %w", err)
	}

	s.invalidateCache(ctx, id)

	quiz.ComputeDerived()
	s.publishEvent(ctx, events.NewQuizUpdatedEvent(quiz.ID, quiz.Title, quiz.CourseID, quiz.QuestionCount, quiz.TotalPoints, userID))

	op.LogResult(id, "quiz", nil)
	return buildQuizResponse(quiz), nil
}

func (s *quizService) GetByID(ctx context.Context, id uint) (*QuizResponse, error) {
	cacheKey := fmt.Sprintf(quizCacheKeyFmt, id)

	var cached QuizResponse
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	quiz, err := s.repo.Quiz().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	response := buildQuizResponse(quiz)
	if err := s.cache.Set(ctx, cacheKey, response, quizCacheTTL); err != nil {
		s.logger.Warn("Failed to cache quiz", "quiz_id", id, "error", err)
	}

	return response, nil
}

func (s *quizService) Delete(ctx context.Context, id uint, userID uint) error {
	op := s.opLogger.WithOperation(ctx, "delete", userID)
	s.logger.Info("Deleting quiz", "quiz_id", id, "user_id", userID)

	quiz, err := s.repo.Quiz().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			op.LogResult(id, "quiz", ErrQuizNotFound)
			return ErrQuizNotFound
		}
		return fmt.Errorf("failed to get quiz: %w", err)
	}

	if err := s.repo.Quiz().Delete(ctx, id); err != nil {
		op.LogResult(id, "quiz", err)
		return fmt.Errorf("failed to delete quiz: %w", err)
	}

	s.invalidateCache(ctx, id)
	s.publishEvent(ctx, events.NewQuizDeletedEvent(quiz.ID, quiz.Title, quiz.CourseID, userID))

	op.LogResult(id, "quiz", nil)
	return nil
}

// ===== LIST AND SEARCH OPERATIONS =====

func (s *quizService) List(ctx context.Context, filters repositories.QuizFilters) (*QuizListResponse, error) {
	cacheKey := listCacheKey(filters)

	var cached QuizListResponse
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	quizzes, total, err := s.repo.Quiz().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	response := buildQuizListResponse(quizzes, total, filters)
	if err := s.cache.Set(ctx, cacheKey, response, quizCacheTTL); err != nil {
		s.logger.Warn("Failed to cache quiz list", "error", err)
	}

	return response, nil
}

func listCacheKey(filters repositories.QuizFilters) string {
	courseID, moduleID, createdBy := uint(0), uint(0), uint(0)
	status := ""
	if filters.CourseID != nil {
		courseID = *filters.CourseID
	}
	if filters.ModuleID != nil {
		moduleID = *filters.ModuleID
	}
	if filters.CreatedBy != nil {
		createdBy = *filters.CreatedBy
	}
	if filters.Status != nil {
		status = string(*filters.Status)
	}
	return fmt.Sprintf("quiz:list:%d:%d:%d:%s:%d:%d:%s:%s",
		courseID, moduleID, createdBy, status,
		filters.Limit, filters.Offset, filters.SortBy, filters.SortOrder)
}

func (s *quizService) GetByCourse(ctx context.Context, courseID uint, filters repositories.QuizFilters) (*QuizListResponse, error) {
	if _, err := s.repo.Course().GetByID(ctx, courseID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	quizzes, total, err := s.repo.Quiz().GetByCourse(ctx, courseID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list course quizzes: %w", err)
	}
	return buildQuizListResponse(quizzes, total, filters), nil
}

func (s *quizService) Search(ctx context.Context, query string, filters repositories.QuizFilters) (*QuizListResponse, error) {
	quizzes, total, err := s.repo.Quiz().Search(ctx, query, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to search quizzes: %w", err)
	}
	return buildQuizListResponse(quizzes, total, filters), nil
}

// GetCourseStats summarizes the quizzes attached to a course for the
// instructor dashboard.
func (s *quizService) GetCourseStats(ctx context.Context, courseID uint) (*repositories.QuizStats, error) {
	if _, err := s.repo.Course().GetByID(ctx, courseID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	stats, err := s.repo.Quiz().GetCourseStats(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course quiz stats: %w", err)
	}
	return stats, nil
}

// ===== STATUS OPERATIONS =====

func (s *quizService) Publish(ctx context.Context, id uint, userID uint) (*QuizResponse, error) {
	op := s.opLogger.WithOperation(ctx, "publish", userID)
	s.logger.Info("Publishing quiz", "quiz_id", id, "user_id", userID)

	quiz, err := s.repo.Quiz().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			op.LogResult(id, "quiz", ErrQuizNotFound)
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	if quiz.Status != models.QuizDraft {
		bre := NewBusinessRuleError("publish_requires_draft", "only a draft quiz can be published", map[string]interface{}{
			"quiz_id": id,
			"status":  string(quiz.Status),
		})
		op.LogResult(id, "quiz", bre)
		return nil, bre
	}

	// A stored draft can have gone stale against the catalog, so publishing
	// runs the full save validation again.
	if err := s.validateAndNormalize(ctx, quiz, nil); err != nil {
		op.LogResult(id, "quiz", err)
		return nil, err
	}

	if err := s.repo.Quiz().UpdateStatus(ctx, id, models.QuizPublished); err != nil {
		op.LogResult(id, "quiz", err)
		return nil, fmt.Errorf("failed to publish quiz: %w", err)
	}
	quiz.Status = models.QuizPublished

	s.invalidateCache(ctx, id)
	s.publishEvent(ctx, events.NewQuizPublishedEvent(quiz.ID, quiz.Title, quiz.CourseID, quiz.StartDate, quiz.RequiresVideoCompletion, quiz.PrerequisiteVideoIDs, userID))

	op.LogResult(id, "quiz", nil)
	return buildQuizResponse(quiz), nil
}

func (s *quizService) Archive(ctx context.Context, id uint, userID uint) (*QuizResponse, error) {
	op := s.opLogger.WithOperation(ctx, "archive", userID)

	quiz, err := s.repo.Quiz().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			op.LogResult(id, "quiz", ErrQuizNotFound)
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	if quiz.Status != models.QuizPublished {
		bre := NewBusinessRuleError("archive_requires_published", "only a published quiz can be archived", map[string]interface{}{
			"quiz_id": id,
			"status":  string(quiz.Status),
		})
		op.LogResult(id, "quiz", bre)
		return nil, bre
	}

	if err := s.repo.Quiz().UpdateStatus(ctx, id, models.QuizArchived); err != nil {
		op.LogResult(id, "quiz", err)
		return nil, fmt.Errorf("failed to archive quiz: %w", err)
	}
	quiz.Status = models.QuizArchived

	s.invalidateCache(ctx, id)

	op.LogResult(id, "quiz", nil)
	return buildQuizResponse(quiz), nil
}

// ===== HELPERS =====

func (s *quizService) buildQuiz(req *SaveQuizRequest) *models.Quiz {
	return &models.Quiz{
		Title:                   req.Title,
		Description:             req.Description,
		CourseID:                req.CourseID,
		ModuleID:                req.ModuleID,
		SectionID:               req.SectionID,
		Questions:               req.Questions,
		TimeLimitMinutes:        req.TimeLimitMinutes,
		PassingScore:            req.PassingScore,
		MaxAttempts:             req.MaxAttempts,
		RequiresVideoCompletion: req.RequiresVideoCompletion,
		PrerequisiteVideoIDs:    req.PrerequisiteVideoIDs,
		StartDate:               req.StartDate,
		RationaleVideoURL:       req.RationaleVideoURL,
	}
}

// validateAndNormalize runs the ordered save validation against the quiz's
// course catalog, then normalizes the document in place. Validation is fail
// fast: the first violation comes back as a single message. The title and
// course selection checks run before any catalog lookup. req carries the raw
// payload for struct-tag validation; Publish revalidates a stored quiz and
// passes nil.
func (s *quizService) validateAndNormalize(ctx context.Context, quiz *models.Quiz, req *SaveQuizRequest) error {
	if err := s.validator.Quiz().ValidateBasics(quiz); err != nil {
		return fmt.Errorf("%w: %s", ErrValidationFailed, err.Error())
	}

	if req != nil {
		if err := s.validator.ValidateStruct(req); err != nil {
			return validator.ToValidationErrors(err)
		}
	}

	if _, err := s.repo.Course().GetByID(ctx, quiz.CourseID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("failed to get course: %w", err)
	}

	courseCtx, err := s.loadCourseContext(ctx, quiz.CourseID)
	if err != nil {
		return err
	}

	if err := s.validator.Quiz().ValidateQuiz(quiz, courseCtx); err != nil {
		return fmt.Errorf("%w: %s", ErrValidationFailed, err.Error())
	}

	validator.NormalizeQuiz(quiz)
	return nil
}

func (s *quizService) loadCourseContext(ctx context.Context, courseID uint) (validator.CourseContext, error) {
	modules, err := s.repo.Course().GetModules(ctx, courseID)
	if err != nil {
		return validator.CourseContext{}, fmt.Errorf("failed to get course modules: %w", err)
	}
	videos, err := s.repo.Course().GetVideos(ctx, courseID)
	if err != nil {
		return validator.CourseContext{}, fmt.Errorf("failed to get course videos: %w", err)
	}

	courseCtx := validator.CourseContext{
		ModuleIDs: make([]uint, len(modules)),
		VideoIDs:  make([]uint, len(videos)),
	}
	for i, m := range modules {
		courseCtx.ModuleIDs[i] = m.ID
	}
	for i, v := range videos {
		courseCtx.VideoIDs[i] = v.ID
	}
	return courseCtx, nil
}

func (s *quizService) invalidateCache(ctx context.Context, id uint) {
	if err := s.cache.Delete(ctx, fmt.Sprintf(quizCacheKeyFmt, id)); err != nil {
		s.logger.Warn("Failed to invalidate quiz cache", "quiz_id", id, "error", err)
	}
	if err := s.cache.DeletePattern(ctx, quizListCachePat); err != nil {
		s.logger.Warn("Failed to invalidate quiz list cache", "error", err)
	}
}

// publishEvent is best effort: a broker outage must not fail the save.
func (s *quizService) publishEvent(ctx context.Context, event *events.QuizEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishQuizEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish quiz event", "event_type", event.Type, "error", err)
	}
}
