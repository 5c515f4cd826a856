package services

import (
	"context"
	"time"

	"github.com/nclex-prep/quiz-service/internal/models"
	"github.com/nclex-prep/quiz-service/internal/repositories"
)

// ===== SERVICE INTERFACES =====

// QuizService owns the quiz save path: validate against the course catalog,
// normalize, persist. Writes are last write wins.
type QuizService interface {
	Create(ctx context.Context, req *SaveQuizRequest, creatorID uint) (*QuizResponse, error)
	Update(ctx context.Context, id uint, req *SaveQuizRequest, userID uint) (*QuizResponse, error)
	GetByID(ctx context.Context, id uint) (*QuizResponse, error)
	Delete(ctx context.Context, id uint, userID uint) error

	List(ctx context.Context, filters repositories.QuizFilters) (*QuizListResponse, error)
	GetByCourse(ctx context.Context, courseID uint, filters repositories.QuizFilters) (*QuizListResponse, error)
	Search(ctx context.Context, query string, filters repositories.QuizFilters) (*QuizListResponse, error)

	Publish(ctx context.Context, id uint, userID uint) (*QuizResponse, error)
	Archive(ctx context.Context, id uint, userID uint) (*QuizResponse, error)

	GetCourseStats(ctx context.Context, courseID uint) (*repositories.QuizStats, error)
}

// CourseService exposes the read-only catalog facts the quiz editor needs.
type CourseService interface {
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	List(ctx context.Context, filters repositories.CourseFilters) (*CourseListResponse, error)
	GetModules(ctx context.Context, courseID uint) ([]*models.Module, error)
	GetVideos(ctx context.Context, courseID uint) ([]*models.Video, error)
}

// ExportService renders a quiz as an Excel workbook for offline review.
type ExportService interface {
	ExportQuizToExcel(ctx context.Context, quizID uint) ([]byte, string, error)
}

// ===== REQUEST DTOS =====

// SaveQuizRequest is the full quiz document as the editor submits it. The
// same shape serves create and update; update replaces the stored document.
type SaveQuizRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`

	CourseID  uint  `json:"course_id" validate:"required"`
	ModuleID  *uint `json:"module_id"`
	SectionID *uint `json:"section_id"`

	Questions []models.Question `json:"questions" validate:"required,min=1,dive"`

	TimeLimitMinutes *int `json:"time_limit_minutes" validate:"omitempty,min=0"`
	PassingScore     *int `json:"passing_score" validate:"omitempty,min=0,max=100"`
	MaxAttempts      *int `json:"max_attempts" validate:"omitempty,min=0"`

	RequiresVideoCompletion bool   `json:"requires_video_completion"`
	PrerequisiteVideoIDs    []uint `json:"prerequisite_video_ids"`

	StartDate         *time.Time `json:"start_date"`
	RationaleVideoURL *string    `json:"rationale_video_url"`
}

// ===== RESPONSE DTOS =====

type QuizResponse struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`

	CourseID  uint  `json:"course_id"`
	ModuleID  *uint `json:"module_id,omitempty"`
	SectionID *uint `json:"section_id,omitempty"`

	Questions []models.Question `json:"questions"`

	TimeLimitMinutes *int `json:"time_limit_minutes,omitempty"`
	PassingScore     *int `json:"passing_score,omitempty"`
	MaxAttempts      *int `json:"max_attempts,omitempty"`

	RequiresVideoCompletion bool   `json:"requires_video_completion"`
	PrerequisiteVideoIDs    []uint `json:"prerequisite_video_ids,omitempty"`

	StartDate         *time.Time `json:"start_date,omitempty"`
	RationaleVideoURL *string    `json:"rationale_video_url,omitempty"`

	Status models.QuizStatus `json:"status"`

	QuestionCount int `json:"question_count"`
	TotalPoints   int `json:"total_points"`

	CreatedBy uint      `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type QuizListResponse struct {
	Quizzes []*QuizResponse `json:"quizzes"`
	Total   int64           `json:"total"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}

type CourseListResponse struct {
	Courses []*models.Course `json:"courses"`
	Total   int64            `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

// ===== MAPPERS =====

func buildQuizResponse(quiz *models.Quiz) *QuizResponse {
	quiz.ComputeDerived()
	return &QuizResponse{
		ID:                      quiz.ID,
		Title:                   quiz.Title,
		Description:             quiz.Description,
		CourseID:                quiz.CourseID,
		ModuleID:                quiz.ModuleID,
		SectionID:               quiz.SectionID,
		Questions:               quiz.Questions,
		TimeLimitMinutes:        quiz.TimeLimitMinutes,
		PassingScore:            quiz.PassingScore,
		MaxAttempts:             quiz.MaxAttempts,
		RequiresVideoCompletion: quiz.RequiresVideoCompletion,
		PrerequisiteVideoIDs:    quiz.PrerequisiteVideoIDs,
		StartDate:               quiz.StartDate,
		RationaleVideoURL:       quiz.RationaleVideoURL,
		Status:                  quiz.Status,
		QuestionCount:           quiz.QuestionCount,
		TotalPoints:             quiz.TotalPoints,
		CreatedBy:               quiz.CreatedBy,
		CreatedAt:               quiz.CreatedAt,
		UpdatedAt:               quiz.UpdatedAt,
	}
}

func buildQuizListResponse(quizzes []*models.Quiz, total int64, filters repositories.QuizFilters) *QuizListResponse {
	responses := make([]*QuizResponse, len(quizzes))
	for i, quiz := range quizzes {
		responses[i] = buildQuizResponse(quiz)
	}
	return &QuizListResponse{
		Quizzes: responses,
		Total:   total,
		Limit:   filters.Limit,
		Offset:  filters.Offset,
	}
}
