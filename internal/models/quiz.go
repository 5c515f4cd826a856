package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuizStatus string

const (
	QuizDraft     QuizStatus = "Draft"
	QuizPublished QuizStatus = "Published"
	QuizArchived  QuizStatus = "Archived"
)

// Quiz is the persisted quiz document. Questions are embedded as an ordered
// jsonb array; their array order is the displayed order. Writes are last write
// wins, there is no version column.
type Quiz struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Title       string  `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description *string `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`

	CourseID  uint  `json:"course_id" gorm:"not null;index" validate:"required"`
	ModuleID  *uint `json:"module_id" gorm:"index"`
	SectionID *uint `json:"section_id"`

	Questions datatypes.JSONSlice[Question] `json:"questions" gorm:"type:jsonb"`

	TimeLimitMinutes *int `json:"time_limit_minutes" validate:"omitempty,min=1"`
	PassingScore     *int `json:"passing_score" validate:"omitempty,passing_score"`
	// MaxAttempts of nil or 0 means unlimited.
	MaxAttempts *int `json:"max_attempts" validate:"omitempty,min=0"`

	// RequiresVideoCompletion gates the quiz behind course videos. When false,
	// PrerequisiteVideoIDs must be empty; the save path enforces that.
	RequiresVideoCompletion bool                      `json:"requires_video_completion" gorm:"default:false"`
	PrerequisiteVideoIDs    datatypes.JSONSlice[uint] `json:"prerequisite_video_ids" gorm:"type:jsonb"`

	// StartDate makes the quiz inaccessible before this instant.
	StartDate *time.Time `json:"start_date"`
	// RationaleVideoURL is shown once all attempts are exhausted.
	RationaleVideoURL *string `json:"rationale_video_url"`

	Status QuizStatus `json:"status" gorm:"default:Draft;index" validate:"omitempty,oneof=Draft Published Archived"`

	CreatedBy uint           `json:"created_by" gorm:"not null;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Computed fields (not stored)
	QuestionCount int `json:"question_count" gorm:"-"`
	TotalPoints   int `json:"total_points" gorm:"-"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// ComputeDerived fills the non-persisted summary fields.
func (q *Quiz) ComputeDerived() {
	q.QuestionCount = len(q.Questions)
	total := 0
	for _, question := range q.Questions {
		total += question.Points
	}
	q.TotalPoints = total
}
