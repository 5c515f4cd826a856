package repositories

import (
	"github.com/nclex-prep/quiz-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type QuizFilters struct {
	CourseID  *uint              `json:"course_id"`
	ModuleID  *uint              `json:"module_id"`
	Status    *models.QuizStatus `json:"status"`
	CreatedBy *uint              `json:"created_by"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
	SortBy    string             `json:"sort_by"`    // "created_at", "title"
	SortOrder string             `json:"sort_order"` // "asc", "desc"
}

type CourseFilters struct {
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

// ===== SHARED STATISTICS STRUCTS =====

type QuizStats struct {
	QuestionCount   int `json:"question_count"`
	TotalPoints     int `json:"total_points"`
	GatedQuizzes    int `json:"gated_quizzes"`
	PublishedCount  int `json:"published_count"`
	DraftCount      int `json:"draft_count"`
	QuizzesInCourse int `json:"quizzes_in_course"`
}
