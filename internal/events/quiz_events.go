package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents different types of quiz lifecycle events
type EventType string

const (
	EventQuizCreated   EventType = "quiz.created"
	EventQuizUpdated   EventType = "quiz.updated"
	EventQuizDeleted   EventType = "quiz.deleted"
	EventQuizPublished EventType = "quiz.published"
)

// QuizEvent is the base event structure for all quiz lifecycle events
type QuizEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Quiz lifecycle event payloads

type QuizCreatedEvent struct {
	QuizID        uint   `json:"quiz_id"`
	QuizTitle     string `json:"quiz_title"`
	CourseID      uint   `json:"course_id"`
	ModuleID      *uint  `json:"module_id,omitempty"`
	QuestionCount int    `json:"question_count"`
	TotalPoints   int    `json:"total_points"`
	CreatedBy     uint   `json:"created_by"`
}

type QuizUpdatedEvent struct {
	QuizID        uint   `json:"quiz_id"`
	QuizTitle     string `json:"quiz_title"`
	CourseID      uint   `json:"course_id"`
	QuestionCount int    `json:"question_count"`
	TotalPoints   int    `json:"total_points"`
	UpdatedBy     uint   `json:"updated_by"`
}

type QuizDeletedEvent struct {
	QuizID    uint   `json:"quiz_id"`
	QuizTitle string `json:"quiz_title"`
	CourseID  uint   `json:"course_id"`
	DeletedBy uint   `json:"deleted_by"`
}

type QuizPublishedEvent struct {
	QuizID                  uint       `json:"quiz_id"`
	QuizTitle               string     `json:"quiz_title"`
	CourseID                uint       `json:"course_id"`
	StartDate               *time.Time `json:"start_date,omitempty"`
	RequiresVideoCompletion bool       `json:"requires_video_completion"`
	PrerequisiteVideoIDs    []uint     `json:"prerequisite_video_ids,omitempty"`
	PublishedBy             uint       `json:"published_by"`
}

// Event factory functions

func NewQuizCreatedEvent(quizID uint, title string, courseID uint, moduleID *uint, questionCount, totalPoints int, createdBy uint) *QuizEvent {
	return &QuizEvent{
		ID:        generateEventID(),
		Type:      EventQuizCreated,
		Timestamp: time.Now(),
		Source:    "quiz-service",
		Version:   "1.0",
		Data: QuizCreatedEvent{
			QuizID:        quizID,
			QuizTitle:     title,
			CourseID:      courseID,
			ModuleID:      moduleID,
			QuestionCount: questionCount,
			TotalPoints:   totalPoints,
			CreatedBy:     createdBy,
		},
	}
}

func NewQuizUpdatedEvent(quizID uint, title string, courseID uint, questionCount, totalPoints int, updatedBy uint) *QuizEvent {
	return &QuizEvent{
		ID:        generateEventID(),
		Type:      EventQuizUpdated,
		Timestamp: time.Now(),
		Source:    "quiz-service",
		Version:   "1.0",
		Data: QuizUpdatedEvent{
			QuizID:        quizID,
			QuizTitle:     title,
			CourseID:      courseID,
			QuestionCount: questionCount,
			TotalPoints:   totalPoints,
			UpdatedBy:     updatedBy,
		},
	}
}

func NewQuizDeletedEvent(quizID uint, title string, courseID, deletedBy uint) *QuizEvent {
	return &QuizEvent{
		ID:        generateEventID(),
		Type:      EventQuizDeleted,
		Timestamp: time.Now(),
		Source:    "quiz-service",
		Version:   "1.0",
		Data: QuizDeletedEvent{
			QuizID:    quizID,
			QuizTitle: title,
			CourseID:  courseID,
			DeletedBy: deletedBy,
		},
	}
}

func NewQuizPublishedEvent(quizID uint, title string, courseID uint, startDate *time.Time, requiresVideoCompletion bool, prerequisiteVideoIDs []uint, publishedBy uint) *QuizEvent {
	return &QuizEvent{
		ID:        generateEventID(),
		Type:      EventQuizPublished,
		Timestamp: time.Now(),
		Source:    "quiz-service",
		Version:   "1.0",
		Data: QuizPublishedEvent{
			QuizID:                  quizID,
			QuizTitle:               title,
			CourseID:                courseID,
			StartDate:               startDate,
			RequiresVideoCompletion: requiresVideoCompletion,
			PrerequisiteVideoIDs:    prerequisiteVideoIDs,
			PublishedBy:             publishedBy,
		},
	}
}

func generateEventID() string {
	return uuid.NewString()
}
