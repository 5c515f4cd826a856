package validator

import (
	"fmt"
	"strings"

	"github.com/nclex-prep/quiz-service/internal/models"
)

// CourseContext carries the per-course facts the save validator needs. The
// validator never fetches; the caller supplies them.
type CourseContext struct {
	// ModuleIDs are the modules defined for the quiz's course. A course with
	// modules cannot host a module-less quiz.
	ModuleIDs []uint
	// VideoIDs are the videos belonging to the course; prerequisite video ids
	// must be a subset of them.
	VideoIDs []uint
}

// QuizValidator decides whether a quiz draft is savable. Checks run in a
// fixed order and the first violation wins: the caller gets a single
// human-readable message, not an error list.
type QuizValidator struct{}

// NewQuizValidator creates a new quiz validator
func NewQuizValidator() *QuizValidator {
	return &QuizValidator{}
}

// ValidateBasics runs the leading save checks, the ones that need no
// catalog data. Callers run it before fetching the course so a quiz with a
// blank title or no course gets the right first message.
func (v *QuizValidator) ValidateBasics(quiz *models.Quiz) error {
	if strings.TrimSpace(quiz.Title) == "" {
		return fmt.Errorf("quiz title is required")
	}

	if quiz.CourseID == 0 {
		return fmt.Errorf("a course must be selected")
	}

	return nil
}

// ValidateQuiz runs the ordered save checks over a complete quiz draft.
func (v *QuizValidator) ValidateQuiz(quiz *models.Quiz, course CourseContext) error {
	if err := v.ValidateBasics(quiz); err != nil {
		return err
	}

	if len(course.ModuleIDs) > 0 && quiz.ModuleID == nil {
		return fmt.Errorf("this course has modules: select a module for the quiz")
	}

	if len(quiz.Questions) == 0 {
		return fmt.Errorf("add at least one question")
	}

	for i := range quiz.Questions {
		if err := v.ValidateQuestion(i, &quiz.Questions[i]); err != nil {
			return err
		}
	}

	if quiz.RequiresVideoCompletion {
		if err := v.validatePrerequisites(quiz.PrerequisiteVideoIDs, course.VideoIDs); err != nil {
			return err
		}
	}

	return nil
}

// ValidateQuestion validates one question; index is the question's position
// in the quiz and appears 1-based in every message.
func (v *QuizValidator) ValidateQuestion(index int, q *models.Question) error {
	n := index + 1

	hasImage := q.ImageURL != nil && strings.TrimSpace(*q.ImageURL) != ""
	if strings.TrimSpace(q.Text) == "" && !hasImage {
		return fmt.Errorf("question %d needs text or an image", n)
	}

	if q.Points < 1 {
		return fmt.Errorf("question %d must be worth at least 1 point", n)
	}

	switch q.Type {
	case models.MultipleChoice:
		return v.validateMultipleChoice(n, q.MultipleChoiceContent)
	case models.Matrix:
		return v.validateMatrix(n, q.MatrixContent)
	case models.Ranking:
		return v.validateRanking(n, q.RankingContent)
	default:
		return fmt.Errorf("question %d has an unsupported type: %s", n, q.Type)
	}
}

func (v *QuizValidator) validateMultipleChoice(n int, content *models.MultipleChoiceContent) error {
	if content == nil {
		return fmt.Errorf("question %d has no answer options", n)
	}

	if len(content.Options) < 2 {
		return fmt.Errorf("question %d must have at least 2 options", n)
	}

	// Blank options never reach the save-time strip; correct answer indices
	// must stay aligned with the options as submitted.
	for _, option := range content.Options {
		if strings.TrimSpace(option) == "" {
			return fmt.Errorf("question %d has an empty option", n)
		}
	}

	if len(content.CorrectAnswers) == 0 {
		return fmt.Errorf("question %d needs at least one correct answer", n)
	}

	for _, idx := range content.CorrectAnswers {
		if idx < 0 || idx >= len(content.Options) {
			return fmt.Errorf("question %d has a correct answer that does not match an option", n)
		}
	}

	if content.RequiredAnswersCount > 0 && len(content.CorrectAnswers) != content.RequiredAnswersCount {
		return fmt.Errorf("question %d requires %d correct answers, %d selected",
			n, content.RequiredAnswersCount, len(content.CorrectAnswers))
	}

	return nil
}

func (v *QuizValidator) validateMatrix(n int, content *models.MatrixContent) error {
	if content == nil {
		return fmt.Errorf("question %d has no grid content", n)
	}

	if len(content.Rows) < 1 {
		return fmt.Errorf("question %d must have at least 1 row", n)
	}
	if len(content.Columns) < 2 {
		return fmt.Errorf("question %d must have at least 2 columns", n)
	}

	for _, row := range content.Rows {
		if strings.TrimSpace(row) == "" {
			return fmt.Errorf("question %d has an empty row label", n)
		}
	}
	for _, col := range content.Columns {
		if strings.TrimSpace(col) == "" {
			return fmt.Errorf("question %d has an empty column label", n)
		}
	}

	for row := range content.Rows {
		cols := content.CorrectAnswers[row]
		if len(cols) == 0 {
			return fmt.Errorf("question %d: row %d needs at least one correct column", n, row+1)
		}
		for _, col := range cols {
			if col < 0 || col >= len(content.Columns) {
				return fmt.Errorf("question %d: row %d marks a column that does not exist", n, row+1)
			}
		}
	}

	return nil
}

func (v *QuizValidator) validateRanking(n int, content *models.RankingContent) error {
	if content == nil {
		return fmt.Errorf("question %d has no ranking items", n)
	}

	if len(content.Options) < 2 {
		return fmt.Errorf("question %d must have at least 2 items to rank", n)
	}

	for _, option := range content.Options {
		if strings.TrimSpace(option) == "" {
			return fmt.Errorf("question %d has an empty ranking item", n)
		}
	}

	return nil
}

func (v *QuizValidator) validatePrerequisites(prerequisiteIDs, courseVideoIDs []uint) error {
	known := make(map[uint]bool, len(courseVideoIDs))
	for _, id := range courseVideoIDs {
		known[id] = true
	}
	for _, id := range prerequisiteIDs {
		if !known[id] {
			return fmt.Errorf("prerequisite videos must belong to the quiz's course")
		}
	}
	return nil
}
