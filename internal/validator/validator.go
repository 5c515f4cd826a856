package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nclex-prep/quiz-service/internal/models"
)

// Validator is the main validator instance that combines struct-tag
// validation of request payloads with the quiz save validator.
type Validator struct {
	structValidator *validator.Validate
	quizValidator   *QuizValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()

	// Register all custom validators once
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
		quizValidator:   NewQuizValidator(),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Quiz returns the quiz save validator
func (v *Validator) Quiz() *QuizValidator {
	return v.quizValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("question_type", validateQuestionType)
	validate.RegisterValidation("quiz_status", validateQuizStatus)
	validate.RegisterValidation("passing_score", validatePassingScore)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Custom validation functions
func validateQuestionType(fl validator.FieldLevel) bool {
	validTypes := []models.QuestionType{
		models.MultipleChoice,
		models.Matrix,
		models.Ranking,
	}

	value := fl.Field().String()
	for _, validType := range validTypes {
		if string(validType) == value {
			return true
		}
	}
	return false
}

func validateQuizStatus(fl validator.FieldLevel) bool {
	validStatuses := []models.QuizStatus{
		models.QuizDraft,
		models.QuizPublished,
		models.QuizArchived,
	}

	value := fl.Field().String()
	for _, validStatus := range validStatuses {
		if string(validStatus) == value {
			return true
		}
	}
	return false
}

func validatePassingScore(fl validator.FieldLevel) bool {
	score := fl.Field().Int()
	return score >= 0 && score <= 100
}
