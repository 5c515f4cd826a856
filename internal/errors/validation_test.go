package errors

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("title", "is required", "")

	if err.Field != "title" {
		t.Errorf("Expected field to be 'title', got '%s'", err.Field)
	}

	if err.Message != "is required" {
		t.Errorf("Expected message to be 'is required', got '%s'", err.Message)
	}

	expected := "validation error on field 'title': is required"
	if err.Error() != expected {
		t.Errorf("Expected error message to be '%s', got '%s'", expected, err.Error())
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.Error() != "validation failed" {
		t.Errorf("Expected 'validation failed' for empty errors, got '%s'", errs.Error())
	}

	errs = append(errs, *NewValidationError("title", "is required", nil))
	expected := "validation failed: title is required"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for single error, got '%s'", expected, errs.Error())
	}

	errs = append(errs, *NewValidationError("passing_score", "must be between 0 and 100", 120))
	expected = "validation failed: 2 field errors"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for multiple errors, got '%s'", expected, errs.Error())
	}
}

func TestNewValidationErrorWithRule(t *testing.T) {
	err := NewValidationErrorWithRule("course_id", "is required", "required", nil)

	if err.Rule != "required" {
		t.Errorf("Expected rule to be 'required', got '%s'", err.Rule)
	}

	if err.Field != "course_id" {
		t.Errorf("Expected field to be 'course_id', got '%s'", err.Field)
	}
}

func TestToValidationErrors(t *testing.T) {
	type payload struct {
		Title  string `validate:"required"`
		Points int    `validate:"min=1"`
	}

	err := validator.New().Struct(payload{Points: 0})
	if err == nil {
		t.Fatal("expected struct validation to fail")
	}

	converted := ToValidationErrors(err)
	if len(converted) != 2 {
		t.Fatalf("Expected 2 converted errors, got %d", len(converted))
	}

	if converted[0].Message != "is required" {
		t.Errorf("Expected 'is required' message, got '%s'", converted[0].Message)
	}
	if converted[1].Message != "must be at least 1" {
		t.Errorf("Expected 'must be at least 1' message, got '%s'", converted[1].Message)
	}
}
