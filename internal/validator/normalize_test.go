package validator

import (
	"testing"

	"github.com/nclex-prep/quiz-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestNormalizeQuiz_RankingOrderIsIdentity(t *testing.T) {
	quiz := validQuiz()
	quiz.Questions = datatypes.JSONSlice[models.Question]{
		{
			Type:   models.Ranking,
			Text:   "Order the steps",
			Points: 1,
			RankingContent: &models.RankingContent{
				Options:      []string{"x", "y", "z"},
				CorrectOrder: []int{2, 0, 1}, // stale prior value, discarded on save
			},
		},
	}

	NormalizeQuiz(quiz)

	assert.Equal(t, []int{0, 1, 2}, quiz.Questions[0].RankingContent.CorrectOrder)
}

func TestNormalizeQuiz_ClearsGateWhenDisabled(t *testing.T) {
	quiz := validQuiz()
	quiz.RequiresVideoCompletion = false
	quiz.PrerequisiteVideoIDs = datatypes.JSONSlice[uint]{4, 5}

	NormalizeQuiz(quiz)

	assert.Nil(t, quiz.PrerequisiteVideoIDs)
}

func TestNormalizeQuiz_KeepsGateWhenEnabled(t *testing.T) {
	quiz := validQuiz()
	quiz.RequiresVideoCompletion = true
	quiz.PrerequisiteVideoIDs = datatypes.JSONSlice[uint]{4, 5}

	NormalizeQuiz(quiz)

	assert.Equal(t, datatypes.JSONSlice[uint]{4, 5}, quiz.PrerequisiteVideoIDs)
}

func TestNormalizeQuiz_StripReindexesCorrectAnswers(t *testing.T) {
	// Validation refuses blank options, but normalization still re-derives
	// the answer indices across the strip so a blank can never corrupt the
	// stored answer key.
	quiz := validQuiz()
	quiz.Questions[0].MultipleChoiceContent = &models.MultipleChoiceContent{
		Options:        []string{"a", " ", "c", "d"},
		CorrectAnswers: []int{1, 3},
	}

	NormalizeQuiz(quiz)

	mc := quiz.Questions[0].MultipleChoiceContent
	assert.Equal(t, []string{"a", "c", "d"}, mc.Options)
	// Index 1 pointed at the stripped blank and is dropped; index 3 shifts to 2.
	assert.Equal(t, []int{2}, mc.CorrectAnswers)
}

func TestNormalizeQuiz_MatrixStripReindexesRowsAndColumns(t *testing.T) {
	quiz := validQuiz()
	quiz.Questions = datatypes.JSONSlice[models.Question]{
		{
			Type:   models.Matrix,
			Text:   "grid",
			Points: 1,
			MatrixContent: &models.MatrixContent{
				Rows:           []string{"r0", "", "r2"},
				Columns:        []string{"c0", "c1", ""},
				CorrectAnswers: map[int][]int{0: {0, 2}, 1: {1}, 2: {1}},
			},
		},
	}

	NormalizeQuiz(quiz)

	m := quiz.Questions[0].MatrixContent
	assert.Equal(t, []string{"r0", "r2"}, m.Rows)
	assert.Equal(t, []string{"c0", "c1"}, m.Columns)
	// Row 1 was stripped; row 2 becomes row 1. Column 2 was stripped, so its
	// index drops out of row 0's answers.
	assert.Equal(t, map[int][]int{0: {0}, 1: {1}}, m.CorrectAnswers)
}

func TestNormalizeQuiz_CollapsesEmptyOptionals(t *testing.T) {
	quiz := validQuiz()
	empty := ""
	zero := 0
	limit := 30
	quiz.RationaleVideoURL = &empty
	quiz.Description = &empty
	quiz.MaxAttempts = &zero
	quiz.TimeLimitMinutes = &limit
	quiz.Questions[0].ImageURL = &empty
	quiz.Questions[0].Explanation = &empty

	NormalizeQuiz(quiz)

	assert.Nil(t, quiz.RationaleVideoURL)
	assert.Nil(t, quiz.Description)
	assert.Nil(t, quiz.MaxAttempts)
	require.NotNil(t, quiz.TimeLimitMinutes)
	assert.Equal(t, 30, *quiz.TimeLimitMinutes)
	assert.Nil(t, quiz.Questions[0].ImageURL)
	assert.Nil(t, quiz.Questions[0].Explanation)
}

func TestNormalizeQuiz_TrimsTitle(t *testing.T) {
	quiz := validQuiz()
	quiz.Title = "  Cardiac Review  "

	NormalizeQuiz(quiz)

	assert.Equal(t, "Cardiac Review", quiz.Title)
}
