package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/nclex-prep/quiz-service/internal/models"
)

func TestExportService_ExportQuizToExcel(t *testing.T) {
	repo := newMockRepository()
	service := NewExportService(repo, testLogger())

	explanation := "Beta blockers reduce heart rate."
	quiz := &models.Quiz{
		ID:       7,
		Title:    "Cardiac Medications Quiz",
		CourseID: 10,
		Questions: []models.Question{
			{
				Type:   models.MultipleChoice,
				Text:   "Which medication slows heart rate?",
				Points: 2,
				Explanation: &explanation,
				MultipleChoiceContent: &models.MultipleChoiceContent{
					Options:        []string{"Metoprolol", "Epinephrine", "Atropine"},
					CorrectAnswers: []int{0},
				},
			},
			{
				Type:   models.Matrix,
				Text:   "Match each finding to the correct intervention.",
				Points: 3,
				MatrixContent: &models.MatrixContent{
					Rows:           []string{"Bradycardia", "Tachycardia"},
					Columns:        []string{"Atropine", "Beta blocker"},
					CorrectAnswers: map[int][]int{0: {0}, 1: {1}},
				},
			},
			{
				Type:   models.Ranking,
				Text:   "Order the steps of medication administration.",
				Points: 1,
				RankingContent: &models.RankingContent{
					Options:      []string{"Verify order", "Check allergies", "Administer"},
					CorrectOrder: []int{0, 1, 2},
				},
			},
		},
	}

	repo.quiz.On("GetByID", mock.Anything, uint(7)).Return(quiz, nil)

	data, filename, err := service.ExportQuizToExcel(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "quiz-7-questions.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Questions", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Question Type", header)

	mcAnswer, err := f.GetCellValue("Questions", "F2")
	require.NoError(t, err)
	assert.Equal(t, "Metoprolol", mcAnswer)

	matrixAnswer, err := f.GetCellValue("Questions", "F3")
	require.NoError(t, err)
	assert.Contains(t, matrixAnswer, "Bradycardia: Atropine")

	rankingAnswer, err := f.GetCellValue("Questions", "F4")
	require.NoError(t, err)
	assert.Equal(t, "Verify order > Check allergies > Administer", rankingAnswer)
}

func TestExportService_ExportQuizToExcel_NotFound(t *testing.T) {
	repo := newMockRepository()
	service := NewExportService(repo, testLogger())

	repo.quiz.On("GetByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	_, _, err := service.ExportQuizToExcel(context.Background(), 99)

	assert.ErrorIs(t, err, ErrQuizNotFound)
}
