package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nclex-prep/quiz-service/internal/models"
	"github.com/nclex-prep/quiz-service/internal/repositories"
)

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

// ExportQuizToExcel renders the quiz with its full answer key as an xlsx
// workbook. Returns the file bytes and a suggested filename.
func (s *exportService) ExportQuizToExcel(ctx context.Context, quizID uint) ([]byte, string, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, "", ErrQuizNotFound
		}
		return nil, "", fmt.Errorf("failed to get quiz: %w", err)
	}

	f := excelize.NewFile()
	sheetName := "Questions"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"#", "Question Type", "Question", "Points",
		"Choices / Rows", "Answer Key", "Explanation",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, question := range quiz.Questions {
		row := s.questionToRow(rowIndex+1, &question)
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("Exported quiz to Excel", "quiz_id", quizID, "question_count", len(quiz.Questions))

	filename := fmt.Sprintf("quiz-%d-questions.xlsx", quizID)
	return buf.Bytes(), filename, nil
}

func (s *exportService) questionToRow(number int, q *models.Question) []interface{} {
	text := q.Text
	if text == "" && q.ImageURL != nil {
		text = fmt.Sprintf("[image] %s", *q.ImageURL)
	}

	explanation := ""
	if q.Explanation != nil {
		explanation = *q.Explanation
	}

	choices, answerKey := s.renderContent(q)

	return []interface{}{
		number,
		string(q.Type),
		text,
		q.Points,
		choices,
		answerKey,
		explanation,
	}
}

func (s *exportService) renderContent(q *models.Question) (choices string, answerKey string) {
	switch q.Type {
	case models.MultipleChoice:
		content := q.MultipleChoiceContent
		if content == nil {
			return "", ""
		}
		correct := make([]string, 0, len(content.CorrectAnswers))
		for _, idx := range content.CorrectAnswers {
			if idx >= 0 && idx < len(content.Options) {
				correct = append(correct, content.Options[idx])
			}
		}
		return strings.Join(content.Options, "; "), strings.Join(correct, "; ")

	case models.Matrix:
		content := q.MatrixContent
		if content == nil {
			return "", ""
		}
		keyParts := make([]string, 0, len(content.Rows))
		for rowIdx, row := range content.Rows {
			cols := make([]string, 0, len(content.CorrectAnswers[rowIdx]))
			for _, colIdx := range content.CorrectAnswers[rowIdx] {
				if colIdx >= 0 && colIdx < len(content.Columns) {
					cols = append(cols, content.Columns[colIdx])
				}
			}
			keyParts = append(keyParts, fmt.Sprintf("%s: %s", row, strings.Join(cols, ", ")))
		}
		choices = fmt.Sprintf("rows: %s | columns: %s",
			strings.Join(content.Rows, "; "), strings.Join(content.Columns, "; "))
		return choices, strings.Join(keyParts, " | ")

	case models.Ranking:
		content := q.RankingContent
		if content == nil {
			return "", ""
		}
		ordered := make([]string, 0, len(content.CorrectOrder))
		for _, idx := range content.CorrectOrder {
			if idx >= 0 && idx < len(content.Options) {
				ordered = append(ordered, content.Options[idx])
			}
		}
		return strings.Join(content.Options, "; "), strings.Join(ordered, " > ")
	}

	return "", ""
}
