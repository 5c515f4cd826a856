package validator

import (
	"strings"

	"github.com/nclex-prep/quiz-service/internal/models"
)

// NormalizeQuiz runs the save-time normalization pass over a validated draft.
// It is not validation: it rewrites the draft into its canonical persisted
// form. Blank options, rows and columns are stripped with the stored answer
// indices re-derived across the strip; the ranking correct order is rewritten
// as the identity permutation of the current options; empty-string optionals
// collapse to nil; and the prerequisite gate is cleared when disabled.
func NormalizeQuiz(quiz *models.Quiz) {
	quiz.Title = strings.TrimSpace(quiz.Title)
	quiz.Description = collapseEmpty(quiz.Description)
	quiz.RationaleVideoURL = collapseEmpty(quiz.RationaleVideoURL)
	quiz.TimeLimitMinutes = collapseZero(quiz.TimeLimitMinutes)
	quiz.PassingScore = collapseZero(quiz.PassingScore)
	quiz.MaxAttempts = collapseZero(quiz.MaxAttempts)

	// The gate fields are not independently meaningful: a disabled gate must
	// not carry prerequisite ids, whatever the authoring UI held.
	if !quiz.RequiresVideoCompletion {
		quiz.PrerequisiteVideoIDs = nil
	}

	for i := range quiz.Questions {
		normalizeQuestion(&quiz.Questions[i])
	}
}

func normalizeQuestion(q *models.Question) {
	q.ImageURL = collapseEmpty(q.ImageURL)
	q.Explanation = collapseEmpty(q.Explanation)
	q.RationaleVideoURL = collapseEmpty(q.RationaleVideoURL)

	switch q.Type {
	case models.MultipleChoice:
		if mc := q.MultipleChoiceContent; mc != nil {
			var removed []int
			mc.Options, removed = stripBlanks(mc.Options)
			mc.CorrectAnswers = reindexAfterStrip(mc.CorrectAnswers, removed)
		}
	case models.Matrix:
		if m := q.MatrixContent; m != nil {
			var removedRows, removedCols []int
			m.Rows, removedRows = stripBlanks(m.Rows)
			m.Columns, removedCols = stripBlanks(m.Columns)
			m.CorrectAnswers = reindexMatrixAfterStrip(m.CorrectAnswers, removedRows, removedCols)
		}
	case models.Ranking:
		if r := q.RankingContent; r != nil {
			r.Options, _ = stripBlanks(r.Options)
			// The correct order is always the identity permutation of the
			// options as stored; any prior value is discarded.
			r.CorrectOrder = identity(len(r.Options))
		}
	}
}

// stripBlanks removes whitespace-only entries and reports the removed
// indices, ascending.
func stripBlanks(values []string) ([]string, []int) {
	kept := make([]string, 0, len(values))
	var removed []int
	for i, v := range values {
		if strings.TrimSpace(v) == "" {
			removed = append(removed, i)
			continue
		}
		kept = append(kept, v)
	}
	return kept, removed
}

// reindexAfterStrip maps stored answer indices through a strip: indices that
// pointed at removed entries are dropped, the rest shift down past them.
func reindexAfterStrip(indices, removed []int) []int {
	if len(removed) == 0 || indices == nil {
		return indices
	}
	out := make([]int, 0, len(indices))
	for _, idx := range indices {
		mapped, ok := mapIndex(idx, removed)
		if ok {
			out = append(out, mapped)
		}
	}
	return out
}

func reindexMatrixAfterStrip(answers map[int][]int, removedRows, removedCols []int) map[int][]int {
	if answers == nil {
		return nil
	}
	out := make(map[int][]int, len(answers))
	for row, cols := range answers {
		mappedRow, ok := mapIndex(row, removedRows)
		if !ok {
			continue
		}
		out[mappedRow] = reindexAfterStrip(cols, removedCols)
	}
	return out
}

// mapIndex returns the post-strip position of idx, or false when idx itself
// was removed.
func mapIndex(idx int, removed []int) (int, bool) {
	shift := 0
	for _, r := range removed {
		if r == idx {
			return 0, false
		}
		if r < idx {
			shift++
		}
	}
	return idx - shift, true
}

func identity(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

func collapseEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

func collapseZero(n *int) *int {
	if n == nil || *n == 0 {
		return nil
	}
	return n
}
