// Package draft maintains the in-memory question list of a quiz being
// authored. Every operation is synchronous and invariant-preserving; edits
// that would shrink a question below its structural minimum (2 options, 1
// matrix row, 2 matrix columns) are silent no-ops rather than errors, as are
// calls with out-of-range indices.
package draft

import (
	"sort"

	"github.com/nclex-prep/quiz-service/internal/models"
)

// Editor holds the working copy of a quiz's questions plus the index of the
// question currently focused in the authoring UI.
type Editor struct {
	questions []models.Question
	focus     int
}

// NewEditor starts an editing session over an existing question list. The
// slice is copied; the caller's data is never mutated.
func NewEditor(questions []models.Question) *Editor {
	qs := make([]models.Question, len(questions))
	for i, q := range questions {
		qs[i] = q.Clone()
	}
	return &Editor{questions: qs}
}

// Questions returns the current question list in display order.
func (e *Editor) Questions() []models.Question {
	return e.questions
}

// Focus returns the index of the currently focused question, or -1 when the
// list is empty.
func (e *Editor) Focus() int {
	if len(e.questions) == 0 {
		return -1
	}
	return e.focus
}

// AddQuestion appends a new question of the given type with authoring
// defaults and focuses it. Returns the new question's index.
func (e *Editor) AddQuestion(qt models.QuestionType) int {
	e.questions = append(e.questions, models.NewQuestion(qt))
	e.focus = len(e.questions) - 1
	return e.focus
}

// DuplicateQuestion deep-clones the question at index and inserts the clone
// immediately after it. The clone shares no mutable state with the original.
func (e *Editor) DuplicateQuestion(index int) {
	if index < 0 || index >= len(e.questions) {
		return
	}
	clone := e.questions[index].Clone()
	e.questions = append(e.questions, models.Question{})
	copy(e.questions[index+2:], e.questions[index+1:])
	e.questions[index+1] = clone
	e.focus = index + 1
}

// RemoveQuestion deletes the question at index. If it was focused, focus
// shifts to max(0, index-1); a focused question after it keeps following its
// content as indices shift down.
func (e *Editor) RemoveQuestion(index int) {
	if index < 0 || index >= len(e.questions) {
		return
	}
	e.questions = append(e.questions[:index], e.questions[index+1:]...)
	switch {
	case e.focus == index:
		e.focus = max(0, index-1)
	case e.focus > index:
		e.focus--
	}
}

// MoveQuestion relocates a question; focus follows the moved item.
func (e *Editor) MoveQuestion(from, to int) {
	n := len(e.questions)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return
	}
	q := e.questions[from]
	e.questions = append(e.questions[:from], e.questions[from+1:]...)
	e.questions = append(e.questions[:to], append([]models.Question{q}, e.questions[to:]...)...)
	e.focus = to
}

// ChangeQuestionType switches the discriminant in place, allocating the new
// variant's content only when absent. The old variant's content stays as
// residue; nothing reads it for the new type.
func (e *Editor) ChangeQuestionType(index int, qt models.QuestionType) {
	if index < 0 || index >= len(e.questions) {
		return
	}
	e.questions[index].Type = qt
	e.questions[index].EnsureContent()
}

// ===== OPTION MUTATORS (multiple choice and ranking) =====

func (e *Editor) SetOption(index, option int, text string) {
	opts := e.options(index)
	if opts == nil || option < 0 || option >= len(*opts) {
		return
	}
	(*opts)[option] = text
}

func (e *Editor) AddOption(index int) {
	opts := e.options(index)
	if opts == nil {
		return
	}
	*opts = append(*opts, "")
}

// RemoveOption deletes an option; blocked below 2 options. On multiple
// choice, the removed index is dropped from the correct set and every stored
// index above it shifts down by one.
func (e *Editor) RemoveOption(index, option int) {
	opts := e.options(index)
	if opts == nil || option < 0 || option >= len(*opts) || len(*opts) <= 2 {
		return
	}
	*opts = append((*opts)[:option], (*opts)[option+1:]...)

	if mc := e.questions[index].MultipleChoiceContent; mc != nil && e.questions[index].Type == models.MultipleChoice {
		mc.CorrectAnswers = dropAndShift(mc.CorrectAnswers, option)
	}
}

// ToggleCorrectAnswer adds the option to the correct set if absent, removes
// it if present. The set stays sorted.
func (e *Editor) ToggleCorrectAnswer(index, option int) {
	if index < 0 || index >= len(e.questions) {
		return
	}
	q := &e.questions[index]
	if q.Type != models.MultipleChoice || q.MultipleChoiceContent == nil {
		return
	}
	mc := q.MultipleChoiceContent
	if option < 0 || option >= len(mc.Options) {
		return
	}
	for i, idx := range mc.CorrectAnswers {
		if idx == option {
			mc.CorrectAnswers = append(mc.CorrectAnswers[:i], mc.CorrectAnswers[i+1:]...)
			return
		}
	}
	mc.CorrectAnswers = append(mc.CorrectAnswers, option)
	sort.Ints(mc.CorrectAnswers)
}

// ===== MATRIX MUTATORS =====

func (e *Editor) AddMatrixRow(index int) {
	m := e.matrix(index)
	if m == nil {
		return
	}
	m.Rows = append(m.Rows, "")
}

func (e *Editor) AddMatrixColumn(index int) {
	m := e.matrix(index)
	if m == nil {
		return
	}
	m.Columns = append(m.Columns, "")
}

func (e *Editor) SetMatrixRow(index, row int, text string) {
	m := e.matrix(index)
	if m == nil || row < 0 || row >= len(m.Rows) {
		return
	}
	m.Rows[row] = text
}

func (e *Editor) SetMatrixColumn(index, col int, text string) {
	m := e.matrix(index)
	if m == nil || col < 0 || col >= len(m.Columns) {
		return
	}
	m.Columns[col] = text
}

// RemoveMatrixRow deletes a row; blocked below 1 row. The row's entry in the
// correct-answer map is dropped and every key above it decrements.
func (e *Editor) RemoveMatrixRow(index, row int) {
	m := e.matrix(index)
	if m == nil || row < 0 || row >= len(m.Rows) || len(m.Rows) <= 1 {
		return
	}
	m.Rows = append(m.Rows[:row], m.Rows[row+1:]...)

	reindexed := make(map[int][]int, len(m.CorrectAnswers))
	for r, cols := range m.CorrectAnswers {
		switch {
		case r < row:
			reindexed[r] = cols
		case r > row:
			reindexed[r-1] = cols
		}
	}
	m.CorrectAnswers = reindexed
}

// RemoveMatrixColumn deletes a column; blocked below 2 columns. Every row's
// correct set drops the removed index and shifts the ones above it.
func (e *Editor) RemoveMatrixColumn(index, col int) {
	m := e.matrix(index)
	if m == nil || col < 0 || col >= len(m.Columns) || len(m.Columns) <= 2 {
		return
	}
	m.Columns = append(m.Columns[:col], m.Columns[col+1:]...)

	for row, cols := range m.CorrectAnswers {
		m.CorrectAnswers[row] = dropAndShift(cols, col)
	}
}

// ToggleMatrixCell marks or unmarks a column as correct for a row.
func (e *Editor) ToggleMatrixCell(index, row, col int, checked bool) {
	m := e.matrix(index)
	if m == nil || row < 0 || row >= len(m.Rows) || col < 0 || col >= len(m.Columns) {
		return
	}
	cols := m.CorrectAnswers[row]
	for i, idx := range cols {
		if idx == col {
			if !checked {
				m.CorrectAnswers[row] = append(cols[:i], cols[i+1:]...)
			}
			return
		}
	}
	if checked {
		cols = append(cols, col)
		sort.Ints(cols)
		m.CorrectAnswers[row] = cols
	}
}

// ===== COMMON FIELD MUTATORS =====

func (e *Editor) SetQuestionText(index int, text string) {
	if index < 0 || index >= len(e.questions) {
		return
	}
	e.questions[index].Text = text
}

func (e *Editor) SetPoints(index, points int) {
	if index < 0 || index >= len(e.questions) || points < 1 {
		return
	}
	e.questions[index].Points = points
}

// options resolves the option slice for the question's current type, or nil
// when the type has no options concept.
func (e *Editor) options(index int) *[]string {
	if index < 0 || index >= len(e.questions) {
		return nil
	}
	q := &e.questions[index]
	switch q.Type {
	case models.MultipleChoice:
		if q.MultipleChoiceContent != nil {
			return &q.MultipleChoiceContent.Options
		}
	case models.Ranking:
		if q.RankingContent != nil {
			return &q.RankingContent.Options
		}
	}
	return nil
}

func (e *Editor) matrix(index int) *models.MatrixContent {
	if index < 0 || index >= len(e.questions) {
		return nil
	}
	q := &e.questions[index]
	if q.Type != models.Matrix {
		return nil
	}
	return q.MatrixContent
}

// dropAndShift removes the target index from a sorted index set and
// decrements every index greater than it.
func dropAndShift(indices []int, removed int) []int {
	out := indices[:0]
	for _, idx := range indices {
		switch {
		case idx < removed:
			out = append(out, idx)
		case idx > removed:
			out = append(out, idx-1)
		}
	}
	return out
}
