package models

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	Matrix         QuestionType = "matrix"
	Ranking        QuestionType = "ranking"
)

// Question is one entry in a quiz's ordered question list. It has no identity of
// its own and lives only inside Quiz.Questions; the variant payload sits behind
// the pointer matching Type. Content for a previously selected type may remain
// populated after a type switch but is never read for the current type.
type Question struct {
	Type              QuestionType `json:"question_type" validate:"required,question_type"`
	Text              string       `json:"question"`
	ImageURL          *string      `json:"image_url,omitempty"`
	Points            int          `json:"points" validate:"min=1"`
	Explanation       *string      `json:"explanation,omitempty"`
	RationaleVideoURL *string      `json:"rationale_video_url,omitempty"`

	MultipleChoiceContent *MultipleChoiceContent `json:"multiple_choice,omitempty"`
	MatrixContent         *MatrixContent         `json:"matrix,omitempty"`
	RankingContent        *RankingContent        `json:"ranking,omitempty"`
}

// MultipleChoiceContent holds the options and the set of correct option indices.
// CorrectAnswers is kept sorted ascending so two contents compare structurally.
type MultipleChoiceContent struct {
	Options []string `json:"options"`
	// CorrectAnswers indexes into Options.
	CorrectAnswers []int `json:"correct_answer"`
	// RequiredAnswersCount of 0 means any number of selections is accepted.
	RequiredAnswersCount int `json:"required_answers_count,omitempty"`
}

// MatrixContent is a grid question: every row must have at least one correct
// column. CorrectAnswers maps row index to the set of correct column indices.
type MatrixContent struct {
	Rows           []string      `json:"matrix_rows"`
	Columns        []string      `json:"matrix_columns"`
	CorrectAnswers map[int][]int `json:"matrix_correct_answers"`
}

// RankingContent stores options in their correct order; CorrectOrder is always
// re-derived at save time as the identity permutation of Options.
type RankingContent struct {
	Options      []string `json:"options"`
	CorrectOrder []int    `json:"ranking_correct_order,omitempty"`
}

// NewQuestion returns a question of the given type with authoring defaults:
// two empty options for multiple choice and ranking, a 1x2 grid for matrix.
func NewQuestion(qt QuestionType) Question {
	q := Question{
		Type:   qt,
		Points: 1,
	}
	q.EnsureContent()
	return q
}

// EnsureContent allocates the content struct for the current type if it is
// missing. Content belonging to other types is left untouched.
func (q *Question) EnsureContent() {
	switch q.Type {
	case MultipleChoice:
		if q.MultipleChoiceContent == nil {
			q.MultipleChoiceContent = &MultipleChoiceContent{
				Options:        []string{"", ""},
				CorrectAnswers: []int{},
			}
		}
	case Matrix:
		if q.MatrixContent == nil {
			q.MatrixContent = &MatrixContent{
				Rows:           []string{""},
				Columns:        []string{"", ""},
				CorrectAnswers: map[int][]int{},
			}
		}
	case Ranking:
		if q.RankingContent == nil {
			q.RankingContent = &RankingContent{
				Options: []string{"", ""},
			}
		}
	}
}

// Clone returns a deep copy sharing no mutable state with the receiver.
func (q Question) Clone() Question {
	c := q
	c.ImageURL = cloneStringPtr(q.ImageURL)
	c.Explanation = cloneStringPtr(q.Explanation)
	c.RationaleVideoURL = cloneStringPtr(q.RationaleVideoURL)
	if q.MultipleChoiceContent != nil {
		c.MultipleChoiceContent = q.MultipleChoiceContent.Clone()
	}
	if q.MatrixContent != nil {
		c.MatrixContent = q.MatrixContent.Clone()
	}
	if q.RankingContent != nil {
		c.RankingContent = q.RankingContent.Clone()
	}
	return c
}

func (m *MultipleChoiceContent) Clone() *MultipleChoiceContent {
	c := &MultipleChoiceContent{
		Options:              append([]string(nil), m.Options...),
		CorrectAnswers:       append([]int(nil), m.CorrectAnswers...),
		RequiredAnswersCount: m.RequiredAnswersCount,
	}
	return c
}

func (m *MatrixContent) Clone() *MatrixContent {
	c := &MatrixContent{
		Rows:           append([]string(nil), m.Rows...),
		Columns:        append([]string(nil), m.Columns...),
		CorrectAnswers: make(map[int][]int, len(m.CorrectAnswers)),
	}
	for row, cols := range m.CorrectAnswers {
		c.CorrectAnswers[row] = append([]int(nil), cols...)
	}
	return c
}

func (r *RankingContent) Clone() *RankingContent {
	return &RankingContent{
		Options:      append([]string(nil), r.Options...),
		CorrectOrder: append([]int(nil), r.CorrectOrder...),
	}
}

// IsCorrectAnswer reports whether the option index is in the correct set.
func (m *MultipleChoiceContent) IsCorrectAnswer(option int) bool {
	for _, idx := range m.CorrectAnswers {
		if idx == option {
			return true
		}
	}
	return false
}

// IsCorrectCell reports whether the column is marked correct for the row.
func (m *MatrixContent) IsCorrectCell(row, col int) bool {
	for _, idx := range m.CorrectAnswers[row] {
		if idx == col {
			return true
		}
	}
	return false
}

func cloneStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
