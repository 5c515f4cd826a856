package models

// Submitted-answer shapes for each question variant. The attempt and grading
// flow lives in a separate service; it scores these against
// MultipleChoiceContent.CorrectAnswers, MatrixContent.CorrectAnswers and
// RankingContent.CorrectOrder.

type MultipleChoiceAnswer struct {
	SelectedOptions []int `json:"selected_options"`
	TimeSpent       int   `json:"time_spent"`
}

type MatrixAnswer struct {
	Selections map[int][]int `json:"selections"` // row index -> selected column indices
	TimeSpent  int           `json:"time_spent"`
}

type RankingAnswer struct {
	Order     []int `json:"order"` // option indices in the submitted order
	TimeSpent int   `json:"time_spent"`
}
