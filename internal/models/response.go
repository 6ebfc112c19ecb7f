package models

import "time"

// Answer is one answered question inside a submission. The question text and
// cardinality are snapshotted so later edits to the form do not rewrite
// collected data.
type Answer struct {
	QuestionID   int      `json:"question_id"`
	QuestionText string   `json:"question_text"`
	AnswerType   string   `json:"answer_type"`
	Answer       []string `json:"answer"`
}

type FormResponse struct {
	ID        int       `json:"id"`
	FormID    int       `json:"form_id"`
	Answers   []Answer  `json:"answers"`
	CreatedAt time.Time `json:"created_at"`
}
