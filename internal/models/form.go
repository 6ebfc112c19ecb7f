package models

import "time"

type Form struct {
	ID          int       `json:"id"`
	Heading     string    `json:"heading"`
	Description string    `json:"description"`
	UserID      int       `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Derived from the questions table (form_id + position); not stored on
	// the form row itself.
	Questions []*Question `json:"questions,omitempty"`
}

// FormSummary is a list-view row: form metadata plus counts computed by the
// repository in the same query.
type FormSummary struct {
	ID              int       `json:"id"`
	Heading         string    `json:"heading"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"created_at"`
	QuestionsCount  int       `json:"questions_count"`
	SubmissionCount int       `json:"submission_count"`
}
