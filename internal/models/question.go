package models

import "time"

// Question types accepted by the store.
const (
	QuestionTypeEmail     = "email"
	QuestionTypeParagraph = "paragraph"
	QuestionTypeMCQ       = "mcq"
	QuestionTypeCheckbox  = "checkbox"
	QuestionTypeDropdown  = "dropdown"
	QuestionTypeDate      = "date"
	QuestionTypeTime      = "time"
	QuestionTypeURL       = "url"
)

// Answer cardinality.
const (
	AnswerTypeSingle   = "single"
	AnswerTypeMultiple = "multiple"
)

func IsValidQuestionType(t string) bool {
	switch t {
	case QuestionTypeEmail, QuestionTypeParagraph, QuestionTypeMCQ,
		QuestionTypeCheckbox, QuestionTypeDropdown, QuestionTypeDate,
		QuestionTypeTime, QuestionTypeURL:
		return true
	}
	return false
}

func IsValidAnswerType(t string) bool {
	return t == AnswerTypeSingle || t == AnswerTypeMultiple
}

type Question struct {
	ID                  int       `json:"id"`
	FormID              int       `json:"form_id"`
	QuestionText        string    `json:"question_text"`
	QuestionDescription string    `json:"question_description"`
	QuestionType        string    `json:"question_type"`
	Options             []string  `json:"options"`
	Required            bool      `json:"required"`
	AnswerType          string    `json:"answer_type"`
	Position            int       `json:"position"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
