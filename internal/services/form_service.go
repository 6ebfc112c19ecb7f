package services

import (
	"fmt"
	"log"

	"formiverse/internal/models"
	"formiverse/internal/repositories"
)

// Form presets selectable at creation time.
const (
	FormTypeBlank    = "blank_form"
	FormTypeParty    = "party_invite"
	FormTypeContact  = "contact_form"
	FormTypeFeedback = "feedback_form"
)

type formTemplate struct {
	heading     string
	description string
	questions   []models.Question
}

var formTemplates = map[string]formTemplate{
	FormTypeParty: {
		heading:     "Party Invitation",
		description: "Join us for a fun party!",
		questions: []models.Question{
			{
				QuestionText:        "Your Name",
				QuestionDescription: "Please enter your name.",
				QuestionType:        models.QuestionTypeParagraph,
				AnswerType:          models.AnswerTypeSingle,
				Required:            true,
			},
			{
				QuestionText:        "Will you attend?",
				QuestionDescription: "Let us know if you can make it.",
				QuestionType:        models.QuestionTypeMCQ,
				Options:             []string{"Yes", "No", "Maybe"},
				AnswerType:          models.AnswerTypeSingle,
				Required:            true,
			},
		},
	},
	FormTypeContact: {
		heading:     "Contact Us",
		description: "We'd love to hear from you!",
		questions: []models.Question{
			{
				QuestionText:        "Your Name",
				QuestionDescription: "Please enter your name.",
				QuestionType:        models.QuestionTypeParagraph,
				AnswerType:          models.AnswerTypeSingle,
				Required:            true,
			},
			{
				QuestionText:        "Your Email",
				QuestionDescription: "Please enter your email address.",
				QuestionType:        models.QuestionTypeParagraph,
				AnswerType:          models.AnswerTypeSingle,
				Required:            true,
			},
			{
				QuestionText:        "Your Message",
				QuestionDescription: "What would you like to say?",
				QuestionType:        models.QuestionTypeParagraph,
				AnswerType:          models.AnswerTypeMultiple,
				Required:            true,
			},
		},
	},
	FormTypeFeedback: {
		heading:     "Feedback Form",
		description: "We appreciate your feedback!",
		questions: []models.Question{
			{
				QuestionText:        "Rate your experience",
				QuestionDescription: "How would you rate your experience?",
				QuestionType:        models.QuestionTypeMCQ,
				Options:             []string{"1", "2", "3", "4", "5"},
				AnswerType:          models.AnswerTypeSingle,
				Required:            true,
			},
			{
				QuestionText:        "What did you like?",
				QuestionDescription: "Please share what you liked.",
				QuestionType:        models.QuestionTypeParagraph,
				AnswerType:          models.AnswerTypeSingle,
				Required:            true,
			},
			{
				QuestionText:        "What can be improved?",
				QuestionDescription: "Please share your suggestions.",
				QuestionType:        models.QuestionTypeParagraph,
				AnswerType:          models.AnswerTypeSingle,
				Required:            true,
			},
		},
	},
	FormTypeBlank: {
		heading:     "Untitled Form",
		description: "Add a description",
		questions: []models.Question{
			{
				QuestionType: models.QuestionTypeParagraph,
				AnswerType:   models.AnswerTypeSingle,
			},
			{
				QuestionType: models.QuestionTypeMCQ,
				Options:      []string{"Option 1"},
				AnswerType:   models.AnswerTypeSingle,
			},
		},
	},
}

type FormService interface {
	CreateFromTemplate(userID int, formType string) (*models.Form, error)
	GetForm(formID int) (*models.Form, error)
	ListForms(userID int) ([]*models.FormSummary, error)
	UpdateForm(formID int, heading, description string, questions []*models.Question) (*models.Form, error)
	AddQuestion(q *models.Question) (*models.Question, error)
	GetQuestion(questionID int) (*models.Question, error)
	DeleteQuestion(questionID int) (*models.Form, error)
	DeleteForm(userID, formID int) error
}

type formService struct {
	forms     repositories.FormRepository
	questions repositories.QuestionRepository
}

func NewFormService(forms repositories.FormRepository, questions repositories.QuestionRepository) FormService {
	return &formService{forms: forms, questions: questions}
}

func (s *formService) CreateFromTemplate(userID int, formType string) (*models.Form, error) {
	tpl, ok := formTemplates[formType]
	if !ok {
		return nil, fmt.Errorf("%w: invalid form type %q", ErrInvalid, formType)
	}

	form := &models.Form{
		Heading:     tpl.heading,
		Description: tpl.description,
		UserID:      userID,
	}
	if err := s.forms.Create(form); err != nil {
		return nil, err
	}

	for i := range tpl.questions {
		q := tpl.questions[i] // copy the preset
		q.FormID = form.ID
		if err := s.questions.Create(&q); err != nil {
			return nil, err
		}
		form.Questions = append(form.Questions, &q)
	}

	log.Printf("[form][create] user_id=%d form_id=%d type=%s questions=%d",
		userID, form.ID, formType, len(form.Questions))
	return form, nil
}

func (s *formService) GetForm(formID int) (*models.Form, error) {
	form, err := s.forms.GetByID(formID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrNotFound
	}
	qs, err := s.questions.ListByForm(formID)
	if err != nil {
		return nil, err
	}
	form.Questions = qs
	return form, nil
}

func (s *formService) ListForms(userID int) ([]*models.FormSummary, error) {
	return s.forms.ListSummariesByUser(userID)
}

func (s *formService) UpdateForm(formID int, heading, description string, questions []*models.Question) (*models.Form, error) {
	if heading == "" || description == "" {
		return nil, fmt.Errorf("%w: heading and description are required", ErrInvalid)
	}
	for _, q := range questions {
		// the update only overwrites existing questions; a question without
		// an id fails the whole request
		if q.ID == 0 {
			return nil, fmt.Errorf("%w: question id is required", ErrInvalid)
		}
		if q.AnswerType != "" && !models.IsValidAnswerType(q.AnswerType) {
			return nil, fmt.Errorf("%w: invalid answer type %q", ErrInvalid, q.AnswerType)
		}
	}

	form := &models.Form{ID: formID, Heading: heading, Description: description}
	if err := s.forms.UpdateWithQuestions(form, questions); err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.GetForm(formID)
}

func (s *formService) AddQuestion(q *models.Question) (*models.Question, error) {
	if q.FormID == 0 || q.QuestionType == "" {
		return nil, fmt.Errorf("%w: form id and question type are required", ErrInvalid)
	}
	if !models.IsValidQuestionType(q.QuestionType) {
		return nil, fmt.Errorf("%w: invalid question type %q", ErrInvalid, q.QuestionType)
	}
	if q.AnswerType == "" {
		q.AnswerType = models.AnswerTypeSingle
	}
	if !models.IsValidAnswerType(q.AnswerType) {
		return nil, fmt.Errorf("%w: invalid answer type %q", ErrInvalid, q.AnswerType)
	}

	form, err := s.forms.GetByID(q.FormID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrNotFound
	}

	if len(q.Options) == 0 &&
		(q.QuestionType == models.QuestionTypeMCQ || q.QuestionType == models.QuestionTypeCheckbox) {
		q.Options = []string{""}
	}
	if err := s.questions.Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *formService) GetQuestion(questionID int) (*models.Question, error) {
	q, err := s.questions.GetByID(questionID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrNotFound
	}
	return q, nil
}

// DeleteQuestion removes the question and returns the owning form with its
// remaining questions. The form's order list is derived from the questions
// table, so a single delete keeps everything consistent.
func (s *formService) DeleteQuestion(questionID int) (*models.Form, error) {
	q, err := s.questions.GetByID(questionID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrNotFound
	}
	if err := s.questions.Delete(questionID); err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.GetForm(q.FormID)
}

func (s *formService) DeleteForm(userID, formID int) error {
	form, err := s.forms.GetByID(formID)
	if err != nil {
		return err
	}
	if form == nil {
		return ErrNotFound
	}
	if form.UserID != userID {
		return ErrForbidden
	}
	if err := s.forms.Delete(formID); err != nil {
		return err
	}
	log.Printf("[form][delete] user_id=%d form_id=%d", userID, formID)
	return nil
}
