package services

import (
	"fmt"
	"log"
	"time"

	"formiverse/internal/models"
	"formiverse/internal/pdf"
	"formiverse/internal/repositories"
)

// SubmissionNotifier pushes an out-of-band note to a form owner. Telegram in
// production, a stub in tests; nil disables notifications entirely.
type SubmissionNotifier interface {
	NotifySubmission(chatID int64, formHeading string, answerCount int) error
}

type ResponseService interface {
	Submit(formID int, answers []models.Answer) (*models.FormResponse, error)
	ListByForm(formID int) ([]*models.FormResponse, error)
	DeleteByForm(formID int) (int64, error)
	// ExportPDF renders the form's responses to a sheet on disk, owner only.
	ExportPDF(userID, formID int) (string, error)
}

type responseService struct {
	responses repositories.ResponseRepository
	forms     repositories.FormRepository
	questions repositories.QuestionRepository
	users     repositories.UserRepository
	notifier  SubmissionNotifier
	exporter  pdf.Exporter
}

func NewResponseService(
	responses repositories.ResponseRepository,
	forms repositories.FormRepository,
	questions repositories.QuestionRepository,
	users repositories.UserRepository,
	notifier SubmissionNotifier,
	exporter pdf.Exporter,
) ResponseService {
	return &responseService{
		responses: responses,
		forms:     forms,
		questions: questions,
		users:     users,
		notifier:  notifier,
		exporter:  exporter,
	}
}

func (s *responseService) Submit(formID int, answers []models.Answer) (*models.FormResponse, error) {
	if len(answers) == 0 {
		return nil, fmt.Errorf("%w: answers are required", ErrInvalid)
	}
	form, err := s.forms.GetByID(formID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrNotFound
	}

	resp := &models.FormResponse{FormID: formID, Answers: answers}
	if err := s.responses.Create(resp); err != nil {
		return nil, err
	}
	log.Printf("[response][submit] form_id=%d response_id=%d answers=%d", formID, resp.ID, len(answers))

	s.notifyOwner(form, len(answers))
	return resp, nil
}

// notifyOwner is best effort; delivery problems never fail the submission.
func (s *responseService) notifyOwner(form *models.Form, answerCount int) {
	if s.notifier == nil {
		return
	}
	owner, err := s.users.GetByID(form.UserID)
	if err != nil || owner == nil {
		log.Printf("[response][notify] owner lookup failed form_id=%d: %v", form.ID, err)
		return
	}
	if owner.TelegramChatID == 0 || !owner.NotifySubmissionsTG {
		return
	}
	if err := s.notifier.NotifySubmission(owner.TelegramChatID, form.Heading, answerCount); err != nil {
		log.Printf("[response][notify] telegram failed user_id=%d form_id=%d: %v", owner.ID, form.ID, err)
	}
}

func (s *responseService) ListByForm(formID int) ([]*models.FormResponse, error) {
	form, err := s.forms.GetByID(formID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrNotFound
	}
	return s.responses.ListByForm(formID)
}

func (s *responseService) DeleteByForm(formID int) (int64, error) {
	form, err := s.forms.GetByID(formID)
	if err != nil {
		return 0, err
	}
	if form == nil {
		return 0, ErrNotFound
	}
	n, err := s.responses.DeleteByForm(formID)
	if err != nil {
		return 0, err
	}
	log.Printf("[response][delete] form_id=%d removed=%d", formID, n)
	return n, nil
}

func (s *responseService) ExportPDF(userID, formID int) (string, error) {
	if s.exporter == nil {
		return "", fmt.Errorf("%w: export not configured", ErrInvalid)
	}
	form, err := s.forms.GetByID(formID)
	if err != nil {
		return "", err
	}
	if form == nil {
		return "", ErrNotFound
	}
	if form.UserID != userID {
		return "", ErrForbidden
	}
	responses, err := s.responses.ListByForm(formID)
	if err != nil {
		return "", err
	}

	sheet := pdf.ResponseSheet{
		FormID:      form.ID,
		Heading:     form.Heading,
		Description: form.Description,
		GeneratedAt: time.Now(),
	}
	for _, r := range responses {
		entry := pdf.ResponseEntry{SubmittedAt: r.CreatedAt}
		for _, a := range r.Answers {
			entry.Answers = append(entry.Answers, pdf.AnswerLine{
				Question: a.QuestionText,
				Values:   a.Answer,
			})
		}
		sheet.Responses = append(sheet.Responses, entry)
	}
	return s.exporter.GenerateResponseSheet(sheet)
}
