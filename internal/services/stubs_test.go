package services

import (
	"database/sql"
	"fmt"
	"time"

	"formiverse/internal/models"
)

// In-memory repository stubs so service tests run without Postgres.

type stubUserRepo struct {
	users  map[int]*models.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[int]*models.User{}, nextID: 1}
}

func (r *stubUserRepo) Create(user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *stubUserRepo) GetByID(id int) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) GetByEmailOrUsername(email, username string) (*models.User, error) {
	for _, u := range r.users {
		if (email != "" && u.Email == email) || (username != "" && u.Username == username) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) ExistsByEmailOrUsername(email, username string) (bool, error) {
	u, err := r.GetByEmailOrUsername(email, username)
	return u != nil, err
}

func (r *stubUserRepo) UpdatePassword(userID int, passwordHash string) error {
	u, ok := r.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *stubUserRepo) UpdateRefresh(userID int, tokenHash string, expiresAt time.Time, tokenVersion int) error {
	u, ok := r.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	u.RefreshTokenHash = &tokenHash
	u.RefreshExpiresAt = &expiresAt
	u.TokenVersion = tokenVersion
	return nil
}

func (r *stubUserRepo) ClearRefresh(userID int) error {
	u, ok := r.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	u.RefreshTokenHash = nil
	u.RefreshExpiresAt = nil
	return nil
}

func (r *stubUserRepo) UpdateTelegramLink(userID int, chatID int64, enable bool) error {
	u, ok := r.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	u.TelegramChatID = chatID
	u.NotifySubmissionsTG = enable
	return nil
}

type stubPendingRepo struct {
	byEmail map[string]*models.PendingUser
	nextID  int
	deleted []int
}

func newStubPendingRepo() *stubPendingRepo {
	return &stubPendingRepo{byEmail: map[string]*models.PendingUser{}, nextID: 1}
}

func (r *stubPendingRepo) Upsert(p *models.PendingUser) error {
	if old, ok := r.byEmail[p.Email]; ok {
		p.ID = old.ID
	} else {
		p.ID = r.nextID
		r.nextID++
	}
	p.Attempts = 0
	cp := *p
	r.byEmail[p.Email] = &cp
	return nil
}

func (r *stubPendingRepo) GetByEmail(email string) (*models.PendingUser, error) {
	p, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *stubPendingRepo) find(id int) *models.PendingUser {
	for _, p := range r.byEmail {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *stubPendingRepo) IncrementAttempts(id int) (int, error) {
	p := r.find(id)
	if p == nil {
		return 0, sql.ErrNoRows
	}
	p.Attempts++
	return p.Attempts, nil
}

func (r *stubPendingRepo) ExpireNow(id int) error {
	p := r.find(id)
	if p == nil {
		return sql.ErrNoRows
	}
	p.ExpiresAt = time.Now().Add(-time.Minute)
	return nil
}

func (r *stubPendingRepo) Delete(id int) error {
	for email, p := range r.byEmail {
		if p.ID == id {
			delete(r.byEmail, email)
			r.deleted = append(r.deleted, id)
			return nil
		}
	}
	return sql.ErrNoRows
}

type stubResetRepo struct {
	records []*models.PasswordResetOTP
	nextID  int
}

func newStubResetRepo() *stubResetRepo { return &stubResetRepo{nextID: 1} }

func (r *stubResetRepo) Create(userID int, otpHash string, expiresAt time.Time) (int, error) {
	rec := &models.PasswordResetOTP{
		ID:        r.nextID,
		UserID:    userID,
		OTPHash:   otpHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	r.nextID++
	r.records = append(r.records, rec)
	return rec.ID, nil
}

func (r *stubResetRepo) GetLatestByUserID(userID int) (*models.PasswordResetOTP, error) {
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].UserID == userID {
			cp := *r.records[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubResetRepo) find(id int) *models.PasswordResetOTP {
	for _, rec := range r.records {
		if rec.ID == id {
			return rec
		}
	}
	return nil
}

func (r *stubResetRepo) IncrementAttempts(id int) (int, error) {
	rec := r.find(id)
	if rec == nil {
		return 0, sql.ErrNoRows
	}
	rec.Attempts++
	return rec.Attempts, nil
}

func (r *stubResetRepo) ExpireNow(id int) error {
	rec := r.find(id)
	if rec == nil {
		return sql.ErrNoRows
	}
	rec.ExpiresAt = time.Now().Add(-time.Minute)
	return nil
}

func (r *stubResetRepo) MarkUsed(id int) error {
	rec := r.find(id)
	if rec == nil {
		return sql.ErrNoRows
	}
	now := time.Now()
	rec.UsedAt = &now
	return nil
}

type stubFormRepo struct {
	forms  map[int]*models.Form
	nextID int
}

func newStubFormRepo() *stubFormRepo {
	return &stubFormRepo{forms: map[int]*models.Form{}, nextID: 1}
}

func (r *stubFormRepo) Create(form *models.Form) error {
	form.ID = r.nextID
	r.nextID++
	form.CreatedAt = time.Now()
	form.UpdatedAt = form.CreatedAt
	cp := *form
	cp.Questions = nil
	r.forms[form.ID] = &cp
	return nil
}

func (r *stubFormRepo) GetByID(id int) (*models.Form, error) {
	f, ok := r.forms[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (r *stubFormRepo) ListSummariesByUser(userID int) ([]*models.FormSummary, error) {
	var out []*models.FormSummary
	for _, f := range r.forms {
		if f.UserID == userID {
			out = append(out, &models.FormSummary{
				ID:          f.ID,
				Heading:     f.Heading,
				Description: f.Description,
			})
		}
	}
	return out, nil
}

func (r *stubFormRepo) UpdateWithQuestions(form *models.Form, questions []*models.Question) error {
	f, ok := r.forms[form.ID]
	if !ok {
		return fmt.Errorf("form %d: %w", form.ID, sql.ErrNoRows)
	}
	f.Heading = form.Heading
	f.Description = form.Description
	f.UpdatedAt = time.Now()
	return nil
}

func (r *stubFormRepo) Delete(id int) error {
	if _, ok := r.forms[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.forms, id)
	return nil
}

type stubQuestionRepo struct {
	questions map[int]*models.Question
	nextID    int
}

func newStubQuestionRepo() *stubQuestionRepo {
	return &stubQuestionRepo{questions: map[int]*models.Question{}, nextID: 1}
}

func (r *stubQuestionRepo) Create(q *models.Question) error {
	q.ID = r.nextID
	r.nextID++
	maxPos := 0
	for _, other := range r.questions {
		if other.FormID == q.FormID && other.Position > maxPos {
			maxPos = other.Position
		}
	}
	q.Position = maxPos + 1
	cp := *q
	r.questions[q.ID] = &cp
	return nil
}

func (r *stubQuestionRepo) GetByID(id int) (*models.Question, error) {
	q, ok := r.questions[id]
	if !ok {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

func (r *stubQuestionRepo) ListByForm(formID int) ([]*models.Question, error) {
	maxPos := 0
	for _, q := range r.questions {
		if q.FormID == formID && q.Position > maxPos {
			maxPos = q.Position
		}
	}
	var out []*models.Question
	for pos := 1; pos <= maxPos; pos++ {
		for _, q := range r.questions {
			if q.FormID == formID && q.Position == pos {
				cp := *q
				out = append(out, &cp)
			}
		}
	}
	return out, nil
}

func (r *stubQuestionRepo) Delete(id int) error {
	if _, ok := r.questions[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.questions, id)
	return nil
}

type stubResponseRepo struct {
	responses []*models.FormResponse
	nextID    int
}

func newStubResponseRepo() *stubResponseRepo { return &stubResponseRepo{nextID: 1} }

func (r *stubResponseRepo) Create(resp *models.FormResponse) error {
	resp.ID = r.nextID
	r.nextID++
	resp.CreatedAt = time.Now()
	cp := *resp
	r.responses = append(r.responses, &cp)
	return nil
}

func (r *stubResponseRepo) ListByForm(formID int) ([]*models.FormResponse, error) {
	var out []*models.FormResponse
	for _, resp := range r.responses {
		if resp.FormID == formID {
			cp := *resp
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *stubResponseRepo) DeleteByForm(formID int) (int64, error) {
	var kept []*models.FormResponse
	var n int64
	for _, resp := range r.responses {
		if resp.FormID == formID {
			n++
			continue
		}
		kept = append(kept, resp)
	}
	r.responses = kept
	return n, nil
}

// stubEmails records outgoing mail instead of dialing SMTP.
type stubEmails struct {
	otps      []string
	resetOTPs []string
	failNext  bool
}

func (s *stubEmails) SendOTPEmail(email, otp string) error {
	if s.failNext {
		s.failNext = false
		return fmt.Errorf("smtp down")
	}
	s.otps = append(s.otps, otp)
	return nil
}

func (s *stubEmails) SendPasswordResetOTP(email, otp string) error {
	s.resetOTPs = append(s.resetOTPs, otp)
	return nil
}

func (s *stubEmails) SendFormLinkEmail(email, url string) error { return nil }
func (s *stubEmails) SendPlain(email, subject, text string) error {
	return nil
}

type stubNotifier struct {
	calls []string
}

func (s *stubNotifier) NotifySubmission(chatID int64, formHeading string, answerCount int) error {
	s.calls = append(s.calls, fmt.Sprintf("%d:%s:%d", chatID, formHeading, answerCount))
	return nil
}

func fixedOTP(code string) func() (string, error) {
	return func() (string, error) { return code, nil }
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
