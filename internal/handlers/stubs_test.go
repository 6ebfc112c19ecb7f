package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"formiverse/internal/models"
	"formiverse/internal/services"
)

// withUser mimics what AuthMiddleware attaches to the context.
func withUser(u *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user", u)
		c.Set("user_id", u.ID)
		c.Next()
	}
}

type stubFormService struct {
	forms       map[int]*models.Form
	deleteErr   error
	lastDeleted int
}

func newStubFormService() *stubFormService {
	return &stubFormService{forms: map[int]*models.Form{}}
}

func (s *stubFormService) CreateFromTemplate(userID int, formType string) (*models.Form, error) {
	if _, ok := map[string]bool{
		services.FormTypeBlank: true, services.FormTypeParty: true,
		services.FormTypeContact: true, services.FormTypeFeedback: true,
	}[formType]; !ok {
		return nil, services.ErrInvalid
	}
	f := &models.Form{ID: len(s.forms) + 1, Heading: "Untitled Form", UserID: userID}
	s.forms[f.ID] = f
	return f, nil
}

func (s *stubFormService) GetForm(formID int) (*models.Form, error) {
	f, ok := s.forms[formID]
	if !ok {
		return nil, services.ErrNotFound
	}
	return f, nil
}

func (s *stubFormService) ListForms(userID int) ([]*models.FormSummary, error) {
	return nil, nil
}

func (s *stubFormService) UpdateForm(formID int, heading, description string, questions []*models.Question) (*models.Form, error) {
	f, err := s.GetForm(formID)
	if err != nil {
		return nil, err
	}
	f.Heading = heading
	f.Description = description
	return f, nil
}

func (s *stubFormService) AddQuestion(q *models.Question) (*models.Question, error) {
	q.ID = 99
	return q, nil
}

func (s *stubFormService) GetQuestion(questionID int) (*models.Question, error) {
	return nil, services.ErrNotFound
}

func (s *stubFormService) DeleteQuestion(questionID int) (*models.Form, error) {
	return nil, services.ErrNotFound
}

func (s *stubFormService) DeleteForm(userID, formID int) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.lastDeleted = formID
	return nil
}

// stubAuthSvc satisfies services.AuthService with canned behavior.
type stubAuthSvc struct {
	refreshErr error
	issued     int
}

func (s *stubAuthSvc) HashPassword(plain string) (string, error) { return "hashed:" + plain, nil }
func (s *stubAuthSvc) CheckPassword(hash, plain string) bool     { return hash == "hashed:"+plain }
func (s *stubAuthSvc) IssueTokens(user *models.User, accessTTL time.Duration) (*services.TokenPair, error) {
	s.issued++
	return &services.TokenPair{AccessToken: "access-jwt", RefreshToken: "refresh-jwt"}, nil
}
func (s *stubAuthSvc) VerifyAccessToken(token string) (*services.AccessClaims, error) {
	return nil, services.ErrUnauthorized
}
func (s *stubAuthSvc) Refresh(refreshToken string) (*models.User, *services.TokenPair, error) {
	if s.refreshErr != nil {
		return nil, nil, s.refreshErr
	}
	if refreshToken != "refresh-jwt" {
		return nil, nil, services.ErrUnauthorized
	}
	return &models.User{ID: 1}, &services.TokenPair{AccessToken: "access-jwt-2", RefreshToken: "refresh-jwt-2"}, nil
}
func (s *stubAuthSvc) ChangePassword(email, oldPassword, newPassword string) error { return nil }
func (s *stubAuthSvc) AccessTTL() time.Duration                                    { return 15 * time.Minute }
func (s *stubAuthSvc) LoginAccessTTL() time.Duration                               { return 2 * time.Hour }
func (s *stubAuthSvc) RefreshTTL() time.Duration                                   { return 7 * 24 * time.Hour }

type stubUserLookup struct {
	user *models.User
}

func (s *stubUserLookup) Create(user *models.User) error { return nil }
func (s *stubUserLookup) GetByID(id int) (*models.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, nil
}
func (s *stubUserLookup) GetByEmail(email string) (*models.User, error) { return nil, nil }
func (s *stubUserLookup) GetByEmailOrUsername(email, username string) (*models.User, error) {
	if s.user != nil && (s.user.Email == email || s.user.Username == username) {
		cp := *s.user
		return &cp, nil
	}
	return nil, nil
}
func (s *stubUserLookup) ExistsByEmailOrUsername(email, username string) (bool, error) {
	return false, nil
}
func (s *stubUserLookup) UpdatePassword(userID int, passwordHash string) error { return nil }
func (s *stubUserLookup) UpdateRefresh(userID int, tokenHash string, expiresAt time.Time, tokenVersion int) error {
	return nil
}
func (s *stubUserLookup) ClearRefresh(userID int) error { return nil }
func (s *stubUserLookup) UpdateTelegramLink(userID int, chatID int64, enable bool) error {
	return nil
}
