package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"formiverse/internal/models"
	"formiverse/internal/repositories"
	"formiverse/internal/utils"
)

const (
	registrationOTPTTL = 5 * time.Minute
	maxConfirmAttempts = 5
)

type RegistrationService interface {
	// Register stages the account and mails a one-time code.
	Register(username, fullName, email, password string) error
	// VerifyOTP promotes the pending registration to a full account.
	VerifyOTP(email, otp string) (*models.User, error)
}

type registrationService struct {
	pending repositories.PendingUserRepository
	users   repositories.UserRepository
	auth    AuthService
	emails  EmailService
	otpTTL  time.Duration
	now     func() time.Time
	genOTP  func() (string, error)
}

func NewRegistrationService(
	pending repositories.PendingUserRepository,
	users repositories.UserRepository,
	auth AuthService,
	emails EmailService,
) RegistrationService {
	return &registrationService{
		pending: pending,
		users:   users,
		auth:    auth,
		emails:  emails,
		otpTTL:  registrationOTPTTL,
		now:     time.Now,
		genOTP:  utils.GenerateOTP,
	}
}

func (s *registrationService) Register(username, fullName, email, password string) error {
	username = strings.TrimSpace(strings.ToLower(username))
	email = strings.TrimSpace(strings.ToLower(email))
	fullName = strings.TrimSpace(fullName)
	if username == "" || fullName == "" || email == "" || strings.TrimSpace(password) == "" {
		return fmt.Errorf("%w: all fields are required", ErrInvalid)
	}

	taken, err := s.users.ExistsByEmailOrUsername(email, username)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: user with this email or username", ErrConflict)
	}

	otp, err := s.genOTP()
	if err != nil {
		return err
	}
	otpHash, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash otp: %w", err)
	}
	// the password is hashed before it ever reaches the store; the pending
	// row never holds recoverable credentials
	passwordHash, err := s.auth.HashPassword(password)
	if err != nil {
		return err
	}

	p := &models.PendingUser{
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		OTPHash:      string(otpHash),
		ExpiresAt:    s.now().Add(s.otpTTL),
	}
	if err := s.pending.Upsert(p); err != nil {
		return err
	}

	if err := s.emails.SendOTPEmail(email, otp); err != nil {
		log.Printf("[register][send] warning: otp mail to %s failed: %v", email, err)
	}
	log.Printf("[register][send] pending created email=%s expires_at=%s", email, p.ExpiresAt.Format(time.RFC3339))
	return nil
}

func (s *registrationService) VerifyOTP(email, otp string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || strings.TrimSpace(otp) == "" {
		return nil, fmt.Errorf("%w: email and otp are required", ErrInvalid)
	}

	p, err := s.pending.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrCodeInvalid
	}
	if s.now().After(p.ExpiresAt) {
		return nil, ErrCodeExpired
	}

	if bcrypt.CompareHashAndPassword([]byte(p.OTPHash), []byte(otp)) != nil {
		attempts, incErr := s.pending.IncrementAttempts(p.ID)
		if incErr != nil {
			return nil, incErr
		}
		if attempts >= maxConfirmAttempts {
			_ = s.pending.ExpireNow(p.ID)
			return nil, ErrTooManyAttempts
		}
		return nil, ErrCodeInvalid
	}

	user := &models.User{
		Username:     p.Username,
		Email:        p.Email,
		FullName:     p.FullName,
		PasswordHash: p.PasswordHash, // already bcrypt, copied verbatim
	}
	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if err := s.pending.Delete(p.ID); err != nil {
		log.Printf("[register][verify] warning: pending cleanup failed id=%d: %v", p.ID, err)
	}

	log.Printf("[register][verify] OK user_id=%d email=%s", user.ID, user.Email)
	return user, nil
}
