package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"formiverse/internal/repositories"
	"formiverse/internal/utils"
)

const resetOTPTTL = 5 * time.Minute

type PasswordResetService interface {
	// RequestReset mails a reset code. Unknown emails are not reported.
	RequestReset(email string) error
	VerifyOTPAndChangePassword(email, otp, newPassword string) error
}

type passwordResetService struct {
	users  repositories.UserRepository
	resets repositories.PasswordResetRepository
	auth   AuthService
	emails EmailService
	otpTTL time.Duration
	now    func() time.Time
	genOTP func() (string, error)
}

func NewPasswordResetService(
	users repositories.UserRepository,
	resets repositories.PasswordResetRepository,
	auth AuthService,
	emails EmailService,
) PasswordResetService {
	return &passwordResetService{
		users:  users,
		resets: resets,
		auth:   auth,
		emails: emails,
		otpTTL: resetOTPTTL,
		now:    time.Now,
		genOTP: utils.GenerateOTP,
	}
}

func (s *passwordResetService) RequestReset(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalid)
	}
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		// don't leak account existence
		log.Printf("[password-reset][request] no account for %q", email)
		return nil
	}

	otp, err := s.genOTP()
	if err != nil {
		return err
	}
	otpHash, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash otp: %w", err)
	}
	if _, err := s.resets.Create(user.ID, string(otpHash), s.now().Add(s.otpTTL)); err != nil {
		return err
	}

	if err := s.emails.SendPasswordResetOTP(user.Email, otp); err != nil {
		log.Printf("[password-reset][request] warning: mail to %s failed: %v", user.Email, err)
	}
	return nil
}

func (s *passwordResetService) VerifyOTPAndChangePassword(email, otp, newPassword string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || strings.TrimSpace(otp) == "" || strings.TrimSpace(newPassword) == "" {
		return fmt.Errorf("%w: email, otp and new password are required", ErrInvalid)
	}
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrInvalid)
	}

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrCodeInvalid
	}
	rec, err := s.resets.GetLatestByUserID(user.ID)
	if err != nil {
		return err
	}
	if rec == nil || rec.UsedAt != nil {
		return ErrCodeInvalid
	}
	if s.now().After(rec.ExpiresAt) {
		return ErrCodeExpired
	}

	if bcrypt.CompareHashAndPassword([]byte(rec.OTPHash), []byte(otp)) != nil {
		attempts, incErr := s.resets.IncrementAttempts(rec.ID)
		if incErr != nil {
			return incErr
		}
		if attempts >= maxConfirmAttempts {
			_ = s.resets.ExpireNow(rec.ID)
			return ErrTooManyAttempts
		}
		return ErrCodeInvalid
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(user.ID, hash); err != nil {
		return err
	}
	if err := s.resets.MarkUsed(rec.ID); err != nil {
		return err
	}
	log.Printf("[password-reset][verify] OK user_id=%d", user.ID)
	return nil
}
