package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendOTPEmail(email, otp string) error
	SendPasswordResetOTP(email, otp string) error
	SendFormLinkEmail(email, url string) error
	SendPlain(email, subject, text string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

func (s *emailService) SendOTPEmail(email, otp string) error {
	return s.send(email, "Your OTP Code", fmt.Sprintf("Your OTP Code is %s", otp))
}

func (s *emailService) SendPasswordResetOTP(email, otp string) error {
	body := fmt.Sprintf(
		"We received a request to reset the password for your account.\n\n"+
			"Your reset code is %s. It expires in 5 minutes.\n\n"+
			"If you did not request this change, you can ignore this email.",
		otp,
	)
	return s.send(email, "Password reset request", body)
}

func (s *emailService) SendFormLinkEmail(email, url string) error {
	body := fmt.Sprintf(
		"Hello,\n\nYou have been invited to submit a form. "+
			"You can access it using the following link:\n\n%s\n\nBest regards,\nFormiverse",
		url,
	)
	return s.send(email, "You've been invited to fill out a form!", body)
}

func (s *emailService) SendPlain(email, subject, text string) error {
	return s.send(email, subject, text)
}
