package models

import "time"

// PendingUser is a registration waiting for OTP confirmation. Both the
// password and the code are stored as bcrypt hashes from the moment the row
// is created.
type PendingUser struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	OTPHash      string    `json:"-"`
	Attempts     int       `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// PasswordResetOTP is a reset code sent to an existing account.
type PasswordResetOTP struct {
	ID        int
	UserID    int
	OTPHash   string
	Attempts  int
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}
