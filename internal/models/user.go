package models

import "time"

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	PasswordHash string `json:"-"` // never serialized

	// refresh-token state in DB
	RefreshTokenHash *string    `json:"-"` // bcrypt hash of the last issued refresh JWT
	TokenVersion     int        `json:"-"` // bumped on login and on every rotation
	RefreshExpiresAt *time.Time `json:"-"`

	// optional Telegram link for submission notifications
	TelegramChatID      int64 `json:"-"`
	NotifySubmissionsTG bool  `json:"notify_submissions_telegram"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}
