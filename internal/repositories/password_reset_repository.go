package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"formiverse/internal/models"
)

type PasswordResetRepository interface {
	Create(userID int, otpHash string, expiresAt time.Time) (int, error)
	GetLatestByUserID(userID int) (*models.PasswordResetOTP, error)
	IncrementAttempts(id int) (int, error)
	ExpireNow(id int) error
	MarkUsed(id int) error
}

type passwordResetRepository struct {
	DB *sql.DB
}

func NewPasswordResetRepository(db *sql.DB) PasswordResetRepository {
	return &passwordResetRepository{DB: db}
}

func (r *passwordResetRepository) Create(userID int, otpHash string, expiresAt time.Time) (int, error) {
	var id int
	err := r.DB.QueryRow(`
		INSERT INTO password_reset_otps (user_id, otp_hash, expires_at)
		VALUES ($1,$2,$3)
		RETURNING id
	`, userID, otpHash, expiresAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("password_reset create: %w", err)
	}
	return id, nil
}

// GetLatestByUserID returns the most recent code for the account.
func (r *passwordResetRepository) GetLatestByUserID(userID int) (*models.PasswordResetOTP, error) {
	const q = `
		SELECT id, user_id, otp_hash, attempts, expires_at, used_at, created_at
		FROM password_reset_otps
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	var (
		p      models.PasswordResetOTP
		usedAt sql.NullTime
	)
	err := r.DB.QueryRow(q, userID).Scan(
		&p.ID, &p.UserID, &p.OTPHash, &p.Attempts, &p.ExpiresAt, &usedAt, &p.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("password_reset latest: %w", err)
	}
	if usedAt.Valid {
		t := usedAt.Time
		p.UsedAt = &t
	}
	return &p, nil
}

func (r *passwordResetRepository) IncrementAttempts(id int) (int, error) {
	var attempts int
	err := r.DB.QueryRow(`
		UPDATE password_reset_otps
		SET attempts = attempts + 1
		WHERE id = $1
		RETURNING attempts
	`, id).Scan(&attempts)
	if err != nil {
		return 0, fmt.Errorf("password_reset increment attempts: %w", err)
	}
	return attempts, nil
}

func (r *passwordResetRepository) ExpireNow(id int) error {
	_, err := r.DB.Exec(`UPDATE password_reset_otps SET expires_at = NOW() WHERE id=$1`, id)
	return err
}

func (r *passwordResetRepository) MarkUsed(id int) error {
	_, err := r.DB.Exec(`UPDATE password_reset_otps SET used_at = NOW() WHERE id=$1`, id)
	return err
}
