package repositories

import (
	"database/sql"
	"fmt"

	"formiverse/internal/models"
)

type PendingUserRepository interface {
	Upsert(p *models.PendingUser) error
	GetByEmail(email string) (*models.PendingUser, error)
	IncrementAttempts(id int) (int, error)
	ExpireNow(id int) error
	Delete(id int) error
}

type pendingUserRepository struct {
	DB *sql.DB
}

func NewPendingUserRepository(db *sql.DB) PendingUserRepository {
	return &pendingUserRepository{DB: db}
}

// Upsert creates the pending registration, or refreshes code/expiry when the
// same email registers again before verifying.
func (r *pendingUserRepository) Upsert(p *models.PendingUser) error {
	const q = `
		INSERT INTO pending_users (username, email, full_name, password_hash, otp_hash, attempts, expires_at)
		VALUES ($1,$2,$3,$4,$5,0,$6)
		ON CONFLICT (email) DO UPDATE SET
			username=EXCLUDED.username,
			full_name=EXCLUDED.full_name,
			password_hash=EXCLUDED.password_hash,
			otp_hash=EXCLUDED.otp_hash,
			attempts=0,
			expires_at=EXCLUDED.expires_at
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(q,
		p.Username, p.Email, p.FullName, p.PasswordHash, p.OTPHash, p.ExpiresAt,
	).Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("pending_user upsert: %w", err)
	}
	return nil
}

func (r *pendingUserRepository) GetByEmail(email string) (*models.PendingUser, error) {
	const q = `
		SELECT id, username, email, full_name, password_hash, otp_hash, attempts, expires_at, created_at
		FROM pending_users
		WHERE email = $1
	`
	var p models.PendingUser
	err := r.DB.QueryRow(q, email).Scan(
		&p.ID, &p.Username, &p.Email, &p.FullName, &p.PasswordHash,
		&p.OTPHash, &p.Attempts, &p.ExpiresAt, &p.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("pending_user get: %w", err)
	}
	return &p, nil
}

// IncrementAttempts adds one failed attempt and returns the new count.
func (r *pendingUserRepository) IncrementAttempts(id int) (int, error) {
	var attempts int
	err := r.DB.QueryRow(`
		UPDATE pending_users
		SET attempts = attempts + 1
		WHERE id = $1
		RETURNING attempts
	`, id).Scan(&attempts)
	if err != nil {
		return 0, fmt.Errorf("pending_user increment attempts: %w", err)
	}
	return attempts, nil
}

// ExpireNow invalidates the code immediately (used after too many attempts).
func (r *pendingUserRepository) ExpireNow(id int) error {
	_, err := r.DB.Exec(`UPDATE pending_users SET expires_at = NOW() WHERE id=$1`, id)
	return err
}

func (r *pendingUserRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM pending_users WHERE id=$1`, id)
	return err
}
