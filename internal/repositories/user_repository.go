package repositories

import (
	"database/sql"
	"time"

	"formiverse/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByEmailOrUsername(email, username string) (*models.User, error)
	ExistsByEmailOrUsername(email, username string) (bool, error)
	UpdatePassword(userID int, passwordHash string) error

	// refresh helpers
	UpdateRefresh(userID int, tokenHash string, expiresAt time.Time, tokenVersion int) error
	ClearRefresh(userID int) error

	// Telegram helpers
	UpdateTelegramLink(userID int, chatID int64, enable bool) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `
	id, username, email, full_name, password_hash,
	refresh_token_hash, refresh_expires_at, token_version,
	COALESCE(telegram_chat_id,0), notify_submissions_telegram,
	created_at, updated_at
`

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var (
		rth sql.NullString
		rte sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.FullName, &u.PasswordHash,
		&rth, &rte, &u.TokenVersion,
		&u.TelegramChatID, &u.NotifySubmissionsTG,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if rth.Valid {
		s := rth.String
		u.RefreshTokenHash = &s
	}
	if rte.Valid {
		t := rte.Time
		u.RefreshExpiresAt = &t
	}
	return u, nil
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (username, email, full_name, password_hash)
		VALUES ($1,$2,$3,$4)
		RETURNING id, token_version, created_at, updated_at
	`
	return r.DB.QueryRow(q,
		user.Username,
		user.Email,
		user.FullName,
		user.PasswordHash,
	).Scan(&user.ID, &user.TokenVersion, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	return scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	return scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *userRepository) GetByEmailOrUsername(email, username string) (*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = $1 OR username = $2 LIMIT 1`
	return scanUser(r.DB.QueryRow(q, email, username))
}

func (r *userRepository) ExistsByEmailOrUsername(email, username string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR username = $2)`,
		email, username,
	).Scan(&exists)
	return exists, err
}

func (r *userRepository) UpdatePassword(userID int, passwordHash string) error {
	_, err := r.DB.Exec(`
		UPDATE users
		SET password_hash=$1, updated_at=NOW()
		WHERE id=$2
	`, passwordHash, userID)
	return err
}

// ===== refresh helpers =====

// UpdateRefresh overwrites the stored refresh hash; the previous refresh
// token stops matching from this point on.
func (r *userRepository) UpdateRefresh(userID int, tokenHash string, expiresAt time.Time, tokenVersion int) error {
	_, err := r.DB.Exec(`
		UPDATE users
		SET refresh_token_hash=$1, refresh_expires_at=$2, token_version=$3, updated_at=NOW()
		WHERE id=$4
	`, tokenHash, expiresAt, tokenVersion, userID)
	return err
}

func (r *userRepository) ClearRefresh(userID int) error {
	_, err := r.DB.Exec(`
		UPDATE users
		SET refresh_token_hash=NULL, refresh_expires_at=NULL, updated_at=NOW()
		WHERE id=$1
	`, userID)
	return err
}

// ===== telegram helpers =====

func (r *userRepository) UpdateTelegramLink(userID int, chatID int64, enable bool) error {
	_, err := r.DB.Exec(`
		UPDATE users
		SET telegram_chat_id=$1, notify_submissions_telegram=$2, updated_at=NOW()
		WHERE id=$3
	`, chatID, enable, userID)
	return err
}
