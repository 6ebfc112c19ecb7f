package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Schema is applied on startup; every statement is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id                  SERIAL PRIMARY KEY,
	username            TEXT NOT NULL UNIQUE,
	email               TEXT NOT NULL UNIQUE,
	full_name           TEXT NOT NULL,
	password_hash       TEXT NOT NULL,
	refresh_token_hash  TEXT,
	refresh_expires_at  TIMESTAMPTZ,
	token_version       INTEGER NOT NULL DEFAULT 0,
	telegram_chat_id    BIGINT,
	notify_submissions_telegram BOOLEAN NOT NULL DEFAULT TRUE,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS pending_users (
	id            SERIAL PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	email         TEXT NOT NULL UNIQUE,
	full_name     TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	otp_hash      TEXT NOT NULL,
	attempts      INTEGER NOT NULL DEFAULT 0,
	expires_at    TIMESTAMPTZ NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS password_reset_otps (
	id         SERIAL PRIMARY KEY,
	user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	otp_hash   TEXT NOT NULL,
	attempts   INTEGER NOT NULL DEFAULT 0,
	expires_at TIMESTAMPTZ NOT NULL,
	used_at    TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS forms (
	id          SERIAL PRIMARY KEY,
	heading     TEXT NOT NULL,
	description TEXT NOT NULL,
	user_id     INTEGER NOT NULL REFERENCES users(id),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS questions (
	id                   SERIAL PRIMARY KEY,
	form_id              INTEGER NOT NULL REFERENCES forms(id) ON DELETE CASCADE,
	question_text        TEXT NOT NULL DEFAULT '',
	question_description TEXT NOT NULL DEFAULT '',
	question_type        TEXT NOT NULL,
	options              TEXT[] NOT NULL DEFAULT '{}',
	required             BOOLEAN NOT NULL DEFAULT FALSE,
	answer_type          TEXT NOT NULL,
	position             INTEGER NOT NULL,
	created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_questions_form ON questions(form_id, position);

CREATE TABLE IF NOT EXISTS responses (
	id         SERIAL PRIMARY KEY,
	form_id    INTEGER NOT NULL REFERENCES forms(id) ON DELETE CASCADE,
	answers    JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_responses_form ON responses(form_id);

CREATE TABLE IF NOT EXISTS telegram_links (
	id         SERIAL PRIMARY KEY,
	user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	code       TEXT NOT NULL UNIQUE,
	expires_at TIMESTAMPTZ NOT NULL,
	used       BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// Open connects to Postgres and verifies the connection.
func Open(dsn string) (*sql.DB, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("db: open: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("db: ping: %w", err)
	}
	return conn, nil
}

// EnsureSchema creates missing tables and indexes.
func EnsureSchema(conn *sql.DB) error {
	if _, err := conn.Exec(Schema); err != nil {
		return fmt.Errorf("db: apply schema: %w", err)
	}
	return nil
}
