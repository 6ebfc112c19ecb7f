package repositories

import (
	"database/sql"
	"fmt"

	"formiverse/internal/models"
)

type FormRepository interface {
	Create(form *models.Form) error
	GetByID(id int) (*models.Form, error)
	ListSummariesByUser(userID int) ([]*models.FormSummary, error)
	UpdateWithQuestions(form *models.Form, questions []*models.Question) error
	Delete(id int) error
}

type formRepository struct {
	DB *sql.DB
}

func NewFormRepository(db *sql.DB) FormRepository {
	return &formRepository{DB: db}
}

func (r *formRepository) Create(form *models.Form) error {
	const q = `
		INSERT INTO forms (heading, description, user_id)
		VALUES ($1,$2,$3)
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(q, form.Heading, form.Description, form.UserID).
		Scan(&form.ID, &form.CreatedAt, &form.UpdatedAt)
}

func (r *formRepository) GetByID(id int) (*models.Form, error) {
	const q = `
		SELECT id, heading, description, user_id, created_at, updated_at
		FROM forms
		WHERE id = $1
	`
	f := &models.Form{}
	err := r.DB.QueryRow(q, id).Scan(
		&f.ID, &f.Heading, &f.Description, &f.UserID, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return f, nil
}

// ListSummariesByUser computes question and submission counts with
// correlated subqueries, one round trip for the whole list.
func (r *formRepository) ListSummariesByUser(userID int) ([]*models.FormSummary, error) {
	const q = `
		SELECT
			f.id, f.heading, f.description, f.created_at,
			(SELECT COUNT(*) FROM questions q WHERE q.form_id = f.id) AS questions_count,
			(SELECT COUNT(*) FROM responses r WHERE r.form_id = f.id) AS submission_count
		FROM forms f
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`
	rows, err := r.DB.Query(q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.FormSummary
	for rows.Next() {
		s := &models.FormSummary{}
		if err := rows.Scan(
			&s.ID, &s.Heading, &s.Description, &s.CreatedAt,
			&s.QuestionsCount, &s.SubmissionCount,
		); err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

// UpdateWithQuestions replaces the form heading/description and overwrites
// every submitted question in a single transaction. A question that does not
// exist or belongs to another form aborts the whole update.
func (r *formRepository) UpdateWithQuestions(form *models.Form, questions []*models.Question) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE forms
		SET heading=$1, description=$2, updated_at=NOW()
		WHERE id=$3
	`, form.Heading, form.Description, form.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	for _, q := range questions {
		res, err := tx.Exec(`
			UPDATE questions
			SET question_text=$1, question_description=$2, options=$3,
			    answer_type=$4, required=$5, updated_at=NOW()
			WHERE id=$6 AND form_id=$7
		`, q.QuestionText, q.QuestionDescription, optionsArray(q.Options),
			q.AnswerType, q.Required, q.ID, form.ID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("question %d: %w", q.ID, sql.ErrNoRows)
		}
	}

	return tx.Commit()
}

// Delete removes the form; questions and responses go with it through the
// ON DELETE CASCADE constraints, atomically.
func (r *formRepository) Delete(id int) error {
	res, err := r.DB.Exec(`DELETE FROM forms WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
