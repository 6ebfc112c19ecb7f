package repositories

import (
	"database/sql"

	"github.com/lib/pq"

	"formiverse/internal/models"
)

type QuestionRepository interface {
	Create(q *models.Question) error
	GetByID(id int) (*models.Question, error)
	ListByForm(formID int) ([]*models.Question, error)
	Delete(id int) error
}

type questionRepository struct {
	DB *sql.DB
}

func NewQuestionRepository(db *sql.DB) QuestionRepository {
	return &questionRepository{DB: db}
}

// optionsArray keeps empty option lists as '{}' rather than NULL.
func optionsArray(opts []string) interface{} {
	if opts == nil {
		opts = []string{}
	}
	return pq.Array(opts)
}

// Create appends the question at the end of the form's order.
func (r *questionRepository) Create(q *models.Question) error {
	const stmt = `
		INSERT INTO questions (
			form_id, question_text, question_description, question_type,
			options, required, answer_type, position
		)
		VALUES (
			$1,$2,$3,$4,$5,$6,$7,
			COALESCE((SELECT MAX(position)+1 FROM questions WHERE form_id=$1), 1)
		)
		RETURNING id, position, created_at, updated_at
	`
	return r.DB.QueryRow(stmt,
		q.FormID, q.QuestionText, q.QuestionDescription, q.QuestionType,
		optionsArray(q.Options), q.Required, q.AnswerType,
	).Scan(&q.ID, &q.Position, &q.CreatedAt, &q.UpdatedAt)
}

func (r *questionRepository) GetByID(id int) (*models.Question, error) {
	const stmt = `
		SELECT id, form_id, question_text, question_description, question_type,
		       options, required, answer_type, position, created_at, updated_at
		FROM questions
		WHERE id = $1
	`
	q := &models.Question{}
	var opts pq.StringArray
	err := r.DB.QueryRow(stmt, id).Scan(
		&q.ID, &q.FormID, &q.QuestionText, &q.QuestionDescription, &q.QuestionType,
		&opts, &q.Required, &q.AnswerType, &q.Position, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	q.Options = []string(opts)
	return q, nil
}

func (r *questionRepository) ListByForm(formID int) ([]*models.Question, error) {
	const stmt = `
		SELECT id, form_id, question_text, question_description, question_type,
		       options, required, answer_type, position, created_at, updated_at
		FROM questions
		WHERE form_id = $1
		ORDER BY position
	`
	rows, err := r.DB.Query(stmt, formID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.Question
	for rows.Next() {
		q := &models.Question{}
		var opts pq.StringArray
		if err := rows.Scan(
			&q.ID, &q.FormID, &q.QuestionText, &q.QuestionDescription, &q.QuestionType,
			&opts, &q.Required, &q.AnswerType, &q.Position, &q.CreatedAt, &q.UpdatedAt,
		); err != nil {
			return nil, err
		}
		q.Options = []string(opts)
		res = append(res, q)
	}
	return res, rows.Err()
}

func (r *questionRepository) Delete(id int) error {
	res, err := r.DB.Exec(`DELETE FROM questions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
