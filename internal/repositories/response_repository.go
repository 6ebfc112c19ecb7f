package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"formiverse/internal/models"
)

type ResponseRepository interface {
	Create(resp *models.FormResponse) error
	ListByForm(formID int) ([]*models.FormResponse, error)
	DeleteByForm(formID int) (int64, error)
}

type responseRepository struct {
	DB *sql.DB
}

func NewResponseRepository(db *sql.DB) ResponseRepository {
	return &responseRepository{DB: db}
}

func (r *responseRepository) Create(resp *models.FormResponse) error {
	payload, err := json.Marshal(resp.Answers)
	if err != nil {
		return fmt.Errorf("response marshal answers: %w", err)
	}
	const q = `
		INSERT INTO responses (form_id, answers)
		VALUES ($1,$2)
		RETURNING id, created_at
	`
	return r.DB.QueryRow(q, resp.FormID, payload).Scan(&resp.ID, &resp.CreatedAt)
}

func (r *responseRepository) ListByForm(formID int) ([]*models.FormResponse, error) {
	const q = `
		SELECT id, form_id, answers, created_at
		FROM responses
		WHERE form_id = $1
		ORDER BY created_at
	`
	rows, err := r.DB.Query(q, formID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.FormResponse
	for rows.Next() {
		fr := &models.FormResponse{}
		var payload []byte
		if err := rows.Scan(&fr.ID, &fr.FormID, &payload, &fr.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payload, &fr.Answers); err != nil {
			return nil, fmt.Errorf("response unmarshal answers: %w", err)
		}
		res = append(res, fr)
	}
	return res, rows.Err()
}

// DeleteByForm removes every response of the form and reports how many went.
func (r *responseRepository) DeleteByForm(formID int) (int64, error) {
	res, err := r.DB.Exec(`DELETE FROM responses WHERE form_id=$1`, formID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
