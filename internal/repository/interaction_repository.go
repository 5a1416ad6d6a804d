package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	appErrors "github.com/unclebandit/outreach-backend/internal/errors"
	"github.com/unclebandit/outreach-backend/internal/model"
)

// InteractionRepositoryInterface has no update or delete: interactions are
// append-only.
type InteractionRepositoryInterface interface {
	ListByLead(ctx context.Context, leadID string) ([]model.Interaction, error)
	Create(ctx context.Context, leadID string, typ model.InteractionType, message string) (*model.Interaction, error)
}

type InteractionRepository struct {
	DB *sql.DB
}

func (r *InteractionRepository) ListByLead(ctx context.Context, leadID string) ([]model.Interaction, error) {
	rows, err := r.DB.QueryContext(ctx, `
        SELECT id, lead_id, type, message, created_at
        FROM lead_interactions
        WHERE lead_id = $1
        ORDER BY created_at DESC, id DESC
    `, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Interaction{}
	for rows.Next() {
		var i model.Interaction
		if err := rows.Scan(&i.ID, &i.LeadID, &i.Type, &i.Message, &i.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func (r *InteractionRepository) Create(ctx context.Context, leadID string, typ model.InteractionType, message string) (*model.Interaction, error) {
	i := model.Interaction{LeadID: leadID, Type: typ}
	err := r.DB.QueryRowContext(ctx, `
        INSERT INTO lead_interactions (lead_id, type, message)
        VALUES ($1, $2, $3)
        RETURNING id, message, created_at
    `, leadID, typ, nullable(message)).Scan(&i.ID, &i.Message, &i.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, appErrors.NewLeadNotFound(leadID)
		}
		return nil, err
	}
	return &i, nil
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}

var _ InteractionRepositoryInterface = (*InteractionRepository)(nil)
