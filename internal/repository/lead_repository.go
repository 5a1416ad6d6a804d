package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	appErrors "github.com/unclebandit/outreach-backend/internal/errors"
	"github.com/unclebandit/outreach-backend/internal/model"
)

type LeadRepositoryInterface interface {
	List(ctx context.Context, p LeadListParams) ([]model.Lead, error)
	GetByID(ctx context.Context, ownerID, id string) (*model.Lead, error)
	UpdateStatus(ctx context.Context, ownerID, id string, status model.LeadStatus) (*model.Lead, error)
	BulkInsert(ctx context.Context, campaignID string, leads []model.NewLead) (int, error)
	TouchLastContact(ctx context.Context, id string, at time.Time) error
}

type LeadRepository struct {
	DB *sql.DB
}

func scanLead(row interface{ Scan(...any) error }, l *model.Lead) error {
	return row.Scan(
		&l.ID, &l.FullName, &l.FirstName, &l.LastName, &l.Email, &l.Company, &l.JobTitle,
		&l.CampaignID, &l.CampaignName, &l.Status, &l.LastContactAt, &l.CreatedAt,
	)
}

// List returns up to p.Limit+1 rows so the caller can detect a further page.
func (r *LeadRepository) List(ctx context.Context, p LeadListParams) ([]model.Lead, error) {
	query, args := buildLeadListQuery(p)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Lead{}
	for rows.Next() {
		var l model.Lead
		if err := scanLead(rows, &l); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *LeadRepository) GetByID(ctx context.Context, ownerID, id string) (*model.Lead, error) {
	query := `
        SELECT ` + leadColumns + `
        FROM leads l
        JOIN campaigns c ON c.id = l.campaign_id
        WHERE l.id = $1 AND c.created_by = $2
    `
	var l model.Lead
	if err := scanLead(r.DB.QueryRowContext(ctx, query, id, ownerID), &l); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewLeadNotFound(id)
		}
		return nil, err
	}
	return &l, nil
}

// UpdateStatus records a manual status change, which also counts as contact.
func (r *LeadRepository) UpdateStatus(ctx context.Context, ownerID, id string, status model.LeadStatus) (*model.Lead, error) {
	query := `
        WITH updated AS (
            UPDATE leads l
            SET status = $1, last_contact_at = NOW()
            FROM campaigns c
            WHERE l.id = $2 AND c.id = l.campaign_id AND c.created_by = $3
            RETURNING l.*
        )
        SELECT l.id, l.full_name, l.first_name, l.last_name, l.email, l.company, l.job_title,
               l.campaign_id, c.name, l.status, l.last_contact_at, l.created_at
        FROM updated l
        JOIN campaigns c ON c.id = l.campaign_id
    `
	var l model.Lead
	if err := scanLead(r.DB.QueryRowContext(ctx, query, status, id, ownerID), &l); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewLeadNotFound(id)
		}
		return nil, err
	}
	return &l, nil
}

// BulkInsert streams the rows with COPY inside one transaction; either every
// row lands or none does.
func (r *LeadRepository) BulkInsert(ctx context.Context, campaignID string, leads []model.NewLead) (int, error) {
	if len(leads) == 0 {
		return 0, nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("leads",
		"full_name", "first_name", "last_name", "email", "company", "job_title", "campaign_id"))
	if err != nil {
		return 0, err
	}

	for _, l := range leads {
		if _, err := stmt.ExecContext(ctx,
			l.FullName, nullable(l.FirstName), nullable(l.LastName), nullable(l.Email),
			nullable(l.Company), nullable(l.JobTitle), campaignID,
		); err != nil {
			stmt.Close()
			return 0, err
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return 0, fmt.Errorf("flush lead copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(leads), nil
}

// TouchLastContact moves last_contact_at forward to at; it never moves it
// backwards.
func (r *LeadRepository) TouchLastContact(ctx context.Context, id string, at time.Time) error {
	_, err := r.DB.ExecContext(ctx, `
        UPDATE leads
        SET last_contact_at = $2
        WHERE id = $1 AND (last_contact_at IS NULL OR last_contact_at < $2)
    `, id, at)
	return err
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ LeadRepositoryInterface = (*LeadRepository)(nil)
