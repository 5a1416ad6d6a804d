package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	appErrors "github.com/unclebandit/outreach-backend/internal/errors"
	"github.com/unclebandit/outreach-backend/internal/model"
)

type CampaignRepositoryInterface interface {
	Create(ctx context.Context, c *model.Campaign) error
	GetByID(ctx context.Context, ownerID, id string) (*model.Campaign, error)
	Update(ctx context.Context, ownerID, id string, patch CampaignPatch) (*model.Campaign, error)
	UpdateSettings(ctx context.Context, ownerID, id string, patch CampaignPatch, links *AccountLinks) (*model.Campaign, error)
	Delete(ctx context.Context, ownerID, id string) error
	List(ctx context.Context, p CampaignListParams) ([]model.CampaignSummary, error)
}

// CampaignPatch holds the optional columns of a campaign update.
type CampaignPatch struct {
	Name      *string
	Status    *model.CampaignStatus
	Archived  *bool
	StartDate *time.Time
}

func (p CampaignPatch) Empty() bool {
	return p.Name == nil && p.Status == nil && p.Archived == nil && p.StartDate == nil
}

type CampaignRepository struct {
	DB *sql.DB
}

const campaignColumns = `id, name, status, created_by, created_at, start_date, archived`

func scanCampaign(row interface{ Scan(...any) error }, c *model.Campaign) error {
	return row.Scan(&c.ID, &c.Name, &c.Status, &c.CreatedBy, &c.CreatedAt, &c.StartDate, &c.Archived)
}

func (r *CampaignRepository) Create(ctx context.Context, c *model.Campaign) error {
	if c.Status == "" {
		c.Status = model.CampaignDraft
	}
	query := `
        INSERT INTO campaigns (name, status, created_by, start_date)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, archived
    `
	return r.DB.QueryRowContext(ctx, query, c.Name, c.Status, c.CreatedBy, c.StartDate).
		Scan(&c.ID, &c.CreatedAt, &c.Archived)
}

func (r *CampaignRepository) GetByID(ctx context.Context, ownerID, id string) (*model.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1 AND created_by = $2`

	var c model.Campaign
	if err := scanCampaign(r.DB.QueryRowContext(ctx, query, id, ownerID), &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewCampaignNotFound(id)
		}
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) Update(ctx context.Context, ownerID, id string, patch CampaignPatch) (*model.Campaign, error) {
	if patch.Empty() {
		return r.GetByID(ctx, ownerID, id)
	}

	query, args := buildCampaignUpdate(ownerID, id, patch)
	var c model.Campaign
	if err := scanCampaign(r.DB.QueryRowContext(ctx, query, args...), &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewCampaignNotFound(id)
		}
		return nil, err
	}
	return &c, nil
}

// AccountLinks is the full set of accounts a campaign should be attached to.
type AccountLinks struct {
	IDs       []string
	Autopilot bool
}

// UpdateSettings applies patch and, when links is non-nil, replaces the
// campaign's account associations. Both happen in one transaction; an
// unknown campaign writes nothing.
func (r *CampaignRepository) UpdateSettings(ctx context.Context, ownerID, id string, patch CampaignPatch, links *AccountLinks) (*model.Campaign, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var query string
	var args []any
	if patch.Empty() {
		query = `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1 AND created_by = $2 FOR UPDATE`
		args = []any{id, ownerID}
	} else {
		query, args = buildCampaignUpdate(ownerID, id, patch)
	}

	var c model.Campaign
	if err := scanCampaign(tx.QueryRowContext(ctx, query, args...), &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewCampaignNotFound(id)
		}
		return nil, err
	}

	if links != nil {
		if err := replaceCampaignAccounts(ctx, tx, id, links.IDs, links.Autopilot); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &c, nil
}

func buildCampaignUpdate(ownerID, id string, patch CampaignPatch) (string, []any) {
	args := &queryArgs{}
	var set []string
	if patch.Name != nil {
		set = append(set, "name = "+args.add(*patch.Name))
	}
	if patch.Status != nil {
		set = append(set, "status = "+args.add(*patch.Status))
	}
	if patch.Archived != nil {
		set = append(set, "archived = "+args.add(*patch.Archived))
	}
	if patch.StartDate != nil {
		set = append(set, "start_date = "+args.add(*patch.StartDate))
	}

	query := `UPDATE campaigns SET ` + strings.Join(set, ", ") +
		` WHERE id = ` + args.add(id) + ` AND created_by = ` + args.add(ownerID) +
		` RETURNING ` + campaignColumns
	return query, args.values
}

// Delete removes the campaign; leads, interactions, templates and account
// links go with it through ON DELETE CASCADE.
func (r *CampaignRepository) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM campaigns WHERE id = $1 AND created_by = $2`, id, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return appErrors.NewCampaignNotFound(id)
	}
	return nil
}

// List returns up to p.Limit+1 rows so the caller can detect a further page.
func (r *CampaignRepository) List(ctx context.Context, p CampaignListParams) ([]model.CampaignSummary, error) {
	query, args := buildCampaignListQuery(p)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.CampaignSummary{}
	for rows.Next() {
		var s model.CampaignSummary
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Status, &s.CreatedBy, &s.CreatedAt, &s.StartDate, &s.Archived,
			&s.Funnel.TotalLeads,
			&s.Funnel.RequestSent,
			&s.Funnel.RequestAccepted,
			&s.Funnel.RepliedByInteraction,
			&s.Funnel.RepliedByStatus,
			&s.Funnel.Converted,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
