package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/unclebandit/outreach-backend/internal/model"
)

type AccountRepositoryInterface interface {
	ListByUser(ctx context.Context, userID string) ([]model.Account, error)
	Create(ctx context.Context, a *model.Account) error
	CountOwned(ctx context.Context, userID string, ids []string) (int, error)
	ListForCampaign(ctx context.Context, campaignID string) ([]model.CampaignAccount, error)
}

type AccountRepository struct {
	DB *sql.DB
}

func (r *AccountRepository) ListByUser(ctx context.Context, userID string) ([]model.Account, error) {
	rows, err := r.DB.QueryContext(ctx, `
        SELECT id, user_id, type, display_name, email, created_at
        FROM accounts
        WHERE user_id = $1
        ORDER BY created_at ASC, id ASC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Account{}
	for rows.Next() {
		var a model.Account
		if err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.DisplayName, &a.Email, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AccountRepository) Create(ctx context.Context, a *model.Account) error {
	if a.Type == "" {
		a.Type = "linkedin"
	}
	return r.DB.QueryRowContext(ctx, `
        INSERT INTO accounts (user_id, type, display_name, email)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `, a.UserID, a.Type, a.DisplayName, a.Email).Scan(&a.ID, &a.CreatedAt)
}

// CountOwned counts how many of ids belong to userID.
func (r *AccountRepository) CountOwned(ctx context.Context, userID string, ids []string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `
        SELECT COUNT(*) FROM accounts WHERE user_id = $1 AND id = ANY($2::uuid[])
    `, userID, pq.Array(ids)).Scan(&n)
	return n, err
}

func (r *AccountRepository) ListForCampaign(ctx context.Context, campaignID string) ([]model.CampaignAccount, error) {
	rows, err := r.DB.QueryContext(ctx, `
        SELECT a.id, a.display_name, a.email, COALESCE(ca.autopilot, false)
        FROM campaign_accounts ca
        JOIN accounts a ON a.id = ca.account_id
        WHERE ca.campaign_id = $1
        ORDER BY a.display_name ASC
    `, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.CampaignAccount{}
	for rows.Next() {
		var a model.CampaignAccount
		if err := rows.Scan(&a.AccountID, &a.DisplayName, &a.Email, &a.Autopilot); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// replaceCampaignAccounts swaps the campaign's account set inside tx.
func replaceCampaignAccounts(ctx context.Context, tx *sql.Tx, campaignID string, accountIDs []string, autopilot bool) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM campaign_accounts WHERE campaign_id = $1`, campaignID); err != nil {
		return err
	}
	if len(accountIDs) == 0 {
		return nil
	}
	_, err := tx.ExecContext(ctx, `
        INSERT INTO campaign_accounts (campaign_id, account_id, autopilot)
        SELECT $1, account_id, $3
        FROM unnest($2::uuid[]) AS account_id
        ON CONFLICT DO NOTHING
    `, campaignID, pq.Array(accountIDs), autopilot)
	return err
}

var _ AccountRepositoryInterface = (*AccountRepository)(nil)
