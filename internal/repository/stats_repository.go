package repository

import (
	"context"
	"database/sql"

	"github.com/unclebandit/outreach-backend/internal/model"
)

type StatsRepositoryInterface interface {
	FunnelCounts(ctx context.Context, campaignID string) (model.FunnelCounts, error)
}

type StatsRepository struct {
	DB *sql.DB
}

// leadFunnelQuery counts the campaign's leads and the replied/converted
// statuses. Responded and converted leads both count as replied.
const leadFunnelQuery = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status IN ('responded', 'converted')),
               COUNT(*) FILTER (WHERE status = 'converted')
        FROM leads
        WHERE campaign_id = $1
    `

// interactionFunnelQuery counts distinct leads, not rows, per funnel
// interaction type.
const interactionFunnelQuery = `
        SELECT li.type, COUNT(DISTINCT li.lead_id)
        FROM lead_interactions li
        JOIN leads l ON l.id = li.lead_id
        WHERE l.campaign_id = $1
          AND li.type IN ('invitation_request', 'acceptance_msg', 'replied')
        GROUP BY li.type
    `

// addInteractionCount stores n under the funnel stage of typ. Other types
// are ignored.
func addInteractionCount(fc *model.FunnelCounts, typ model.InteractionType, n int) {
	switch typ {
	case model.InteractionInvitationRequest:
		fc.RequestSent = n
	case model.InteractionAcceptanceMsg:
		fc.RequestAccepted = n
	case model.InteractionReplied:
		fc.RepliedByInteraction = n
	}
}

// FunnelCounts aggregates the campaign's leads and interactions from a single
// read-only snapshot. Interaction counts are distinct leads, not rows.
func (r *StatsRepository) FunnelCounts(ctx context.Context, campaignID string) (model.FunnelCounts, error) {
	var fc model.FunnelCounts

	tx, err := r.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return fc, err
	}
	defer func() { _ = tx.Rollback() }()

	err = tx.QueryRowContext(ctx, leadFunnelQuery, campaignID).Scan(&fc.TotalLeads, &fc.RepliedByStatus, &fc.Converted)
	if err != nil {
		return fc, err
	}

	rows, err := tx.QueryContext(ctx, interactionFunnelQuery, campaignID)
	if err != nil {
		return fc, err
	}
	defer rows.Close()

	for rows.Next() {
		var typ string
		var n int
		if err := rows.Scan(&typ, &n); err != nil {
			return fc, err
		}
		addInteractionCount(&fc, model.InteractionType(typ), n)
	}
	if err := rows.Err(); err != nil {
		return fc, err
	}

	return fc, tx.Commit()
}

var _ StatsRepositoryInterface = (*StatsRepository)(nil)
