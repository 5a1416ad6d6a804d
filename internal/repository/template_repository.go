package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/unclebandit/outreach-backend/internal/model"
)

type TemplateRepositoryInterface interface {
	GetByCampaign(ctx context.Context, campaignID string) (*model.MessageTemplate, error)
	Upsert(ctx context.Context, campaignID string, patch TemplatePatch) (*model.MessageTemplate, error)
}

// TemplatePatch holds the optional fields of a template update. Nil leaves
// the stored value unchanged.
type TemplatePatch struct {
	RequestMessage     *string
	ConnectionMessage  *string
	Followup1          *string
	Followup1DelayDays *int
	Followup2          *string
	Followup2DelayDays *int
}

type TemplateRepository struct {
	DB *sql.DB
}

const templateColumns = `id, campaign_id,
               COALESCE(request_message, ''), COALESCE(connection_message, ''),
               COALESCE(followup_1, ''), COALESCE(followup_1_delay_days, 1),
               COALESCE(followup_2, ''), COALESCE(followup_2_delay_days, 1),
               created_at`

func scanTemplate(row interface{ Scan(...any) error }, t *model.MessageTemplate) error {
	return row.Scan(
		&t.ID, &t.CampaignID,
		&t.RequestMessage, &t.ConnectionMessage,
		&t.Followup1, &t.Followup1DelayDays,
		&t.Followup2, &t.Followup2DelayDays,
		&t.CreatedAt,
	)
}

// GetByCampaign returns nil, nil when the campaign has no stored template.
func (r *TemplateRepository) GetByCampaign(ctx context.Context, campaignID string) (*model.MessageTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM message_templates WHERE campaign_id = $1`

	var t model.MessageTemplate
	if err := scanTemplate(r.DB.QueryRowContext(ctx, query, campaignID), &t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// Upsert creates the campaign's template on first write and merges the patch
// into it afterwards.
func (r *TemplateRepository) Upsert(ctx context.Context, campaignID string, patch TemplatePatch) (*model.MessageTemplate, error) {
	query := `
        INSERT INTO message_templates AS mt (
            campaign_id, request_message, connection_message,
            followup_1, followup_1_delay_days, followup_2, followup_2_delay_days
        )
        VALUES ($1, COALESCE($2, ''), COALESCE($3, ''), COALESCE($4, ''), COALESCE($5, 1), COALESCE($6, ''), COALESCE($7, 1))
        ON CONFLICT (campaign_id) DO UPDATE SET
            request_message       = COALESCE($2, mt.request_message),
            connection_message    = COALESCE($3, mt.connection_message),
            followup_1            = COALESCE($4, mt.followup_1),
            followup_1_delay_days = COALESCE($5, mt.followup_1_delay_days),
            followup_2            = COALESCE($6, mt.followup_2),
            followup_2_delay_days = COALESCE($7, mt.followup_2_delay_days)
        RETURNING ` + templateColumns

	var t model.MessageTemplate
	err := scanTemplate(r.DB.QueryRowContext(ctx, query,
		campaignID,
		patch.RequestMessage, patch.ConnectionMessage,
		patch.Followup1, patch.Followup1DelayDays,
		patch.Followup2, patch.Followup2DelayDays,
	), &t)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

var _ TemplateRepositoryInterface = (*TemplateRepository)(nil)
