// internal/model/campaign.go
package model

import "time"

type CampaignStatus string

const (
    CampaignDraft     CampaignStatus = "draft"
    CampaignActive    CampaignStatus = "active"
    CampaignPaused    CampaignStatus = "paused"
    CampaignCompleted CampaignStatus = "completed"
)

type Campaign struct {
    ID        string         `db:"id" json:"id"`
    Name      string         `db:"name" json:"name"`
    Status    CampaignStatus `db:"status" json:"status"`
    CreatedBy string         `db:"created_by" json:"createdBy"`
    CreatedAt time.Time      `db:"created_at" json:"createdAt"`
    StartDate *time.Time     `db:"start_date" json:"startDate"`
    Archived  bool           `db:"archived" json:"archived"`
}

// CampaignSummary is one row of the campaign listing: the campaign plus its
// funnel counts.
type CampaignSummary struct {
    Campaign
    Funnel FunnelCounts `json:"-"`
}

// FunnelCounts are the raw aggregates behind the funnel metrics.
// RepliedByInteraction and RepliedByStatus are reconciled with max().
type FunnelCounts struct {
    TotalLeads           int
    RequestSent          int
    RequestAccepted      int
    RepliedByInteraction int
    RepliedByStatus      int
    Converted            int
}
