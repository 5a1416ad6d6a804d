package service

import (
	"math"

	"github.com/unclebandit/outreach-backend/internal/model"
)

type FunnelMetrics struct {
	ContactedRate  float64 `json:"contactedRate"`
	AcceptanceRate float64 `json:"acceptanceRate"`
	ReplyRate      float64 `json:"replyRate"`
	ConversionRate float64 `json:"conversionRate"`
}

type FunnelSummary struct {
	TotalLeads      int           `json:"totalLeads"`
	RequestSent     int           `json:"requestSent"`
	RequestAccepted int           `json:"requestAccepted"`
	RequestReplied  int           `json:"requestReplied"`
	Metrics         FunnelMetrics `json:"metrics"`
}

// CampaignStats is the body of GET /api/campaigns/{id}/stats.
type CampaignStats struct {
	CampaignID string `json:"campaignId"`
	FunnelSummary
}

// Rate is num/den as a percentage rounded to one decimal; 0 when den is 0.
func Rate(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return math.Round(float64(num)*1000/float64(den)) / 10
}

// BuildFunnelSummary folds raw counts into the funnel. A reply is counted
// from either signal: a replied interaction or a responded/converted status.
func BuildFunnelSummary(c model.FunnelCounts) FunnelSummary {
	replied := max(c.RepliedByInteraction, c.RepliedByStatus)
	return FunnelSummary{
		TotalLeads:      c.TotalLeads,
		RequestSent:     c.RequestSent,
		RequestAccepted: c.RequestAccepted,
		RequestReplied:  replied,
		Metrics: FunnelMetrics{
			ContactedRate:  Rate(c.RequestSent, c.TotalLeads),
			AcceptanceRate: Rate(c.RequestAccepted, c.RequestSent),
			ReplyRate:      Rate(replied, c.RequestSent),
			ConversionRate: Rate(c.Converted, c.TotalLeads),
		},
	}
}

func BuildCampaignStats(campaignID string, c model.FunnelCounts) CampaignStats {
	return CampaignStats{CampaignID: campaignID, FunnelSummary: BuildFunnelSummary(c)}
}
