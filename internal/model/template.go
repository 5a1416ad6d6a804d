// internal/model/template.go
package model

import "time"

const DefaultFollowupDelayDays = 1

type MessageTemplate struct {
    ID                 int        `db:"id" json:"-"`
    CampaignID         string     `db:"campaign_id" json:"campaignId"`
    RequestMessage     string     `db:"request_message" json:"requestMessage"`
    ConnectionMessage  string     `db:"connection_message" json:"connectionMessage"`
    Followup1          string     `db:"followup_1" json:"followup1"`
    Followup1DelayDays int        `db:"followup_1_delay_days" json:"followup1DelayDays"`
    Followup2          string     `db:"followup_2" json:"followup2"`
    Followup2DelayDays int        `db:"followup_2_delay_days" json:"followup2DelayDays"`
    CreatedAt          *time.Time `db:"created_at" json:"createdAt,omitempty"`
}

// EmptyTemplate is what a campaign without a stored template reports.
func EmptyTemplate(campaignID string) *MessageTemplate {
    return &MessageTemplate{
        CampaignID:         campaignID,
        Followup1DelayDays: DefaultFollowupDelayDays,
        Followup2DelayDays: DefaultFollowupDelayDays,
    }
}
