// internal/model/account.go
package model

import "time"

type Account struct {
    ID          string    `db:"id" json:"id"`
    UserID      string    `db:"user_id" json:"userId"`
    Type        string    `db:"type" json:"type"`
    DisplayName string    `db:"display_name" json:"displayName"`
    Email       *string   `db:"email" json:"email"`
    CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// CampaignAccount is an account attached to a campaign.
type CampaignAccount struct {
    AccountID   string  `json:"accountId"`
    DisplayName string  `json:"displayName"`
    Email       *string `json:"email"`
    Autopilot   bool    `json:"autopilot"`
}
