// internal/model/lead.go
package model

import "time"

type LeadStatus string

const (
    LeadPending      LeadStatus = "pending"
    LeadContacted    LeadStatus = "contacted"
    LeadResponded    LeadStatus = "responded"
    LeadConverted    LeadStatus = "converted"
    LeadDoNotContact LeadStatus = "do_not_contact"
)

type Lead struct {
    ID            string     `db:"id" json:"id"`
    FullName      string     `db:"full_name" json:"fullName"`
    FirstName     *string    `db:"first_name" json:"firstName"`
    LastName      *string    `db:"last_name" json:"lastName"`
    Email         *string    `db:"email" json:"email"`
    Company       *string    `db:"company" json:"company"`
    JobTitle      *string    `db:"job_title" json:"jobTitle"`
    CampaignID    string     `db:"campaign_id" json:"campaignId"`
    CampaignName  string     `db:"campaign_name" json:"campaignName,omitempty"`
    Status        LeadStatus `db:"status" json:"status"`
    LastContactAt *time.Time `db:"last_contact_at" json:"lastContactAt"`
    CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
}

// NewLead is one row of a bulk import.
type NewLead struct {
    FullName  string
    FirstName string
    LastName  string
    Email     string
    Company   string
    JobTitle  string
}
