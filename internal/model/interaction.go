// internal/model/interaction.go
package model

import "time"

type InteractionType string

const (
    InteractionInvitationRequest InteractionType = "invitation_request"
    InteractionConnectionStatus  InteractionType = "connection_status"
    InteractionAcceptanceMsg     InteractionType = "acceptance_msg"
    InteractionFollowup1         InteractionType = "followup_1"
    InteractionFollowup2         InteractionType = "followup_2"
    InteractionReplied           InteractionType = "replied"
    InteractionNote              InteractionType = "note"
)

// Outbound reports whether the interaction is a message we sent, which
// counts as contacting the lead.
func (t InteractionType) Outbound() bool {
    switch t {
    case InteractionInvitationRequest, InteractionAcceptanceMsg, InteractionFollowup1, InteractionFollowup2:
        return true
    }
    return false
}

// Interaction rows are append-only.
type Interaction struct {
    ID        int64           `db:"id" json:"id"`
    LeadID    string          `db:"lead_id" json:"leadId"`
    Type      InteractionType `db:"type" json:"type"`
    Message   *string         `db:"message" json:"message"`
    CreatedAt time.Time       `db:"created_at" json:"createdAt"`
}

// InteractionEvent is published on the lead_interactions topic.
type InteractionEvent struct {
    InteractionID int64           `json:"interactionId"`
    LeadID        string          `json:"leadId"`
    Type          InteractionType `json:"type"`
    CreatedAt     time.Time       `json:"createdAt"`
}
