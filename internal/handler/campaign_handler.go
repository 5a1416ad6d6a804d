// internal/handler/campaign_handler.go
package handler

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/outreach-backend/internal/auth"
	"github.com/unclebandit/outreach-backend/internal/service"
)

// CampaignHandler serves the campaign funnel statistics
type CampaignHandler struct {
	Service *service.CampaignService
}

func NewCampaignHandler(svc *service.CampaignService) *CampaignHandler {
	return &CampaignHandler{Service: svc}
}

// GetCampaignStatsHandler returns the funnel for one campaign, recomputed on
// every call.
func (h *CampaignHandler) GetCampaignStatsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}

	id := chi.URLParam(r, "id")
	stats, err := h.Service.GetCampaignStats(r.Context(), userID, id)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	log.Printf("📊 stats for campaign %s: %d leads, %d sent", id, stats.TotalLeads, stats.RequestSent)
	WriteJSON(w, http.StatusOK, stats)
}
