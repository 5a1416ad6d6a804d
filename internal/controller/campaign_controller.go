// internal/controller/campaign_controller.go
package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/outreach-backend/internal/auth"
	"github.com/unclebandit/outreach-backend/internal/handler"
	"github.com/unclebandit/outreach-backend/internal/service"
)

type CampaignController struct {
	CampaignService *service.CampaignService
}

func (c *CampaignController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}

	var body service.CreateCampaignInput
	if err := handler.DecodeJSON(w, r, &body); err != nil {
		handler.WriteError(w, r, err)
		return
	}

	campaign, err := c.CampaignService.CreateCampaign(r.Context(), userID, body)
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusCreated, campaign)
}

func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}

	in, err := campaignListInput(r.URL.Query())
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}

	page, err := c.CampaignService.ListCampaigns(r.Context(), userID, in)
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, page)
}

func (c *CampaignController) GetCampaign(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}

	campaign, err := c.CampaignService.GetCampaign(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, campaign)
}

func (c *CampaignController) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}

	var body service.UpdateCampaignInput
	if err := handler.DecodeJSON(w, r, &body); err != nil {
		handler.WriteError(w, r, err)
		return
	}

	campaign, err := c.CampaignService.UpdateCampaign(r.Context(), userID, chi.URLParam(r, "id"), body)
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, campaign)
}

func (c *CampaignController) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}

	if err := c.CampaignService.DeleteCampaign(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		handler.WriteError(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (c *CampaignController) GetTemplates(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}

	tpl, err := c.CampaignService.GetTemplates(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, tpl)
}

func (c *CampaignController) UpdateTemplates(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}

	var body service.UpdateTemplatesInput
	if err := handler.DecodeJSON(w, r, &body); err != nil {
		handler.WriteError(w, r, err)
		return
	}

	tpl, err := c.CampaignService.UpdateTemplates(r.Context(), userID, chi.URLParam(r, "id"), body)
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, tpl)
}

func (c *CampaignController) PersonalizedPreview(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}

	var body service.PreviewInput
	if err := handler.DecodeJSON(w, r, &body); err != nil {
		handler.WriteError(w, r, err)
		return
	}

	preview, err := c.CampaignService.RenderPreview(r.Context(), userID, chi.URLParam(r, "id"), body)
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, preview)
}

func (c *CampaignController) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}

	settings, err := c.CampaignService.GetSettings(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, settings)
}

func (c *CampaignController) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}

	var body service.UpdateSettingsInput
	if err := handler.DecodeJSON(w, r, &body); err != nil {
		handler.WriteError(w, r, err)
		return
	}

	settings, err := c.CampaignService.UpdateSettings(r.Context(), userID, chi.URLParam(r, "id"), body)
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, settings)
}
