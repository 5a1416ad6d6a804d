package controller

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/outreach-backend/internal/auth"
	appErrors "github.com/unclebandit/outreach-backend/internal/errors"
	"github.com/unclebandit/outreach-backend/internal/handler"
	"github.com/unclebandit/outreach-backend/internal/service"
)

type LeadController struct {
	LeadService *service.LeadService
}

func (c *LeadController) ListLeads(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}

	in, err := leadListInput(r.URL.Query())
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}

	page, err := c.LeadService.ListLeads(r.Context(), userID, in)
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, page)
}

func (c *LeadController) ListCampaignLeads(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}

	in, err := leadListInput(r.URL.Query())
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}

	page, err := c.LeadService.ListCampaignLeads(r.Context(), userID, chi.URLParam(r, "id"), in)
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, page)
}

func (c *LeadController) GetLead(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}

	lead, err := c.LeadService.GetLead(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, lead)
}

func (c *LeadController) UpdateLead(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}

	var body service.UpdateLeadInput
	if err := handler.DecodeJSON(w, r, &body); err != nil {
		handler.WriteError(w, r, err)
		return
	}

	lead, err := c.LeadService.UpdateLeadStatus(r.Context(), userID, chi.URLParam(r, "id"), body)
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, lead)
}

func (c *LeadController) ListInteractions(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}

	items, err := c.LeadService.ListInteractions(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (c *LeadController) CreateInteraction(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}

	var body service.CreateInteractionInput
	if err := handler.DecodeJSON(w, r, &body); err != nil {
		handler.WriteError(w, r, err)
		return
	}

	interaction, err := c.LeadService.RecordInteraction(r.Context(), userID, chi.URLParam(r, "id"), body)
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusCreated, interaction)
}

// ImportLeads accepts a multipart upload in the "file" field.
func (c *LeadController) ImportLeads(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, service.MaxImportBytes+1<<20)
	if err := r.ParseMultipartForm(service.MaxImportBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handler.WriteError(w, r, appErrors.NewValidationError("file", "must be at most 10 MiB"))
			return
		}
		handler.WriteError(w, r, appErrors.NewValidationError("file", "is required"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		handler.WriteError(w, r, appErrors.NewValidationError("file", "is required"))
		return
	}
	defer file.Close()

	result, err := c.LeadService.ImportLeads(r.Context(), userID, chi.URLParam(r, "id"), header.Filename, file)
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, result)
}
