package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/unclebandit/outreach-backend/internal/auth"
	"github.com/unclebandit/outreach-backend/internal/handler"
	"github.com/unclebandit/outreach-backend/internal/middleware"
	"github.com/unclebandit/outreach-backend/internal/service"
)

type RouterDeps struct {
	Campaigns *service.CampaignService
	Leads     *service.LeadService
	Accounts  *service.AccountService
	Verifier  auth.Verifier
	Metrics   *middleware.Metrics
	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
}

// NewRouter wires every route. Everything under /api requires a verified
// identity.
func NewRouter(d RouterDeps) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	if d.Metrics != nil {
		r.Use(d.Metrics.Handler)
	}

	r.Get("/v1/health", handler.Health)
	if d.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", d.MetricsHandler)
	}

	campaignController := &CampaignController{CampaignService: d.Campaigns}
	campaignHandler := handler.NewCampaignHandler(d.Campaigns)
	leadController := &LeadController{LeadService: d.Leads}
	accountController := &AccountController{AccountService: d.Accounts}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequireAuth(d.Verifier))

		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/", campaignController.CreateCampaign)
			r.Get("/", campaignController.ListCampaigns)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", campaignController.GetCampaign)
				r.Patch("/", campaignController.UpdateCampaign)
				r.Delete("/", campaignController.DeleteCampaign)
				r.Get("/stats", campaignHandler.GetCampaignStatsHandler)
				r.Get("/templates", campaignController.GetTemplates)
				r.Patch("/templates", campaignController.UpdateTemplates)
				r.Post("/templates/preview", campaignController.PersonalizedPreview)
				r.Get("/settings", campaignController.GetSettings)
				r.Patch("/settings", campaignController.UpdateSettings)
				r.Get("/leads", leadController.ListCampaignLeads)
				r.Post("/leads/import", leadController.ImportLeads)
			})
		})

		r.Route("/leads", func(r chi.Router) {
			r.Get("/", leadController.ListLeads)
			r.Get("/{id}", leadController.GetLead)
			r.Patch("/{id}", leadController.UpdateLead)
			r.Get("/{id}/interactions", leadController.ListInteractions)
			r.Post("/{id}/interactions", leadController.CreateInteraction)
		})

		r.Get("/accounts", accountController.ListAccounts)
		r.Post("/accounts", accountController.CreateAccount)
	})

	return r
}
