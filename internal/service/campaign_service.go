// internal/service/campaign_service.go
package service

import (
	"context"
	"strings"
	"time"

	"github.com/unclebandit/outreach-backend/internal/config"
	appErrors "github.com/unclebandit/outreach-backend/internal/errors"
	"github.com/unclebandit/outreach-backend/internal/model"
	"github.com/unclebandit/outreach-backend/internal/pagination"
	"github.com/unclebandit/outreach-backend/internal/repository"
)

type CampaignService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	StatsRepo    repository.StatsRepositoryInterface
	TemplateRepo repository.TemplateRepositoryInterface
	LeadRepo     repository.LeadRepositoryInterface
	AccountRepo  repository.AccountRepositoryInterface
	Paging       config.PagingConfig
}

type CreateCampaignInput struct {
	Name      string     `json:"name" validate:"required,min=1,max=180"`
	Status    string     `json:"status" validate:"omitempty,oneof=draft active paused completed"`
	StartDate *time.Time `json:"startDate"`
}

type UpdateCampaignInput struct {
	Name      *string    `json:"name" validate:"omitempty,min=1,max=180"`
	Status    *string    `json:"status" validate:"omitempty,oneof=draft active paused completed"`
	Archived  *bool      `json:"archived"`
	StartDate *time.Time `json:"startDate"`
}

type ListCampaignsInput struct {
	Query           string   `query:"q" validate:"max=200"`
	Statuses        []string `query:"status" validate:"dive,oneof=draft active paused completed"`
	Sort            string   `query:"sort" validate:"omitempty,oneof=created_desc name_asc name_desc response_desc"`
	IncludeArchived bool     `query:"includeArchived"`
	Cursor          string   `query:"cursor"`
	Limit           int      `query:"limit" validate:"gte=0"`
}

// CampaignListItem is a campaign with its funnel, as shown on the dashboard.
type CampaignListItem struct {
	model.Campaign
	FunnelSummary
}

func (s *CampaignService) CreateCampaign(ctx context.Context, ownerID string, in CreateCampaignInput) (*model.Campaign, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	c := &model.Campaign{
		Name:      in.Name,
		Status:    model.CampaignDraft,
		CreatedBy: ownerID,
		StartDate: in.StartDate,
	}
	if in.Status != "" {
		c.Status = model.CampaignStatus(in.Status)
	}

	if err := s.CampaignRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListCampaigns returns one page of the caller's campaigns with their funnel
// counts. A cursor from another sort, or a malformed one, restarts at the
// first page.
func (s *CampaignService) ListCampaigns(ctx context.Context, ownerID string, in ListCampaignsInput) (pagination.Page[CampaignListItem], error) {
	in.Query = strings.TrimSpace(in.Query)
	if err := validateStruct(in); err != nil {
		return pagination.Page[CampaignListItem]{}, err
	}

	sort := repository.CampaignSort(in.Sort)
	if sort == "" {
		sort = repository.CampaignSortCreatedDesc
	}
	limit := pagination.ClampLimit(in.Limit, s.Paging.DefaultLimit, s.Paging.MaxLimit)

	cursor := pagination.Decode(in.Cursor).For(string(sort), string(repository.CampaignSortCreatedDesc))
	if cursor != nil && parseID("cursor", cursor.ID) != nil {
		cursor = nil
	}

	statuses := make([]model.CampaignStatus, 0, len(in.Statuses))
	for _, st := range in.Statuses {
		statuses = append(statuses, model.CampaignStatus(st))
	}

	rows, err := s.CampaignRepo.List(ctx, repository.CampaignListParams{
		OwnerID:         ownerID,
		Query:           in.Query,
		Statuses:        statuses,
		IncludeArchived: in.IncludeArchived,
		Sort:            sort,
		Cursor:          cursor,
		Limit:           limit,
	})
	if err != nil {
		return pagination.Page[CampaignListItem]{}, err
	}

	page := pagination.Build(rows, limit, func(c model.CampaignSummary) string {
		return repository.CampaignCursor(sort, c)
	})

	items := make([]CampaignListItem, 0, len(page.Items))
	for _, c := range page.Items {
		items = append(items, CampaignListItem{Campaign: c.Campaign, FunnelSummary: BuildFunnelSummary(c.Funnel)})
	}
	return pagination.Page[CampaignListItem]{Items: items, NextCursor: page.NextCursor}, nil
}

func (s *CampaignService) GetCampaign(ctx context.Context, ownerID, id string) (*model.Campaign, error) {
	if err := parseID("id", id); err != nil {
		return nil, err
	}
	return s.CampaignRepo.GetByID(ctx, ownerID, id)
}

func (s *CampaignService) UpdateCampaign(ctx context.Context, ownerID, id string, in UpdateCampaignInput) (*model.Campaign, error) {
	if err := parseID("id", id); err != nil {
		return nil, err
	}
	in.Name = trimPtr(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	patch := repository.CampaignPatch{Name: in.Name, Archived: in.Archived, StartDate: in.StartDate}
	if in.Status != nil {
		st := model.CampaignStatus(*in.Status)
		patch.Status = &st
	}
	if patch.Empty() {
		return nil, appErrors.NewValidationError("body", "at least one field is required")
	}
	return s.CampaignRepo.Update(ctx, ownerID, id, patch)
}

func (s *CampaignService) DeleteCampaign(ctx context.Context, ownerID, id string) error {
	if err := parseID("id", id); err != nil {
		return err
	}
	return s.CampaignRepo.Delete(ctx, ownerID, id)
}

// GetCampaignStats recomputes the funnel on every call.
func (s *CampaignService) GetCampaignStats(ctx context.Context, ownerID, id string) (*CampaignStats, error) {
	if err := parseID("id", id); err != nil {
		return nil, err
	}
	if _, err := s.CampaignRepo.GetByID(ctx, ownerID, id); err != nil {
		return nil, err
	}

	counts, err := s.StatsRepo.FunnelCounts(ctx, id)
	if err != nil {
		return nil, err
	}
	stats := BuildCampaignStats(id, counts)
	return &stats, nil
}
