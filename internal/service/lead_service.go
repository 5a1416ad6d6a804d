// internal/service/lead_service.go
package service

import (
	"context"
	"log"
	"strings"

	"github.com/unclebandit/outreach-backend/internal/config"
	"github.com/unclebandit/outreach-backend/internal/model"
	"github.com/unclebandit/outreach-backend/internal/pagination"
	"github.com/unclebandit/outreach-backend/internal/queue"
	"github.com/unclebandit/outreach-backend/internal/repository"
)

type LeadService struct {
	LeadRepo        repository.LeadRepositoryInterface
	InteractionRepo repository.InteractionRepositoryInterface
	CampaignRepo    repository.CampaignRepositoryInterface
	Queue           queue.Queue
	Topic           string
	Paging          config.PagingConfig
}

type ListLeadsInput struct {
	Query      string   `query:"q" validate:"max=200"`
	Statuses   []string `query:"status" validate:"dive,oneof=pending contacted responded converted do_not_contact"`
	CampaignID string   `query:"campaignId" validate:"omitempty,uuid"`
	Sort       string   `query:"sort" validate:"omitempty,oneof=recent name_asc name_desc last_contact_desc"`
	Cursor     string   `query:"cursor"`
	Limit      int      `query:"limit" validate:"gte=0"`
}

type UpdateLeadInput struct {
	Status string `json:"status" validate:"required,oneof=pending contacted responded converted do_not_contact"`
}

type CreateInteractionInput struct {
	Type    string `json:"type" validate:"required,oneof=invitation_request connection_status acceptance_msg followup_1 followup_2 replied note"`
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

// LeadDetail is a lead with its interaction history, newest first.
type LeadDetail struct {
	model.Lead
	Interactions []model.Interaction `json:"interactions"`
}

// ListLeads returns one page of leads across the caller's campaigns.
func (s *LeadService) ListLeads(ctx context.Context, ownerID string, in ListLeadsInput) (pagination.Page[model.Lead], error) {
	in.Query = strings.TrimSpace(in.Query)
	if err := validateStruct(in); err != nil {
		return pagination.Page[model.Lead]{}, err
	}

	sort := repository.LeadSort(in.Sort)
	if sort == "" {
		sort = repository.LeadSortRecent
	}
	limit := pagination.ClampLimit(in.Limit, s.Paging.DefaultLimit, s.Paging.MaxLimit)

	cursor := pagination.Decode(in.Cursor).For(string(sort), string(repository.LeadSortRecent))
	if cursor != nil && parseID("cursor", cursor.ID) != nil {
		cursor = nil
	}

	statuses := make([]model.LeadStatus, 0, len(in.Statuses))
	for _, st := range in.Statuses {
		statuses = append(statuses, model.LeadStatus(st))
	}

	rows, err := s.LeadRepo.List(ctx, repository.LeadListParams{
		OwnerID:    ownerID,
		Query:      in.Query,
		Statuses:   statuses,
		CampaignID: in.CampaignID,
		Sort:       sort,
		Cursor:     cursor,
		Limit:      limit,
	})
	if err != nil {
		return pagination.Page[model.Lead]{}, err
	}

	return pagination.Build(rows, limit, func(l model.Lead) string {
		return repository.LeadCursor(sort, l)
	}), nil
}

// ListCampaignLeads is ListLeads scoped to one campaign, which must exist.
func (s *LeadService) ListCampaignLeads(ctx context.Context, ownerID, campaignID string, in ListLeadsInput) (pagination.Page[model.Lead], error) {
	if err := parseID("id", campaignID); err != nil {
		return pagination.Page[model.Lead]{}, err
	}
	if _, err := s.CampaignRepo.GetByID(ctx, ownerID, campaignID); err != nil {
		return pagination.Page[model.Lead]{}, err
	}
	in.CampaignID = campaignID
	return s.ListLeads(ctx, ownerID, in)
}

func (s *LeadService) GetLead(ctx context.Context, ownerID, id string) (*LeadDetail, error) {
	if err := parseID("id", id); err != nil {
		return nil, err
	}
	lead, err := s.LeadRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	interactions, err := s.InteractionRepo.ListByLead(ctx, id)
	if err != nil {
		return nil, err
	}
	return &LeadDetail{Lead: *lead, Interactions: interactions}, nil
}

func (s *LeadService) UpdateLeadStatus(ctx context.Context, ownerID, id string, in UpdateLeadInput) (*model.Lead, error) {
	if err := parseID("id", id); err != nil {
		return nil, err
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	return s.LeadRepo.UpdateStatus(ctx, ownerID, id, model.LeadStatus(in.Status))
}

func (s *LeadService) ListInteractions(ctx context.Context, ownerID, leadID string) ([]model.Interaction, error) {
	if err := parseID("id", leadID); err != nil {
		return nil, err
	}
	if _, err := s.LeadRepo.GetByID(ctx, ownerID, leadID); err != nil {
		return nil, err
	}
	return s.InteractionRepo.ListByLead(ctx, leadID)
}

// RecordInteraction appends an interaction and announces it on the queue.
// The row is stored before publishing; a publish failure is only logged.
func (s *LeadService) RecordInteraction(ctx context.Context, ownerID, leadID string, in CreateInteractionInput) (*model.Interaction, error) {
	if err := parseID("id", leadID); err != nil {
		return nil, err
	}
	in.Message = strings.TrimSpace(in.Message)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if _, err := s.LeadRepo.GetByID(ctx, ownerID, leadID); err != nil {
		return nil, err
	}

	interaction, err := s.InteractionRepo.Create(ctx, leadID, model.InteractionType(in.Type), in.Message)
	if err != nil {
		return nil, err
	}

	if s.Queue != nil {
		event := model.InteractionEvent{
			InteractionID: interaction.ID,
			LeadID:        interaction.LeadID,
			Type:          interaction.Type,
			CreatedAt:     interaction.CreatedAt,
		}
		if err := s.Queue.Publish(s.topic(), event); err != nil {
			log.Printf("⚠️ failed to publish interaction %d for lead %s: %v", interaction.ID, leadID, err)
		}
	}
	return interaction, nil
}

func (s *LeadService) topic() string {
	if s.Topic == "" {
		return queue.TopicLeadInteractions
	}
	return s.Topic
}
