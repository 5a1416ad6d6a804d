package service

import (
	"context"
	"strings"

	appErrors "github.com/unclebandit/outreach-backend/internal/errors"
	"github.com/unclebandit/outreach-backend/internal/model"
	"github.com/unclebandit/outreach-backend/internal/repository"
)

type CampaignSettings struct {
	Name                          string                  `json:"name"`
	Status                        model.CampaignStatus    `json:"status"`
	RequestWithoutPersonalization bool                    `json:"requestWithoutPersonalization"`
	Autopilot                     bool                    `json:"autopilot"`
	AssociatedAccounts            []model.CampaignAccount `json:"associatedAccounts"`
	AvailableAccounts             []model.Account         `json:"availableAccounts"`
}

// UpdateSettingsInput replaces the campaign's accounts only when AccountIDs
// is present in the body; an empty list detaches them all.
type UpdateSettingsInput struct {
	Name       *string  `json:"name" validate:"omitempty,min=1,max=180"`
	Status     *string  `json:"status" validate:"omitempty,oneof=draft active paused completed"`
	Autopilot  *bool    `json:"autopilot"`
	AccountIDs []string `json:"accountIds" validate:"omitempty,dive,uuid"`
}

func (s *CampaignService) GetSettings(ctx context.Context, ownerID, campaignID string) (*CampaignSettings, error) {
	if err := parseID("id", campaignID); err != nil {
		return nil, err
	}
	c, err := s.CampaignRepo.GetByID(ctx, ownerID, campaignID)
	if err != nil {
		return nil, err
	}
	return s.settingsFor(ctx, ownerID, c)
}

func (s *CampaignService) settingsFor(ctx context.Context, ownerID string, c *model.Campaign) (*CampaignSettings, error) {
	associated, err := s.AccountRepo.ListForCampaign(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	available, err := s.AccountRepo.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	settings := &CampaignSettings{
		Name:               c.Name,
		Status:             c.Status,
		AssociatedAccounts: associated,
		AvailableAccounts:  available,
	}
	for _, a := range associated {
		if a.Autopilot {
			settings.Autopilot = true
			break
		}
	}
	return settings, nil
}

func (s *CampaignService) UpdateSettings(ctx context.Context, ownerID, campaignID string, in UpdateSettingsInput) (*CampaignSettings, error) {
	if err := parseID("id", campaignID); err != nil {
		return nil, err
	}
	in.Name = trimPtr(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	// Ownership of every account is checked before anything is written.
	var links *repository.AccountLinks
	if in.AccountIDs != nil {
		ids := dedupe(in.AccountIDs)
		if len(ids) > 0 {
			owned, err := s.AccountRepo.CountOwned(ctx, ownerID, ids)
			if err != nil {
				return nil, err
			}
			if owned != len(ids) {
				return nil, appErrors.NewValidationError("accountIds", "contains unknown accounts")
			}
		}
		links = &repository.AccountLinks{IDs: ids, Autopilot: in.Autopilot != nil && *in.Autopilot}
	}

	patch := repository.CampaignPatch{Name: in.Name}
	if in.Status != nil {
		st := model.CampaignStatus(*in.Status)
		patch.Status = &st
	}
	c, err := s.CampaignRepo.UpdateSettings(ctx, ownerID, campaignID, patch, links)
	if err != nil {
		return nil, err
	}

	return s.settingsFor(ctx, ownerID, c)
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.ToLower(id)
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
