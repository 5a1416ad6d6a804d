// internal/service/template_service.go
package service

import (
	"context"
	"strings"

	appErrors "github.com/unclebandit/outreach-backend/internal/errors"
	"github.com/unclebandit/outreach-backend/internal/model"
	"github.com/unclebandit/outreach-backend/internal/repository"
)

const unknownValue = "<unknown>"

// TemplateStep names one message of the outreach sequence.
type TemplateStep string

const (
	StepRequest    TemplateStep = "request"
	StepConnection TemplateStep = "connection"
	StepFollowup1  TemplateStep = "followup_1"
	StepFollowup2  TemplateStep = "followup_2"
)

type UpdateTemplatesInput struct {
	RequestMessage     *string `json:"requestMessage" validate:"omitempty,max=4000"`
	ConnectionMessage  *string `json:"connectionMessage" validate:"omitempty,max=4000"`
	Followup1          *string `json:"followup1" validate:"omitempty,max=4000"`
	Followup1DelayDays *int    `json:"followup1DelayDays" validate:"omitempty,min=0,max=30"`
	Followup2          *string `json:"followup2" validate:"omitempty,max=4000"`
	Followup2DelayDays *int    `json:"followup2DelayDays" validate:"omitempty,min=0,max=30"`
}

type PreviewInput struct {
	LeadID           string  `json:"leadId" validate:"required,uuid"`
	Step             string  `json:"step" validate:"required,oneof=request connection followup_1 followup_2"`
	OverrideTemplate *string `json:"overrideTemplate" validate:"omitempty,max=4000"`
}

type PreviewResult struct {
	LeadID  string       `json:"leadId"`
	Step    TemplateStep `json:"step"`
	Message string       `json:"message"`
}

// RenderTemplate replaces each {key} with its value in a single pass.
// Blank values render as <unknown>.
func RenderTemplate(template string, data map[string]string) string {
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		if strings.TrimSpace(v) == "" {
			v = unknownValue
		}
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// leadPlaceholders derives first and last name from the full name when the
// lead was imported without them.
func leadPlaceholders(l *model.Lead) map[string]string {
	first, last := deref(l.FirstName), deref(l.LastName)
	if first == "" && last == "" {
		parts := strings.Fields(l.FullName)
		if len(parts) > 0 {
			first = parts[0]
			last = strings.Join(parts[1:], " ")
		}
	}
	return map[string]string{
		"first_name": first,
		"last_name":  last,
		"full_name":  l.FullName,
		"company":    deref(l.Company),
		"job_title":  deref(l.JobTitle),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (t TemplateStep) body(m *model.MessageTemplate) string {
	switch t {
	case StepRequest:
		return m.RequestMessage
	case StepConnection:
		return m.ConnectionMessage
	case StepFollowup1:
		return m.Followup1
	case StepFollowup2:
		return m.Followup2
	}
	return ""
}

// GetTemplates returns the stored sequence, or the empty default when the
// campaign has none yet.
func (s *CampaignService) GetTemplates(ctx context.Context, ownerID, campaignID string) (*model.MessageTemplate, error) {
	if err := parseID("id", campaignID); err != nil {
		return nil, err
	}
	if _, err := s.CampaignRepo.GetByID(ctx, ownerID, campaignID); err != nil {
		return nil, err
	}

	tpl, err := s.TemplateRepo.GetByCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return model.EmptyTemplate(campaignID), nil
	}
	return tpl, nil
}

func (s *CampaignService) UpdateTemplates(ctx context.Context, ownerID, campaignID string, in UpdateTemplatesInput) (*model.MessageTemplate, error) {
	if err := parseID("id", campaignID); err != nil {
		return nil, err
	}
	in.RequestMessage = trimPtr(in.RequestMessage)
	in.ConnectionMessage = trimPtr(in.ConnectionMessage)
	in.Followup1 = trimPtr(in.Followup1)
	in.Followup2 = trimPtr(in.Followup2)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if _, err := s.CampaignRepo.GetByID(ctx, ownerID, campaignID); err != nil {
		return nil, err
	}

	return s.TemplateRepo.Upsert(ctx, campaignID, repository.TemplatePatch{
		RequestMessage:     in.RequestMessage,
		ConnectionMessage:  in.ConnectionMessage,
		Followup1:          in.Followup1,
		Followup1DelayDays: in.Followup1DelayDays,
		Followup2:          in.Followup2,
		Followup2DelayDays: in.Followup2DelayDays,
	})
}

// RenderPreview renders one step of the campaign's sequence for one of its
// leads. A non-blank overrideTemplate is rendered instead of the stored body.
func (s *CampaignService) RenderPreview(ctx context.Context, ownerID, campaignID string, in PreviewInput) (*PreviewResult, error) {
	if err := parseID("id", campaignID); err != nil {
		return nil, err
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if _, err := s.CampaignRepo.GetByID(ctx, ownerID, campaignID); err != nil {
		return nil, err
	}

	lead, err := s.LeadRepo.GetByID(ctx, ownerID, in.LeadID)
	if err != nil {
		return nil, err
	}
	if lead.CampaignID != campaignID {
		return nil, appErrors.NewLeadNotFound(in.LeadID)
	}

	step := TemplateStep(in.Step)
	template := ""
	if in.OverrideTemplate != nil && strings.TrimSpace(*in.OverrideTemplate) != "" {
		template = *in.OverrideTemplate
	} else {
		stored, err := s.TemplateRepo.GetByCampaign(ctx, campaignID)
		if err != nil {
			return nil, err
		}
		if stored != nil {
			template = step.body(stored)
		}
	}

	if strings.TrimSpace(template) == "" {
		return nil, appErrors.NewValidationError("template", "cannot be empty")
	}

	return &PreviewResult{
		LeadID:  lead.ID,
		Step:    step,
		Message: RenderTemplate(template, leadPlaceholders(lead)),
	}, nil
}
