package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/outreach-backend/internal/errors"
	"github.com/unclebandit/outreach-backend/internal/model"
	"github.com/unclebandit/outreach-backend/internal/service"
)

func strPtr(s string) *string { return &s }

func TestRenderTemplate(t *testing.T) {
	out := service.RenderTemplate("Hi {first_name} {last_name} at {company}! {first_name}?", map[string]string{
		"first_name": "Alice",
		"last_name":  "",
		"company":    "{first_name} Corp",
	})
	// Values are not themselves expanded.
	assert.Equal(t, "Hi Alice <unknown> at {first_name} Corp! Alice?", out)
}

func TestRenderTemplate_UnknownPlaceholdersUntouched(t *testing.T) {
	assert.Equal(t, "Hello {nickname}", service.RenderTemplate("Hello {nickname}", map[string]string{"first_name": "A"}))
}

func previewFixture(t *testing.T) (*campaignFixture, model.Lead) {
	t.Helper()
	f := newCampaignFixture()
	lead := model.Lead{
		ID:         uuid.NewString(),
		FullName:   "Grace Brewster Hopper",
		Company:    strPtr("Navy"),
		CampaignID: f.campaign.ID,
	}
	f.leads.Leads = []model.Lead{lead}
	f.templates.Stored = &model.MessageTemplate{
		CampaignID:     f.campaign.ID,
		RequestMessage: "Hi {first_name}, I saw your work at {company} as {job_title}.",
		Followup1:      "Bumping this, {full_name}",
	}
	return f, lead
}

func TestRenderPreview_StoredStep(t *testing.T) {
	f, lead := previewFixture(t)

	res, err := f.svc.RenderPreview(context.Background(), ownerID, f.campaign.ID, service.PreviewInput{LeadID: lead.ID, Step: "request"})
	require.NoError(t, err)
	assert.Equal(t, "Hi Grace, I saw your work at Navy as <unknown>.", res.Message)
	assert.Equal(t, service.StepRequest, res.Step)

	res, err = f.svc.RenderPreview(context.Background(), ownerID, f.campaign.ID, service.PreviewInput{LeadID: lead.ID, Step: "followup_1"})
	require.NoError(t, err)
	assert.Equal(t, "Bumping this, Grace Brewster Hopper", res.Message)
}

func TestRenderPreview_Override(t *testing.T) {
	f, lead := previewFixture(t)

	res, err := f.svc.RenderPreview(context.Background(), ownerID, f.campaign.ID, service.PreviewInput{
		LeadID: lead.ID, Step: "request", OverrideTemplate: strPtr("{last_name}!"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Brewster Hopper!", res.Message)
}

func TestRenderPreview_Errors(t *testing.T) {
	f, lead := previewFixture(t)
	ctx := context.Background()

	_, err := f.svc.RenderPreview(ctx, ownerID, f.campaign.ID, service.PreviewInput{LeadID: lead.ID, Step: "connection"})
	assert.True(t, appErrors.IsValidation(err), "empty stored body")

	_, err = f.svc.RenderPreview(ctx, ownerID, f.campaign.ID, service.PreviewInput{LeadID: lead.ID, Step: "followup_9"})
	assert.True(t, appErrors.IsValidation(err))

	_, err = f.svc.RenderPreview(ctx, ownerID, f.campaign.ID, service.PreviewInput{LeadID: uuid.NewString(), Step: "request"})
	assert.True(t, appErrors.IsNotFound(err))

	foreign := model.Lead{ID: uuid.NewString(), FullName: "X", CampaignID: uuid.NewString()}
	f.leads.Leads = append(f.leads.Leads, foreign)
	_, err = f.svc.RenderPreview(ctx, ownerID, f.campaign.ID, service.PreviewInput{LeadID: foreign.ID, Step: "request"})
	assert.True(t, appErrors.IsNotFound(err), "lead of another campaign")
}

func TestGetTemplates_DefaultsWhenMissing(t *testing.T) {
	f := newCampaignFixture()

	tpl, err := f.svc.GetTemplates(context.Background(), ownerID, f.campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, f.campaign.ID, tpl.CampaignID)
	assert.Empty(t, tpl.RequestMessage)
	assert.Equal(t, 1, tpl.Followup1DelayDays)
	assert.Equal(t, 1, tpl.Followup2DelayDays)
}

func TestUpdateTemplates(t *testing.T) {
	f := newCampaignFixture()
	days := 3

	tpl, err := f.svc.UpdateTemplates(context.Background(), ownerID, f.campaign.ID, service.UpdateTemplatesInput{
		RequestMessage:     strPtr("  Hello {first_name}  "),
		Followup1DelayDays: &days,
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello {first_name}", tpl.RequestMessage)
	assert.Equal(t, 3, tpl.Followup1DelayDays)
	assert.Nil(t, f.templates.Patch.ConnectionMessage)

	tooLong := 31
	_, err = f.svc.UpdateTemplates(context.Background(), ownerID, f.campaign.ID, service.UpdateTemplatesInput{Followup2DelayDays: &tooLong})
	var verr *appErrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "followup2DelayDays")
}
