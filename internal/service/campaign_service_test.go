package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/outreach-backend/internal/errors"
	"github.com/unclebandit/outreach-backend/internal/model"
	"github.com/unclebandit/outreach-backend/internal/pagination"
	"github.com/unclebandit/outreach-backend/internal/repository"
	"github.com/unclebandit/outreach-backend/internal/service"
)

type campaignFixture struct {
	svc       *service.CampaignService
	campaigns *MockCampaignRepo
	stats     *MockStatsRepo
	templates *MockTemplateRepo
	leads     *MockLeadRepo
	accounts  *MockAccountRepo
	campaign  *model.Campaign
}

func newCampaignFixture() *campaignFixture {
	c := &model.Campaign{
		ID:        uuid.NewString(),
		Name:      "Q3 founders",
		Status:    model.CampaignActive,
		CreatedBy: ownerID,
		CreatedAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	f := &campaignFixture{
		campaigns: NewMockCampaignRepo(c),
		stats:     &MockStatsRepo{},
		templates: &MockTemplateRepo{},
		leads:     &MockLeadRepo{},
		accounts:  &MockAccountRepo{},
		campaign:  c,
	}
	f.campaigns.Accounts = f.accounts
	f.svc = &service.CampaignService{
		CampaignRepo: f.campaigns,
		StatsRepo:    f.stats,
		TemplateRepo: f.templates,
		LeadRepo:     f.leads,
		AccountRepo:  f.accounts,
		Paging:       paging,
	}
	return f
}

func TestCreateCampaign(t *testing.T) {
	f := newCampaignFixture()

	c, err := f.svc.CreateCampaign(context.Background(), ownerID, service.CreateCampaignInput{Name: "  Outbound  "})
	require.NoError(t, err)
	assert.Equal(t, "Outbound", c.Name)
	assert.Equal(t, model.CampaignDraft, c.Status)
	assert.Equal(t, ownerID, c.CreatedBy)
	assert.NotEmpty(t, c.ID)

	_, err = f.svc.CreateCampaign(context.Background(), ownerID, service.CreateCampaignInput{Name: "   "})
	assert.True(t, appErrors.IsValidation(err))

	_, err = f.svc.CreateCampaign(context.Background(), ownerID, service.CreateCampaignInput{Name: "x", Status: "running"})
	assert.True(t, appErrors.IsValidation(err))
}

func TestGetCampaignStats(t *testing.T) {
	f := newCampaignFixture()
	f.stats.Counts = model.FunnelCounts{
		TotalLeads: 10, RequestSent: 8, RequestAccepted: 5, RepliedByInteraction: 3, RepliedByStatus: 1, Converted: 1,
	}

	stats, err := f.svc.GetCampaignStats(context.Background(), ownerID, f.campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, f.campaign.ID, stats.CampaignID)
	assert.Equal(t, 3, stats.RequestReplied)
	assert.Equal(t, 80.0, stats.Metrics.ContactedRate)

	// Every call recomputes.
	_, err = f.svc.GetCampaignStats(context.Background(), ownerID, f.campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, f.stats.Calls)
}

func TestGetCampaignStats_InvalidIDNeverReachesStorage(t *testing.T) {
	f := newCampaignFixture()

	for _, id := range []string{"", "123", "not-a-uuid", f.campaign.ID + "0", "{" + f.campaign.ID + "}"} {
		_, err := f.svc.GetCampaignStats(context.Background(), ownerID, id)
		assert.True(t, appErrors.IsValidation(err), id)
	}
	assert.Zero(t, f.campaigns.Calls)
	assert.Zero(t, f.stats.Calls)
}

func TestGetCampaignStats_UnknownOrForeignCampaign(t *testing.T) {
	f := newCampaignFixture()

	_, err := f.svc.GetCampaignStats(context.Background(), ownerID, uuid.NewString())
	assert.True(t, appErrors.IsNotFound(err))

	_, err = f.svc.GetCampaignStats(context.Background(), uuid.NewString(), f.campaign.ID)
	assert.True(t, appErrors.IsNotFound(err))
	assert.Zero(t, f.stats.Calls)
}

func TestListCampaigns_AttachesFunnelAndCursor(t *testing.T) {
	f := newCampaignFixture()
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		f.campaigns.Summaries = append(f.campaigns.Summaries, model.CampaignSummary{
			Campaign: model.Campaign{ID: uuid.NewString(), Name: "c", CreatedAt: base.Add(-time.Duration(i) * time.Hour)},
			Funnel:   model.FunnelCounts{TotalLeads: 4, RequestSent: 2, RepliedByInteraction: 1, RepliedByStatus: 2},
		})
	}

	page, err := f.svc.ListCampaigns(context.Background(), ownerID, service.ListCampaignsInput{Sort: "response_desc", Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Items[0].RequestReplied)
	assert.Equal(t, 50.0, page.Items[0].Metrics.ContactedRate)
	assert.Equal(t, 100.0, page.Items[0].Metrics.ReplyRate)

	c := pagination.Decode(page.NextCursor)
	require.NotNil(t, c)
	assert.Equal(t, "response_desc", c.Sort)
	assert.Equal(t, "2", c.Key)
	assert.Equal(t, page.Items[1].ID, c.ID)

	// The cursor is honoured by the same sort only.
	_, err = f.svc.ListCampaigns(context.Background(), ownerID, service.ListCampaignsInput{Sort: "response_desc", Cursor: page.NextCursor})
	require.NoError(t, err)
	assert.NotNil(t, f.campaigns.LastList.Cursor)

	_, err = f.svc.ListCampaigns(context.Background(), ownerID, service.ListCampaignsInput{Cursor: page.NextCursor})
	require.NoError(t, err)
	assert.Nil(t, f.campaigns.LastList.Cursor)
	assert.Equal(t, repository.CampaignSortCreatedDesc, f.campaigns.LastList.Sort)
}

func TestListCampaigns_EmptyPage(t *testing.T) {
	f := newCampaignFixture()

	page, err := f.svc.ListCampaigns(context.Background(), ownerID, service.ListCampaignsInput{})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Empty(t, page.NextCursor)
}

func TestListCampaigns_InvalidStatus(t *testing.T) {
	f := newCampaignFixture()

	_, err := f.svc.ListCampaigns(context.Background(), ownerID, service.ListCampaignsInput{Statuses: []string{"deleted"}})
	var verr *appErrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "status[0]")
}

func TestUpdateCampaign(t *testing.T) {
	f := newCampaignFixture()
	name := "Renamed"
	archived := true

	c, err := f.svc.UpdateCampaign(context.Background(), ownerID, f.campaign.ID, service.UpdateCampaignInput{Name: &name, Archived: &archived})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", c.Name)
	assert.True(t, c.Archived)

	_, err = f.svc.UpdateCampaign(context.Background(), ownerID, f.campaign.ID, service.UpdateCampaignInput{})
	assert.True(t, appErrors.IsValidation(err))

	_, err = f.svc.UpdateCampaign(context.Background(), ownerID, uuid.NewString(), service.UpdateCampaignInput{Name: &name})
	assert.True(t, appErrors.IsNotFound(err))
}

func TestDeleteCampaign(t *testing.T) {
	f := newCampaignFixture()

	require.NoError(t, f.svc.DeleteCampaign(context.Background(), ownerID, f.campaign.ID))
	assert.True(t, appErrors.IsNotFound(f.svc.DeleteCampaign(context.Background(), ownerID, f.campaign.ID)))
}
