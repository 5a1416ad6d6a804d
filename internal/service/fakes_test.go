package service_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	appErrors "github.com/unclebandit/outreach-backend/internal/errors"
	"github.com/unclebandit/outreach-backend/internal/model"
	"github.com/unclebandit/outreach-backend/internal/pagination"
	"github.com/unclebandit/outreach-backend/internal/queue"
	"github.com/unclebandit/outreach-backend/internal/repository"
)

// Mock campaign repository
type MockCampaignRepo struct {
	Campaigns map[string]*model.Campaign
	Summaries []model.CampaignSummary
	LastList  repository.CampaignListParams
	Patches   []repository.CampaignPatch
	Calls     int
	// Links records the last account set passed to UpdateSettings; when
	// Accounts is set the links are mirrored into it.
	Links    *repository.AccountLinks
	Accounts *MockAccountRepo
}

func NewMockCampaignRepo(campaigns ...*model.Campaign) *MockCampaignRepo {
	m := &MockCampaignRepo{Campaigns: map[string]*model.Campaign{}}
	for _, c := range campaigns {
		m.Campaigns[c.ID] = c
	}
	return m
}

func (m *MockCampaignRepo) Create(ctx context.Context, c *model.Campaign) error {
	c.ID = "00000000-0000-0000-0000-000000000999"
	c.CreatedAt = time.Now()
	m.Campaigns[c.ID] = c
	return nil
}

func (m *MockCampaignRepo) GetByID(ctx context.Context, ownerID, id string) (*model.Campaign, error) {
	m.Calls++
	c, ok := m.Campaigns[id]
	if !ok || c.CreatedBy != ownerID {
		return nil, appErrors.NewCampaignNotFound(id)
	}
	cp := *c
	return &cp, nil
}

func (m *MockCampaignRepo) Update(ctx context.Context, ownerID, id string, patch repository.CampaignPatch) (*model.Campaign, error) {
	m.Patches = append(m.Patches, patch)
	c, err := m.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}
	if patch.Archived != nil {
		c.Archived = *patch.Archived
	}
	m.Campaigns[id] = c
	return c, nil
}

func (m *MockCampaignRepo) UpdateSettings(ctx context.Context, ownerID, id string, patch repository.CampaignPatch, links *repository.AccountLinks) (*model.Campaign, error) {
	if _, err := m.GetByID(ctx, ownerID, id); err != nil {
		return nil, err
	}
	c, err := m.Update(ctx, ownerID, id, patch)
	if err != nil {
		return nil, err
	}
	if links != nil {
		m.Links = links
		if m.Accounts != nil {
			m.Accounts.Linked = nil
			for _, accID := range links.IDs {
				m.Accounts.Linked = append(m.Accounts.Linked, model.CampaignAccount{AccountID: accID, Autopilot: links.Autopilot})
			}
		}
	}
	return c, nil
}

func (m *MockCampaignRepo) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := m.GetByID(ctx, ownerID, id); err != nil {
		return err
	}
	delete(m.Campaigns, id)
	return nil
}

func (m *MockCampaignRepo) List(ctx context.Context, p repository.CampaignListParams) ([]model.CampaignSummary, error) {
	m.LastList = p
	rows := m.Summaries
	if len(rows) > p.Limit+1 {
		rows = rows[:p.Limit+1]
	}
	return rows, nil
}

// Mock lead repository. List orders and seeks in memory the same way the SQL
// keyset does.
type MockLeadRepo struct {
	mu       sync.Mutex
	Leads    []model.Lead
	LastList repository.LeadListParams
	Inserted []model.NewLead
	Touched  map[string]time.Time
	TouchErr error
}

func (m *MockLeadRepo) List(ctx context.Context, p repository.LeadListParams) ([]model.Lead, error) {
	m.LastList = p
	less := leadLess(p.Sort)

	var rows []model.Lead
	for _, l := range m.Leads {
		if p.CampaignID != "" && l.CampaignID != p.CampaignID {
			continue
		}
		rows = append(rows, l)
	}
	sort.SliceStable(rows, func(i, j int) bool { return less(rows[i], rows[j]) })

	if p.Cursor != nil {
		boundary := model.Lead{ID: p.Cursor.ID, CreatedAt: p.Cursor.Timestamp, FullName: p.Cursor.Key}
		if t, err := time.Parse(time.RFC3339Nano, p.Cursor.Key); err == nil {
			boundary.LastContactAt = &t
		}
		var after []model.Lead
		for _, l := range rows {
			if less(boundary, l) {
				after = append(after, l)
			}
		}
		rows = after
	}

	if len(rows) > p.Limit+1 {
		rows = rows[:p.Limit+1]
	}
	return rows, nil
}

func leadLess(s repository.LeadSort) func(a, b model.Lead) bool {
	recent := func(a, b model.Lead) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	}
	contact := func(l model.Lead) time.Time {
		if l.LastContactAt != nil {
			return *l.LastContactAt
		}
		return l.CreatedAt
	}
	switch s {
	case repository.LeadSortNameAsc:
		return func(a, b model.Lead) bool {
			if a.FullName != b.FullName {
				return a.FullName < b.FullName
			}
			return recent(a, b)
		}
	case repository.LeadSortNameDesc:
		return func(a, b model.Lead) bool {
			if a.FullName != b.FullName {
				return a.FullName > b.FullName
			}
			return recent(a, b)
		}
	case repository.LeadSortLastContactDesc:
		return func(a, b model.Lead) bool {
			if ca, cb := contact(a), contact(b); !ca.Equal(cb) {
				return ca.After(cb)
			}
			return recent(a, b)
		}
	}
	return recent
}

func (m *MockLeadRepo) GetByID(ctx context.Context, ownerID, id string) (*model.Lead, error) {
	for _, l := range m.Leads {
		if l.ID == id {
			cp := l
			return &cp, nil
		}
	}
	return nil, appErrors.NewLeadNotFound(id)
}

func (m *MockLeadRepo) UpdateStatus(ctx context.Context, ownerID, id string, status model.LeadStatus) (*model.Lead, error) {
	for i := range m.Leads {
		if m.Leads[i].ID == id {
			now := time.Now()
			m.Leads[i].Status = status
			m.Leads[i].LastContactAt = &now
			cp := m.Leads[i]
			return &cp, nil
		}
	}
	return nil, appErrors.NewLeadNotFound(id)
}

func (m *MockLeadRepo) BulkInsert(ctx context.Context, campaignID string, leads []model.NewLead) (int, error) {
	m.Inserted = append(m.Inserted, leads...)
	return len(leads), nil
}

func (m *MockLeadRepo) TouchLastContact(ctx context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.TouchErr != nil {
		return m.TouchErr
	}
	if m.Touched == nil {
		m.Touched = map[string]time.Time{}
	}
	m.Touched[id] = at
	return nil
}

func (m *MockLeadRepo) touched(id string) (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.Touched[id]
	return t, ok
}

// Mock interaction repository
type MockInteractionRepo struct {
	Rows   []model.Interaction
	nextID int64
}

func (m *MockInteractionRepo) ListByLead(ctx context.Context, leadID string) ([]model.Interaction, error) {
	out := []model.Interaction{}
	for i := len(m.Rows) - 1; i >= 0; i-- {
		if m.Rows[i].LeadID == leadID {
			out = append(out, m.Rows[i])
		}
	}
	return out, nil
}

func (m *MockInteractionRepo) Create(ctx context.Context, leadID string, typ model.InteractionType, message string) (*model.Interaction, error) {
	m.nextID++
	msg := message
	row := model.Interaction{ID: m.nextID, LeadID: leadID, Type: typ, Message: &msg, CreatedAt: time.Now()}
	m.Rows = append(m.Rows, row)
	return &row, nil
}

// Mock stats repository
type MockStatsRepo struct {
	Counts model.FunnelCounts
	Calls  int
}

func (m *MockStatsRepo) FunnelCounts(ctx context.Context, campaignID string) (model.FunnelCounts, error) {
	m.Calls++
	return m.Counts, nil
}

// Mock template repository
type MockTemplateRepo struct {
	Stored *model.MessageTemplate
	Patch  *repository.TemplatePatch
}

func (m *MockTemplateRepo) GetByCampaign(ctx context.Context, campaignID string) (*model.MessageTemplate, error) {
	return m.Stored, nil
}

func (m *MockTemplateRepo) Upsert(ctx context.Context, campaignID string, patch repository.TemplatePatch) (*model.MessageTemplate, error) {
	m.Patch = &patch
	t := model.EmptyTemplate(campaignID)
	if patch.RequestMessage != nil {
		t.RequestMessage = *patch.RequestMessage
	}
	if patch.Followup1DelayDays != nil {
		t.Followup1DelayDays = *patch.Followup1DelayDays
	}
	m.Stored = t
	return t, nil
}

// Mock account repository
type MockAccountRepo struct {
	Accounts []model.Account
	Linked   []model.CampaignAccount
}

func (m *MockAccountRepo) ListByUser(ctx context.Context, userID string) ([]model.Account, error) {
	out := []model.Account{}
	for _, a := range m.Accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MockAccountRepo) Create(ctx context.Context, a *model.Account) error {
	if a.Type == "" {
		a.Type = "linkedin"
	}
	a.ID = "00000000-0000-0000-0000-00000000a001"
	m.Accounts = append(m.Accounts, *a)
	return nil
}

func (m *MockAccountRepo) CountOwned(ctx context.Context, userID string, ids []string) (int, error) {
	n := 0
	for _, id := range ids {
		for _, a := range m.Accounts {
			if a.ID == id && a.UserID == userID {
				n++
			}
		}
	}
	return n, nil
}

func (m *MockAccountRepo) ListForCampaign(ctx context.Context, campaignID string) ([]model.CampaignAccount, error) {
	return m.Linked, nil
}

// Mock queue that records publishes
type MockQueue struct {
	Published []any
	Topics    []string
	Err       error
}

func (m *MockQueue) Publish(topic string, payload any) error {
	if m.Err != nil {
		return m.Err
	}
	m.Topics = append(m.Topics, topic)
	m.Published = append(m.Published, payload)
	return nil
}

func (m *MockQueue) Subscribe(topic string, handler queue.Handler) error { return nil }
func (m *MockQueue) Close() error                                       { return nil }

var errBroker = errors.New("broker down")

// walk follows nextCursor from the first page until the listing is exhausted.
func walk[T any](fetch func(cursor string) (pagination.Page[T], error)) ([][]T, error) {
	var pages [][]T
	cursor := ""
	for i := 0; i < 1000; i++ {
		page, err := fetch(cursor)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page.Items)
		if page.NextCursor == "" {
			return pages, nil
		}
		cursor = page.NextCursor
	}
	return nil, errors.New("listing did not terminate")
}
