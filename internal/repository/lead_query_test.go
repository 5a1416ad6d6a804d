package repository

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/outreach-backend/internal/model"
	"github.com/unclebandit/outreach-backend/internal/pagination"
)

const owner = "11111111-1111-1111-1111-111111111111"

func TestBuildLeadListQuery_Defaults(t *testing.T) {
	t.Parallel()

	query, args := buildLeadListQuery(LeadListParams{OwnerID: owner, Limit: 20})

	assert.Contains(t, query, "c.created_by = $1")
	assert.Contains(t, query, "ORDER BY l.created_at DESC, l.id DESC")
	assert.Contains(t, query, "LIMIT $2")
	assert.NotContains(t, query, "ILIKE")
	assert.NotContains(t, query, "ANY(")
	assert.Equal(t, []any{owner, 21}, args)
}

func TestBuildLeadListQuery_Filters(t *testing.T) {
	t.Parallel()

	campaignID := "22222222-2222-2222-2222-222222222222"
	query, args := buildLeadListQuery(LeadListParams{
		OwnerID:    owner,
		Query:      "  50%_off  ",
		Statuses:   []model.LeadStatus{model.LeadResponded, model.LeadConverted},
		CampaignID: campaignID,
		Sort:       LeadSortRecent,
		Limit:      10,
	})

	assert.Contains(t, query, "(l.full_name ILIKE $2 OR l.email ILIKE $2 OR l.company ILIKE $2)")
	assert.Contains(t, query, "l.status = ANY($3::lead_status[])")
	assert.Contains(t, query, "l.campaign_id = $4")
	assert.Contains(t, query, "LIMIT $5")

	require.Len(t, args, 5)
	assert.Equal(t, `%50\%\_off%`, args[1])
	assert.Equal(t, pq.Array([]string{"responded", "converted"}), args[2])
	assert.Equal(t, campaignID, args[3])
	assert.Equal(t, 11, args[4])
}

func TestBuildLeadListQuery_RecentCursor(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 5, 1, 8, 30, 0, 250000000, time.UTC)
	id := "33333333-3333-3333-3333-333333333333"
	cursor := pagination.Decode(pagination.Encode(ts, id))

	query, args := buildLeadListQuery(LeadListParams{OwnerID: owner, Cursor: cursor, Limit: 20})

	assert.Contains(t, query, "(l.created_at < $2 OR (l.created_at = $2 AND l.id < $3))")
	require.Len(t, args, 4)
	assert.True(t, ts.Equal(args[1].(time.Time)))
	assert.Equal(t, id, args[2])
	assert.Equal(t, 21, args[3])
}

func TestBuildLeadListQuery_NameCursor(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	lead := model.Lead{ID: "44444444-4444-4444-4444-444444444444", FullName: "Ada Lovelace", CreatedAt: ts}

	asc, ascArgs := buildLeadListQuery(LeadListParams{
		OwnerID: owner, Sort: LeadSortNameAsc, Limit: 5,
		Cursor: pagination.Decode(LeadCursor(LeadSortNameAsc, lead)),
	})
	assert.Contains(t, asc, "ORDER BY l.full_name ASC, l.created_at DESC, l.id DESC")
	assert.Contains(t, asc, "(l.full_name > $2 OR (l.full_name = $2 AND (l.created_at < $3 OR (l.created_at = $3 AND l.id < $4))))")
	assert.Equal(t, "Ada Lovelace", ascArgs[1])

	desc, _ := buildLeadListQuery(LeadListParams{
		OwnerID: owner, Sort: LeadSortNameDesc, Limit: 5,
		Cursor: pagination.Decode(LeadCursor(LeadSortNameDesc, lead)),
	})
	assert.Contains(t, desc, "ORDER BY l.full_name DESC, l.created_at DESC, l.id DESC")
	assert.Contains(t, desc, "(l.full_name < $2 OR (l.full_name = $2 AND")
}

func TestBuildLeadListQuery_LastContactCursor(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	contact := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	lead := model.Lead{ID: "55555555-5555-5555-5555-555555555555", CreatedAt: created, LastContactAt: &contact}

	query, args := buildLeadListQuery(LeadListParams{
		OwnerID: owner, Sort: LeadSortLastContactDesc, Limit: 5,
		Cursor: pagination.Decode(LeadCursor(LeadSortLastContactDesc, lead)),
	})
	assert.Contains(t, query, "ORDER BY COALESCE(l.last_contact_at, l.created_at) DESC, l.created_at DESC, l.id DESC")
	assert.Contains(t, query, "(COALESCE(l.last_contact_at, l.created_at) < $2 OR")
	assert.True(t, contact.Equal(args[1].(time.Time)))
	assert.True(t, created.Equal(args[2].(time.Time)))

	// Without a contact time the key falls back to created_at.
	lead.LastContactAt = nil
	c := pagination.Decode(LeadCursor(LeadSortLastContactDesc, lead))
	require.NotNil(t, c)
	assert.Equal(t, created.Format(time.RFC3339Nano), c.Key)
}

func TestBuildLeadListQuery_IgnoresMismatchedCursor(t *testing.T) {
	t.Parallel()

	ts := time.Now()
	recentCursor := pagination.Decode(pagination.Encode(ts, "x"))

	query, args := buildLeadListQuery(LeadListParams{OwnerID: owner, Sort: LeadSortNameAsc, Cursor: recentCursor, Limit: 5})
	assert.NotContains(t, query, "l.full_name >")
	assert.Len(t, args, 2)

	badKey := pagination.Decode(pagination.EncodeKeyed(ts, "x", string(LeadSortLastContactDesc), "not-a-time"))
	query, args = buildLeadListQuery(LeadListParams{OwnerID: owner, Sort: LeadSortLastContactDesc, Cursor: badKey, Limit: 5})
	assert.NotContains(t, query, "COALESCE(l.last_contact_at, l.created_at) <")
	assert.Len(t, args, 2)
}

func TestBuildLeadListQuery_UnknownSortFallsBack(t *testing.T) {
	t.Parallel()

	query, _ := buildLeadListQuery(LeadListParams{OwnerID: owner, Sort: "full_name; DROP TABLE leads", Limit: 5})
	assert.Contains(t, query, "ORDER BY l.created_at DESC, l.id DESC")
	assert.NotContains(t, query, "DROP")
}

func TestValidLeadSort(t *testing.T) {
	t.Parallel()

	for _, s := range []LeadSort{LeadSortRecent, LeadSortNameAsc, LeadSortNameDesc, LeadSortLastContactDesc} {
		assert.True(t, ValidLeadSort(s), s)
	}
	assert.False(t, ValidLeadSort("created_desc"))
	assert.False(t, ValidLeadSort(""))
}
