package repository

import (
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/unclebandit/outreach-backend/internal/model"
	"github.com/unclebandit/outreach-backend/internal/pagination"
)

type LeadSort string

const (
	LeadSortRecent          LeadSort = "recent"
	LeadSortNameAsc         LeadSort = "name_asc"
	LeadSortNameDesc        LeadSort = "name_desc"
	LeadSortLastContactDesc LeadSort = "last_contact_desc"
)

type leadOrdering struct {
	// keyExpr is the primary sort expression; empty for the time sort.
	keyExpr string
	// keyOp is the comparison that selects rows after the cursor key.
	keyOp   string
	orderBy string
}

// leadOrderings is the only source of ORDER BY text for lead listings.
var leadOrderings = map[LeadSort]leadOrdering{
	LeadSortRecent: {
		orderBy: "l.created_at DESC, l.id DESC",
	},
	LeadSortNameAsc: {
		keyExpr: "l.full_name", keyOp: ">",
		orderBy: "l.full_name ASC, l.created_at DESC, l.id DESC",
	},
	LeadSortNameDesc: {
		keyExpr: "l.full_name", keyOp: "<",
		orderBy: "l.full_name DESC, l.created_at DESC, l.id DESC",
	},
	LeadSortLastContactDesc: {
		keyExpr: "COALESCE(l.last_contact_at, l.created_at)", keyOp: "<",
		orderBy: "COALESCE(l.last_contact_at, l.created_at) DESC, l.created_at DESC, l.id DESC",
	},
}

// ValidLeadSort reports whether s is in the allow-list.
func ValidLeadSort(s LeadSort) bool {
	_, ok := leadOrderings[s]
	return ok
}

type LeadListParams struct {
	OwnerID    string
	Query      string
	Statuses   []model.LeadStatus
	CampaignID string
	Sort       LeadSort
	Cursor     *pagination.Cursor
	// Limit is the page size; the query fetches one extra row.
	Limit int
}

const leadColumns = `l.id, l.full_name, l.first_name, l.last_name, l.email, l.company, l.job_title,
       l.campaign_id, c.name, l.status, l.last_contact_at, l.created_at`

func buildLeadListQuery(p LeadListParams) (string, []any) {
	ordering, ok := leadOrderings[p.Sort]
	if !ok {
		p.Sort = LeadSortRecent
		ordering = leadOrderings[LeadSortRecent]
	}

	args := &queryArgs{}
	where := []string{"c.created_by = " + args.add(p.OwnerID)}

	if q := strings.TrimSpace(p.Query); q != "" {
		ph := args.add(containsPattern(q))
		where = append(where, "(l.full_name ILIKE "+ph+" OR l.email ILIKE "+ph+" OR l.company ILIKE "+ph+")")
	}
	if len(p.Statuses) > 0 {
		statuses := make([]string, len(p.Statuses))
		for i, s := range p.Statuses {
			statuses[i] = string(s)
		}
		where = append(where, "l.status = ANY("+args.add(pq.Array(statuses))+"::lead_status[])")
	}
	if p.CampaignID != "" {
		where = append(where, "l.campaign_id = "+args.add(p.CampaignID))
	}
	if pred, ok := leadKeyset(ordering, p.Sort, p.Cursor, args); ok {
		where = append(where, pred)
	}

	query := `
        SELECT ` + leadColumns + `
        FROM leads l
        JOIN campaigns c ON c.id = l.campaign_id
        WHERE ` + strings.Join(where, "\n          AND ") + `
        ORDER BY ` + ordering.orderBy + `
        LIMIT ` + args.add(p.Limit+1)

	return query, args.values
}

func leadKeyset(o leadOrdering, sort LeadSort, c *pagination.Cursor, args *queryArgs) (string, bool) {
	c = c.For(string(sort), string(LeadSortRecent))
	if c == nil {
		return "", false
	}

	var key any
	switch sort {
	case LeadSortNameAsc, LeadSortNameDesc:
		key = c.Key
	case LeadSortLastContactDesc:
		t, err := time.Parse(time.RFC3339Nano, c.Key)
		if err != nil {
			return "", false
		}
		key = t
	}

	var keyPH string
	if o.keyExpr != "" {
		keyPH = args.add(key)
	}
	tsPH := args.add(c.Timestamp)
	idPH := args.add(c.ID)
	return afterKey(o.keyExpr, o.keyOp, keyPH, "l.created_at", "l.id", tsPH, idPH), true
}

// LeadCursor encodes the boundary after lead l for the given sort.
func LeadCursor(sort LeadSort, l model.Lead) string {
	switch sort {
	case LeadSortNameAsc, LeadSortNameDesc:
		return pagination.EncodeKeyed(l.CreatedAt, l.ID, string(sort), l.FullName)
	case LeadSortLastContactDesc:
		contact := l.CreatedAt
		if l.LastContactAt != nil {
			contact = *l.LastContactAt
		}
		return pagination.EncodeKeyed(l.CreatedAt, l.ID, string(sort), contact.UTC().Format(time.RFC3339Nano))
	default:
		return pagination.Encode(l.CreatedAt, l.ID)
	}
}
