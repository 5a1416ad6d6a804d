package repository

import (
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/unclebandit/outreach-backend/internal/model"
	"github.com/unclebandit/outreach-backend/internal/pagination"
)

type CampaignSort string

const (
	CampaignSortCreatedDesc  CampaignSort = "created_desc"
	CampaignSortNameAsc      CampaignSort = "name_asc"
	CampaignSortNameDesc     CampaignSort = "name_desc"
	CampaignSortResponseDesc CampaignSort = "response_desc"
)

const repliedExpr = "GREATEST(replied_by_interaction, replied_by_status)"

type campaignOrdering struct {
	keyExpr string
	keyOp   string
	orderBy string
}

// campaignOrderings is the only source of ORDER BY text for campaign listings.
var campaignOrderings = map[CampaignSort]campaignOrdering{
	CampaignSortCreatedDesc: {
		orderBy: "created_at DESC, id DESC",
	},
	CampaignSortNameAsc: {
		keyExpr: "name", keyOp: ">",
		orderBy: "name ASC, created_at DESC, id DESC",
	},
	CampaignSortNameDesc: {
		keyExpr: "name", keyOp: "<",
		orderBy: "name DESC, created_at DESC, id DESC",
	},
	CampaignSortResponseDesc: {
		keyExpr: repliedExpr, keyOp: "<",
		orderBy: repliedExpr + " DESC, created_at DESC, id DESC",
	},
}

func ValidCampaignSort(s CampaignSort) bool {
	_, ok := campaignOrderings[s]
	return ok
}

type CampaignListParams struct {
	OwnerID         string
	Query           string
	Statuses        []model.CampaignStatus
	IncludeArchived bool
	Sort            CampaignSort
	Cursor          *pagination.Cursor
	Limit           int
}

// buildCampaignListQuery aggregates funnel counts per campaign in a CTE so the
// keyset predicate and ordering can reference the aggregates directly.
func buildCampaignListQuery(p CampaignListParams) (string, []any) {
	ordering, ok := campaignOrderings[p.Sort]
	if !ok {
		p.Sort = CampaignSortCreatedDesc
		ordering = campaignOrderings[CampaignSortCreatedDesc]
	}

	args := &queryArgs{}
	where := []string{"c.created_by = " + args.add(p.OwnerID)}

	if q := strings.TrimSpace(p.Query); q != "" {
		where = append(where, "c.name ILIKE "+args.add(containsPattern(q)))
	}
	if len(p.Statuses) > 0 {
		statuses := make([]string, len(p.Statuses))
		for i, s := range p.Statuses {
			statuses[i] = string(s)
		}
		where = append(where, "c.status = ANY("+args.add(pq.Array(statuses))+"::campaign_status[])")
	}
	if !p.IncludeArchived {
		where = append(where, "NOT c.archived")
	}

	outer := ""
	if pred, ok := campaignKeyset(ordering, p.Sort, p.Cursor, args); ok {
		outer = "\n        WHERE " + pred
	}

	query := `
        WITH funnel AS (
            SELECT c.id, c.name, c.status, c.created_by, c.created_at, c.start_date, c.archived,
                   COUNT(DISTINCT l.id) AS total_leads,
                   COUNT(DISTINCT li.lead_id) FILTER (WHERE li.type = 'invitation_request') AS request_sent,
                   COUNT(DISTINCT li.lead_id) FILTER (WHERE li.type = 'acceptance_msg') AS request_accepted,
                   COUNT(DISTINCT li.lead_id) FILTER (WHERE li.type = 'replied') AS replied_by_interaction,
                   COUNT(DISTINCT l.id) FILTER (WHERE l.status IN ('responded', 'converted')) AS replied_by_status,
                   COUNT(DISTINCT l.id) FILTER (WHERE l.status = 'converted') AS converted
            FROM campaigns c
            LEFT JOIN leads l ON l.campaign_id = c.id
            LEFT JOIN lead_interactions li ON li.lead_id = l.id
            WHERE ` + strings.Join(where, " AND ") + `
            GROUP BY c.id
        )
        SELECT id, name, status, created_by, created_at, start_date, archived,
               total_leads, request_sent, request_accepted, replied_by_interaction, replied_by_status, converted
        FROM funnel` + outer + `
        ORDER BY ` + ordering.orderBy + `
        LIMIT ` + args.add(p.Limit+1)

	return query, args.values
}

func campaignKeyset(o campaignOrdering, sort CampaignSort, c *pagination.Cursor, args *queryArgs) (string, bool) {
	c = c.For(string(sort), string(CampaignSortCreatedDesc))
	if c == nil {
		return "", false
	}

	var key any
	switch sort {
	case CampaignSortNameAsc, CampaignSortNameDesc:
		key = c.Key
	case CampaignSortResponseDesc:
		n, err := strconv.ParseInt(c.Key, 10, 64)
		if err != nil {
			return "", false
		}
		key = n
	}

	var keyPH string
	if o.keyExpr != "" {
		keyPH = args.add(key)
	}
	tsPH := args.add(c.Timestamp)
	idPH := args.add(c.ID)
	return afterKey(o.keyExpr, o.keyOp, keyPH, "created_at", "id", tsPH, idPH), true
}

// CampaignCursor encodes the boundary after row s for the given sort.
func CampaignCursor(sort CampaignSort, s model.CampaignSummary) string {
	switch sort {
	case CampaignSortNameAsc, CampaignSortNameDesc:
		return pagination.EncodeKeyed(s.CreatedAt, s.ID, string(sort), s.Name)
	case CampaignSortResponseDesc:
		replied := max(s.Funnel.RepliedByInteraction, s.Funnel.RepliedByStatus)
		return pagination.EncodeKeyed(s.CreatedAt, s.ID, string(sort), strconv.Itoa(replied))
	default:
		return pagination.Encode(s.CreatedAt, s.ID)
	}
}
