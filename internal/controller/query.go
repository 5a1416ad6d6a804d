package controller

import (
	"net/url"
	"strconv"
	"strings"

	appErrors "github.com/unclebandit/outreach-backend/internal/errors"
	"github.com/unclebandit/outreach-backend/internal/service"
)

// multi collects a repeated parameter, also splitting comma-separated values.
func multi(q url.Values, key string) []string {
	var out []string
	for _, v := range q[key] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func intParam(q url.Values, key string) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, appErrors.NewValidationError(key, "must be an integer")
	}
	return n, nil
}

func boolParam(q url.Values, key string) (bool, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, appErrors.NewValidationError(key, "must be a boolean")
	}
	return b, nil
}

func leadListInput(q url.Values) (service.ListLeadsInput, error) {
	limit, err := intParam(q, "limit")
	if err != nil {
		return service.ListLeadsInput{}, err
	}
	return service.ListLeadsInput{
		Query:      q.Get("q"),
		Statuses:   multi(q, "status"),
		CampaignID: q.Get("campaignId"),
		Sort:       q.Get("sort"),
		Cursor:     q.Get("cursor"),
		Limit:      limit,
	}, nil
}

func campaignListInput(q url.Values) (service.ListCampaignsInput, error) {
	limit, err := intParam(q, "limit")
	if err != nil {
		return service.ListCampaignsInput{}, err
	}
	archived, err := boolParam(q, "includeArchived")
	if err != nil {
		return service.ListCampaignsInput{}, err
	}
	return service.ListCampaignsInput{
		Query:           q.Get("q"),
		Statuses:        multi(q, "status"),
		Sort:            q.Get("sort"),
		IncludeArchived: archived,
		Cursor:          q.Get("cursor"),
		Limit:           limit,
	}, nil
}
