package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	appErrors "github.com/unclebandit/outreach-backend/internal/errors"
	"github.com/unclebandit/outreach-backend/internal/model"
)

const (
	MaxImportRows  = 5000
	MaxImportBytes = 10 << 20
)

type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// importHeaders maps normalized header cells to lead fields.
var importHeaders = map[string]string{
	"full_name":  "full_name",
	"name":       "full_name",
	"first_name": "first_name",
	"firstname":  "first_name",
	"last_name":  "last_name",
	"lastname":   "last_name",
	"email":      "email",
	"company":    "company",
	"job_title":  "job_title",
	"title":      "job_title",
}

// ImportLeads reads a .csv or .xlsx sheet with a header row and inserts its
// rows into the campaign in one transaction. Rows without a usable name or
// with a malformed email are skipped.
func (s *LeadService) ImportLeads(ctx context.Context, ownerID, campaignID, filename string, r io.Reader) (*ImportResult, error) {
	if err := parseID("id", campaignID); err != nil {
		return nil, err
	}
	if _, err := s.CampaignRepo.GetByID(ctx, ownerID, campaignID); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxImportBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxImportBytes {
		return nil, appErrors.NewValidationError("file", "must be at most 10 MiB")
	}

	rows, err := readSheet(filename, data)
	if err != nil {
		return nil, err
	}

	leads, skipped, err := parseLeadRows(rows)
	if err != nil {
		return nil, err
	}

	imported, err := s.LeadRepo.BulkInsert(ctx, campaignID, leads)
	if err != nil {
		return nil, err
	}
	return &ImportResult{Imported: imported, Skipped: skipped}, nil
}

func readSheet(filename string, data []byte) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		cr := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
		cr.FieldsPerRecord = -1
		cr.TrimLeadingSpace = true
		rows, err := cr.ReadAll()
		if err != nil {
			return nil, appErrors.NewValidationError("file", "is not a valid CSV file")
		}
		return rows, nil
	case ".xlsx":
		f, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, appErrors.NewValidationError("file", "is not a valid XLSX file")
		}
		defer f.Close()
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, appErrors.NewValidationError("file", "has no sheets")
		}
		rows, err := f.GetRows(sheets[0])
		if err != nil {
			return nil, err
		}
		return rows, nil
	}
	return nil, appErrors.NewValidationError("file", "must be a .csv or .xlsx file")
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(h)
}

func parseLeadRows(rows [][]string) ([]model.NewLead, int, error) {
	if len(rows) == 0 {
		return nil, 0, appErrors.NewValidationError("file", "is empty")
	}

	columns := map[string]int{}
	for i, cell := range rows[0] {
		if field, ok := importHeaders[normalizeHeader(cell)]; ok {
			if _, dup := columns[field]; !dup {
				columns[field] = i
			}
		}
	}
	_, hasFull := columns["full_name"]
	_, hasFirst := columns["first_name"]
	_, hasLast := columns["last_name"]
	if !hasFull && !hasFirst && !hasLast {
		return nil, 0, appErrors.NewValidationError("file", "header must include full_name or first_name/last_name")
	}

	cell := func(row []string, field string) string {
		i, ok := columns[field]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var leads []model.NewLead
	skipped := 0
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		l := model.NewLead{
			FullName:  cell(row, "full_name"),
			FirstName: cell(row, "first_name"),
			LastName:  cell(row, "last_name"),
			Email:     cell(row, "email"),
			Company:   cell(row, "company"),
			JobTitle:  cell(row, "job_title"),
		}
		if l.FullName == "" {
			l.FullName = strings.TrimSpace(l.FirstName + " " + l.LastName)
		}
		if l.FullName == "" || len(l.FullName) > 255 {
			skipped++
			continue
		}
		if l.Email != "" && validate.Var(l.Email, "email") != nil {
			skipped++
			continue
		}
		leads = append(leads, l)
		if len(leads) > MaxImportRows {
			return nil, 0, appErrors.NewValidationError("file", "must contain at most 5000 rows")
		}
	}
	return leads, skipped, nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
