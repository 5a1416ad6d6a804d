package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	appErrors "github.com/unclebandit/outreach-backend/internal/errors"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("⚠️ failed to encode response:", err)
	}
}

// WriteError maps err onto the error taxonomy. Anything unrecognised is
// logged with the request and reported as a generic 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *appErrors.ValidationError
	var nf *appErrors.NotFoundError

	switch {
	case errors.As(err, &verr):
		WriteJSON(w, http.StatusBadRequest, errorBody{Error: "Validation failed", Fields: verr.Fields})
	case errors.Is(err, appErrors.ErrUnauthorized):
		WriteJSON(w, http.StatusUnauthorized, errorBody{Error: "Unauthorized"})
	case errors.As(err, &nf):
		WriteJSON(w, http.StatusNotFound, errorBody{Error: capitalize(nf.Entity) + " not found"})
	case errors.Is(err, appErrors.ErrNotFound):
		WriteJSON(w, http.StatusNotFound, errorBody{Error: "Not found"})
	default:
		log.Printf("❌ %s %s: %v", r.Method, r.URL.Path, err)
		WriteJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal server error"})
	}
}

// DecodeJSON reads a JSON body of at most 1 MiB into dst.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return appErrors.NewValidationError("body", "is required")
		}
		return appErrors.NewValidationError("body", "must be valid JSON")
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
