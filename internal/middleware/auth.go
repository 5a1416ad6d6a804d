package middleware

import (
	"log"
	"net/http"

	"github.com/unclebandit/outreach-backend/internal/auth"
	appErrors "github.com/unclebandit/outreach-backend/internal/errors"
	"github.com/unclebandit/outreach-backend/internal/handler"
)

// RequireAuth rejects requests without a verified identity before they reach
// any handler, and stores the identity in the request context.
func RequireAuth(v auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := v.Verify(r)
			if err != nil && !auth.IsUnauthorized(err) {
				log.Printf("❌ session verification failed: %v", err)
				handler.WriteError(w, r, err)
				return
			}
			if id == nil {
				handler.WriteError(w, r, appErrors.ErrUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}
