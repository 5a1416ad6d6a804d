// Package auth resolves the caller's identity from a request. The identity
// provider that issues tokens and sessions lives outside this service.
package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	appErrors "github.com/unclebandit/outreach-backend/internal/errors"
)

// Identity is the verified caller.
type Identity struct {
	UserID string `json:"userId"`
}

// Verifier returns (nil, nil) when the request carries no credential it
// understands, and appErrors.ErrUnauthorized when the credential is invalid.
type Verifier interface {
	Verify(r *http.Request) (*Identity, error)
}

// Chain tries each verifier in order and returns the first identity found.
type Chain []Verifier

func (c Chain) Verify(r *http.Request) (*Identity, error) {
	var firstErr error
	for _, v := range c {
		id, err := v.Verify(r)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if id != nil {
			return id, nil
		}
	}
	return nil, firstErr
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(*Identity)
	return id, ok && id != nil
}

// UserID returns the caller's id or ErrUnauthorized when the request was not
// authenticated.
func UserID(ctx context.Context) (string, error) {
	id, ok := FromContext(ctx)
	if !ok {
		return "", appErrors.ErrUnauthorized
	}
	return id.UserID, nil
}

// IsUnauthorized reports whether err means the credential was rejected, as
// opposed to the verifier failing.
func IsUnauthorized(err error) bool {
	return errors.Is(err, appErrors.ErrUnauthorized)
}

// validUserID accepts only the canonical 36-character UUID form; uuid.Parse
// alone also takes urn:uuid: and braced ids, which storage rejects.
func validUserID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil && len(s) == 36
}
