package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	appErrors "github.com/unclebandit/outreach-backend/internal/errors"
)

const sessionKeyPrefix = "session:"

// sessionValue is what the identity provider stores under session:<token>.
type sessionValue struct {
	UserID    string     `json:"userId"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// RedisSessionVerifier resolves a session cookie through the shared session
// store.
type RedisSessionVerifier struct {
	rdb    *redis.Client
	cookie string
	now    func() time.Time
}

func NewRedisSessionVerifier(rdb *redis.Client, cookie string) *RedisSessionVerifier {
	return &RedisSessionVerifier{rdb: rdb, cookie: cookie, now: time.Now}
}

func (v *RedisSessionVerifier) Verify(r *http.Request) (*Identity, error) {
	c, err := r.Cookie(v.cookie)
	if err != nil || c.Value == "" {
		return nil, nil
	}

	raw, err := v.rdb.Get(r.Context(), sessionKeyPrefix+c.Value).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: unknown session", appErrors.ErrUnauthorized)
	}
	if err != nil {
		return nil, fmt.Errorf("session lookup: %w", err)
	}

	var s sessionValue
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: malformed session", appErrors.ErrUnauthorized)
	}
	if !validUserID(s.UserID) {
		return nil, fmt.Errorf("%w: malformed session", appErrors.ErrUnauthorized)
	}
	if s.ExpiresAt != nil && !v.now().Before(*s.ExpiresAt) {
		return nil, fmt.Errorf("%w: session expired", appErrors.ErrUnauthorized)
	}
	return &Identity{UserID: s.UserID}, nil
}
