// Package pagination holds the keyset cursor codec and page-size rules shared
// by every listing endpoint.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
)

// Cursor marks a page boundary: the listing resumes strictly after the row
// identified by (Timestamp, ID). Sort and Key are only set for listings whose
// primary ordering is not the timestamp itself.
type Cursor struct {
	Timestamp time.Time
	ID        string
	Sort      string
	Key       string
}

type cursorPayload struct {
	TS   string `json:"ts"`
	ID   string `json:"id"`
	Sort string `json:"s,omitempty"`
	Key  string `json:"k,omitempty"`
}

// Encode builds the token for a listing ordered by timestamp then id.
func Encode(ts time.Time, id string) string {
	return encode(cursorPayload{TS: formatTS(ts), ID: id})
}

// EncodeKeyed builds the token for a listing whose primary sort value is key.
func EncodeKeyed(ts time.Time, id, sort, key string) string {
	return encode(cursorPayload{TS: formatTS(ts), ID: id, Sort: sort, Key: key})
}

func encode(p cursorPayload) string {
	b, _ := json.Marshal(p)
	return base64.RawURLEncoding.EncodeToString(b)
}

func formatTS(ts time.Time) string {
	return ts.UTC().Format(time.RFC3339Nano)
}

// Decode returns nil for an empty or malformed token. Callers treat nil as
// "first page".
func Decode(token string) *Cursor {
	token = strings.TrimRight(strings.TrimSpace(token), "=")
	if token == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}

	ts, ok := fields["ts"].(string)
	if !ok {
		return nil
	}
	id, ok := fields["id"].(string)
	if !ok {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return nil
	}

	c := &Cursor{Timestamp: t, ID: id}
	if v, present := fields["s"]; present {
		if c.Sort, ok = v.(string); !ok {
			return nil
		}
	}
	if v, present := fields["k"]; present {
		if c.Key, ok = v.(string); !ok {
			return nil
		}
	}
	return c
}

// For returns the cursor when it was produced by a listing with the given
// sort, nil otherwise. timeSort is the sort whose cursors carry no sort name.
func (c *Cursor) For(sort, timeSort string) *Cursor {
	if c == nil {
		return nil
	}
	want := sort
	if sort == timeSort {
		want = ""
	}
	if c.Sort != want {
		return nil
	}
	if want != "" && c.Key == "" {
		return nil
	}
	return c
}
