package pagination

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page is the listing response envelope.
type Page[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"nextCursor,omitempty"`
}

// ClampLimit applies the default for missing or non-positive values and caps
// at max.
func ClampLimit(requested, def, max int) int {
	if def <= 0 {
		def = DefaultLimit
	}
	if max <= 0 {
		max = MaxLimit
	}
	if def > max {
		def = max
	}
	if requested <= 0 {
		return def
	}
	if requested > max {
		return max
	}
	return requested
}

// Trim takes rows fetched with limit+1 and returns the page plus whether a
// further page exists.
func Trim[T any](rows []T, limit int) ([]T, bool) {
	if len(rows) > limit {
		return rows[:limit], true
	}
	return rows, false
}

// Build trims rows and derives the next cursor from the last kept row.
func Build[T any](rows []T, limit int, cursorOf func(T) string) Page[T] {
	items, more := Trim(rows, limit)
	if items == nil {
		items = []T{}
	}
	p := Page[T]{Items: items}
	if more && len(items) > 0 {
		p.NextCursor = cursorOf(items[len(items)-1])
	}
	return p
}
