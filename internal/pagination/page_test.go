package pagination

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampLimit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 20, ClampLimit(0, 20, 100))
	assert.Equal(t, 20, ClampLimit(-3, 20, 100))
	assert.Equal(t, 7, ClampLimit(7, 20, 100))
	assert.Equal(t, 100, ClampLimit(100, 20, 100))
	assert.Equal(t, 100, ClampLimit(5000, 20, 100))
	assert.Equal(t, DefaultLimit, ClampLimit(0, 0, 0))
	assert.Equal(t, 10, ClampLimit(0, 50, 10))
}

func TestBuild(t *testing.T) {
	t.Parallel()

	cursorOf := func(n int) string { return fmt.Sprint(n) }

	p := Build([]int{1, 2, 3, 4}, 3, cursorOf)
	assert.Equal(t, []int{1, 2, 3}, p.Items)
	// Boundary comes from the last kept row, not the probe row.
	assert.Equal(t, "3", p.NextCursor)

	p = Build([]int{1, 2, 3}, 3, cursorOf)
	assert.Equal(t, []int{1, 2, 3}, p.Items)
	assert.Empty(t, p.NextCursor)

	p = Build[int](nil, 3, cursorOf)
	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
	assert.Empty(t, p.NextCursor)
}
