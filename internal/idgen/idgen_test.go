package idgen

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var idPattern = regexp.MustCompile(`^t_[0-9a-z]{6}[0-9a-z]{4}$`)

func TestGenerateFormat(t *testing.T) {
	g := New()
	id := g.Generate()
	assert.NotEmpty(t, id)
	assert.Regexp(t, idPattern, id)
}

func TestGenerateTimeSuffix(t *testing.T) {
	// 1700000000000 ms is "loyw3v28" in base36.
	fixed := time.UnixMilli(1700000000000)
	g := New(WithClock(func() time.Time { return fixed }))

	id := g.Generate()
	require.Len(t, id, 12)
	assert.Equal(t, "3v28", id[8:])
}

func TestGenerateDistinctUnderFixedClock(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	g := New(WithClock(func() time.Time { return fixed }))

	seen := make(map[string]struct{}, 500)
	for i := 0; i < 500; i++ {
		id := g.Generate()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestPackageGenerate(t *testing.T) {
	assert.NotEqual(t, Generate(), Generate())
}

func TestLastN(t *testing.T) {
	assert.Equal(t, "0abc", lastN("abc", 4))
	assert.Equal(t, "cdef", lastN("abcdef", 4))
}
