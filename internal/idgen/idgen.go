// Package idgen produces task identifiers.
package idgen

import (
	"encoding/binary"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Prefix starts every generated id.
const Prefix = "t_"

const (
	randomLen = 6
	timeLen   = 4
)

// Generator builds ids of the form "t_" + 6 random base36 characters +
// the last 4 base36 characters of the current Unix millisecond time.
//
// Ids are unique with high probability within one collection; they are not
// globally unique and carry no ordering guarantee.
type Generator struct {
	now func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New returns a Generator using the system clock unless overridden.
func New(opts ...Option) *Generator {
	g := &Generator{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a new non-empty id.
func (g *Generator) Generate() string {
	var b strings.Builder
	b.Grow(len(Prefix) + randomLen + timeLen)
	b.WriteString(Prefix)
	b.WriteString(randomPart())
	b.WriteString(lastN(strconv.FormatInt(g.now().UnixMilli(), 36), timeLen))
	return b.String()
}

var defaultGenerator = New()

// Generate returns a new id from the package default generator.
func Generate() string {
	return defaultGenerator.Generate()
}

// randomPart takes the low-order base36 digits of the UUID's last 8 bytes;
// the high bits there hold the variant marker.
func randomPart() string {
	u := uuid.New()
	n := binary.BigEndian.Uint64(u[8:])
	return lastN(strconv.FormatUint(n, 36), randomLen)
}

func lastN(s string, n int) string {
	if len(s) < n {
		return strings.Repeat("0", n-len(s)) + s
	}
	return s[len(s)-n:]
}
