package reference

import (
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	suffixChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	suffixLen   = 4
)

// Generator produces human-readable booking references of the form
// UGS-12345678-A1B2: a fixed prefix, the trailing eight digits of the
// creation time in milliseconds, and a random alphanumeric suffix.
// A reference is only a low-collision candidate; storage enforces uniqueness
// and the caller regenerates on conflict.
type Generator struct {
	prefix string
	now    func() time.Time

	// rand.Rand is not safe for concurrent use; one Generator is shared
	// across request handlers.
	mu   sync.Mutex
	rand *rand.Rand
}

// NewGenerator builds a Generator around an explicit time source and entropy
// source so tests can pin both.
func NewGenerator(prefix string, now func() time.Time, src rand.Source) *Generator {
	return &Generator{prefix: prefix, now: now, rand: rand.New(src)}
}

// Generate returns a new reference candidate.
func (g *Generator) Generate() string {
	ms := strconv.FormatInt(g.now().UnixMilli(), 10)
	if len(ms) > 8 {
		ms = ms[len(ms)-8:]
	}

	var suffix [suffixLen]byte
	g.mu.Lock()
	for i := range suffix {
		suffix[i] = suffixChars[g.rand.Intn(len(suffixChars))]
	}
	g.mu.Unlock()

	var b strings.Builder
	b.Grow(len(g.prefix) + 1 + len(ms) + 1 + suffixLen)
	b.WriteString(g.prefix)
	b.WriteByte('-')
	b.WriteString(ms)
	b.WriteByte('-')
	b.Write(suffix[:])
	return b.String()
}
