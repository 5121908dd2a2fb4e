package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDs generates statement ids "stmt-0001", "stmt-0002", ... in
// place of random UUIDs, so logged output is reproducible.
//
// Thread-safety: Generate is safe for concurrent use.
type SequentialIDs struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequentialIDs creates a generator. An empty prefix means "stmt".
func NewSequentialIDs(prefix string) *SequentialIDs {
	if prefix == "" {
		prefix = "stmt"
	}
	return &SequentialIDs{prefix: prefix}
}

// Generate returns the next id.
func (g *SequentialIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%04d", g.prefix, g.n)
}
