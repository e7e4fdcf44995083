// Package memory provides the rolling context memory used by the
// stateful reasoning strategies. The default implementation is an
// in-process capped buffer; a Redis-backed implementation exists for
// sharing context across processes.
package memory

import (
	"context"
	"sync"

	"github.com/tagus/supplysense/pkg/interfaces"
)

// DefaultMaxEntries is the retention cap applied when none is given.
const DefaultMaxEntries = 10

// ContextBuffer is an in-process capped context memory. Safe for
// concurrent use.
type ContextBuffer struct {
	mu      sync.Mutex
	max     int
	entries []interfaces.ContextEntry
}

// NewContextBuffer creates a buffer retaining at most max entries.
// Non-positive max falls back to DefaultMaxEntries.
func NewContextBuffer(max int) *ContextBuffer {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	return &ContextBuffer{max: max}
}

// Append implements interfaces.ContextMemory. The oldest entries are
// dropped once the cap is reached.
func (b *ContextBuffer) Append(_ context.Context, entry interfaces.ContextEntry) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = append(b.entries, entry)
	if len(b.entries) > b.max {
		b.entries = b.entries[len(b.entries)-b.max:]
	}
	return nil
}

// Recent implements interfaces.ContextMemory, returning up to n entries
// with the most recent last.
func (b *ContextBuffer) Recent(_ context.Context, n int) ([]interfaces.ContextEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n <= 0 || len(b.entries) == 0 {
		return nil, nil
	}
	if n > len(b.entries) {
		n = len(b.entries)
	}

	out := make([]interfaces.ContextEntry, n)
	copy(out, b.entries[len(b.entries)-n:])
	return out, nil
}
