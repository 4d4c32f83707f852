// Package mapping persists which fields a user has historically edited per
// template. The learned set drives which fields the extraction provider is
// asked to fill on later uses of the same template.
package mapping

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Mappings relates a template identifier to the deduplicated field paths a
// user has edited for it. Sets grow monotonically and never shrink
// automatically.
type Mappings map[string][]string

// Store is the learned-mapping persistence boundary. Implementations must
// treat Record with an empty path set as a no-op and must load malformed
// persisted state as empty rather than failing.
type Store interface {
	// Load returns the full mapping table.
	Load(ctx context.Context) (Mappings, error)
	// Fields returns the learned field paths for one template.
	Fields(ctx context.Context, templateID string) ([]string, error)
	// Record unions paths into the template's learned set and persists.
	Record(ctx context.Context, templateID string, paths []string) error
}

// Union merges new paths into existing, deduplicated and sorted. The result
// is a fresh slice.
func Union(existing, paths []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(paths))
	out := make([]string, 0, len(existing)+len(paths))
	for _, group := range [][]string{existing, paths} {
		for _, path := range group {
			trimmed := strings.TrimSpace(path)
			if trimmed == "" {
				continue
			}
			if _, ok := seen[trimmed]; ok {
				continue
			}
			seen[trimmed] = struct{}{}
			out = append(out, trimmed)
		}
	}
	sort.Strings(out)
	return out
}

// MemStore is an in-memory Store used by tests and as a fallback when no
// persistence is configured.
type MemStore struct {
	mu       sync.RWMutex
	mappings Mappings
}

func NewMemStore() *MemStore {
	return &MemStore{mappings: make(Mappings)}
}

func (m *MemStore) Load(ctx context.Context) (Mappings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(Mappings, len(m.mappings))
	for id, paths := range m.mappings {
		out[id] = append([]string(nil), paths...)
	}
	return out, nil
}

func (m *MemStore) Fields(ctx context.Context, templateID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.mappings[templateID]...), nil
}

func (m *MemStore) Record(ctx context.Context, templateID string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mappings[templateID] = Union(m.mappings[templateID], paths)
	return nil
}
