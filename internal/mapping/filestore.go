package mapping

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/lavishq/docpilot/internal/common"
)

// FileStore persists the entire mapping table as one JSON document and
// rewrites it wholesale on every qualifying update. Last writer wins; this
// is single-user state.
type FileStore struct {
	mu       sync.Mutex
	path     string
	mappings Mappings
}

// NewFileStore loads the mapping file at path. A missing or malformed file
// loads as an empty table; persistence problems surface on Record, not here.
func NewFileStore(path string) (*FileStore, error) {
	trimmed := filepath.Clean(path)
	if trimmed == "" || trimmed == "." {
		return nil, fmt.Errorf("mapping file path required")
	}
	store := &FileStore{path: trimmed, mappings: make(Mappings)}
	data, err := os.ReadFile(trimmed)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			common.Logger().Warn("mapping: read failed, starting empty", "path", trimmed, "error", err)
		}
		return store, nil
	}
	var loaded Mappings
	if err := json.Unmarshal(data, &loaded); err != nil {
		common.Logger().Warn("mapping: malformed state ignored", "path", trimmed, "error", err)
		return store, nil
	}
	for id, paths := range loaded {
		store.mappings[id] = Union(nil, paths)
	}
	return store, nil
}

func (f *FileStore) Load(ctx context.Context) (Mappings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(Mappings, len(f.mappings))
	for id, paths := range f.mappings {
		out[id] = append([]string(nil), paths...)
	}
	return out, nil
}

func (f *FileStore) Fields(ctx context.Context, templateID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.mappings[templateID]...), nil
}

// Record unions paths into the template's set and synchronously rewrites
// the full file. An empty path set does not touch persisted state.
func (f *FileStore) Record(ctx context.Context, templateID string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mappings[templateID] = Union(f.mappings[templateID], paths)
	data, err := json.MarshalIndent(f.mappings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode mappings: %w", err)
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create mapping dir: %w", err)
		}
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("write mappings: %w", err)
	}
	return nil
}
