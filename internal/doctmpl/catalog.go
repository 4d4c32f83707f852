package doctmpl

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/lavishq/docpilot/internal/common"
)

// Catalog is the static registry of document templates. It always carries
// the built-in set; a directory of template JSON files can be layered on
// top and hot-reloaded when files change.
type Catalog struct {
	mu        sync.RWMutex
	builtin   []Template
	extra     map[string]Template
	dir       string
	watcher   *fsnotify.Watcher
	closeOnce sync.Once
	done      chan struct{}
}

// NewCatalog returns a catalog seeded with the built-in templates.
func NewCatalog() *Catalog {
	return &Catalog{
		builtin: builtinTemplates(),
		extra:   make(map[string]Template),
		done:    make(chan struct{}),
	}
}

// LoadDir reads every *.json template in dir into the catalog and starts a
// watcher that reloads the directory on changes. Malformed files are logged
// and skipped.
func (c *Catalog) LoadDir(dir string) error {
	logger := common.Logger()
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return fmt.Errorf("template dir required")
	}
	c.mu.Lock()
	c.dir = trimmed
	c.mu.Unlock()
	if err := c.reloadDir(); err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create template watcher: %w", err)
	}
	if err := watcher.Add(trimmed); err != nil {
		watcher.Close()
		return fmt.Errorf("watch template dir: %w", err)
	}
	c.mu.Lock()
	c.watcher = watcher
	c.mu.Unlock()
	go func() {
		for {
			select {
			case <-c.done:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				if err := c.reloadDir(); err != nil {
					logger.Warn("doctmpl: reload failed", "error", err)
				} else {
					logger.Info("doctmpl: templates reloaded", "trigger", event.Name)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("doctmpl: watcher error", "error", err)
			}
		}
	}()
	logger.Info("doctmpl: watching template dir", "dir", trimmed)
	return nil
}

func (c *Catalog) reloadDir() error {
	c.mu.RLock()
	dir := c.dir
	c.mu.RUnlock()
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read template dir: %w", err)
	}
	logger := common.Logger()
	loaded := make(map[string]Template)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("doctmpl: read template failed", "path", path, "error", err)
			continue
		}
		var tmpl Template
		if err := json.Unmarshal(data, &tmpl); err != nil {
			logger.Warn("doctmpl: malformed template skipped", "path", path, "error", err)
			continue
		}
		if strings.TrimSpace(tmpl.ID) == "" || strings.TrimSpace(tmpl.Name) == "" {
			logger.Warn("doctmpl: template missing id or name", "path", path)
			continue
		}
		loaded[tmpl.ID] = tmpl
	}
	c.mu.Lock()
	c.extra = loaded
	c.mu.Unlock()
	return nil
}

// Templates returns all registered templates, built-ins first, directory
// templates sorted by ID after them.
func (c *Catalog) Templates() []Template {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Template, 0, len(c.builtin)+len(c.extra))
	out = append(out, c.builtin...)
	ids := make([]string, 0, len(c.extra))
	for id := range c.extra {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		out = append(out, c.extra[id])
	}
	return out
}

// Lookup resolves a template by identifier.
func (c *Catalog) Lookup(id string) (Template, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, tmpl := range c.builtin {
		if tmpl.ID == id {
			return tmpl, true
		}
	}
	tmpl, ok := c.extra[id]
	return tmpl, ok
}

// Close stops the directory watcher, if one is running.
func (c *Catalog) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		c.mu.Lock()
		watcher := c.watcher
		c.watcher = nil
		c.mu.Unlock()
		if watcher != nil {
			err = watcher.Close()
		}
	})
	return err
}
