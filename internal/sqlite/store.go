// Package sqlite stores learned field mappings in a local SQLite catalog.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/lavishq/docpilot/internal/mapping"
)

// Store wraps a pooled sqlx.DB connection to the SQLite catalog. It
// implements mapping.Store.
type Store struct {
	db *sqlx.DB
}

// Open constructs a Store backed by the SQLite database at the provided path.
// The schema is migrated automatically on first use.
func Open(path string) (*Store, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		cfg.Path = trimmed
	}
	return OpenWithConfig(cfg)
}

// OpenWithConfig constructs a Store using the provided configuration.
func OpenWithConfig(cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("sqlite path required")
	}
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve sqlite path: %w", err)
	}
	busy := int(cfg.BusyTimeout / time.Millisecond)
	if busy <= 0 {
		busy = 5000
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)", abs, busy)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	pingTimeout := cfg.BusyTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the underlying database resources.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errors.New("sqlite store not initialised")
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	for i, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("execute schema statement %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}

var schemaStatements = []string{
	`PRAGMA journal_mode = WAL;`,
	`CREATE TABLE IF NOT EXISTS learned_fields (
                id INTEGER PRIMARY KEY AUTOINCREMENT,
                template_id TEXT NOT NULL,
                field_path TEXT NOT NULL,
                created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
                UNIQUE(template_id, field_path)
        );`,
	`CREATE INDEX IF NOT EXISTS idx_learned_fields_template ON learned_fields(template_id);`,
}

// Load returns the full learned mapping table.
func (s *Store) Load(ctx context.Context) (mapping.Mappings, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlite store not initialised")
	}
	rows := []struct {
		TemplateID string `db:"template_id"`
		FieldPath  string `db:"field_path"`
	}{}
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT template_id, field_path FROM learned_fields ORDER BY template_id, field_path`); err != nil {
		return nil, fmt.Errorf("select learned fields: %w", err)
	}
	mappings := make(mapping.Mappings)
	for _, row := range rows {
		mappings[row.TemplateID] = append(mappings[row.TemplateID], row.FieldPath)
	}
	return mappings, nil
}

// Fields returns the learned field paths for one template, sorted.
func (s *Store) Fields(ctx context.Context, templateID string) ([]string, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlite store not initialised")
	}
	fields := []string{}
	if err := s.db.SelectContext(ctx, &fields,
		`SELECT field_path FROM learned_fields WHERE template_id = ? ORDER BY field_path`, templateID); err != nil {
		return nil, fmt.Errorf("select learned fields: %w", err)
	}
	return fields, nil
}

// Record unions paths into the template's learned set. The uniqueness
// constraint gives deduplication; sets only grow.
func (s *Store) Record(ctx context.Context, templateID string, paths []string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlite store not initialised")
	}
	if len(paths) == 0 {
		return nil
	}
	templateID = strings.TrimSpace(templateID)
	if templateID == "" {
		return fmt.Errorf("template id required")
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record: %w", err)
	}
	for _, path := range paths {
		trimmed := strings.TrimSpace(path)
		if trimmed == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO learned_fields (template_id, field_path) VALUES (?, ?)`,
			templateID, trimmed); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert learned field %s: %w", trimmed, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit record: %w", err)
	}
	return nil
}

var _ mapping.Store = (*Store)(nil)
