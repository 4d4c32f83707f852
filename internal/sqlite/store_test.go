package sqlite

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "mappings.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndFields(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if err := store.Record(ctx, "t1", []string{"clientName", "total"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.Record(ctx, "t1", []string{"total", "lineItems.0.price"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	fields, err := store.Fields(ctx, "t1")
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	want := []string{"clientName", "lineItems.0.price", "total"}
	if !reflect.DeepEqual(fields, want) {
		t.Fatalf("fields = %v, want %v", fields, want)
	}
}

func TestRecordEmptyNoop(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if err := store.Record(ctx, "t1", nil); err != nil {
		t.Fatalf("record: %v", err)
	}
	mappings, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(mappings) != 0 {
		t.Fatalf("empty record should not persist anything, got %v", mappings)
	}
}

func TestLoadGroupsByTemplate(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if err := store.Record(ctx, "t1", []string{"clientName"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.Record(ctx, "t2", []string{"colorCode", "projectName"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	mappings, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := map[string][]string{
		"t1": {"clientName"},
		"t2": {"colorCode", "projectName"},
	}
	if !reflect.DeepEqual(map[string][]string(mappings), want) {
		t.Fatalf("load = %v, want %v", mappings, want)
	}
}
