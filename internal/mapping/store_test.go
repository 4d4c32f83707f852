package mapping

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestRecordEmptyIsNoop(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	if err := store.Record(ctx, "t1", nil); err != nil {
		t.Fatalf("record: %v", err)
	}
	mappings, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(mappings) != 0 {
		t.Fatalf("empty record must not alter state, got %v", mappings)
	}
}

func TestRecordMonotoneUnion(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	if err := store.Record(ctx, "t1", []string{"a", "b"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.Record(ctx, "t1", []string{"b", "c"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	fields, err := store.Fields(ctx, "t1")
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	if !reflect.DeepEqual(fields, []string{"a", "b", "c"}) {
		t.Fatalf("fields = %v, want [a b c]", fields)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "mappings.json")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Record(ctx, "t1", []string{"clientName", "total"}); err != nil {
		t.Fatalf("record: %v", err)
	}

	reloaded, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	fields, err := reloaded.Fields(ctx, "t1")
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	if !reflect.DeepEqual(fields, []string{"clientName", "total"}) {
		t.Fatalf("fields = %v", fields)
	}
}

func TestFileStoreMalformedLoadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("malformed state must not fail load: %v", err)
	}
	mappings, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(mappings) != 0 {
		t.Fatalf("malformed state must load empty, got %v", mappings)
	}
}
