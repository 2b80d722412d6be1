package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yangwenmai/holidaymeme/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s, err := New(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func testKVs(t *testing.T) map[string]KV {
	return map[string]KV{
		"sqlite": newTestStore(t),
		"memory": NewMemoryStore(),
	}
}

func TestKV_GetPut(t *testing.T) {
	for name, kv := range testKVs(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, err := kv.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Get(missing) err = %v, want ErrNotFound", err)
			}
			if err := kv.Put(ctx, "k", "v1"); err != nil {
				t.Fatalf("Put: %v", err)
			}
			if err := kv.Put(ctx, "k", "v2"); err != nil {
				t.Fatalf("Put overwrite: %v", err)
			}
			got, err := kv.Get(ctx, "k")
			if err != nil || got != "v2" {
				t.Errorf("Get = %q, %v; want v2", got, err)
			}
			if _, err := kv.Get(ctx, "other"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get(other) err = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStore_MigrateIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	s, err := New(db)
	if err != nil {
		t.Fatalf("first New: %v", err)
	}
	if err := s.Put(context.Background(), "k", "v"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	s2, err := New(db)
	if err != nil {
		t.Fatalf("second New: %v", err)
	}
	if got, err := s2.Get(context.Background(), "k"); err != nil || got != "v" {
		t.Errorf("value lost across migrate: %q, %v", got, err)
	}

	var version int
	if err := db.QueryRow(`SELECT version FROM schema_version`).Scan(&version); err != nil {
		t.Fatalf("read version: %v", err)
	}
	if version != 1 {
		t.Errorf("schema version = %d, want 1", version)
	}
}

func TestContentSlot_RoundTripAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "slot.db")
	ctx := context.Background()
	card := model.NewDailyContent("2026-12-25",
		model.Holiday{Name: "Christmas Day", Description: "Time for some holiday coding magic", Reason: "festive"},
		model.TextArtifact("All I want for Christmas is a green CI pipeline.").FromTier("curated"),
		"run-42",
	)

	db, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	s, err := New(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := NewContentSlot(s).Save(ctx, card); err != nil {
		t.Fatalf("Save: %v", err)
	}
	db.Close()

	db, err = OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("reopen db: %v", err)
	}
	defer db.Close()
	s, err = New(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	got, err := NewContentSlot(s).Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(&card, got); diff != "" {
		t.Errorf("card mismatch (-want +got):\n%s", diff)
	}
}

func TestContentSlot_EmptyAndCorrupt(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	slot := NewContentSlot(kv)

	if got, err := slot.Load(ctx); err != nil || got != nil {
		t.Errorf("Load(empty) = %+v, %v; want nil, nil", got, err)
	}

	kv.Put(ctx, model.CacheKey, "{not json")
	if got, err := slot.Load(ctx); err != nil || got != nil {
		t.Errorf("Load(corrupt) = %+v, %v; want nil, nil", got, err)
	}

	kv.Put(ctx, model.CacheKey, `{"holiday":{"name":"x"}}`)
	if got, _ := slot.Load(ctx); got != nil {
		t.Errorf("Load(dateless) = %+v, want nil", got)
	}
}
