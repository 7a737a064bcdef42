package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/hireflow-dev/hireflow/internal/entity"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStoreFromClient(client, "", 0)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRedisStoreSaveLoad(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	record := NewRecord("sess-1")
	record.Stage = StageExtracting
	record.Entities.Industry = entity.StringAttr{Value: "fintech", Confidence: 0.9, Source: entity.SourceLLM}
	record.Append("user", "hello")

	if err := store.Save(ctx, record); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Stage != StageExtracting {
		t.Errorf("stage = %q, want EXTRACTING", got.Stage)
	}
	if got.Entities.Industry.Value != "fintech" {
		t.Errorf("industry = %q, want fintech", got.Entities.Industry.Value)
	}
	if len(got.Messages) != 1 || got.Messages[0].Text != "hello" {
		t.Errorf("messages = %+v", got.Messages)
	}
}

func TestRedisStoreLoadMissing(t *testing.T) {
	store := newTestRedisStore(t)

	_, err := store.Load(context.Background(), "nope")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestRedisStoreDeleteAndList(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	for _, id := range []string{"b", "a", "c"} {
		if err := store.Save(ctx, NewRecord(id)); err != nil {
			t.Fatalf("Save %s: %v", id, err)
		}
	}

	ids, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ids) != 3 || ids[0] != "a" || ids[1] != "b" || ids[2] != "c" {
		t.Errorf("ids = %v, want sorted [a b c]", ids)
	}

	if err := store.Delete(ctx, "b"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Load(ctx, "b"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("deleted session still loads: %v", err)
	}
	// Deleting again is not an error.
	if err := store.Delete(ctx, "b"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestRedisStoreDeleteOlderThan(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	old := NewRecord("old")
	old.LastActiveAt = time.Now().UTC().Add(-2 * time.Hour)
	fresh := NewRecord("fresh")

	if err := store.Save(ctx, old); err != nil {
		t.Fatalf("Save old: %v", err)
	}
	if err := store.Save(ctx, fresh); err != nil {
		t.Fatalf("Save fresh: %v", err)
	}

	removed, err := store.DeleteOlderThan(ctx, time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatalf("DeleteOlderThan: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if _, err := store.Load(ctx, "old"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expired session still loads: %v", err)
	}
	if _, err := store.Load(ctx, "fresh"); err != nil {
		t.Errorf("fresh session removed: %v", err)
	}
}

func TestRedisStoreClosed(t *testing.T) {
	store := newTestRedisStore(t)
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if err := store.Save(context.Background(), NewRecord("x")); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("Save after close = %v, want ErrStoreClosed", err)
	}
	if _, err := store.Load(context.Background(), "x"); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("Load after close = %v, want ErrStoreClosed", err)
	}
}
