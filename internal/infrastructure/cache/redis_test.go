package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestOpenRedis_Success(t *testing.T) {
	// Start in-memory Redis
	s := miniredis.RunT(t)
	defer s.Close()

	// Use a non-zero DB to verify it's set
	c, err := OpenRedis(s.Addr(), 2)
	if err != nil {
		t.Fatalf("OpenRedis returned error: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	// Check the client actually works and uses the right DB
	if got := c.Options().DB; got != 2 {
		t.Fatalf("client DB = %d, want 2", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := c.Set(ctx, "k", "v", 0).Err(); err != nil {
		t.Fatalf("SET err: %v", err)
	}
	v, err := c.Get(ctx, "k").Result()
	if err != nil {
		t.Fatalf("GET err: %v", err)
	}
	if v != "v" {
		t.Fatalf("GET value = %q, want %q", v, "v")
	}
}

func TestOpenRedis_Failure(t *testing.T) {
	// Unresolvable host → Ping should fail immediately (no 5s delay)
	if _, err := OpenRedis("not-a-real-host:6379", 0); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestStore_JSONRoundTripAndDelete(t *testing.T) {
	s := miniredis.RunT(t)
	c, err := OpenRedis(s.Addr(), 0)
	if err != nil {
		t.Fatalf("OpenRedis: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	store := NewStore(c, "microloan:")
	ctx := context.Background()

	var got map[string]int
	ok, err := store.GetJSON(ctx, "stats:loans", &got)
	if err != nil || ok {
		t.Fatalf("miss: ok=%v err=%v", ok, err)
	}

	if err := store.SetJSON(ctx, "stats:loans", map[string]int{"total": 3}, time.Minute); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	if !s.Exists("microloan:stats:loans") {
		t.Fatal("key should carry the store prefix")
	}
	if ttl := s.TTL("microloan:stats:loans"); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("ttl = %v", ttl)
	}

	ok, err = store.GetJSON(ctx, "stats:loans", &got)
	if err != nil || !ok || got["total"] != 3 {
		t.Fatalf("hit: ok=%v err=%v got=%v", ok, err, got)
	}

	if err := store.Delete(ctx, "stats:loans", "stats:borrowers"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s.Exists("microloan:stats:loans") {
		t.Fatal("key should be gone")
	}
	if err := store.Delete(ctx); err != nil {
		t.Fatalf("Delete with no keys: %v", err)
	}
}

func TestStore_GetJSON_CorruptValue(t *testing.T) {
	s := miniredis.RunT(t)
	c, err := OpenRedis(s.Addr(), 0)
	if err != nil {
		t.Fatalf("OpenRedis: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	_ = s.Set("p:k", "{not json")
	var dst map[string]any
	if ok, err := NewStore(c, "p:").GetJSON(context.Background(), "k", &dst); err == nil || ok {
		t.Fatalf("want decode error, got ok=%v err=%v", ok, err)
	}
}
