package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRedisStore(rdb, time.Second), mr
}

func TestRedisStoreSetGetDelete(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "v" {
		t.Fatalf("get = %q, want v", got)
	}

	exists, err := s.Exists(ctx, "k")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Fatal("exists = false for live key")
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after delete err = %v, want ErrNotFound", err)
	}

	// delete is idempotent
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestRedisStoreTTLExpiry(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after expiry err = %v, want ErrNotFound", err)
	}
	exists, err := s.Exists(ctx, "k")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Fatal("exists = true after expiry")
	}
}

func TestRedisStoreUnavailable(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()
	mr.Close()

	if err := s.Set(ctx, "k", "v", time.Minute); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("set err = %v, want ErrUnavailable", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("get err = %v, want ErrUnavailable", err)
	}
	if _, err := s.Exists(ctx, "k"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("exists err = %v, want ErrUnavailable", err)
	}
}

func TestSessionAndCodeKeyspacesDisjoint(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	sessions := NewSessionStore(s)
	codes := NewCodeStore(s)

	// Same identifier in both stores must not collide.
	id := "collide@example.com"
	if err := sessions.Save(ctx, id, "refresh-token", time.Minute); err != nil {
		t.Fatalf("session save: %v", err)
	}
	if err := codes.Save(ctx, id, "123456", time.Minute); err != nil {
		t.Fatalf("code save: %v", err)
	}

	code, err := codes.Get(ctx, id)
	if err != nil {
		t.Fatalf("code get: %v", err)
	}
	if code != "123456" {
		t.Fatalf("code = %q, want 123456", code)
	}

	token, err := sessions.Get(ctx, id)
	if err != nil {
		t.Fatalf("session get: %v", err)
	}
	if token != "refresh-token" {
		t.Fatalf("session marker = %q, want refresh-token", token)
	}

	// Consuming the code leaves the session untouched.
	if err := codes.Delete(ctx, id); err != nil {
		t.Fatalf("code delete: %v", err)
	}
	live, err := sessions.Exists(ctx, id)
	if err != nil {
		t.Fatalf("session exists: %v", err)
	}
	if !live {
		t.Fatal("session marker lost after code delete")
	}
}

func TestSessionSaveOverwrites(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	sessions := NewSessionStore(s)

	if err := sessions.Save(ctx, "user-1", "first", time.Minute); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := sessions.Save(ctx, "user-1", "second", time.Minute); err != nil {
		t.Fatalf("save: %v", err)
	}

	token, err := sessions.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if token != "second" {
		t.Fatalf("marker = %q, want second", token)
	}
}
