package session_test

import (
	"sync"
	"testing"
	"time"

	"dinner-scheduler/internal/session"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestStore_Lifecycle(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)}
	store := session.NewStore(24*time.Hour, 100, session.WithClock(clock.Now))

	token, err := store.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if len(token) < 40 {
		t.Errorf("token looks too short: %q", token)
	}

	t.Run("valid shortly after issue", func(t *testing.T) {
		clock.Advance(time.Second)
		if !store.Validate(token) {
			t.Errorf("expected token to be valid at T+1s")
		}
	})

	t.Run("validation does not slide expiry", func(t *testing.T) {
		clock.Advance(23 * time.Hour)
		if !store.Validate(token) {
			t.Fatalf("expected token to still be valid before TTL")
		}
		clock.Advance(time.Hour)
		if store.Validate(token) {
			t.Errorf("expected token to be invalid after TTL")
		}
	})

	t.Run("expired token is removed", func(t *testing.T) {
		if store.Len() != 0 {
			t.Errorf("expected expired token to be dropped, len=%d", store.Len())
		}
	})
}

func TestStore_Revoke(t *testing.T) {
	store := session.NewStore(time.Hour, 10)

	token, err := store.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	other, _ := store.Issue()

	store.Revoke(token)
	if store.Validate(token) {
		t.Errorf("revoked token must be invalid")
	}
	if !store.Validate(other) {
		t.Errorf("revoking one token must not affect another")
	}

	// Revoke after removal is a no-op.
	store.Revoke(token)
	store.Revoke("never-issued")
}

func TestStore_CapacityEvictsOldest(t *testing.T) {
	store := session.NewStore(time.Hour, 2)

	first, _ := store.Issue()
	second, _ := store.Issue()
	// Validating must not protect first from eviction.
	if !store.Validate(first) {
		t.Fatalf("expected first token to be valid")
	}
	third, _ := store.Issue()

	if store.Validate(first) {
		t.Errorf("expected the oldest token to be evicted past capacity")
	}
	if !store.Validate(second) || !store.Validate(third) {
		t.Errorf("expected the newer tokens to remain valid")
	}
	if store.Len() != 2 {
		t.Errorf("expected len=2, got %d", store.Len())
	}
}

func TestStore_TimerExpiry(t *testing.T) {
	store := session.NewStore(50*time.Millisecond, 10)

	token, err := store.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	store.Revoke(token)

	// Background expiry of an already revoked token must not panic.
	time.Sleep(120 * time.Millisecond)

	token2, _ := store.Issue()
	time.Sleep(120 * time.Millisecond)
	if store.Validate(token2) {
		t.Errorf("expected token to expire on its own")
	}
}

func TestStore_UniqueTokens(t *testing.T) {
	store := session.NewStore(0, 0)
	if store.TTL() != session.DefaultTTL {
		t.Errorf("expected default TTL, got %v", store.TTL())
	}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := store.Issue()
		if err != nil {
			t.Fatalf("Issue: %v", err)
		}
		if seen[tok] {
			t.Fatalf("duplicate token %q", tok)
		}
		seen[tok] = true
	}

	if store.Validate("") {
		t.Errorf("empty token must be invalid")
	}
}
