package geo

import (
	"context"
	"errors"
	"testing"
	"time"
)

type countingLocator struct {
	fix   Fix
	err   error
	calls int
}

func (c *countingLocator) CurrentPosition(ctx context.Context) (Fix, error) {
	c.calls++
	return c.fix, c.err
}

func TestDisabled_AlwaysUnavailable(t *testing.T) {
	_, err := Disabled{}.CurrentPosition(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestStatic_ReturnsConfiguredPosition(t *testing.T) {
	fix, err := Static{Lat: 33.1, Lon: -5.3}.CurrentPosition(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fix.Lat != 33.1 || fix.Lon != -5.3 {
		t.Fatalf("unexpected fix: %+v", fix)
	}
}

func TestCached_ServesFreshFixWithoutRecall(t *testing.T) {
	src := &countingLocator{fix: Fix{Lat: 1, Lon: 2, At: time.Now()}}
	c := NewCached(src, time.Minute)

	for i := 0; i < 3; i++ {
		fix, err := c.CurrentPosition(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fix.Lat != 1 || fix.Lon != 2 {
			t.Fatalf("unexpected fix: %+v", fix)
		}
	}
	if src.calls != 1 {
		t.Fatalf("source called %d times, want 1 (cached fix within max age)", src.calls)
	}
}

func TestCached_ExpiredFixHitsSourceAgain(t *testing.T) {
	src := &countingLocator{fix: Fix{Lat: 1, Lon: 2, At: time.Now().Add(-2 * time.Minute)}}
	c := NewCached(src, time.Minute)

	// Seed the cache with an already stale fix timestamp.
	c.last = Fix{Lat: 9, Lon: 9, At: time.Now().Add(-2 * time.Minute)}
	c.ok = true

	if _, err := c.CurrentPosition(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.calls != 1 {
		t.Fatalf("source called %d times, want 1 (stale cache must refresh)", src.calls)
	}
}

func TestCached_SourceErrorPropagates(t *testing.T) {
	src := &countingLocator{err: ErrPermissionDenied}
	c := NewCached(src, time.Minute)
	_, err := c.CurrentPosition(context.Background())
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}
