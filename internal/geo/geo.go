package geo

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Typed failures distinguished by the location resolver: a denied
// permission gets a different user-facing message than plain absence.
var (
	ErrPermissionDenied = errors.New("geo: permission denied")
	ErrUnavailable      = errors.New("geo: position unavailable")
)

// Fix is one geolocation reading.
type Fix struct {
	Lat float64
	Lon float64
	At  time.Time
}

// Geolocator produces the device's current position. Implementations
// must honor ctx cancellation; the resolver bounds each call with a
// timeout.
type Geolocator interface {
	CurrentPosition(ctx context.Context) (Fix, error)
}

// Disabled is a Geolocator for deployments without any position
// source; every call reports ErrUnavailable.
type Disabled struct{}

func (Disabled) CurrentPosition(ctx context.Context) (Fix, error) {
	return Fix{}, ErrUnavailable
}

// Static serves a fixed configured position (kiosk-style deployments).
type Static struct {
	Lat float64
	Lon float64
}

func (s Static) CurrentPosition(ctx context.Context) (Fix, error) {
	return Fix{Lat: s.Lat, Lon: s.Lon, At: time.Now()}, nil
}

// Cached wraps a Geolocator and serves a previous fix while it is
// younger than MaxAge, mirroring a browser's maximumAge option.
type Cached struct {
	Source Geolocator
	MaxAge time.Duration

	mu   sync.Mutex
	last Fix
	ok   bool
}

// NewCached wraps source with a max fix age.
func NewCached(source Geolocator, maxAge time.Duration) *Cached {
	return &Cached{Source: source, MaxAge: maxAge}
}

func (c *Cached) CurrentPosition(ctx context.Context) (Fix, error) {
	c.mu.Lock()
	if c.ok && time.Since(c.last.At) <= c.MaxAge {
		fix := c.last
		c.mu.Unlock()
		return fix, nil
	}
	c.mu.Unlock()

	fix, err := c.Source.CurrentPosition(ctx)
	if err != nil {
		return Fix{}, err
	}
	if fix.At.IsZero() {
		fix.At = time.Now()
	}

	c.mu.Lock()
	c.last = fix
	c.ok = true
	c.mu.Unlock()
	return fix, nil
}
