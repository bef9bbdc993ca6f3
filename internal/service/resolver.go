package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"sweather/internal/geo"
	"sweather/internal/logger"
	"sweather/internal/models"
)

const defaultGeoTimeout = 10 * time.Second

// ErrLocationUnavailable means every resolution strategy was exhausted
// without a permission denial being the cause.
var ErrLocationUnavailable = errors.New("location unavailable")

// Resolver turns user input or ambient signals into a provider query.
type Resolver interface {
	Resolve(ctx context.Context, explicit string) (string, error)
}

// IPLocator is the IP-based fallback (the provider's ip.json endpoint).
type IPLocator interface {
	LookupIP(ctx context.Context) (models.Location, error)
}

// ResolverService applies the resolution priority order: explicit
// search text, device geolocation, IP lookup. Each step fails fast or
// times out; nothing is retried automatically.
type ResolverService struct {
	locator geo.Geolocator
	ip      IPLocator
	timeout time.Duration
	log     *logger.Logger
}

func NewResolverService(locator geo.Geolocator, ip IPLocator, timeout time.Duration, log *logger.Logger) *ResolverService {
	if timeout <= 0 {
		timeout = defaultGeoTimeout
	}
	if locator == nil {
		locator = geo.Disabled{}
	}
	return &ResolverService{locator: locator, ip: ip, timeout: timeout, log: log}
}

var _ Resolver = (*ResolverService)(nil)

// Resolve returns the query string to send to the provider. An explicit
// query (trimmed, non-empty) wins over all automatic detection and is
// returned verbatim. Failures are typed: geo.ErrPermissionDenied when
// the device denied access and the IP fallback also failed, otherwise
// ErrLocationUnavailable.
func (s *ResolverService) Resolve(ctx context.Context, explicit string) (string, error) {
	if q := strings.TrimSpace(explicit); q != "" {
		return q, nil
	}

	gctx, cancel := context.WithTimeout(ctx, s.timeout)
	fix, geoErr := s.locator.CurrentPosition(gctx)
	cancel()
	if geoErr == nil {
		return formatCoords(fix.Lat, fix.Lon), nil
	}
	if s.log != nil {
		s.log.Infow("device_geolocation_failed", "err", geoErr)
	}

	loc, ipErr := s.ip.LookupIP(ctx)
	if ipErr == nil {
		return formatCoords(loc.Lat, loc.Lon), nil
	}
	if s.log != nil {
		s.log.Infow("ip_geolocation_failed", "err", ipErr)
	}

	if errors.Is(geoErr, geo.ErrPermissionDenied) {
		return "", fmt.Errorf("%w: ip fallback: %v", geo.ErrPermissionDenied, ipErr)
	}
	return "", fmt.Errorf("%w: geo: %v, ip: %v", ErrLocationUnavailable, geoErr, ipErr)
}

// formatCoords renders "lat,lon" with full float precision, the form
// the provider accepts as a query.
func formatCoords(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lon, 'f', -1, 64)
}
