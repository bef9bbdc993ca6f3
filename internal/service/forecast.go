package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"sweather/internal/geo"
	"sweather/internal/i18n"
	"sweather/internal/logger"
	"sweather/internal/models"
	"sweather/internal/repository"
	"sweather/internal/weatherapi"
)

// interactiveHorizonDays is the horizon of the interactive view.
const interactiveHorizonDays = 7

// Event types recorded in the activity log.
const (
	eventSearch         = "SEARCH"
	eventFetchOK        = "FETCH_OK"
	eventFetchError     = "FETCH_ERROR"
	eventLanguageChange = "LANGUAGE_CHANGE"
)

var (
	ErrNoForecast      = errors.New("no forecast loaded")
	ErrDayOutOfRange   = errors.New("day index out of range")
	ErrNotInSummary    = errors.New("day selection requires the summary view of a loaded forecast")
	ErrUnsupportedLang = errors.New("unsupported language code")
)

// ForecastService is the view-state controller. All mutations go
// through its mutex; network calls run outside the lock and are
// reconciled with a generation counter so only the most recent fetch
// may update visible state.
type ForecastService struct {
	resolver Resolver
	client   WeatherClient
	prefs    Preferences
	events   repository.EventRepo
	log      *logger.Logger

	horizon int
	now     func() time.Time

	mu       sync.Mutex
	gen      uint64
	state    models.ViewState
	snapshot *models.ForecastSnapshot
}

func NewForecastService(resolver Resolver, client WeatherClient, prefs Preferences, events repository.EventRepo, log *logger.Logger) *ForecastService {
	return &ForecastService{
		resolver: resolver,
		client:   client,
		prefs:    prefs,
		events:   events,
		log:      log,
		horizon:  interactiveHorizonDays,
		now:      time.Now,
		state:    models.ViewState{Phase: models.PhaseIdle, Mode: models.ModeSummary},
	}
}

var _ Forecast = (*ForecastService)(nil)

// Refresh resolves the location automatically (device fix, then IP)
// and fetches a fresh snapshot. Used on startup and for geolocation
// retries.
func (s *ForecastService) Refresh(ctx context.Context) models.ViewState {
	gen := s.beginFetch(false)
	lang := s.prefs.Get().Language

	query, err := s.resolver.Resolve(ctx, "")
	if err != nil {
		return s.completeWithError(ctx, gen, lang, err)
	}
	return s.complete(ctx, gen, lang, query)
}

// Search fetches a snapshot for an explicit query. Empty input is
// ignored and leaves the state untouched.
func (s *ForecastService) Search(ctx context.Context, query string) models.ViewState {
	query = strings.TrimSpace(query)
	if query == "" {
		st, _ := s.State()
		return st
	}

	gen := s.beginFetch(true)
	s.record(ctx, eventSearch, "search for "+query, nil)
	lang := s.prefs.Get().Language
	return s.complete(ctx, gen, lang, query)
}

// ChangeLanguage persists the preference and, when a snapshot is
// displayed, re-fetches it using the resolved location name so the
// provider re-localizes condition text. Without a snapshot only the
// preference changes.
func (s *ForecastService) ChangeLanguage(ctx context.Context, lang models.Language) (models.ViewState, error) {
	if !models.ValidLanguage(lang) {
		st, _ := s.State()
		return st, ErrUnsupportedLang
	}
	if err := s.prefs.SetLanguage(ctx, lang); err != nil {
		st, _ := s.State()
		return st, err
	}
	s.record(ctx, eventLanguageChange, "language changed to "+string(lang), nil)

	s.mu.Lock()
	if s.snapshot == nil {
		st := s.state
		s.mu.Unlock()
		return st, nil
	}
	name := s.snapshot.Location.Name
	s.mu.Unlock()

	gen := s.beginFetch(false)
	return s.complete(ctx, gen, lang, name), nil
}

// SelectDay enters the detail view for the given day. Valid only in
// the ready summary view; out-of-range indexes are rejected without
// mutating state.
func (s *ForecastService) SelectDay(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Phase != models.PhaseReady || s.snapshot == nil {
		return ErrNotInSummary
	}
	if index < 0 || index >= len(s.snapshot.Days) {
		return ErrDayOutOfRange
	}
	idx := index
	s.state.Mode = models.ModeDetail
	s.state.SelectedDay = &idx
	return nil
}

// NextDay advances the detail selection, clamped to the last day.
func (s *ForecastService) NextDay() { s.stepDay(1) }

// PrevDay moves the detail selection back, clamped to the first day.
func (s *ForecastService) PrevDay() { s.stepDay(-1) }

func (s *ForecastService) stepDay(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Mode != models.ModeDetail || s.state.SelectedDay == nil || s.snapshot == nil {
		return
	}
	idx := *s.state.SelectedDay + delta
	if idx < 0 {
		idx = 0
	}
	if max := len(s.snapshot.Days) - 1; idx > max {
		idx = max
	}
	s.state.SelectedDay = &idx
}

// BackToSummary leaves the detail view. The selection is retained; it
// is cleared on the next fetch regardless.
func (s *ForecastService) BackToSummary() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Mode = models.ModeSummary
}

// State returns the visible view state and the current snapshot (nil
// unless ready). The snapshot is immutable once published.
func (s *ForecastService) State() (models.ViewState, *models.ForecastSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.snapshot
}

// HoursForDay derives the hour sequence for a day. For the current
// calendar date (in local time) only hours at or after now remain, a
// rolling window recomputed on every call; other days return all 24
// hours. The result is a copy and never aliases the snapshot.
func (s *ForecastService) HoursForDay(index int) ([]models.HourForecast, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot == nil {
		return nil, ErrNoForecast
	}
	if index < 0 || index >= len(s.snapshot.Days) {
		return nil, ErrDayOutOfRange
	}

	day := s.snapshot.Days[index]
	now := s.now()

	if !sameCalendarDay(time.Unix(day.DateEpoch, 0).In(now.Location()), now) {
		out := make([]models.HourForecast, len(day.Hours))
		copy(out, day.Hours)
		return out, nil
	}

	cutoff := now.Unix()
	out := make([]models.HourForecast, 0, len(day.Hours))
	for _, h := range day.Hours {
		if h.TimeEpoch >= cutoff {
			out = append(out, h)
		}
	}
	return out, nil
}

// beginFetch starts a new fetch generation: prior data, selection and
// error are cleared and the view drops back to a loading summary.
func (s *ForecastService) beginFetch(searching bool) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.snapshot = nil
	s.state = models.ViewState{
		Phase:     models.PhaseLoading,
		Mode:      models.ModeSummary,
		Searching: searching,
	}
	return s.gen
}

// complete performs the provider call for generation gen and publishes
// the outcome unless a newer fetch has started in the meantime.
func (s *ForecastService) complete(ctx context.Context, gen uint64, lang models.Language, query string) models.ViewState {
	snap, err := s.client.FetchForecast(ctx, query, s.horizon, lang)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		// Superseded by a newer request; discard this response.
		return s.state
	}
	if err != nil {
		s.state = models.ViewState{
			Phase: models.PhaseError,
			Mode:  models.ModeSummary,
			Error: localizeError(lang, err),
		}
		s.record(ctx, eventFetchError, "fetch failed for "+query, map[string]any{"err": err.Error()})
		return s.state
	}

	if len(snap.Days) != s.horizon && s.log != nil {
		s.log.Warnw("forecast_horizon_mismatch", "requested", s.horizon, "got", len(snap.Days))
	}

	s.snapshot = &snap
	s.state = models.ViewState{Phase: models.PhaseReady, Mode: models.ModeSummary}
	s.record(ctx, eventFetchOK, "forecast loaded for "+snap.Location.Name, map[string]any{
		"days": len(snap.Days),
		"lang": string(lang),
	})
	return s.state
}

// completeWithError publishes a resolution failure for generation gen.
func (s *ForecastService) completeWithError(ctx context.Context, gen uint64, lang models.Language, err error) models.ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return s.state
	}
	s.state = models.ViewState{
		Phase: models.PhaseError,
		Mode:  models.ModeSummary,
		Error: localizeError(lang, err),
	}
	s.record(ctx, eventFetchError, "location resolution failed", map[string]any{"err": err.Error()})
	return s.state
}

// record appends to the activity log, best effort.
func (s *ForecastService) record(ctx context.Context, typ, desc string, meta map[string]any) {
	if s.events == nil {
		return
	}
	e := models.WeatherEvent{Type: typ, Description: desc}
	if meta != nil {
		e.Metadata = meta
	}
	if err := s.events.Append(ctx, e); err != nil && s.log != nil {
		s.log.Warnw("event_append_failed", "type", typ, "err", err)
	}
}

// localizeError maps a typed failure to the user-visible message for
// lang. The controller is the single place this mapping happens.
func localizeError(lang models.Language, err error) string {
	switch {
	case errors.Is(err, weatherapi.ErrLocationNotFound):
		return i18n.T(lang, i18n.KeyLocationNotFound)
	case errors.Is(err, geo.ErrPermissionDenied):
		return i18n.T(lang, i18n.KeyLocationDenied)
	case errors.Is(err, ErrLocationUnavailable):
		return i18n.T(lang, i18n.KeyFetchingLocation)
	default:
		return i18n.T(lang, i18n.KeyWeatherError)
	}
}

// sameCalendarDay reports whether a and b fall on the same calendar
// date in their respective locations (callers pass both in the same
// zone).
func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
