package service

import (
	"context"
	"errors"
	"sync"

	"sweather/internal/logger"
	"sweather/internal/models"
	"sweather/internal/repository"
)

// Preference store keys.
const (
	prefKeyTheme    = "theme"
	prefKeyLanguage = "language"
)

var (
	ErrInvalidTheme    = errors.New("invalid theme: must be light or dark")
	ErrInvalidLanguage = errors.New("invalid language: must be en, ar or fr")
)

// PreferencesService keeps the current preferences in memory and
// writes changes through to the store. If the store is unreachable it
// degrades to in-memory defaults and keeps working.
type PreferencesService struct {
	repo repository.PrefsRepo
	log  *logger.Logger

	mu      sync.RWMutex
	cur     models.Preferences
	durable bool
	subs    []func(models.Preferences)
}

func NewPreferencesService(repo repository.PrefsRepo, log *logger.Logger) *PreferencesService {
	return &PreferencesService{
		repo:    repo,
		log:     log,
		cur:     models.DefaultPreferences(),
		durable: repo != nil,
	}
}

var _ Preferences = (*PreferencesService)(nil)

// Load reads the persisted preferences once at startup. A failing
// store is non-fatal: defaults stay active and later writes skip
// persistence.
func (s *PreferencesService) Load(ctx context.Context) {
	if s.repo == nil {
		return
	}

	theme, terr := s.repo.Get(ctx, prefKeyTheme)
	lang, lerr := s.repo.Get(ctx, prefKeyLanguage)
	if terr != nil || lerr != nil {
		s.mu.Lock()
		s.durable = false
		s.mu.Unlock()
		if s.log != nil {
			s.log.Warnw("preference_store_unavailable", "theme_err", terr, "language_err", lerr)
		}
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if t := models.Theme(theme); models.ValidTheme(t) {
		s.cur.Theme = t
	}
	if l := models.Language(lang); models.ValidLanguage(l) {
		s.cur.Language = l
	}
}

// Get returns the current preferences.
func (s *PreferencesService) Get() models.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// SetTheme updates the theme, persisting when the store is healthy.
func (s *PreferencesService) SetTheme(ctx context.Context, t models.Theme) error {
	if !models.ValidTheme(t) {
		return ErrInvalidTheme
	}
	return s.update(ctx, prefKeyTheme, string(t), func(p *models.Preferences) { p.Theme = t })
}

// SetLanguage updates the language, persisting when the store is healthy.
func (s *PreferencesService) SetLanguage(ctx context.Context, l models.Language) error {
	if !models.ValidLanguage(l) {
		return ErrInvalidLanguage
	}
	return s.update(ctx, prefKeyLanguage, string(l), func(p *models.Preferences) { p.Language = l })
}

// Subscribe registers a callback invoked after every change.
func (s *PreferencesService) Subscribe(fn func(models.Preferences)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *PreferencesService) update(ctx context.Context, key, value string, apply func(*models.Preferences)) error {
	s.mu.Lock()
	apply(&s.cur)
	cur := s.cur
	durable := s.durable
	subs := make([]func(models.Preferences), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	if durable {
		if err := s.repo.Set(ctx, key, value); err != nil {
			// Persistence failure degrades to memory-only, non-fatal.
			if s.log != nil {
				s.log.Warnw("preference_write_failed", "key", key, "err", err)
			}
		}
	}

	for _, fn := range subs {
		fn(cur)
	}
	return nil
}
