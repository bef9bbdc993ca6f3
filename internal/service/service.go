package service

import (
	"context"
	"time"

	"sweather/internal/geo"
	"sweather/internal/logger"
	"sweather/internal/models"
	"sweather/internal/repository"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Forecast owns the fetch lifecycle and the summary/detail view state.
// It is the only stateful, order-sensitive service: a newer fetch
// always wins over an older in-flight one.
type Forecast interface {
	Refresh(ctx context.Context) models.ViewState
	Search(ctx context.Context, query string) models.ViewState
	ChangeLanguage(ctx context.Context, lang models.Language) (models.ViewState, error)
	SelectDay(index int) error
	NextDay()
	PrevDay()
	BackToSummary()
	State() (models.ViewState, *models.ForecastSnapshot)
	HoursForDay(index int) ([]models.HourForecast, error)
}

// Preferences holds theme and language: in-memory state with durable
// write-through, degrading to memory-only when the store is broken.
type Preferences interface {
	Load(ctx context.Context)
	Get() models.Preferences
	SetTheme(ctx context.Context, t models.Theme) error
	SetLanguage(ctx context.Context, l models.Language) error
	Subscribe(fn func(models.Preferences))
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.WeatherEvent, error)
}

// Digest sends the multi-day weather summary through the messaging
// gateway and reports the gateway message ID.
type Digest interface {
	Send(ctx context.Context) (DigestReport, error)
}

// WeatherClient is the remote forecast provider surface the services
// depend on (implemented by internal/weatherapi).
type WeatherClient interface {
	FetchForecast(ctx context.Context, query string, days int, lang models.Language) (models.ForecastSnapshot, error)
	LookupIP(ctx context.Context) (models.Location, error)
}

// Messenger is the outbound messaging gateway used by the digest.
type Messenger interface {
	Send(ctx context.Context, to, body string) (string, error)
}

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time
	To   time.Time
	Type string
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Forecast
	Preferences
	EventLog
	Digest
	Authorization
}

// Deps collects everything the service layer is wired with.
type Deps struct {
	Repos      *repository.Repository
	Weather    WeatherClient
	Locator    geo.Geolocator
	Messenger  Messenger
	GeoTimeout time.Duration
	SigningKey string
	Digest     DigestConfig
	Log        *logger.Logger
}

// NewService wires the repository layer and external clients into
// concrete services.
func NewService(d Deps) *Service {
	prefs := NewPreferencesService(d.Repos.Prefs, d.Log)
	resolver := NewResolverService(d.Locator, d.Weather, d.GeoTimeout, d.Log)
	return &Service{
		Forecast:      NewForecastService(resolver, d.Weather, prefs, d.Repos.Events, d.Log),
		Preferences:   prefs,
		EventLog:      NewEventLogService(d.Repos.Events),
		Digest:        NewDigestService(d.Weather, d.Messenger, d.Repos.Events, d.Digest, d.Log),
		Authorization: NewAuthService(d.Repos.Auth, d.SigningKey),
	}
}
