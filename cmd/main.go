package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"sweather/internal/geo"
	"sweather/internal/handlers"
	"sweather/internal/logger"
	"sweather/internal/messaging"
	"sweather/internal/models"
	"sweather/internal/repository"
	"sweather/internal/server"
	"sweather/internal/service"
	"sweather/internal/weatherapi"

	"github.com/spf13/viper"
)

func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// open DB
	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(db)
	services := service.NewService(service.Deps{
		Repos:      repos,
		Weather:    newWeatherClient(log),
		Locator:    newGeolocator(),
		Messenger:  newMessenger(log),
		GeoTimeout: time.Duration(viper.GetInt("geo.timeout_seconds")) * time.Second,
		SigningKey: viper.GetString("auth.signing_key"),
		Digest:     digestConfig(),
		Log:        log,
	})
	apiHandler := handlers.NewHandler(services, log)

	// context for background work
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// restore persisted preferences, then warm up the first forecast
	services.Preferences.Load(ctx)
	go services.Forecast.Refresh(ctx)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	// Secrets (weather.api_key, twilio.auth_token, ...) may come from
	// the environment: WEATHER_API_KEY, TWILIO_AUTH_TOKEN, ...
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "app.db")
		dbPath = "app.db"
	}
	return repository.InitDB(dbPath)
}

// newWeatherClient builds the forecast provider client from config.
func newWeatherClient(log *logger.Logger) *weatherapi.Client {
	apiKey := viper.GetString("weather.api_key")
	if apiKey == "" {
		log.Warnw("weather.api_key is not set; provider requests will fail")
	}

	opts := []weatherapi.Option{}
	if base := viper.GetString("weather.base_url"); base != "" {
		opts = append(opts, weatherapi.WithBaseURL(base))
	}
	if secs := viper.GetInt("weather.timeout_seconds"); secs > 0 {
		opts = append(opts, weatherapi.WithTimeout(time.Duration(secs)*time.Second))
	}
	return weatherapi.New(apiKey, opts...)
}

// newGeolocator returns a fixed-coordinate locator when the deployment
// pins one in config, otherwise geolocation is disabled and the IP
// fallback takes over. Fixes are cached for geo.max_fix_age_seconds.
func newGeolocator() geo.Geolocator {
	if !viper.IsSet("geo.lat") || !viper.IsSet("geo.lon") {
		return geo.Disabled{}
	}
	var src geo.Geolocator = geo.Static{
		Lat: viper.GetFloat64("geo.lat"),
		Lon: viper.GetFloat64("geo.lon"),
	}
	if secs := viper.GetInt("geo.max_fix_age_seconds"); secs > 0 {
		src = geo.NewCached(src, time.Duration(secs)*time.Second)
	}
	return src
}

// newMessenger wires the WhatsApp gateway; without credentials the
// digest endpoint reports a configuration error instead of sending.
func newMessenger(log *logger.Logger) service.Messenger {
	m, err := messaging.NewTwilioWhatsApp(
		viper.GetString("twilio.account_sid"),
		viper.GetString("twilio.auth_token"),
		viper.GetString("digest.from"),
	)
	if err != nil {
		log.Warnw("whatsapp gateway disabled", "err", err)
		return messaging.Disabled{}
	}
	return m
}

func digestConfig() service.DigestConfig {
	cfg := service.DefaultDigestConfig()
	if city := viper.GetString("digest.city"); city != "" {
		cfg.City = city
	}
	if days := viper.GetInt("digest.days"); days > 0 {
		cfg.Days = days
	}
	if lang := viper.GetString("digest.language"); lang != "" {
		cfg.Language = models.Language(lang)
	}
	cfg.To = viper.GetString("digest.to")
	return cfg
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
