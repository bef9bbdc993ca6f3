package repository

import (
	"context"
	"database/sql"
	"time"

	"sweather/internal/models"
	sqlitedb "sweather/internal/repository/db"
)

// InitDB opens the SQLite file and ensures the schema exists.
func InitDB(path string) (*sql.DB, error) {
	return sqlitedb.InitDB(path)
}

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

// PrefsRepo is the durable key-value store behind user preferences.
type PrefsRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// EventRepo is the append-only activity log with filtered reads.
type EventRepo interface {
	Append(ctx context.Context, e models.WeatherEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.WeatherEvent, error)
}

type Repository struct {
	Prefs  PrefsRepo
	Events EventRepo
	Auth   Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Prefs:  NewPrefsSQLite(db),
		Events: NewEventSQLite(db),
		Auth:   NewUserRepository(db),
	}
}
