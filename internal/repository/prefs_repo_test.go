package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"sweather/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

func newPrefsMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *repository.PrefsSQLite) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock, repository.NewPrefsSQLite(db)
}

func TestPrefsSQLite_Get_ReturnsStoredValue(t *testing.T) {
	_, mock, repo := newPrefsMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM preferences")).
		WithArgs("theme").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("dark"))

	got, err := repo.Get(context.Background(), "theme")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "dark" {
		t.Fatalf("Get() = %q, want %q", got, "dark")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPrefsSQLite_Get_MissingKeyIsEmptyNotError(t *testing.T) {
	_, mock, repo := newPrefsMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM preferences")).
		WithArgs("language").
		WillReturnError(sql.ErrNoRows)

	got, err := repo.Get(context.Background(), "language")
	if err != nil {
		t.Fatalf("Get() on missing key error = %v", err)
	}
	if got != "" {
		t.Fatalf("Get() on missing key = %q, want empty", got)
	}
}

func TestPrefsSQLite_Get_PropagatesStorageError(t *testing.T) {
	_, mock, repo := newPrefsMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM preferences")).
		WithArgs("theme").
		WillReturnError(errors.New("disk I/O error"))

	if _, err := repo.Get(context.Background(), "theme"); err == nil {
		t.Fatalf("expected error from storage failure")
	}
}

func TestPrefsSQLite_Set_UpsertsValue(t *testing.T) {
	_, mock, repo := newPrefsMock(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO preferences (key, value)")).
		WithArgs("language", "ar").
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Set(context.Background(), "language", "ar"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
