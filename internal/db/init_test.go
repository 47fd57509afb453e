package db_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/atinyakov/passgen/internal/db"
)

func TestInitPostgres_ErrorPaths(t *testing.T) {
	cases := []struct {
		name       string
		dsn        string
		wantSubstr string
	}{
		{"invalid DSN", "some=random", "ping postgres"},
		{"empty DSN", "", "ping postgres"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := db.InitPostgres(tc.dsn)
			if err == nil {
				t.Fatalf("InitPostgres(%q) did not return error", tc.dsn)
			}
			if !strings.Contains(err.Error(), tc.wantSubstr) {
				t.Errorf("InitPostgres(%q) error = %q; want substring %q", tc.dsn, err.Error(), tc.wantSubstr)
			}
		})
	}
}

func TestMigrate(t *testing.T) {
	dbMock, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	defer dbMock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS fingerprints").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := db.Migrate(dbMock); err != nil {
		t.Fatalf("Migrate returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestMigrate_Error(t *testing.T) {
	dbMock, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	defer dbMock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS fingerprints").
		WillReturnError(errors.New("permission denied"))

	err = db.Migrate(dbMock)
	if err == nil || !strings.Contains(err.Error(), "create schema") {
		t.Fatalf("Migrate error = %v; want create schema failure", err)
	}
}

func TestPrepare_ClosesOnPingFailure(t *testing.T) {
	dbMock, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectClose()

	err = db.Prepare(dbMock)
	if err == nil || !strings.Contains(err.Error(), "ping postgres") {
		t.Fatalf("Prepare error = %v; want ping failure", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("database not closed: %v", err)
	}
}

func TestPrepare_ClosesOnMigrateFailure(t *testing.T) {
	dbMock, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}

	mock.ExpectPing()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS fingerprints").
		WillReturnError(errors.New("permission denied"))
	mock.ExpectClose()

	err = db.Prepare(dbMock)
	if err == nil || !strings.Contains(err.Error(), "create schema") {
		t.Fatalf("Prepare error = %v; want create schema failure", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("database not closed: %v", err)
	}
}

func TestPrepare(t *testing.T) {
	dbMock, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	defer dbMock.Close()

	mock.ExpectPing()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS fingerprints").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := db.Prepare(dbMock); err != nil {
		t.Fatalf("Prepare returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
