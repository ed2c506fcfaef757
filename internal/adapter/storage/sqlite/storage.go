// Package sqlite persists the serialized collection as a single row in a
// key-value table.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/simukti/sqldb-logger/logadapter/zerologadapter"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"go.opentelemetry.io/otel"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"todolist/internal/core/domain"
	"todolist/internal/core/port"
)

const collectionKey = "todolist/todos"

type Storage struct {
	db *sql.DB
}

var _ port.CollectionStorage = (*Storage)(nil)

// Open runs migrations against the database file, then reopens it with otel
// instrumentation and a zerolog-backed query logger, the same way the app
// opens any sqlite database.
func Open(dbPath, migrationsPath string) (*Storage, error) {
	if dbPath == "" {
		dbPath = "todolist.db"
	}

	migrationDB, err := sql.Open("sqlite3", dbPath)

	if err != nil {
		return nil, fmt.Errorf("sqlite storage: open %s: %w", dbPath, err)
	}

	if err := RunMigrations(migrationDB, migrationsPath); err != nil {
		migrationDB.Close()
		return nil, err
	}

	migrationDB.Close()

	sqlDB, err := otelsql.Open("sqlite3", dbPath,
		otelsql.WithDBSystem("sqlite"),
		otelsql.WithDBName("todolist"),
		otelsql.WithTracerProvider(otel.GetTracerProvider()),
	)

	if err != nil {
		return nil, fmt.Errorf("sqlite storage: open instrumented %s: %w", dbPath, err)
	}

	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	db := sqldblogger.OpenDriver(dbPath, sqlDB.Driver(), zerologadapter.New(logger))

	return &Storage{db: db}, nil
}

func RunMigrations(db *sql.DB, migrationsPath string) error {
	if migrationsPath == "" {
		migrationsPath = "db/migrations"
	}

	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})

	if err != nil {
		return fmt.Errorf("sqlite storage: migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "sqlite3", driver)

	if err != nil {
		return fmt.Errorf("sqlite storage: migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("sqlite storage: run migrations: %w", err)
	}

	return nil
}

// NewWithDB wraps an already-migrated database handle. Used by tests.
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) Load(ctx context.Context) ([]domain.Todo, bool, error) {
	var raw []byte

	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv_store WHERE key = ?", collectionKey).Scan(&raw)

	if err == sql.ErrNoRows {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("sqlite storage: load: %w", err)
	}

	var todos []domain.Todo

	if err := json.Unmarshal(raw, &todos); err != nil {
		return nil, false, fmt.Errorf("sqlite storage: decode collection: %w", err)
	}

	return todos, true, nil
}

func (s *Storage) Save(ctx context.Context, todos []domain.Todo) error {
	if todos == nil {
		todos = []domain.Todo{}
	}

	raw, err := json.Marshal(todos)

	if err != nil {
		return fmt.Errorf("sqlite storage: encode collection: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, collectionKey, raw, time.Now().UTC())

	if err != nil {
		return fmt.Errorf("sqlite storage: save: %w", err)
	}

	return nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}
