package test

import (
	"context"
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"todolist/internal/adapter/storage/memory"
	"todolist/internal/adapter/storage/sqlite"
	"todolist/internal/core/store"
)

// findProjectRoot walks up from this file until it finds go.mod.
func findProjectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)

		if parent == dir {
			break
		}

		dir = parent
	}

	if wd, err := os.Getwd(); err == nil {
		return wd
	}

	log.Fatal("Could not find project root directory")

	return ""
}

// MigrationsPath points at the repo's migration files regardless of which
// package the test runs from.
func MigrationsPath() string {
	return filepath.Join(findProjectRoot(), "db", "migrations")
}

// InitTestDB opens a migrated in-memory sqlite database.
func InitTestDB() *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")

	if err != nil {
		log.Fatal(err)
	}

	if err := sqlite.RunMigrations(db, MigrationsPath()); err != nil {
		log.Fatal(err)
	}

	return db
}

// NewTestStore builds an opened store over fresh in-memory storage.
func NewTestStore() (*store.Store, *memory.Storage) {
	storage := memory.New()
	st := store.New(storage, nil)

	if err := st.Open(context.Background()); err != nil {
		log.Fatal(err)
	}

	return st, storage
}
