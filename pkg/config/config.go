package config

import (
	"os"
	"time"
)

type AppConfig struct {
	Port        string
	MetricsPort string

	// StorageBackend selects the collection storage collaborator:
	// badger, sqlite or memory.
	StorageBackend string
	DataPath       string
	DatabasePath   string
	MigrationsPath string

	OTLPEndpoint string

	CacheEnabled bool
	CacheTTL     time.Duration

	Environment string
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		Port:           "8080",
		MetricsPort:    "9091",
		StorageBackend: "badger",
		DataPath:       "data/todolist",
		DatabasePath:   "todolist.db",
		MigrationsPath: "db/migrations",
		OTLPEndpoint:   "localhost:4317",
		CacheEnabled:   true,
		CacheTTL:       3 * time.Second,
		Environment:    "development",
	}
}

// FromEnv layers environment overrides on top of the defaults.
func FromEnv() *AppConfig {
	config := GetDefaultConfig()

	if v := os.Getenv("PORT"); v != "" {
		config.Port = v
	}

	if v := os.Getenv("METRICS_PORT"); v != "" {
		config.MetricsPort = v
	}

	if v := os.Getenv("STORAGE_BACKEND"); v != "" {
		config.StorageBackend = v
	}

	if v := os.Getenv("DATA_PATH"); v != "" {
		config.DataPath = v
	}

	if v := os.Getenv("DATABASE_PATH"); v != "" {
		config.DatabasePath = v
	}

	if v := os.Getenv("MIGRATIONS_PATH"); v != "" {
		config.MigrationsPath = v
	}

	if v := os.Getenv("OTLP_ENDPOINT"); v != "" {
		config.OTLPEndpoint = v
	}

	if v := os.Getenv("CACHE_ENABLED"); v == "false" {
		config.CacheEnabled = false
	}

	if v := os.Getenv("GIN_MODE"); v == "release" {
		config.Environment = "production"
	}

	return config
}
