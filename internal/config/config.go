package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Storage drivers
const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

type Config struct {
	Host          string `toml:"host"`
	Port          string `toml:"port"`
	Environment   string `toml:"environment"`
	DataDir       string `toml:"data_dir"`
	StorageDriver string `toml:"storage_driver"` // "sqlite" (desktop default) or "postgres"
	SQLitePath    string `toml:"sqlite_path"`
	DatabaseURL   string `toml:"database_url"` // Postgres only
	TablePrefix   string `toml:"table_prefix"`
	CORSOrigins   string `toml:"cors_origins"`
	// Editing
	HistoryLimit int    `toml:"history_limit"`
	RulesFile    string `toml:"rules_file"` // Optional override of the embedded suggestion rules
	// Logging
	LogDir      string `toml:"log_dir"` // Empty = stdout only
	LogMaxFiles int    `toml:"log_max_files"`
	// Debug flags
	Debug bool `toml:"debug"`
}

// Load builds the configuration. Precedence: environment, then the TOML
// file named by CONFIG_FILE, then defaults.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg.Host = getEnv("HOST", cfg.Host)
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.DataDir = getEnv("DATA_DIR", cfg.DataDir)
	cfg.StorageDriver = getEnv("STORAGE_DRIVER", cfg.StorageDriver)
	cfg.SQLitePath = getEnv("SQLITE_PATH", cfg.SQLitePath)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.TablePrefix = getEnv("TABLE_PREFIX", cfg.TablePrefix)
	cfg.CORSOrigins = getEnv("CORS_ORIGINS", cfg.CORSOrigins)
	cfg.RulesFile = getEnv("RULES_FILE", cfg.RulesFile)
	cfg.LogDir = getEnv("LOG_DIR", cfg.LogDir)

	var err error
	if cfg.HistoryLimit, err = getEnvInt("HISTORY_LIMIT", cfg.HistoryLimit); err != nil {
		return nil, err
	}
	if cfg.LogMaxFiles, err = getEnvInt("LOG_MAX_FILES", cfg.LogMaxFiles); err != nil {
		return nil, err
	}

	// Debug defaults to true outside prod unless set explicitly
	if v := os.Getenv("DEBUG"); v != "" {
		cfg.Debug = v == "true"
	} else if cfg.Environment == "prod" {
		cfg.Debug = false
	}

	if cfg.SQLitePath == "" {
		cfg.SQLitePath = filepath.Join(cfg.DataDir, "contractpad.db")
	}

	if cfg.StorageDriver != StorageSQLite && cfg.StorageDriver != StoragePostgres {
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q (expected %s or %s)", cfg.StorageDriver, StorageSQLite, StoragePostgres)
	}
	if cfg.StorageDriver == StoragePostgres && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when STORAGE_DRIVER=%s", StoragePostgres)
	}

	return cfg, nil
}

// Addr is the listen address for the local API.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func defaults() *Config {
	return &Config{
		Host:          "127.0.0.1",
		Port:          "7420",
		Environment:   "dev",
		DataDir:       defaultDataDir(),
		StorageDriver: StorageSQLite,
		CORSOrigins:   "http://localhost:5173,app://contractpad",
		HistoryLimit:  DefaultHistoryLimit,
		LogMaxFiles:   10,
		Debug:         true,
	}
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".contractpad"
	}
	return filepath.Join(dir, "contractpad")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
