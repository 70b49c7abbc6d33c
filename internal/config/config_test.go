package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageSQLite, cfg.StorageDriver)
	assert.Equal(t, DefaultHistoryLimit, cfg.HistoryLimit)
	assert.Equal(t, "127.0.0.1:7420", cfg.Addr())
	assert.Equal(t, filepath.Join(cfg.DataDir, "contractpad.db"), cfg.SQLitePath)
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contractpad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
port = "9000"
history_limit = 20
environment = "prod"
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("DATA_DIR", dir)
	t.Setenv("HISTORY_LIMIT", "30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 30, cfg.HistoryLimit, "environment wins over file")
	assert.False(t, cfg.Debug, "prod disables debug by default")
}

func TestLoad_Errors(t *testing.T) {
	t.Run("bad driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "mongo")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("postgres without url", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", StoragePostgres)
		t.Setenv("DATABASE_URL", "")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("non-numeric limit", func(t *testing.T) {
		t.Setenv("HISTORY_LIMIT", "lots")
		_, err := Load()
		assert.Error(t, err)
	})
}
