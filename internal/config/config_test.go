package config_test

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finman/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, filepath.Join("data", "accounts.csv"), cfg.DataPath(cfg.Data.AccountsFile))
	assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
	assert.Len(t, cfg.Server.AllowedOrigins, 2)
}

func TestLoad_Overrides(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("DATA_DIR", dir)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	assert.Equal(t, filepath.Join(dir, "loans.csv"), cfg.DataPath(cfg.Data.LoansFile))
	assert.Equal(t, "/abs/loans.csv", cfg.DataPath("/abs/loans.csv"))
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("APP_PORT", "not-a-port")

	_, err := config.Load()
	assert.Error(t, err)
}
