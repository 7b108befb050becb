package config_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitplan/fitplan/internal/config"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "APP_PORT", "ENVIRONMENT", "LOG_LEVEL", "LOG_FORMAT", "JWT_SECRET", "CORS_ALLOWED_ORIGINS", "ADMIN_USER_IDS", "REQUIRE_TLS"} {
		t.Setenv(key, "")
	}

	cfg := config.FromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.JWTSecret)
	assert.Empty(t, cfg.CORSOrigins)
	assert.False(t, cfg.RequireTLS)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.fitplan.dev, ,https://admin.fitplan.dev")
	t.Setenv("ADMIN_USER_IDS", "usr_1")
	t.Setenv("REQUIRE_TLS", "true")

	cfg := config.FromEnv()

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://app.fitplan.dev", "https://admin.fitplan.dev"}, cfg.CORSOrigins)
	assert.Equal(t, []string{"usr_1"}, cfg.AdminUserIDs)
	assert.True(t, cfg.RequireTLS)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("FITPLAN_DOTENV_A=from-file\nFITPLAN_DOTENV_B=from-file\n"), 0o600))

	t.Setenv("FITPLAN_DOTENV_A", "from-env")
	t.Setenv("FITPLAN_DOTENV_B", "")
	require.NoError(t, os.Unsetenv("FITPLAN_DOTENV_B"))

	require.NoError(t, config.LoadDotEnv(path))

	assert.Equal(t, "from-env", os.Getenv("FITPLAN_DOTENV_A"))
	assert.Equal(t, "from-file", os.Getenv("FITPLAN_DOTENV_B"))
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	assert.NoError(t, config.LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := config.NewLogger(&buf, "fitplan-api", "1.2.3", "warn", "json")

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "fitplan-api", entry["service"])
	assert.Equal(t, "1.2.3", entry["version"])
}

func TestNewLogger_UnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	log := config.NewLogger(&buf, "svc", "dev", "loud", "console")

	log.Debug().Msg("hidden")
	log.Info().Msg("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}
