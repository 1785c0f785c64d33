package config

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "recipebox")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "recipebox")
}

// unsetEnv removes key for the duration of the test. t.Setenv registers the
// restore; os.Unsetenv then actually clears the variable.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoadConfigDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 10, cfg.Database.MaxConns)
	assert.Equal(t, "./migrations", cfg.Database.MigrationsPath)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "en-gb", cfg.Locale.Locale)
	assert.Equal(t, "./locales", cfg.Locale.Dir)
}

func TestLoadConfigOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("PORT", "9000")
	t.Setenv("LOCALE", "es-es")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, 25, cfg.Database.MaxConns)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "es-es", cfg.Locale.Locale)
}

func TestLoadConfigCollectsAllErrors(t *testing.T) {
	for _, key := range []string{"DB_USER", "DB_PASSWORD", "DB_NAME"} {
		unsetEnv(t, key)
	}

	_, err := LoadConfig()
	require.Error(t, err)
	// Every missing variable should be named in the single returned error.
	for _, key := range []string{"DB_USER", "DB_PASSWORD", "DB_NAME"} {
		assert.Contains(t, err.Error(), key)
	}
}

func TestLoadConfigInvalidPort(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_PORT", "not-a-number")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "DB_PORT"))
}

func TestLoadConfigReportsOutOfRangePoolSize(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_MAX_CONNS", "1000")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_MAX_CONNS")
}
