package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetAll(t *testing.T) {
	t.Helper()
	for _, key := range []string{"STGY_LOG_LEVEL", "STGY_JSON_LOG", "STGY_COMPRESSION_LEVEL", "STGY_SEED_CHAR"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetAll(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.False(t, cfg.JSONLog)
	assert.Equal(t, 6, cfg.CompressionLevel)
	assert.Equal(t, "a", cfg.SeedChar)

	opts := cfg.Options(nil)
	assert.Equal(t, byte('a'), opts.Seed)
	assert.Equal(t, 6, opts.CompressionLevel)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STGY_LOG_LEVEL", "DEBUG")
	t.Setenv("STGY_JSON_LOG", "true")
	t.Setenv("STGY_COMPRESSION_LEVEL", "9")
	t.Setenv("STGY_SEED_CHAR", "Q")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Level())
	assert.True(t, cfg.JSONLog)
	assert.Equal(t, 9, cfg.Options(nil).CompressionLevel)
	assert.Equal(t, byte('Q'), cfg.Options(nil).Seed)
}

func TestLoadInvalid(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{"level", "STGY_LOG_LEVEL", "loud"},
		{"compression range", "STGY_COMPRESSION_LEVEL", "12"},
		{"compression type", "STGY_COMPRESSION_LEVEL", "max"},
		{"seed", "STGY_SEED_CHAR", "ab"},
		{"json", "STGY_JSON_LOG", "maybe"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			unsetAll(t)
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
