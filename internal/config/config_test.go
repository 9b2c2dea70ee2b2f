package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ryoh827/photometa/internal/pipeline"
)

var keys = []string{
	"PHOTOMETA_LOG_LEVEL",
	"PHOTOMETA_LOG_FORMAT",
	"PHOTOMETA_ON_ERROR",
	"PHOTOMETA_INCLUDE_FILENAME",
}

// clearEnv unsets every key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func load(t *testing.T) *Config {
	t.Helper()
	cfg := Load()
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg := load(t)
	require.Equal(t, "warn", cfg.LogLevel)
	require.Equal(t, slog.LevelWarn, cfg.Level())
	require.Equal(t, "pretty", cfg.LogFormat)
	require.Equal(t, pipeline.StopOnFailure, cfg.Policy())
	require.True(t, cfg.Filename())
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("PHOTOMETA_LOG_LEVEL", "DEBUG")
	t.Setenv("PHOTOMETA_LOG_FORMAT", "json")
	t.Setenv("PHOTOMETA_ON_ERROR", "continue")
	t.Setenv("PHOTOMETA_INCLUDE_FILENAME", "false")

	cfg := load(t)
	require.Equal(t, slog.LevelDebug, cfg.Level())
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, pipeline.ContinueOnFailure, cfg.Policy())
	require.False(t, cfg.Filename())
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PHOTOMETA_ON_ERROR=continue\nPHOTOMETA_INCLUDE_FILENAME=0\n"), 0o644))
	chdir(t, dir)

	cfg := load(t)
	require.Equal(t, pipeline.ContinueOnFailure, cfg.Policy())
	require.False(t, cfg.Filename())
}

func TestLoadDefersValidation(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("PHOTOMETA_ON_ERROR", "bogus")

	cfg := Load()
	require.Error(t, cfg.Validate())

	cfg.OnError = "continue"
	require.NoError(t, cfg.Validate())
	require.Equal(t, pipeline.ContinueOnFailure, cfg.Policy())
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{name: "level", cfg: Config{LogLevel: "loud", LogFormat: "pretty", OnError: "stop", IncludeFilename: "true"}},
		{name: "format", cfg: Config{LogLevel: "info", LogFormat: "xml", OnError: "stop", IncludeFilename: "true"}},
		{name: "policy", cfg: Config{LogLevel: "info", LogFormat: "json", OnError: "retry", IncludeFilename: "true"}},
		{name: "filename", cfg: Config{LogLevel: "info", LogFormat: "json", OnError: "stop", IncludeFilename: "yes"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Error(t, tc.cfg.Validate())
		})
	}

	valid := Config{LogLevel: "error", LogFormat: "json", OnError: "continue", IncludeFilename: "F"}
	require.NoError(t, valid.Validate())
	require.False(t, valid.Filename())
}
