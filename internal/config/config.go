package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ryoh827/photometa/internal/pipeline"
)

// Config holds raw setting values. Flags may overwrite them before
// Validate is called.
type Config struct {
	LogLevel        string
	LogFormat       string
	OnError         string
	IncludeFilename string
}

// Load reads .env when present, then the PHOTOMETA_* environment.
// Values are not checked until Validate.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		LogLevel:        strings.ToLower(getEnv("PHOTOMETA_LOG_LEVEL", "warn")),
		LogFormat:       strings.ToLower(getEnv("PHOTOMETA_LOG_FORMAT", "pretty")),
		OnError:         strings.ToLower(getEnv("PHOTOMETA_ON_ERROR", "stop")),
		IncludeFilename: getEnv("PHOTOMETA_INCLUDE_FILENAME", "true"),
	}
}

func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}

	switch c.LogFormat {
	case "pretty", "json":
	default:
		return fmt.Errorf("PHOTOMETA_LOG_FORMAT must be pretty or json, got %q", c.LogFormat)
	}

	if _, err := pipeline.ParsePolicy(c.OnError); err != nil {
		return fmt.Errorf("PHOTOMETA_ON_ERROR: %w", err)
	}

	if _, err := strconv.ParseBool(c.IncludeFilename); err != nil {
		return fmt.Errorf("PHOTOMETA_INCLUDE_FILENAME must be a boolean, got %q", c.IncludeFilename)
	}

	return nil
}

// Level returns the configured slog level.
func (c *Config) Level() slog.Level {
	level, _ := ParseLevel(c.LogLevel)
	return level
}

// Policy returns the configured failure policy.
func (c *Config) Policy() pipeline.FailurePolicy {
	policy, _ := pipeline.ParsePolicy(c.OnError)
	return policy
}

// Filename reports whether sidecars start with the image file name.
func (c *Config) Filename() bool {
	include, err := strconv.ParseBool(c.IncludeFilename)
	if err != nil {
		return true
	}
	return include
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelWarn, fmt.Errorf("PHOTOMETA_LOG_LEVEL: %w", err)
	}
	return level, nil
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	return v
}
