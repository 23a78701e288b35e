// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds every runtime setting.
type Config struct {
	PredictURL       string
	PredictTimeoutMs int
	ReplyDelayMs     int
	KnowledgeDB      string // empty = built-in knowledge base
	StrictSteps      bool
	LogFile          string
	LogLevel         string
	LogCalls         bool
	StubAddr         string

	// envErrs records environment values LoadConfig could not parse.
	envErrs []error
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		PredictURL:       "http://localhost:8000",
		PredictTimeoutMs: 10000,
		ReplyDelayMs:     500,
		StrictSteps:      true,
		LogFile:          defaultLogFile(),
		LogLevel:         "info",
		LogCalls:         true,
		StubAddr:         ":8000",
	}
}

func defaultLogFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "dilsehat.log")
	}
	return filepath.Join(home, ".dilsehat", "dilsehat.log")
}

// LoadConfig reads configuration from environment variables, falling back to
// defaults for unset values. Values that fail to parse keep the default and
// are reported by Validate.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("DILSEHAT_PREDICT_URL"); v != "" {
		cfg.PredictURL = v
	}
	cfg.envInt("DILSEHAT_PREDICT_TIMEOUT_MS", &cfg.PredictTimeoutMs)
	cfg.envInt("DILSEHAT_REPLY_DELAY_MS", &cfg.ReplyDelayMs)
	if v := os.Getenv("DILSEHAT_KB_DB"); v != "" {
		cfg.KnowledgeDB = v
	}
	cfg.envBool("DILSEHAT_STRICT_STEPS", &cfg.StrictSteps)
	if v := os.Getenv("DILSEHAT_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("DILSEHAT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	cfg.envBool("DILSEHAT_LOG_CALLS", &cfg.LogCalls)
	if v := os.Getenv("DILSEHAT_STUB_ADDR"); v != "" {
		cfg.StubAddr = v
	}
	return cfg
}

func (c *Config) envInt(key string, dst *int) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		c.envErrs = append(c.envErrs, fmt.Errorf("%s: %q is not a whole number", key, v))
		return
	}
	*dst = n
}

func (c *Config) envBool(key string, dst *bool) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		c.envErrs = append(c.envErrs, fmt.Errorf("%s: %q is not a boolean", key, v))
		return
	}
	*dst = b
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	errs := append([]error(nil), c.envErrs...)
	if strings.TrimSpace(c.PredictURL) == "" {
		errs = append(errs, errors.New("prediction service URL is required"))
	}
	if c.PredictTimeoutMs <= 0 {
		errs = append(errs, fmt.Errorf("prediction timeout must be positive, got %dms", c.PredictTimeoutMs))
	}
	if c.ReplyDelayMs < 0 {
		errs = append(errs, fmt.Errorf("reply delay must not be negative, got %dms", c.ReplyDelayMs))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c Config) PredictTimeout() time.Duration {
	return time.Duration(c.PredictTimeoutMs) * time.Millisecond
}

func (c Config) ReplyDelay() time.Duration {
	return time.Duration(c.ReplyDelayMs) * time.Millisecond
}

// ParseLevel maps a level name onto slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
