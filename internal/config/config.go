// internal/config/config.go
//
// Runtime configuration for every wormle command.
//
// Resolution order (later wins):
//  1. DefaultConfig()
//  2. optional YAML file passed with --config
//  3. environment variables (main loads .env through godotenv first)
//
// The merged result is checked with validator struct tags before use.

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all wormle settings.
type Config struct {
	Port      string `yaml:"port" validate:"required,numeric"`
	LogLevel  string `yaml:"log_level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	LogPretty bool   `yaml:"log_pretty"`

	WordLength int    `yaml:"word_length" validate:"min=2,max=15"`
	WordsFile  string `yaml:"words_file"`
	WordsDB    string `yaml:"words_db"`
	Shuffle    bool   `yaml:"shuffle"`

	JWTSecret  string `yaml:"jwt_secret" validate:"required,min=8"`
	TokenTTL   string `yaml:"token_ttl" validate:"required"`
	SessionTTL string `yaml:"session_ttl" validate:"required"`

	RateLimitRPS   float64 `yaml:"rate_limit_rps" validate:"gt=0"`
	RateLimitBurst int     `yaml:"rate_limit_burst" validate:"min=1"`

	ClientOrigin string `yaml:"client_origin" validate:"required"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Port:           "5175",
		LogLevel:       "info",
		WordLength:     5,
		JWTSecret:      "dev_secret_change_me",
		TokenTTL:       "24h",
		SessionTTL:     "2h",
		RateLimitRPS:   5,
		RateLimitBurst: 20,
		ClientOrigin:   "http://localhost:5173",
	}
}

// Load builds the configuration. An empty path skips the YAML step; a missing
// file is an error because it was asked for explicitly.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides copies set environment variables over the current values.
func (c *Config) applyEnvOverrides() error {
	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	setString("PORT", &c.Port)
	setString("LOG_LEVEL", &c.LogLevel)
	setString("WORDS_FILE", &c.WordsFile)
	setString("WORDS_DB", &c.WordsDB)
	setString("JWT_SECRET", &c.JWTSecret)
	setString("TOKEN_TTL", &c.TokenTTL)
	setString("SESSION_TTL", &c.SessionTTL)
	setString("CLIENT_ORIGIN", &c.ClientOrigin)

	var errs []error
	if v := os.Getenv("LOG_PRETTY"); v != "" {
		b, err := strconv.ParseBool(v)
		errs = append(errs, envErr("LOG_PRETTY", err))
		c.LogPretty = b
	}
	if v := os.Getenv("SHUFFLE"); v != "" {
		b, err := strconv.ParseBool(v)
		errs = append(errs, envErr("SHUFFLE", err))
		c.Shuffle = b
	}
	if v := os.Getenv("WORD_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		errs = append(errs, envErr("WORD_LENGTH", err))
		c.WordLength = n
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		errs = append(errs, envErr("RATE_LIMIT_RPS", err))
		c.RateLimitRPS = f
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		errs = append(errs, envErr("RATE_LIMIT_BURST", err))
		c.RateLimitBurst = n
	}
	return errors.Join(errs...)
}

func envErr(key string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("env %s: %w", key, err)
}

// Validate checks struct tags and that the durations parse.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	for key, v := range map[string]string{"token_ttl": c.TokenTTL, "session_ttl": c.SessionTTL} {
		if d, err := time.ParseDuration(v); err != nil || d <= 0 {
			return fmt.Errorf("invalid config: %s must be a positive duration, got %q", key, v)
		}
	}
	return nil
}

// GetTokenTTL returns how long issued session tokens stay valid.
func (c *Config) GetTokenTTL() time.Duration {
	d, err := time.ParseDuration(c.TokenTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// GetSessionTTL returns how long an idle session is kept.
func (c *Config) GetSessionTTL() time.Duration {
	d, err := time.ParseDuration(c.SessionTTL)
	if err != nil {
		return 2 * time.Hour
	}
	return d
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string { return ":" + c.Port }
