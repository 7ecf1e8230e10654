package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"golang.org/x/text/language"

	"clubxp/pkg/tz"
)

const envPrefix = "CLUBXP_"

// Load builds a Config by layering, from low to high precedence:
//  1. defaults (New)
//  2. YAML file named by CLUBXP_CONFIG
//  3. CLUBXP_* environment variables, including those from a local .env
func Load(_ context.Context) (*Config, error) {
	// .env is optional when variables come from the environment (Docker, CI).
	_ = godotenv.Load()

	k := koanf.New(".")
	if path := os.Getenv(envPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// CLUBXP_DATABASE_URL -> database_url
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func (c *Config) validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return invalid("log_level %q is not one of debug, info, warn, error", c.LogLevel)
	}

	if c.DatabaseURL != "" {
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return invalid("database_url %q: %v", c.DatabaseURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return invalid("database_url %q: missing scheme or host", c.DatabaseURL)
		}
	}

	if _, err := language.Parse(c.Locale); err != nil {
		return invalid("locale %q: %v", c.Locale, err)
	}
	if _, err := tz.Load(c.Timezone); err != nil {
		return invalid("timezone %q: %v", c.Timezone, err)
	}

	if (c.DiscordToken == "") != (c.DiscordChannelID == "") {
		return invalid("discord_token and discord_channel_id must be set together")
	}
	for _, r := range c.DiscordChannelID {
		if r < '0' || r > '9' {
			return invalid("discord_channel_id must be a Discord snowflake (digits only)")
		}
	}

	if c.StoragePublicBaseURL != "" {
		if u, err := url.Parse(c.StoragePublicBaseURL); err != nil || u.Scheme == "" {
			return invalid("storage_public_base_url %q is not an absolute URL", c.StoragePublicBaseURL)
		}
	}
	if c.UploadConcurrency < 1 {
		return invalid("upload_concurrency must be at least 1")
	}
	return nil
}
