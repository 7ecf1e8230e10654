// Package config loads process configuration from defaults, an optional YAML
// file and CLUBXP_ environment variables.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// MetricsAddr is where /metrics is served. Empty disables the listener.
	MetricsAddr string `koanf:"metrics_addr"`

	// DatabaseURL selects PostgreSQL. Empty runs on the in-memory store.
	DatabaseURL string `koanf:"database_url"`
	// MigrationsPath overrides the migrations compiled into the binary.
	MigrationsPath string `koanf:"migrations_path"`

	// Locale and Timezone shape notification texts.
	Locale   string `koanf:"locale"`
	Timezone string `koanf:"timezone"`

	// DiscordToken and DiscordChannelID enable Discord notifications. Both or neither.
	DiscordToken     string `koanf:"discord_token"`
	DiscordChannelID string `koanf:"discord_channel_id"`

	// Storage* configure the S3-compatible bucket for proof photos.
	// An empty bucket disables uploads.
	StorageEndpoint        string `koanf:"storage_endpoint"`
	StorageRegion          string `koanf:"storage_region"`
	StorageBucket          string `koanf:"storage_bucket"`
	StorageAccessKeyID     string `koanf:"storage_access_key_id"`
	StorageSecretAccessKey string `koanf:"storage_secret_access_key"`
	StoragePublicBaseURL   string `koanf:"storage_public_base_url"`
	StorageKeyPrefix       string `koanf:"storage_key_prefix"`

	// UploadConcurrency bounds parallel photo uploads per submission.
	UploadConcurrency int `koanf:"upload_concurrency"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		MetricsAddr:       ":9090",
		Locale:            "en",
		Timezone:          "Europe/Paris",
		StorageRegion:     "auto",
		StorageKeyPrefix:  "proofs",
		UploadConcurrency: 4,
	}
}

func (c *Config) DiscordEnabled() bool { return c.DiscordToken != "" }

func (c *Config) StorageEnabled() bool { return c.StorageBucket != "" }
