package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix is prepended (with an underscore) to every environment variable
// the application reads, e.g. STUDYDECK_SERVER_PORT.
const envPrefix = "STUDYDECK"

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables take
// precedence over file values. Returns a populated Config or an error if
// loading or validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// A missing config file is fine; env vars and defaults cover everything.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.static_dir", "static")

	// Registered with empty defaults so AutomaticEnv picks them up during
	// Unmarshal; validation rejects the empty database URL.
	v.SetDefault("database.url", "")
	v.SetDefault("llm.openai_api_key", "")

	v.SetDefault("storage.upload_dir", "uploads")
	v.SetDefault("storage.extracted_dir", "uploads/extracted")

	v.SetDefault("llm.lmstudio_url", "http://127.0.0.1:1234/v1")
	v.SetDefault("llm.openai_model", "gpt-4.1-nano")
	v.SetDefault("llm.timeout_seconds", 60)

	v.SetDefault("generation.mode", "two_step")
	v.SetDefault("generation.cards_per_chunk", 3)
	v.SetDefault("generation.max_concepts", 6)
	v.SetDefault("generation.confidence_threshold", 0.6)
}
