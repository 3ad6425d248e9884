package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	configName   = "ghasedak"
	configFormat = "yaml"
	envPrefix    = "GHASEDAK"
)

// ReadConfig loads configuration from an optional config file and the
// environment. The file is ghasedak.yaml under configPath; env vars use the
// GHASEDAK_ prefix, e.g. GHASEDAK_INSTRUMENTATION_TRANSACTION_STYLE
// overrides instrumentation.transaction_style.
func ReadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configFormat)
	if configPath != "" {
		v.AddConfigPath(configPath)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Registering defaults also makes the keys visible to AutomaticEnv.
	v.SetDefault("instrumentation.transaction_style", "")
	v.SetDefault("instrumentation.max_request_body_bytes", 0)
	v.SetDefault("instrumentation.send_default_pii", false)
	v.SetDefault("environment", "development")
	v.SetDefault("server.port", 8080)
	v.SetDefault("observability.tracing.enabled", false)
	v.SetDefault("observability.metrics.enabled", false)
	v.SetDefault("logging.level", "info")

	// The config file is optional; env vars and defaults are enough.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// MustReadConfig is ReadConfig that panics on error. Intended for
// application startup, before any request traffic.
func MustReadConfig(path string) *Config {
	config, err := ReadConfig(path)
	if err != nil {
		panic(err)
	}
	return config
}
