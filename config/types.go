package config

import "fmt"

type Config struct {
	Instrumentation InstrumentationConfig `mapstructure:"instrumentation"`
	Environment     string                `mapstructure:"environment"`
	Server          ServerConfig          `mapstructure:"server"`
	Observability   ObservabilityConfig   `mapstructure:"observability"`
	Logging         LoggingConfig         `mapstructure:"logging"`
}

// ServerConfig configures the demo HTTP server.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type InstrumentationConfig struct {
	// TransactionStyle is "endpoint" or "url". Empty defaults to "endpoint".
	TransactionStyle string `mapstructure:"transaction_style"`

	// MaxRequestBodyBytes is the request extraction size budget.
	MaxRequestBodyBytes int64 `mapstructure:"max_request_body_bytes"`

	// SendDefaultPII enables cookie collection on diagnostic events.
	SendDefaultPII bool `mapstructure:"send_default_pii"`
}

type ObservabilityConfig struct {
	ServiceName    string        `mapstructure:"service_name"`
	ServiceVersion string        `mapstructure:"service_version"`
	Tracing        TracingConfig `mapstructure:"tracing"`
	Metrics        MetricsConfig `mapstructure:"metrics"`
}

type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
	SamplingRate float64 `mapstructure:"sampling_rate"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type LoggingConfig struct {
	Level  string       `mapstructure:"level"`  // debug, info, warn, error
	Format string       `mapstructure:"format"` // text, json
	Output OutputConfig `mapstructure:"output"`
}

type OutputConfig struct {
	Stdout bool          `mapstructure:"stdout"`
	File   FileLogConfig `mapstructure:"file"`
	Loki   LokiConfig    `mapstructure:"loki"`
}

type FileLogConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`        // e.g. "logs/app.log"
	MaxSizeMB  int    `mapstructure:"max_size_mb"` // rotate after N MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type LokiConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"` // e.g. "http://localhost:3100"
	Username string `mapstructure:"username"` // for Grafana Cloud basic auth
	Password string `mapstructure:"password"`
}

// Validate fails fast on configuration errors so they never reach request
// handling.
func (c *Config) Validate() error {
	switch c.Instrumentation.TransactionStyle {
	case "", "endpoint", "url":
	default:
		return fmt.Errorf("instrumentation.transaction_style must be \"endpoint\" or \"url\", got %q",
			c.Instrumentation.TransactionStyle)
	}
	if c.Instrumentation.MaxRequestBodyBytes < 0 {
		return fmt.Errorf("instrumentation.max_request_body_bytes must not be negative")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be a valid port number, got %d", c.Server.Port)
	}
	if r := c.Observability.Tracing.SamplingRate; r < 0 || r > 1 {
		return fmt.Errorf("observability.tracing.sampling_rate must be between 0 and 1, got %v", r)
	}
	return nil
}
