package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfig_DefaultsWithoutFile(t *testing.T) {
	cfg, err := ReadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, cfg.Instrumentation.TransactionStyle)
	assert.False(t, cfg.Instrumentation.SendDefaultPII)
}

func TestReadConfig_EnvOverride(t *testing.T) {
	t.Setenv("GHASEDAK_INSTRUMENTATION_TRANSACTION_STYLE", "url")

	cfg, err := ReadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "url", cfg.Instrumentation.TransactionStyle)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "zero value is valid", mutate: func(*Config) {}},
		{name: "endpoint style", mutate: func(c *Config) { c.Instrumentation.TransactionStyle = "endpoint" }},
		{name: "url style", mutate: func(c *Config) { c.Instrumentation.TransactionStyle = "url" }},
		{name: "invalid style", mutate: func(c *Config) { c.Instrumentation.TransactionStyle = "route" }, wantErr: true},
		{name: "negative body budget", mutate: func(c *Config) { c.Instrumentation.MaxRequestBodyBytes = -1 }, wantErr: true},
		{name: "sampling rate out of range", mutate: func(c *Config) { c.Observability.Tracing.SamplingRate = 1.5 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
