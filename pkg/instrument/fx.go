package instrument

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/Alijeyrad/ghasedak/config"
	"github.com/Alijeyrad/ghasedak/pkg/event"
)

// Module provides the Integration for fx-based hosts. The host supplies
// the central config, a reporting client, and a logger.
var Module = fx.Module("instrument",
	fx.Provide(NewFromConfig),
)

// NewFromConfig builds an Integration from the central configuration.
func NewFromConfig(cfg *config.Config, client event.Capturer, log *slog.Logger) (*Integration, error) {
	return New(client, Options{
		TransactionStyle:    TransactionStyle(cfg.Instrumentation.TransactionStyle),
		MaxRequestBodyBytes: cfg.Instrumentation.MaxRequestBodyBytes,
		SendDefaultPII:      cfg.Instrumentation.SendDefaultPII,
		Logger:              log,
	})
}
