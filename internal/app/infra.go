package app

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/Alijeyrad/ghasedak/config"
	"github.com/Alijeyrad/ghasedak/pkg/event"
	"github.com/Alijeyrad/ghasedak/pkg/observability"
)

// InfraModule provides the demo server's infrastructure dependencies.
var InfraModule = fx.Module("infra",
	fx.Provide(ProvideOTel),
	fx.Provide(ProvideCapturer),
)

func ProvideOTel(lc fx.Lifecycle, cfg *config.Config) (*observability.Provider, error) {
	provider, err := observability.Init(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("shutting down telemetry providers")
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}

func ProvideCapturer(log *slog.Logger) event.Capturer {
	return NewLogCapturer(log)
}
