package app

import (
	"context"
	"log/slog"

	"github.com/Alijeyrad/ghasedak/pkg/event"
)

// LogCapturer is the demo reporting client: it writes every captured event
// to the structured log instead of shipping it to an ingestion service.
type LogCapturer struct {
	log *slog.Logger
}

func NewLogCapturer(log *slog.Logger) *LogCapturer {
	return &LogCapturer{log: log}
}

func (c *LogCapturer) Capture(ctx context.Context, ev *event.Event) {
	attrs := []any{
		slog.String("event_id", ev.EventID),
		slog.String("level", string(ev.Level)),
	}
	if ev.Transaction != "" {
		attrs = append(attrs, slog.String("transaction", ev.Transaction))
	}
	if ev.Exception != nil {
		attrs = append(attrs,
			slog.String("exception_type", ev.Exception.Type),
			slog.String("exception_value", ev.Exception.Value),
		)
	}
	if ev.Mechanism != nil {
		attrs = append(attrs,
			slog.String("mechanism", ev.Mechanism.Type),
			slog.Bool("handled", ev.Mechanism.Handled),
		)
	}
	if ev.User != nil && !ev.User.IsEmpty() {
		attrs = append(attrs, slog.Any("user", ev.User))
	}
	if ev.Request != nil {
		attrs = append(attrs, slog.Any("request", ev.Request))
	}
	for k, v := range ev.Tags {
		attrs = append(attrs, slog.String("tag_"+k, v))
	}

	c.log.InfoContext(ctx, "captured event", attrs...)
}
