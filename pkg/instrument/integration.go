package instrument

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alijeyrad/ghasedak/pkg/event"
	"github.com/Alijeyrad/ghasedak/pkg/scope"
)

// Identifier names this subsystem. It is used as the scope name and as the
// mechanism type on captured errors.
const Identifier = "ghasedak"

const tracerName = "github.com/Alijeyrad/ghasedak/pkg/instrument"

// DefaultMaxRequestBodyBytes is the body size budget applied when Options
// leaves MaxRequestBodyBytes zero.
const DefaultMaxRequestBodyBytes = 10_000

// TransactionStyle selects how a transaction name is derived from the
// matched route.
type TransactionStyle string

const (
	// StyleEndpoint names transactions after the route's declared endpoint name.
	StyleEndpoint TransactionStyle = "endpoint"

	// StyleURL names transactions after the route's path template.
	StyleURL TransactionStyle = "url"
)

// Options configures an Integration.
type Options struct {
	// TransactionStyle must be StyleEndpoint or StyleURL.
	// Empty defaults to StyleEndpoint; any other value is a configuration
	// error raised by New.
	TransactionStyle TransactionStyle

	// MaxRequestBodyBytes is the extraction size budget. Bodies larger than
	// this are reported as a size-limit redaction carrying the true length.
	// Zero defaults to DefaultMaxRequestBodyBytes.
	MaxRequestBodyBytes int64

	// SendDefaultPII enables cookie collection on extracted request info.
	SendDefaultPII bool

	// Logger receives the pipeline's own diagnostics (degraded extraction,
	// failing processors). Nil defaults to slog.Default().
	Logger *slog.Logger

	// Tracer overrides the span source, mainly for tests.
	// Nil uses the globally registered trace provider.
	Tracer trace.Tracer
}

// Integration is the per-application instrumentation context. It is built
// once at application setup, before request traffic, and read-only
// afterwards. Requests carry it through their context; its absence means
// instrumentation is inactive for that request.
type Integration struct {
	client    event.Capturer
	style     TransactionStyle
	tracer    trace.Tracer
	log       *slog.Logger
	extractor *Extractor
}

// New validates opts and builds an Integration reporting to client.
// An invalid transaction style fails here, never at request time.
// A nil client is allowed and yields an inactive integration.
func New(client event.Capturer, opts Options) (*Integration, error) {
	style := opts.TransactionStyle
	if style == "" {
		style = StyleEndpoint
	}
	if style != StyleEndpoint && style != StyleURL {
		return nil, fmt.Errorf("instrument: invalid transaction style %q (must be %q or %q)",
			opts.TransactionStyle, StyleEndpoint, StyleURL)
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	budget := opts.MaxRequestBodyBytes
	if budget <= 0 {
		budget = DefaultMaxRequestBodyBytes
	}

	return &Integration{
		client: client,
		style:  style,
		tracer: tracer,
		log:    log,
		extractor: &Extractor{
			maxBodyBytes:   budget,
			sendDefaultPII: opts.SendDefaultPII,
			log:            log,
		},
	}, nil
}

// Active reports whether a reporting client is attached. Inactive
// integrations keep every hook on the passthrough fast path.
func (i *Integration) Active() bool {
	return i != nil && i.client != nil
}

// TransactionStyle returns the validated naming style.
func (i *Integration) TransactionStyle() TransactionStyle {
	return i.style
}

// Extractor returns the bounded request extractor.
func (i *Integration) Extractor() *Extractor {
	return i.extractor
}

// Tracer returns the span source used for middleware spans.
func (i *Integration) Tracer() trace.Tracer {
	return i.tracer
}

// CaptureEvent applies the current scope to ev and forwards it to the
// reporting client. No-op when inactive.
func (i *Integration) CaptureEvent(ctx context.Context, ev *event.Event) {
	if !i.Active() || ev == nil {
		return
	}
	if s, ok := scope.FromContext(ctx); ok {
		ev = s.Apply(ev, i.log)
	}
	i.client.Capture(ctx, ev)
}

// CaptureException reports err with the given handled classification.
func (i *Integration) CaptureException(ctx context.Context, err error, handled bool) {
	if !i.Active() || err == nil {
		return
	}
	ev := event.FromError(err)
	ev.Mechanism = &event.Mechanism{Type: Identifier, Handled: handled}
	i.CaptureEvent(ctx, ev)
}

// ctxKey is a private type for context keys to prevent collisions.
type ctxKey int

const keyIntegration ctxKey = iota

// WithIntegration stores the integration in the context.
func WithIntegration(ctx context.Context, i *Integration) context.Context {
	return context.WithValue(ctx, keyIntegration, i)
}

// FromContext retrieves the integration from the context. Returns
// nil, false when the current request is not instrumented.
func FromContext(ctx context.Context) (*Integration, bool) {
	v := ctx.Value(keyIntegration)
	if v == nil {
		return nil, false
	}
	i, ok := v.(*Integration)
	if !ok || !i.Active() {
		return nil, false
	}
	return i, true
}
