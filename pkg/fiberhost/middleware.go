package fiberhost

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alijeyrad/ghasedak/pkg/instrument"
)

// Middleware returns the root instrumentation middleware. Register it
// before every middleware that should be observed. With a nil or inactive
// integration the middleware forwards immediately and does no
// instrumentation work at all.
func Middleware(integ *instrument.Integration) fiber.Handler {
	return func(c fiber.Ctx) error {
		req := NewRequest(c)
		root := instrument.Wrap(integ, func(ctx context.Context, _ instrument.Request) error {
			c.SetContext(ctx)

			// Surface the trace ID for client correlation when an
			// inbound trace is active.
			if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
				c.Set("X-Trace-Id", sc.TraceID().String())
			}
			return c.Next()
		})
		return root(c.Context(), req)
	}
}

// WrapHandler times every invocation of h with a span named after the
// middleware, the Fiber-side counterpart of instrument.Instrument.
// Uninstrumented requests delegate directly. Errors propagate unchanged
// after the span is closed.
func WrapHandler(name string, h fiber.Handler) fiber.Handler {
	return func(c fiber.Ctx) error {
		integ, ok := instrument.FromContext(c.Context())
		if !ok {
			return h(c)
		}

		parent := c.Context()
		ctx, span := integ.Tracer().Start(parent, "middleware",
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attribute.String("middleware.name", name)),
		)
		c.SetContext(ctx)
		defer func() {
			span.End()
			c.SetContext(parent)
		}()

		err := h(c)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return err
	}
}

// WrapAuth bridges the host's authentication middleware into the scope:
// after h completes, the principal it stored under PrincipalKey (if any)
// is copied into the current scope's user.
func WrapAuth(h fiber.Handler) fiber.Handler {
	return func(c fiber.Ctx) error {
		err := h(c)
		instrument.CopyPrincipal(c.Context(), NewRequest(c))
		return err
	}
}

// ErrorHandler wraps the application's terminal error handler. Errors
// reaching it are reported as handled, then dispatched to next unchanged.
func ErrorHandler(next fiber.ErrorHandler) fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		if integ, ok := instrument.FromContext(c.Context()); ok {
			integ.CaptureException(c.Context(), err, true)
		}
		return next(c, err)
	}
}
