package instrument

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// spanNameMiddleware is the operation name of middleware spans.
const spanNameMiddleware = "middleware"

// Handler is the terminal function of a middleware chain.
type Handler func(ctx context.Context, req Request) error

// Middleware wraps a Handler with cross-cutting logic. It receives the
// current context, the request, and the next handler to call. Middleware
// MUST call next to continue the chain (unless short-circuiting on error).
type Middleware func(ctx context.Context, req Request, next Handler) error

// Chain composes multiple middleware into a single Middleware.
// Middleware are applied right-to-left: the first middleware in the list
// is the outermost wrapper.
func Chain(mws ...Middleware) Middleware {
	return func(ctx context.Context, req Request, next Handler) error {
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			prev := h
			h = func(ctx context.Context, req Request) error {
				return mw(ctx, req, prev)
			}
		}
		return h(ctx, req)
	}
}

// Instrument wraps mw so that every invocation is timed by a span named
// after the middleware. Spans nest with call nesting and close in reverse
// order of opening. Errors and panics propagate unchanged after the span
// is closed.
//
// When no active integration is attached to the context, the wrapper
// delegates directly with zero overhead.
func Instrument(name string, mw Middleware) Middleware {
	return func(ctx context.Context, req Request, next Handler) error {
		integ, ok := FromContext(ctx)
		if !ok {
			return mw(ctx, req, next)
		}

		ctx, span := integ.tracer.Start(ctx, spanNameMiddleware,
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(
				attribute.String("middleware.name", name),
			),
		)
		defer span.End()

		err := mw(ctx, req, next)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return err
	}
}
