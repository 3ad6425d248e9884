package instrument

import (
	"context"

	"github.com/Alijeyrad/ghasedak/pkg/event"
	"github.com/Alijeyrad/ghasedak/pkg/scope"
)

// Wrap returns the root instrumentation handler around next. Per request it
// opens a scope, runs the bounded extractor, registers one deferred event
// processor over the extracted info and the request, and delegates to the
// wrapped chain. The scope dies with the request's context.
//
// Non-HTTP requests and requests with no active integration delegate
// immediately: instrumentation is skipped but the request is always
// forwarded. Errors from next propagate unchanged.
func Wrap(integ *Integration, next Handler) Handler {
	return func(ctx context.Context, req Request) error {
		if req.Kind() != KindHTTP || !integ.Active() {
			return next(ctx, req)
		}

		ctx = WithIntegration(ctx, integ)

		s := scope.New(Identifier)
		ctx = scope.WithScope(ctx, s)

		info := integ.extractor.Extract(ctx, req)

		// Route state may not be finalized until dispatch, so the
		// transaction name is resolved inside the processor at emission
		// time, not here.
		p := &requestProcessor{req: req, info: info, style: integ.style}
		s.AddEventProcessor(p.Process)

		return next(ctx, req)
	}
}

// requestProcessor is the deferred-evaluation callback registered for each
// instrumented request. It enriches emitted events with the extracted
// request payload and the resolved transaction name.
type requestProcessor struct {
	req   Request
	info  *event.RequestInfo
	style TransactionStyle
}

// Process merges the captured request info into ev and sets the
// transaction name from the first fully matching route, if any.
func (p *requestProcessor) Process(ev *event.Event) *event.Event {
	if p.info != nil {
		if ev.Request == nil {
			ev.Request = &event.RequestInfo{}
		}
		if p.info.Cookies != nil {
			ev.Request.Cookies = p.info.Cookies
		}
		if p.info.Data != nil {
			ev.Request.Data = p.info.Data
		}
	}

	if name, ok := TransactionName(p.req, p.style); ok {
		ev.Transaction = name
	}
	return ev
}
