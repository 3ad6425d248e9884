package instrument_test

import (
	"context"
	"sync"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alijeyrad/ghasedak/pkg/event"
	"github.com/Alijeyrad/ghasedak/pkg/instrument"
)

func setupTestTracer() (*tracetest.SpanRecorder, trace.Tracer) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	return sr, tp.Tracer("test")
}

// recordingCapturer collects captured events.
type recordingCapturer struct {
	mu     sync.Mutex
	events []*event.Event
}

func (c *recordingCapturer) Capture(_ context.Context, ev *event.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

func (c *recordingCapturer) Events() []*event.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*event.Event(nil), c.events...)
}

// fakeRequest implements instrument.Request with a single-read body
// stream cached on first read, like a real host request.
type fakeRequest struct {
	kind      string
	method    string
	path      string
	headers   map[string]string
	cookies   map[string]string
	stream    []byte
	body      []byte
	bodyRead  bool
	bodyReads int
	form      *instrument.FormData
	formErr   error
	principal any
	router    instrument.RouteTable
}

func newFakeRequest() *fakeRequest {
	return &fakeRequest{kind: instrument.KindHTTP, method: "GET", path: "/"}
}

func (r *fakeRequest) Kind() string {
	if r.kind == "" {
		return instrument.KindHTTP
	}
	return r.kind
}

func (r *fakeRequest) Method() string  { return r.method }
func (r *fakeRequest) URLPath() string { return r.path }

func (r *fakeRequest) Header(key string) string { return r.headers[key] }

func (r *fakeRequest) Cookies() map[string]string { return r.cookies }

func (r *fakeRequest) Body(context.Context) ([]byte, error) {
	if !r.bodyRead {
		// consume the stream exactly once
		r.bodyReads++
		r.body = r.stream
		r.stream = nil
		r.bodyRead = true
	}
	return r.body, nil
}

func (r *fakeRequest) Form(context.Context) (*instrument.FormData, error) {
	return r.form, r.formErr
}

func (r *fakeRequest) Principal() any { return r.principal }

func (r *fakeRequest) Router() instrument.RouteTable { return r.router }

// fakeRoute is one route table entry with a scripted match outcome.
type fakeRoute struct {
	outcome    instrument.MatchOutcome
	name       string
	path       string
	matchCalls int
}

func (r *fakeRoute) Match(instrument.Request) instrument.MatchOutcome {
	r.matchCalls++
	return r.outcome
}

func (r *fakeRoute) Name() string { return r.name }
func (r *fakeRoute) Path() string { return r.path }

type fakeRouteTable []instrument.Route

func (t fakeRouteTable) Routes() []instrument.Route { return t }

// principal fixtures exercising the optional identity capabilities.

type emailOnlyPrincipal struct{ email string }

func (p emailOnlyPrincipal) Email() string { return p.email }

type fullPrincipal struct{ id, username, email string }

func (p fullPrincipal) UserID() string   { return p.id }
func (p fullPrincipal) Username() string { return p.username }
func (p fullPrincipal) Email() string    { return p.email }
