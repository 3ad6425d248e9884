package instrument

import "context"

// KindHTTP is the request kind handled by the pipeline. Requests of any
// other kind (websocket upgrades, lifecycle events) bypass instrumentation
// entirely.
const KindHTTP = "http"

// FilePart describes an uploaded file in a form body. Only the metadata is
// ever carried; file contents never enter the pipeline.
type FilePart struct {
	Filename string

	// Size is the upload's byte length, or -1 when it could not be
	// determined.
	Size int64
}

// FormData is a parsed form body.
type FormData struct {
	Fields map[string]string
	Files  map[string]FilePart
}

// Empty reports whether the form has neither fields nor files.
func (f *FormData) Empty() bool {
	return f == nil || (len(f.Fields) == 0 && len(f.Files) == 0)
}

// Request is the inbound capability consumed from the host framework.
//
// Implementations must cache the body: Body may be called more than once
// per request and must return the same bytes without re-consuming a
// single-read stream.
type Request interface {
	// Kind identifies the protocol class, e.g. KindHTTP.
	Kind() string

	Method() string
	URLPath() string

	// Header returns the first value of the named header, or "".
	Header(key string) string

	// Cookies returns the request cookies as a name to value map.
	Cookies() map[string]string

	// Body returns the cached request body. Blocking reads honor ctx.
	Body(ctx context.Context) ([]byte, error)

	// Form returns the parsed form body, or nil when the request does not
	// carry one.
	Form(ctx context.Context) (*FormData, error)

	// Principal returns whatever the host's auth layer resolved for this
	// request, or nil when unauthenticated. Identity fields are probed via
	// the optional UserIDer, Usernamer, and Emailer interfaces.
	Principal() any

	// Router returns the host's route table, or nil when routing metadata
	// has not been attached yet.
	Router() RouteTable
}

// MatchOutcome is the result of matching a request against one route.
type MatchOutcome int

const (
	// MatchNone means the route does not apply.
	MatchNone MatchOutcome = iota

	// MatchPartial means the path applies but another constraint (such as
	// the method) does not.
	MatchPartial

	// MatchFull means the request fully satisfies the route.
	MatchFull
)

// Route is one entry of the host's route table.
type Route interface {
	// Match computes how well the request satisfies this route.
	Match(req Request) MatchOutcome

	// Name is the route's declared endpoint name.
	Name() string

	// Path is the route's declared path template.
	Path() string
}

// RouteTable exposes the host's routes in declared order.
type RouteTable interface {
	Routes() []Route
}

// Optional principal capabilities. The bridge reads only the fields a
// principal actually exposes; there is no required base type.
type (
	// UserIDer exposes a stable user identifier.
	UserIDer interface{ UserID() string }

	// Usernamer exposes a display or login name.
	Usernamer interface{ Username() string }

	// Emailer exposes an email address.
	Emailer interface{ Email() string }
)
