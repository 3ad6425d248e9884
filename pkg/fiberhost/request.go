package fiberhost

import (
	"context"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/ghasedak/pkg/instrument"
)

// PrincipalKey is the locals key under which the host's auth middleware
// publishes the resolved principal.
const PrincipalKey = "ghasedak.principal"

// Request adapts fiber.Ctx to the instrument.Request capability.
// Fiber caches the request body internally, so Body is idempotent and
// never re-consumes the underlying stream.
type Request struct {
	c fiber.Ctx

	routerOnce sync.Once
	router     instrument.RouteTable
}

var _ instrument.Request = (*Request)(nil)

// NewRequest wraps c. The adapter is single-use, like the request itself.
func NewRequest(c fiber.Ctx) *Request {
	return &Request{c: c}
}

func (r *Request) Kind() string {
	return instrument.KindHTTP
}

func (r *Request) Method() string {
	return r.c.Method()
}

func (r *Request) URLPath() string {
	return r.c.Path()
}

func (r *Request) Header(key string) string {
	return r.c.Get(key)
}

func (r *Request) Cookies() map[string]string {
	cookies := make(map[string]string)
	r.c.Request().Header.VisitAllCookie(func(key, value []byte) {
		cookies[string(key)] = string(value)
	})
	return cookies
}

func (r *Request) Body(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.c.Body(), nil
}

func (r *Request) Form(ctx context.Context) (*instrument.FormData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	contentType := strings.ToLower(r.c.Get(fiber.HeaderContentType))
	switch {
	case strings.HasPrefix(contentType, fiber.MIMEMultipartForm):
		return r.multipartForm()
	case strings.HasPrefix(contentType, fiber.MIMEApplicationForm):
		return r.urlencodedForm(), nil
	default:
		return nil, nil
	}
}

func (r *Request) multipartForm() (*instrument.FormData, error) {
	mf, err := r.c.MultipartForm()
	if err != nil {
		return nil, err
	}

	form := &instrument.FormData{
		Fields: make(map[string]string, len(mf.Value)),
		Files:  make(map[string]instrument.FilePart, len(mf.File)),
	}
	for key, values := range mf.Value {
		if len(values) > 0 {
			form.Fields[key] = values[0]
		}
	}
	for key, headers := range mf.File {
		if len(headers) == 0 {
			continue
		}
		form.Files[key] = instrument.FilePart{
			Filename: headers[0].Filename,
			Size:     headers[0].Size,
		}
	}
	return form, nil
}

func (r *Request) urlencodedForm() *instrument.FormData {
	form := &instrument.FormData{Fields: make(map[string]string)}
	r.c.Request().PostArgs().VisitAll(func(key, value []byte) {
		form.Fields[string(key)] = string(value)
	})
	return form
}

func (r *Request) Principal() any {
	return r.c.Locals(PrincipalKey)
}

// Router exposes the application's route table. It is built on first use,
// at event-emission time, so routes registered after middleware setup are
// still visible.
func (r *Request) Router() instrument.RouteTable {
	r.routerOnce.Do(func() {
		if app := r.c.App(); app != nil {
			r.router = Routes(app)
		}
	})
	return r.router
}
