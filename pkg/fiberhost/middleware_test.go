package fiberhost_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Alijeyrad/ghasedak/pkg/event"
	"github.com/Alijeyrad/ghasedak/pkg/fiberhost"
	"github.com/Alijeyrad/ghasedak/pkg/instrument"
)

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

func plainErrorHandler(c fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
}

func newTestApp(t *testing.T, opts instrument.Options) (*fiber.App, *recordingCapturer, *tracetest.SpanRecorder) {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	opts.Tracer = tp.Tracer("test")

	client := &recordingCapturer{}
	integ, err := instrument.New(client, opts)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{
		ErrorHandler: fiberhost.ErrorHandler(plainErrorHandler),
	})
	app.Use(fiberhost.Middleware(integ))
	return app, client, sr
}

func TestMiddleware_HandledErrorIsCaptured(t *testing.T) {
	app, client, _ := newTestApp(t, instrument.Options{TransactionStyle: instrument.StyleURL})

	app.Get("/users/:id", func(c fiber.Ctx) error {
		return errors.New("user lookup failed")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/users/42", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode,
		"the host's error response must be unchanged")

	events := client.Events()
	require.Len(t, events, 1)
	ev := events[0]

	require.NotNil(t, ev.Mechanism)
	assert.True(t, ev.Mechanism.Handled)
	assert.Equal(t, "/users/:id", ev.Transaction)
	require.NotNil(t, ev.Exception)
	assert.Equal(t, "user lookup failed", ev.Exception.Value)
}

func TestMiddleware_FormUploadRedaction(t *testing.T) {
	app, client, _ := newTestApp(t, instrument.Options{})

	app.Post("/upload/:name", func(c fiber.Ctx) error {
		return errors.New("upload rejected")
	})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("username", "Julian"))
	fw, err := w.CreateFormFile("photo", "photo.jpg")
	require.NoError(t, err)
	_, err = fw.Write(bytes.Repeat([]byte{0xff}, 2048))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/upload/something", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	_, err = app.Test(req)
	require.NoError(t, err)

	events := client.Events()
	require.Len(t, events, 1)
	require.NotNil(t, events[0].Request)

	data, ok := events[0].Request.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Julian", data["username"])

	photo, ok := data["photo"].(*event.RedactedValue)
	require.True(t, ok, "file contents must never be included")
	assert.Equal(t, int64(2048), photo.Length)
}

func TestWrapHandler_SpansNest(t *testing.T) {
	app, _, sr := newTestApp(t, instrument.Options{})

	app.Use(fiberhost.WrapHandler("RequestLogger", func(c fiber.Ctx) error {
		return c.Next()
	}))
	app.Use(fiberhost.WrapHandler("RateLimiter", func(c fiber.Ctx) error {
		return c.Next()
	}))
	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	spans := sr.Ended()
	require.Len(t, spans, 2)

	// spans end innermost-first
	names := func(i int) string {
		for _, attr := range spans[i].Attributes() {
			if attr.Key == "middleware.name" {
				return attr.Value.AsString()
			}
		}
		return ""
	}
	assert.Equal(t, "RateLimiter", names(0))
	assert.Equal(t, "RequestLogger", names(1))
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
}

func TestMiddleware_InactiveIntegrationStillForwards(t *testing.T) {
	integ, err := instrument.New(nil, instrument.Options{})
	require.NoError(t, err)

	app := fiber.New()
	app.Use(fiberhost.Middleware(integ))
	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestWrapAuth_PrincipalReachesScope(t *testing.T) {
	app, client, _ := newTestApp(t, instrument.Options{})

	auth := func(c fiber.Ctx) error {
		c.Locals(fiberhost.PrincipalKey, testPrincipal{email: "julian@example.com"})
		return c.Next()
	}

	// The bridge runs after auth's delegation returns, so by the time the
	// error reaches the terminal error handler the user is on the scope.
	app.Get("/fail", fiberhost.WrapAuth(auth), func(c fiber.Ctx) error {
		return errors.New("late failure")
	})

	_, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
	require.NoError(t, err)

	events := client.Events()
	require.Len(t, events, 1)
	require.NotNil(t, events[0].User)
	assert.Equal(t, "julian@example.com", events[0].User.Email)
}

type testPrincipal struct{ email string }

func (p testPrincipal) Email() string { return p.email }
