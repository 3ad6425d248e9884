package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/logger"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"go.uber.org/fx"

	"github.com/Alijeyrad/ghasedak/config"
	"github.com/Alijeyrad/ghasedak/internal/api/http/middleware"
	"github.com/Alijeyrad/ghasedak/internal/api/http/router"
	"github.com/Alijeyrad/ghasedak/pkg/fiberhost"
	"github.com/Alijeyrad/ghasedak/pkg/instrument"
	"github.com/Alijeyrad/ghasedak/pkg/observability"
)

// Module provides the HTTP Server to the fx graph.
var Module = fx.Module("http", fx.Provide(NewServer))

type Params struct {
	fx.In

	Lifecycle   fx.Lifecycle
	Cfg         *config.Config
	Integration *instrument.Integration
	Router      *router.Router
	OTel        *observability.Provider `optional:"true"`
}

func NewServer(p Params) *fiber.App {
	app := fiber.New(fiber.Config{
		// Handled errors are captured before the response is written.
		ErrorHandler: fiberhost.ErrorHandler(respondError),
	})

	configureGlobalMiddleware(app, p.Cfg, p.Integration)

	p.Router.Register(app)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			addr := fmt.Sprintf(":%d", p.Cfg.Server.Port)
			go func() {
				if err := app.Listen(addr); err != nil {
					slog.Error("HTTP server error", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})

	return app
}

func configureGlobalMiddleware(app *fiber.App, cfg *config.Config, integ *instrument.Integration) {
	app.Use(recoverer.New())

	// Instrumentation wraps everything below it: scope creation, request
	// extraction and transaction naming all happen here.
	app.Use(fiberhost.Middleware(integ))

	// Named wrapping gives the middleware its own span on the request trace.
	app.Use(fiberhost.WrapHandler("requestid", middleware.RequestID()))

	if cfg.Environment == "production" {
		app.Use(helmet.New())
		app.Use(middleware.NewLimiter())
	}

	app.Use(logger.New(logger.Config{
		Format: "${ip} - [${time}] ${method} ${url} ${status}\n",
	}))
}

func respondError(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
