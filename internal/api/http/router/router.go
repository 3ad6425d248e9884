package router

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/Alijeyrad/ghasedak/config"
	"github.com/Alijeyrad/ghasedak/internal/api/http/handler"
	"github.com/Alijeyrad/ghasedak/internal/api/http/middleware"
	"github.com/Alijeyrad/ghasedak/pkg/fiberhost"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg *config.Config
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	r.registerSystemRoutes(app)

	api := app.Group("/api/v1")

	api.Post("/echo", handler.Echo)
	api.Get("/boom", handler.Boom)

	// The auth wrapper copies the resolved principal onto the request scope
	// once DemoAuth's chain returns.
	me := api.Group("/me", fiberhost.WrapAuth(middleware.DemoAuth()))
	me.Get("/", handler.WhoAmI)
	me.Get("/boom", handler.Boom)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New())
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}
}
