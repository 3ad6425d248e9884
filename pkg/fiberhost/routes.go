package fiberhost

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/ghasedak/pkg/instrument"
)

// Routes builds an instrument.RouteTable from the application's declared
// routes, in registration order.
func Routes(app *fiber.App) instrument.RouteTable {
	declared := app.GetRoutes(true)
	routes := make([]instrument.Route, 0, len(declared))
	for _, rt := range declared {
		routes = append(routes, &route{
			method: rt.Method,
			name:   rt.Name,
			path:   rt.Path,
		})
	}
	return routeTable(routes)
}

type routeTable []instrument.Route

func (t routeTable) Routes() []instrument.Route {
	return t
}

// route matches a request against one declared route. The path template
// uses Fiber syntax: ":name" matches one segment, "*" matches the rest.
// A path match with the wrong method is a partial match, mirroring the
// distinction between "no such route" and "route exists, method differs".
type route struct {
	method string
	name   string
	path   string
}

func (r *route) Match(req instrument.Request) instrument.MatchOutcome {
	if !pathMatches(r.path, req.URLPath()) {
		return instrument.MatchNone
	}
	if !strings.EqualFold(r.method, req.Method()) {
		return instrument.MatchPartial
	}
	return instrument.MatchFull
}

// Name returns the route's declared name, falling back to "METHOD /path"
// for unnamed routes.
func (r *route) Name() string {
	if r.name != "" {
		return r.name
	}
	return r.method + " " + r.path
}

func (r *route) Path() string {
	return r.path
}

func pathMatches(template, path string) bool {
	if template == path {
		return true
	}

	tSegs := splitPath(template)
	pSegs := splitPath(path)

	for i, seg := range tSegs {
		switch {
		case seg == "*" || seg == "+":
			// wildcard swallows the rest; "+" requires at least one segment
			return seg == "*" || len(pSegs) > i
		case i >= len(pSegs):
			return false
		case strings.HasPrefix(seg, ":"):
			// parameter segment matches any non-empty segment
			if pSegs[i] == "" {
				return false
			}
		case seg != pSegs[i]:
			return false
		}
	}
	return len(tSegs) == len(pSegs)
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
