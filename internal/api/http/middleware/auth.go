package middleware

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/ghasedak/pkg/fiberhost"
)

// Principal is the demo server's authenticated identity. It exposes the
// optional-interface surface the instrumentation probes for.
type Principal struct {
	id    string
	name  string
	email string
}

func (p Principal) UserID() string   { return p.id }
func (p Principal) Username() string { return p.name }
func (p Principal) Email() string    { return p.email }

// DemoAuth resolves a principal from the X-Demo-User and X-Demo-Email
// headers. It is a stand-in for a real token-verifying middleware; the
// point is that it stores the principal where the instrumentation's auth
// bridge looks for it.
func DemoAuth() fiber.Handler {
	return func(c fiber.Ctx) error {
		name := c.Get("X-Demo-User")
		if name == "" {
			return fiber.ErrUnauthorized
		}

		c.Locals(fiberhost.PrincipalKey, Principal{
			id:    name,
			name:  name,
			email: c.Get("X-Demo-Email"),
		})

		return c.Next()
	}
}
