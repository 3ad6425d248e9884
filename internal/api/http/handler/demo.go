package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/ghasedak/pkg/scope"
)

// Echo accepts a JSON or form body and returns what it parsed. Posting to
// it with a large body shows up in captured events as a redacted value.
func Echo(c fiber.Ctx) error {
	var payload map[string]any
	if err := c.Bind().Body(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "unparseable body")
	}

	return c.JSON(fiber.Map{
		"method": c.Method(),
		"path":   c.Path(),
		"data":   payload,
	})
}

// WhoAmI reports the identity the auth bridge copied onto the scope.
func WhoAmI(c fiber.Ctx) error {
	s, ok := scope.FromContext(c.Context())
	if !ok {
		return fiber.ErrInternalServerError
	}
	user, ok := s.User()
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "no user on scope")
	}
	return c.JSON(user)
}

// Boom fails on purpose so the error handler's capture path can be
// exercised end to end.
func Boom(c fiber.Ctx) error {
	kind := c.Query("kind", "plain")
	switch kind {
	case "fiber":
		return fiber.NewError(fiber.StatusTeapot, "refusing to brew")
	case "plain":
		return errors.New("demo failure")
	default:
		return fmt.Errorf("unknown failure kind %q", kind)
	}
}
