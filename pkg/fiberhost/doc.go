// Package fiberhost binds the instrumentation pipeline to Fiber v3.
//
// It implements the instrument.Request and instrument.RouteTable
// capabilities over fiber.Ctx and the application's route table, and
// exposes ready-to-compose Fiber middleware:
//
//	app := fiber.New(fiber.Config{
//	    ErrorHandler: fiberhost.ErrorHandler(myErrorHandler),
//	})
//	app.Use(fiberhost.Middleware(integ))
//	app.Use(fiberhost.WrapHandler("RateLimiter", limiter))
//	app.Use(fiberhost.WrapAuth(authMiddleware))
//
// The host's auth middleware publishes its resolved principal under
// PrincipalKey in the request locals; the bridge copies its identity
// fields into the scope after the auth middleware completes.
package fiberhost
