// Package instrument implements the request instrumentation pipeline:
// span-wrapped middleware, bounded request extraction, transaction naming
// via route matching, handled-error capture, and the root middleware that
// orchestrates them per request.
//
// The package is framework-agnostic. The host framework is consumed only
// through the Request, Route, and RouteTable capabilities; see package
// fiberhost for the Fiber v3 binding.
//
// Instrumentation is carried explicitly: an *Integration travels through
// the request's context.Context. When no Integration is attached, every
// hook in this package degrades to a pure passthrough with no spans, no
// extraction, and no allocation beyond the nil check.
//
// Instrumentation never changes the wrapped call's result. Errors and
// panics propagate unchanged; extraction and enrichment are best-effort.
package instrument
