// Package scope provides the per-request enrichment state for the
// instrumentation pipeline.
//
// A Scope is created when an instrumented request enters the middleware
// chain and dies with the request's context. It accumulates the resolved
// user, tags, a bounded breadcrumb trail, and an ordered list of event
// processors that enrich every diagnostic event emitted during the request.
//
// # Access
//
// The scope travels through the request's context.Context:
//
//	ctx = scope.WithScope(ctx, scope.New("ghasedak"))
//	s, ok := scope.FromContext(ctx)
//
// # Contracts
//
//   - A Scope belongs to exactly one request and is written only by that
//     request's goroutine. It is not safe for concurrent use and never
//     shared across requests.
//   - The user is set at most once per request, only when the host's auth
//     layer resolved a principal. MergeUser keeps already-set fields.
//   - Event processors run in registration order. A failing processor is
//     logged and skipped; it never prevents event delivery.
package scope
