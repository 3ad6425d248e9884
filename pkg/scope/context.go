package scope

import "context"

// ctxKey is a private type for context keys to prevent collisions.
type ctxKey int

const keyScope ctxKey = iota

// WithScope stores the scope in the context.
func WithScope(ctx context.Context, s *Scope) context.Context {
	return context.WithValue(ctx, keyScope, s)
}

// FromContext retrieves the scope from the context.
// Returns nil, false if no scope is attached, which means the current
// request is not instrumented.
func FromContext(ctx context.Context) (*Scope, bool) {
	v := ctx.Value(keyScope)
	if v == nil {
		return nil, false
	}
	s, ok := v.(*Scope)
	return s, ok
}

// MustFromContext retrieves the scope from the context.
// Panics if not set. Use only where middleware guarantees it's present.
func MustFromContext(ctx context.Context) *Scope {
	s, ok := FromContext(ctx)
	if !ok || s == nil {
		panic("scope: Scope not found in context")
	}
	return s
}
