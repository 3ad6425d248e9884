package instrument

import (
	"context"

	"github.com/Alijeyrad/ghasedak/pkg/event"
	"github.com/Alijeyrad/ghasedak/pkg/scope"
)

// BridgeAuth wraps the host's authentication middleware. It delegates
// first, so identity resolution has already populated request state, then
// unconditionally copies the resolved principal (if any) into the current
// scope's user. The copy is a no-op when the request is unauthenticated
// or uninstrumented.
func BridgeAuth(mw Middleware) Middleware {
	return func(ctx context.Context, req Request, next Handler) error {
		err := mw(ctx, req, next)
		CopyPrincipal(ctx, req)
		return err
	}
}

// CopyPrincipal merges the request's resolved principal into the scope's
// user, each field independently and only when non-empty. Fields already
// set on the scope are kept.
func CopyPrincipal(ctx context.Context, req Request) {
	if _, ok := FromContext(ctx); !ok {
		return
	}
	s, ok := scope.FromContext(ctx)
	if !ok {
		return
	}
	p := req.Principal()
	if p == nil {
		return
	}
	if u, ok := userFromPrincipal(p); ok {
		s.MergeUser(u)
	}
}

// userFromPrincipal probes the principal's optional capabilities. It never
// assumes a base type: only fields the principal exposes, and which are
// non-empty, make it into the user.
func userFromPrincipal(p any) (event.User, bool) {
	var u event.User
	if v, ok := p.(UserIDer); ok {
		u.ID = v.UserID()
	}
	if v, ok := p.(Usernamer); ok {
		u.Username = v.Username()
	}
	if v, ok := p.(Emailer); ok {
		u.Email = v.Email()
	}
	if u.IsEmpty() {
		return event.User{}, false
	}
	return u, true
}
