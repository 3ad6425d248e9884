package instrument

import "context"

// ErrorHandler is the host framework's terminal error-dispatch hook: it
// converts an application error into an HTTP error response.
type ErrorHandler func(ctx context.Context, req Request, err error) error

// CaptureErrors wraps the terminal error handler. Every error reaching it
// has been handled by the framework's own boundary, so it is reported with
// Handled set to true, then delegated to the original hook with identical
// arguments; the hook's result is returned unchanged.
//
// Errors that escape the application entirely are outside this boundary
// and belong to a separate unhandled-error recovery layer.
func CaptureErrors(h ErrorHandler) ErrorHandler {
	return func(ctx context.Context, req Request, err error) error {
		if integ, ok := FromContext(ctx); ok {
			integ.CaptureException(ctx, err, true)
		}
		return h(ctx, req, err)
	}
}
