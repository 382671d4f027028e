package engine

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gqlbridge/gqlbridge/pkg/httputil"
)

// Inject runs a call through the full middleware and routing pipeline
// without opening a socket, and always returns a well-formed Result:
//
//   - a middleware returning a terminal response short-circuits dispatch;
//   - an unmatched route yields a 404-shaped Result, never an error;
//   - a handler panic is recovered into a 500-shaped Result.
func (e *Engine) Inject(ctx context.Context, call *Call) (res *Result) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("handler panic",
				"method", call.Method,
				"path", call.Path(),
				"panic", fmt.Sprint(r),
			)
			res = e.errorResult(http.StatusInternalServerError, "internal server error", call)
		}
	}()

	for _, mw := range e.middleware {
		if terminal := mw(ctx, call); terminal != nil {
			return terminal
		}
	}

	handler := e.match(call.Method, call.Path())
	if handler == nil {
		e.log.Debug("no route matched", "method", call.Method, "path", call.Path())
		return e.errorResult(http.StatusNotFound, "not found", call)
	}

	return handler(ctx, call)
}

// errorResult builds an engine-originated error Result carrying the request
// path and method for diagnostics.
func (e *Engine) errorResult(status int, msg string, call *Call) *Result {
	return JSONResult(status, httputil.ErrorBody{
		Error:  msg,
		Path:   call.Path(),
		Method: call.Method,
	})
}
