package engine

import (
	"context"
	"log/slog"

	"github.com/gqlbridge/gqlbridge/internal/matching"
	"github.com/gqlbridge/gqlbridge/pkg/logging"
)

// HandlerFunc handles a matched call and produces a Result.
type HandlerFunc func(ctx context.Context, call *Call) *Result

// Middleware runs before route dispatch. Returning nil passes control to the
// next step; returning a Result terminates the call with that response. The
// first terminal response wins.
type Middleware func(ctx context.Context, call *Call) *Result

// Route binds a method and path pattern to a handler. Method may be
// matching.MethodAll to accept any verb; patterns support exact paths and a
// trailing "/*" wildcard.
type Route struct {
	Method  string
	Pattern string
	Handler HandlerFunc
}

// Engine holds the route table and middleware chain. Register everything
// during startup; the engine is read-only once Inject is being called.
type Engine struct {
	routes     []Route
	middleware []Middleware
	log        *slog.Logger
}

// New creates an empty engine.
func New() *Engine {
	return &Engine{log: logging.Nop()}
}

// SetLogger sets the operational logger. Call during startup only.
func (e *Engine) SetLogger(log *slog.Logger) {
	if log != nil {
		e.log = log
	}
}

// Use appends a middleware to the chain. Middleware run in registration
// order, strictly before the matched handler.
func (e *Engine) Use(mw Middleware) {
	e.middleware = append(e.middleware, mw)
}

// Handle registers a route.
func (e *Engine) Handle(method, pattern string, handler HandlerFunc) {
	e.routes = append(e.routes, Route{Method: method, Pattern: pattern, Handler: handler})
}

// HandleAll registers a route matching every HTTP method.
func (e *Engine) HandleAll(pattern string, handler HandlerFunc) {
	e.Handle(matching.MethodAll, pattern, handler)
}

// Routes returns a copy of the registered route table, for diagnostics.
func (e *Engine) Routes() []Route {
	out := make([]Route, len(e.routes))
	copy(out, e.routes)
	return out
}

// match finds the best route for a method and path. Exact path matches
// outrank wildcard matches; among equal scores the first registered wins.
// Returns nil if nothing matches.
func (e *Engine) match(method, path string) HandlerFunc {
	var best HandlerFunc
	bestScore := 0

	for i := range e.routes {
		r := &e.routes[i]
		if !matching.MatchMethod(r.Method, method) {
			continue
		}
		if score := matching.MatchPath(r.Pattern, path); score > bestScore {
			best = r.Handler
			bestScore = score
		}
	}

	return best
}
