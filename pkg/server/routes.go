package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gqlbridge/gqlbridge/pkg/engine"
	"github.com/gqlbridge/gqlbridge/pkg/graphql"
)

// demoSchema is the SDL served by the query-execution endpoint.
const demoSchema = `
type Query {
	hello: String!
	user(id: ID!): User
	users: [User!]!
}

type User {
	id: ID!
	name: String!
	email: String!
}
`

// demoUsers is the static dataset behind both the GraphQL resolvers and the
// demo user listing.
var demoUsers = []map[string]any{
	{"id": "1", "name": "Alice Johnson", "email": "alice@example.com"},
	{"id": "2", "name": "Bob Smith", "email": "bob@example.com"},
	{"id": "3", "name": "Carol Davis", "email": "carol@example.com"},
}

// demoResolvers builds the resolver table for the demo schema.
func demoResolvers() map[string]graphql.ResolverFunc {
	return map[string]graphql.ResolverFunc{
		"Query.hello": func(ctx context.Context, args map[string]any) (any, error) {
			return "Hello from GraphQL!", nil
		},
		"Query.user": func(ctx context.Context, args map[string]any) (any, error) {
			id, _ := args["id"].(string)
			for _, u := range demoUsers {
				if u["id"] == id {
					return u, nil
				}
			}
			return nil, fmt.Errorf("user %q not found", id)
		},
		"Query.users": func(ctx context.Context, args map[string]any) (any, error) {
			return demoUsers, nil
		},
	}
}

// cacheControlMaxAge is the cache lifetime attached to demo responses.
const cacheControlMaxAge = 60 * time.Second

// withCacheControl attaches the caching directive to a response.
func withCacheControl(res *engine.Result) *engine.Result {
	res.Header.Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(cacheControlMaxAge.Seconds())))
	return res
}

// registerDemoRoutes installs the demo route family on the engine.
func registerDemoRoutes(eng *engine.Engine) {
	eng.Handle(http.MethodGet, "/fastify", handleDemoIndex)
	eng.Handle(http.MethodGet, "/fastify/users", handleDemoUsers)
	eng.Handle(http.MethodGet, "/fastify/health", handleDemoHealth)
	eng.HandleAll("/fastify/*", handleDemoPassthrough)
}

func handleDemoIndex(ctx context.Context, call *engine.Call) *engine.Result {
	return withCacheControl(engine.JSONResult(http.StatusOK, map[string]any{
		"message": "Hello from the embedded engine!",
		"endpoints": []string{
			"/fastify",
			"/fastify/users",
			"/fastify/health",
		},
	}))
}

func handleDemoUsers(ctx context.Context, call *engine.Call) *engine.Result {
	return withCacheControl(engine.JSONResult(http.StatusOK, map[string]any{
		"users": demoUsers,
		"total": len(demoUsers),
	}))
}

func handleDemoHealth(ctx context.Context, call *engine.Call) *engine.Result {
	return withCacheControl(engine.JSONResult(http.StatusOK, map[string]string{
		"status":    "healthy",
		"service":   "fastify",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}))
}

// handleDemoPassthrough answers any method under the wildcard with an echo
// of what was bridged, so the catch-all route is observable end to end.
func handleDemoPassthrough(ctx context.Context, call *engine.Call) *engine.Result {
	return engine.JSONResult(http.StatusOK, map[string]string{
		"message": "bridged passthrough",
		"method":  call.Method,
		"path":    call.Path(),
	})
}
