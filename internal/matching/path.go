// Package matching implements path and method matching for the engine's
// route table. Exact matches outrank wildcard matches so that a specific
// route always wins over a catch-all registered for the same prefix.
package matching

import "strings"

// Match scores. Higher wins.
const (
	ScoreExact    = 10
	ScoreWildcard = 5
)

// MethodAll matches any HTTP method when used as a route method.
const MethodAll = "ALL"

// MatchPath checks if the request path matches the pattern.
// Returns a score > 0 if matched, 0 if not matched.
// Supports:
//   - Exact match: "/fastify/users" matches "/fastify/users"
//   - Trailing wildcard: "/fastify/*" matches "/fastify/anything/below"
func MatchPath(pattern, path string) int {
	if pattern == path {
		return ScoreExact
	}

	if strings.HasSuffix(pattern, "/*") {
		prefix := strings.TrimSuffix(pattern, "/*")
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return ScoreWildcard
		}
	}

	return 0
}

// MatchMethod reports whether a route registered for method accepts the
// request method. Routes registered for MethodAll accept everything.
func MatchMethod(routeMethod, requestMethod string) bool {
	if routeMethod == MethodAll {
		return true
	}
	return strings.EqualFold(routeMethod, requestMethod)
}
