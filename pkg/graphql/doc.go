// Package graphql implements the query-execution layer served through the
// bridge. It parses SDL schemas and incoming query documents with
// vektah/gqlparser, resolves top-level fields through a configured resolver
// table, and returns either a structured result or a structured error list.
// Execution never panics across the handler boundary: every failure becomes
// an entry in the response's errors array.
package graphql
