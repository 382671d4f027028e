package graphql

import (
	"fmt"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

// Schema wraps a parsed GraphQL schema.
type Schema struct {
	ast    *ast.Schema
	source string
}

// ParseSchema parses a GraphQL SDL string and returns a Schema.
func ParseSchema(sdl string) (*Schema, error) {
	source := &ast.Source{
		Name:  "schema",
		Input: sdl,
	}

	schema, err := gqlparser.LoadSchema(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GraphQL schema: %w", err)
	}

	return &Schema{ast: schema, source: sdl}, nil
}

// AST returns the underlying parsed schema.
func (s *Schema) AST() *ast.Schema {
	return s.ast
}

// Source returns the SDL text the schema was parsed from.
func (s *Schema) Source() string {
	return s.source
}
