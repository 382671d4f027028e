package graphql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"
)

// ResolverFunc resolves one top-level field. args holds the coerced argument
// values for the field. Returning an error adds an entry to the response's
// errors array instead of failing the request.
type ResolverFunc func(ctx context.Context, args map[string]any) (any, error)

// Executor executes GraphQL operations against a resolver table keyed by
// field path ("Query.hello", "Mutation.createUser"). The table is built at
// startup and read-only afterwards.
type Executor struct {
	schema    *Schema
	resolvers map[string]ResolverFunc
}

// NewExecutor creates an executor for the given schema and resolver table.
func NewExecutor(schema *Schema, resolvers map[string]ResolverFunc) *Executor {
	if resolvers == nil {
		resolvers = make(map[string]ResolverFunc)
	}
	return &Executor{schema: schema, resolvers: resolvers}
}

// Execute runs a GraphQL request and returns a response. Parse, validation
// and resolver failures all surface as a structured error list; Execute
// never returns nil.
func (e *Executor) Execute(ctx context.Context, req *Request) *Response {
	if req == nil || req.Query == "" {
		return &Response{Errors: []Error{{Message: "query is required"}}}
	}

	doc, err := e.parseQuery(req.Query)
	if err != nil {
		return &Response{Errors: []Error{{Message: err.Error()}}}
	}

	var op *ast.OperationDefinition
	for _, opDef := range doc.Operations {
		if req.OperationName == "" || opDef.Name == req.OperationName {
			op = opDef
			break
		}
	}
	if op == nil {
		if req.OperationName != "" {
			return &Response{Errors: []Error{{Message: fmt.Sprintf("operation %q not found", req.OperationName)}}}
		}
		return &Response{Errors: []Error{{Message: "no operation found in query"}}}
	}

	var opType string
	switch op.Operation {
	case ast.Query:
		opType = "Query"
	case ast.Mutation:
		opType = "Mutation"
	default:
		return &Response{Errors: []Error{{Message: "unsupported operation type"}}}
	}

	data := make(map[string]any)
	var errs []Error

	for _, sel := range op.SelectionSet {
		field, ok := sel.(*ast.Field)
		if !ok {
			continue
		}

		key := field.Alias
		if key == "" {
			key = field.Name
		}

		resolver, ok := e.resolvers[opType+"."+field.Name]
		if !ok {
			data[key] = nil
			errs = append(errs, Error{
				Message: fmt.Sprintf("no resolver for field %q", field.Name),
				Path:    []any{key},
			})
			continue
		}

		value, err := resolver(ctx, coerceArgs(field, req.Variables))
		if err != nil {
			data[key] = nil
			errs = append(errs, Error{Message: err.Error(), Path: []any{key}})
			continue
		}
		data[key] = value
	}

	return &Response{Data: data, Errors: errs}
}

// parseQuery parses and validates a query document against the schema.
func (e *Executor) parseQuery(query string) (*ast.QueryDocument, error) {
	doc, err := parser.ParseQuery(&ast.Source{Name: "query", Input: query})
	if err != nil {
		return nil, fmt.Errorf("parse error: %s", err.Error())
	}

	validationErrs := validator.Validate(e.schema.AST(), doc)
	if len(validationErrs) > 0 {
		return nil, fmt.Errorf("validation error: %s", validationErrs[0].Message)
	}

	return doc, nil
}

// coerceArgs resolves a field's argument values, substituting variables and
// converting literals to Go values.
func coerceArgs(field *ast.Field, variables map[string]any) map[string]any {
	args := make(map[string]any, len(field.Arguments))
	for _, arg := range field.Arguments {
		args[arg.Name] = coerceValue(arg.Value, variables)
	}
	return args
}

// coerceValue converts a single AST value to its Go representation.
func coerceValue(v *ast.Value, variables map[string]any) any {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case ast.Variable:
		return variables[v.Raw]
	case ast.IntValue:
		if n, err := strconv.ParseInt(v.Raw, 10, 64); err == nil {
			return n
		}
		return v.Raw
	case ast.FloatValue:
		if f, err := strconv.ParseFloat(v.Raw, 64); err == nil {
			return f
		}
		return v.Raw
	case ast.BooleanValue:
		return v.Raw == "true"
	case ast.NullValue:
		return nil
	case ast.ListValue:
		out := make([]any, 0, len(v.Children))
		for _, child := range v.Children {
			out = append(out, coerceValue(child.Value, variables))
		}
		return out
	case ast.ObjectValue:
		out := make(map[string]any, len(v.Children))
		for _, child := range v.Children {
			out[child.Name] = coerceValue(child.Value, variables)
		}
		return out
	default:
		return v.Raw
	}
}
