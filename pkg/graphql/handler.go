package graphql

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gqlbridge/gqlbridge/pkg/engine"
)

// Handler serves GraphQL requests as an engine route handler. It accepts
// GET (query in the query string), POST (body tagged by the request
// adapter), and OPTIONS (preflight, answered empty; CORS headers belong to
// the primary front-end).
type Handler struct {
	executor *Executor
}

// NewHandler creates a GraphQL engine handler.
func NewHandler(executor *Executor) *Handler {
	return &Handler{executor: executor}
}

// Handle implements engine.HandlerFunc.
func (h *Handler) Handle(ctx context.Context, call *engine.Call) *engine.Result {
	switch call.Method {
	case http.MethodOptions:
		return engine.NewResult(http.StatusOK)
	case http.MethodGet:
		return h.execute(ctx, h.parseGetRequest(call))
	case http.MethodPost:
		req, errRes := h.parsePostRequest(call)
		if errRes != nil {
			return errRes
		}
		return h.execute(ctx, req)
	default:
		return engine.JSONResult(http.StatusMethodNotAllowed, &Response{
			Errors: []Error{{Message: "method not allowed"}},
		})
	}
}

func (h *Handler) execute(ctx context.Context, req *Request) *engine.Result {
	return engine.JSONResult(http.StatusOK, h.executor.Execute(ctx, req))
}

// parseGetRequest builds a Request from the call's query string.
func (h *Handler) parseGetRequest(call *engine.Call) *Request {
	q := call.Query()
	req := &Request{
		Query:         q.Get("query"),
		OperationName: q.Get("operationName"),
	}
	if varsStr := q.Get("variables"); varsStr != "" {
		var variables map[string]any
		if err := json.Unmarshal([]byte(varsStr), &variables); err == nil {
			req.Variables = variables
		}
	}
	return req
}

// parsePostRequest builds a Request from the tagged body union. The switch
// is exhaustive over every body kind the adapter can produce.
func (h *Handler) parsePostRequest(call *engine.Call) (*Request, *engine.Result) {
	switch call.Body.Kind {
	case engine.BodyJSON:
		// The standard {query, operationName, variables} envelope.
		var req Request
		b, err := json.Marshal(call.Body.JSON)
		if err == nil {
			err = json.Unmarshal(b, &req)
		}
		if err != nil {
			return nil, h.badRequest("invalid JSON request body")
		}
		return &req, nil

	case engine.BodyText:
		// application/graphql and friends: the body is the query document.
		return &Request{Query: call.Body.Text}, nil

	case engine.BodyForm:
		return &Request{
			Query:         call.Body.Form.Get("query"),
			OperationName: call.Body.Form.Get("operationName"),
		}, nil

	case engine.BodyMultipart:
		// GraphQL multipart request convention: the operations field holds
		// the JSON envelope. The upload preprocessor already validated and
		// parsed the stream.
		ops := call.Body.Multipart.Fields.Get("operations")
		if ops == "" {
			return nil, h.badRequest("multipart request missing operations field")
		}
		var req Request
		if err := json.Unmarshal([]byte(ops), &req); err != nil {
			return nil, h.badRequest("invalid operations JSON")
		}
		return &req, nil

	case engine.BodyAbsent:
		return nil, h.badRequest("empty request body")

	default:
		return nil, h.badRequest("unsupported request body")
	}
}

func (h *Handler) badRequest(msg string) *engine.Result {
	return engine.JSONResult(http.StatusBadRequest, &Response{
		Errors: []Error{{Message: msg}},
	})
}
