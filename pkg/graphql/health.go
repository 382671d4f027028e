package graphql

import (
	"context"
	"net/http"
	"time"

	"github.com/gqlbridge/gqlbridge/pkg/engine"
)

// HealthHandler answers the query layer's health-check sibling route.
func HealthHandler(ctx context.Context, call *engine.Call) *engine.Result {
	return engine.JSONResult(http.StatusOK, map[string]string{
		"status":    "ok",
		"service":   "graphql",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
