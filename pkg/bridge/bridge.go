package bridge

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gqlbridge/gqlbridge/pkg/engine"
	"github.com/gqlbridge/gqlbridge/pkg/httputil"
	"github.com/gqlbridge/gqlbridge/pkg/logging"
)

// Handler funnels primary front-end requests through the engine's Inject
// facility: adapt the request, run the simulated call, translate the result
// back. It implements http.Handler so the primary router can mount it on any
// route family.
type Handler struct {
	engine  *engine.Engine
	log     *slog.Logger
	devMode bool
}

// NewHandler creates a bridge handler. In development mode, bridge-level
// failure responses carry the underlying error message in the details field.
func NewHandler(eng *engine.Engine, log *slog.Logger, devMode bool) *Handler {
	if log == nil {
		log = logging.Nop()
	}
	return &Handler{engine: eng, log: log, devMode: devMode}
}

// ServeHTTP implements http.Handler. Any failure while adapting, executing,
// or translating becomes a 500 with a well-formed JSON error body; nothing
// propagates past the bridge.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.log.Error("bridge panic",
				"method", r.Method,
				"path", r.URL.Path,
				"panic", fmt.Sprint(rec),
			)
			h.writeFailure(w, r, fmt.Sprint(rec))
		}
	}()

	call, err := AdaptRequest(r)
	if err != nil {
		h.log.Error("request adaptation failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		h.writeFailure(w, r, err.Error())
		return
	}

	res := h.engine.Inject(r.Context(), call)

	h.log.Debug("bridged request",
		"method", call.Method,
		"target", call.Target,
		"status", res.StatusCode,
	)

	WriteResponse(w, res)
}

// writeFailure emits the bridge-originated 500 shape. Details are only
// populated in development mode.
func (h *Handler) writeFailure(w http.ResponseWriter, r *http.Request, details string) {
	body := httputil.ErrorBody{
		Error:  "internal server error",
		Path:   r.URL.Path,
		Method: r.Method,
	}
	if h.devMode {
		body.Details = details
	}
	httputil.WriteError(w, http.StatusInternalServerError, body)
}
