package bridge

import (
	"net/http"
	"strings"

	"github.com/gqlbridge/gqlbridge/pkg/engine"
)

// WriteResponse translates a simulated Result onto the primary front-end's
// response writer. The status code and body pass through verbatim. Header
// values that arrive as arrays are flattened into a single string joined
// with ", "; key spelling is preserved as received.
func WriteResponse(w http.ResponseWriter, res *engine.Result) {
	header := w.Header()
	for key, values := range res.Header {
		switch len(values) {
		case 0:
		case 1:
			header[key] = []string{values[0]}
		default:
			header[key] = []string{strings.Join(values, ", ")}
		}
	}

	w.WriteHeader(res.StatusCode)
	if len(res.Body) > 0 {
		_, _ = w.Write(res.Body)
	}
}
