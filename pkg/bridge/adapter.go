package bridge

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/gqlbridge/gqlbridge/pkg/engine"
)

// bodyMethods are the methods that conventionally carry a payload. For any
// other method the adapter leaves the payload absent.
var bodyMethods = map[string]bool{
	http.MethodPost:  true,
	http.MethodPut:   true,
	http.MethodPatch: true,
}

// AdaptRequest converts an inbound request into the engine's Call form.
//
// The method is uppercased, the target keeps the original path and query
// string without re-encoding, and every header is copied verbatim. The body
// is materialized by declared content type:
//
//   - no body, or a method outside POST/PUT/PATCH: absent
//   - application/json: parsed JSON value; an unparsable body degrades to an
//     empty mapping rather than failing the request
//   - application/x-www-form-urlencoded: decoded key/value mapping
//   - anything else: the raw body text
//
// The raw bytes are retained on the Call so the upload preprocessor can
// re-parse multipart payloads from the original stream.
func AdaptRequest(r *http.Request) (*engine.Call, error) {
	call := &engine.Call{
		Method: strings.ToUpper(r.Method),
		Target: r.URL.RequestURI(),
		Header: r.Header.Clone(),
		Body:   engine.AbsentBody(),
	}
	if call.Header == nil {
		call.Header = make(http.Header)
	}

	if !bodyMethods[call.Method] || r.Body == nil {
		return call, nil
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}
	if len(raw) == 0 {
		return call, nil
	}

	call.Raw = raw
	call.Body = materializeBody(r.Header.Get("Content-Type"), raw)
	return call, nil
}

// materializeBody tags the payload according to the declared content type.
func materializeBody(contentType string, raw []byte) engine.Body {
	mediaType := contentType
	if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
		mediaType = parsed
	}

	switch mediaType {
	case "application/json":
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			// Malformed JSON degrades to an empty mapping instead of a 400.
			return engine.JSONBody(map[string]any{})
		}
		return engine.JSONBody(v)

	case "application/x-www-form-urlencoded":
		form, err := url.ParseQuery(string(raw))
		if err != nil {
			return engine.FormBody(url.Values{})
		}
		return engine.FormBody(form)

	default:
		return engine.TextBody(string(raw))
	}
}
