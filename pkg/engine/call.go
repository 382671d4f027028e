package engine

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// BodyKind tags the variants of the Body union.
type BodyKind int

// Body variants. The adapter tags the body once; downstream consumers
// switch exhaustively on Kind.
const (
	// BodyAbsent means the call carries no payload.
	BodyAbsent BodyKind = iota
	// BodyJSON is a parsed application/json value.
	BodyJSON
	// BodyForm is a decoded application/x-www-form-urlencoded mapping.
	BodyForm
	// BodyText is the raw body text of any other content type.
	BodyText
	// BodyMultipart is a parsed multipart/form-data payload.
	BodyMultipart
)

// Body is the tagged payload union carried by a Call. Exactly one of the
// value fields is meaningful, selected by Kind.
type Body struct {
	Kind      BodyKind
	JSON      any
	Form      url.Values
	Text      string
	Multipart *FormData
}

// AbsentBody returns the empty payload.
func AbsentBody() Body { return Body{Kind: BodyAbsent} }

// JSONBody wraps a parsed JSON value.
func JSONBody(v any) Body { return Body{Kind: BodyJSON, JSON: v} }

// FormBody wraps a decoded URL-encoded form.
func FormBody(v url.Values) Body { return Body{Kind: BodyForm, Form: v} }

// TextBody wraps a raw text payload.
func TextBody(s string) Body { return Body{Kind: BodyText, Text: s} }

// MultipartBody wraps a parsed multipart form.
func MultipartBody(fd *FormData) Body { return Body{Kind: BodyMultipart, Multipart: fd} }

// FormData is the structured representation of a parsed multipart body:
// scalar form fields plus uploaded file parts.
type FormData struct {
	Fields url.Values
	Files  []*FilePart
}

// FilePart is a single uploaded file from a multipart body.
type FilePart struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// Call is the normalized form of a request handed to Inject: method, target
// (path plus original query string), the verbatim header mapping, the tagged
// body, and the raw body bytes retained for re-parsing (multipart).
type Call struct {
	Method string
	Target string
	Header http.Header
	Body   Body
	Raw    []byte
}

// Path returns the target with any query string stripped.
func (c *Call) Path() string {
	if i := strings.IndexByte(c.Target, '?'); i >= 0 {
		return c.Target[:i]
	}
	return c.Target
}

// Query returns the decoded query parameters of the target.
func (c *Call) Query() url.Values {
	i := strings.IndexByte(c.Target, '?')
	if i < 0 {
		return url.Values{}
	}
	v, err := url.ParseQuery(c.Target[i+1:])
	if err != nil {
		return url.Values{}
	}
	return v
}

// ContentType returns the declared Content-Type header, empty if none.
func (c *Call) ContentType() string {
	if c.Header == nil {
		return ""
	}
	return c.Header.Get("Content-Type")
}

// Result is the simulated response produced by Inject: status code, header
// mapping (values are naturally single- or multi-valued), and payload bytes.
type Result struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// NewResult creates an empty Result with the given status.
func NewResult(status int) *Result {
	return &Result{StatusCode: status, Header: make(http.Header)}
}

// JSONResult creates a Result with a JSON-encoded payload and the
// application/json content type.
func JSONResult(status int, v any) *Result {
	res := NewResult(status)
	res.Header.Set("Content-Type", "application/json")
	b, err := json.Marshal(v)
	if err != nil {
		res.StatusCode = http.StatusInternalServerError
		res.Body = []byte(`{"error":"internal server error"}`)
		return res
	}
	res.Body = b
	return res
}
