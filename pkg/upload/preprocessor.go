// Package upload implements the pre-dispatch multipart body hook for the
// query-execution endpoint. It runs in the engine's middleware chain,
// strictly before resolver dispatch, and replaces a multipart/form-data body
// with its parsed structured form. On parse failure it short-circuits the
// call with a 400 so the resolver never runs.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/gqlbridge/gqlbridge/pkg/engine"
	"github.com/gqlbridge/gqlbridge/pkg/httputil"
	"github.com/gqlbridge/gqlbridge/pkg/logging"
)

// uploadErrorMessage is the fixed user-facing message for upload failures.
const uploadErrorMessage = "Error processing file upload"

// Preprocessor inspects calls bound for the configured endpoint and parses
// multipart bodies before the query layer sees them. All other calls pass
// through untouched.
type Preprocessor struct {
	endpoint string
	maxBytes int64
	devMode  bool
	log      *slog.Logger
}

// Config configures a Preprocessor.
type Config struct {
	// Endpoint is the query-execution path the hook is scoped to.
	Endpoint string
	// MaxBytes caps the multipart body size. Zero disables the cap.
	MaxBytes int64
	// DevMode populates the details field of failure responses.
	DevMode bool
	// Logger is the operational logger. Nil means no logging.
	Logger *slog.Logger
}

// NewPreprocessor creates the hook for the given configuration.
func NewPreprocessor(cfg Config) *Preprocessor {
	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Preprocessor{
		endpoint: cfg.Endpoint,
		maxBytes: cfg.MaxBytes,
		devMode:  cfg.DevMode,
		log:      log,
	}
}

// Middleware returns the hook as an engine middleware step.
func (p *Preprocessor) Middleware() engine.Middleware {
	return func(_ context.Context, call *engine.Call) *engine.Result {
		return p.process(call)
	}
}

// process applies the hook to a single call. Returns nil to continue, or a
// terminal 400 Result on parse failure.
func (p *Preprocessor) process(call *engine.Call) *engine.Result {
	if !p.applies(call) {
		return nil
	}

	form, err := p.parse(call)
	if err != nil {
		p.log.Warn("multipart parse failed",
			"path", call.Path(),
			"error", err,
		)
		body := httputil.ErrorBody{Error: uploadErrorMessage}
		if p.devMode {
			body.Details = err.Error()
		}
		return engine.JSONResult(http.StatusBadRequest, body)
	}

	call.Body = engine.MultipartBody(form)
	p.log.Debug("multipart body parsed",
		"path", call.Path(),
		"fields", len(form.Fields),
		"files", len(form.Files),
	)
	return nil
}

// applies reports whether the hook fires for this call: the target equals
// the endpoint (with or without a trailing query string), the method is
// POST, and the declared content type contains multipart/form-data.
func (p *Preprocessor) applies(call *engine.Call) bool {
	if call.Method != http.MethodPost {
		return false
	}
	if call.Target != p.endpoint && !strings.HasPrefix(call.Target, p.endpoint+"?") {
		return false
	}
	return strings.Contains(call.ContentType(), "multipart/form-data")
}

// parse decodes the raw multipart stream into scalar fields and file parts.
func (p *Preprocessor) parse(call *engine.Call) (*engine.FormData, error) {
	if p.maxBytes > 0 && int64(len(call.Raw)) > p.maxBytes {
		return nil, fmt.Errorf("multipart body exceeds %d bytes", p.maxBytes)
	}

	_, params, err := mime.ParseMediaType(call.ContentType())
	if err != nil {
		return nil, fmt.Errorf("invalid content type: %w", err)
	}
	boundary := params["boundary"]
	if boundary == "" {
		return nil, fmt.Errorf("multipart boundary missing")
	}

	form := &engine.FormData{Fields: url.Values{}}
	reader := multipart.NewReader(bytes.NewReader(call.Raw), boundary)

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read multipart part: %w", err)
		}

		data, err := io.ReadAll(part)
		closeErr := part.Close()
		if err != nil {
			return nil, fmt.Errorf("read part %q: %w", part.FormName(), err)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("close part %q: %w", part.FormName(), closeErr)
		}

		if part.FileName() == "" {
			form.Fields.Add(part.FormName(), string(data))
			continue
		}
		form.Files = append(form.Files, &engine.FilePart{
			Field:       part.FormName(),
			Filename:    part.FileName(),
			ContentType: part.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	return form, nil
}
