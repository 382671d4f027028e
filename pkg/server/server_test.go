package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gqlbridge/gqlbridge/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(config.Default(), nil)
	require.NoError(t, err)
	return s
}

func doRequest(t *testing.T, s *Server, r *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, r)
	return rr
}

func TestServer_GraphQLHelloQuery(t *testing.T) {
	s := newTestServer(t)

	r := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":"{ hello }"}`))
	r.Header.Set("Content-Type", "application/json")
	rr := doRequest(t, s, r)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Hello from GraphQL!", resp.Data["hello"])
}

func TestServer_GraphQLViaGET(t *testing.T) {
	s := newTestServer(t)

	r := httptest.NewRequest(http.MethodGet, "/graphql?query=%7B%20hello%20%7D", nil)
	rr := doRequest(t, s, r)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Hello from GraphQL!")
}

func TestServer_GraphQLHealth(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/graphql/health", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "graphql", body["service"])
	_, err := time.Parse(time.RFC3339, body["timestamp"])
	assert.NoError(t, err)
}

func TestServer_UnknownPathBridges404(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/unknown-path", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "not found", body["error"])
	assert.Equal(t, "/unknown-path", body["path"])
	assert.Equal(t, "GET", body["method"])
}

func TestServer_DemoRoutesCarryCacheControl(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/fastify", "/fastify/users", "/fastify/health"} {
		rr := doRequest(t, s, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rr.Code, "path %s", path)
		assert.Equal(t, "public, max-age=60", rr.Header().Get("Cache-Control"), "path %s", path)
	}
}

func TestServer_DemoUsersPayload(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/fastify/users", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Users []map[string]any `json:"users"`
		Total int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Total)
	assert.Len(t, body.Users, 3)
}

func TestServer_WildcardPassthrough(t *testing.T) {
	s := newTestServer(t)

	r := httptest.NewRequest(http.MethodDelete, "/fastify/anything/deep", nil)
	rr := doRequest(t, s, r)

	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "bridged passthrough", body["message"])
	assert.Equal(t, "DELETE", body["method"])
	assert.Equal(t, "/fastify/anything/deep", body["path"])
}

func TestServer_IndexListsRoutes(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Service string              `json:"service"`
		Routes  []map[string]string `json:"routes"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "gqlbridge", body.Service)

	paths := make([]string, 0, len(body.Routes))
	for _, rt := range body.Routes {
		paths = append(paths, rt["path"])
	}
	assert.Contains(t, paths, "/graphql")
	assert.Contains(t, paths, "/fastify/users")
	assert.Contains(t, paths, "/")
}

func TestServer_MultipartUploadReachesResolver(t *testing.T) {
	s := newTestServer(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("operations", `{"query":"{ hello }"}`))
	fw, err := w.CreateFormFile("file", "data.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("attachment"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r := httptest.NewRequest(http.MethodPost, "/graphql", &buf)
	r.Header.Set("Content-Type", w.FormDataContentType())
	rr := doRequest(t, s, r)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Hello from GraphQL!")
}

func TestServer_MultipartUploadFailureReturns400(t *testing.T) {
	s := newTestServer(t)

	r := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader("not multipart at all"))
	r.Header.Set("Content-Type", "multipart/form-data; boundary=frontier")
	rr := doRequest(t, s, r)

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Error processing file upload", body["error"])
	assert.NotEmpty(t, body["details"], "development mode includes details")
}

func TestServer_MalformedJSONQueryIsLenient(t *testing.T) {
	s := newTestServer(t)

	r := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{broken json`))
	r.Header.Set("Content-Type", "application/json")
	rr := doRequest(t, s, r)

	// The adapter degrades the body to an empty mapping; the query layer
	// reports a missing query, but the request itself never fails.
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "query is required")
}

func TestServer_RequestIDAssigned(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/fastify/health", nil))
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
}

func TestServer_RequestIDPreserved(t *testing.T) {
	s := newTestServer(t)

	r := httptest.NewRequest(http.MethodGet, "/fastify/health", nil)
	r.Header.Set("X-Request-Id", "caller-chosen-id")
	rr := doRequest(t, s, r)
	assert.Equal(t, "caller-chosen-id", rr.Header().Get("X-Request-Id"))
}

func TestServer_ProductionModeHidesUploadDetails(t *testing.T) {
	cfg := config.Default()
	cfg.Env = config.EnvProduction
	s, err := New(cfg, nil)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader("junk"))
	r.Header.Set("Content-Type", "multipart/form-data; boundary=frontier")
	rr := doRequest(t, s, r)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	_, hasDetails := body["details"]
	assert.False(t, hasDetails)
}
