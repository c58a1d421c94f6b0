package inttest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cuff-app/cuff/internal/handler"
	"github.com/cuff-app/cuff/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// SetupHTTPServer serves the given routes without a base path through the same engine, middleware
// included, as cmd/serve. The returned client talks to that server.
func SetupHTTPServer(t *testing.T, routes ...func(r gin.IRouter)) *HTTPClient {
	t.Helper()

	require.NoError(t, handler.RegisterValidation(), "failed to register validation")
	gin.SetMode(gin.TestMode)

	engine := server.GetEngine(slog.New(slog.NewTextHandler(io.Discard, nil)), "", routes...)
	srv := httptest.NewServer(engine.Handler())
	client := srv.Client()
	t.Cleanup(func() {
		client.CloseIdleConnections()
		srv.Close()
	})

	return &HTTPClient{Client: client, ServerURL: srv.URL}
}

// HTTPClient sends JSON requests and fails the test on any unexpected response.
type HTTPClient struct {
	Client    *http.Client
	ServerURL string
}

// GetJSON expects 200 and decodes the response into out.
func (hc *HTTPClient) GetJSON(t *testing.T, path string, out any) {
	t.Helper()
	hc.decode(t, http.MethodGet, path, hc.Expect(t, http.MethodGet, path, nil, http.StatusOK), out)
}

// PostJSON expects 201 and decodes the response into out.
func (hc *HTTPClient) PostJSON(t *testing.T, path string, body, out any) {
	t.Helper()
	hc.decode(t, http.MethodPost, path, hc.Expect(t, http.MethodPost, path, body, http.StatusCreated), out)
}

// PutJSON expects 200 and decodes the response into out.
func (hc *HTTPClient) PutJSON(t *testing.T, path string, body, out any) {
	t.Helper()
	hc.decode(t, http.MethodPut, path, hc.Expect(t, http.MethodPut, path, body, http.StatusOK), out)
}

// Delete expects 204.
func (hc *HTTPClient) Delete(t *testing.T, path string) {
	t.Helper()
	hc.Expect(t, http.MethodDelete, path, nil, http.StatusNoContent)
}

// Expect sends a request and requires the response to have the given status. body is sent as is
// if it's an io.Reader, string or []byte and encoded as JSON otherwise. The response body is
// returned.
func (hc *HTTPClient) Expect(t *testing.T, method, path string, body any, status int) []byte {
	t.Helper()

	req, err := http.NewRequest(method, hc.ServerURL+path, requestBody(t, body))
	require.NoError(t, err, "%s %s: failed to create request", method, path)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := hc.Client.Do(req)
	require.NoError(t, err, "%s %s: request failed", method, path)
	defer func() {
		require.NoError(t, res.Body.Close(), "%s %s: failed to close response body", method, path)
	}()

	data, err := io.ReadAll(res.Body)
	require.NoError(t, err, "%s %s: failed to read response body", method, path)
	require.Equal(t, status, res.StatusCode, "%s %s: unexpected status, body %q", method, path, data)
	return data
}

func (hc *HTTPClient) decode(t *testing.T, method, path string, data []byte, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, out), "%s %s: failed to decode %q", method, path, data)
}

func requestBody(t *testing.T, body any) io.Reader {
	t.Helper()

	switch b := body.(type) {
	case nil:
		return nil
	case io.Reader:
		return b
	case string:
		return bytes.NewBufferString(b)
	case []byte:
		return bytes.NewReader(b)
	}

	data, err := json.Marshal(body)
	require.NoError(t, err, fmt.Sprintf("failed to encode %T", body))
	return bytes.NewReader(data)
}
