package slogx_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/identity/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestFromContextFallsBackToDefault(t *testing.T) {
	require.NotNil(t, slogx.FromContext(context.Background()))
}

func TestHTTPMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slogx.New(slogx.Config{Service: "identity", Env: "test", Level: "debug", Output: &buf})

	var sawLogger bool
	h := slogx.HTTPMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawLogger = slogx.FromContext(r.Context()) != logger
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/livez", nil)
	req.Header.Set(slogx.RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.True(t, sawLogger)
	require.Equal(t, "req-123", rec.Header().Get(slogx.RequestIDHeader))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "http_request", line["msg"])
	require.Equal(t, "req-123", line["req_id"])
	require.EqualValues(t, http.StatusTeapot, line["status"])
	require.Equal(t, "identity", line["service"])
}

func TestHTTPMiddlewareGeneratesRequestID(t *testing.T) {
	h := slogx.HTTPMiddleware(slogx.Discard())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Len(t, rec.Header().Get(slogx.RequestIDHeader), 26)
}
