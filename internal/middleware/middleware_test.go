package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	handler := Logging(debugLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("hi"))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/users/", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"path":"/api/users/"`)
}

func TestRecoveryCallsPanicHandler(t *testing.T) {
	var buf bytes.Buffer
	handler := Recovery(debugLogger(&buf), DefaultPanicHandler)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, buf.String(), "panic recovered")
}

func TestLoggingTransportNeverLogsToken(t *testing.T) {
	var buf bytes.Buffer
	next := RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusUnauthorized, Body: http.NoBody, Request: req}, nil
	})

	req := httptest.NewRequest(http.MethodGet, "http://api.test/api/users/", nil)
	req.Header.Set("Authorization", "Bearer super-secret")

	resp, err := LoggingTransport(debugLogger(&buf), next).RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	assert.NotContains(t, buf.String(), "super-secret")
	assert.Contains(t, buf.String(), `"authenticated":true`)
	assert.Contains(t, buf.String(), `"status":401`)
}

func TestLoggingTransportPassesErrorsThrough(t *testing.T) {
	var buf bytes.Buffer
	boom := errors.New("connection refused")
	next := RoundTripperFunc(func(*http.Request) (*http.Response, error) {
		return nil, boom
	})

	_, err := LoggingTransport(debugLogger(&buf), next).RoundTrip(httptest.NewRequest(http.MethodGet, "http://api.test/", nil))
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), "connection refused")
}
