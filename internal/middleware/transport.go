package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// RoundTripperFunc adapts a function to http.RoundTripper
type RoundTripperFunc func(*http.Request) (*http.Response, error)

// RoundTrip calls f(req)
func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// LoggingTransport logs outbound HTTP requests. Headers are never logged so
// the bearer token stays out of the logs. A nil next uses
// http.DefaultTransport.
func LoggingTransport(logger *slog.Logger, next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		start := time.Now()

		resp, err := next.RoundTrip(req)

		attrs := []any{
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.Bool("authenticated", req.Header.Get("Authorization") != ""),
			slog.Duration("duration", time.Since(start)),
		}
		if err != nil {
			logger.Debug("http request failed", append(attrs, slog.String("error", err.Error()))...)
			return nil, err
		}

		logger.Debug("http request", append(attrs, slog.Int("status", resp.StatusCode))...)
		return resp, nil
	})
}
