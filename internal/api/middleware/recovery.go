package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/userportal/internal/api/apierr"
	"github.com/mcoot/userportal/internal/middleware"
)

// Recovery creates panic recovery middleware answering with a JSON error body
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
