package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/userportal/internal/api/handler"
	"github.com/mcoot/userportal/internal/api/middleware"
	commonmw "github.com/mcoot/userportal/internal/middleware"
	"github.com/mcoot/userportal/internal/services/directory"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger    *slog.Logger
	Directory *directory.Service
}

// NewRouter creates the development users API router
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	userHandler := handler.NewUserHandler(cfg.Directory)

	authMiddleware := middleware.Auth(cfg.Directory)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(commonmw.Logging(cfg.Logger))

	// Public routes
	api.HandleFunc("/register/", userHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/login/", userHandler.Login).Methods(http.MethodPost)

	// Protected routes
	protected := api.NewRoute().Subrouter()
	protected.Use(authMiddleware)
	protected.HandleFunc("/users/", userHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/user/{id}/", userHandler.Get).Methods(http.MethodGet)

	return r
}
