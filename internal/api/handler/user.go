package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/userportal/internal/api/apierr"
	"github.com/mcoot/userportal/internal/api/response"
	"github.com/mcoot/userportal/internal/model"
	"github.com/mcoot/userportal/internal/services/directory"
)

// UserHandler handles registration, login and user lookup endpoints
type UserHandler struct {
	directory *directory.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(dir *directory.Service) *UserHandler {
	return &UserHandler{
		directory: dir,
	}
}

// Register handles POST /api/register/
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.Credential
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	auth, err := h.directory.Register(r.Context(), req)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, auth)
}

// Login handles POST /api/login/
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Email == "" || req.Password == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("email and password are required"))
		return
	}

	auth, err := h.directory.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, auth)
}

// List handles GET /api/users/
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.directory.List(r.Context()))
}

// Get handles GET /api/user/{id}/
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.UserID(mux.Vars(r)["id"])

	user, err := h.directory.Get(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, user)
}
