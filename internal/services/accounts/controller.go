package accounts

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/mcoot/userportal/internal/client"
	"github.com/mcoot/userportal/internal/dependencies/navigation"
	"github.com/mcoot/userportal/internal/model"
	"github.com/mcoot/userportal/internal/services/session"
	"github.com/mcoot/userportal/internal/services/validation"
	"github.com/mcoot/userportal/internal/storage"
)

// API paths
const (
	PathRegister = "/api/register/"
	PathLogin    = "/api/login/"
	PathUsers    = "/api/users/"
)

// PathUser returns the user-detail path for id
func PathUser(id string) string {
	return "/api/user/" + url.PathEscape(id) + "/"
}

// Page messages
const (
	MsgRegistrationFailed = "Registration failed"
	MsgLoginFailed        = "Login failed"
	MsgNoUsers            = "No users found"
	MsgNoUserData         = "No user data found"
)

// Controller runs the registration, login, user list and profile pages
type Controller struct {
	validator *validation.Service
	store     storage.SessionStore
	doer      session.Doer
	nav       navigation.Navigator
	logger    *slog.Logger
}

// NewController creates a new accounts controller
func NewController(validator *validation.Service, store storage.SessionStore, doer session.Doer, nav navigation.Navigator, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Controller{
		validator: validator,
		store:     store,
		doer:      doer,
		nav:       nav,
		logger:    logger,
	}
}

// newGuard starts a page lifecycle
func (c *Controller) newGuard() *session.Guard {
	return session.NewGuard(c.store, c.doer, c.nav, c.logger)
}

// Register validates the credential and, only if it is valid, submits it.
// A successful registration stores the returned token and sends the user to
// the login page.
func (c *Controller) Register(ctx context.Context, cred model.Credential) View[model.AuthResult] {
	if err := c.validator.ValidateForm(cred); err != nil {
		return failed[model.AuthResult](err.Error())
	}

	resp, err := c.doer.Do(ctx, http.MethodPost, PathRegister, "", cred)
	result := session.Classify(resp, err)
	if !result.OK() {
		c.logger.Info("registration rejected",
			slog.String("outcome", result.Outcome.String()),
			slog.Int("status", result.StatusCode),
		)
		return failed[model.AuthResult](submitFailure(result, MsgRegistrationFailed))
	}

	auth, err := session.DecodeOne[model.AuthResult](result)
	if err != nil || auth.Token == "" {
		return failed[model.AuthResult](MsgRegistrationFailed)
	}

	guard := c.newGuard()
	if err := guard.Establish(ctx, auth.Token, string(auth.UserID)); err != nil {
		c.logger.Error("failed to store session", slog.String("error", err.Error()))
		return failed[model.AuthResult](MsgRegistrationFailed)
	}

	c.navigate(ctx, navigation.RouteLogin)
	return content(auth)
}

// Login exchanges email and password for a session and sends the user home
func (c *Controller) Login(ctx context.Context, email, password string) View[model.AuthResult] {
	if strings.TrimSpace(email) == "" {
		return failed[model.AuthResult](validation.MsgEmailRequired)
	}
	if password == "" {
		return failed[model.AuthResult](validation.MsgPasswordRequired)
	}

	req := model.LoginRequest{Email: email, Password: password}
	resp, err := c.doer.Do(ctx, http.MethodPost, PathLogin, "", req)
	result := session.Classify(resp, err)
	if !result.OK() {
		return failed[model.AuthResult](submitFailure(result, MsgLoginFailed))
	}

	auth, err := session.DecodeOne[model.AuthResult](result)
	if err != nil || auth.Token == "" {
		return failed[model.AuthResult](MsgLoginFailed)
	}

	if err := c.newGuard().Establish(ctx, auth.Token, string(auth.UserID)); err != nil {
		c.logger.Error("failed to store session", slog.String("error", err.Error()))
		return failed[model.AuthResult](MsgLoginFailed)
	}

	c.navigate(ctx, navigation.RouteHome)
	return content(auth)
}

// ListUsers fetches the user list behind the session guard
func (c *Controller) ListUsers(ctx context.Context) View[[]model.User] {
	guard := c.newGuard()

	result := guard.AuthorizedRequest(ctx, http.MethodGet, PathUsers, nil)
	if view, done := unresolved[[]model.User](result); done {
		return view
	}

	users, err := session.DecodeList[model.User](result)
	if err != nil {
		c.logger.Warn("bad user list payload", slog.String("error", err.Error()))
		return failed[[]model.User](session.MsgUnknown)
	}
	if len(users) == 0 {
		return empty[[]model.User](MsgNoUsers)
	}
	return content(users)
}

// Profile fetches the signed-in user's record. It needs both a token and a
// stored user id.
func (c *Controller) Profile(ctx context.Context) View[model.User] {
	guard := c.newGuard()

	sess, ok := guard.RequireUserOrRedirect(ctx)
	if !ok {
		return redirected[model.User](navigation.RouteLogin)
	}

	result := guard.AuthorizedRequest(ctx, http.MethodGet, PathUser(sess.UserID), nil)
	if view, done := unresolved[model.User](result); done {
		return view
	}

	if isEmptyPayload(result.Body) {
		return empty[model.User](MsgNoUserData)
	}

	user, err := session.DecodeOne[model.User](result)
	if err != nil {
		c.logger.Warn("bad profile payload", slog.String("error", err.Error()))
		return failed[model.User](session.MsgUnknown)
	}
	return content(user)
}

// Logout clears the session and sends the user to the login page
func (c *Controller) Logout(ctx context.Context) error {
	if err := c.newGuard().Clear(ctx); err != nil {
		return err
	}
	c.navigate(ctx, navigation.RouteLogin)
	return nil
}

// SessionStatus describes the stored session without contacting the server
type SessionStatus struct {
	SignedIn bool   `json:"signed_in"`
	UserID   string `json:"user_id,omitempty"`
}

// Status reports whether a session is stored
func (c *Controller) Status(ctx context.Context) SessionStatus {
	sess, ok := c.newGuard().Acquire(ctx)
	return SessionStatus{SignedIn: ok, UserID: sess.UserID}
}

// unresolved maps every non-OK result to its final view
func unresolved[T any](result session.Result) (View[T], bool) {
	switch {
	case result.OK():
		return loading[T](), false
	case result.Redirected():
		return redirected[T](navigation.RouteLogin), true
	default:
		return failed[T](result.Message()), true
	}
}

// submitFailure picks the message for a failed unauthenticated submission:
// the server's own message when it sent one, otherwise fallback
func submitFailure(result session.Result, fallback string) string {
	switch result.Outcome {
	case session.OutcomeNetworkError:
		return session.MsgConnectivity
	case session.OutcomeUnauthorized, session.OutcomeHTTPError:
		if msg := client.ErrorMessage(result.Body); msg != "" {
			return msg
		}
		return fallback
	default:
		return fallback
	}
}

func isEmptyPayload(body []byte) bool {
	trimmed := strings.TrimSpace(string(body))
	return trimmed == "" || trimmed == "null" || trimmed == "{}"
}

func (c *Controller) navigate(ctx context.Context, route string) {
	if c.nav == nil {
		return
	}
	if err := c.nav.Navigate(ctx, route); err != nil {
		c.logger.Warn("navigation failed", slog.String("route", route), slog.String("error", err.Error()))
	}
}
