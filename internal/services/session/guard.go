package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/userportal/internal/client"
	"github.com/mcoot/userportal/internal/dependencies/navigation"
	"github.com/mcoot/userportal/internal/storage"
)

// Doer sends one HTTP request to the API
type Doer interface {
	Do(ctx context.Context, method, path, token string, body any) (*client.Response, error)
}

var _ Doer = (*client.Client)(nil)

// Guard owns the stored session for one page lifecycle. It gates the page on
// the presence of a token, attaches the token to requests and unwinds the
// session when the server rejects it.
//
// A Guard is not safe for concurrent use; a page issues at most one guarded
// request at a time.
type Guard struct {
	store  storage.SessionStore
	doer   Doer
	nav    navigation.Navigator
	logger *slog.Logger

	state    State
	terminal bool
	session  Session
}

// NewGuard creates a guard in StateUnauthenticated
func NewGuard(store storage.SessionStore, doer Doer, nav navigation.Navigator, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Guard{
		store:  store,
		doer:   doer,
		nav:    nav,
		logger: logger,
		state:  StateUnauthenticated,
	}
}

// State returns the current lifecycle state
func (g *Guard) State() State {
	return g.state
}

// Terminal reports whether the guard has navigated away. A terminal guard
// sends no further requests.
func (g *Guard) Terminal() bool {
	return g.terminal
}

// Acquire reads the stored session. Storage failures are logged and treated
// as no session.
func (g *Guard) Acquire(ctx context.Context) (Session, bool) {
	token, err := g.store.Get(ctx, storage.KeyToken)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			g.logger.Warn("failed to read session token", slog.String("error", err.Error()))
		}
		return Session{}, false
	}

	token = NormalizeToken(token)
	if token == "" {
		return Session{}, false
	}

	userID, err := g.store.Get(ctx, storage.KeyUserID)
	if err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
		g.logger.Warn("failed to read session user id", slog.String("error", err.Error()))
	}

	return Session{Token: token, UserID: userID}, true
}

// RequireOrRedirect returns the stored session, or navigates to the login
// route and returns false when there is none. The caller must not issue its
// guarded request after a false return.
func (g *Guard) RequireOrRedirect(ctx context.Context) (Session, bool) {
	return g.require(ctx, false)
}

// RequireUserOrRedirect is RequireOrRedirect for pages that also need the
// stored user id
func (g *Guard) RequireUserOrRedirect(ctx context.Context) (Session, bool) {
	return g.require(ctx, true)
}

func (g *Guard) require(ctx context.Context, needUser bool) (Session, bool) {
	if g.terminal {
		return Session{}, false
	}
	if g.state == StateChecking || g.state == StateAuthenticated {
		if DecideAccess(g.session, needUser) == DecisionProceed {
			return g.session, true
		}
	}

	g.state = StateChecking
	sess, _ := g.Acquire(ctx)

	if DecideAccess(sess, needUser) == DecisionRedirect {
		g.logger.Debug("no usable session, redirecting", slog.Bool("need_user", needUser))
		g.state = StateUnauthenticated
		g.terminal = true
		g.navigate(ctx, navigation.RouteLogin)
		return Session{}, false
	}

	g.session = sess
	return sess, true
}

// AuthorizedRequest sends a request carrying the stored bearer token. On 401
// the session is cleared and the guard navigates to the login route before
// returning OutcomeUnauthorized.
func (g *Guard) AuthorizedRequest(ctx context.Context, method, path string, body any) Result {
	if g.terminal {
		return Result{Outcome: OutcomeAuthRequired, Err: ErrTerminal}
	}

	sess, ok := g.RequireOrRedirect(ctx)
	if !ok {
		return Result{Outcome: OutcomeAuthRequired}
	}

	resp, err := g.doer.Do(ctx, method, path, sess.Token, body)
	result := Classify(resp, err)

	g.logger.Debug("guarded request",
		slog.String("method", method),
		slog.String("path", path),
		slog.String("outcome", result.Outcome.String()),
		slog.Int("status", result.StatusCode),
	)

	if DecideAfterResponse(result) == DecisionRedirect {
		g.reject(ctx)
		return result
	}
	if result.OK() {
		g.state = StateAuthenticated
	}
	return result
}

func (g *Guard) reject(ctx context.Context) {
	if err := g.Clear(ctx); err != nil {
		g.logger.Warn("failed to clear rejected session", slog.String("error", err.Error()))
	}
	g.state = StateRejected
	g.terminal = true
	g.navigate(ctx, navigation.RouteLogin)
}

func (g *Guard) navigate(ctx context.Context, route string) {
	if g.nav == nil {
		return
	}
	if err := g.nav.Navigate(ctx, route); err != nil {
		g.logger.Warn("navigation failed", slog.String("route", route), slog.String("error", err.Error()))
	}
}

// Establish stores a new session, replacing any previous one. An empty
// userID removes a stale stored user id.
func (g *Guard) Establish(ctx context.Context, token, userID string) error {
	if token == "" {
		return errors.New("cannot establish a session without a token")
	}

	if err := g.store.Set(ctx, storage.KeyToken, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	if userID == "" {
		if err := g.store.Delete(ctx, storage.KeyUserID); err != nil {
			return fmt.Errorf("failed to remove stale user id: %w", err)
		}
	} else if err := g.store.Set(ctx, storage.KeyUserID, userID); err != nil {
		return fmt.Errorf("failed to save user id: %w", err)
	}

	g.session = Session{Token: NormalizeToken(token), UserID: userID}
	return nil
}

// Clear removes the stored session
func (g *Guard) Clear(ctx context.Context) error {
	g.session = Session{}
	if err := g.store.Delete(ctx, storage.SessionKeys...); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
