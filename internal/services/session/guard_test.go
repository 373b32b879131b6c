package session

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/userportal/internal/client"
	"github.com/mcoot/userportal/internal/dependencies/mocks"
	"github.com/mcoot/userportal/internal/dependencies/navigation"
	"github.com/mcoot/userportal/internal/storage"
	"github.com/mcoot/userportal/internal/storage/memory"
	"github.com/mcoot/userportal/internal/testutil"
)

type call struct {
	method string
	path   string
	token  string
	body   any
}

// fakeDoer answers every request with a fixed response or error
type fakeDoer struct {
	calls []call
	resp  *client.Response
	err   error
}

func (d *fakeDoer) Do(_ context.Context, method, path, token string, body any) (*client.Response, error) {
	d.calls = append(d.calls, call{method: method, path: path, token: token, body: body})
	return d.resp, d.err
}

// failingStore errors on every read
type failingStore struct {
	*memory.Storage
}

func (f failingStore) Get(context.Context, string) (string, error) {
	return "", errors.New("disk on fire")
}

type GuardSuite struct {
	suite.Suite
	store *memory.Storage
	doer  *fakeDoer
	nav   *mocks.RecordingNavigator
	guard *Guard
	ctx   context.Context
}

func TestGuardSuite(t *testing.T) {
	suite.Run(t, new(GuardSuite))
}

func (s *GuardSuite) SetupTest() {
	s.store = memory.New()
	s.doer = &fakeDoer{resp: &client.Response{StatusCode: http.StatusOK, Body: []byte(`[]`)}}
	s.nav = mocks.NewRecordingNavigator()
	s.guard = NewGuard(s.store, s.doer, s.nav, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *GuardSuite) storeSession(token, userID string) {
	s.Require().NoError(s.store.Set(s.ctx, storage.KeyToken, token))
	if userID != "" {
		s.Require().NoError(s.store.Set(s.ctx, storage.KeyUserID, userID))
	}
}

// Acquire

func (s *GuardSuite) TestAcquireAbsent() {
	_, ok := s.guard.Acquire(s.ctx)
	s.False(ok)
	s.Empty(s.nav.Routes, "acquire never navigates")
}

func (s *GuardSuite) TestAcquirePresent() {
	s.storeSession("abc", "42")

	sess, ok := s.guard.Acquire(s.ctx)
	s.True(ok)
	s.Equal(Session{Token: "abc", UserID: "42"}, sess)
}

func (s *GuardSuite) TestAcquireStripsQuotes() {
	s.storeSession(`"abc"`, "")

	sess, ok := s.guard.Acquire(s.ctx)
	s.True(ok)
	s.Equal("abc", sess.Token)
}

func (s *GuardSuite) TestAcquireStoreFailureIsAbsent() {
	guard := NewGuard(failingStore{memory.New()}, s.doer, s.nav, testutil.NopLogger())

	_, ok := guard.Acquire(s.ctx)
	s.False(ok)
}

// RequireOrRedirect

func (s *GuardSuite) TestRequireWithoutTokenRedirects() {
	_, ok := s.guard.RequireOrRedirect(s.ctx)

	s.False(ok)
	s.Equal([]string{navigation.RouteLogin}, s.nav.Routes)
	s.Equal(StateUnauthenticated, s.guard.State())
	s.True(s.guard.Terminal())
	s.Empty(s.doer.calls)
}

func (s *GuardSuite) TestRequireWithTokenChecks() {
	s.storeSession("abc", "")

	sess, ok := s.guard.RequireOrRedirect(s.ctx)

	s.True(ok)
	s.Equal("abc", sess.Token)
	s.Equal(StateChecking, s.guard.State())
	s.Empty(s.nav.Routes)
}

func (s *GuardSuite) TestRequireUserWithoutUserIDRedirects() {
	s.storeSession("abc", "")

	_, ok := s.guard.RequireUserOrRedirect(s.ctx)

	s.False(ok)
	s.Equal(navigation.RouteLogin, s.nav.Last())
}

func (s *GuardSuite) TestNavigationFailureStillBlocks() {
	s.nav.Err = errors.New("no browser")

	_, ok := s.guard.RequireOrRedirect(s.ctx)
	s.False(ok)
	s.True(s.guard.Terminal())
}

// AuthorizedRequest

func (s *GuardSuite) TestAuthorizedRequestWithoutTokenNeverSends() {
	result := s.guard.AuthorizedRequest(s.ctx, http.MethodGet, "/api/users/", nil)

	s.Equal(OutcomeAuthRequired, result.Outcome)
	s.True(result.Redirected())
	s.Empty(s.doer.calls)
	s.Equal([]string{navigation.RouteLogin}, s.nav.Routes)
}

func (s *GuardSuite) TestAuthorizedRequestAttachesNormalizedToken() {
	s.storeSession(`"abc"`, "")

	result := s.guard.AuthorizedRequest(s.ctx, http.MethodGet, "/api/users/", nil)

	s.True(result.OK())
	s.Require().Len(s.doer.calls, 1)
	s.Equal("abc", s.doer.calls[0].token)
	s.Equal("/api/users/", s.doer.calls[0].path)
	s.Equal(StateAuthenticated, s.guard.State())
}

func (s *GuardSuite) TestUnauthorizedClearsSessionAndRedirects() {
	s.storeSession("abc", "42")
	s.doer.resp = &client.Response{StatusCode: http.StatusUnauthorized, Body: []byte(`{"message":"expired"}`)}

	result := s.guard.AuthorizedRequest(s.ctx, http.MethodGet, "/api/users/", nil)

	s.Equal(OutcomeUnauthorized, result.Outcome)
	s.NotEqual(OutcomeHTTPError, result.Outcome)
	s.Equal(StateRejected, s.guard.State())
	s.True(s.guard.Terminal())
	s.Equal([]string{navigation.RouteLogin}, s.nav.Routes)
	s.Equal(0, s.store.Len())
}

func (s *GuardSuite) TestRejectedGuardSendsNothingMore() {
	s.storeSession("abc", "")
	s.doer.resp = &client.Response{StatusCode: http.StatusUnauthorized}
	_ = s.guard.AuthorizedRequest(s.ctx, http.MethodGet, "/api/users/", nil)

	result := s.guard.AuthorizedRequest(s.ctx, http.MethodGet, "/api/users/", nil)

	s.Equal(OutcomeAuthRequired, result.Outcome)
	s.ErrorIs(result.Err, ErrTerminal)
	s.Len(s.doer.calls, 1)
	s.Len(s.nav.Routes, 1)
}

func (s *GuardSuite) TestHTTPErrorKeepsSession() {
	s.storeSession("abc", "42")
	s.doer.resp = &client.Response{StatusCode: http.StatusInternalServerError}

	result := s.guard.AuthorizedRequest(s.ctx, http.MethodGet, "/api/users/", nil)

	s.Equal(OutcomeHTTPError, result.Outcome)
	s.Equal(http.StatusInternalServerError, result.StatusCode)
	s.Contains(result.Message(), "500")
	s.Equal(StateChecking, s.guard.State())
	s.False(s.guard.Terminal())
	s.Empty(s.nav.Routes)
	s.Equal(2, s.store.Len())
}

func (s *GuardSuite) TestNetworkErrorIsDistinct() {
	s.storeSession("abc", "")
	s.doer.resp = nil
	s.doer.err = &client.TransportError{Method: "GET", URL: "http://api", Err: errors.New("connection refused")}

	result := s.guard.AuthorizedRequest(s.ctx, http.MethodGet, "/api/users/", nil)

	s.Equal(OutcomeNetworkError, result.Outcome)
	s.Equal(MsgConnectivity, result.Message())
	s.Empty(s.nav.Routes)
}

func (s *GuardSuite) TestUnknownError() {
	s.storeSession("abc", "")
	s.doer.resp = nil
	s.doer.err = errors.New("failed to marshal request")

	result := s.guard.AuthorizedRequest(s.ctx, http.MethodPost, "/api/users/", nil)

	s.Equal(OutcomeUnknown, result.Outcome)
	s.Equal(MsgUnknown, result.Message())
}

func (s *GuardSuite) TestRequireAfterSuccessReusesSession() {
	s.storeSession("abc", "42")
	_ = s.guard.AuthorizedRequest(s.ctx, http.MethodGet, "/api/users/", nil)

	// A later store change is not observed within the same page
	_ = s.store.Set(s.ctx, storage.KeyToken, "other")
	sess, ok := s.guard.RequireUserOrRedirect(s.ctx)

	s.True(ok)
	s.Equal("abc", sess.Token)
}

// Establish / Clear

func (s *GuardSuite) TestEstablishStoresSession() {
	s.Require().NoError(s.guard.Establish(s.ctx, "abc", "42"))

	token, _ := s.store.Get(s.ctx, storage.KeyToken)
	userID, _ := s.store.Get(s.ctx, storage.KeyUserID)
	s.Equal("abc", token)
	s.Equal("42", userID)
}

func (s *GuardSuite) TestEstablishReplacesPreviousSession() {
	s.storeSession("old", "7")

	s.Require().NoError(s.guard.Establish(s.ctx, "new", ""))

	token, _ := s.store.Get(s.ctx, storage.KeyToken)
	s.Equal("new", token)
	_, err := s.store.Get(s.ctx, storage.KeyUserID)
	s.ErrorIs(err, storage.ErrKeyNotFound)
}

func (s *GuardSuite) TestEstablishRequiresToken() {
	s.Error(s.guard.Establish(s.ctx, "", "42"))
	s.Equal(0, s.store.Len())
}

func (s *GuardSuite) TestClear() {
	s.storeSession("abc", "42")

	s.Require().NoError(s.guard.Clear(s.ctx))

	s.Equal(0, s.store.Len())
	_, ok := s.guard.Acquire(s.ctx)
	s.False(ok)
}

func (s *GuardSuite) TestNilLoggerAndNavigatorAreAllowed() {
	guard := NewGuard(s.store, s.doer, nil, nil)

	_, ok := guard.RequireOrRedirect(s.ctx)
	s.False(ok)
}
