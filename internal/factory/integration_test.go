package factory

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/userportal/internal/api"
	"github.com/mcoot/userportal/internal/dependencies/mocks"
	"github.com/mcoot/userportal/internal/dependencies/navigation"
	"github.com/mcoot/userportal/internal/model"
	"github.com/mcoot/userportal/internal/services/accounts"
	"github.com/mcoot/userportal/internal/services/directory"
	"github.com/mcoot/userportal/internal/storage"
	"github.com/mcoot/userportal/internal/testutil"
)

type IntegrationSuite struct {
	suite.Suite
	server      *httptest.Server
	serverClock *mocks.MockClock
	app         *TestApp
	ctx         context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.serverClock = mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	cfg := directory.DefaultConfig()
	cfg.BcryptCost = bcrypt.MinCost

	dir, err := directory.New(s.serverClock, cfg, testutil.NopLogger())
	s.Require().NoError(err)

	s.server = httptest.NewServer(api.NewRouter(api.RouterConfig{
		Logger:    testutil.NopLogger(),
		Directory: dir,
	}))
	s.app = NewTestApp(s.server.URL)
	s.ctx = context.Background()
}

func (s *IntegrationSuite) TearDownTest() {
	s.server.Close()
}

func (s *IntegrationSuite) credential(name, email string) model.Credential {
	return model.Credential{
		Name:           name,
		Email:          email,
		Password:       "Passw0rdX",
		IdentityNumber: "4111111111111111",
		DateOfBirth:    "1985-07-04",
	}
}

// Test: register, list, profile and logout against the development API
func (s *IntegrationSuite) TestCompleteAccountFlow() {
	// Step 1: Register stores the returned session and goes to login
	view := s.app.Accounts.Register(s.ctx, s.credential("Ada Lovelace", "ada@example.com"))
	s.Require().Equal(accounts.StatusContent, view.Status, view.Error)
	s.Equal(navigation.RouteLogin, s.app.MockNavigator.Last())

	token, err := s.app.Store.Get(s.ctx, storage.KeyToken)
	s.Require().NoError(err)
	s.Equal(view.Data.Token, token)

	// Step 2: Log in again, which also stores the user id
	login := s.app.Accounts.Login(s.ctx, "ada@example.com", "Passw0rdX")
	s.Require().Equal(accounts.StatusContent, login.Status, login.Error)
	s.Equal(navigation.RouteHome, s.app.MockNavigator.Last())

	userID, err := s.app.Store.Get(s.ctx, storage.KeyUserID)
	s.Require().NoError(err)
	s.Equal(string(view.Data.UserID), userID)

	// Step 3: The user list contains the new user
	users := s.app.Accounts.ListUsers(s.ctx)
	s.Require().Equal(accounts.StatusContent, users.Status, users.Error)
	s.Require().Len(users.Data, 1)
	s.Equal("Ada Lovelace", users.Data[0].Name)

	// Step 4: The profile page shows the signed-in user
	profile := s.app.Accounts.Profile(s.ctx)
	s.Require().Equal(accounts.StatusContent, profile.Status, profile.Error)
	s.Equal("ada@example.com", profile.Data.Email)
	s.Equal("4111111111111111", profile.Data.IdentityNumber)

	// Step 5: Logout clears the session
	s.Require().NoError(s.app.Accounts.Logout(s.ctx))
	s.Equal(0, s.app.MemoryStore.Len())
	s.False(s.app.Accounts.Status(s.ctx).SignedIn)

	// Step 6: Guarded pages now redirect without a request
	users = s.app.Accounts.ListUsers(s.ctx)
	s.Equal(accounts.StatusRedirected, users.Status)
	s.Equal(navigation.RouteLogin, s.app.MockNavigator.Last())
}

// Test: validation failures never reach the server
func (s *IntegrationSuite) TestInvalidRegistrationIsLocal() {
	cred := s.credential("Ada", "ada@example.com")
	cred.Password = "password"

	view := s.app.Accounts.Register(s.ctx, cred)
	s.Equal(accounts.StatusError, view.Status)
	s.Equal("Password must contain at least one uppercase letter, one lowercase letter, and one number", view.Error)
	s.Empty(s.app.MockNavigator.Routes)

	// Nothing was registered, so the same email is still free
	view = s.app.Accounts.Register(s.ctx, s.credential("Ada", "ada@example.com"))
	s.Equal(accounts.StatusContent, view.Status, view.Error)
}

// Test: the server's error message is shown for a rejected registration
func (s *IntegrationSuite) TestDuplicateRegistrationShowsServerMessage() {
	first := s.app.Accounts.Register(s.ctx, s.credential("Ada", "ada@example.com"))
	s.Require().Equal(accounts.StatusContent, first.Status)

	second := s.app.Accounts.Register(s.ctx, s.credential("Ada Again", "ada@example.com"))
	s.Equal(accounts.StatusError, second.Status)
	s.Equal("Email already registered", second.Error)
}

// Test: an expired token clears the session and sends the user to login
func (s *IntegrationSuite) TestExpiredSessionIsCleared() {
	view := s.app.Accounts.Register(s.ctx, s.credential("Ada", "ada@example.com"))
	s.Require().Equal(accounts.StatusContent, view.Status)

	s.serverClock.Advance(2 * time.Hour)

	users := s.app.Accounts.ListUsers(s.ctx)
	s.Equal(accounts.StatusRedirected, users.Status)
	s.Equal(navigation.RouteLogin, s.app.MockNavigator.Last())
	s.Equal(0, s.app.MemoryStore.Len())
}

// Test: a stopped server is a connectivity failure, not an HTTP failure
func (s *IntegrationSuite) TestServerDownIsConnectivityFailure() {
	view := s.app.Accounts.Register(s.ctx, s.credential("Ada", "ada@example.com"))
	s.Require().Equal(accounts.StatusContent, view.Status)

	s.server.Close()

	users := s.app.Accounts.ListUsers(s.ctx)
	s.Equal(accounts.StatusError, users.Status)
	s.Equal("Unable to reach the server. Please check your connection and try again.", users.Error)

	// The session survives a connectivity failure
	s.True(s.app.Accounts.Status(s.ctx).SignedIn)
}

// Test: the factory wires each store type
func (s *IntegrationSuite) TestNewStoreTypes() {
	app, err := New(Config{StoreType: StoreTypeFile, StorePath: s.T().TempDir() + "/session.json"})
	s.Require().NoError(err)
	s.NoError(app.Close())

	_, err = New(Config{StoreType: StoreTypeRedis})
	s.Error(err)

	_, err = New(Config{StoreType: "sqlite"})
	s.Error(err)
}
