package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mcoot/userportal/internal/client"
	"github.com/mcoot/userportal/internal/dependencies/clock"
	"github.com/mcoot/userportal/internal/dependencies/navigation"
	"github.com/mcoot/userportal/internal/middleware"
	"github.com/mcoot/userportal/internal/services/accounts"
	"github.com/mcoot/userportal/internal/services/validation"
	"github.com/mcoot/userportal/internal/storage"
	filestorage "github.com/mcoot/userportal/internal/storage/file"
	"github.com/mcoot/userportal/internal/storage/memory"
	redisstorage "github.com/mcoot/userportal/internal/storage/redis"
)

// Session store type constants
const (
	StoreTypeMemory = "memory"
	StoreTypeFile   = "file"
	StoreTypeRedis  = "redis"
)

// DefaultServerURL is the API the client talks to when none is configured
const DefaultServerURL = "http://localhost:8000"

// App contains all wired application components
type App struct {
	// Session storage
	Store storage.SessionStore

	// External dependencies
	Clock     clock.Clock
	Client    *client.Client
	Navigator navigation.Navigator

	// Services
	Validator *validation.Service
	Accounts  *accounts.Controller

	closer io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// ServerURL is the base URL of the users API
	// If empty, defaults to DefaultServerURL
	ServerURL string
	// StoreType selects the session store ("memory", "file" or "redis")
	// If empty, defaults to "memory"
	StoreType string
	// StorePath is the session file for the file store
	// If empty, defaults to file.DefaultPath()
	StorePath string
	// RedisConfig holds Redis connection settings (required if StoreType is "redis")
	RedisConfig *redisstorage.Config
	// Timeout bounds each HTTP request
	// If zero, defaults to client.DefaultTimeout
	Timeout time.Duration
	// Transport is the HTTP transport under the logging round tripper (optional)
	Transport http.RoundTripper
	// Navigator receives page redirects (optional)
	// If nil, redirects are dropped
	Navigator navigation.Navigator
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, closer, err := newStore(cfg)
	if err != nil {
		return nil, err
	}

	serverURL := cfg.ServerURL
	if serverURL == "" {
		serverURL = DefaultServerURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = client.DefaultTimeout
	}

	httpClient := client.New(serverURL,
		client.WithTimeout(timeout),
		client.WithTransport(middleware.LoggingTransport(logger, cfg.Transport)),
	)

	app := newWithDependencies(store, clock.New(), httpClient, cfg.Navigator, logger)
	app.closer = closer
	return app, nil
}

// newStore creates the session store selected by cfg
func newStore(cfg Config) (storage.SessionStore, io.Closer, error) {
	storeType := cfg.StoreType
	if storeType == "" {
		storeType = StoreTypeMemory
	}

	switch storeType {
	case StoreTypeMemory:
		return memory.New(), nil, nil
	case StoreTypeFile:
		path := cfg.StorePath
		if path == "" {
			path = filestorage.DefaultPath()
		}
		return filestorage.New(path), nil, nil
	case StoreTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, nil, errors.New("RedisConfig required when StoreType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, nil, err
		}
		return redisStore, redisStore, nil
	default:
		return nil, nil, fmt.Errorf("invalid StoreType %q: must be 'memory', 'file' or 'redis'", storeType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.SessionStore, clk clock.Clock, httpClient *client.Client, nav navigation.Navigator, logger *slog.Logger) *App {
	validator := validation.New(clk)
	accountsController := accounts.NewController(validator, store, httpClient, nav, logger)

	return &App{
		Store:     store,
		Clock:     clk,
		Client:    httpClient,
		Navigator: nav,
		Validator: validator,
		Accounts:  accountsController,
	}
}

// Close releases the session store's connections, if any
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
