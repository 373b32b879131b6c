package directory

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/userportal/internal/dependencies/clock"
	"github.com/mcoot/userportal/internal/model"
	"github.com/mcoot/userportal/internal/services/validation"
)

// Config holds configuration for the directory service
type Config struct {
	// SigningKey signs bearer tokens; a random key is generated when empty
	SigningKey []byte
	// TokenTTL is how long an issued token is accepted
	TokenTTL time.Duration
	// BcryptCost is the password hashing cost
	BcryptCost int
}

// DefaultConfig returns default directory configuration
func DefaultConfig() Config {
	return Config{
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.DefaultCost,
	}
}

type record struct {
	id           model.UserID
	user         model.User
	passwordHash []byte
	createdAt    time.Time
}

// Service is the in-memory user directory behind the development API. It
// registers users, checks passwords and issues HS256 bearer tokens.
type Service struct {
	clock     clock.Clock
	validator *validation.Service
	logger    *slog.Logger
	cfg       Config

	mu      sync.RWMutex
	users   map[model.UserID]*record
	byEmail map[string]model.UserID
}

// New creates a new directory service
func New(clk clock.Clock, cfg Config, logger *slog.Logger) (*Service, error) {
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = DefaultConfig().TokenTTL
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = DefaultConfig().BcryptCost
	}
	if len(cfg.SigningKey) == 0 {
		cfg.SigningKey = make([]byte, 32)
		if _, err := rand.Read(cfg.SigningKey); err != nil {
			return nil, fmt.Errorf("failed to generate signing key: %w", err)
		}
	}

	return &Service{
		clock:     clk,
		validator: validation.New(clk),
		logger:    logger,
		cfg:       cfg,
		users:     make(map[model.UserID]*record),
		byEmail:   make(map[string]model.UserID),
	}, nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user and returns a token for it
func (s *Service) Register(ctx context.Context, cred model.Credential) (*model.AuthResult, error) {
	if err := s.validator.ValidateForm(cred); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cred.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	key := emailKey(cred.Email)
	if _, exists := s.byEmail[key]; exists {
		s.mu.Unlock()
		return nil, model.ErrEmailExists
	}

	rec := &record{
		id: model.UserID(uuid.NewString()),
		user: model.User{
			Name:           cred.Name,
			IdentityNumber: cred.IdentityNumber,
			Email:          cred.Email,
			DateOfBirth:    cred.DateOfBirth,
		},
		passwordHash: hash,
		createdAt:    s.clock.Now(),
	}
	s.users[rec.id] = rec
	s.byEmail[key] = rec.id
	s.mu.Unlock()

	s.logger.Info("user registered", slog.String("user_id", string(rec.id)))
	return s.authResult(rec.id)
}

// Login checks the password and returns a fresh token
func (s *Service) Login(ctx context.Context, email, password string) (*model.AuthResult, error) {
	s.mu.RLock()
	id, ok := s.byEmail[emailKey(email)]
	var rec *record
	if ok {
		rec = s.users[id]
	}
	s.mu.RUnlock()

	if rec == nil {
		return nil, model.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(rec.passwordHash, []byte(password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return s.authResult(rec.id)
}

// List returns every user in registration order
func (s *Service) List(ctx context.Context) []model.User {
	s.mu.RLock()
	records := make([]*record, 0, len(s.users))
	for _, rec := range s.users {
		records = append(records, rec)
	}
	s.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		if records[i].createdAt.Equal(records[j].createdAt) {
			return records[i].id < records[j].id
		}
		return records[i].createdAt.Before(records[j].createdAt)
	})

	users := make([]model.User, 0, len(records))
	for _, rec := range records {
		users = append(users, rec.user)
	}
	return users
}

// Get returns one user
func (s *Service) Get(ctx context.Context, id model.UserID) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return rec.user, nil
}

func (s *Service) authResult(id model.UserID) (*model.AuthResult, error) {
	token, err := s.IssueToken(id)
	if err != nil {
		return nil, err
	}
	return &model.AuthResult{Token: token, UserID: id}, nil
}

// IssueToken signs a bearer token for the user
func (s *Service) IssueToken(id model.UserID) (string, error) {
	now := s.clock.Now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   string(id),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.SigningKey)
}

// ValidateToken returns the user a token was issued to. Expired, forged and
// orphaned tokens all return model.ErrInvalidToken.
func (s *Service) ValidateToken(token string) (model.UserID, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.cfg.SigningKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			s.logger.Debug("expired token presented")
		}
		return "", model.ErrInvalidToken
	}

	id := model.UserID(claims.Subject)
	s.mu.RLock()
	_, ok := s.users[id]
	s.mu.RUnlock()
	if !ok {
		return "", model.ErrInvalidToken
	}
	return id, nil
}
