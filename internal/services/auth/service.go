package auth

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/mcoot/fnstats/internal/model"
	"github.com/mcoot/fnstats/internal/storage"
)

// Errors
var (
	ErrInvalidAPIKey      = errors.New("invalid or missing API key")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAPIKeyNotSet       = errors.New("API key is not configured")
)

// Service guards the data endpoints with a static API key and checks player
// passwords against stored bcrypt digests. The two mechanisms are independent:
// a successful login does not grant API access.
type Service struct {
	storage storage.Storage
	apiKey  string
}

// Config holds configuration for the auth service
type Config struct {
	// APIKey is the shared secret clients send in the x-api-key header
	APIKey string
}

// New creates a new auth Service
func New(storage storage.Storage, cfg Config) (*Service, error) {
	if cfg.APIKey == "" {
		return nil, ErrAPIKeyNotSet
	}
	return &Service{
		storage: storage,
		apiKey:  cfg.APIKey,
	}, nil
}

// VerifyAPIKey checks a request-supplied key against the configured secret
func (s *Service) VerifyAPIKey(key string) error {
	if key == "" {
		return ErrInvalidAPIKey
	}
	if subtle.ConstantTimeCompare([]byte(key), []byte(s.apiKey)) != 1 {
		return ErrInvalidAPIKey
	}
	return nil
}

// Login confirms the password for a player. It returns model.ErrPlayerNotFound
// for unknown ids and ErrInvalidCredentials for a wrong password or a player
// with no password set. No session is created.
func (s *Service) Login(ctx context.Context, playerID, password string) error {
	hash, err := s.storage.GetPasswordHash(ctx, model.PlayerID(playerID))
	if err != nil {
		return err
	}
	if hash == nil || !VerifyPassword(password, *hash) {
		return ErrInvalidCredentials
	}
	return nil
}

// SetPassword hashes password and stores it for an existing player
func (s *Service) SetPassword(ctx context.Context, playerID, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	return s.storage.SetPasswordHash(ctx, model.PlayerID(playerID), hash)
}
