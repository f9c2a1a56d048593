// Package auth orchestrates sign-in, sign-up, and sign-out: credential
// validation, the backend exchange, and session storage.
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/legalease/docchat-go/internal/api"
	"github.com/legalease/docchat-go/internal/session"
)

const minPasswordLen = 6

// ValidationError is a credential problem caught before any network call.
// Its message is shown to the user as-is.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Backend is the slice of the API client that auth needs. Narrowed for
// testability.
type Backend interface {
	SignIn(ctx context.Context, email, password string) (*api.AuthResponse, error)
	SignUp(ctx context.Context, email, password, fullName string) (*api.AuthResponse, error)
}

// Service signs users in and out and keeps the session store in sync.
type Service struct {
	backend Backend
	store   *session.Store
}

// NewService creates an auth service.
func NewService(backend Backend, store *session.Store) *Service {
	return &Service{backend: backend, store: store}
}

// SignInCredentials are transient; they are validated, sent, and discarded.
type SignInCredentials struct {
	Email    string
	Password string
}

// SignUpCredentials are transient. ConfirmPassword never leaves the client.
type SignUpCredentials struct {
	Email           string
	Password        string
	ConfirmPassword string
	FullName        string
}

// Validate checks sign-in credentials locally.
func (c SignInCredentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" || c.Password == "" {
		return &ValidationError{Msg: "Email and password are required"}
	}
	return nil
}

// Validate checks sign-up credentials locally. Messages match the original
// sign-up form.
func (c SignUpCredentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" || strings.TrimSpace(c.FullName) == "" || c.Password == "" {
		return &ValidationError{Msg: "All fields are required"}
	}
	if c.Password != c.ConfirmPassword {
		return &ValidationError{Msg: "Passwords do not match"}
	}
	if len(c.Password) < minPasswordLen {
		return &ValidationError{Msg: "Password must be at least 6 characters long"}
	}
	return nil
}

// SignIn validates, exchanges credentials for a token, and stores the
// session. Validation failures never reach the backend.
func (s *Service) SignIn(ctx context.Context, creds SignInCredentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}
	resp, err := s.backend.SignIn(ctx, creds.Email, creds.Password)
	if err != nil {
		return err
	}
	if err := s.store.Set(resp.AccessToken, resp.User); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// SignUp validates, registers the account, and stores the session.
func (s *Service) SignUp(ctx context.Context, creds SignUpCredentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}
	resp, err := s.backend.SignUp(ctx, creds.Email, creds.Password, creds.FullName)
	if err != nil {
		return err
	}
	if err := s.store.Set(resp.AccessToken, resp.User); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// SignOut clears the session. Safe to call when already signed out.
func (s *Service) SignOut() error {
	return s.store.Clear()
}
