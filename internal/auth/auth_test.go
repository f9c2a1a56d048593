package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/legalease/docchat-go/internal/api"
	"github.com/legalease/docchat-go/internal/models"
	"github.com/legalease/docchat-go/internal/session"
)

// fakeBackend records calls so tests can assert "no network call".
type fakeBackend struct {
	signIns int
	signUps int
	resp    *api.AuthResponse
	err     error
}

func (f *fakeBackend) SignIn(ctx context.Context, email, password string) (*api.AuthResponse, error) {
	f.signIns++
	return f.resp, f.err
}

func (f *fakeBackend) SignUp(ctx context.Context, email, password, fullName string) (*api.AuthResponse, error) {
	f.signUps++
	return f.resp, f.err
}

func testStore(t *testing.T) *session.Store {
	t.Helper()
	s, err := session.Open(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestSignUpValidation(t *testing.T) {
	tests := []struct {
		name    string
		creds   SignUpCredentials
		wantMsg string
	}{
		{
			"short password",
			SignUpCredentials{Email: "a@b.c", FullName: "A", Password: "abc", ConfirmPassword: "abc"},
			"Password must be at least 6 characters long",
		},
		{
			"mismatched confirmation",
			SignUpCredentials{Email: "a@b.c", FullName: "A", Password: "secret1", ConfirmPassword: "secret2"},
			"Passwords do not match",
		},
		{
			"missing fields",
			SignUpCredentials{Email: "", FullName: "", Password: "secret1", ConfirmPassword: "secret1"},
			"All fields are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{}
			svc := NewService(backend, testStore(t))

			err := svc.SignUp(context.Background(), tt.creds)

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Msg != tt.wantMsg {
				t.Errorf("message = %q, want %q", ve.Msg, tt.wantMsg)
			}
			if backend.signUps != 0 {
				t.Errorf("backend called %d times, validation must happen before any network call", backend.signUps)
			}
		})
	}
}

func TestSignUpSuccessStoresSession(t *testing.T) {
	backend := &fakeBackend{resp: &api.AuthResponse{
		AccessToken: "tok-1",
		User:        models.User{Email: "a@b.c", FullName: "Ada"},
	}}
	store := testStore(t)
	svc := NewService(backend, store)

	creds := SignUpCredentials{Email: "a@b.c", FullName: "Ada", Password: "secret1", ConfirmPassword: "secret1"}
	if err := svc.SignUp(context.Background(), creds); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	if got := store.Token(); got != "tok-1" {
		t.Errorf("Token = %q, want tok-1", got)
	}
	if user, ok := store.User(); !ok || user.FullName != "Ada" {
		t.Errorf("User = %+v (ok=%v)", user, ok)
	}
}

func TestSignInValidationSkipsBackend(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewService(backend, testStore(t))

	err := svc.SignIn(context.Background(), SignInCredentials{Email: "", Password: ""})

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if backend.signIns != 0 {
		t.Error("backend must not be called for invalid credentials")
	}
}

func TestSignInBackendFailureLeavesSessionEmpty(t *testing.T) {
	backend := &fakeBackend{err: &api.StatusError{StatusCode: 401, Detail: "Invalid email or password"}}
	store := testStore(t)
	svc := NewService(backend, store)

	err := svc.SignIn(context.Background(), SignInCredentials{Email: "a@b.c", Password: "wrong1"})
	if err == nil {
		t.Fatal("expected error")
	}
	if store.Authenticated() {
		t.Error("failed sign-in must not create a session")
	}
}

func TestSignOutIdempotent(t *testing.T) {
	store := testStore(t)
	svc := NewService(&fakeBackend{}, store)

	if err := svc.SignOut(); err != nil {
		t.Fatalf("SignOut on empty session: %v", err)
	}
	if err := svc.SignOut(); err != nil {
		t.Fatalf("second SignOut: %v", err)
	}
}
