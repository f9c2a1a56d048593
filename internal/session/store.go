// Package session owns the client's persisted state: the authentication
// token and user profile, and the active document binding. It is the single
// source of truth for "is this client logged in".
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/legalease/docchat-go/internal/models"
)

// state is the persisted shape. Key names match the original browser
// client's localStorage keys so the file is self-describing.
type state struct {
	Token               string       `json:"token,omitempty"`
	User                *models.User `json:"user,omitempty"`
	CurrentDocumentID   string       `json:"currentDocumentId,omitempty"`
	CurrentDocumentName string       `json:"currentDocumentName,omitempty"`
}

// Store holds the session and document binding, backed by a JSON state file.
//
// Token and user are always set and cleared together; the store never holds
// one without the other. The document binding survives Clear.
type Store struct {
	path string

	mu    sync.Mutex
	state state
	subs  []func()
}

// Open reads any persisted state from path. A missing file yields an empty
// store; no network call is made.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	if err := json.Unmarshal(data, &s.state); err != nil {
		return nil, fmt.Errorf("parse state file %s: %w", path, err)
	}
	// A half-written pair is treated as logged out rather than surfaced.
	if s.state.Token == "" || s.state.User == nil {
		s.state.Token = ""
		s.state.User = nil
	}
	return s, nil
}

// Set stores the token and user pair atomically and notifies subscribers.
func (s *Store) Set(token string, user models.User) error {
	s.mu.Lock()
	s.state.Token = token
	s.state.User = &user
	err := s.persistLocked()
	s.mu.Unlock()

	s.notify()
	return err
}

// Clear removes the token and user pair. Idempotent; the document binding
// is left in place. Subscribers are notified even when already empty.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.state.Token = ""
	s.state.User = nil
	err := s.persistLocked()
	s.mu.Unlock()

	s.notify()
	return err
}

// Token returns the bearer credential, or "" when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

// User returns the stored profile, if any.
func (s *Store) User() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.User == nil {
		return models.User{}, false
	}
	return *s.state.User, true
}

// Authenticated reports whether a token is present.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// BindDocument records the uploaded document the chat is grounded in,
// overwriting any prior binding.
func (s *Store) BindDocument(id, filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentDocumentID = id
	s.state.CurrentDocumentName = filename
	return s.persistLocked()
}

// Document returns the active binding, if any.
func (s *Store) Document() (models.DocumentBinding, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.CurrentDocumentID == "" {
		return models.DocumentBinding{}, false
	}
	return models.DocumentBinding{
		DocumentID: s.state.CurrentDocumentID,
		Filename:   s.state.CurrentDocumentName,
	}, true
}

// Subscribe registers fn to run after every session change (Set or Clear).
// Guards re-evaluate through this rather than polling.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// notify runs subscribers outside the lock so they may read the store.
func (s *Store) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// persistLocked writes the state file via temp-file rename so a crash never
// leaves a token without its user.
func (s *Store) persistLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
