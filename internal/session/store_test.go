package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/legalease/docchat-go/internal/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestOpenMissingFile(t *testing.T) {
	s := testStore(t)
	if s.Authenticated() {
		t.Error("fresh store should not be authenticated")
	}
	if _, ok := s.User(); ok {
		t.Error("fresh store should have no user")
	}
	if _, ok := s.Document(); ok {
		t.Error("fresh store should have no document binding")
	}
}

func TestSetThenReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	user := models.User{Email: "a@b.c", FullName: "Ada B"}
	if err := s.Set("tok-123", user); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !s.Authenticated() {
		t.Error("expected authenticated after Set")
	}

	// Round-trip: a new store in a "new client lifetime" sees the same pair.
	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := s2.Token(); got != "tok-123" {
		t.Errorf("Token = %q, want %q", got, "tok-123")
	}
	got, ok := s2.User()
	if !ok || got != user {
		t.Errorf("User = %+v (ok=%v), want %+v", got, ok, user)
	}
}

func TestClearIdempotent(t *testing.T) {
	s := testStore(t)
	if err := s.Set("tok", models.User{Email: "x@y.z"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := s.Clear(); err != nil {
			t.Fatalf("Clear #%d: %v", i+1, err)
		}
		if s.Authenticated() {
			t.Errorf("authenticated after Clear #%d", i+1)
		}
		if _, ok := s.User(); ok {
			t.Errorf("user present after Clear #%d", i+1)
		}
	}
}

func TestClearKeepsDocumentBinding(t *testing.T) {
	s := testStore(t)
	if err := s.Set("tok", models.User{Email: "x@y.z"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.BindDocument("doc-1", "lease.pdf"); err != nil {
		t.Fatalf("BindDocument: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	doc, ok := s.Document()
	if !ok {
		t.Fatal("document binding lost on Clear")
	}
	if doc.DocumentID != "doc-1" || doc.Filename != "lease.pdf" {
		t.Errorf("Document = %+v", doc)
	}
}

func TestBindDocumentOverwrites(t *testing.T) {
	s := testStore(t)
	if err := s.BindDocument("doc-1", "a.pdf"); err != nil {
		t.Fatalf("BindDocument: %v", err)
	}
	if err := s.BindDocument("doc-2", "b.txt"); err != nil {
		t.Fatalf("BindDocument: %v", err)
	}

	doc, _ := s.Document()
	if doc.DocumentID != "doc-2" || doc.Filename != "b.txt" {
		t.Errorf("Document = %+v, want doc-2/b.txt", doc)
	}
}

func TestSubscribeNotifiedOnSetAndClear(t *testing.T) {
	s := testStore(t)

	var calls int
	s.Subscribe(func() { calls++ })

	if err := s.Set("tok", models.User{Email: "x@y.z"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls after Set = %d, want 1", calls)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls after Clear = %d, want 2", calls)
	}
}

func TestSubscriberMayReadStore(t *testing.T) {
	s := testStore(t)

	var sawAuth bool
	s.Subscribe(func() { sawAuth = s.Authenticated() })

	if err := s.Set("tok", models.User{Email: "x@y.z"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !sawAuth {
		t.Error("subscriber observed stale state")
	}
}

func TestOpenRejectsHalfWrittenPair(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	// Token without user must read back as logged out.
	if err := os.WriteFile(path, []byte(`{"token":"orphan"}`), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.Authenticated() {
		t.Error("token without user should not count as authenticated")
	}
}
