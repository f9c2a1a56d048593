package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/legalease/docchat-go/internal/api"
	"github.com/legalease/docchat-go/internal/models"
)

// fakeDocs supplies a fixed document binding.
type fakeDocs struct {
	doc   models.DocumentBinding
	bound bool
}

func (f fakeDocs) Document() (models.DocumentBinding, bool) { return f.doc, f.bound }

// fakeChatter answers from a queue, optionally blocking until released.
type fakeChatter struct {
	answers []string
	err     error
	calls   int
	block   chan struct{} // when non-nil, Chat waits for a receive
	entered chan struct{} // when non-nil, signalled on call entry
}

func (f *fakeChatter) Chat(ctx context.Context, documentID, question, model string) (*api.ChatResponse, error) {
	f.calls++
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	answer := f.answers[0]
	if len(f.answers) > 1 {
		f.answers = f.answers[1:]
	}
	return &api.ChatResponse{Response: answer, DocumentID: documentID}, nil
}

func boundDocs() fakeDocs {
	return fakeDocs{doc: models.DocumentBinding{DocumentID: "doc-1", Filename: "lease.pdf"}, bound: true}
}

func TestSendAppendsBothMessages(t *testing.T) {
	backend := &fakeChatter{answers: []string{"It is a lease for..."}}
	c := NewController(backend, boundDocs(), "llama3.2")

	reply, err := c.Send(context.Background(), "Summarize this document")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply.Content != "It is a lease for..." {
		t.Errorf("reply = %q", reply.Content)
	}

	msgs := c.Messages()
	if len(msgs) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(msgs))
	}
	if msgs[0].Role != models.RoleUser || msgs[0].Content != "Summarize this document" {
		t.Errorf("messages[0] = %+v", msgs[0])
	}
	if msgs[1].Role != models.RoleAssistant || msgs[1].Content != "It is a lease for..." {
		t.Errorf("messages[1] = %+v", msgs[1])
	}
	if c.Pending() {
		t.Error("controller should be idle after a completed send")
	}
}

func TestSendOrderingAcrossExchanges(t *testing.T) {
	backend := &fakeChatter{answers: []string{"a1", "a2", "a3"}}
	c := NewController(backend, boundDocs(), "llama3.2")

	for i := 1; i <= 3; i++ {
		if _, err := c.Send(context.Background(), fmt.Sprintf("q%d", i)); err != nil {
			t.Fatalf("Send q%d: %v", i, err)
		}
	}

	var want []string
	for i := 1; i <= 3; i++ {
		want = append(want, fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
	}
	msgs := c.Messages()
	if len(msgs) != len(want) {
		t.Fatalf("len(messages) = %d, want %d", len(msgs), len(want))
	}
	for i, m := range msgs {
		if m.Content != want[i] {
			t.Errorf("messages[%d] = %q, want %q", i, m.Content, want[i])
		}
	}
	// One assistant message per completed send.
	var assistants int
	for _, m := range msgs {
		if m.Role == models.RoleAssistant {
			assistants++
		}
	}
	if assistants != 3 {
		t.Errorf("assistant messages = %d, want 3", assistants)
	}
}

func TestSendRefusedWithoutDocument(t *testing.T) {
	backend := &fakeChatter{answers: []string{"never"}}
	c := NewController(backend, fakeDocs{}, "llama3.2")

	_, err := c.Send(context.Background(), "hello")
	if !errors.Is(err, ErrNoDocument) {
		t.Fatalf("err = %v, want ErrNoDocument", err)
	}
	if len(c.Messages()) != 0 {
		t.Error("refused send must not change state")
	}
	if backend.calls != 0 {
		t.Error("refused send must not reach the backend")
	}
}

func TestSendRefusedWhenEmpty(t *testing.T) {
	backend := &fakeChatter{answers: []string{"never"}}
	c := NewController(backend, boundDocs(), "llama3.2")

	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := c.Send(context.Background(), text); !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("Send(%q) err = %v, want ErrEmptyMessage", text, err)
		}
	}
	if len(c.Messages()) != 0 || backend.calls != 0 {
		t.Error("empty sends must be no-ops")
	}
}

func TestSendRejectedWhilePending(t *testing.T) {
	backend := &fakeChatter{
		answers: []string{"slow answer"},
		block:   make(chan struct{}),
		entered: make(chan struct{}),
	}
	c := NewController(backend, boundDocs(), "llama3.2")

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Send(context.Background(), "first")
	}()
	<-backend.entered

	if !c.Pending() {
		t.Fatal("expected pending while request in flight")
	}
	_, err := c.Send(context.Background(), "second")
	if !errors.Is(err, ErrPending) {
		t.Fatalf("err = %v, want ErrPending", err)
	}

	close(backend.block)
	<-done

	// Only the in-flight exchange made it into the history.
	msgs := c.Messages()
	if len(msgs) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(msgs))
	}
	if msgs[0].Content != "first" || msgs[1].Content != "slow answer" {
		t.Errorf("messages = %+v", msgs)
	}
}

func TestSendFailureAppendsApology(t *testing.T) {
	backend := &fakeChatter{err: &api.StatusError{StatusCode: 500, Detail: "Request failed"}}
	c := NewController(backend, boundDocs(), "llama3.2")

	reply, err := c.Send(context.Background(), "q")
	if err == nil {
		t.Fatal("expected error")
	}
	if reply.Content != apologyMessage {
		t.Errorf("reply = %q, want apology", reply.Content)
	}

	msgs := c.Messages()
	if len(msgs) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(msgs))
	}
	// Optimistic user append survives the failure.
	if msgs[0].Role != models.RoleUser || msgs[0].Content != "q" {
		t.Errorf("messages[0] = %+v", msgs[0])
	}
	if msgs[1].Content != apologyMessage {
		t.Errorf("messages[1] = %q", msgs[1].Content)
	}
	if c.Pending() {
		t.Error("controller must return to idle after failure")
	}
	if c.LastError() == "" {
		t.Error("expected lastErr to be recorded")
	}

	// The conversation remains usable.
	backend.err = nil
	backend.answers = []string{"recovered"}
	if _, err := c.Send(context.Background(), "again"); err != nil {
		t.Fatalf("Send after failure: %v", err)
	}
	if got := len(c.Messages()); got != 4 {
		t.Errorf("len(messages) = %d, want 4", got)
	}
}

func TestSessionExpiredStillAppendsApology(t *testing.T) {
	// APIClient already cleared the session and will redirect; the
	// controller just ends the exchange in failure.
	backend := &fakeChatter{err: api.ErrSessionExpired}
	c := NewController(backend, boundDocs(), "llama3.2")

	_, err := c.Send(context.Background(), "q")
	if !errors.Is(err, api.ErrSessionExpired) {
		t.Fatalf("err = %v, want ErrSessionExpired", err)
	}
	msgs := c.Messages()
	if len(msgs) != 2 || msgs[1].Content != apologyMessage {
		t.Errorf("messages = %+v", msgs)
	}
}

func TestSetModel(t *testing.T) {
	var gotModel string
	backend := &fakeChatter{answers: []string{"ok"}}
	c := NewController(backend, boundDocs(), "llama3.2")
	c.SetModel("mistral")

	wrapped := chatFunc(func(ctx context.Context, docID, q, model string) (*api.ChatResponse, error) {
		gotModel = model
		return backend.Chat(ctx, docID, q, model)
	})
	c.backend = wrapped

	if _, err := c.Send(context.Background(), "q"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotModel != "mistral" {
		t.Errorf("model = %q, want mistral", gotModel)
	}
}

type chatFunc func(ctx context.Context, documentID, question, model string) (*api.ChatResponse, error)

func (f chatFunc) Chat(ctx context.Context, documentID, question, model string) (*api.ChatResponse, error) {
	return f(ctx, documentID, question, model)
}
