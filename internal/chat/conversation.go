// Package chat implements the two conversation controllers: message history,
// in-flight state, and the request/response cycle against the backend.
package chat

import (
	"errors"
	"strings"
	"sync"

	"github.com/legalease/docchat-go/internal/models"
)

// apologyMessage is appended in place of an answer when an exchange fails.
// The failure is never fatal; the conversation stays usable.
const apologyMessage = "Sorry, I encountered an error. Please try again."

var (
	// ErrPending rejects a send while another is in flight. Callers disable
	// the input affordance rather than queueing.
	ErrPending = errors.New("a message is already pending")

	// ErrEmptyMessage rejects whitespace-only input.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrNoDocument rejects document-grounded sends before any upload.
	ErrNoDocument = errors.New("no document uploaded")
)

// conversation is the state shared by both controllers: an append-only,
// insertion-ordered message sequence and the single-request-in-flight flag.
type conversation struct {
	mu       sync.Mutex
	messages []models.Message
	pending  bool
	lastErr  string
}

// start validates text, appends the user message optimistically, and marks
// the conversation pending. The user message is never rolled back.
func (c *conversation) start(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending {
		return ErrPending
	}
	c.messages = append(c.messages, models.UserMessage(text))
	c.pending = true
	c.lastErr = ""
	return nil
}

// finish appends the exchange's assistant message (the answer, or the
// apology on failure) and returns the conversation to idle.
func (c *conversation) finish(content string, err error) models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.lastErr = err.Error()
		content = apologyMessage
	}
	reply := models.AssistantMessage(content)
	c.messages = append(c.messages, reply)
	c.pending = false
	return reply
}

// seed replaces the history with a single assistant message.
func (c *conversation) seed(content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = []models.Message{models.AssistantMessage(content)}
	c.lastErr = ""
}

// Messages returns a copy of the history in insertion order.
func (c *conversation) Messages() []models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Pending reports whether a request is in flight.
func (c *conversation) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// LastError returns the most recent failure message, or "".
func (c *conversation) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// snapshot returns the history without copying message contents; used to
// build history-mode requests after the optimistic append.
func (c *conversation) snapshot() []models.Message {
	return c.Messages()
}
