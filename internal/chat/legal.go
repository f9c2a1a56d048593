package chat

import (
	"context"

	"github.com/legalease/docchat-go/internal/api"
	"github.com/legalease/docchat-go/internal/models"
)

// Disclaimer wording matches the original Legal Advice Chat.
const (
	legalWelcome = "⚖️ Welcome to Legal Advice Chat. I can provide general legal " +
		"information to help you understand legal concepts and procedures. " +
		"Please note: This is not legal advice, and I am not your attorney. " +
		"For specific legal matters, please consult with a licensed attorney " +
		"in your jurisdiction."

	legalCleared = "⚖️ Chat cleared. How can I help you with legal information today?"
)

// LegalChatter is the slice of the API client the legal controller uses.
type LegalChatter interface {
	LegalChat(ctx context.Context, message string) (*api.LegalChatResponse, error)
	LegalChatHistory(ctx context.Context, messages []models.Message) (*api.LegalChatResponse, error)
}

// LegalController drives the document-free legal-information conversation.
// No document binding is required or consulted.
type LegalController struct {
	conversation
	backend LegalChatter

	// withHistory sends the full transcript each turn instead of just the
	// latest message.
	withHistory bool
}

// NewLegalController creates a legal controller seeded with the disclaimer.
func NewLegalController(backend LegalChatter) *LegalController {
	c := &LegalController{backend: backend}
	c.seed(legalWelcome)
	return c
}

// WithHistory switches the controller to the chat-history endpoint, which
// receives the whole conversation on every send.
func (c *LegalController) WithHistory() *LegalController {
	c.withHistory = true
	return c
}

// Send runs one exchange with the same contract as the document controller,
// minus the document requirement.
func (c *LegalController) Send(ctx context.Context, text string) (models.Message, error) {
	if err := c.start(text); err != nil {
		return models.Message{}, err
	}

	var resp *api.LegalChatResponse
	var err error
	if c.withHistory {
		resp, err = c.backend.LegalChatHistory(ctx, c.snapshot())
	} else {
		resp, err = c.backend.LegalChat(ctx, text)
	}
	if err != nil {
		return c.finish("", err), err
	}
	return c.finish(resp.Response, nil), nil
}

// Reset discards the history and reseeds a single disclaimer message.
// Available at any time.
func (c *LegalController) Reset() {
	c.seed(legalCleared)
}
