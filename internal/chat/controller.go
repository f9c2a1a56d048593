package chat

import (
	"context"

	"github.com/legalease/docchat-go/internal/api"
	"github.com/legalease/docchat-go/internal/models"
)

// DocumentChatter is the slice of the API client the document controller
// uses.
type DocumentChatter interface {
	Chat(ctx context.Context, documentID, question, model string) (*api.ChatResponse, error)
}

// DocumentSource supplies the active document binding.
type DocumentSource interface {
	Document() (models.DocumentBinding, bool)
}

// Controller drives the document-grounded conversation. It lives for the
// lifetime of the chat view; there is no terminal state.
type Controller struct {
	conversation
	backend DocumentChatter
	docs    DocumentSource
	model   string
}

// NewController creates a document-grounded controller with an empty
// history.
func NewController(backend DocumentChatter, docs DocumentSource, model string) *Controller {
	return &Controller{backend: backend, docs: docs, model: model}
}

// Binding returns the document the conversation is grounded in, if any.
// Without one the controller refuses to start a chat.
func (c *Controller) Binding() (models.DocumentBinding, bool) {
	return c.docs.Document()
}

// Model returns the model identifier sent with each question.
func (c *Controller) Model() string { return c.model }

// SetModel switches the model for subsequent sends.
func (c *Controller) SetModel(model string) { c.model = model }

// Send runs one exchange: optimistic user append, backend call, assistant
// append. Refused with no state change when no document is bound, the text
// is empty, or a send is already pending. On backend failure the apology
// message is appended and the error returned; the conversation stays usable.
func (c *Controller) Send(ctx context.Context, text string) (models.Message, error) {
	doc, ok := c.docs.Document()
	if !ok {
		return models.Message{}, ErrNoDocument
	}
	if err := c.start(text); err != nil {
		return models.Message{}, err
	}

	resp, err := c.backend.Chat(ctx, doc.DocumentID, text, c.model)
	if err != nil {
		return c.finish("", err), err
	}
	return c.finish(resp.Response, nil), nil
}
