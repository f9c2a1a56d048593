package api

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/legalease/docchat-go/internal/models"
)

// =============================================================================
// TYPES (matching backend response shapes)
// =============================================================================

// AuthResponse is returned by the sign-in and sign-up endpoints.
type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        models.User `json:"user"`
}

// UploadResponse is returned by the upload endpoint.
type UploadResponse struct {
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
	TextLength int    `json:"text_length"`
	Message    string `json:"message"`
}

// ChatResponse is returned by the document-grounded chat endpoint.
type ChatResponse struct {
	Response   string `json:"response"`
	DocumentID string `json:"document_id"`
}

// LegalChatResponse is returned by both legal chat endpoints.
type LegalChatResponse struct {
	Status     string `json:"status"`
	Response   string `json:"response"`
	Disclaimer string `json:"disclaimer"`
}

// DocumentInfo is the metadata returned for an uploaded document.
type DocumentInfo struct {
	ID         string `json:"id"`
	Filename   string `json:"filename"`
	TextLength int    `json:"text_length"`
	Preview    string `json:"preview"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type chatRequest struct {
	DocumentID string `json:"document_id"`
	Question   string `json:"question"`
	Model      string `json:"model"`
}

type legalChatRequest struct {
	Message string `json:"message"`
}

type legalChatHistoryRequest struct {
	Messages []models.Message `json:"messages"`
}

type modelsResponse struct {
	Models []string `json:"models"`
}

// =============================================================================
// OPERATIONS
// =============================================================================

// SignIn exchanges credentials for a token. The caller stores the session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signin", signInRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignUp registers a new account and returns its first token.
func (c *Client) SignUp(ctx context.Context, email, password, fullName string) (*AuthResponse, error) {
	var out AuthResponse
	req := signUpRequest{Email: email, Password: password, FullName: fullName}
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadDocument uploads a document for chat grounding.
func (c *Client) UploadDocument(ctx context.Context, filename string, r io.Reader) (*UploadResponse, error) {
	var out UploadResponse
	if err := c.Upload(ctx, filename, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Chat asks a question about an uploaded document.
func (c *Client) Chat(ctx context.Context, documentID, question, model string) (*ChatResponse, error) {
	var out ChatResponse
	req := chatRequest{DocumentID: documentID, Question: question, Model: model}
	if err := c.do(ctx, http.MethodPost, "/chat", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LegalChat asks a single document-free legal question.
func (c *Client) LegalChat(ctx context.Context, message string) (*LegalChatResponse, error) {
	var out LegalChatResponse
	if err := c.do(ctx, http.MethodPost, "/api/legal/chat", legalChatRequest{Message: message}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LegalChatHistory sends the full transcript so the backend answers with
// conversational context.
func (c *Client) LegalChatHistory(ctx context.Context, messages []models.Message) (*LegalChatResponse, error) {
	var out LegalChatResponse
	if err := c.do(ctx, http.MethodPost, "/api/legal/chat-history", legalChatHistoryRequest{Messages: messages}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDocument fetches metadata and a text preview for an uploaded document.
func (c *Client) GetDocument(ctx context.Context, documentID string) (*DocumentInfo, error) {
	var out DocumentInfo
	if err := c.do(ctx, http.MethodGet, "/document/"+url.PathEscape(documentID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListModels returns the model identifiers the backend can serve.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	var out modelsResponse
	if err := c.do(ctx, http.MethodGet, "/models", nil, &out); err != nil {
		return nil, err
	}
	return out.Models, nil
}
