// Package api is the single choke point for all backend calls. It injects
// the bearer credential, interprets response status uniformly, and clears
// the global session on authorization failure.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/legalease/docchat-go/internal/session"
)

const defaultFallback = "Request failed"

// Client talks to the DocChat backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *session.Store
	logger     *slog.Logger
}

// New creates a backend client. The session store supplies the bearer token
// and absorbs the 401-triggered clear.
func New(baseURL string, timeout time.Duration, store *session.Store, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		store:      store,
		logger:     logger,
	}
}

// do issues a JSON request and decodes the response into out (which may be
// nil). All JSON endpoints go through here.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.send(req, out, defaultFallback)
}

// Upload posts a file as multipart form data. Same 401 and error contract
// as do, but without the JSON content-type header.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.send(req, out, "Upload failed")
}

// send finishes a prepared request: credential injection, execution, and
// uniform status interpretation.
func (c *Client) send(req *http.Request, out any, fallback string) error {
	if token := c.store.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", uuid.New().String())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Connectivity failures surface like any other request failure.
		return fmt.Errorf("%s: %w", fallback, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("backend call",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	// 401 invalidates the session globally, no matter which caller issued
	// the request. Navigation back to sign-in happens in the store's
	// subscribers, not here.
	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.Info("authorization failure, clearing session", "path", req.URL.Path)
		if err := c.store.Clear(); err != nil {
			c.logger.Error("failed to clear session", "error", err)
		}
		return ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := fallback
		var eb errorBody
		if err := json.Unmarshal(respBody, &eb); err == nil && eb.Detail != "" {
			detail = eb.Detail
		}
		return &StatusError{StatusCode: resp.StatusCode, Detail: detail}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}
