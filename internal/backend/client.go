// Package backend is the HTTP client for the external
// backend-as-a-service that owns the catalog, wishlist collection,
// orders and authentication. This layer consumes its document and
// account APIs; it defines none of the backend's business logic.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	defaultTimeout     = 30 * time.Second
	maxRetries         = 3
	initialRetryDelay  = 1 * time.Second
	maxRetryDelay      = 30 * time.Second
	retryBackoffFactor = 2
)

// Client interfaces with the backend document and account APIs.
// The session token is mutable: the auth passthrough sets it after an
// interactive sign-in.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string

	mu           sync.RWMutex
	sessionToken string
}

// NewClient creates a backend API client.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

// SetSessionToken installs the bearer token for subsequent requests.
// An empty token reverts the client to anonymous calls.
func (c *Client) SetSessionToken(token string) {
	c.mu.Lock()
	c.sessionToken = token
	c.mu.Unlock()
}

// SessionToken returns the currently installed bearer token.
func (c *Client) SessionToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionToken
}

// listResponse wraps document list results.
type listResponse struct {
	Documents json.RawMessage `json:"documents"`
	Total     int             `json:"total"`
}

// listDocuments fetches documents from a collection, decoded into out
// (a pointer to a slice).
func (c *Client) listDocuments(ctx context.Context, collection string, filters url.Values, out any) error {
	u := fmt.Sprintf("%s/v1/collections/%s/documents", c.baseURL, collection)
	if len(filters) > 0 {
		u += "?" + filters.Encode()
	}

	body, err := c.doWithRetry(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	var list listResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return fmt.Errorf("failed to decode list response: %w", err)
	}
	if err := json.Unmarshal(list.Documents, out); err != nil {
		return fmt.Errorf("failed to decode documents: %w", err)
	}
	return nil
}

// createDocument creates a document in a collection and decodes the
// stored document (with its assigned id) into out.
func (c *Client) createDocument(ctx context.Context, collection string, doc, out any) error {
	u := fmt.Sprintf("%s/v1/collections/%s/documents", c.baseURL, collection)

	body, err := c.doJSON(ctx, http.MethodPost, u, doc)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decode(body, out)
}

// doJSON marshals doc and performs a request with it as the body.
func (c *Client) doJSON(ctx context.Context, method, url string, doc any) ([]byte, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return c.doWithRetry(ctx, method, url, payload)
}

func decode(body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// deleteDocument deletes a document by id.
func (c *Client) deleteDocument(ctx context.Context, collection, id string) error {
	u := fmt.Sprintf("%s/v1/collections/%s/documents/%s", c.baseURL, collection, url.PathEscape(id))
	_, err := c.doWithRetry(ctx, http.MethodDelete, u, nil)
	return err
}

// doWithRetry performs a request, retrying on rate limits and server
// errors with exponential backoff.
func (c *Client) doWithRetry(ctx context.Context, method, url string, payload []byte) ([]byte, error) {
	var body []byte
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delay := calculateRetryDelay(attempt)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		body, lastErr = c.do(ctx, method, url, payload)
		if lastErr == nil {
			return body, nil
		}

		if !isRetryableError(lastErr) {
			return nil, lastErr
		}
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *Client) do(ctx context.Context, method, url string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-API-Key", c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.SessionToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode >= 500:
		return nil, &ServerError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusNoContent {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

func calculateRetryDelay(attempt int) time.Duration {
	delay := initialRetryDelay
	for i := 0; i < attempt; i++ {
		delay *= time.Duration(retryBackoffFactor)
	}
	if delay > maxRetryDelay {
		delay = maxRetryDelay
	}
	return delay
}

func isRetryableError(err error) bool {
	if err == ErrRateLimited {
		return true
	}
	if _, ok := err.(*ServerError); ok {
		return true
	}
	return false
}
