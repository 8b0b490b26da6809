// ABOUTME: HTTP client for the Trackdemic REST API
// ABOUTME: Attaches bearer tokens and silently refreshes them once on 401

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/trackdemic/trackdemic-cli/internal/store"
)

// Client is the API client for the Trackdemic backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *store.Store
}

// New creates a new API client with the given base URL and credential store.
func New(baseURL string, st *store.Store) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		store: st,
	}
}

// Page is the paginated list envelope the backend wraps list endpoints in.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// do issues a request against the API and decodes the response into out.
// The access token, when present, is attached as a bearer header. A 401
// response triggers a single silent token refresh and replay; see retry401.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	resp, err := c.send(ctx, method, path, payload)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		retried, retryErr := c.retry401(ctx, method, path, payload, resp, out)
		if retried {
			return retryErr
		}
		// No refresh token: the original 401 propagates unchanged
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.handleErrorResponse(resp)
	}

	return decodeBody(resp.Body, out)
}

// send builds and issues a single request with the current access token.
func (c *Client) send(ctx context.Context, method, path string, payload []byte) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api"+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.store.Get(store.KeyAccessToken); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.httpClient.Do(req)
}

// retry401 performs the one-shot refresh-and-replay for an unauthorized
// response. It returns false when no refresh token exists, in which case the
// caller surfaces the original 401. When a refresh token is present the
// original response is consumed and the replay's outcome is returned, so each
// request is replayed at most once and never loops.
func (c *Client) retry401(ctx context.Context, method, path string, payload []byte, orig *http.Response, out any) (bool, error) {
	refresh, ok := c.store.Get(store.KeyRefreshToken)
	if !ok {
		return false, nil
	}
	orig.Body.Close()

	if err := c.refreshAccessToken(ctx, refresh); err != nil {
		// Refresh failed: both tokens are already cleared, force re-login
		return true, err
	}

	resp, err := c.send(ctx, method, path, payload)
	if err != nil {
		return true, c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return true, c.handleErrorResponse(resp)
	}
	return true, decodeBody(resp.Body, out)
}

// refreshAccessToken exchanges the refresh token for a new access token.
// Issued as a bare request so it carries no bearer header and is never retried.
func (c *Client) refreshAccessToken(ctx context.Context, refreshToken string) error {
	payload, err := json.Marshal(map[string]string{"refresh": refreshToken})
	if err != nil {
		return fmt.Errorf("failed to marshal refresh request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/refresh/", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.store.Remove(store.KeyAccessToken)
		c.store.Remove(store.KeyRefreshToken)
		apiErr := c.handleErrorResponse(resp)
		return fmt.Errorf("%w: %v", ErrSessionExpired, apiErr)
	}

	var refreshed struct {
		Access string `json:"access"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&refreshed); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	if err := c.store.Set(store.KeyAccessToken, refreshed.Access); err != nil {
		return fmt.Errorf("failed to store access token: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{StatusCode: resp.StatusCode}
	}
	return parseAPIError(resp.StatusCode, body)
}

// decodeBody decodes a JSON body into out, tolerating a nil target.
func decodeBody(body io.Reader, out any) error {
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// withQuery appends query parameters to a path when any are set.
func withQuery(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}
