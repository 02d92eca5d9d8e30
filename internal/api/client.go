// Package api implements the HTTP client for the music-sheet-catalog backend.
//
// Every request attaches a JSON content type and, when a token is supplied,
// an Authorization bearer header. Non-2xx responses are normalized into a
// typed [*Error] carrying the HTTP status code and the server-supplied
// message; transport failures propagate as plain wrapped errors with no
// status code.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "http://localhost:3000/api"

// Client issues requests against the catalog backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a Client for the given base URL. The base URL defaults
// to a local backend, the HTTP client to [http.DefaultClient].
func NewClient(baseURL string, client *http.Client) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Inf, 1),
	}
}

// SetRateLimit throttles outgoing requests to n per second. Zero or negative
// n removes the limit.
func (c *Client) SetRateLimit(n float64) {
	if n <= 0 {
		c.limiter = rate.NewLimiter(rate.Inf, 1)
		return
	}
	c.limiter = rate.NewLimiter(rate.Limit(n), 1)
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs a GET request against the given endpoint and decodes the JSON
// response into dest when dest is non-nil.
func (c *Client) Get(ctx context.Context, endpoint, token string, dest any) error {
	return c.do(ctx, http.MethodGet, endpoint, nil, token, dest)
}

// Post performs a POST request with the given JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, body any, token string, dest any) error {
	return c.do(ctx, http.MethodPost, endpoint, body, token, dest)
}

// Put performs a PUT request with the given JSON body.
func (c *Client) Put(ctx context.Context, endpoint string, body any, token string, dest any) error {
	return c.do(ctx, http.MethodPut, endpoint, body, token, dest)
}

// Delete performs a DELETE request against the given endpoint.
func (c *Client) Delete(ctx context.Context, endpoint, token string, dest any) error {
	return c.do(ctx, http.MethodDelete, endpoint, nil, token, dest)
}

// Raw performs a request and returns the undecoded response body, for the
// api debugging commands.
func (c *Client) Raw(ctx context.Context, method, endpoint string, body []byte, token string) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	resp, err := c.send(ctx, method, endpoint, reader, token)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	return raw, resp.StatusCode, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, token string, dest any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	resp, err := c.send(ctx, method, endpoint, reader, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Error bodies are expected to carry {message}; anything else
		// degrades to a generic message inside newError.
		raw, _ := io.ReadAll(resp.Body)
		return newError(resp.StatusCode, raw)
	}

	if dest != nil {
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func (c *Client) send(ctx context.Context, method, endpoint string, body io.Reader, token string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	fullURL, err := c.endpointURL(endpoint)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	return resp, nil
}

func (c *Client) endpointURL(endpoint string) (string, error) {
	endpoint = strings.TrimPrefix(endpoint, "/")
	full := c.baseURL + "/" + endpoint
	if _, err := url.Parse(full); err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	return full, nil
}
