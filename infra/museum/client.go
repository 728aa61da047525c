// Package museum is the REST gateway to the museum backend. It owns bearer
// token injection, the common {success,message,data} response envelope, and
// the mapping of every transport or decoding failure into the domain error
// taxonomy. Nothing in this package panics across its boundary.
package museum

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vuminhle/fossildeck/domain"
)

// TokenProvider supplies the bearer token for authenticated requests.
// Implemented by the session store; ok is false while logged out.
type TokenProvider interface {
	Token() (token string, ok bool)
}

// Client is a thin HTTP wrapper for the museum API.
type Client struct {
	baseURL  string
	language string
	tokens   TokenProvider
	http     *http.Client
}

// NewClient creates a museum API client. language is sent as accept-language
// on every request so localized content comes back in the user's language.
func NewClient(baseURL, language string, tokens TokenProvider) *Client {
	return &Client{
		baseURL:  baseURL,
		language: language,
		tokens:   tokens,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// envelope is the wrapper almost every endpoint answers with. Search is the
// one exception and decodes its body directly.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) post(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// delete issues a DELETE with a JSON body; the museum API addresses delete
// targets in the body rather than the path.
func (c *Client) delete(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path, body)
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept-Language", c.language)
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.tokens.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, domain.ErrNetwork)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: reading response: %w", method, path, domain.ErrNetwork)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, serverRejection(resp.StatusCode, data)
	}
	return data, nil
}

// serverRejection surfaces the server's own message when the error body
// carries the standard envelope.
func serverRejection(status int, body []byte) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		return &domain.ServerError{Status: status, Message: env.Message}
	}
	return &domain.ServerError{Status: status}
}

// unwrap decodes the standard envelope and, when out is non-nil, the data
// payload into out. An envelope with success=false becomes a ServerError.
func unwrap(raw []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decoding envelope: %w", domain.ErrMalformedResponse)
	}
	if !env.Success {
		return &domain.ServerError{Message: env.Message}
	}
	if out == nil {
		return nil
	}
	if len(env.Data) == 0 {
		return fmt.Errorf("missing data field: %w", domain.ErrMalformedResponse)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decoding data: %w", domain.ErrMalformedResponse)
	}
	return nil
}

// parseTime decodes the backend's RFC 3339 timestamps, tolerating the
// fractional-seconds variants different endpoints emit.
func parseTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
