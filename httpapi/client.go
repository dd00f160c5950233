// Package httpapi implements proactiva's AuthAPI and TaskAPI against the
// remote ProActiva backend.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/proactiva/proactiva"
)

type Client struct {
	baseURL string
	http    *http.Client
	tokens  proactiva.TokenSource
	l       proactiva.Logger
}

var (
	_ proactiva.AuthAPI = (*Client)(nil)
	_ proactiva.TaskAPI = (*Client)(nil)
)

func NewClient(baseURL string, tokens proactiva.TokenSource, logger proactiva.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
		tokens: tokens,
		l:      logger,
	}
}

// do issues a JSON request. withAuth attaches the bearer token and fails
// with ErrUnauthenticated before any I/O when no token is held.
func (c *Client) do(ctx context.Context, method, path string, body any, withAuth bool) (*http.Response, error) {
	var buf *bytes.Buffer
	if body != nil {
		buf = &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
	}

	var req *http.Request
	var err error
	if buf != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	if withAuth {
		token := c.tokens.Token()
		if token == "" {
			return nil, proactiva.ErrUnauthenticated
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.l.Debug("api request", "method", method, "path", path)
	return c.http.Do(req)
}

// decode unmarshals a 2xx body into out. Non-2xx responses become a
// RequestError carrying the body's message field when one parses.
func decode(resp *http.Response, out any) error {
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &proactiva.RequestError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    messageFromBody(resp),
		}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}
	return nil
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func messageFromBody(resp *http.Response) string {
	var eb errorBody
	if err := json.NewDecoder(resp.Body).Decode(&eb); err != nil {
		return ""
	}
	if eb.Message != "" {
		return eb.Message
	}
	return eb.Error
}
