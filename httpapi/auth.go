package httpapi

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/proactiva/proactiva"
)

func (c *Client) Login(ctx context.Context, req proactiva.LoginRequest) (proactiva.AuthResult, error) {
	return c.authenticate(ctx, "/api/users/login", req)
}

func (c *Client) Register(ctx context.Context, req proactiva.RegisterRequest) (proactiva.AuthResult, error) {
	return c.authenticate(ctx, "/api/users/register", req)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (proactiva.AuthResult, error) {
	resp, err := c.do(ctx, "POST", path, body, false)
	if err != nil {
		return proactiva.AuthResult{}, err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := messageFromBody(resp)
		if msg == "" {
			msg = fmt.Sprintf("erro na requisição: %s", resp.Status)
		}
		c.l.Warn("authentication rejected", "path", path, "status", resp.StatusCode)
		return proactiva.AuthResult{}, &proactiva.AuthError{
			StatusCode: resp.StatusCode,
			Message:    msg,
		}
	}

	var result proactiva.AuthResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return proactiva.AuthResult{}, fmt.Errorf("decoding auth response: %w", err)
	}
	return result, nil
}
