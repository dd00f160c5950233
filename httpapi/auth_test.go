package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/proactiva/proactiva"
)

type staticToken string

func (t staticToken) Token() string {
	return string(t)
}

func testLogger() proactiva.Logger {
	return log.New(io.Discard)
}

func testClient(t *testing.T, handler http.Handler, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, staticToken(token), testLogger())
}

func TestLogin(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/users/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":7,"nomeCompleto":"Ana Silva","email":"ana@example.com"},"token":"tok123","message":"ok"}`))
	}), "")

	res, err := c.Login(context.Background(), proactiva.LoginRequest{Email: "ana@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.User.ID != 7 || res.User.FullName != "Ana Silva" || res.Token != "tok123" {
		t.Errorf("unexpected auth result: %+v", res)
	}
}

func TestLoginRejectedUsesBackendMessage(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"credenciais inválidas"}`))
	}), "")

	_, err := c.Login(context.Background(), proactiva.LoginRequest{Email: "x", Password: "y"})
	var authErr *proactiva.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if authErr.Message != "credenciais inválidas" {
		t.Errorf("message = %q", authErr.Message)
	}
	if authErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d", authErr.StatusCode)
	}
}

func TestLoginRejectedFallsBackToStatusLine(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("not json"))
	}), "")

	_, err := c.Login(context.Background(), proactiva.LoginRequest{Email: "x", Password: "y"})
	var authErr *proactiva.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if authErr.Message != "erro na requisição: 500 Internal Server Error" {
		t.Errorf("message = %q", authErr.Message)
	}
}

func TestRegister(t *testing.T) {
	var gotBody string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/register" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		_, _ = w.Write([]byte(`{"user":{"id":1},"token":"t"}`))
	}), "")

	_, err := c.Register(context.Background(), proactiva.RegisterRequest{
		FullName: "Bruno Costa",
		Email:    "bruno@example.com",
		Password: "pw",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	for _, want := range []string{`"nomeCompleto":"Bruno Costa"`, `"email":"bruno@example.com"`} {
		if !strings.Contains(gotBody, want) {
			t.Errorf("body %q missing %q", gotBody, want)
		}
	}
}

