package proactiva

import "fmt"

// ErrUnauthenticated stops a remote call before any network I/O when no
// token is available.
var ErrUnauthenticated = fmt.Errorf("usuário não autenticado: token não encontrado")

// ValidationError is raised client-side, before any request is made, when
// required fields are missing.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("campos obrigatórios faltando: %v", e.Missing)
}

// AuthError is a rejected login or register attempt. Message carries the
// backend's message field when present, else the raw status line.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	return e.Message
}

// RequestError is any other non-2xx response.
type RequestError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("erro %d: %s", e.StatusCode, e.Status)
}

// ConstraintError is a delete blocked by referential integrity on the
// backend (the task has dependent history rows).
type ConstraintError struct {
	Detail string
}

func (e *ConstraintError) Error() string {
	return "não é possível excluir esta tarefa porque ela possui histórico vinculado"
}
