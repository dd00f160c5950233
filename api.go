package proactiva

import "context"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	FullName string `json:"nomeCompleto"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is the backend's response to a successful login or register.
type AuthResult struct {
	User    User   `json:"user"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

type AuthAPI interface {
	Login(context.Context, LoginRequest) (AuthResult, error)
	Register(context.Context, RegisterRequest) (AuthResult, error)
}

type CreateTaskRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Priority    TaskPriority `json:"priority"`
	UserID      int          `json:"userId"`
	Status      TaskStatus   `json:"status"`
	DueDate     string       `json:"dueDate,omitempty"`
}

// UpdateTaskRequest carries the partial fields of a PUT. Zero values are
// omitted from the request body.
type UpdateTaskRequest struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Category    string       `json:"category,omitempty"`
	Priority    TaskPriority `json:"priority,omitempty"`
	DueDate     string       `json:"dueDate,omitempty"`
}

// TaskFetchResult distinguishes a genuinely empty task list from one that
// is empty because the backend could not be reached.
type TaskFetchResult struct {
	Tasks    []Task
	Degraded bool
}

// TaskAPI is the remote task surface. ListTasks never returns an error:
// any failure degrades to an empty, Degraded result so the client stays
// usable without a backend. Everything else propagates typed errors.
type TaskAPI interface {
	ListTasks(ctx context.Context, userID int) TaskFetchResult
	ListCompletedTasks(ctx context.Context, userID int) ([]Task, error)
	CreateTask(context.Context, CreateTaskRequest) (Task, error)
	UpdateTask(ctx context.Context, id int, fields UpdateTaskRequest) (Task, error)
	CompleteTask(ctx context.Context, id int) (Task, error)
	DeleteTask(ctx context.Context, id int) error
}

// TokenSource supplies the bearer token for authenticated calls. An empty
// string means no session.
type TokenSource interface {
	Token() string
}
