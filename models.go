package proactiva

import (
	"time"

	"github.com/google/uuid"
)

// User is the account record as the backend reports it. The client never
// mutates it except by re-authenticating.
type User struct {
	ID       int    `json:"id"`
	FullName string `json:"nomeCompleto"`
	Email    string `json:"email"`
}

// Task mirrors a backend task record. Wire enum values are the backend's
// (Portuguese). CompletedAt is only meaningful when Status is StatusDone;
// the server maintains that pairing and the client does not re-check it.
type Task struct {
	ID          int          `json:"id"`
	UserID      int          `json:"userId"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	DueDate     string       `json:"dueDate"`
	CompletedAt string       `json:"completedAt,omitempty"`
	CreatedAt   string       `json:"createdAt,omitempty"`
}

func (t Task) Done() bool {
	return t.Status == StatusDone
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "BAIXA"
	PriorityMedium TaskPriority = "MEDIA"
	PriorityHigh   TaskPriority = "ALTA"
)

type TaskStatus string

const (
	StatusInProgress TaskStatus = "EM_ANDAMENTO"
	StatusDone       TaskStatus = "CONCLUIDO"
)

// Session is the client-held auth state. User and Token are set and
// cleared together; a session is never partially valid.
type Session struct {
	User  *User
	Token string
}

func (s Session) Authenticated() bool {
	return s.User != nil && s.Token != ""
}

// FocusSession is one run of the focus timer, recorded locally.
type FocusSession struct {
	ID        uuid.UUID
	StartedAt time.Time
	EndedAt   time.Time
	Minutes   int
	Completed bool
}
