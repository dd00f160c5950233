package proactiva

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

// Durable client-side storage keys for the persisted session.
const (
	KeyUser  = "proactiva_user"
	KeyToken = "proactiva_token"
)

// KeyValueRepo is the durable local store backing session persistence.
// Get returns ErrNotFound for absent keys.
type KeyValueRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type FocusSessionRepo interface {
	InsertSession(context.Context, FocusSession) (FocusSession, error)
	GetByStartTime(ctx context.Context, min, max time.Time) ([]FocusSession, error)
}
