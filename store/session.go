// Package store holds the client-side state: the authenticated session
// and the in-memory task collection mirrored from the backend.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/proactiva/proactiva"
)

// SessionStore is a two-state machine: Anonymous (no user) and
// Authenticated (user and token set together). Login and Register move it
// to Authenticated and persist both keys; Logout clears state and removes
// both keys. Remote failures leave the state untouched and propagate.
type SessionStore struct {
	auth proactiva.AuthAPI
	kv   proactiva.KeyValueRepo
	l    proactiva.Logger

	mu   sync.Mutex
	sess proactiva.Session
}

// NewSessionStore hydrates from durable storage. A stored user record
// that fails to parse is treated as no stored session: the entry is
// removed and the store starts Anonymous. Hydration never fails.
func NewSessionStore(ctx context.Context, auth proactiva.AuthAPI, kv proactiva.KeyValueRepo, logger proactiva.Logger) *SessionStore {
	s := &SessionStore{
		auth: auth,
		kv:   kv,
		l:    logger,
	}

	token, tokenErr := kv.Get(ctx, proactiva.KeyToken)
	if tokenErr != nil && !errors.Is(tokenErr, proactiva.ErrNotFound) {
		logger.Warn("could not read stored token", "error", tokenErr)
	}
	raw, userErr := kv.Get(ctx, proactiva.KeyUser)
	if userErr != nil && !errors.Is(userErr, proactiva.ErrNotFound) {
		logger.Warn("could not read stored user", "error", userErr)
	}

	if tokenErr != nil || userErr != nil {
		// a half-persisted session is no session; drop whichever key
		// survived so the next start finds neither
		if tokenErr == nil {
			if err := kv.Delete(ctx, proactiva.KeyToken); err != nil {
				logger.Warn("could not remove stale token", "error", err)
			}
		}
		if userErr == nil {
			if err := kv.Delete(ctx, proactiva.KeyUser); err != nil {
				logger.Warn("could not remove stale user record", "error", err)
			}
		}
		return s
	}

	var user proactiva.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		logger.Warn("stored user record is corrupt, discarding", "error", err)
		for _, key := range []string{proactiva.KeyUser, proactiva.KeyToken} {
			if err := kv.Delete(ctx, key); err != nil {
				logger.Warn("could not remove stale session key", "key", key, "error", err)
			}
		}
		return s
	}

	s.sess = proactiva.Session{User: &user, Token: token}
	logger.Info("session hydrated", "userID", user.ID)
	return s
}

func (s *SessionStore) Session() proactiva.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess
}

func (s *SessionStore) Authenticated() bool {
	return s.Session().Authenticated()
}

// Token implements proactiva.TokenSource.
func (s *SessionStore) Token() string {
	return s.Session().Token
}

func (s *SessionStore) Login(ctx context.Context, req proactiva.LoginRequest) error {
	res, err := s.auth.Login(ctx, req)
	if err != nil {
		return err
	}
	s.saveAuth(ctx, res)
	return nil
}

func (s *SessionStore) Register(ctx context.Context, req proactiva.RegisterRequest) error {
	res, err := s.auth.Register(ctx, req)
	if err != nil {
		return err
	}
	s.saveAuth(ctx, res)
	return nil
}

// saveAuth is the only transition into Authenticated. Storage write
// failures are logged and swallowed; the next start simply hydrates
// Anonymous.
func (s *SessionStore) saveAuth(ctx context.Context, res proactiva.AuthResult) {
	user := res.User

	s.mu.Lock()
	s.sess = proactiva.Session{User: &user, Token: res.Token}
	s.mu.Unlock()

	raw, err := json.Marshal(user)
	if err != nil {
		s.l.Error("could not serialize user for storage", "error", err)
		return
	}
	if err := s.kv.Put(ctx, proactiva.KeyUser, string(raw)); err != nil {
		s.l.Warn("could not persist user", "error", err)
	}
	if err := s.kv.Put(ctx, proactiva.KeyToken, res.Token); err != nil {
		s.l.Warn("could not persist token", "error", err)
	}
}

func (s *SessionStore) Logout(ctx context.Context) {
	s.mu.Lock()
	s.sess = proactiva.Session{}
	s.mu.Unlock()

	if err := s.kv.Delete(ctx, proactiva.KeyUser); err != nil {
		s.l.Warn("could not remove persisted user", "error", err)
	}
	if err := s.kv.Delete(ctx, proactiva.KeyToken); err != nil {
		s.l.Warn("could not remove persisted token", "error", err)
	}
}
