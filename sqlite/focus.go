package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/proactiva/proactiva"
)

const selectAllSessions = "SELECT id, started_at, ended_at, minutes, completed FROM focus_sessions"

type focusSessionEntity struct {
	ID        string
	StartedAt int64
	EndedAt   sql.NullInt64
	Minutes   int
	Completed bool
}

type focusSessionRepo struct {
	conn *sql.DB
	l    proactiva.Logger
}

var _ proactiva.FocusSessionRepo = (*focusSessionRepo)(nil)

func NewFocusSessionRepo(conn *sql.DB, logger proactiva.Logger) proactiva.FocusSessionRepo {
	return &focusSessionRepo{
		conn: conn,
		l:    logger,
	}
}

func (r *focusSessionRepo) InsertSession(ctx context.Context, s proactiva.FocusSession) (proactiva.FocusSession, error) {
	if s.StartedAt.IsZero() {
		return proactiva.FocusSession{}, fmt.Errorf("provide required field 'StartedAt'")
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	e := mapToSessionEntity(s)

	args := []any{
		e.ID,
		e.StartedAt,
		e.EndedAt,
		e.Minutes,
		e.Completed,
	}
	query := "INSERT INTO focus_sessions (id, started_at, ended_at, minutes, completed) VALUES " + generateParameters(len(args))
	r.l.Debug("recording focus session", "query", query, "args", args)
	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return proactiva.FocusSession{}, err
	}

	return s, nil
}

func (r *focusSessionRepo) GetByStartTime(ctx context.Context, min, max time.Time) ([]proactiva.FocusSession, error) {
	query := selectAllSessions
	var args []any
	if !min.IsZero() && !max.IsZero() {
		query += " WHERE started_at BETWEEN ? AND ?"
		args = append(args, min.Unix(), max.Unix())
	} else if !min.IsZero() {
		query += " WHERE started_at >= ?"
		args = append(args, min.Unix())
	} else if !max.IsZero() {
		query += " WHERE started_at <= ?"
		args = append(args, max.Unix())
	}
	query += " ORDER BY started_at"

	r.l.Debug("GetByStartTime", "query", query, "args", args)
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var sessions []proactiva.FocusSession
	for rows.Next() {
		s, err := extractSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func extractSession(s scannable) (proactiva.FocusSession, error) {
	var e focusSessionEntity
	if err := s.Scan(&e.ID, &e.StartedAt, &e.EndedAt, &e.Minutes, &e.Completed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return proactiva.FocusSession{}, proactiva.ErrNotFound
		}
		return proactiva.FocusSession{}, err
	}

	return mapToFocusSession(e), nil
}

func mapToSessionEntity(s proactiva.FocusSession) focusSessionEntity {
	e := focusSessionEntity{
		ID:        s.ID.String(),
		StartedAt: s.StartedAt.Unix(),
		Minutes:   s.Minutes,
		Completed: s.Completed,
	}
	if !s.EndedAt.IsZero() {
		e.EndedAt = sql.NullInt64{
			Valid: true,
			Int64: s.EndedAt.Unix(),
		}
	}
	return e
}

func mapToFocusSession(e focusSessionEntity) proactiva.FocusSession {
	var endedAt time.Time
	if e.EndedAt.Valid {
		endedAt = time.Unix(e.EndedAt.Int64, 0).Local()
	}

	id, _ := uuid.Parse(e.ID)

	return proactiva.FocusSession{
		ID:        id,
		StartedAt: time.Unix(e.StartedAt, 0).Local(),
		EndedAt:   endedAt,
		Minutes:   e.Minutes,
		Completed: e.Completed,
	}
}
