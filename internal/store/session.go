package store

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var sessionMigrations = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at INTEGER NOT NULL,
		expires_at INTEGER NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id);`,
}

type Session struct {
	Token     string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

func (s *Store) CreateSession(ctx context.Context, userID int64, ttl time.Duration) (*Session, error) {
	token, err := randomToken(32)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	now := time.Now().UTC()

	session := &Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now.Truncate(time.Second),
		ExpiresAt: now.Add(ttl).Truncate(time.Second),
	}

	err = s.Tx(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, `INSERT INTO sessions (token, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)`, &sqlitex.ExecOptions{
			Args: []any{session.Token, session.UserID, session.CreatedAt.Unix(), session.ExpiresAt.Unix()},
		})
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return session, nil
}

// FindSession returns the session identified by the given token and its
// user. Expired sessions are reported as not found.
func (s *Store) FindSession(ctx context.Context, token string) (*Session, *User, error) {
	var (
		session *Session
		user    *User
	)

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`
			SELECT sessions.token, sessions.user_id, sessions.created_at, sessions.expires_at, %s
			FROM sessions JOIN users ON users.id = sessions.user_id
			WHERE sessions.token = ? LIMIT 1`,
			prefixed("users", userAttributes),
		)

		return sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{token},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				session = &Session{
					Token:     stmt.ColumnText(0),
					UserID:    stmt.ColumnInt64(1),
					CreatedAt: time.Unix(stmt.ColumnInt64(2), 0).UTC(),
					ExpiresAt: time.Unix(stmt.ColumnInt64(3), 0).UTC(),
				}

				user = &User{}
				return errors.WithStack(s.bindUserAt(stmt, user, 4))
			},
		})
	})
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}

	if session == nil || session.Expired(time.Now()) {
		return nil, nil, errors.WithStack(ErrNotFound)
	}

	return session, user, nil
}

// RevokeSession deletes the session. Revoking an unknown session is not an
// error.
func (s *Store) RevokeSession(ctx context.Context, token string) error {
	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, `DELETE FROM sessions WHERE token = ?`, &sqlitex.ExecOptions{
			Args: []any{token},
		})
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (s *Store) PurgeExpiredSessions(ctx context.Context) (int, error) {
	var purged int
	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, `DELETE FROM sessions WHERE expires_at <= ?`, &sqlitex.ExecOptions{
			Args: []any{time.Now().UTC().Unix()},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		purged = conn.Changes()

		return nil
	})
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return purged, nil
}

// CountActiveSessions returns the number of unexpired sessions of the user.
func (s *Store) CountActiveSessions(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, `SELECT COUNT(*) FROM sessions WHERE user_id = ? AND expires_at > ?`, &sqlitex.ExecOptions{
			Args: []any{userID, time.Now().UTC().Unix()},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				count = stmt.ColumnInt64(0)
				return nil
			},
		})
	})
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return count, nil
}

func randomToken(size int) (string, error) {
	data := make([]byte, size)

	if _, err := rand.Read(data); err != nil {
		return "", errors.WithStack(err)
	}

	return base64.RawURLEncoding.EncodeToString(data), nil
}
