package sqlite

import (
	"context"
	"time"

	"github.com/bornholm/syscommerce/internal/theme/storage"
	"github.com/pkg/errors"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitemigration"
	"zombiezen.com/go/sqlite/sqlitex"
)

type Backend struct {
	pool *sqlitemigration.Pool
}

// Get implements storage.Backend.
func (b *Backend) Get(ctx context.Context, scope string, key string) (string, bool, error) {
	var (
		value  string
		exists bool
	)

	err := b.withConn(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, `SELECT value FROM preferences WHERE scope = ? AND key = ? LIMIT 1`, &sqlitex.ExecOptions{
			Args: []any{scope, key},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				value = stmt.ColumnText(0)
				exists = true
				return nil
			},
		})
	})
	if err != nil {
		return "", false, errors.WithStack(err)
	}

	return value, exists, nil
}

// Set implements storage.Backend.
func (b *Backend) Set(ctx context.Context, scope string, key string, value string) error {
	err := b.withConn(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, `
			INSERT INTO preferences (scope, key, value, updated_at) VALUES (?, ?, ?, ?)
			ON CONFLICT (scope, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, &sqlitex.ExecOptions{
			Args: []any{scope, key, value, time.Now().UTC().Unix()},
		})
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (b *Backend) withConn(ctx context.Context, fn func(conn *sqlite.Conn) error) error {
	conn, err := b.pool.Take(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	defer b.pool.Put(conn)

	if err := fn(conn); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func NewBackend(pool *sqlitemigration.Pool) *Backend {
	return &Backend{
		pool: pool,
	}
}

var _ storage.Backend = &Backend{}
