package sqlite

import (
	"log/slog"

	"github.com/bornholm/syscommerce/internal/theme/storage"
	"github.com/bornholm/syscommerce/pkg/log"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitemigration"
	"zombiezen.com/go/sqlite/sqlitex"
)

const Type storage.Type = "sqlite"

func init() {
	storage.Register(Type, CreateBackendFromOptions)
}

type Options struct {
	Path string `mapstructure:"path"`
}

var schema = sqlitemigration.Schema{
	Migrations: []string{
		`CREATE TABLE IF NOT EXISTS preferences (
			scope TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL,
			PRIMARY KEY (scope, key)
		);`,
	},
}

func CreateBackendFromOptions(options any) (storage.Backend, error) {
	opts := Options{}

	if err := mapstructure.Decode(options, &opts); err != nil {
		return nil, errors.Wrapf(err, "could not parse '%s' storage options", Type)
	}

	if opts.Path == "" {
		return nil, errors.Errorf("'%s' storage requires a path", Type)
	}

	pool := sqlitemigration.NewPool(opts.Path, schema, sqlitemigration.Options{
		Flags: sqlite.OpenCreate | sqlite.OpenReadWrite | sqlite.OpenWAL,
		PrepareConn: func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteTransient(conn, "PRAGMA busy_timeout = 5000", nil)
		},
		OnError: func(err error) {
			slog.Error("theme storage migration error", log.Error(errors.WithStack(err)))
		},
	})

	return NewBackend(pool), nil
}
