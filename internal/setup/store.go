package setup

import (
	"context"
	"log/slog"
	"time"

	"github.com/bornholm/syscommerce/internal/config"
	"github.com/bornholm/syscommerce/internal/store"
	"github.com/bornholm/syscommerce/pkg/log"
	"github.com/pkg/errors"
)

const sessionPurgeInterval = time.Hour

var NewStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*store.Store, error) {
	store := store.NewStore(string(conf.Store.Path))

	if err := store.HealthCheck(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	go purgeExpiredSessions(ctx, store)

	return store, nil
})

func purgeExpiredSessions(ctx context.Context, store *store.Store) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := store.PurgeExpiredSessions(ctx)
			if err != nil {
				slog.ErrorContext(ctx, "could not purge expired sessions", log.Error(errors.WithStack(err)))
				continue
			}

			slog.DebugContext(ctx, "expired sessions purged", slog.Int("count", purged))
		}
	}
}
