package setup

import (
	"context"
	"log/slog"
	"time"

	"github.com/bornholm/syscommerce/internal/config"
	"github.com/bornholm/syscommerce/internal/navbar"
	"github.com/bornholm/syscommerce/internal/theme/storage"
	"github.com/pkg/errors"
)

var NewThemeStorageFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (storage.Backend, error) {
	var options map[string]any
	if conf.Theme.Storage.Options != nil {
		options = conf.Theme.Storage.Options.Data
	}

	storageType := storage.Type(conf.Theme.Storage.Type)

	backend, err := storage.New(storageType, options)
	if err != nil {
		return nil, errors.Wrapf(err, "could not create theme storage (available: %v)", storage.Registered())
	}

	slog.DebugContext(ctx, "theme storage configured", slog.String("type", string(storageType)))

	return backend, nil
})

func NewNavbarHandlerFromConfig(ctx context.Context, conf *config.Config) (*navbar.Handler, error) {
	backend, err := NewThemeStorageFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	sessions, err := NewSessionManagerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	registry := navbar.NewRegistry(backend, sessions.Logout)

	if conf.Theme.IdleTimeout != nil && *conf.Theme.IdleTimeout > 0 {
		go evictIdleComponents(ctx, registry, time.Duration(*conf.Theme.IdleTimeout))
	}

	handler, err := navbar.NewHandler(registry, sessions.ClientID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return handler, nil
}

func evictIdleComponents(ctx context.Context, registry *navbar.Registry, maxIdle time.Duration) {
	ticker := time.NewTicker(max(maxIdle/2, time.Minute))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			evicted := registry.Evict(maxIdle)
			slog.DebugContext(ctx, "idle navbar components evicted", slog.Int("count", evicted), slog.Int("remaining", registry.Len()))
		}
	}
}
