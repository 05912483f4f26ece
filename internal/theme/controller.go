package theme

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bornholm/syscommerce/pkg/log"
	"github.com/pkg/errors"
)

// Controller owns the current theme mode of a navbar, keeps it in sync
// with the persisted storage and the document root markers.
type Controller struct {
	mutex    sync.RWMutex
	mode     Mode
	storage  Storage
	root     Root
	initOnce sync.Once
}

// Initialize loads the persisted mode, defaulting to DefaultMode.
// Subsequent calls are no-ops.
func (c *Controller) Initialize(ctx context.Context) Mode {
	c.initOnce.Do(func() {
		mode := DefaultMode

		raw, exists, err := c.storage.Get(ctx, StorageKey)
		switch {
		case err != nil:
			slog.WarnContext(ctx, "could not read persisted theme", log.Error(errors.WithStack(err)))
		case exists:
			parsed, err := ParseMode(raw)
			if err != nil {
				slog.WarnContext(ctx, "ignoring persisted theme", log.Error(errors.WithStack(err)))
				break
			}

			mode = parsed
		}

		c.SetMode(ctx, mode)
	})

	return c.Mode()
}

// SetMode replaces the current mode, persists it and updates the root markers.
func (c *Controller) SetMode(ctx context.Context, next Mode) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.setMode(ctx, next)
}

func (c *Controller) Toggle(ctx context.Context) Mode {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	next := c.mode.Opposite()
	c.setMode(ctx, next)

	return next
}

func (c *Controller) setMode(ctx context.Context, next Mode) {
	c.mode = next

	if err := c.storage.Set(ctx, StorageKey, string(next)); err != nil {
		slog.WarnContext(ctx, "could not persist theme", log.Error(errors.WithStack(err)))
	}

	applyMarkers(c.root, next)
}

func (c *Controller) Mode() Mode {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.mode
}

func NewController(storage Storage, root Root) *Controller {
	return &Controller{
		mode:    DefaultMode,
		storage: NewFallbackStorage(storage),
		root:    root,
	}
}
