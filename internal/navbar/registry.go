package navbar

import (
	"context"
	"log/slog"
	"time"

	"github.com/bornholm/syscommerce/internal/nav"
	"github.com/bornholm/syscommerce/internal/syncx"
	"github.com/bornholm/syscommerce/internal/theme/storage"
	"github.com/bornholm/syscommerce/internal/theme/storage/memory"
)

// Registry holds one navbar component per identified client. Components of
// clients idle for too long are released by Evict and rebuilt from the
// persisted theme on their next visit.
type Registry struct {
	backend    storage.Backend
	logout     nav.LogoutFunc
	components syncx.Map[string, *Component]
	now        func() time.Time
}

// Mount returns the component of the given client, creating and
// initializing it on first use.
func (r *Registry) Mount(ctx context.Context, clientID string) *Component {
	component, exists := r.components.Load(clientID)
	if !exists {
		created := newComponent(clientID, storage.NewScoped(r.backend, clientID), r.logout)

		var loaded bool
		component, loaded = r.components.LoadOrStore(clientID, created)
		if !loaded {
			slog.DebugContext(ctx, "navbar component mounted", slog.String("client", clientID))
		}
	}

	component.touch(r.now())
	component.theme.Initialize(ctx)

	return component
}

// Transient builds a component which is neither registered nor persisted,
// for clients whose identifier was issued by the current request. Browsers
// which do not keep cookies never get past this stage.
func (r *Registry) Transient(ctx context.Context, clientID string) *Component {
	component := newComponent(clientID, storage.NewScoped(memory.NewBackend(), clientID), r.logout)
	component.theme.Initialize(ctx)

	return component
}

// Evict releases the components not mounted for longer than maxIdle and
// returns how many were released. Components with a logout in flight are
// kept until it settles.
func (r *Registry) Evict(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)
	evicted := 0

	r.components.Range(func(clientID string, component *Component) bool {
		if component.LastSeen().After(cutoff) || component.logout.InFlight() {
			return true
		}

		r.components.Delete(clientID)
		evicted++

		return true
	})

	return evicted
}

func (r *Registry) Unmount(clientID string) {
	r.components.Delete(clientID)
}

func (r *Registry) Len() int {
	return r.components.Len()
}

func NewRegistry(backend storage.Backend, logout nav.LogoutFunc) *Registry {
	return &Registry{
		backend: backend,
		logout:  logout,
		now:     time.Now,
	}
}
