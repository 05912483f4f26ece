package nav

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bornholm/syscommerce/pkg/log"
	"github.com/pkg/errors"
)

type LogoutFunc func(ctx context.Context) error

// LogoutFlow guards the asynchronous logout operation so that at most one
// runs at a time.
type LogoutFlow struct {
	mutex    sync.Mutex
	logout   LogoutFunc
	inFlight bool
}

// Trigger starts the logout operation when the user is authenticated and no
// other logout is in flight. The returned channel is closed once the
// operation settled. A nil channel means the trigger was ignored.
func (f *LogoutFlow) Trigger(ctx context.Context, auth *AuthState) <-chan struct{} {
	if auth == nil {
		return nil
	}

	f.mutex.Lock()
	if f.inFlight {
		f.mutex.Unlock()
		return nil
	}
	f.inFlight = true
	f.mutex.Unlock()

	done := make(chan struct{})

	ctx = context.WithoutCancel(ctx)

	go func() {
		defer close(done)
		defer f.settle()

		if err := f.logout(ctx); err != nil {
			slog.ErrorContext(ctx, "logout failed", log.Error(errors.WithStack(err)))
		}
	}()

	return done
}

func (f *LogoutFlow) InFlight() bool {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	return f.inFlight
}

func (f *LogoutFlow) settle() {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.inFlight = false
}

func NewLogoutFlow(logout LogoutFunc) *LogoutFlow {
	return &LogoutFlow{
		logout: logout,
	}
}
