package memory

import (
	"context"
	"sync"

	"github.com/bornholm/syscommerce/internal/theme/storage"
)

// Backend keeps values for the lifetime of the process.
type Backend struct {
	mutex  sync.RWMutex
	scopes map[string]map[string]string
}

// Get implements storage.Backend.
func (b *Backend) Get(ctx context.Context, scope string, key string) (string, bool, error) {
	b.mutex.RLock()
	defer b.mutex.RUnlock()

	values, exists := b.scopes[scope]
	if !exists {
		return "", false, nil
	}

	value, exists := values[key]

	return value, exists, nil
}

// Set implements storage.Backend.
func (b *Backend) Set(ctx context.Context, scope string, key string, value string) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	values, exists := b.scopes[scope]
	if !exists {
		values = make(map[string]string)
		b.scopes[scope] = values
	}

	values[key] = value

	return nil
}

func NewBackend() *Backend {
	return &Backend{
		scopes: make(map[string]map[string]string),
	}
}

var _ storage.Backend = &Backend{}
