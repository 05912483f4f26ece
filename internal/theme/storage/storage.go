package storage

import (
	"context"
	"slices"
	"sync"

	"github.com/pkg/errors"
)

var ErrNotRegistered = errors.New("storage type not registered")

type Type string

// Backend persists key-value pairs partitioned by scope (one scope per
// client).
type Backend interface {
	Get(ctx context.Context, scope string, key string) (string, bool, error)
	Set(ctx context.Context, scope string, key string, value string) error
}

type CreateFunc func(options any) (Backend, error)

var (
	registryMutex sync.RWMutex
	registry      = map[Type]CreateFunc{}
)

func Register(storageType Type, create CreateFunc) {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	registry[storageType] = create
}

func Registered() []Type {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	types := make([]Type, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}

	slices.Sort(types)

	return types
}

func New(storageType Type, options any) (Backend, error) {
	registryMutex.RLock()
	create, exists := registry[storageType]
	registryMutex.RUnlock()

	if !exists {
		return nil, errors.Wrapf(ErrNotRegistered, "could not find storage type '%s'", storageType)
	}

	backend, err := create(options)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return backend, nil
}
