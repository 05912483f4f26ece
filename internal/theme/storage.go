package theme

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bornholm/syscommerce/pkg/log"
	"github.com/pkg/errors"
)

// StorageKey is the key under which the mode is persisted.
const StorageKey = "theme"

type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

type MemoryStorage struct {
	mutex  sync.RWMutex
	values map[string]string
}

// Get implements Storage.
func (s *MemoryStorage) Get(ctx context.Context, key string) (string, bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	value, exists := s.values[key]

	return value, exists, nil
}

// Set implements Storage.
func (s *MemoryStorage) Set(ctx context.Context, key string, value string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.values[key] = value

	return nil
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		values: make(map[string]string),
	}
}

var _ Storage = &MemoryStorage{}

// FallbackStorage never fails: values are mirrored in memory and served from
// there whenever the backend cannot be reached.
type FallbackStorage struct {
	backend Storage
	memory  *MemoryStorage
}

// Get implements Storage.
func (s *FallbackStorage) Get(ctx context.Context, key string) (string, bool, error) {
	if s.backend != nil {
		value, exists, err := s.backend.Get(ctx, key)
		if err == nil {
			return value, exists, nil
		}

		slog.WarnContext(ctx, "could not read from theme storage, using in-memory value", log.Error(errors.WithStack(err)), slog.String("key", key))
	}

	return s.memory.Get(ctx, key)
}

// Set implements Storage.
func (s *FallbackStorage) Set(ctx context.Context, key string, value string) error {
	if err := s.memory.Set(ctx, key, value); err != nil {
		return errors.WithStack(err)
	}

	if s.backend == nil {
		return nil
	}

	if err := s.backend.Set(ctx, key, value); err != nil {
		slog.WarnContext(ctx, "could not write to theme storage, keeping in-memory value", log.Error(errors.WithStack(err)), slog.String("key", key))
	}

	return nil
}

func NewFallbackStorage(backend Storage) *FallbackStorage {
	return &FallbackStorage{
		backend: backend,
		memory:  NewMemoryStorage(),
	}
}

var _ Storage = &FallbackStorage{}
