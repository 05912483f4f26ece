package storage

import (
	"context"

	"github.com/pkg/errors"
)

// Scoped exposes a single scope of a backend as a flat key-value storage.
type Scoped struct {
	backend Backend
	scope   string
}

func (s *Scoped) Get(ctx context.Context, key string) (string, bool, error) {
	value, exists, err := s.backend.Get(ctx, s.scope, key)
	if err != nil {
		return "", false, errors.WithStack(err)
	}

	return value, exists, nil
}

func (s *Scoped) Set(ctx context.Context, key string, value string) error {
	if err := s.backend.Set(ctx, s.scope, key, value); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func NewScoped(backend Backend, scope string) *Scoped {
	return &Scoped{
		backend: backend,
		scope:   scope,
	}
}
