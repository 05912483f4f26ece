package setup

import (
	"context"
	"sync"

	"github.com/bornholm/syscommerce/internal/config"
	"github.com/pkg/errors"
)

type createFromConfigFunc[T any] func(ctx context.Context, conf *config.Config) (T, error)

// createFromConfigOnce memoizes the result of the given constructor so that
// services shared by several handlers are only created once.
func createFromConfigOnce[T any](fn createFromConfigFunc[T]) createFromConfigFunc[T] {
	var (
		once  sync.Once
		value T
		err   error
	)

	return func(ctx context.Context, conf *config.Config) (T, error) {
		once.Do(func() {
			value, err = fn(ctx, conf)
		})
		if err != nil {
			return *new(T), errors.WithStack(err)
		}

		return value, nil
	}
}
