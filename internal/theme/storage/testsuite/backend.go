package testsuite

import (
	"context"
	"testing"

	"github.com/bornholm/syscommerce/internal/theme/storage"
	"github.com/pkg/errors"
)

type backendTestCase struct {
	Name string
	Run  func(ctx context.Context, backend storage.Backend) error
}

var backendTestCases = []backendTestCase{
	{
		Name: "GetMissingKey",
		Run:  GetMissingKey,
	},
	{
		Name: "SetThenGet",
		Run:  SetThenGet,
	},
	{
		Name: "Overwrite",
		Run:  Overwrite,
	},
	{
		Name: "ScopeIsolation",
		Run:  ScopeIsolation,
	},
}

func TestBackend(t *testing.T, storageType storage.Type, opts any) {
	t.Logf("Using storage '%s'", storageType)

	for _, tc := range backendTestCases {
		t.Run(tc.Name, func(t *testing.T) {
			backend, err := storage.New(storageType, opts)
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if err := tc.Run(t.Context(), backend); err != nil {
				t.Errorf("%+v", errors.WithStack(err))
			}
		})
	}
}

func GetMissingKey(ctx context.Context, backend storage.Backend) error {
	value, exists, err := backend.Get(ctx, "missing-scope", "theme")
	if err != nil {
		return errors.WithStack(err)
	}

	if exists {
		return errors.Errorf("expected key to be absent, got value '%s'", value)
	}

	return nil
}

func SetThenGet(ctx context.Context, backend storage.Backend) error {
	if err := backend.Set(ctx, "set-then-get", "theme", "light"); err != nil {
		return errors.WithStack(err)
	}

	value, exists, err := backend.Get(ctx, "set-then-get", "theme")
	if err != nil {
		return errors.WithStack(err)
	}

	if !exists {
		return errors.New("expected key to exist")
	}

	if value != "light" {
		return errors.Errorf("expected value 'light', got '%s'", value)
	}

	return nil
}

func Overwrite(ctx context.Context, backend storage.Backend) error {
	for _, v := range []string{"light", "dark", "light", "dark"} {
		if err := backend.Set(ctx, "overwrite", "theme", v); err != nil {
			return errors.WithStack(err)
		}
	}

	value, _, err := backend.Get(ctx, "overwrite", "theme")
	if err != nil {
		return errors.WithStack(err)
	}

	if value != "dark" {
		return errors.Errorf("expected value 'dark', got '%s'", value)
	}

	return nil
}

func ScopeIsolation(ctx context.Context, backend storage.Backend) error {
	if err := backend.Set(ctx, "scope-a", "theme", "light"); err != nil {
		return errors.WithStack(err)
	}

	if err := backend.Set(ctx, "scope-b", "theme", "dark"); err != nil {
		return errors.WithStack(err)
	}

	scoped := storage.NewScoped(backend, "scope-a")

	value, exists, err := scoped.Get(ctx, "theme")
	if err != nil {
		return errors.WithStack(err)
	}

	if !exists || value != "light" {
		return errors.Errorf("expected scope-a value 'light', got '%s' (exists: %v)", value, exists)
	}

	return nil
}
