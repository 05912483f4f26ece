package memory

import (
	"github.com/bornholm/syscommerce/internal/theme/storage"
)

const Type storage.Type = "memory"

func init() {
	storage.Register(Type, CreateBackendFromOptions)
}

type Options struct{}

func CreateBackendFromOptions(options any) (storage.Backend, error) {
	return NewBackend(), nil
}
