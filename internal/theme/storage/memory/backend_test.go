package memory

import (
	"testing"

	"github.com/bornholm/syscommerce/internal/theme/storage/testsuite"
)

func TestBackend(t *testing.T) {
	testsuite.TestBackend(t, Type, &Options{})
}
