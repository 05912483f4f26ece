package all

import (
	_ "github.com/bornholm/syscommerce/internal/theme/storage/memory"
	_ "github.com/bornholm/syscommerce/internal/theme/storage/s3"
	_ "github.com/bornholm/syscommerce/internal/theme/storage/sqlite"
)
