// Package all registers every storage backend with the factory. Binaries
// blank-import it so config alone decides which backend runs.
package all

import (
	_ "dataforge/internal/storage/mssql"
	_ "dataforge/internal/storage/postgres"
	_ "dataforge/internal/storage/sqlite"
)
