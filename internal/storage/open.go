package storage

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitual/internal/config"
	"github.com/julianstephens/habitual/internal/storage/postgres"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
)

// Migrator is implemented by backends with a versioned schema. Migrate
// returns how many migrations it applied.
type Migrator interface {
	Migrate(progress func(string)) (int, error)
}

// Open returns the backend for dsn without connecting: PostgreSQL for
// postgres:// and postgresql:// URLs, SQLite for anything else, which is
// taken as a file path (~ is expanded). Credential checks on the
// connection string are the caller's concern.
func Open(dsn string) (Provider, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("no database configured")
	}

	if config.IsPostgresDSN(dsn) {
		return postgres.New(dsn), nil
	}

	path, err := config.ExpandPath(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid database path %q: %w", dsn, err)
	}
	return sqlite.NewStore(path), nil
}
