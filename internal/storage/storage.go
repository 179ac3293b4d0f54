package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/grupomymce/sitemap-tools/internal/models"
)

type Store interface {
	Initialize() error
	Close() error

	// Run history operations
	SaveRun(ctx context.Context, run *models.Run) error
	GetRun(ctx context.Context, id uuid.UUID) (*models.Run, error)
	ListRuns(ctx context.Context, limit, offset int) ([]*models.Run, error)
}

// NewStore opens and initializes the store for driver ("sqlite3" or
// "postgres"). An empty driver means history is disabled and returns nil.
func NewStore(driver, url string) (Store, error) {
	var (
		store Store
		err   error
	)

	switch driver {
	case "":
		return nil, nil
	case "sqlite3", "sqlite":
		store, err = NewSQLiteStore(url)
	case "postgres", "postgresql":
		store, err = NewPostgresStore(url)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", driver, err)
	}

	if err := store.Initialize(); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to initialize %s store: %w", driver, err)
	}
	return store, nil
}
