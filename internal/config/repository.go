package config

import (
	"context"
	"fmt"

	"task-list/internal/repository"
	"task-list/internal/repository/memory"
	"task-list/internal/repository/sqlite"
)

// CreateRepository creates the collection backend selected by the configuration
func CreateRepository(ctx context.Context, config *Config) (repository.Repository, error) {
	switch config.Store.Backend {
	case BackendMemory:
		return memory.New(), nil
	case BackendSQLite:
		repo, err := sqlite.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sqlite store: %w", err)
		}
		return repo, nil
	default:
		return nil, &ConfigError{Field: "store.backend", Message: fmt.Sprintf("unknown backend %q", config.Store.Backend)}
	}
}
