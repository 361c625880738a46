// Package keeper is the public entry point for the keeper storage adapters.
//
// Example:
//
//	backend, err := keeper.NewBackend(types.Config{
//	    Backend: types.BackendFile,
//	    DataDir: ".keeper-data",
//	})
//	if err != nil {
//	    return err
//	}
//	defer backend.Detach()
//	best := persist.New(backend, "best")
package keeper

import (
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/keeper/internal/filestore"
	"github.com/mesh-intelligence/keeper/internal/sqlite"
	"github.com/mesh-intelligence/keeper/pkg/types"
)

// Version is the keeper release version.
const Version = "0.1.0"

// NewBackend creates the backend named by config.Backend and attaches it.
// The caller must Detach the returned backend.
func NewBackend(config types.Config, logger *slog.Logger) (types.Backend, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("backend %q: %w", config.Backend, err)
	}

	var backend types.Backend
	switch config.Backend {
	case types.BackendSQLite:
		backend = sqlite.NewBackend(sqlite.WithLogger(logger))
	default:
		backend = filestore.NewBackend(filestore.WithLogger(logger))
	}

	if err := backend.Attach(config); err != nil {
		return nil, fmt.Errorf("attach %s backend: %w", config.Backend, err)
	}
	return backend, nil
}
