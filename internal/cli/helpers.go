package cli

import (
	"errors"

	"github.com/mesh-intelligence/keeper/pkg/keeper"
	"github.com/mesh-intelligence/keeper/pkg/types"
)

// attachBackend resolves the backend config and attaches it. The caller must
// defer backend.Detach(). Invalid backend names are user errors; anything
// else is a system error.
func (a *app) attachBackend() (types.Backend, types.Config, error) {
	cfg, err := a.backendConfig()
	if err != nil {
		return nil, cfg, sysError("%s", err)
	}

	backend, err := keeper.NewBackend(cfg, a.logger)
	if err != nil {
		if errors.Is(err, types.ErrBackendUnknown) || errors.Is(err, types.ErrBackendEmpty) {
			return nil, cfg, userError("%s (valid: %v)", err, types.KnownBackends())
		}
		return nil, cfg, sysError("%s", err)
	}
	a.logger.Debug("backend attached", "backend", cfg.Backend, "data_dir", cfg.DataDir)
	return backend, cfg, nil
}
