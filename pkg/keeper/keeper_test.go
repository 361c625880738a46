package keeper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/keeper/internal/filestore"
	"github.com/mesh-intelligence/keeper/internal/sqlite"
	"github.com/mesh-intelligence/keeper/pkg/types"
)

func TestNewBackend(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		b, err := NewBackend(types.Config{Backend: types.BackendFile, DataDir: t.TempDir()}, nil)
		require.NoError(t, err)
		defer b.Detach()
		assert.IsType(t, &filestore.Backend{}, b)
		assert.True(t, b.Write("x", "1"))
	})

	t.Run("sqlite", func(t *testing.T) {
		b, err := NewBackend(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}, nil)
		require.NoError(t, err)
		defer b.Detach()
		assert.IsType(t, &sqlite.Backend{}, b)
		assert.True(t, b.Write("x", "1"))
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := NewBackend(types.Config{Backend: "tape"}, nil)
		assert.ErrorIs(t, err, types.ErrBackendUnknown)
	})

	t.Run("empty backend", func(t *testing.T) {
		_, err := NewBackend(types.Config{}, nil)
		assert.ErrorIs(t, err, types.ErrBackendEmpty)
	})
}
