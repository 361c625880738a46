package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/keeper/internal/storetest"
	"github.com/mesh-intelligence/keeper/pkg/types"
)

func attached(t *testing.T, dir string) *Backend {
	t.Helper()
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestBackend_StoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) types.Store {
		return attached(t, t.TempDir())
	})
}

func TestBackend_Attach(t *testing.T) {
	tmpDir := t.TempDir()

	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: tmpDir,
	}

	require.NoError(t, b.Attach(config))
	defer b.Detach()

	_, err := os.Stat(filepath.Join(tmpDir, DBFileName))
	assert.NoError(t, err, "keeper.db not created")

	assert.ErrorIs(t, b.Attach(config), types.ErrAlreadyAttached)
}

func TestBackend_AttachRejectsInvalidConfig(t *testing.T) {
	b := NewBackend()
	assert.ErrorIs(t, b.Attach(types.Config{DataDir: t.TempDir()}), types.ErrBackendEmpty)
	assert.ErrorIs(t, b.Attach(types.Config{Backend: "postgres"}), types.ErrBackendUnknown)
}

func TestBackend_Detach(t *testing.T) {
	b := attached(t, t.TempDir())
	require.True(t, b.Write("score", "7"))

	require.NoError(t, b.Detach())
	require.NoError(t, b.Detach(), "second Detach should not error")

	assert.False(t, b.Exists("score"))
	assert.Equal(t, "", b.Read("score"))
	assert.False(t, b.Write("score", "8"))
	assert.False(t, b.Append("score", "8"))
	assert.False(t, b.Delete("score"))
}

func TestBackend_PersistsAcrossAttach(t *testing.T) {
	dir := t.TempDir()

	first := attached(t, dir)
	assert.False(t, first.Exists("best"))
	require.True(t, first.Write("best", "7"))
	require.NoError(t, first.Detach())

	second := attached(t, dir)
	assert.True(t, second.Exists("best"))
	assert.Equal(t, "7", second.Read("best"))
}

func TestBackend_IDIsStable(t *testing.T) {
	b := attached(t, t.TempDir())
	assert.Equal(t, "", b.ID("best"), "absent resource has no id")

	require.True(t, b.Write("best", "9"))
	id := b.ID("best")
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())

	require.True(t, b.Write("best", "4"))
	require.True(t, b.Append("best", "2"))
	assert.Equal(t, id, b.ID("best"), "overwrite and append keep the id")
	assert.Equal(t, "42", b.Read("best"))

	require.True(t, b.Write("other", "1"))
	assert.NotEqual(t, id, b.ID("other"))

	require.True(t, b.Delete("best"))
	assert.Equal(t, "", b.ID("best"))
	require.True(t, b.Write("best", "3"))
	assert.NotEqual(t, id, b.ID("best"), "recreated resource gets a new id")

	require.NoError(t, b.Detach())
	assert.Equal(t, "", b.ID("best"))
}

func TestBackend_NamesAreOpaqueKeys(t *testing.T) {
	b := attached(t, t.TempDir())

	require.True(t, b.Write("no/such/dir/score", "1"))
	assert.Equal(t, "1", b.Read("no/such/dir/score"))
	assert.False(t, b.Exists("no/such/dir"))
}
