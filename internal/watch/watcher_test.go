package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/keeper/internal/filestore"
	"github.com/mesh-intelligence/keeper/internal/scalar"
	"github.com/mesh-intelligence/keeper/pkg/types"
)

func attached(t *testing.T, dir string) *filestore.Backend {
	t.Helper()
	b := filestore.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendFile, DataDir: dir}))
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestNew_MissingDirectory(t *testing.T) {
	b := attached(t, t.TempDir())
	_, err := New(b, filepath.Join("missing", "best"))
	assert.Error(t, err)
}

func TestChange_Outcome(t *testing.T) {
	assert.Equal(t, scalar.Outcome{Kind: scalar.Absent}, Change{Name: "best"}.Outcome())
	assert.Equal(t, scalar.Outcome{Kind: scalar.Empty}, Change{Name: "best", Found: true}.Outcome())
	assert.Equal(t, scalar.Outcome{Kind: scalar.Value, N: 3}, Change{Name: "best", Found: true, Text: "3"}.Outcome())
}

func TestWatcher_ReportsWritesAndRemoval(t *testing.T) {
	dir := t.TempDir()
	b := attached(t, dir)
	path := filepath.Join(dir, "best")

	w, err := New(b, "best")
	require.NoError(t, err)
	assert.Equal(t, path, w.Path())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan Change, 16)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(c Change) { changes <- c })
	}()

	// Unrelated files in the directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other"), []byte("1"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("42"), 0o644))

	c := waitFor(t, changes, func(c Change) bool { return c.Found && c.Text == "42" })
	assert.Equal(t, "best", c.Name)
	assert.Equal(t, scalar.Outcome{Kind: scalar.Value, N: 42}, c.Outcome())

	// Truncating to empty is a present, empty resource.
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	c = waitFor(t, changes, func(c Change) bool { return c.Found && c.Text == "" })
	assert.Equal(t, scalar.Empty, c.Outcome().Kind)

	// Removal is absence, not an empty value.
	require.NoError(t, os.Remove(path))
	c = waitFor(t, changes, func(c Change) bool { return !c.Found })
	assert.Equal(t, "", c.Text)
	assert.Equal(t, scalar.Absent, c.Outcome().Kind)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWatcher_ReadsThroughBackend(t *testing.T) {
	b := attached(t, t.TempDir())
	w, err := New(b, "best")
	require.NoError(t, err)
	defer w.watcher.Close()

	assert.Equal(t, Change{Name: "best"}, w.current())
	require.True(t, b.Write("best", "5"))
	assert.Equal(t, Change{Name: "best", Found: true, Text: "5"}, w.current())

	// A detached backend reports the resource as unavailable.
	require.NoError(t, b.Detach())
	assert.Equal(t, Change{Name: "best"}, w.current())
}

// waitFor drains changes until match succeeds or a timeout elapses.
// A single write may surface as several events with partial content.
func waitFor(t *testing.T, changes <-chan Change, match func(Change) bool) Change {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case c := <-changes:
			if match(c) {
				return c
			}
		case <-timeout:
			t.Fatal("timed out waiting for change")
			return Change{}
		}
	}
}
