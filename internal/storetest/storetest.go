// Package storetest provides a behavioral test suite shared by every
// types.Store implementation.
package storetest

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/keeper/pkg/types"
)

// Factory returns a freshly attached store. The suite calls it once per
// subtest; cleanup is the factory's responsibility (t.Cleanup).
type Factory func(t *testing.T) types.Store

// Run exercises the fail-soft Store contract against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("absent resource is not a failure", func(t *testing.T) {
		s := newStore(t)
		assert.False(t, s.Exists("never-created"))
		assert.Equal(t, "", s.Read("never-created"))
	})

	t.Run("write then read round-trips", func(t *testing.T) {
		s := newStore(t)
		require.True(t, s.Write("score", "42"))
		assert.True(t, s.Exists("score"))
		assert.Equal(t, "42", s.Read("score"))
	})

	t.Run("integer round-trip", func(t *testing.T) {
		s := newStore(t)
		for _, n := range []int{0, 1, -1, 7, 1 << 30, -(1 << 30)} {
			require.True(t, s.Write("n", strconv.Itoa(n)))
			got, err := strconv.Atoi(s.Read("n"))
			require.NoError(t, err)
			assert.Equal(t, n, got)
		}
	})

	t.Run("overwrite leaves no residue", func(t *testing.T) {
		s := newStore(t)
		require.True(t, s.Write("best", "5"))
		require.True(t, s.Write("best", "3"))
		assert.Equal(t, "3", s.Read("best"))

		require.True(t, s.Write("best", "12345"))
		require.True(t, s.Write("best", "9"))
		assert.Equal(t, "9", s.Read("best"))
	})

	t.Run("write of empty text creates an empty resource", func(t *testing.T) {
		s := newStore(t)
		require.True(t, s.Write("blank", ""))
		assert.True(t, s.Exists("blank"))
		assert.Equal(t, "", s.Read("blank"))
	})

	t.Run("append accumulates", func(t *testing.T) {
		s := newStore(t)
		require.True(t, s.Write("log", "a"))
		require.True(t, s.Append("log", "b"))
		assert.Equal(t, "ab", s.Read("log"))
	})

	t.Run("append creates absent resource", func(t *testing.T) {
		s := newStore(t)
		require.True(t, s.Append("fresh", "x"))
		assert.True(t, s.Exists("fresh"))
		assert.Equal(t, "x", s.Read("fresh"))
	})

	t.Run("delete clears existence", func(t *testing.T) {
		s := newStore(t)
		require.True(t, s.Write("gone", "1"))
		assert.True(t, s.Delete("gone"))
		assert.False(t, s.Exists("gone"))
		assert.Equal(t, "", s.Read("gone"))
	})

	t.Run("delete of absent resource reports false", func(t *testing.T) {
		s := newStore(t)
		assert.False(t, s.Delete("missing"))
	})

	t.Run("multi-line text is stored verbatim", func(t *testing.T) {
		s := newStore(t)
		text := "line one\nline two\n"
		require.True(t, s.Write("multi", text))
		assert.Equal(t, text, s.Read("multi"))
	})
}
