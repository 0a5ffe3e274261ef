package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMakesUniqueDirectory(t *testing.T) {
	base := t.TempDir()

	first := NewManager(base)
	require.NoError(t, first.Create())
	second := NewManager(base)
	require.NoError(t, second.Create())

	assert.NotEqual(t, first.Path(), second.Path(), "same-second runs must not collide")

	for _, m := range []*Manager{first, second} {
		info, err := os.Stat(m.Path())
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		assert.True(t, strings.HasPrefix(filepath.Base(m.Path()), "refsync-"))
	}
}

func TestPathEmptyBeforeCreate(t *testing.T) {
	m := NewManager(t.TempDir())
	assert.Empty(t, m.Path())
}

func TestCleanup(t *testing.T) {
	m := NewManager(t.TempDir())
	require.NoError(t, m.Create())
	path := m.Path()

	require.NoError(t, m.Cleanup())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.Empty(t, m.Path())

	assert.NoError(t, m.Cleanup(), "cleanup is idempotent")
}
