package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSteamRootProbesCandidatesInOrder(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".steam", "root"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".steam", "steam"), 0755))

	l := NewSteamLocator(home, "")
	assert.Equal(t, filepath.Join(home, ".steam", "steam"), l.SteamRoot())
}

func TestSteamRootIsCached(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	l := NewSteamLocator(home, "")
	assert.Equal(t, "", l.SteamRoot())

	require.NoError(t, os.MkdirAll(filepath.Join(home, ".local", "share", "Steam"), 0755))
	assert.Equal(t, "", l.SteamRoot())

	l.ClearCache()
	assert.Equal(t, filepath.Join(home, ".local", "share", "Steam"), l.SteamRoot())
}

func TestUserDirsSortedNumeric(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, d := range []string{"200", "30", "anonymous", "0"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, "userdata", d), 0755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "userdata", "12"), nil, 0644))

	dirs, err := NewSteamLocator("", root).UserDirs()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "userdata", "0"),
		filepath.Join(root, "userdata", "30"),
		filepath.Join(root, "userdata", "200"),
	}, dirs)
}

func TestUserDirsWithoutUserdata(t *testing.T) {
	t.Parallel()

	dirs, err := NewSteamLocator("", t.TempDir()).UserDirs()
	require.NoError(t, err)
	assert.Empty(t, dirs)

	dirs, err = NewSteamLocator(t.TempDir(), "").UserDirs()
	require.NoError(t, err)
	assert.Empty(t, dirs)
}
