package registry

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/szabotudor/modecky/pkg/models"
)

type fakeShortcuts map[models.GameID]string

func (f fakeShortcuts) ResolveName(id models.GameID) string {
	if name, ok := f[id]; ok {
		return name
	}
	return models.NoGameFound
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	return NewRegistry(filepath.Join(t.TempDir(), "settings", "modecky.json"), nil, nil)
}

func TestUnknownGameIsNotManaged(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	managed, err := reg.IsManaged(10)
	require.NoError(t, err)
	assert.False(t, managed)

	path, ok, err := reg.InstallPath(10)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, path)
}

func TestManageAndUnmanage(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	gameDir := t.TempDir()

	out, err := reg.Manage(489830, "G", gameDir)
	require.NoError(t, err)
	assert.True(t, out.Applied)

	managed, err := reg.IsManaged(489830)
	require.NoError(t, err)
	assert.True(t, managed)

	path, ok, err := reg.InstallPath(489830)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, gameDir, path)
	assert.DirExists(t, filepath.Join(gameDir, models.MarkerDir))

	out, err = reg.Unmanage(489830)
	require.NoError(t, err)
	assert.True(t, out.Applied)

	managed, err = reg.IsManaged(489830)
	require.NoError(t, err)
	assert.False(t, managed)
	assert.NoDirExists(t, filepath.Join(gameDir, models.MarkerDir))
}

func TestManageInvalidPathLeavesDocumentUntouched(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	_, err := reg.Manage(1, "First", t.TempDir())
	require.NoError(t, err)
	before, err := os.ReadFile(reg.FilePath())
	require.NoError(t, err)

	out, err := reg.Manage(2, "Ghost", filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.False(t, out.Applied)
	assert.True(t, errors.Is(out.Reason, models.ErrInvalidPath))

	after, err := os.ReadFile(reg.FilePath())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestManageInvalidPathOnFirstRunWritesNothing(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	out, err := reg.Manage(2, "File", file)
	require.NoError(t, err)
	assert.False(t, out.Applied)
	assert.NoFileExists(t, reg.FilePath())
}

func TestRemanageMovesEmptyMarker(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	oldDir, newDir := t.TempDir(), t.TempDir()

	_, err := reg.Manage(7, "Old", oldDir)
	require.NoError(t, err)
	_, err = reg.Manage(7, "New", newDir)
	require.NoError(t, err)

	game, ok, err := reg.Get(7)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.ManagedGame{Name: "New", Path: newDir}, game)
	assert.NoDirExists(t, filepath.Join(oldDir, models.MarkerDir))
	assert.DirExists(t, filepath.Join(newDir, models.MarkerDir))
}

func TestRemanageKeepsNonEmptyMarker(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	oldDir, newDir := t.TempDir(), t.TempDir()

	_, err := reg.Manage(7, "Old", oldDir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(oldDir, models.MarkerDir, "some-mod"), nil, 0644))

	_, err = reg.Manage(7, "New", newDir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(oldDir, models.MarkerDir, "some-mod"))
}

func TestUnmanageUnknownIsNoOp(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	out, err := reg.Unmanage(99)
	require.NoError(t, err)
	assert.False(t, out.Applied)
	assert.True(t, errors.Is(out.Reason, models.ErrNotManaged))
	assert.NoFileExists(t, reg.FilePath())
}

func TestUnmanageRemovesProfiles(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	gameDir := t.TempDir()
	_, err := reg.Manage(3, "G", gameDir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(models.ProfilesPath(gameDir), []byte(`{"profiles":["a"]}`), 0644))

	_, err = reg.Unmanage(3)
	require.NoError(t, err)
	assert.NoFileExists(t, models.ProfilesPath(gameDir))
	assert.DirExists(t, gameDir)
}

func TestDocumentShape(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	gameDir := t.TempDir()
	_, err := reg.Manage(4294967295, "Shortcut", gameDir)
	require.NoError(t, err)

	content, err := os.ReadFile(reg.FilePath())
	require.NoError(t, err)
	assert.JSONEq(t, `{"4294967295":{"name":"Shortcut","path":"`+gameDir+`"}}`, string(content))
}

func TestCorruptDocumentIsDecodeFailure(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(reg.FilePath()), 0755))
	require.NoError(t, os.WriteFile(reg.FilePath(), []byte("[1,2"), 0644))

	_, err := reg.IsManaged(1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrDecode))

	_, err = reg.Manage(1, "G", t.TempDir())
	assert.True(t, errors.Is(err, models.ErrDecode))
}

func TestListSortedByID(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	for _, id := range []models.GameID{30, 1, 20} {
		_, err := reg.Manage(id, id.String(), t.TempDir())
		require.NoError(t, err)
	}
	entries, err := reg.List()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, []models.GameID{1, 20, 30}, []models.GameID{entries[0].ID, entries[1].ID, entries[2].ID})
}

func TestResolveShortcutName(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(filepath.Join(t.TempDir(), "r.json"), fakeShortcuts{5: "Emulator"}, nil)
	assert.Equal(t, "Emulator", reg.ResolveShortcutName(5))
	assert.Equal(t, models.NoGameFound, reg.ResolveShortcutName(6))

	assert.Equal(t, models.NoGameFound, newTestRegistry(t).ResolveShortcutName(5))
}

func TestConcurrentManageKeepsEveryEntry(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(id models.GameID, dir string) {
			defer wg.Done()
			_, err := reg.Manage(id, "G", dir)
			assert.NoError(t, err)
		}(models.GameID(i), t.TempDir())
	}
	wg.Wait()

	entries, err := reg.List()
	require.NoError(t, err)
	assert.Len(t, entries, 16)
}
