package profiles

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/szabotudor/modecky/pkg/models"
	"github.com/szabotudor/modecky/pkg/registry"
)

const gameID models.GameID = 489830

type fixture struct {
	reg     *registry.Registry
	store   *Store
	gameDir string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	reg := registry.NewRegistry(filepath.Join(t.TempDir(), "modecky.json"), nil, nil)
	gameDir := t.TempDir()
	out, err := reg.Manage(gameID, "Skyrim", gameDir)
	require.NoError(t, err)
	require.True(t, out.Applied)
	return fixture{reg: reg, store: NewStore(reg, reg.Locks(), nil), gameDir: gameDir}
}

func ptr(s string) *string { return &s }

func readDocument(t *testing.T, gameDir string) map[string]any {
	t.Helper()
	content, err := os.ReadFile(models.ProfilesPath(gameDir))
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(content, &doc))
	return doc
}

func TestUnmanagedGameReadsEmptyAndWritesNothing(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	const other models.GameID = 1

	mods, err := f.store.ListMods(other)
	require.NoError(t, err)
	assert.Empty(t, mods)

	profiles, err := f.store.ListProfiles(other)
	require.NoError(t, err)
	assert.Empty(t, profiles)

	_, ok, err := f.store.ActiveProfile(other)
	require.NoError(t, err)
	assert.False(t, ok)

	order, err := f.store.LoadOrder(other, "x")
	require.NoError(t, err)
	assert.Empty(t, order)

	name, out, err := f.store.CreateProfile(other)
	require.NoError(t, err)
	assert.Empty(t, name)
	assert.True(t, errors.Is(out.Reason, models.ErrNotManaged))

	for _, op := range []func() (models.Outcome, error){
		func() (models.Outcome, error) { return f.store.SetActiveProfile(other, ptr("x")) },
		func() (models.Outcome, error) { return f.store.RenameProfile(other, "x", ptr("y")) },
		func() (models.Outcome, error) { return f.store.SetLoadOrder(other, "x", []string{"m"}) },
	} {
		out, err := op()
		require.NoError(t, err)
		assert.False(t, out.Applied)
		assert.True(t, errors.Is(out.Reason, models.ErrNotManaged))
	}
}

func TestCreateProfile(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	first, out, err := f.store.CreateProfile(gameID)
	require.NoError(t, err)
	assert.True(t, out.Applied)
	assert.Regexp(t, `^[a-zA-Z0-9]{32}$`, first)

	second, _, err := f.store.CreateProfile(gameID)
	require.NoError(t, err)

	profiles, err := f.store.ListProfiles(gameID)
	require.NoError(t, err)
	assert.Equal(t, []string{first, second}, profiles)

	order, err := f.store.LoadOrder(gameID, first)
	require.NoError(t, err)
	assert.Equal(t, []string{}, order)
}

func TestSetActiveProfile(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	name, _, err := f.store.CreateProfile(gameID)
	require.NoError(t, err)

	out, err := f.store.SetActiveProfile(gameID, &name)
	require.NoError(t, err)
	assert.True(t, out.Applied)

	active, ok, err := f.store.ActiveProfile(gameID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, name, active)

	out, err = f.store.SetActiveProfile(gameID, ptr("not-a-profile"))
	require.NoError(t, err)
	assert.False(t, out.Applied)
	assert.True(t, errors.Is(out.Reason, models.ErrUnknownProfile))

	active, _, err = f.store.ActiveProfile(gameID)
	require.NoError(t, err)
	assert.Equal(t, name, active)

	out, err = f.store.SetActiveProfile(gameID, nil)
	require.NoError(t, err)
	assert.True(t, out.Applied)
	_, ok, err = f.store.ActiveProfile(gameID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NotContains(t, readDocument(t, f.gameDir), "active_profile")
}

func TestSetActiveUnknownStillPersists(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	require.NoFileExists(t, models.ProfilesPath(f.gameDir))

	_, err := f.store.SetActiveProfile(gameID, ptr("ghost"))
	require.NoError(t, err)
	assert.FileExists(t, models.ProfilesPath(f.gameDir))
}

func TestLoadOrderRoundTrip(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	name, _, err := f.store.CreateProfile(gameID)
	require.NoError(t, err)

	out, err := f.store.SetLoadOrder(gameID, name, []string{"m2", "m1", "m2"})
	require.NoError(t, err)
	assert.True(t, out.Applied)

	order, err := f.store.LoadOrder(gameID, name)
	require.NoError(t, err)
	assert.Equal(t, []string{"m2", "m1", "m2"}, order)
}

func TestSetLoadOrderUnknownProfile(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	out, err := f.store.SetLoadOrder(gameID, "ghost", []string{"m"})
	require.NoError(t, err)
	assert.False(t, out.Applied)
	assert.True(t, errors.Is(out.Reason, models.ErrUnknownProfile))

	doc := readDocument(t, f.gameDir)
	assert.Equal(t, map[string]any{}, doc["profile_data"])
}

func TestRenameProfileCarriesLoadOrderAndActive(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	a, _, err := f.store.CreateProfile(gameID)
	require.NoError(t, err)
	b, _, err := f.store.CreateProfile(gameID)
	require.NoError(t, err)
	_, err = f.store.SetLoadOrder(gameID, a, []string{"x", "y"})
	require.NoError(t, err)
	_, err = f.store.SetActiveProfile(gameID, &a)
	require.NoError(t, err)

	out, err := f.store.RenameProfile(gameID, a, ptr("Vanilla+"))
	require.NoError(t, err)
	assert.True(t, out.Applied)

	profiles, err := f.store.ListProfiles(gameID)
	require.NoError(t, err)
	assert.Equal(t, []string{b, "Vanilla+"}, profiles)

	order, err := f.store.LoadOrder(gameID, "Vanilla+")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, order)

	order, err = f.store.LoadOrder(gameID, a)
	require.NoError(t, err)
	assert.Empty(t, order)

	active, _, err := f.store.ActiveProfile(gameID)
	require.NoError(t, err)
	assert.Equal(t, "Vanilla+", active)

	// Persisted, not just held in memory.
	doc := readDocument(t, f.gameDir)
	assert.Contains(t, doc["profile_data"], "Vanilla+")
	assert.NotContains(t, doc["profile_data"], a)
}

func TestRenameToAbsentDeletes(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	a, _, err := f.store.CreateProfile(gameID)
	require.NoError(t, err)
	_, err = f.store.SetActiveProfile(gameID, &a)
	require.NoError(t, err)

	out, err := f.store.DeleteProfile(gameID, a)
	require.NoError(t, err)
	assert.True(t, out.Applied)

	doc, ok, err := f.store.Document(gameID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, doc.Profiles)
	assert.Empty(t, doc.ProfileData)
	assert.Nil(t, doc.ActiveProfile)
}

func TestRenameEdgeCases(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	a, _, err := f.store.CreateProfile(gameID)
	require.NoError(t, err)
	b, _, err := f.store.CreateProfile(gameID)
	require.NoError(t, err)

	out, err := f.store.RenameProfile(gameID, "ghost", ptr("new"))
	require.NoError(t, err)
	assert.True(t, errors.Is(out.Reason, models.ErrUnknownProfile))

	out, err = f.store.RenameProfile(gameID, a, &b)
	require.NoError(t, err)
	assert.True(t, errors.Is(out.Reason, models.ErrProfileExists))

	out, err = f.store.RenameProfile(gameID, a, ptr(""))
	require.NoError(t, err)
	assert.True(t, errors.Is(out.Reason, models.ErrInvalidName))

	_, err = f.store.SetLoadOrder(gameID, a, []string{"keep"})
	require.NoError(t, err)
	out, err = f.store.RenameProfile(gameID, a, &a)
	require.NoError(t, err)
	assert.True(t, out.Applied)

	order, err := f.store.LoadOrder(gameID, a)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep"}, order)

	profiles, err := f.store.ListProfiles(gameID)
	require.NoError(t, err)
	assert.Equal(t, []string{b, a}, profiles)
}

func TestListModsExcludesProfileDocument(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, _, err := f.store.CreateProfile(gameID)
	require.NoError(t, err)
	marker := models.MarkerPath(f.gameDir)
	require.NoError(t, os.Mkdir(filepath.Join(marker, "SkyUI"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(marker, "alternate-start.esp"), nil, 0644))

	mods, err := f.store.ListMods(gameID)
	require.NoError(t, err)
	assert.Equal(t, []string{"SkyUI", "alternate-start.esp"}, mods)
}

func TestListModsRecreatesMissingMarker(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	require.NoError(t, os.RemoveAll(models.MarkerPath(f.gameDir)))

	mods, err := f.store.ListMods(gameID)
	require.NoError(t, err)
	assert.Empty(t, mods)
	assert.DirExists(t, models.MarkerPath(f.gameDir))
}

func TestWritesRecreateMissingMarker(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	require.NoError(t, os.RemoveAll(models.MarkerPath(f.gameDir)))

	_, out, err := f.store.CreateProfile(gameID)
	require.NoError(t, err)
	assert.True(t, out.Applied)
	assert.FileExists(t, models.ProfilesPath(f.gameDir))
}

func TestDocumentRoundTripPreservesOrder(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	raw := `{
  "profiles": ["zeta", "alpha", "mid"],
  "active_profile": "alpha",
  "profile_data": {
    "zeta": {"load_order": ["c", "b", "a"]},
    "alpha": {"load_order": []},
    "mid": {"load_order": ["only"]}
  }
}`
	require.NoError(t, os.WriteFile(models.ProfilesPath(f.gameDir), []byte(raw), 0644))

	// A no-op write rewrites the document from its decoded form.
	_, err := f.store.SetLoadOrder(gameID, "ghost", nil)
	require.NoError(t, err)

	content, err := os.ReadFile(models.ProfilesPath(f.gameDir))
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(content))
}

func TestCorruptDocumentFailsLoudly(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	require.NoError(t, os.WriteFile(models.ProfilesPath(f.gameDir), []byte(`{"profiles": 5}`), 0644))

	_, err := f.store.ListProfiles(gameID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrDecode))

	_, _, err = f.store.CreateProfile(gameID)
	assert.True(t, errors.Is(err, models.ErrDecode))
}

func TestUnmanageDropsProfiles(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, _, err := f.store.CreateProfile(gameID)
	require.NoError(t, err)

	_, err = f.reg.Unmanage(gameID)
	require.NoError(t, err)

	profiles, err := f.store.ListProfiles(gameID)
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestConcurrentCreatesAreNotLost(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := f.store.CreateProfile(gameID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	profiles, err := f.store.ListProfiles(gameID)
	require.NoError(t, err)
	assert.Len(t, profiles, 20)
}
