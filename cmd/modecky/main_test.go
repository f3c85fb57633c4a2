package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/szabotudor/modecky/pkg/cli"
	"github.com/szabotudor/modecky/pkg/models"
)

// run executes the root command against a throwaway configuration rooted at home.
// The command tree is global, so these tests do not run in parallel.
func run(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	cfg, err := models.ResolveConfigPaths(models.Environment{
		SettingsDir: filepath.Join(home, "settings"),
		SteamRoot:   filepath.Join(home, "steam"),
	}, home)
	require.NoError(t, err)

	var out bytes.Buffer
	newApp = func() (*cli.App, error) {
		return cli.NewAppWithConfig(cfg, nil, &out), nil
	}
	t.Cleanup(func() { newApp = cli.NewApp })

	rootCmd.SetArgs(args)
	err = execute()
	return out.String(), err
}

func TestManageProfileOrderRoundTrip(t *testing.T) {
	home := t.TempDir()
	gameDir := t.TempDir()

	out, err := run(t, home, "manage", "489830", "Skyrim", gameDir)
	require.NoError(t, err)
	assert.Contains(t, out, "is now managed")

	out, err = run(t, home, "is-managed", "489830")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = run(t, home, "profile", "create", "489830")
	require.NoError(t, err)
	name := strings.TrimSpace(out)
	require.Len(t, name, 32)

	_, err = run(t, home, "profile", "rename", "489830", name, "main")
	require.NoError(t, err)

	_, err = run(t, home, "order", "set", "489830", "main", "m1", "m2")
	require.NoError(t, err)

	out, err = run(t, home, "call", "get_load_order", `[489830, "main"]`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"result":["m1","m2"]}`, out)

	out, err = run(t, home, "path", "489830")
	require.NoError(t, err)
	assert.Equal(t, gameDir+"\n", out)

	_, err = run(t, home, "unmanage", "489830")
	require.NoError(t, err)
	out, err = run(t, home, "call", "is_managed", `["489830"]`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"result":false}`, out)
}

func TestInvalidGameID(t *testing.T) {
	_, err := run(t, t.TempDir(), "is-managed", "not-a-number")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing game id")
}

func TestArgsValidation(t *testing.T) {
	_, err := run(t, t.TempDir(), "profile", "rename", "1", "only-old")
	assert.Error(t, err)

	_, err = run(t, t.TempDir(), "manage")
	assert.Error(t, err)
}

func TestCallReportsUnknownMethod(t *testing.T) {
	out, err := run(t, t.TempDir(), "call", "frobnicate")
	require.Error(t, err)
	assert.Contains(t, out, `"kind":"method"`)
}

func TestFailingCommandStillClosesApp(t *testing.T) {
	_, err := run(t, t.TempDir(), "call", "no_such_method", "[]")
	require.Error(t, err)
	assert.Nil(t, app)

	_, err = run(t, t.TempDir(), "home")
	require.NoError(t, err)
	assert.Nil(t, app)
}
