package models

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConfigPaths_Defaults(t *testing.T) {
	t.Parallel()

	cp, err := ResolveConfigPaths(Environment{LogLevel: "info", LogFormat: "text"}, "/home/deck")
	require.NoError(t, err)

	assert.Equal(t, "/home/deck/.config/modecky", cp.SettingsDir)
	assert.Equal(t, "/home/deck/.config/modecky/modecky.json", cp.RegistryFile)
	assert.Equal(t, "/home/deck/.config/modecky/logs", cp.LogsDir)
	assert.Empty(t, cp.SteamRoot)
}

func TestResolveConfigPaths_DeckyFallback(t *testing.T) {
	t.Parallel()

	cp, err := ResolveConfigPaths(Environment{
		DeckySettingsDir: "/home/deck/homebrew/settings/modecky",
		DeckyLogDir:      "/home/deck/homebrew/logs/modecky",
	}, "/home/deck")
	require.NoError(t, err)

	assert.Equal(t, "/home/deck/homebrew/settings/modecky", cp.SettingsDir)
	assert.Equal(t, "/home/deck/homebrew/logs/modecky", cp.LogsDir)
}

func TestResolveConfigPaths_ExplicitWinsOverDecky(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	cp, err := ResolveConfigPaths(Environment{
		SettingsDir:      tmp,
		DeckySettingsDir: "/ignored",
	}, "/home/deck")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmp, "modecky.json"), cp.RegistryFile)
}

func TestGetConfigPaths_ReadsEnvironment(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("MODECKY_SETTINGS_DIR", tmp)
	t.Setenv("MODECKY_LOG_LEVEL", "debug")
	t.Setenv("MODECKY_STEAM_ROOT", filepath.Join(tmp, "steam"))

	cp, err := GetConfigPaths()
	require.NoError(t, err)

	assert.Equal(t, tmp, cp.SettingsDir)
	assert.Equal(t, "debug", cp.LogLevel)
	assert.Equal(t, "text", cp.LogFormat)
	assert.Equal(t, filepath.Join(tmp, "steam"), cp.SteamRoot)
}
