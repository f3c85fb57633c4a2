package models

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/mitchellh/go-homedir"
)

// Environment is the process environment modecky reads at startup.
// The DECKY_* variables are what the plugin host exports.
type Environment struct {
	SettingsDir      string `env:"MODECKY_SETTINGS_DIR"`
	DeckySettingsDir string `env:"DECKY_PLUGIN_SETTINGS_DIR"`
	LogDir           string `env:"MODECKY_LOG_DIR"`
	DeckyLogDir      string `env:"DECKY_PLUGIN_LOG_DIR"`
	LogLevel         string `env:"MODECKY_LOG_LEVEL" envDefault:"info"`
	LogFormat        string `env:"MODECKY_LOG_FORMAT" envDefault:"text"`
	SteamRoot        string `env:"MODECKY_STEAM_ROOT"`
}

// ConfigPaths provides paths for config and data directories
type ConfigPaths struct {
	HomeDir      string
	SettingsDir  string
	RegistryFile string
	LogsDir      string
	LogLevel     string
	LogFormat    string
	SteamRoot    string
}

// GetConfigPaths resolves configuration from the process environment once.
func GetConfigPaths() (ConfigPaths, error) {
	var e Environment
	if err := env.Parse(&e); err != nil {
		return ConfigPaths{}, fmt.Errorf("parse env: %w", err)
	}
	home, err := homedir.Dir()
	if err != nil {
		return ConfigPaths{}, err
	}
	return ResolveConfigPaths(e, home)
}

// ResolveConfigPaths applies defaults and fallbacks to a parsed environment.
func ResolveConfigPaths(e Environment, home string) (ConfigPaths, error) {
	settingsDir := firstNonEmpty(e.SettingsDir, e.DeckySettingsDir, filepath.Join(home, ".config", "modecky"))
	settingsDir, err := homedir.Expand(settingsDir)
	if err != nil {
		return ConfigPaths{}, fmt.Errorf("expand settings dir: %w", err)
	}
	logsDir, err := homedir.Expand(firstNonEmpty(e.LogDir, e.DeckyLogDir, filepath.Join(settingsDir, "logs")))
	if err != nil {
		return ConfigPaths{}, fmt.Errorf("expand log dir: %w", err)
	}
	steamRoot, err := homedir.Expand(e.SteamRoot)
	if err != nil {
		return ConfigPaths{}, fmt.Errorf("expand steam root: %w", err)
	}

	return ConfigPaths{
		HomeDir:      home,
		SettingsDir:  settingsDir,
		RegistryFile: filepath.Join(settingsDir, "modecky.json"),
		LogsDir:      logsDir,
		LogLevel:     e.LogLevel,
		LogFormat:    e.LogFormat,
		SteamRoot:    steamRoot,
	}, nil
}

// EnsureDirs creates necessary configuration directories
func (cp ConfigPaths) EnsureDirs() error {
	dirs := []string{cp.SettingsDir, cp.LogsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
