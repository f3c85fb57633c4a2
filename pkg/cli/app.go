package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/szabotudor/modecky/pkg/health"
	"github.com/szabotudor/modecky/pkg/logging"
	"github.com/szabotudor/modecky/pkg/models"
	"github.com/szabotudor/modecky/pkg/profiles"
	"github.com/szabotudor/modecky/pkg/registry"
	"github.com/szabotudor/modecky/pkg/scanner"
	"github.com/szabotudor/modecky/pkg/shortcuts"
)

// App is the main application handler
type App struct {
	config        models.ConfigPaths
	registry      *registry.Registry
	profiles      *profiles.Store
	shortcuts     *shortcuts.Resolver
	steam         *scanner.SteamLocator
	healthChecker *health.Checker
	logger        *slog.Logger
	logCloser     io.Closer
	out           io.Writer
}

// NewApp creates and initializes the application from the process environment
func NewApp() (*App, error) {
	config, err := models.GetConfigPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}

	if err := config.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("failed to create config directories: %w", err)
	}

	logger, closer := logging.New(logging.Options{
		Level:  config.LogLevel,
		Format: config.LogFormat,
		Dir:    config.LogsDir,
	})
	app := NewAppWithConfig(config, logger, os.Stdout)
	app.logCloser = closer
	return app, nil
}

// NewAppWithConfig wires the components for an already resolved configuration
func NewAppWithConfig(config models.ConfigPaths, logger *slog.Logger, out io.Writer) *App {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	steam := scanner.NewSteamLocator(config.HomeDir, config.SteamRoot)
	resolver := shortcuts.NewResolver(steam, logger.With("component", "shortcuts"))
	reg := registry.NewRegistry(config.RegistryFile, resolver, logger.With("component", "registry"))

	return &App{
		config:        config,
		registry:      reg,
		profiles:      profiles.NewStore(reg, reg.Locks(), logger.With("component", "profiles")),
		shortcuts:     resolver,
		steam:         steam,
		healthChecker: health.NewChecker(),
		logger:        logger,
		logCloser:     nopCloser{},
		out:           out,
	}
}

// Close flushes and releases the log sink
func (a *App) Close() error {
	return a.logCloser.Close()
}

// Registry exposes the managed-game registry
func (a *App) Registry() *registry.Registry { return a.registry }

// Profiles exposes the profile store
func (a *App) Profiles() *profiles.Store { return a.profiles }

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// checkGames runs the health checker over every managed game
func (a *App) checkGames() ([]registry.Entry, map[models.GameID]*health.HealthCheck, error) {
	entries, err := a.registry.List()
	if err != nil {
		return nil, nil, err
	}
	checks := make(map[models.GameID]*health.HealthCheck, len(entries))
	for _, e := range entries {
		checks[e.ID] = a.healthChecker.Check(e.ID, e.ManagedGame)
	}
	return entries, checks, nil
}

func describeOutcome(out models.Outcome) string {
	if out.Applied {
		return ""
	}
	if out.Reason == nil {
		return "Nothing changed"
	}
	return "Nothing changed: " + out.Reason.Error()
}
