package registry

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/szabotudor/modecky/pkg/docio"
	"github.com/szabotudor/modecky/pkg/models"
)

// NameResolver maps a game id to a display name
type NameResolver interface {
	ResolveName(id models.GameID) string
}

// Registry manages the managed-game document. The file is re-read on every
// operation, so edits made by another process are picked up.
type Registry struct {
	filePath  string
	mu        sync.RWMutex
	locks     *GameLocks
	shortcuts NameResolver
	logger    *slog.Logger
}

// Entry is a managed game together with its id
type Entry struct {
	ID models.GameID
	models.ManagedGame
}

// NewRegistry creates a new registry instance
func NewRegistry(filePath string, shortcuts NameResolver, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Registry{
		filePath:  filePath,
		locks:     NewGameLocks(),
		shortcuts: shortcuts,
		logger:    logger,
	}
}

// FilePath returns the registry document location
func (r *Registry) FilePath() string {
	return r.filePath
}

// Locks returns the per-game lock table shared with the profile store
func (r *Registry) Locks() *GameLocks {
	return r.locks
}

// IsManaged reports whether id is registered
func (r *Registry) IsManaged(id models.GameID) (bool, error) {
	_, ok, err := r.Get(id)
	return ok, err
}

// Get returns a copy of the entry for id
func (r *Registry) Get(id models.GameID) (models.ManagedGame, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	games, err := r.load()
	if err != nil {
		return models.ManagedGame{}, false, err
	}
	game, ok := games[id]
	if !ok || game == nil {
		return models.ManagedGame{}, false, nil
	}
	return *game, true, nil
}

// InstallPath returns the install root of a managed game
func (r *Registry) InstallPath(id models.GameID) (string, bool, error) {
	game, ok, err := r.Get(id)
	if err != nil || !ok {
		return "", false, err
	}
	return game.Path, true, nil
}

// List returns all managed games ordered by id
func (r *Registry) List() ([]Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	games, err := r.load()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(games))
	for id, game := range games {
		if game == nil {
			continue
		}
		entries = append(entries, Entry{ID: id, ManagedGame: *game})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

// Manage registers id at path, or re-points an existing registration. A path
// that is not an existing directory is ignored without touching the document.
//
// The marker directory is created after the document is written; the two steps
// are not atomic, and read paths recreate a missing marker.
func (r *Registry) Manage(id models.GameID, name, path string) (models.Outcome, error) {
	if !docio.IsDir(path) {
		r.logger.Debug("manage ignored: not a directory", "id", id, "path", path)
		return models.NoOp(models.ErrInvalidPath), nil
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	unlock := r.locks.Lock(id)
	defer unlock()
	r.mu.Lock()
	defer r.mu.Unlock()

	games, err := r.load()
	if err != nil {
		return models.Outcome{}, err
	}

	if prev, ok := games[id]; ok && prev != nil {
		// Only an empty marker can be removed; one holding mods stays behind.
		if err := os.Remove(models.MarkerPath(prev.Path)); err != nil && !os.IsNotExist(err) {
			r.logger.Debug("previous mod store left in place", "id", id, "path", prev.Path, "error", err)
		}
	}

	games[id] = &models.ManagedGame{Name: name, Path: path}
	if err := r.save(games); err != nil {
		return models.Outcome{}, err
	}

	marker := models.MarkerPath(path)
	if err := os.MkdirAll(marker, 0755); err != nil {
		return models.Outcome{}, fmt.Errorf("%w: create mod store %s: %w", models.ErrIO, marker, err)
	}

	r.logger.Info("game managed", "id", id, "name", name, "path", path)
	return models.Applied(), nil
}

// Unmanage removes id from the registry and deletes its mod store, including
// every profile.
func (r *Registry) Unmanage(id models.GameID) (models.Outcome, error) {
	unlock := r.locks.Lock(id)
	defer unlock()
	r.mu.Lock()
	defer r.mu.Unlock()

	games, err := r.load()
	if err != nil {
		return models.Outcome{}, err
	}
	game, ok := games[id]
	if !ok {
		return models.NoOp(models.ErrNotManaged), nil
	}

	if game != nil && game.Path != "" {
		marker := models.MarkerPath(game.Path)
		if err := os.RemoveAll(marker); err != nil {
			return models.Outcome{}, fmt.Errorf("%w: remove mod store %s: %w", models.ErrIO, marker, err)
		}
	}

	delete(games, id)
	if err := r.save(games); err != nil {
		return models.Outcome{}, err
	}

	r.logger.Info("game unmanaged", "id", id)
	return models.Applied(), nil
}

// ResolveShortcutName returns the non-Steam shortcut name for id, or
// models.NoGameFound.
func (r *Registry) ResolveShortcutName(id models.GameID) string {
	if r.shortcuts == nil {
		return models.NoGameFound
	}
	return r.shortcuts.ResolveName(id)
}

// load (internal) reads the registry without taking locks
func (r *Registry) load() (models.GameRegistry, error) {
	games := models.GameRegistry{}
	if _, err := docio.Read(r.filePath, &games); err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}
	if games == nil {
		// The document was literally "null".
		games = models.GameRegistry{}
	}
	return games, nil
}

// save (internal) writes the registry without taking locks
func (r *Registry) save(games models.GameRegistry) error {
	if err := docio.Write(r.filePath, games); err != nil {
		return fmt.Errorf("failed to save registry: %w", err)
	}
	return nil
}
