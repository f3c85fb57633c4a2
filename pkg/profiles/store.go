// Package profiles stores per-game mod profiles: named load orders kept in a
// JSON document inside each managed game's mod store.
//
// Operations on a game that is not managed never fail: reads come back empty
// and writes report a no-op outcome without touching disk.
package profiles

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/szabotudor/modecky/pkg/docio"
	"github.com/szabotudor/modecky/pkg/models"
	"github.com/szabotudor/modecky/pkg/registry"
)

// Games resolves a game id to its install path
type Games interface {
	InstallPath(id models.GameID) (string, bool, error)
}

// Store manages profile documents
type Store struct {
	games  Games
	locks  *registry.GameLocks
	logger *slog.Logger
}

// NewStore creates a profile store. Pass the registry's lock table so profile
// writes and unmanage calls for the same game exclude each other.
func NewStore(games Games, locks *registry.GameLocks, logger *slog.Logger) *Store {
	if locks == nil {
		locks = registry.NewGameLocks()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{games: games, locks: locks, logger: logger}
}

// ListMods lists the installed mods of a game: the entries of its mod store,
// excluding the profile document. The mod store is created if it is missing.
func (s *Store) ListMods(id models.GameID) ([]string, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	path, ok, err := s.games.InstallPath(id)
	if err != nil || !ok {
		return []string{}, err
	}

	marker := models.MarkerPath(path)
	if err := os.MkdirAll(marker, 0755); err != nil {
		return nil, fmt.Errorf("%w: create mod store %s: %w", models.ErrIO, marker, err)
	}
	entries, err := os.ReadDir(marker)
	if err != nil {
		return nil, fmt.Errorf("%w: list mods in %s: %w", models.ErrIO, marker, err)
	}

	mods := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Name() == models.ProfilesFile {
			continue
		}
		mods = append(mods, e.Name())
	}
	return mods, nil
}

// ListProfiles returns profile names in creation order
func (s *Store) ListProfiles(id models.GameID) ([]string, error) {
	doc, _, err := s.Document(id)
	if err != nil {
		return nil, err
	}
	return doc.Profiles, nil
}

// ActiveProfile returns the active profile, if one is set
func (s *Store) ActiveProfile(id models.GameID) (string, bool, error) {
	doc, _, err := s.Document(id)
	if err != nil || doc.ActiveProfile == nil {
		return "", false, err
	}
	return *doc.ActiveProfile, true, nil
}

// SetActiveProfile activates name, or clears the active profile when name is
// nil. A name that is not a known profile leaves the active profile as it was;
// the document is rewritten either way.
func (s *Store) SetActiveProfile(id models.GameID, name *string) (models.Outcome, error) {
	return s.update(id, func(doc *models.ProfileDocument) (models.Outcome, bool) {
		if name == nil {
			doc.ActiveProfile = nil
			return models.Applied(), true
		}
		if !doc.HasProfile(*name) {
			return models.NoOp(models.ErrUnknownProfile), true
		}
		active := *name
		doc.ActiveProfile = &active
		return models.Applied(), true
	})
}

// CreateProfile adds a profile with a generated name and an empty load order.
// It returns "" when the game is not managed.
func (s *Store) CreateProfile(id models.GameID) (string, models.Outcome, error) {
	name, err := GenerateName()
	if err != nil {
		return "", models.Outcome{}, err
	}
	out, err := s.update(id, func(doc *models.ProfileDocument) (models.Outcome, bool) {
		doc.Profiles = append(doc.Profiles, name)
		doc.ProfileData[name] = &models.Profile{LoadOrder: []string{}}
		return models.Applied(), true
	})
	if err != nil || !out.Applied {
		return "", out, err
	}
	s.logger.Info("profile created", "id", id, "profile", name)
	return name, out, nil
}

// RenameProfile moves oldName to newName, keeping its load order. A nil
// newName deletes the profile. The active profile follows the rename.
func (s *Store) RenameProfile(id models.GameID, oldName string, newName *string) (models.Outcome, error) {
	if newName != nil && *newName == "" {
		return models.NoOp(models.ErrInvalidName), nil
	}
	return s.update(id, func(doc *models.ProfileDocument) (models.Outcome, bool) {
		data, hasData := doc.ProfileData[oldName]
		if !doc.HasProfile(oldName) && !hasData {
			return models.NoOp(models.ErrUnknownProfile), false
		}
		renaming := newName != nil && *newName != oldName
		if renaming {
			if _, taken := doc.ProfileData[*newName]; taken || doc.HasProfile(*newName) {
				return models.NoOp(models.ErrProfileExists), false
			}
		}

		doc.RemoveProfile(oldName)
		if newName != nil {
			doc.Profiles = append(doc.Profiles, *newName)
			if data == nil {
				data = &models.Profile{LoadOrder: []string{}}
			}
			doc.ProfileData[*newName] = data
		}
		if newName == nil || renaming {
			delete(doc.ProfileData, oldName)
		}

		if doc.ActiveProfile != nil && *doc.ActiveProfile == oldName {
			if newName == nil {
				doc.ActiveProfile = nil
			} else {
				active := *newName
				doc.ActiveProfile = &active
			}
		}
		return models.Applied(), true
	})
}

// DeleteProfile removes a profile and its load order
func (s *Store) DeleteProfile(id models.GameID, name string) (models.Outcome, error) {
	return s.RenameProfile(id, name, nil)
}

// LoadOrder returns the load order of a profile, empty if it is unknown
func (s *Store) LoadOrder(id models.GameID, profile string) ([]string, error) {
	doc, _, err := s.Document(id)
	if err != nil {
		return nil, err
	}
	data := doc.ProfileData[profile]
	if data == nil {
		return []string{}, nil
	}
	return data.LoadOrder, nil
}

// SetLoadOrder replaces the load order of an existing profile. Duplicates and
// order are kept as given. The document is rewritten even when the profile is
// unknown.
func (s *Store) SetLoadOrder(id models.GameID, profile string, order []string) (models.Outcome, error) {
	return s.update(id, func(doc *models.ProfileDocument) (models.Outcome, bool) {
		data := doc.ProfileData[profile]
		if data == nil {
			return models.NoOp(models.ErrUnknownProfile), true
		}
		data.LoadOrder = append([]string{}, order...)
		return models.Applied(), true
	})
}

// Document returns a copy of a game's profile document. The copy is empty,
// and ok is false, when the game is not managed.
func (s *Store) Document(id models.GameID) (*models.ProfileDocument, bool, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	path, ok, err := s.games.InstallPath(id)
	if err != nil || !ok {
		empty := &models.ProfileDocument{}
		empty.Normalize()
		return empty, false, err
	}
	doc, err := s.load(path)
	if err != nil {
		return nil, false, err
	}
	return doc.Clone(), true, nil
}

// update runs a read-modify-write cycle on a game's document under its lock.
// fn reports the outcome and whether the document should be written.
func (s *Store) update(id models.GameID, fn func(doc *models.ProfileDocument) (models.Outcome, bool)) (models.Outcome, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	path, ok, err := s.games.InstallPath(id)
	if err != nil {
		return models.Outcome{}, err
	}
	if !ok {
		return models.NoOp(models.ErrNotManaged), nil
	}

	doc, err := s.load(path)
	if err != nil {
		return models.Outcome{}, err
	}
	out, write := fn(doc)
	if write {
		if err := s.save(path, doc); err != nil {
			return models.Outcome{}, err
		}
	}
	if !out.Applied {
		s.logger.Debug("profile update ignored", "id", id, "reason", out.Reason)
	}
	return out, nil
}

// load (internal) reads the document without taking locks
func (s *Store) load(installPath string) (*models.ProfileDocument, error) {
	doc := &models.ProfileDocument{}
	if _, err := docio.Read(models.ProfilesPath(installPath), doc); err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	doc.Normalize()
	return doc, nil
}

// save (internal) writes the document without taking locks
func (s *Store) save(installPath string, doc *models.ProfileDocument) error {
	if err := docio.Write(models.ProfilesPath(installPath), doc); err != nil {
		return fmt.Errorf("failed to save profiles: %w", err)
	}
	return nil
}
