package health

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/szabotudor/modecky/pkg/docio"
	"github.com/szabotudor/modecky/pkg/models"
)

// Health status levels
type HealthStatus string

const (
	HealthOK            HealthStatus = "ok"
	HealthMissingPath   HealthStatus = "missing-path"
	HealthMissingMarker HealthStatus = "missing-marker"
	HealthCorrupt       HealthStatus = "corrupt"
	HealthUnknown       HealthStatus = "unknown"
)

// HealthCheck represents the result of checking one managed game
type HealthCheck struct {
	ID        models.GameID
	Status    HealthStatus
	Profiles  int
	Mods      int
	Message   string
	LastCheck time.Time
}

// Checker inspects managed games on disk. It never repairs anything; read
// paths in the profile store recreate a missing marker on their own.
type Checker struct{}

// NewChecker creates a new health checker
func NewChecker() *Checker {
	return &Checker{}
}

// Check inspects the install path, mod store and profile document of a game
func (c *Checker) Check(id models.GameID, game models.ManagedGame) *HealthCheck {
	result := &HealthCheck{
		ID:        id,
		LastCheck: time.Now(),
	}

	if !docio.IsDir(game.Path) {
		result.Status = HealthMissingPath
		result.Message = fmt.Sprintf("install path %s is gone", game.Path)
		return result
	}

	marker := models.MarkerPath(game.Path)
	entries, err := os.ReadDir(marker)
	if err != nil {
		result.Status = HealthMissingMarker
		result.Message = "mod store missing; it will be recreated on next use"
		return result
	}
	for _, e := range entries {
		if e.Name() != models.ProfilesFile {
			result.Mods++
		}
	}

	var doc models.ProfileDocument
	found, err := docio.Read(models.ProfilesPath(game.Path), &doc)
	if err != nil {
		result.Status = HealthCorrupt
		if errors.Is(err, models.ErrDecode) {
			result.Message = "profile document does not parse"
		} else {
			result.Message = err.Error()
		}
		return result
	}
	result.Profiles = len(doc.Profiles)

	result.Status = HealthOK
	switch {
	case !found:
		result.Message = fmt.Sprintf("%d mods, no profiles yet", result.Mods)
	case doc.ActiveProfile != nil && !doc.HasProfile(*doc.ActiveProfile):
		result.Message = fmt.Sprintf("active profile %q is not in the profile list", *doc.ActiveProfile)
	default:
		result.Message = fmt.Sprintf("%d mods, %d profiles", result.Mods, result.Profiles)
	}
	return result
}

// StatusIcon returns an emoji for the health status
func StatusIcon(status HealthStatus) string {
	switch status {
	case HealthOK:
		return "✅"
	case HealthMissingMarker:
		return "⚠️"
	case HealthMissingPath:
		return "❌"
	case HealthCorrupt:
		return "💥"
	default:
		return "❓"
	}
}
