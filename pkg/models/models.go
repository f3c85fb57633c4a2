package models

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
)

// MarkerDir is the reserved directory created inside a managed game's install path.
const MarkerDir = ".modecky"

// ProfilesFile is the per-game profile document stored inside MarkerDir.
const ProfilesFile = "modecky.profiles.json"

// NoGameFound is returned by shortcut lookups that find nothing.
const NoGameFound = "no game found"

// No-op reasons. These never surface as errors from the stores; they are carried
// by Outcome so callers can tell "nothing happened" from "it worked".
var (
	ErrNotManaged     = errors.New("game is not managed")
	ErrInvalidPath    = errors.New("install path is not an existing directory")
	ErrUnknownProfile = errors.New("profile not found")
	ErrProfileExists  = errors.New("profile already exists")
	ErrInvalidName    = errors.New("profile name is empty")
)

// Hard failures. Wrapped errors returned by the stores match one of these.
var (
	ErrIO     = errors.New("io failure")
	ErrDecode = errors.New("decode failure")
)

// GameID identifies a game. Steam app ids and shortcut ids share this space.
type GameID uint64

// ParseGameID parses a decimal game identifier.
func ParseGameID(s string) (GameID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid game id %q: %w", s, err)
	}
	return GameID(v), nil
}

func (id GameID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ManagedGame is a registered game
type ManagedGame struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// GameRegistry is the whole registry document, keyed by game id.
// encoding/json renders the integer keys as decimal strings.
type GameRegistry map[GameID]*ManagedGame

// Profile is a named load order
type Profile struct {
	LoadOrder []string `json:"load_order"`
}

// ProfileDocument is the per-game profile store document
type ProfileDocument struct {
	Profiles      []string            `json:"profiles"`
	ActiveProfile *string             `json:"active_profile,omitempty"`
	ProfileData   map[string]*Profile `json:"profile_data"`
}

// HasProfile reports whether name is listed in Profiles.
func (d *ProfileDocument) HasProfile(name string) bool {
	return d.indexOf(name) >= 0
}

// RemoveProfile drops the first occurrence of name from Profiles.
func (d *ProfileDocument) RemoveProfile(name string) bool {
	i := d.indexOf(name)
	if i < 0 {
		return false
	}
	d.Profiles = append(d.Profiles[:i], d.Profiles[i+1:]...)
	return true
}

func (d *ProfileDocument) indexOf(name string) int {
	for i, p := range d.Profiles {
		if p == name {
			return i
		}
	}
	return -1
}

// Normalize fills nil collections so a freshly read "{}" behaves like an empty document.
func (d *ProfileDocument) Normalize() {
	if d.Profiles == nil {
		d.Profiles = []string{}
	}
	if d.ProfileData == nil {
		d.ProfileData = make(map[string]*Profile)
	}
	for name, p := range d.ProfileData {
		if p == nil {
			d.ProfileData[name] = &Profile{LoadOrder: []string{}}
		} else if p.LoadOrder == nil {
			p.LoadOrder = []string{}
		}
	}
}

// Clone returns a deep copy of the document.
func (d *ProfileDocument) Clone() *ProfileDocument {
	out := &ProfileDocument{
		Profiles:    append([]string{}, d.Profiles...),
		ProfileData: make(map[string]*Profile, len(d.ProfileData)),
	}
	if d.ActiveProfile != nil {
		active := *d.ActiveProfile
		out.ActiveProfile = &active
	}
	for name, p := range d.ProfileData {
		if p == nil {
			continue
		}
		out.ProfileData[name] = &Profile{LoadOrder: append([]string{}, p.LoadOrder...)}
	}
	return out
}

// Outcome reports whether a mutation took effect. When Applied is false,
// Reason holds one of the no-op sentinels above.
type Outcome struct {
	Applied bool
	Reason  error
}

// Applied is the outcome of a mutation that changed state.
func Applied() Outcome { return Outcome{Applied: true} }

// NoOp is the outcome of a mutation that was ignored.
func NoOp(reason error) Outcome { return Outcome{Reason: reason} }

func (o Outcome) String() string {
	if o.Applied {
		return "applied"
	}
	if o.Reason == nil {
		return "no-op"
	}
	return "no-op: " + o.Reason.Error()
}

// MarkerPath returns the mod-store marker directory of an install path.
func MarkerPath(installPath string) string {
	return filepath.Join(installPath, MarkerDir)
}

// ProfilesPath returns the profile document location of an install path.
func ProfilesPath(installPath string) string {
	return filepath.Join(installPath, MarkerDir, ProfilesFile)
}
