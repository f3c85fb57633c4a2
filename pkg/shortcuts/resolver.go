// Package shortcuts maps non-Steam game ids to display names by reading every
// user's shortcuts.vdf catalog.
package shortcuts

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/wakeful-cloud/vdf"

	"github.com/szabotudor/modecky/pkg/models"
)

// CatalogPath is the catalog location relative to a user's data directory.
var CatalogPath = filepath.Join("config", "shortcuts.vdf")

// UserSource lists the per-user data directories to search, in search order.
type UserSource interface {
	UserDirs() ([]string, error)
}

// Shortcut is one catalog record
type Shortcut struct {
	ID   models.GameID
	Name string
}

// Resolver looks up shortcut names
type Resolver struct {
	users  UserSource
	logger *slog.Logger
}

// NewResolver creates a resolver over the given users
func NewResolver(users UserSource, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Resolver{users: users, logger: logger}
}

// Resolve returns the display name of the first record whose id matches,
// searching users in directory order. A catalog that cannot be read or decoded
// is logged and skipped; it does not fail the lookup for other users.
func (r *Resolver) Resolve(id models.GameID) (string, bool, error) {
	want := id.String()
	var name string
	found := false
	err := r.each(func(s Shortcut) bool {
		if s.ID.String() == want {
			name = s.Name
			found = true
			return false
		}
		return true
	})
	if err != nil {
		return "", false, err
	}
	return name, found, nil
}

// ResolveName is Resolve collapsed to the "no game found" sentinel.
func (r *Resolver) ResolveName(id models.GameID) string {
	name, ok, err := r.Resolve(id)
	if err != nil {
		r.logger.Warn("shortcut lookup failed", "id", id, "error", err)
		return models.NoGameFound
	}
	if !ok {
		return models.NoGameFound
	}
	return name
}

// List returns every shortcut across users. When two users define the same
// id the first user's record wins.
func (r *Resolver) List() ([]Shortcut, error) {
	seen := make(map[models.GameID]bool)
	var out []Shortcut
	err := r.each(func(s Shortcut) bool {
		if !seen[s.ID] {
			seen[s.ID] = true
			out = append(out, s)
		}
		return true
	})
	return out, err
}

func (r *Resolver) each(fn func(Shortcut) bool) error {
	dirs, err := r.users.UserDirs()
	if err != nil {
		return fmt.Errorf("%w: list steam users: %w", models.ErrIO, err)
	}
	for _, dir := range dirs {
		path := filepath.Join(dir, CatalogPath)
		records, err := ReadCatalog(path)
		if err != nil {
			r.logger.Warn("skipping unreadable shortcuts catalog", "path", path, "error", err)
			continue
		}
		for _, s := range records {
			if !fn(s) {
				return nil
			}
		}
	}
	return nil
}

// ReadCatalog decodes one shortcuts.vdf file. A missing file has no records.
func ReadCatalog(path string) ([]Shortcut, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", models.ErrIO, path, err)
	}

	doc, err := vdf.ReadVdf(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", models.ErrDecode, path, err)
	}
	return Records(doc), nil
}

// Records extracts shortcut records from a decoded catalog, in file order.
// Steam keys entries "0", "1", ... so numeric key order is file order.
// Entries without an integer appid are skipped.
func Records(doc vdf.Map) []Shortcut {
	list, ok := lookupMap(doc, "shortcuts")
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(list))
	for k := range list {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return entryLess(keys[i], keys[j]) })

	var out []Shortcut
	for _, k := range keys {
		entry, ok := list[k].(vdf.Map)
		if !ok {
			continue
		}
		raw, ok := lookupFold(entry, "appid")
		if !ok {
			continue
		}
		id, ok := appID(raw)
		if !ok {
			continue
		}
		name, _ := lookupFold(entry, "AppName")
		s, _ := name.(string)
		out = append(out, Shortcut{ID: id, Name: s})
	}
	return out
}

func entryLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}

// lookupFold matches keys case-insensitively. Older Steam clients wrote
// "appname" where newer ones write "AppName".
func lookupFold(m vdf.Map, key string) (any, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

func lookupMap(m vdf.Map, key string) (vdf.Map, bool) {
	v, ok := lookupFold(m, key)
	if !ok {
		return nil, false
	}
	sub, ok := v.(vdf.Map)
	return sub, ok
}

// appID reinterprets the signed 32-bit value Steam stores as the unsigned id
// the rest of the client uses: negative values are offset by 2^32.
func appID(raw any) (models.GameID, bool) {
	switch v := raw.(type) {
	case uint32:
		return models.GameID(v), true
	case int32:
		n := int64(v)
		if n < 0 {
			n += 1 << 32
		}
		return models.GameID(n), true
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		if n < 0 {
			n += 1 << 32
		}
		return models.GameID(n), true
	}
	return 0, false
}
