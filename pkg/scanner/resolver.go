package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
)

// SteamRootCandidates are checked in order, relative to the home directory
var SteamRootCandidates = []string{
	".local/share/Steam",
	".steam/steam",
	".steam/root",
	".var/app/com.valvesoftware.Steam/data/Steam",
}

// SteamLocator finds the Steam installation and its per-user data
type SteamLocator struct {
	home     string
	override string

	root   string
	cached bool
	mu     sync.RWMutex
}

// NewSteamLocator creates a locator. A non-empty override is used as the Steam
// root without probing the candidates.
func NewSteamLocator(home, override string) *SteamLocator {
	return &SteamLocator{
		home:     home,
		override: override,
	}
}

// SteamRoot returns the Steam root directory, or "" if none is installed
func (l *SteamLocator) SteamRoot() string {
	l.mu.RLock()
	if l.cached {
		root := l.root
		l.mu.RUnlock()
		return root
	}
	l.mu.RUnlock()

	root := l.findRoot()

	l.mu.Lock()
	l.root = root
	l.cached = true
	l.mu.Unlock()
	return root
}

func (l *SteamLocator) findRoot() string {
	if l.override != "" {
		return l.override
	}
	for _, candidate := range SteamRootCandidates {
		p := filepath.Join(l.home, candidate)
		if fi, err := os.Stat(p); err == nil && fi.IsDir() {
			return p
		}
	}
	return ""
}

// UserDirs lists <root>/userdata/<id> directories in ascending numeric order.
// A missing userdata directory yields no users and no error.
func (l *SteamLocator) UserDirs() ([]string, error) {
	root := l.SteamRoot()
	if root == "" {
		return nil, nil
	}
	base := filepath.Join(root, "userdata")
	entries, err := os.ReadDir(base)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	type user struct {
		id   uint64
		path string
	}
	var users []user
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		id, err := strconv.ParseUint(e.Name(), 10, 64)
		if err != nil {
			continue
		}
		users = append(users, user{id: id, path: filepath.Join(base, e.Name())})
	}
	sort.Slice(users, func(i, j int) bool { return users[i].id < users[j].id })

	dirs := make([]string, 0, len(users))
	for _, u := range users {
		dirs = append(dirs, u.path)
	}
	return dirs, nil
}

// ClearCache forgets the resolved root
func (l *SteamLocator) ClearCache() {
	l.mu.Lock()
	l.root = ""
	l.cached = false
	l.mu.Unlock()
}
