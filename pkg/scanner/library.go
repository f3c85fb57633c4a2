package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/andygrunwald/vdf"

	"github.com/szabotudor/modecky/pkg/models"
)

// LibraryApp is an installed Steam library game
type LibraryApp struct {
	AppID      models.GameID
	Name       string
	InstallDir string
	Path       string
}

// LibraryFolders returns every Steam library root, the Steam root first.
func (l *SteamLocator) LibraryFolders() ([]string, error) {
	root := l.SteamRoot()
	if root == "" {
		return nil, nil
	}
	folders := []string{root}
	seen := map[string]bool{filepath.Clean(root): true}

	doc, err := parseTextVDF(filepath.Join(root, "steamapps", "libraryfolders.vdf"))
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return folders, nil
	}
	top, _ := lookupFold(doc, "libraryfolders").(map[string]interface{})

	keys := make([]int, 0, len(top))
	byIndex := make(map[int]interface{}, len(top))
	for k, v := range top {
		n, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		keys = append(keys, n)
		byIndex[n] = v
	}
	sort.Ints(keys)

	for _, k := range keys {
		var path string
		switch v := byIndex[k].(type) {
		case string:
			// Pre-2021 layout: "1" "/path/to/library"
			path = v
		case map[string]interface{}:
			path, _ = lookupFold(v, "path").(string)
		}
		if path == "" || seen[filepath.Clean(path)] {
			continue
		}
		seen[filepath.Clean(path)] = true
		folders = append(folders, path)
	}
	return folders, nil
}

// FindLibraryApp looks up an installed game's manifest across all libraries.
func (l *SteamLocator) FindLibraryApp(id models.GameID) (*LibraryApp, bool, error) {
	folders, err := l.LibraryFolders()
	if err != nil {
		return nil, false, err
	}
	for _, folder := range folders {
		manifest := filepath.Join(folder, "steamapps", fmt.Sprintf("appmanifest_%s.acf", id))
		doc, err := parseTextVDF(manifest)
		if err != nil {
			return nil, false, err
		}
		if doc == nil {
			continue
		}
		state, _ := lookupFold(doc, "AppState").(map[string]interface{})
		installDir, _ := lookupFold(state, "installdir").(string)
		if installDir == "" {
			continue
		}
		name, _ := lookupFold(state, "name").(string)
		return &LibraryApp{
			AppID:      id,
			Name:       name,
			InstallDir: installDir,
			Path:       filepath.Join(folder, "steamapps", "common", installDir),
		}, true, nil
	}
	return nil, false, nil
}

// parseTextVDF returns nil, nil when the file does not exist.
func parseTextVDF(path string) (map[string]interface{}, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", models.ErrIO, path, err)
	}
	defer f.Close()

	doc, err := vdf.NewParser(f).Parse()
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", models.ErrDecode, path, err)
	}
	return doc, nil
}

func lookupFold(m map[string]interface{}, key string) interface{} {
	if v, ok := m[key]; ok {
		return v
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return nil
}
