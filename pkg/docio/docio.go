// Package docio reads and writes the JSON documents modecky persists.
//
// A missing file reads as an empty document. Every write serializes the whole
// value and overwrites the file in place; there is no temp-file rename, so a
// crash mid-write can leave a truncated document behind.
package docio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/szabotudor/modecky/pkg/models"
)

// Read decodes the JSON document at path into v. It reports false without
// touching v when the file does not exist.
func Read(path string, v any) (bool, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: read %s: %w", models.ErrIO, path, err)
	}

	if err := json.Unmarshal(content, v); err != nil {
		return false, fmt.Errorf("%w: parse %s: %w", models.ErrDecode, path, err)
	}
	return true, nil
}

// Write serializes v and overwrites the file at path, creating parent directories.
func Write(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: create directory %s: %w", models.ErrIO, dir, err)
	}

	content, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("%w: write %s: %w", models.ErrIO, path, err)
	}
	return nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// Exists reports whether anything exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
