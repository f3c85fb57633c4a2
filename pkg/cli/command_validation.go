package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/szabotudor/modecky/pkg/models"
)

// unknownMods returns the entries of order that are not installed, in order
// of first appearance.
func unknownMods(order, installed []string) []string {
	have := make(map[string]struct{}, len(installed))
	for _, m := range installed {
		have[m] = struct{}{}
	}
	seen := make(map[string]struct{})
	var missing []string
	for _, m := range order {
		if _, ok := have[m]; ok {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		missing = append(missing, m)
	}
	return missing
}

func validateModName(name string) error {
	n := strings.TrimSpace(name)
	if n == "" {
		return fmt.Errorf("mod name cannot be empty")
	}
	if strings.ContainsAny(n, `/\`) || n == "." || n == ".." {
		return fmt.Errorf("mod name %q must be a single directory entry", name)
	}
	return nil
}

// warnStaleLoadOrders reports load order entries that name mods which are no
// longer installed. It only warns; stored orders are never rewritten.
func (a *App) warnStaleLoadOrders(id models.GameID, w io.Writer) {
	doc, ok, err := a.profiles.Document(id)
	if err != nil || !ok {
		return
	}
	installed, err := a.profiles.ListMods(id)
	if err != nil {
		return
	}
	for _, p := range doc.Profiles {
		data := doc.ProfileData[p]
		if data == nil {
			continue
		}
		if missing := unknownMods(data.LoadOrder, installed); len(missing) > 0 {
			fmt.Fprintf(w, "Warning: profile %q lists mods that are not installed: %s\n", p, strings.Join(missing, ", "))
		}
	}
}
