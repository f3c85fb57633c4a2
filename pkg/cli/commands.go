package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/mitchellh/go-homedir"

	"github.com/szabotudor/modecky/pkg/docio"
	"github.com/szabotudor/modecky/pkg/health"
	"github.com/szabotudor/modecky/pkg/models"
)

// ExistsCmd reports whether a filesystem path exists
func (a *App) ExistsCmd(path string) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, docio.Exists(expanded))
	return nil
}

// HomeCmd prints the user's home directory
func (a *App) HomeCmd() error {
	fmt.Fprintln(a.out, a.config.HomeDir)
	return nil
}

// ShortcutNameCmd prints the non-Steam shortcut name of a game id
func (a *App) ShortcutNameCmd(id models.GameID) error {
	fmt.Fprintln(a.out, a.registry.ResolveShortcutName(id))
	return nil
}

// ShortcutsCmd lists every non-Steam shortcut
func (a *App) ShortcutsCmd() error {
	list, err := a.shortcuts.List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No shortcuts found")
		return nil
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tName")
	for _, s := range list {
		fmt.Fprintf(w, "%s\t%s\n", s.ID, s.Name)
	}
	return w.Flush()
}

// IsManagedCmd prints whether a game is managed
func (a *App) IsManagedCmd(id models.GameID) error {
	managed, err := a.registry.IsManaged(id)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, managed)
	return nil
}

// ManageCmd registers a game. With auto set, a missing name or path is
// filled from the Steam library manifest, then from the shortcut catalog.
func (a *App) ManageCmd(id models.GameID, name, path string, auto bool) error {
	name, expanded, err := a.resolveManageArgs(id, name, path, auto)
	if err != nil {
		return err
	}

	out, err := a.registry.Manage(id, name, expanded)
	if err != nil {
		return err
	}
	if msg := describeOutcome(out); msg != "" {
		fmt.Fprintln(a.out, msg)
		return nil
	}
	fmt.Fprintf(a.out, "Game %s (%q) is now managed\n", id, name)
	return nil
}

func (a *App) resolveManageArgs(id models.GameID, name, path string, auto bool) (string, string, error) {
	if auto && (name == "" || path == "") {
		app, ok, err := a.steam.FindLibraryApp(id)
		if err != nil {
			return "", "", err
		}
		if ok {
			if name == "" {
				name = app.Name
			}
			if path == "" {
				path = app.Path
			}
		}
		if name == "" {
			if n := a.registry.ResolveShortcutName(id); n != models.NoGameFound {
				name = n
			}
		}
	}
	if path == "" {
		return "", "", fmt.Errorf("install path required for game %s", id)
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", "", err
	}
	return name, expanded, nil
}

// UnmanageCmd removes a game and all of its profiles
func (a *App) UnmanageCmd(id models.GameID) error {
	out, err := a.registry.Unmanage(id)
	if err != nil {
		return err
	}
	if msg := describeOutcome(out); msg != "" {
		fmt.Fprintln(a.out, msg)
		return nil
	}
	fmt.Fprintf(a.out, "Game %s is no longer managed\n", id)
	return nil
}

// PathCmd prints the install path of a managed game
func (a *App) PathCmd(id models.GameID) error {
	path, ok, err := a.registry.InstallPath(id)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "-")
		return nil
	}
	fmt.Fprintln(a.out, path)
	return nil
}

// ModsCmd lists installed mods
func (a *App) ModsCmd(id models.GameID) error {
	mods, err := a.profiles.ListMods(id)
	if err != nil {
		return err
	}
	printLines(a, mods, "(no mods installed)")
	return nil
}

// ProfilesCmd lists profiles, marking the active one
func (a *App) ProfilesCmd(id models.GameID) error {
	doc, _, err := a.profiles.Document(id)
	if err != nil {
		return err
	}
	if len(doc.Profiles) == 0 {
		fmt.Fprintln(a.out, "(no profiles)")
		return nil
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Active\tProfile\tMods")
	for _, p := range doc.Profiles {
		mark := ""
		if doc.ActiveProfile != nil && *doc.ActiveProfile == p {
			mark = "*"
		}
		mods := 0
		if data := doc.ProfileData[p]; data != nil {
			mods = len(data.LoadOrder)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\n", mark, p, mods)
	}
	return w.Flush()
}

// CreateProfileCmd creates a profile and prints its generated name
func (a *App) CreateProfileCmd(id models.GameID) error {
	name, out, err := a.profiles.CreateProfile(id)
	if err != nil {
		return err
	}
	if msg := describeOutcome(out); msg != "" {
		fmt.Fprintln(a.out, msg)
		return nil
	}
	fmt.Fprintln(a.out, name)
	return nil
}

// RenameProfileCmd renames a profile
func (a *App) RenameProfileCmd(id models.GameID, oldName, newName string) error {
	out, err := a.profiles.RenameProfile(id, oldName, &newName)
	if err != nil {
		return err
	}
	return a.reportOutcome(out, fmt.Sprintf("Profile %q renamed to %q", oldName, newName))
}

// DeleteProfileCmd deletes a profile
func (a *App) DeleteProfileCmd(id models.GameID, name string) error {
	out, err := a.profiles.DeleteProfile(id, name)
	if err != nil {
		return err
	}
	return a.reportOutcome(out, fmt.Sprintf("Profile %q deleted", name))
}

// ActiveProfileCmd prints the active profile
func (a *App) ActiveProfileCmd(id models.GameID) error {
	name, ok, err := a.profiles.ActiveProfile(id)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "-")
		return nil
	}
	fmt.Fprintln(a.out, name)
	return nil
}

// ActivateCmd sets the active profile; an empty name clears it
func (a *App) ActivateCmd(id models.GameID, name string) error {
	var target *string
	msg := "Active profile cleared"
	if name != "" {
		target = &name
		msg = fmt.Sprintf("Profile %q is now active", name)
	}
	out, err := a.profiles.SetActiveProfile(id, target)
	if err != nil {
		return err
	}
	return a.reportOutcome(out, msg)
}

// OrderCmd prints a profile's load order, one mod per line
func (a *App) OrderCmd(id models.GameID, profile string) error {
	order, err := a.profiles.LoadOrder(id, profile)
	if err != nil {
		return err
	}
	if len(order) == 0 {
		fmt.Fprintln(a.out, "(empty load order)")
		return nil
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for i, mod := range order {
		fmt.Fprintf(w, "%d\t%s\n", i+1, mod)
	}
	return w.Flush()
}

// SetOrderCmd replaces a profile's load order
func (a *App) SetOrderCmd(id models.GameID, profile string, mods []string) error {
	for _, m := range mods {
		if err := validateModName(m); err != nil {
			return err
		}
	}
	out, err := a.profiles.SetLoadOrder(id, profile, mods)
	if err != nil {
		return err
	}
	if err := a.reportOutcome(out, fmt.Sprintf("Load order of %q set (%d mods)", profile, len(mods))); err != nil {
		return err
	}
	if out.Applied {
		a.warnStaleLoadOrders(id, a.out)
	}
	return nil
}

// ListCmd handles the 'ls' command
func (a *App) ListCmd(detailed bool) error {
	entries, checks, err := a.checkGames()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No managed games yet. Use: modecky manage <appid> [name] [path]")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	if detailed {
		fmt.Fprintln(w, "ID\tName\tPath\tMods\tProfiles\tStatus")
	} else {
		fmt.Fprintln(w, "ID\tName\tStatus")
	}
	for _, e := range entries {
		check := checks[e.ID]
		if detailed {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n", e.ID, orDash(e.Name), e.Path, check.Mods, check.Profiles, check.Status)
		} else {
			fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, orDash(e.Name), check.Status)
		}
	}
	return w.Flush()
}

// StatusCmd shows detailed info for one managed game
func (a *App) StatusCmd(id models.GameID) error {
	game, ok, err := a.registry.Get(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("game %s is not managed", id)
	}
	check := a.healthChecker.Check(id, game)

	line := "============================================================"
	fmt.Fprintln(a.out, "\n"+line)
	fmt.Fprintln(a.out, "GAME DETAILS")
	fmt.Fprintln(a.out, line)
	fmt.Fprintf(a.out, "ID:      %s\n", id)
	fmt.Fprintf(a.out, "Name:    %s\n", orDash(game.Name))
	fmt.Fprintf(a.out, "Path:    %s\n", game.Path)
	fmt.Fprintf(a.out, "Store:   %s\n", models.MarkerPath(game.Path))

	dashes := "------------------------------------------------------------"
	fmt.Fprintln(a.out, "\n"+dashes)
	fmt.Fprintln(a.out, "HEALTH STATUS")
	fmt.Fprintln(a.out, dashes)
	fmt.Fprintf(a.out, "Status:   %s %s\n", health.StatusIcon(check.Status), check.Status)
	fmt.Fprintf(a.out, "Message:  %s\n", check.Message)

	if check.Status == health.HealthOK {
		doc, _, err := a.profiles.Document(id)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, "\n"+dashes)
		fmt.Fprintln(a.out, "PROFILES")
		fmt.Fprintln(a.out, dashes)
		if len(doc.Profiles) == 0 {
			fmt.Fprintln(a.out, "(none)")
		}
		for _, p := range doc.Profiles {
			mark := " "
			if doc.ActiveProfile != nil && *doc.ActiveProfile == p {
				mark = "*"
			}
			order := []string{}
			if data := doc.ProfileData[p]; data != nil {
				order = data.LoadOrder
			}
			fmt.Fprintf(a.out, "%s %s: %s\n", mark, p, strings.Join(order, " > "))
		}
		a.warnStaleLoadOrders(id, a.out)
	}
	fmt.Fprintln(a.out, line+"\n")
	return nil
}

func (a *App) reportOutcome(out models.Outcome, success string) error {
	if msg := describeOutcome(out); msg != "" {
		fmt.Fprintln(a.out, msg)
		return nil
	}
	fmt.Fprintln(a.out, success)
	return nil
}

func printLines(a *App, lines []string, empty string) {
	if len(lines) == 0 {
		fmt.Fprintln(a.out, empty)
		return
	}
	for _, l := range lines {
		fmt.Fprintln(a.out, l)
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
