package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/szabotudor/modecky/pkg/cli"
	"github.com/szabotudor/modecky/pkg/models"
)

const version = "0.1.0"

var (
	// newApp is swapped out by tests
	newApp = cli.NewApp

	app *cli.App
)

var rootCmd = &cobra.Command{
	Use:           "modecky [command]",
	Short:         "Per-game mod profiles and load orders for Steam games",
	Long:          "modecky tracks managed games, their installed mods and named load-order profiles.\nRun without a command to open the interactive browser.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		app = a
		return nil
	},
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.TopCmd()
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: "games", Title: "Games:"},
		&cobra.Group{ID: "profiles", Title: "Profiles:"},
		&cobra.Group{ID: "views", Title: "Views:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)
	cobra.EnableCommandSorting = false

	// Games
	rootCmd.AddCommand(manageCmd)
	rootCmd.AddCommand(unmanageCmd)
	rootCmd.AddCommand(isManagedCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(modsCmd)
	rootCmd.AddCommand(shortcutNameCmd)
	rootCmd.AddCommand(shortcutsCmd)

	// Profiles
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(orderCmd)

	// Views
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(topCmd)

	// System
	rootCmd.AddCommand(existsCmd)
	rootCmd.AddCommand(homeCmd)
	rootCmd.AddCommand(callCmd)
}

func parseID(raw string) (models.GameID, error) {
	id, err := models.ParseGameID(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing game id: %w", err)
	}
	return id, nil
}

// execute runs the command tree and closes the app whether or not the
// command failed. Cobra skips post-run hooks after a RunE error.
func execute() error {
	defer func() {
		if app != nil {
			_ = app.Close()
			app = nil
		}
	}()
	return rootCmd.Execute()
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
