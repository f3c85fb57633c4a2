package main

import (
	"github.com/spf13/cobra"
)

var manageCmd = &cobra.Command{
	Use:     "manage <appid> [name] [path]",
	Short:   "Start managing mods for a game",
	Long:    "Registers a game and creates its mod store. With --auto, a missing name or path\nis taken from the Steam library, then from the non-Steam shortcut catalog.",
	GroupID: "games",
	Args:    cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		var name, path string
		if len(args) > 1 {
			name = args[1]
		}
		if len(args) > 2 {
			path = args[2]
		}
		auto, _ := cmd.Flags().GetBool("auto")
		return app.ManageCmd(id, name, path, auto)
	},
}

var unmanageCmd = &cobra.Command{
	Use:     "unmanage <appid>",
	Short:   "Stop managing a game and delete its profiles",
	GroupID: "games",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return app.UnmanageCmd(id)
	},
}

var isManagedCmd = &cobra.Command{
	Use:     "is-managed <appid>",
	Short:   "Print whether a game is managed",
	GroupID: "games",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return app.IsManagedCmd(id)
	},
}

var pathCmd = &cobra.Command{
	Use:     "path <appid>",
	Short:   "Print the install path of a managed game",
	GroupID: "games",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return app.PathCmd(id)
	},
}

var modsCmd = &cobra.Command{
	Use:     "mods <appid>",
	Short:   "List installed mods",
	GroupID: "games",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return app.ModsCmd(id)
	},
}

var shortcutNameCmd = &cobra.Command{
	Use:     "shortcut-name <appid>",
	Short:   "Resolve a non-Steam shortcut id to its name",
	GroupID: "games",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return app.ShortcutNameCmd(id)
	},
}

var shortcutsCmd = &cobra.Command{
	Use:     "shortcuts",
	Short:   "List non-Steam shortcuts of every Steam user",
	GroupID: "games",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.ShortcutsCmd()
	},
}

func init() {
	manageCmd.Flags().Bool("auto", false, "fill a missing name or path from Steam")
}
