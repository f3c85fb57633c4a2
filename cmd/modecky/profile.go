package main

import (
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:     "profile",
	Short:   "Manage mod profiles of a game",
	GroupID: "profiles",
}

var profileListCmd = &cobra.Command{
	Use:   "list <appid>",
	Short: "List profiles, marking the active one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return app.ProfilesCmd(id)
	},
}

var profileCreateCmd = &cobra.Command{
	Use:   "create <appid>",
	Short: "Create a profile with a generated name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return app.CreateProfileCmd(id)
	},
}

var profileRenameCmd = &cobra.Command{
	Use:   "rename <appid> <old> <new>",
	Short: "Rename a profile, keeping its load order",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return app.RenameProfileCmd(id, args[1], args[2])
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:     "delete <appid> <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a profile",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return app.DeleteProfileCmd(id, args[1])
	},
}

var profileActiveCmd = &cobra.Command{
	Use:   "active <appid>",
	Short: "Print the active profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return app.ActiveProfileCmd(id)
	},
}

var profileActivateCmd = &cobra.Command{
	Use:   "activate <appid> <name>",
	Short: "Make a profile the active one",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return app.ActivateCmd(id, args[1])
	},
}

var profileDeactivateCmd = &cobra.Command{
	Use:   "deactivate <appid>",
	Short: "Clear the active profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return app.ActivateCmd(id, "")
	},
}

var orderCmd = &cobra.Command{
	Use:     "order",
	Short:   "Show or replace a profile's load order",
	GroupID: "profiles",
}

var orderGetCmd = &cobra.Command{
	Use:   "get <appid> <profile>",
	Short: "Print a profile's load order",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return app.OrderCmd(id, args[1])
	},
}

var orderSetCmd = &cobra.Command{
	Use:   "set <appid> <profile> [mod]...",
	Short: "Replace a profile's load order; no mods clears it",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return app.SetOrderCmd(id, args[1], append([]string{}, args[2:]...))
	},
}

func init() {
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileCreateCmd)
	profileCmd.AddCommand(profileRenameCmd)
	profileCmd.AddCommand(profileDeleteCmd)
	profileCmd.AddCommand(profileActiveCmd)
	profileCmd.AddCommand(profileActivateCmd)
	profileCmd.AddCommand(profileDeactivateCmd)

	orderCmd.AddCommand(orderGetCmd)
	orderCmd.AddCommand(orderSetCmd)
}
