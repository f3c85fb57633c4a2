package main

import (
	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:     "ls",
	Short:   "List managed games with their health",
	GroupID: "views",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		detailed, _ := cmd.Flags().GetBool("details")
		return app.ListCmd(detailed)
	},
}

var statusCmd = &cobra.Command{
	Use:     "status <appid>",
	Short:   "Show details, health and profiles of a managed game",
	GroupID: "views",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return app.StatusCmd(id)
	},
}

var topCmd = &cobra.Command{
	Use:     "top",
	Short:   "Open the interactive browser",
	GroupID: "views",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.TopCmd()
	},
}

func init() {
	lsCmd.Flags().Bool("details", false, "show path, mod and profile counts")
}
