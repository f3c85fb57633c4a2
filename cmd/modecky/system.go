package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/szabotudor/modecky/pkg/cli"
)

var existsCmd = &cobra.Command{
	Use:     "exists <path>",
	Short:   "Print whether a path exists",
	GroupID: "system",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.ExistsCmd(args[0])
	},
}

var homeCmd = &cobra.Command{
	Use:     "home",
	Short:   "Print the home directory",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.HomeCmd()
	},
}

var callCmd = &cobra.Command{
	Use:     "call <method> [json-args]",
	Short:   "Invoke one operation with JSON arguments and print a JSON response",
	GroupID: "system",
	Args:    cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw := ""
		if len(args) > 1 {
			raw = args[1]
		}
		return app.CallCmd(args[0], raw)
	},
}

func init() {
	callCmd.Long = fmt.Sprintf("Arguments are a positional JSON array, e.g. modecky call list_profiles '[489830]'.\n\nMethods: %s", strings.Join(cli.Methods(), ", "))
}
