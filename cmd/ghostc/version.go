package main

import (
	"os"

	"github.com/spf13/cobra"

	"ghostc/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show ghostc build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return version.Write(cmd.OutOrStdout(), useColor(cmd, os.Stdout))
	},
}
