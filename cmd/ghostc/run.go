package main

import (
	"os"

	"github.com/spf13/cobra"

	"ghostc/internal/buildpipeline"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [path] [-- args...]",
	Short: "Build and run a ghost project",
	Long:  "Build the project, then execute the binary and exit with its status.",
	RunE: func(cmd *cobra.Command, args []string) error {
		before, after := args, []string(nil)
		if dash := cmd.ArgsLenAtDash(); dash >= 0 {
			before, after = args[:dash], args[dash:]
		}
		if len(before) > 1 {
			return cobra.MaximumNArgs(1)(cmd, before)
		}
		res, err := buildProject(cmd, before)
		if err != nil {
			return err
		}
		code, err := buildpipeline.Run(cmd.Context(), buildpipeline.RunRequest{
			Binary: res.OutputPath,
			Args:   after,
			Stdin:  os.Stdin,
			Stdout: os.Stdout,
			Stderr: os.Stderr,
		})
		if err != nil {
			return err
		}
		if code != 0 {
			return exitError{code: code}
		}
		return nil
	},
}

func init() {
	addBuildFlags(runCmd)
}
