package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ghostc/internal/buildpipeline"
	"ghostc/internal/diagfmt"
	"ghostc/internal/observ"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path]",
	Short: "Report diagnostics without generating code",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "short" {
		return fmt.Errorf("unknown format: %s", format)
	}
	m, err := loadManifest(cmd, args)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, m)
	if err != nil {
		return err
	}
	timer := observ.NewTimer()
	res, err := buildpipeline.Compile(cmd.Context(), &buildpipeline.CompileRequest{
		Manifest:    m,
		Options:     opts,
		Timer:       timer,
		AllowErrors: true,
	})
	if res != nil && res.Program != nil {
		if format == "short" {
			popts := diagfmt.PrettyOpts{Color: false, PathMode: diagfmt.PathModeRelative}
			if werr := diagfmt.Short(cmd.OutOrStdout(), res.Bag, res.Program.Files, popts); werr != nil {
				return werr
			}
		} else {
			printDiagnostics(cmd, res.Bag, res.Program.Files)
		}
	}
	printTimings(cmd, cmd.ErrOrStderr(), timer.Summary())
	if err != nil {
		dumpTraceRing(cmd, cmd.ErrOrStderr())
		return err
	}
	if res.Bag.HasErrors() {
		return exitError{code: 1}
	}
	return nil
}
