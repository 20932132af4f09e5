package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ghostc/internal/buildpipeline"
	"ghostc/internal/observ"
	"ghostc/internal/ui"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [path]",
	Short: "Build a ghost project",
	Long:  "Build a ghost project using ghost.toml (or an entry file) and link it with clang.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := buildProject(cmd, args)
		if err != nil {
			return err
		}
		if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "built %s\n", res.OutputPath)
		}
		return nil
	},
}

func init() {
	addBuildFlags(buildCmd)
}

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("release", false, "build into target/release")
	cmd.Flags().StringP("output", "o", "", "executable name (default: project name)")
	cmd.Flags().Bool("print-commands", false, "print external commands before running them")
}

// buildProject runs the whole pipeline and reports diagnostics and
// timings on the way out.
func buildProject(cmd *cobra.Command, args []string) (*buildpipeline.BuildResult, error) {
	m, err := loadManifest(cmd, args)
	if err != nil {
		return nil, err
	}
	opts, err := driverOptions(cmd, m)
	if err != nil {
		return nil, err
	}
	release, err := cmd.Flags().GetBool("release")
	if err != nil {
		return nil, err
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}
	printCommands, err := cmd.Flags().GetBool("print-commands")
	if err != nil {
		return nil, err
	}
	uiValue, err := cmd.Root().PersistentFlags().GetString("ui")
	if err != nil {
		return nil, err
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return nil, err
	}

	profile := "debug"
	if release {
		profile = "release"
	}
	timer := observ.NewTimer()
	req := &buildpipeline.BuildRequest{
		CompileRequest: buildpipeline.CompileRequest{
			Manifest: m,
			Options:  opts,
			Timer:    timer,
		},
		Profile:    profile,
		OutputName: output,
	}
	if printCommands {
		req.CommandLog = cmd.ErrOrStderr()
	}

	var res *buildpipeline.BuildResult
	if shouldUseTUI(mode) && !printCommands {
		res, err = runBuildWithUI(cmd.Context(), "build "+m.Project.Name, req)
	} else {
		res, err = buildpipeline.Build(cmd.Context(), req)
	}
	if res != nil && res.CompileResult != nil && res.Program != nil {
		printDiagnostics(cmd, res.Bag, res.Program.Files)
	}
	printTimings(cmd, cmd.ErrOrStderr(), timer.Summary())
	if err != nil {
		dumpTraceRing(cmd, cmd.ErrOrStderr())
		return res, fmt.Errorf("build failed: %w", err)
	}
	return res, nil
}

type buildOutcome struct {
	result *buildpipeline.BuildResult
	err    error
}

func runBuildWithUI(ctx context.Context, title string, req *buildpipeline.BuildRequest) (*buildpipeline.BuildResult, error) {
	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan buildOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = buildpipeline.ChannelSink{Ch: events}
		res, err := buildpipeline.Build(ctx, &reqCopy)
		outcomeCh <- buildOutcome{result: res, err: err}
		close(events)
	}()

	uiErr := ui.RunProgress(title, events, os.Stderr)
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
