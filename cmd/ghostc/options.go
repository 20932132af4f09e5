package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ghostc/internal/diag"
	"ghostc/internal/diagfmt"
	"ghostc/internal/driver"
	"ghostc/internal/project"
	"ghostc/internal/source"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stderr)
	}
}

// useColor resolves --color for output written to f.
func useColor(cmd *cobra.Command, f *os.File) bool {
	value, _ := cmd.Root().PersistentFlags().GetString("color")
	switch value {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

// loadManifest finds the project for the command: --entry, then a path
// argument, then ghost.toml above the working directory.
func loadManifest(cmd *cobra.Command, args []string) (*project.Manifest, error) {
	entry, err := cmd.Root().PersistentFlags().GetString("entry")
	if err != nil {
		return nil, fmt.Errorf("failed to get entry flag: %w", err)
	}
	if entry == "" && len(args) > 0 {
		if strings.HasSuffix(args[0], project.SourceExt) {
			entry = args[0]
		} else {
			return project.Discover(args[0], "")
		}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return project.Discover(cwd, entry)
}

func driverOptions(cmd *cobra.Command, m *project.Manifest) (driver.Options, error) {
	pf := cmd.Root().PersistentFlags()
	maxDiagnostics, err := pf.GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	jobs, err := pf.GetInt("jobs")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs == 0 && m != nil {
		jobs = m.Build.Jobs
	}
	return driver.Options{Jobs: jobs, MaxDiagnostics: maxDiagnostics}, nil
}

// printDiagnostics renders bag to stderr, followed by a summary line
// unless --quiet is set.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	opts := diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		PathMode:  diagfmt.PathModeRelative,
		ShowNotes: true,
	}
	w := cmd.ErrOrStderr()
	if err := diagfmt.Pretty(w, bag, fs, opts); err != nil {
		fmt.Fprintf(w, "failed to render diagnostics: %v\n", err)
		return
	}
	if !quiet {
		_ = diagfmt.Summary(w, bag, opts)
	}
}

func printTimings(cmd *cobra.Command, w io.Writer, summary string) {
	show, _ := cmd.Root().PersistentFlags().GetBool("timings")
	if show {
		fmt.Fprint(w, summary)
	}
}
