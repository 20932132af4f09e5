// Command ghostc is the ghost language compiler.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ghostc/internal/prof"
	"ghostc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "ghostc",
	Short:         "Ghost language compiler",
	Long:          `ghostc compiles ghost projects to native executables through LLVM`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		profSession, err = startProfiling(cmd)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if traceCleanup != nil {
			traceCleanup()
			traceCleanup = nil
		}
	},
}

// traceCleanup flushes the tracer opened for the running command.
var traceCleanup func()

var profSession *prof.Session

func startProfiling(cmd *cobra.Command) (*prof.Session, error) {
	pf := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = pf.GetString("cpuprofile"); err != nil {
		return nil, err
	}
	if opts.Mem, err = pf.GetString("memprofile"); err != nil {
		return nil, err
	}
	if opts.Trace, err = pf.GetString("runtime-trace"); err != nil {
		return nil, err
	}
	if !opts.Enabled() {
		return nil, nil
	}
	return prof.Start(opts)
}

// exitError carries a process exit status without printing anything.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(emitCmd)
	rootCmd.AddCommand(mirCmd)
	rootCmd.AddCommand(docCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	pf.Int("jobs", 0, "max parallel tasks (0=auto, overrides [build].jobs)")
	pf.String("ui", "auto", "progress UI (auto|on|off)")
	pf.String("entry", "", "entry file; skips ghost.toml discovery")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.String("trace-mode", "stream", "trace mode (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "events kept by the trace ring")
	pf.String("cpuprofile", "", "write a CPU profile of the compiler to file")
	pf.String("memprofile", "", "write a heap profile of the compiler to file")
	pf.String("runtime-trace", "", "write a Go runtime trace of the compiler to file")

	err := rootCmd.Execute()
	if traceCleanup != nil {
		traceCleanup()
	}
	if stopErr := profSession.Stop(); stopErr != nil {
		fmt.Fprintf(os.Stderr, "warning: profiling: %v\n", stopErr)
	}
	if err == nil {
		return
	}
	var exit exitError
	if errors.As(err, &exit) {
		os.Exit(exit.code)
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
