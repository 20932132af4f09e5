package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"ghostc/internal/buildpipeline"
	"ghostc/internal/mir"
)

var emitCmd = &cobra.Command{
	Use:   "emit [flags] [path]",
	Short: "Print the LLVM IR of every module",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEmit,
}

var mirCmd = &cobra.Command{
	Use:   "mir [flags] [path]",
	Short: "Print the middle IR of every module",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMIR,
}

func init() {
	emitCmd.Flags().String("module", "", "only print this module (e.g. std/io)")
	mirCmd.Flags().String("module", "", "only print this module (e.g. std/io)")
}

// compileForDump checks the project and prints diagnostics; it fails on
// any error.
func compileForDump(cmd *cobra.Command, args []string) (*buildpipeline.CompileRequest, *buildpipeline.CompileResult, error) {
	m, err := loadManifest(cmd, args)
	if err != nil {
		return nil, nil, err
	}
	opts, err := driverOptions(cmd, m)
	if err != nil {
		return nil, nil, err
	}
	req := &buildpipeline.CompileRequest{Manifest: m, Options: opts}
	res, err := buildpipeline.Compile(cmd.Context(), req)
	if res != nil && res.Program != nil {
		printDiagnostics(cmd, res.Bag, res.Program.Files)
	}
	if err != nil {
		dumpTraceRing(cmd, cmd.ErrOrStderr())
		return nil, nil, err
	}
	return req, res, nil
}

func selectModules(cmd *cobra.Command, all []string) ([]string, error) {
	only, err := cmd.Flags().GetString("module")
	if err != nil {
		return nil, err
	}
	if only == "" {
		return all, nil
	}
	i := sort.SearchStrings(all, only)
	if i == len(all) || all[i] != only {
		return nil, fmt.Errorf("no module %q (have: %v)", only, all)
	}
	return []string{only}, nil
}

func runEmit(cmd *cobra.Command, args []string) error {
	req, res, err := compileForDump(cmd, args)
	if err != nil {
		return err
	}
	ir, err := buildpipeline.Codegen(cmd.Context(), req, res)
	if err != nil {
		return err
	}
	names, err := selectModules(cmd, res.Modules)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for i, name := range names {
		if len(names) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "; ---- %s\n", name)
		}
		if _, err := io.WriteString(w, ir[name]); err != nil {
			return err
		}
	}
	return nil
}

func runMIR(cmd *cobra.Command, args []string) error {
	_, res, err := compileForDump(cmd, args)
	if err != nil {
		return err
	}
	names, err := selectModules(cmd, res.Modules)
	if err != nil {
		return err
	}
	byName := make(map[string]*mir.Module, len(res.Analysis.Results))
	for path, r := range res.Analysis.Results {
		byName[res.Program.ModuleName(path)] = r.MIR
	}
	w := cmd.OutOrStdout()
	for i, name := range names {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := mir.Dump(w, byName[name]); err != nil {
			return err
		}
	}
	return nil
}
