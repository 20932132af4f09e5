package main

import (
	"github.com/spf13/cobra"

	"ghostc/internal/docgen"
	"ghostc/internal/driver"
)

var docCmd = &cobra.Command{
	Use:   "doc [flags] [path]",
	Short: "Print function signatures and doc comments as markdown",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDoc,
}

func runDoc(cmd *cobra.Command, args []string) error {
	m, err := loadManifest(cmd, args)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, m)
	if err != nil {
		return err
	}
	prog, err := driver.Resolve(cmd.Context(), m.EntryPath(), opts)
	if prog != nil {
		printDiagnostics(cmd, prog.Bag, prog.Files)
	}
	if err != nil {
		return err
	}
	modules := make([]docgen.Module, 0, len(prog.Modules))
	for _, path := range prog.Paths() {
		modules = append(modules, docgen.Module{Name: prog.ModuleName(path), AST: prog.Modules[path]})
	}
	return docgen.Write(cmd.OutOrStdout(), modules)
}
