package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"ghostc/internal/observ"
	"ghostc/internal/project"
)

var graphCmd = &cobra.Command{
	Use:   "graph [flags] [path]",
	Short: "Show the module graph recorded by the last build",
	Long:  "Read target/<profile>/modules.mp and print build batches, import cycles and module hashes.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGraph,
}

func init() {
	graphCmd.Flags().Bool("release", false, "read target/release instead of target/debug")
	graphCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runGraph(cmd *cobra.Command, args []string) error {
	m, err := loadManifest(cmd, args)
	if err != nil {
		return err
	}
	release, err := cmd.Flags().GetBool("release")
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	profile := "debug"
	if release {
		profile = "release"
	}
	idx, err := project.ReadIndex(filepath.Join(m.OutputDir(profile), project.IndexFile))
	if err != nil {
		return fmt.Errorf("no module index (run `ghostc build` first): %w", err)
	}
	switch format {
	case "pretty":
		return writeGraph(cmd.OutOrStdout(), idx)
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(graphJSON(idx))
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeGraph(w io.Writer, idx *project.ModuleIndex) error {
	var b strings.Builder
	fmt.Fprintf(&b, "project %s (entry %s)\n", idx.Project, idx.Entry)
	for i, batch := range idx.Batches {
		fmt.Fprintf(&b, "batch %d: %s\n", i+1, strings.Join(batch, ", "))
	}
	if len(idx.Cycles) > 0 {
		fmt.Fprintf(&b, "cycles: %s\n", strings.Join(idx.Cycles, ", "))
	}
	b.WriteString("modules:\n")
	for _, e := range idx.Modules {
		fmt.Fprintf(&b, "  %-20s %s  fns=%d", e.Name, e.ModuleHash.Short(), len(e.Functions))
		if len(e.Externs) > 0 {
			fmt.Fprintf(&b, " externs=%d", len(e.Externs))
		}
		if len(e.Imports) > 0 {
			fmt.Fprintf(&b, " imports=%s", strings.Join(e.Imports, ","))
		}
		b.WriteByte('\n')
	}
	if idx.Timings.TotalMS > 0 {
		fmt.Fprintf(&b, "last build: %.1f ms\n", idx.Timings.TotalMS)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

type graphModuleJSON struct {
	Name        string   `json:"name"`
	Path        string   `json:"path"`
	Imports     []string `json:"imports,omitempty"`
	ContentHash string   `json:"content_hash"`
	ModuleHash  string   `json:"module_hash"`
	Functions   []string `json:"functions"`
	Externs     []string `json:"externs,omitempty"`
	IR          string   `json:"ir,omitempty"`
}

type graphIndexJSON struct {
	Project string            `json:"project"`
	Entry   string            `json:"entry"`
	Batches [][]string        `json:"batches"`
	Cycles  []string          `json:"cycles,omitempty"`
	Modules []graphModuleJSON `json:"modules"`
	Timings observ.Report     `json:"timings"`
}

func graphJSON(idx *project.ModuleIndex) graphIndexJSON {
	out := graphIndexJSON{
		Project: idx.Project,
		Entry:   idx.Entry,
		Batches: idx.Batches,
		Cycles:  idx.Cycles,
		Modules: make([]graphModuleJSON, 0, len(idx.Modules)),
		Timings: idx.Timings,
	}
	for _, e := range idx.Modules {
		out.Modules = append(out.Modules, graphModuleJSON{
			Name:        e.Name,
			Path:        e.Path,
			Imports:     e.Imports,
			ContentHash: hex.EncodeToString(e.ContentHash[:]),
			ModuleHash:  hex.EncodeToString(e.ModuleHash[:]),
			Functions:   e.Functions,
			Externs:     e.Externs,
			IR:          e.IR,
		})
	}
	return out
}
