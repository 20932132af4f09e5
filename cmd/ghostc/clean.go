package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [path]",
	Short: "Remove the build output directory",
	Long:  "Remove target_dir (target/ by default) of the project found from path or the current directory.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	m, err := loadManifest(cmd, args)
	if err != nil {
		return err
	}
	targetDir := filepath.Dir(m.OutputDir("debug"))
	out := cmd.OutOrStdout()
	info, err := os.Stat(targetDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(out, "nothing to clean")
			return nil
		}
		return fmt.Errorf("failed to stat %q: %w", targetDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", targetDir)
	}
	if err := os.RemoveAll(targetDir); err != nil {
		return fmt.Errorf("failed to remove %q: %w", targetDir, err)
	}
	rel, relErr := filepath.Rel(m.Root, targetDir)
	if relErr != nil {
		rel = targetDir
	}
	fmt.Fprintf(out, "removed %s\n", rel)
	return nil
}
