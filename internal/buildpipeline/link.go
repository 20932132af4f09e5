package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"ghostc/internal/project"
)

// ErrToolMissing is returned when clang or opt is not on PATH.
var ErrToolMissing = errors.New("required tool not found")

const installHint = "install with: sudo apt-get update && sudo apt-get install -y clang llvm libgc-dev"

// linkArgs builds the clang command line: IR files, C libraries, manifest
// flags, the Boehm collector and the output path.
func linkArgs(irFiles []string, m *project.Manifest, output string) []string {
	paths, flags := m.CLibPaths(), m.CLibFlags()
	args := make([]string, 0, len(irFiles)+len(paths)+len(flags)+4)
	args = append(args, "-Wno-override-module")
	args = append(args, irFiles...)
	args = append(args, paths...)
	args = append(args, flags...)
	args = append(args, "-lgc", "-o", output)
	return args
}

func link(ctx context.Context, log io.Writer, irFiles []string, m *project.Manifest, output string) error {
	clang, err := lookTool("clang")
	if err != nil {
		return err
	}
	if err := runCommand(ctx, log, clang, linkArgs(irFiles, m, output)...); err != nil {
		return fmt.Errorf("link failed: %w", err)
	}
	return nil
}

// verifyIR runs the LLVM verifier over every file.
func verifyIR(ctx context.Context, log io.Writer, irFiles []string) error {
	opt, err := lookTool("opt")
	if err != nil {
		return err
	}
	for _, f := range irFiles {
		if err := runCommand(ctx, log, opt, "-passes=verify", "-disable-output", f); err != nil {
			return fmt.Errorf("verify %s: %w", f, err)
		}
	}
	return nil
}

func lookTool(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s: %w; %s", name, ErrToolMissing, installHint)
	}
	return path, nil
}

func runCommand(ctx context.Context, log io.Writer, name string, args ...string) error {
	if log != nil {
		if _, err := fmt.Fprintf(log, "%s %s\n", name, strings.Join(args, " ")); err != nil {
			return fmt.Errorf("failed to print command: %w", err)
		}
	}
	// #nosec G204 -- the tool path comes from LookPath, arguments from the manifest
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return err
		}
		return fmt.Errorf("%s: %s", name, msg)
	}
	return nil
}
