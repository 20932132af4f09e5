package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"
)

// RunRequest describes how to execute a built binary.
type RunRequest struct {
	Binary   string
	Args     []string
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	Progress ProgressSink
}

// Run executes the binary and returns its exit code. A non-zero exit is
// not an error; failing to start it is.
func Run(ctx context.Context, req RunRequest) (int, error) {
	emitStage(req.Progress, nil, StageRun, StatusWorking, nil, 0)
	start := time.Now()
	// #nosec G204 -- the binary is the one Build just produced
	cmd := exec.CommandContext(ctx, req.Binary, req.Args...)
	cmd.Stdin = req.Stdin
	cmd.Stdout = req.Stdout
	cmd.Stderr = req.Stderr
	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		emitStage(req.Progress, nil, StageRun, StatusDone, nil, time.Since(start))
		return 0, nil
	case errors.As(err, &exitErr):
		emitStage(req.Progress, nil, StageRun, StatusDone, nil, time.Since(start))
		return exitErr.ExitCode(), nil
	default:
		err = fmt.Errorf("run %s: %w", req.Binary, err)
		emitStage(req.Progress, nil, StageRun, StatusError, err, time.Since(start))
		return -1, err
	}
}
