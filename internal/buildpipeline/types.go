package buildpipeline

import "time"

// Stage describes a high-level pipeline phase.
type Stage string

const (
	// StageResolve parses the entry module and everything it imports.
	StageResolve Stage = "resolve"
	// StageCheck type-checks every module and lowers it to middle IR.
	StageCheck Stage = "check"
	// StageCodegen writes LLVM text for every module.
	StageCodegen Stage = "codegen"
	// StageLink is the link stage.
	StageLink Stage = "link"
	// StageRun is the run stage.
	StageRun Stage = "run"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the task is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the task is currently working.
	StatusWorking Status = "working"
	// StatusDone indicates the task is done.
	StatusDone Status = "done"
	// StatusError indicates the task encountered an error.
	StatusError Status = "error"
)

// Event reports progress for a module (or for the overall pipeline when
// Module is empty).
type Event struct {
	Module  string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

func emitStage(sink ProgressSink, modules []string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{Stage: stage, Status: status, Err: err, Elapsed: elapsed})
	for _, m := range modules {
		sink.OnEvent(Event{Module: m, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
	}
}

func emitModule(sink ProgressSink, module string, stage Stage, status Status, err error) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{Module: module, Stage: stage, Status: status, Err: err})
}
