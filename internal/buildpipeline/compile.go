// Package buildpipeline orchestrates the compilation process.
package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"ghostc/internal/diag"
	"ghostc/internal/driver"
	"ghostc/internal/observ"
	"ghostc/internal/project"
	"ghostc/internal/trace"
)

// ErrDiagnostics is returned when resolve or check reported an error.
// The diagnostics themselves are in CompileResult.Bag.
var ErrDiagnostics = errors.New("diagnostics reported errors")

// CompileRequest configures the shared front half of the pipeline.
type CompileRequest struct {
	Manifest *project.Manifest
	Options  driver.Options
	Progress ProgressSink
	// Timer may be nil.
	Timer *observ.Timer
	// AllowErrors returns the result instead of ErrDiagnostics.
	AllowErrors bool
}

// CompileResult captures the resolved program and its checked modules.
type CompileResult struct {
	Program  *driver.Program
	Analysis *driver.Analysis
	// Bag holds load, parse and check diagnostics, sorted and deduplicated.
	Bag *diag.Bag
	// Modules are the module names in sorted order.
	Modules []string
}

// Compile resolves the entry module of the manifest and checks every
// module it reaches.
func Compile(ctx context.Context, req *CompileRequest) (*CompileResult, error) {
	if req == nil || req.Manifest == nil {
		return nil, fmt.Errorf("missing compile request")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	res := &CompileResult{Bag: diag.NewBag(req.Options.MaxDiagnostics)}

	// resolve
	emitStage(req.Progress, nil, StageResolve, StatusWorking, nil, 0)
	start := time.Now()
	err := req.Timer.Measure(string(StageResolve), func() error {
		prog, err := driver.Resolve(ctx, req.Manifest.EntryPath(), req.Options)
		res.Program = prog
		return err
	})
	if res.Program != nil {
		res.Bag.Merge(res.Program.Bag)
		res.Modules = moduleNames(res.Program)
	}
	if err != nil {
		emitStage(req.Progress, res.Modules, StageResolve, StatusError, err, time.Since(start))
		return res, err
	}
	emitStage(req.Progress, res.Modules, StageResolve, StatusDone, nil, time.Since(start))

	// check
	emitStage(req.Progress, res.Modules, StageCheck, StatusWorking, nil, 0)
	start = time.Now()
	err = req.Timer.Measure(string(StageCheck), func() error {
		an, err := driver.Analyze(ctx, res.Program, req.Options)
		res.Analysis = an
		return err
	})
	if res.Analysis != nil {
		res.Analysis.Diagnostics(res.Bag)
		for path, r := range res.Analysis.Results {
			status := StatusDone
			if r.Err != nil || hasErrors(r.Diagnostics) {
				status = StatusError
			}
			emitModule(req.Progress, res.Program.ModuleName(path), StageCheck, status, r.Err)
		}
	}
	res.Bag.Sort()
	res.Bag.Dedup()
	if err == nil && res.Bag.HasErrors() && !req.AllowErrors {
		err = ErrDiagnostics
	}
	if err != nil {
		emitStage(req.Progress, nil, StageCheck, StatusError, err, time.Since(start))
		return res, err
	}
	emitStage(req.Progress, nil, StageCheck, StatusDone, nil, time.Since(start))
	return res, nil
}

// Codegen lowers every checked module to LLVM text. The result is keyed by
// module name.
func Codegen(ctx context.Context, req *CompileRequest, res *CompileResult) (map[string]string, error) {
	if res == nil || res.Analysis == nil {
		return nil, fmt.Errorf("codegen: nothing was checked")
	}
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "lower", trace.CurrentSpan(ctx).SpanID)
	defer span.End("")
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})

	emitStage(req.Progress, res.Modules, StageCodegen, StatusWorking, nil, 0)
	start := time.Now()
	var byPath map[string]string
	err := req.Timer.Measure(string(StageCodegen), func() error {
		var err error
		byPath, err = driver.Generate(ctx, res.Analysis.MIR(), req.Options)
		return err
	})
	if err != nil {
		emitStage(req.Progress, res.Modules, StageCodegen, StatusError, err, time.Since(start))
		return nil, err
	}
	out := make(map[string]string, len(byPath))
	for path, text := range byPath {
		out[res.Program.ModuleName(path)] = text
	}
	emitStage(req.Progress, res.Modules, StageCodegen, StatusDone, nil, time.Since(start))
	return out, nil
}

func moduleNames(prog *driver.Program) []string {
	names := make([]string, 0, len(prog.Modules))
	for _, path := range prog.Paths() {
		names = append(names, prog.ModuleName(path))
	}
	sort.Strings(names)
	return names
}

func hasErrors(ds []diag.Diagnostic) bool {
	for _, d := range ds {
		if d.Severity == diag.SevError {
			return true
		}
	}
	return false
}

// irFileName maps a module name such as "std/io" to "std.io.ll".
func irFileName(module string) string {
	return strings.ReplaceAll(module, "/", ".") + ".ll"
}
