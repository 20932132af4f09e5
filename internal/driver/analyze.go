package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"ghostc/internal/diag"
	"ghostc/internal/mir"
	"ghostc/internal/sema"
	"ghostc/internal/trace"
)

// CheckResult is the outcome of checking one module.
type CheckResult struct {
	Path        string
	MIR         *mir.Module
	Diagnostics []diag.Diagnostic
	// Err is an internal failure of this module's check.
	Err error
}

// Analysis collects the per-module check results.
type Analysis struct {
	Results   map[string]*CheckResult
	HasErrors bool
}

// MIR returns the middle IR of every module keyed by path.
func (a *Analysis) MIR() map[string]*mir.Module {
	out := make(map[string]*mir.Module, len(a.Results))
	for path, r := range a.Results {
		out[path] = r.MIR
	}
	return out
}

// Diagnostics merges every module's diagnostics into bag.
func (a *Analysis) Diagnostics(bag *diag.Bag) {
	for _, r := range a.Results {
		for _, d := range r.Diagnostics {
			bag.Add(d)
		}
	}
}

// Analyze checks every module of prog, one task per module. Modules only
// read the shared program and write to their own key of the result map, so
// one module's failure never stops the others; internal failures are joined
// into the returned error.
func Analyze(ctx context.Context, prog *Program, opts Options) (*Analysis, error) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "check", trace.CurrentSpan(ctx).SpanID)
	defer span.End("")
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})

	var (
		mu        sync.Mutex
		results   = make(map[string]*CheckResult, len(prog.Modules))
		anyErrors atomic.Bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobsOrDefault(opts.Jobs))
	for _, path := range prog.Paths() {
		mod := prog.Modules[path]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, diags, err := sema.Check(gctx, mod, prog)
			if len(diags) > 0 || err != nil {
				anyErrors.Store(true)
			}
			if errors.Is(err, context.Canceled) {
				return err
			}
			mu.Lock()
			results[path] = &CheckResult{Path: path, MIR: out, Diagnostics: diags, Err: err}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var errs []error
	for _, path := range prog.Paths() {
		if r := results[path]; r != nil && r.Err != nil {
			errs = append(errs, fmt.Errorf("check %s: %w", prog.ModuleName(path), r.Err))
		}
	}
	return &Analysis{Results: results, HasErrors: anyErrors.Load()}, errors.Join(errs...)
}

func jobsOrDefault(jobs int) int {
	if jobs <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return jobs
}
