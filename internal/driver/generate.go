package driver

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"ghostc/internal/backend/llvm"
	"ghostc/internal/mir"
	"ghostc/internal/trace"
)

// Generate lowers every module to LLVM text, one task per module, and
// returns the listings keyed by module path.
func Generate(ctx context.Context, modules map[string]*mir.Module, opts Options) (map[string]string, error) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "codegen", trace.CurrentSpan(ctx).SpanID)
	defer span.End("")
	parent := span.ID()

	var (
		mu  sync.Mutex
		out = make(map[string]string, len(modules))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobsOrDefault(opts.Jobs))
	for path, m := range modules {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			msp := trace.Begin(trace.FromContext(gctx), trace.ScopeModule, "codegen "+path, parent)
			text, err := llvm.Generate(m)
			msp.End("")
			if err != nil {
				return fmt.Errorf("codegen %s: %w", path, err)
			}
			mu.Lock()
			out[path] = text
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
