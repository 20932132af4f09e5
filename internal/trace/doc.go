// Package trace records what the compiler is doing: the resolve pass, parse
// and check of every module, codegen and the native link.
//
// Events go either straight to a writer (text or NDJSON) or into an
// in-memory ring that is dumped when a build fails:
//
//	ghostc build --trace=- --trace-level=detail
//	ghostc build --trace-mode=ring
//
// A tracer travels through the pipeline in the context:
//
//	ctx = trace.WithTracer(ctx, t)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "check", trace.CurrentSpan(ctx).SpanID)
//	defer span.End("")
package trace
