package buildpipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"ghostc/internal/project"
	"ghostc/internal/trace"
)

// BuildRequest configures output generation for a compilation.
type BuildRequest struct {
	CompileRequest
	// Profile selects target/<profile>; defaults to "debug".
	Profile string
	// OutputName defaults to the project name.
	OutputName string
	// CommandLog receives every external command before it runs.
	CommandLog io.Writer
}

// BuildResult captures build artefacts.
type BuildResult struct {
	*CompileResult
	OutputPath string
	TmpDir     string
	// IR is the LLVM text of every module keyed by module name.
	IR        map[string]string
	IRFiles   []string
	Index     *project.ModuleIndex
	IndexPath string
}

// Build compiles the project and links an executable.
func Build(ctx context.Context, req *BuildRequest) (*BuildResult, error) {
	if req == nil || req.Manifest == nil {
		return nil, fmt.Errorf("missing build request")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	reqCopy := *req
	req = &reqCopy
	req.AllowErrors = false
	if req.Profile == "" {
		req.Profile = "debug"
	}
	if req.OutputName == "" {
		req.OutputName = req.Manifest.Project.Name
	}

	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "build", trace.CurrentSpan(ctx).SpanID)
	defer span.End("")
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})

	result := &BuildResult{}
	compileRes, err := Compile(ctx, &req.CompileRequest)
	result.CompileResult = compileRes
	if err != nil {
		return result, err
	}

	outputDir := req.Manifest.OutputDir(req.Profile)
	result.OutputPath = filepath.Join(outputDir, req.OutputName)
	result.TmpDir = filepath.Join(outputDir, ".tmp")
	result.IndexPath = filepath.Join(outputDir, project.IndexFile)
	if err := os.MkdirAll(result.TmpDir, 0o750); err != nil {
		return result, fmt.Errorf("failed to create output dir: %w", err)
	}

	result.IR, err = Codegen(ctx, &req.CompileRequest, compileRes)
	if err != nil {
		return result, err
	}
	if result.IRFiles, err = writeIR(result.TmpDir, result.IR); err != nil {
		emitStage(req.Progress, nil, StageCodegen, StatusError, err, 0)
		return result, err
	}
	if req.Manifest.Build.VerifyIR {
		if err := req.Timer.Measure("verify", func() error {
			return verifyIR(ctx, req.CommandLog, result.IRFiles)
		}); err != nil {
			emitStage(req.Progress, nil, StageCodegen, StatusError, err, 0)
			return result, err
		}
	}

	linkStart := time.Now()
	emitStage(req.Progress, nil, StageLink, StatusWorking, nil, 0)
	err = req.Timer.Measure(string(StageLink), func() error {
		lsp := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "link", span.ID())
		defer lsp.End(result.OutputPath)
		return link(ctx, req.CommandLog, result.IRFiles, req.Manifest, result.OutputPath)
	})
	if err != nil {
		emitStage(req.Progress, nil, StageLink, StatusError, err, time.Since(linkStart))
		return result, err
	}
	emitStage(req.Progress, nil, StageLink, StatusDone, nil, time.Since(linkStart))

	result.Index = NewModuleIndex(req.Manifest, compileRes, result.IR, result.TmpDir)
	result.Index.Timings = req.Timer.Report()
	if err := project.WriteIndex(result.IndexPath, result.Index); err != nil {
		return result, fmt.Errorf("failed to write module index: %w", err)
	}
	return result, nil
}

// writeIR writes one .ll file per module and returns their paths in
// module name order.
func writeIR(dir string, ir map[string]string) ([]string, error) {
	names := make([]string, 0, len(ir))
	for name := range ir {
		names = append(names, name)
	}
	sort.Strings(names)
	files := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, irFileName(name))
		if err := os.WriteFile(path, []byte(ir[name]), 0o600); err != nil {
			return nil, fmt.Errorf("failed to write LLVM IR: %w", err)
		}
		files = append(files, path)
	}
	return files, nil
}

// NewModuleIndex describes the compiled program for the module graph
// artifact. Imports are listed by module name.
func NewModuleIndex(m *project.Manifest, res *CompileResult, ir map[string]string, irDir string) *project.ModuleIndex {
	prog := res.Program
	entries := make([]project.ModuleEntry, 0, len(prog.Modules))
	for _, path := range prog.Paths() {
		mod := prog.Modules[path]
		name := prog.ModuleName(path)
		entry := project.ModuleEntry{
			Name:      name,
			Path:      path,
			Imports:   importNames(prog.ModuleName, mod.Imports),
			Functions: sortedKeys(mod.FnDefns),
			Externs:   sortedKeys(mod.Externs),
		}
		if f := prog.Files.Get(mod.File); f != nil {
			entry.ContentHash = f.Hash
		}
		if _, ok := ir[name]; ok && irDir != "" {
			entry.IR = filepath.Join(irDir, irFileName(name))
		}
		entries = append(entries, entry)
	}
	return project.NewIndex(m.Project.Name, prog.ModuleName(prog.Entry), entries)
}

func importNames[K comparable](name func(string) string, imports map[K]string) []string {
	seen := make(map[string]struct{}, len(imports))
	out := make([]string, 0, len(imports))
	for _, path := range imports {
		if path == "" {
			continue
		}
		n := name(path)
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
