package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"ghostc/internal/ast"
	"ghostc/internal/diag"
	"ghostc/internal/parser"
	"ghostc/internal/project"
	"ghostc/internal/source"
	"ghostc/internal/trace"
)

const SourceExt = project.SourceExt

// ErrImportNotFound is returned by the import probe when no file matches.
var ErrImportNotFound = errors.New("no matching source file")

type Options struct {
	// Jobs bounds concurrently running parse/check/codegen tasks; <= 0 means GOMAXPROCS.
	Jobs           int
	MaxDiagnostics int
}

// Program is the closed set of modules reachable from the entry file.
type Program struct {
	Root    string
	Entry   string
	Files   *source.FileSet
	Modules map[string]*ast.Module
	// Bag holds lexer, parser and load diagnostics.
	Bag *diag.Bag
	// Outstanding and Unresolved are the final values of the resolver
	// counters; both are zero after a successful Resolve.
	Outstanding int64
	Unresolved  int64
}

// Module implements sema.ModuleSet.
func (p *Program) Module(path string) (*ast.Module, bool) {
	mod, ok := p.Modules[path]
	return mod, ok
}

// IsEntry implements sema.ModuleSet.
func (p *Program) IsEntry(path string) bool {
	return path == p.Entry
}

// Paths returns module paths in sorted order.
func (p *Program) Paths() []string {
	paths := make([]string, 0, len(p.Modules))
	for path := range p.Modules {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// ModuleName is the path of a module relative to the project root without
// the extension, e.g. "std/io".
func (p *Program) ModuleName(path string) string {
	rel, err := filepath.Rel(p.Root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	return filepath.ToSlash(strings.TrimSuffix(rel, SourceExt))
}

// request asks for the module at Path to be parsed. done fires once the
// module and everything it imports has been parsed (or immediately for a
// duplicate or failed request).
type request struct {
	Name ast.Name
	Path string
	done func()
}

// resolveState is shared by the dispatcher and the parse tasks of one
// Resolve call.
type resolveState struct {
	root     string
	fs       *source.FileSet
	reporter diag.Reporter
	opts     Options

	requests chan request
	wake     chan struct{}
	sem      chan struct{}

	// outstanding counts scheduled parse tasks that have not finished.
	outstanding atomic.Int64
	// unresolved counts import requests whose transitive completion has not
	// fired yet, the entry module included.
	unresolved atomic.Int64

	mu      sync.Mutex
	seen    map[string]struct{}
	modules map[string]*ast.Module
}

// Resolve parses entry and, transitively, every module it imports. Each
// file is parsed by its own task; imports found while parsing are posted back
// to the dispatcher, which terminates once no task is running, no request is
// queued and every import block has completed.
func Resolve(ctx context.Context, entry string, opts Options) (*Program, error) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "resolve", trace.CurrentSpan(ctx).SpanID)
	defer span.End("")
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})

	abs, err := filepath.Abs(entry)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", entry, err)
	}
	root := filepath.Dir(abs)
	bag := diag.NewBag(opts.MaxDiagnostics)
	jobs := jobsOrDefault(opts.Jobs)

	s := &resolveState{
		root:     root,
		fs:       source.NewFileSetWithBase(root),
		reporter: diag.NewSyncReporter(diag.BagReporter{Bag: bag}),
		opts:     opts,
		requests: make(chan request, 64),
		wake:     make(chan struct{}, 1),
		sem:      make(chan struct{}, jobs),
		seen:     make(map[string]struct{}),
		modules:  make(map[string]*ast.Module),
	}
	s.unresolved.Store(1)
	s.requests <- request{
		Name: ast.PhantomName(strings.TrimSuffix(filepath.Base(abs), SourceExt)),
		Path: abs,
		done: func() {
			s.unresolved.Add(-1)
			s.signal()
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	loopErr := s.dispatch(gctx, g)
	waitErr := g.Wait()
	if loopErr == nil {
		loopErr = waitErr
	}

	prog := &Program{
		Root:        root,
		Entry:       abs,
		Files:       s.fs,
		Modules:     s.modules,
		Bag:         bag,
		Outstanding: s.outstanding.Load(),
		Unresolved:  s.unresolved.Load(),
	}
	span.WithExtra("modules", fmt.Sprint(len(prog.Modules)))
	if loopErr != nil {
		return prog, fmt.Errorf("resolve %s: %w", entry, loopErr)
	}
	return prog, nil
}

// dispatch reads requests until the module set is closed.
func (s *resolveState) dispatch(ctx context.Context, g *errgroup.Group) error {
	for {
		select {
		case req := <-s.requests:
			s.schedule(ctx, g, req)
		case <-s.wake:
			if len(s.requests) == 0 && s.outstanding.Load() == 0 && s.unresolved.Load() == 0 {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *resolveState) schedule(ctx context.Context, g *errgroup.Group, req request) {
	s.mu.Lock()
	_, dup := s.seen[req.Path]
	s.seen[req.Path] = struct{}{}
	s.mu.Unlock()
	if dup {
		req.done()
		return
	}

	s.outstanding.Add(1)
	g.Go(func() error {
		defer s.finish()
		select {
		case s.sem <- struct{}{}:
		case <-ctx.Done():
			req.done()
			return ctx.Err()
		}
		defer func() { <-s.sem }()
		s.parse(ctx, req)
		return nil
	})
}

func (s *resolveState) finish() {
	s.outstanding.Add(-1)
	s.signal()
}

// signal wakes the dispatcher without blocking.
func (s *resolveState) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *resolveState) parse(ctx context.Context, req request) {
	id, err := s.fs.Load(req.Path)
	if err != nil {
		s.reporter.Report(diag.IOLoadFileError, diag.SevError, req.Name.Loc,
			fmt.Sprintf("failed to load %s: %v", req.Path, err), nil)
		req.done()
		return
	}

	// 1 за сам модуль плюс по одному на каждый импорт
	tracker := &pending{done: req.done}
	tracker.n.Store(1)

	res := parser.ParseFile(ctx, s.fs, id, parser.Options{
		Reporter:  s.reporter,
		Imports:   &importSink{ctx: ctx, state: s, tracker: tracker},
		Path:      req.Path,
		MaxErrors: maxErrors(s.opts.MaxDiagnostics),
	})

	s.mu.Lock()
	s.modules[req.Path] = res.Module
	s.mu.Unlock()

	tracker.release()
}

// pending fires done when its count drops to zero.
type pending struct {
	n    atomic.Int64
	done func()
}

func (p *pending) add() { p.n.Add(1) }

func (p *pending) release() {
	if p.n.Add(-1) == 0 {
		p.done()
	}
}

// importSink resolves imports of one module and posts them to the dispatcher.
type importSink struct {
	ctx     context.Context
	state   *resolveState
	tracker *pending
}

func (is *importSink) RequestImport(name ast.Name) (ast.ImportKey, string, error) {
	key, path, err := Seek(is.state.root, name)
	if err != nil {
		return ast.ImportKey{}, "", err
	}
	s := is.state
	s.unresolved.Add(1)
	is.tracker.add()
	req := request{
		Name: name,
		Path: path,
		done: func() {
			s.unresolved.Add(-1)
			is.tracker.release()
			s.signal()
		},
	}
	select {
	case s.requests <- req:
		return key, path, nil
	case <-is.ctx.Done():
		req.done()
		return ast.ImportKey{}, "", is.ctx.Err()
	}
}

// Seek maps a dotted import name to a file under root. If every segment but
// the last names a file, the import is the last segment as a symbol of that
// file; otherwise the whole name must be a file.
func Seek(root string, name ast.Name) (ast.ImportKey, string, error) {
	segs := name.Segments
	if len(segs) > 1 {
		path := filepath.Join(root, filepath.Join(segs[:len(segs)-1]...)) + SourceExt
		if isFile(path) {
			return ast.SymbolKey(name.Last()), path, nil
		}
	}
	path := filepath.Join(root, filepath.Join(segs...)) + SourceExt
	if isFile(path) {
		return ast.ModuleKey(name.String()), path, nil
	}
	return ast.ImportKey{}, "", fmt.Errorf("%w for %s", ErrImportNotFound, strings.Join(segs, "/")+SourceExt)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func maxErrors(n int) uint {
	v, err := safecast.Conv[uint](n)
	if err != nil {
		return 0
	}
	return v
}
