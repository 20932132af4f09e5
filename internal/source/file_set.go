package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
)

// FileSet owns every file of one compilation and maps spans back to lines.
// The resolver loads files from several goroutines, so all methods lock.
type FileSet struct {
	mu      sync.RWMutex
	files   []*File
	byPath  map[string]FileID // latest version of each path
	baseDir string            // корень проекта для относительных путей
}

func NewFileSet() *FileSet {
	return &FileSet{byPath: make(map[string]FileID)}
}

// NewFileSetWithBase makes relative paths in diagnostics start at baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

// BaseDir returns the directory relative paths are resolved against,
// falling back to the working directory.
func (fileSet *FileSet) BaseDir() string {
	fileSet.mu.RLock()
	base := fileSet.baseDir
	fileSet.mu.RUnlock()
	if base == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return base
}

// Add stores already normalized content under a fresh FileID. Adding the
// same path again keeps the old version reachable by ID; Lookup returns the
// newest one.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	f := &File{
		Path:    normalizePath(path),
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}

	fileSet.mu.Lock()
	defer fileSet.mu.Unlock()
	n, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("too many files: %w", err))
	}
	f.ID = FileID(n)
	fileSet.files = append(fileSet.files, f)
	fileSet.byPath[f.Path] = f.ID
	return f.ID
}

// Load reads path from disk, strips a BOM and rewrites CRLF line ends.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- module paths come from the resolver
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, flags := normalize(raw)
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds in-memory content (tests, fuzzing, stdin).
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns nil for an unknown id.
func (fileSet *FileSet) Get(id FileID) *File {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	if int(id) >= len(fileSet.files) {
		return nil
	}
	return fileSet.files[id]
}

// Lookup returns the newest FileID added under path.
func (fileSet *FileSet) Lookup(path string) (FileID, bool) {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	id, ok := fileSet.byPath[normalizePath(path)]
	return id, ok
}

// Len counts stored file versions.
func (fileSet *FileSet) Len() int {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	return len(fileSet.files)
}

// Resolve converts both ends of span to line and column.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.Get(span.File)
	if f == nil {
		return LineCol{}, LineCol{}
	}
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// Locate attaches the rows covered by span.
func (f *File) Locate(span Span) Location {
	first := toLineCol(f.LineIdx, span.Start).Line
	last := first
	if span.End > span.Start {
		// строка последнего байта, а не позиции после него
		last = toLineCol(f.LineIdx, span.End-1).Line
	}
	return Location{Span: span, Rows: Rows{Start: first, End: last}}
}

// LineStart returns the byte offset where the 1-based line begins; lines
// past the end map to 0.
func (f *File) LineStart(line uint32) uint32 {
	if line <= 1 || int(line-2) >= len(f.LineIdx) {
		return 0
	}
	return f.LineIdx[line-2] + 1
}

// Line returns the 1-based line without its newline, or "" if there is no
// such line.
func (f *File) Line(line uint32) string {
	if line == 0 || int(line-1) > len(f.LineIdx) {
		return ""
	}
	start := f.LineStart(line)
	end := len(f.Content)
	if int(line-1) < len(f.LineIdx) {
		end = int(f.LineIdx[line-1])
	}
	if int(start) > end {
		return ""
	}
	return string(f.Content[start:end])
}

// FormatPath renders the path for diagnostics. mode is one of absolute,
// relative, basename or auto; auto keeps short or relative paths as they are.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case "relative":
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		if rel, err := filepath.Rel(baseDir, f.Path); err == nil {
			return filepath.ToSlash(rel)
		}
	case "basename":
		return filepath.Base(f.Path)
	case "auto":
		if filepath.IsAbs(f.Path) && len(f.Path) >= 40 {
			return filepath.Base(f.Path)
		}
	}
	return f.Path
}
