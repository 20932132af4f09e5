package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"ghostc/internal/observ"
	"ghostc/internal/project/dag"
)

// IndexFile is the name of the module graph written next to the binary.
const IndexFile = "modules.mp"

const indexSchema uint16 = 1

var ErrIndexSchema = errors.New("module index has an unsupported schema")

// ModuleIndex describes the last build: which modules took part, how they
// import each other and in which order they can be compiled.
type ModuleIndex struct {
	Schema  uint16        `msgpack:"schema"`
	Project string        `msgpack:"project"`
	Entry   string        `msgpack:"entry"`
	Modules []ModuleEntry `msgpack:"modules"`

	// Batches lists module names, dependencies first.
	Batches [][]string    `msgpack:"batches"`
	Cycles  []string      `msgpack:"cycles,omitempty"`
	Timings observ.Report `msgpack:"timings"`
}

type ModuleEntry struct {
	Name    string   `msgpack:"name"`
	Path    string   `msgpack:"path"`
	Imports []string `msgpack:"imports"`

	// ContentHash covers the file; ModuleHash also covers the content of
	// its direct imports.
	ContentHash Digest   `msgpack:"content_hash"`
	ModuleHash  Digest   `msgpack:"module_hash"`
	Functions   []string `msgpack:"functions"`
	Externs     []string `msgpack:"externs,omitempty"`
	IR          string   `msgpack:"ir,omitempty"`
}

// NewIndex fills hashes, batches and cycles from entries. Entries must
// have Name, Imports and ContentHash set.
func NewIndex(projectName, entry string, entries []ModuleEntry) *ModuleIndex {
	imports := make(map[string][]string, len(entries))
	content := make(map[string]Digest, len(entries))
	for _, e := range entries {
		imports[e.Name] = e.Imports
		content[e.Name] = e.ContentHash
	}
	for i := range entries {
		deps := make([]Digest, 0, len(entries[i].Imports))
		for _, dep := range entries[i].Imports {
			deps = append(deps, content[dep])
		}
		entries[i].ModuleHash = Combine(entries[i].ContentHash, deps...)
	}
	idx := dag.BuildIndex(imports)
	batches, cycles := dag.Toposort(dag.Build(idx, imports)).Names(idx)
	return &ModuleIndex{
		Schema:  indexSchema,
		Project: projectName,
		Entry:   entry,
		Modules: entries,
		Batches: batches,
		Cycles:  cycles,
	}
}

// WriteIndex replaces path atomically.
func WriteIndex(path string, idx *ModuleIndex) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "modules-*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()
	if err = msgpack.NewEncoder(f).Encode(idx); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode module index: %w", err)
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

func ReadIndex(path string) (*ModuleIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var idx ModuleIndex
	if err := msgpack.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if idx.Schema != indexSchema {
		return nil, fmt.Errorf("%s: %w (%d)", path, ErrIndexSchema, idx.Schema)
	}
	return &idx, nil
}
