package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the project file looked up from the working directory.
const ManifestName = "ghost.toml"

// SourceExt is the extension of source files.
const SourceExt = ".gh"

const defaultTargetDir = "target"

var (
	ErrProjectSectionMissing = errors.New("missing [project]")
	ErrEntryMissing          = errors.New("missing [project].exec_entry")
)

type ProjectSection struct {
	Name      string `toml:"name"`
	Author    string `toml:"author"`
	ExecEntry string `toml:"exec_entry"`
}

// CLibsSection lists C sources, objects or archives handed to the linker,
// either as plain paths and flags or as named [[clibs.lib]] entries.
type CLibsSection struct {
	Paths []string `toml:"paths"`
	Flags []string `toml:"flags"`
	Libs  []CLib   `toml:"lib"`
}

// CLib is one named C library and the flags it links with.
type CLib struct {
	Name  string   `toml:"name"`
	Path  string   `toml:"path"`
	Flags []string `toml:"flags"`
}

type BuildSection struct {
	Jobs      int    `toml:"jobs"`
	TargetDir string `toml:"target_dir"`
	VerifyIR  bool   `toml:"verify_ir"`
}

// Manifest is a decoded ghost.toml. Paths inside it are relative to Root.
type Manifest struct {
	Path    string         `toml:"-"`
	Root    string         `toml:"-"`
	Project ProjectSection `toml:"project"`
	CLibs   CLibsSection   `toml:"clibs"`
	Build   BuildSection   `toml:"build"`
}

// FindManifest walks up from startDir looking for ghost.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// LoadManifest decodes path. Unknown keys are rejected.
func LoadManifest(path string) (*Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	meta, err := toml.DecodeFile(abs, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("project") {
		return nil, fmt.Errorf("%s: %w", path, ErrProjectSectionMissing)
	}
	if !meta.IsDefined("project", "exec_entry") || strings.TrimSpace(m.Project.ExecEntry) == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrEntryMissing)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if m.Build.Jobs < 0 {
		return nil, fmt.Errorf("%s: [build].jobs must not be negative", path)
	}
	if err := m.CLibs.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Path = abs
	m.Root = filepath.Dir(abs)
	m.Project.Name = strings.TrimSpace(m.Project.Name)
	if m.Project.Name == "" {
		m.Project.Name = filepath.Base(m.Root)
	}
	if m.Build.TargetDir == "" {
		m.Build.TargetDir = defaultTargetDir
	}
	return &m, nil
}

// ForEntry describes a project made of a single entry file and no manifest.
func ForEntry(entry string) (*Manifest, error) {
	abs, err := filepath.Abs(entry)
	if err != nil {
		return nil, err
	}
	root := filepath.Dir(abs)
	return &Manifest{
		Root: root,
		Project: ProjectSection{
			Name:      strings.TrimSuffix(filepath.Base(abs), SourceExt),
			ExecEntry: filepath.Base(abs),
		},
		Build: BuildSection{TargetDir: defaultTargetDir},
	}, nil
}

// Discover prefers an explicit entry, then the nearest ghost.toml.
func Discover(startDir, entry string) (*Manifest, error) {
	if entry != "" {
		return ForEntry(entry)
	}
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no %s found from %s; pass --entry", ManifestName, startDir)
	}
	return LoadManifest(path)
}

func (m *Manifest) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Root, filepath.FromSlash(p))
}

func (m *Manifest) EntryPath() string { return m.resolve(m.Project.ExecEntry) }

func (c *CLibsSection) validate() error {
	seen := make(map[string]struct{}, len(c.Libs))
	for i, lib := range c.Libs {
		name := strings.TrimSpace(lib.Name)
		if name == "" {
			return fmt.Errorf("[[clibs.lib]] #%d: name is required", i+1)
		}
		if strings.TrimSpace(lib.Path) == "" {
			return fmt.Errorf("[[clibs.lib]] %s: path is required", name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("[[clibs.lib]] %s: duplicate name", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// CLibPaths returns [clibs].paths and then every [[clibs.lib]] path, made
// absolute.
func (m *Manifest) CLibPaths() []string {
	out := make([]string, 0, len(m.CLibs.Paths)+len(m.CLibs.Libs))
	for _, p := range m.CLibs.Paths {
		out = append(out, m.resolve(p))
	}
	for _, lib := range m.CLibs.Libs {
		out = append(out, m.resolve(lib.Path))
	}
	return out
}

// CLibFlags returns [clibs].flags followed by the flags of each library.
func (m *Manifest) CLibFlags() []string {
	out := append([]string(nil), m.CLibs.Flags...)
	for _, lib := range m.CLibs.Libs {
		out = append(out, lib.Flags...)
	}
	return out
}

// OutputDir is target/<profile>.
func (m *Manifest) OutputDir(profile string) string {
	return filepath.Join(m.resolve(m.Build.TargetDir), profile)
}
