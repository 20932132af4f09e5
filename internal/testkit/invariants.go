// Package testkit holds structural checks shared by parser and fuzz tests.
package testkit

import (
	"fmt"
	"sort"

	"fortio.org/safecast"

	"ghostc/internal/ast"
	"ghostc/internal/source"
)

// CheckSpanInvariants verifies every top-level location of mod:
// 1) it points into sf and lies within its content
// 2) the span is non-empty and the rows are ordered and 1-based
// 3) a definition covers its own name
func CheckSpanInvariants(mod *ast.Module, sf *source.File) error {
	if mod == nil || sf == nil {
		return fmt.Errorf("nil module or file")
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	check := func(what string, loc source.Location) error {
		sp := loc.Span
		switch {
		case sp.File != sf.ID:
			return fmt.Errorf("%s: span points to file %d, want %d", what, sp.File, sf.ID)
		case sp.End <= sp.Start:
			return fmt.Errorf("%s: empty span %v", what, sp)
		case sp.End > size:
			return fmt.Errorf("%s: span end %d beyond content %d", what, sp.End, size)
		case loc.Rows.Start == 0 || loc.Rows.End < loc.Rows.Start:
			return fmt.Errorf("%s: bad rows %d-%d", what, loc.Rows.Start, loc.Rows.End)
		}
		return nil
	}

	for _, name := range sortedNames(mod.FnDecls) {
		if err := check("decl "+name, mod.FnDecls[name].Loc); err != nil {
			return err
		}
	}
	for _, name := range sortedNames(mod.FnDefns) {
		d := mod.FnDefns[name]
		if err := check("defn "+name, d.Loc); err != nil {
			return err
		}
		if n := d.Name.Loc.Span; n.Start < d.Loc.Span.Start || n.End > d.Loc.Span.End {
			return fmt.Errorf("defn %s: name %v outside %v", name, n, d.Loc.Span)
		}
	}
	for _, name := range sortedNames(mod.Externs) {
		if err := check("extern "+name, mod.Externs[name].Loc); err != nil {
			return err
		}
	}
	for key, loc := range mod.ImportLocs {
		if err := check("import "+key.Name, loc); err != nil {
			return err
		}
	}
	return nil
}

func sortedNames[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
