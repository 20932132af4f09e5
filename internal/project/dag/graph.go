// Package dag orders the modules of a program so that every module comes
// after the modules it imports. Import cycles are legal in ghost; modules
// on a cycle are reported instead of ordered.
package dag

import (
	"slices"
	"sort"
)

type ModuleID uint32

// Index assigns dense ids to module names in sorted order.
type Index struct {
	NameToID map[string]ModuleID
	IDToName []string
}

// BuildIndex collects every module named as a key or as an import.
func BuildIndex(imports map[string][]string) Index {
	uniq := make(map[string]struct{}, len(imports))
	for name, deps := range imports {
		uniq[name] = struct{}{}
		for _, dep := range deps {
			if dep != "" {
				uniq[dep] = struct{}{}
			}
		}
	}
	names := make([]string, 0, len(uniq))
	for name := range uniq {
		names = append(names, name)
	}
	sort.Strings(names)
	idx := Index{NameToID: make(map[string]ModuleID, len(names)), IDToName: names}
	for i, name := range names {
		idx.NameToID[name] = ModuleID(i)
	}
	return idx
}

// Graph has an edge from each dependency to its importer.
type Graph struct {
	Edges [][]ModuleID
	Indeg []int
}

// Build turns an import map into a graph over idx. Self imports and
// repeated imports contribute no edges.
func Build(idx Index, imports map[string][]string) Graph {
	n := len(idx.IDToName)
	g := Graph{Edges: make([][]ModuleID, n), Indeg: make([]int, n)}
	for name, deps := range imports {
		to := idx.NameToID[name]
		seen := make(map[ModuleID]struct{}, len(deps))
		for _, dep := range deps {
			from, ok := idx.NameToID[dep]
			if !ok || from == to {
				continue
			}
			if _, dup := seen[from]; dup {
				continue
			}
			seen[from] = struct{}{}
			g.Edges[from] = append(g.Edges[from], to)
			g.Indeg[to]++
		}
	}
	for i := range g.Edges {
		slices.Sort(g.Edges[i])
	}
	return g
}
