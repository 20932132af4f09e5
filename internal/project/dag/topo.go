package dag

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

type Topo struct {
	Order   []ModuleID   // зависимости раньше импортёров
	Batches [][]ModuleID // волны модулей без взаимных зависимостей
	Cyclic  bool
	Cycles  []ModuleID // модули, оставшиеся на циклах (и всё, что от них зависит)
}

// Toposort runs Kahn's algorithm. Each batch is sorted by id.
func Toposort(g Graph) *Topo {
	n := len(g.Edges)
	indeg := slices.Clone(g.Indeg)
	topo := &Topo{Order: make([]ModuleID, 0, n)}

	current := make([]ModuleID, 0, n)
	for i := range n {
		if indeg[i] == 0 {
			current = append(current, moduleID(i))
		}
	}

	for len(current) > 0 {
		batch := slices.Clone(current)
		topo.Batches = append(topo.Batches, batch)
		var next []ModuleID
		for _, id := range batch {
			topo.Order = append(topo.Order, id)
			for _, to := range g.Edges[id] {
				indeg[to]--
				if indeg[to] == 0 {
					next = append(next, to)
				}
			}
		}
		slices.Sort(next)
		current = next
	}

	if len(topo.Order) != n {
		topo.Cyclic = true
		for i := range n {
			if indeg[i] > 0 {
				topo.Cycles = append(topo.Cycles, moduleID(i))
			}
		}
	}
	return topo
}

// Names maps batches and cycle members back to module names.
func (t *Topo) Names(idx Index) (batches [][]string, cycles []string) {
	for _, batch := range t.Batches {
		names := make([]string, len(batch))
		for i, id := range batch {
			names[i] = idx.IDToName[id]
		}
		batches = append(batches, names)
	}
	for _, id := range t.Cycles {
		cycles = append(cycles, idx.IDToName[id])
	}
	return batches, cycles
}

func moduleID(i int) ModuleID {
	id, err := safecast.Conv[ModuleID](i)
	if err != nil {
		panic(fmt.Errorf("module id overflow: %w", err))
	}
	return id
}
