package dag

import (
	"reflect"
	"testing"
)

func TestToposort(t *testing.T) {
	tests := []struct {
		name        string
		imports     map[string][]string
		wantBatches [][]string
		wantCycles  []string
	}{
		{
			name:        "chain",
			imports:     map[string][]string{"main": {"a"}, "a": {"b"}, "b": nil},
			wantBatches: [][]string{{"b"}, {"a"}, {"main"}},
		},
		{
			name: "diamond",
			imports: map[string][]string{
				"main": {"left", "right"},
				"left": {"base"}, "right": {"base", "base"},
				"base": nil,
			},
			wantBatches: [][]string{{"base"}, {"left", "right"}, {"main"}},
		},
		{
			name:        "self import is ignored",
			imports:     map[string][]string{"main": {"main"}},
			wantBatches: [][]string{{"main"}},
		},
		{
			name:        "cycle",
			imports:     map[string][]string{"main": {"a"}, "a": {"b"}, "b": {"a"}, "util": nil},
			wantBatches: [][]string{{"util"}},
			wantCycles:  []string{"a", "b", "main"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := BuildIndex(tt.imports)
			topo := Toposort(Build(idx, tt.imports))
			batches, cycles := topo.Names(idx)
			if !reflect.DeepEqual(batches, tt.wantBatches) {
				t.Errorf("batches = %v, want %v", batches, tt.wantBatches)
			}
			if !reflect.DeepEqual(cycles, tt.wantCycles) {
				t.Errorf("cycles = %v, want %v", cycles, tt.wantCycles)
			}
			if topo.Cyclic != (len(tt.wantCycles) > 0) {
				t.Errorf("Cyclic = %v", topo.Cyclic)
			}
		})
	}
}
