package bbbench

import "context"

// Handles is the named set of bitset instances a scenario suite wires
// up; a Scenario's Fn receives one and looks up by name rather than by
// static type, since the suite is described in a TOML file read at
// runtime (cmd/bbbench), not known at compile time.
type Handles struct {
	values map[string]any
}

// NewHandles creates an empty handle registry.
func NewHandles() *Handles {
	return &Handles{values: make(map[string]any)}
}

// Set registers a bitset value (expected to be a *bbit.Dense,
// *bbit.Sparse, or *bbit.Sentinel) under name.
func (h *Handles) Set(name string, v any) {
	h.values[name] = v
}

// Get looks up the value registered under name, and whether it exists.
func (h *Handles) Get(name string) (any, bool) {
	v, ok := h.values[name]
	return v, ok
}

// Access declares which bitset handles a Scenario reads and writes, by
// name, so the Runner can compute conflict-free batches: concurrent
// writers to the same bitset are unsafe, concurrent readers of disjoint
// bitsets are safe.
type Access struct {
	Reads  []string
	Writes []string

	readsSet  map[string]struct{}
	writesSet map[string]struct{}

	readsBits  *dense
	writesBits *dense
}

// PrepareSets precomputes lookup sets and, given a HandleIndex, compact
// bitsets over handle names for an O(1) conflict fast path.
func (a *Access) PrepareSets(hi *HandleIndex) {
	build := func(src []string) map[string]struct{} {
		if len(src) == 0 {
			return nil
		}
		m := make(map[string]struct{}, len(src))
		for _, name := range src {
			m[name] = struct{}{}
		}
		return m
	}
	a.readsSet = build(a.Reads)
	a.writesSet = build(a.Writes)

	buildBits := func(src []string) *dense {
		if len(src) == 0 {
			return nil
		}
		b := newDense()
		for _, name := range src {
			b.set(hi.indexOf(name))
		}
		return b
	}
	a.readsBits = buildBits(a.Reads)
	a.writesBits = buildBits(a.Writes)
}

// Scenario is a single named unit of work, run once in its Phase (Setup,
// Exercise, or Verify). Its Access lives in the ScenarioMeta a Runner is
// given alongside it.
type Scenario struct {
	Name  string
	Phase Phase
	Fn    func(context.Context, *Handles) error
}

// HandleIndex maps a bitset handle name to a small int, so Access can
// build compact bitsets instead of comparing string slices.
type HandleIndex struct {
	m map[string]int
}

func newHandleIndex() *HandleIndex {
	return &HandleIndex{m: make(map[string]int)}
}

func (hi *HandleIndex) indexOf(name string) int {
	if idx, ok := hi.m[name]; ok {
		return idx
	}
	idx := len(hi.m)
	hi.m[name] = idx
	return idx
}
