package bbbench

import "math/bits"

// dense is a small auto-growing bitset used only to track which handle
// indices a Scenario's Access touches. Unlike bbit.Dense, which is
// fixed-capacity by design, the set of handle names in a suite isn't
// known until the suite is loaded, so this grows on demand instead.
type dense struct {
	words []uint64
}

func newDense() *dense {
	return &dense{}
}

func (d *dense) ensure(word int) {
	if word < len(d.words) {
		return
	}
	grown := make([]uint64, word+1)
	copy(grown, d.words)
	d.words = grown
}

func (d *dense) set(i int) {
	w := i / 64
	d.ensure(w)
	d.words[w] |= uint64(1) << uint(i%64)
}

func (d *dense) anyIntersect(other *dense) bool {
	if other == nil {
		return false
	}
	n := min(len(d.words), len(other.words))
	for i := 0; i < n; i++ {
		if d.words[i]&other.words[i] != 0 {
			return true
		}
	}
	return false
}

// popcount is unused outside tests today but kept alongside the rest of
// this bitset's surface for parity with internal/bbit's naming.
func (d *dense) popcount() int {
	n := 0
	for _, w := range d.words {
		n += bits.OnesCount64(w)
	}
	return n
}
