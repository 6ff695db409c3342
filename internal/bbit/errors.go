package bbit

import (
	"errors"
	"fmt"
)

// ErrScanOnEmpty is returned by Sparse.InitScanChecked (and by
// Sparse.InitScanFrom with firstBit == noBit) when a sparse bitset has no
// records to scan, recoverable by callers that want to treat it as
// ordinary end-of-iteration. Sparse.InitScan instead panics with it in
// destructive modes, since there is no record vector left to index.
var ErrScanOnEmpty = errors.New("bbit: init scan on empty sparse bitset")

// errUnsupportedScanFrom is returned by InitScanFrom when called with a
// destructive mode; starting a destructive scan from a given bit is
// unsupported and rejected outright.
var errUnsupportedScanFrom = errors.New("bbit: InitScanFrom only supports non-destructive modes")

// rangeCheck panics with a descriptive message if b is not in [0, capacity).
// Out-of-range access is a precondition violation, checked
// unconditionally rather than only in debug builds.
func rangeCheck(b, capacity int) {
	if b < 0 || b >= capacity {
		panic(fmt.Sprintf("bbit: bit index %d out of range (capacity %d)", b, capacity))
	}
}

func capacityCheck(a, b int) {
	if a != b {
		panic(fmt.Sprintf("bbit: mismatched capacities: %d vs %d", a, b))
	}
}
