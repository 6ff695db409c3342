// Package bitgraph is a high-performance bitset engine for
// combinatorial optimization and graph algorithms: fixed-capacity
// Dense and compressed Sparse bitsets over 64-bit blocks, a Sentinel
// variant that tracks the non-zero block window, and a uniform
// scanning layer over all three with cached cursors for forward,
// reverse, and destructive enumeration.
//
// Most of the implementation lives in internal/bbit; this package is a
// thin facade of type aliases and constructor forwarders exposing it
// at the module root.
package bitgraph

import (
	"math/rand"

	"github.com/oriumgames/bitgraph/internal/bbit"
)

type (
	// Dense is a fixed-capacity bitset backed by a slice of 64-bit words.
	Dense = bbit.Dense
	// Sparse is a compressed bitset storing only non-zero blocks.
	Sparse = bbit.Sparse
	// Sentinel is a Dense bitset augmented with a [low, high] window of
	// blocks known to contain every set bit.
	Sentinel = bbit.Sentinel
	// ScanMode selects a scanning order: forward/reverse,
	// destructive/non-destructive.
	ScanMode = bbit.ScanMode
	// Scanner is the interface Dense, Sparse, and Sentinel all implement
	// for cursor-based enumeration of set bits.
	Scanner = bbit.Scanner
)

const (
	// NonDestructive scans ascending without modifying the bitset.
	NonDestructive = bbit.NonDestructive
	// NonDestructiveReverse scans descending without modifying the bitset.
	NonDestructiveReverse = bbit.NonDestructiveReverse
	// Destructive scans ascending, clearing each bit as it is returned.
	Destructive = bbit.Destructive
	// DestructiveReverse scans descending, clearing each bit as it is returned.
	DestructiveReverse = bbit.DestructiveReverse

	// NoBit is returned by LSB, MSB, and Next/NextPaired when a bitset
	// (or a scan) has no more set bits to report.
	NoBit = -1
)

// ErrScanOnEmpty is returned by a sparse bitset's InitScanChecked when
// it holds no records.
var ErrScanOnEmpty = bbit.ErrScanOnEmpty

// NewDense creates a Dense bitset with the given block-capacity.
func NewDense(blocks int) *Dense { return bbit.NewDense(blocks) }

// NewDenseFromBits creates a Dense bitset with the given block-capacity
// and sets every bit in idxs.
func NewDenseFromBits(blocks int, idxs []int) *Dense { return bbit.NewDenseFromBits(blocks, idxs) }

// NewDenseFromPopulation creates a Dense bitset sized to hold at least
// n bits.
func NewDenseFromPopulation(n int) *Dense { return bbit.NewDenseFromPopulation(n) }

// NewSparse creates an empty Sparse bitset with the given block-capacity.
func NewSparse(capacity int) *Sparse { return bbit.NewSparse(capacity) }

// NewSparseFromBits creates a Sparse bitset with the given
// block-capacity and sets every bit in idxs.
func NewSparseFromBits(capacity int, idxs []int) *Sparse {
	return bbit.NewSparseFromBits(capacity, idxs)
}

// NewSentinel creates an empty Sentinel bitset with the given block-capacity.
func NewSentinel(blocks int) *Sentinel { return bbit.NewSentinel(blocks) }

// NewSentinelFromBits creates a Sentinel bitset with the given
// block-capacity and sets every bit in idxs.
func NewSentinelFromBits(blocks int, idxs []int) *Sentinel {
	return bbit.NewSentinelFromBits(blocks, idxs)
}

// AND computes out = a & b over Dense bitsets of equal capacity.
func AND(a, b, out *Dense) { bbit.AND(a, b, out) }

// OR computes out = a | b over Dense bitsets of equal capacity.
func OR(a, b, out *Dense) { bbit.OR(a, b, out) }

// XOR computes out = a ^ b over Dense bitsets of equal capacity.
func XOR(a, b, out *Dense) { bbit.XOR(a, b, out) }

// ERASE computes out = a &^ b over Dense bitsets of equal capacity.
func ERASE(a, b, out *Dense) { bbit.ERASE(a, b, out) }

// GenRandomBlock returns a 64-bit word with each bit independently set
// with probability p, using rng for reproducibility.
func GenRandomBlock(p float64, rng *rand.Rand) uint64 { return bbit.GenRandomBlock(p, rng) }

// FirstKBits copies the first k ascending set bits of bb into out.
func FirstKBits(k int, bb *Dense, out *Dense) { bbit.FirstKBits(k, bb, out) }
