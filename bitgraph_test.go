package bitgraph

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestFacadeDenseRoundTrip(t *testing.T) {
	d := NewDenseFromBits(2, []int{1, 70, 127})
	if got, want := d.ToVector(), []int{1, 70, 127}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFacadeSetAlgebra(t *testing.T) {
	a := NewDenseFromBits(1, []int{1, 2, 3})
	b := NewDenseFromBits(1, []int{2, 3, 4})
	out := NewDense(1)
	AND(a, b, out)
	if got, want := out.ToVector(), []int{2, 3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("AND: got %v, want %v", got, want)
	}
	OR(a, b, out)
	if got, want := out.ToVector(), []int{1, 2, 3, 4}; !reflect.DeepEqual(got, want) {
		t.Fatalf("OR: got %v, want %v", got, want)
	}
}

func TestFacadeSentinelAndSparseConstructors(t *testing.T) {
	s := NewSentinelFromBits(2, []int{10, 70})
	if lo, hi := s.Window(); lo != 0 || hi != 1 {
		t.Fatalf("Window() = (%d, %d), want (0, 1)", lo, hi)
	}
	sp := NewSparseFromBits(2, []int{10, 70})
	if got, want := sp.ToVector(), []int{10, 70}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFacadeScanModesExported(t *testing.T) {
	d := NewDenseFromBits(1, []int{1, 2, 3})
	d.InitScan(NonDestructive)
	var got []int
	for {
		b := d.Next()
		if b == NoBit {
			break
		}
		got = append(got, b)
	}
	if want := []int{1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFacadeGenRandomBlockAndFirstKBits(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	w := GenRandomBlock(1, rng)
	if w != ^uint64(0) {
		t.Fatalf("GenRandomBlock(1) = %#x, want all ones", w)
	}

	bb := NewDenseFromBits(1, []int{1, 2, 3})
	out := NewDense(1)
	FirstKBits(2, bb, out)
	if got, want := out.ToVector(), []int{1, 2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
