package bbit

import (
	"reflect"
	"testing"
)

func TestDenseSetEraseIs(t *testing.T) {
	d := NewDense(2)
	if d.Is(10) {
		t.Fatal("expected bit 10 clear initially")
	}
	d.Set(10)
	if !d.Is(10) {
		t.Fatal("expected bit 10 set")
	}
	d.Erase(10)
	if d.Is(10) {
		t.Fatal("expected bit 10 clear after erase")
	}
}

func TestDenseSetOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range Set")
		}
	}()
	d := NewDense(1)
	d.Set(64)
}

func TestDenseSetRangeSingleWord(t *testing.T) {
	d := NewDense(1)
	d.SetRange(2, 5)
	want := maskRange(2, 5)
	if d.Block(0) != want {
		t.Errorf("Block(0) = %#x, want %#x", d.Block(0), want)
	}
}

func TestDenseSetRangeMultiWord(t *testing.T) {
	d := NewDense(3)
	d.SetRange(60, 130)
	if d.Block(0) != maskHigh(59) {
		t.Errorf("Block(0) = %#x, want %#x", d.Block(0), maskHigh(59))
	}
	if d.Block(1) != ^uint64(0) {
		t.Errorf("Block(1) = %#x, want all ones", d.Block(1))
	}
	if d.Block(2) != maskLow(3) {
		t.Errorf("Block(2) = %#x, want %#x", d.Block(2), maskLow(3))
	}
}

func TestDenseEraseRange(t *testing.T) {
	d := NewDense(2)
	d.SetRange(0, 127)
	d.EraseRange(60, 70)
	for b := 0; b < 128; b++ {
		want := b < 60 || b > 70
		if got := d.Is(b); got != want {
			t.Errorf("bit %d: Is() = %v, want %v", b, got, want)
		}
	}
}

func TestDenseCountLSBMSB(t *testing.T) {
	d := NewDenseFromBits(2, []int{3, 70, 127})
	if got := d.Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
	if got := d.LSB(); got != 3 {
		t.Errorf("LSB() = %d, want 3", got)
	}
	if got := d.MSB(); got != 127 {
		t.Errorf("MSB() = %d, want 127", got)
	}
}

func TestDenseEmptyLSBMSB(t *testing.T) {
	d := NewDense(2)
	if got := d.LSB(); got != noBit {
		t.Errorf("LSB() on empty = %d, want noBit", got)
	}
	if got := d.MSB(); got != noBit {
		t.Errorf("MSB() on empty = %d, want noBit", got)
	}
}

func TestDenseSetAlgebra(t *testing.T) {
	a := NewDenseFromBits(1, []int{1, 2, 3})
	b := NewDenseFromBits(1, []int{2, 3, 4})

	and := a.Clone()
	and.And(b)
	if got, want := and.ToVector(), []int{2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("And: got %v, want %v", got, want)
	}

	or := a.Clone()
	or.Or(b)
	if got, want := or.ToVector(), []int{1, 2, 3, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("Or: got %v, want %v", got, want)
	}

	xor := a.Clone()
	xor.Xor(b)
	if got, want := xor.ToVector(), []int{1, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("Xor: got %v, want %v", got, want)
	}

	erase := a.Clone()
	erase.EraseBits(b)
	if got, want := erase.ToVector(), []int{1}; !reflect.DeepEqual(got, want) {
		t.Errorf("EraseBits: got %v, want %v", got, want)
	}
}

func TestDenseIsDisjointAndEqual(t *testing.T) {
	a := NewDenseFromBits(1, []int{1, 2})
	b := NewDenseFromBits(1, []int{3, 4})
	if !a.IsDisjoint(b) {
		t.Error("expected a, b disjoint")
	}
	b.Set(1)
	if a.IsDisjoint(b) {
		t.Error("expected a, b no longer disjoint")
	}

	c := NewDenseFromBits(1, []int{1, 2})
	if !a.Equal(c) {
		t.Error("expected a == c")
	}
	if a.Equal(b) {
		t.Error("expected a != b")
	}
}

func TestDenseCapacityMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for mismatched capacities")
		}
	}()
	a := NewDense(1)
	b := NewDense(2)
	a.Or(b)
}

func TestDenseFreeFunctions(t *testing.T) {
	a := NewDenseFromBits(1, []int{1, 2})
	b := NewDenseFromBits(1, []int{2, 3})
	out := NewDense(1)

	AND(a, b, out)
	if got, want := out.ToVector(), []int{2}; !reflect.DeepEqual(got, want) {
		t.Errorf("AND: got %v, want %v", got, want)
	}
	OR(a, b, out)
	if got, want := out.ToVector(), []int{1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("OR: got %v, want %v", got, want)
	}
	XOR(a, b, out)
	if got, want := out.ToVector(), []int{1, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("XOR: got %v, want %v", got, want)
	}
	ERASE(a, b, out)
	if got, want := out.ToVector(), []int{1}; !reflect.DeepEqual(got, want) {
		t.Errorf("ERASE: got %v, want %v", got, want)
	}
}

func TestDenseFlipAndEraseAll(t *testing.T) {
	d := NewDenseFromBits(1, []int{0, 2, 4})
	d.Flip()
	for b := 0; b < 64; b++ {
		want := b != 0 && b != 2 && b != 4
		if got := d.Is(b); got != want {
			t.Errorf("after Flip, bit %d = %v, want %v", b, got, want)
		}
	}
	d.EraseAll()
	if !d.IsEmpty() {
		t.Error("expected empty after EraseAll")
	}
}

func TestDenseCloneIndependence(t *testing.T) {
	d := NewDenseFromBits(1, []int{1})
	cp := d.Clone()
	cp.Set(2)
	if d.Is(2) {
		t.Error("mutating clone affected original")
	}
}

func TestNewDenseFromPopulation(t *testing.T) {
	d := NewDenseFromPopulation(65)
	if got, want := d.Blocks(), 2; got != want {
		t.Errorf("Blocks() = %d, want %d", got, want)
	}
}
