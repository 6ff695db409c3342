package bbbench

import "testing"

func TestDenseGrowsOnDemand(t *testing.T) {
	d := newDense()
	d.set(200)
	if d.popcount() != 1 {
		t.Fatalf("popcount() = %d, want 1", d.popcount())
	}
	if len(d.words) < 4 {
		t.Fatalf("expected words to grow to cover bit 200, got %d words", len(d.words))
	}
}

func TestDenseAnyIntersect(t *testing.T) {
	a, b := newDense(), newDense()
	a.set(5)
	b.set(70)
	if a.anyIntersect(b) {
		t.Fatal("expected disjoint bitsets")
	}
	b.set(5)
	if !a.anyIntersect(b) {
		t.Fatal("expected overlapping bitsets")
	}
}

func TestDenseAnyIntersectNilOther(t *testing.T) {
	a := newDense()
	a.set(1)
	if a.anyIntersect(nil) {
		t.Fatal("expected anyIntersect(nil) to be false")
	}
}
