package bbbench

import "testing"

func TestHandlesSetGet(t *testing.T) {
	h := NewHandles()
	if _, ok := h.Get("missing"); ok {
		t.Fatal("expected missing handle to report ok=false")
	}
	h.Set("alpha", 42)
	v, ok := h.Get("alpha")
	if !ok || v.(int) != 42 {
		t.Fatalf("Get(alpha) = %v, %v, want 42, true", v, ok)
	}
}

func TestHandleIndexStableAssignment(t *testing.T) {
	hi := newHandleIndex()
	a := hi.indexOf("alpha")
	b := hi.indexOf("beta")
	again := hi.indexOf("alpha")
	if a != again {
		t.Fatalf("indexOf not stable: first=%d, second=%d", a, again)
	}
	if a == b {
		t.Fatal("expected distinct handles to get distinct indices")
	}
}

func TestAccessPrepareSetsBuildsBitsOnlyWhenNonEmpty(t *testing.T) {
	hi := newHandleIndex()
	a := Access{}
	a.PrepareSets(hi)
	if a.readsBits != nil || a.writesBits != nil {
		t.Fatal("expected nil bitsets for empty Access")
	}

	b := Access{Reads: []string{"alpha"}, Writes: []string{"beta"}}
	b.PrepareSets(hi)
	if b.readsBits == nil || b.writesBits == nil {
		t.Fatal("expected non-nil bitsets once Reads/Writes are set")
	}
}
