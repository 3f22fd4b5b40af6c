package query

import "testing"

func TestInterner_SameTupleSharesId(t *testing.T) {
	in := newInterner()

	a := in.Intern("post", 1)
	b := in.Intern("post", 1)
	if a != b {
		t.Errorf("expected equal tuples to share an id: %d != %d", a, b)
	}
}

func TestInterner_DifferentTuplesGetDifferentIds(t *testing.T) {
	in := newInterner()

	a := in.Intern("post", 1)
	b := in.Intern("post", 2)
	if a == b {
		t.Error("expected different tuples to get different ids")
	}
}

func TestInterner_GetReturnsOriginalParts(t *testing.T) {
	in := newInterner()

	id := in.Intern("post", 7, true)
	parts, ok := in.Get(id)
	if !ok {
		t.Fatal("expected tuple to be found")
	}
	if len(parts) != 3 || parts[0] != "post" || parts[1] != 7 || parts[2] != true {
		t.Errorf("parts = %v, want [post 7 true]", parts)
	}

	if _, ok := in.Get(id + 1000); ok {
		t.Error("expected an unused id to not be found")
	}
}

func TestInterner_EmptyTupleIsStable(t *testing.T) {
	in := newInterner()

	a := in.Intern()
	b := in.Intern()
	if a != b {
		t.Errorf("expected two empty tuples to share an id: %d != %d", a, b)
	}
}
