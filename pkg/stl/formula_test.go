package stl

import (
	"testing"

	"github.com/sapogo/sapogo/pkg/poly"
)

const i poly.Variable = 0

func Test_Atom_TimeBounds(t *testing.T) {
	a := NewAtom(poly.Linear(1, i))
	min, max := a.TimeBounds()
	//
	if min != 0 || max != 0 {
		t.Errorf("expected (0,0), got (%d,%d)", min, max)
	}
}

func Test_Always_TimeBounds(t *testing.T) {
	f := Always{A: 2, B: 5, Sub: NewAtom(poly.Linear(1, i))}
	min, max := f.TimeBounds()
	//
	if min != 2 || max != 5 {
		t.Errorf("expected (2,5), got (%d,%d)", min, max)
	}
}

func Test_Nested_TimeBounds_Envelope(t *testing.T) {
	inner := Eventually{A: 1, B: 10, Sub: NewAtom(poly.Linear(1, i))}
	outer := Always{A: 0, B: 3, Sub: inner}
	min, max := outer.TimeBounds()
	//
	if min != 0 || max != 10 {
		t.Errorf("expected envelope (0,10), got (%d,%d)", min, max)
	}
}

func Test_PNF_Atom_Negation(t *testing.T) {
	f := Negation{NewAtom(poly.Linear(1, i))}
	got := f.PNF()
	//
	atom, ok := got.(Atom)
	if !ok || atom.Relation != GT {
		t.Errorf("expected negated atom with GT relation, got %#v", got)
	}
}

func Test_PNF_DeMorgan(t *testing.T) {
	f := Negation{Conjunction{NewAtom(poly.Linear(1, i)), NewAtom(poly.Linear(-1, i))}}
	got := f.PNF()
	//
	disj, ok := got.(Disjunction)
	if !ok {
		t.Fatalf("expected Disjunction, got %#v", got)
	}
	//
	if _, ok := disj.Left.(Atom); !ok {
		t.Errorf("expected left atom after push-down")
	}
}

func Test_PNF_DoubleNegation(t *testing.T) {
	atom := NewAtom(poly.Linear(1, i))
	f := Negation{Negation{atom}}
	got, ok := f.PNF().(Atom)
	//
	if !ok || got.Relation != atom.Relation {
		t.Errorf("expected double negation to cancel to original atom, got %#v", f.PNF())
	}
}

func Test_PNF_Temporal_Duality(t *testing.T) {
	f := Negation{Always{A: 0, B: 4, Sub: NewAtom(poly.Linear(1, i))}}
	got := f.PNF()
	//
	ev, ok := got.(Eventually)
	if !ok || ev.A != 0 || ev.B != 4 {
		t.Errorf("expected Eventually[0,4], got %#v", got)
	}
}
