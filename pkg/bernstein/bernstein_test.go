package bernstein

import (
	"testing"

	"github.com/sapogo/sapogo/pkg/poly"
	"github.com/sapogo/sapogo/pkg/util/assert"
)

const alpha poly.Variable = 0

// Test that the identity function x=alpha has Bernstein coefficients [0,1]
// over [0,1], degree 1.
func Test_Expand_Identity(t *testing.T) {
	p := poly.Linear(1, alpha)
	tensor, err := Expand(p, []poly.Variable{alpha})
	//
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	//
	min, max := tensor.MinMax()
	assert.FloatEqual(t, 0, min, 1e-12)
	assert.FloatEqual(t, 1, max, 1e-12)
}

// alpha^2 over [0,1]: monomial coeffs a0=0,a1=0,a2=1 (as x^2, degree 2).
// Bernstein coefficients for x^2 (degree 2) are known to be [0, 0, 1].
func Test_Expand_Square(t *testing.T) {
	p := poly.FromTerms(poly.NewMonomial(1, alpha, alpha))
	tensor, err := Expand(p, []poly.Variable{alpha})
	//
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	//
	min, max := tensor.MinMax()
	// true range of x^2 on [0,1] is [0,1]; Bernstein bound must enclose it.
	if min > 0+1e-9 || max < 1-1e-9 {
		t.Errorf("expected bound enclosing [0,1], got [%v,%v]", min, max)
	}
}

func Test_Expand_NonAffineParameter(t *testing.T) {
	const p0 poly.Variable = 1
	// alpha * p0^2: p0 appears with degree 2, not affine.
	term := poly.NewMonomial(1, alpha, p0, p0)
	_, err := Expand(poly.FromTerms(term), []poly.Variable{alpha})
	//
	if err == nil {
		t.Errorf("expected non-affine parameter error")
	}
}

func Test_Expand_AffineInParameter(t *testing.T) {
	const p0 poly.Variable = 1
	// alpha * p0: affine in p0.
	term := poly.NewMonomial(1, alpha, p0)
	tensor, err := Expand(poly.FromTerms(term), []poly.Variable{alpha})
	//
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	//
	cells := tensor.Cells()
	//
	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(cells))
	}
	//
	if cells[0].Linear[p0] != 0 {
		t.Errorf("expected constant 0 coefficient at alpha=0 cell")
	}
	//
	if cells[1].Linear[p0] != 1 {
		t.Errorf("expected coefficient 1 on p0 at alpha=1 cell, got %v", cells[1].Linear[p0])
	}
}
