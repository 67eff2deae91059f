package reach

import (
	"testing"

	"github.com/sapogo/sapogo/pkg/bundle"
	"github.com/sapogo/sapogo/pkg/cache"
	"github.com/sapogo/sapogo/pkg/poly"
	"github.com/sapogo/sapogo/pkg/polytope"
	"github.com/sapogo/sapogo/pkg/stl"
)

// pointSatisfies reports whether point lies within tol of every half-space
// defining p.
func pointSatisfies(p *polytope.Polytope, point []float64, tol float64) bool {
	_, n := p.Dims()
	a := p.A()
	b := p.B()
	//
	for i, beta := range b {
		var sum float64
		//
		for j := 0; j < n; j++ {
			sum += a.At(i, j) * point[j]
		}
		//
		if sum > beta+tol {
			return false
		}
	}
	//
	return true
}

// reachedSIRBundle is the bundle the spec's synthesis scenarios hand to
// Synthesize directly: [0,1]x[0,0.7]x[0,1.6], the result of one
// parametric SIR step (Test_ReachParametric_SIR).
func reachedSIRBundle() *bundle.Bundle {
	return bundle.New(identityDirections(), []float64{1, 0.7, 1.6}, []float64{0, 0, 0}, []bundle.Template{{0, 1, 2}})
}

func sirParamBoxUnion() *polytope.Union {
	box := polytope.FromExpressions(2, []polytope.Expression{
		{Coeffs: []float64{1, 0}, Offset: 0.6},
		{Coeffs: []float64{-1, 0}, Offset: -0.5},
		{Coeffs: []float64{0, 1}, Offset: 0.2},
		{Coeffs: []float64{0, -1}, Offset: -0.1},
	})
	u := polytope.NewUnion()
	u.Add(box)
	//
	return u
}

// Test_Synthesize_Atomic covers the spec's synthesis-atomic scenario: the
// atom i - 0.365 <= 0, evaluated one dynamics step forward from the given
// bundle, refines the parameter box to 140*beta - 140*alpha <= -67 (plus
// the surviving original bounds alpha <= 0.6, beta >= 0.1).
func Test_Synthesize_Atomic(t *testing.T) {
	sys, alpha, beta := sirParametricSystem(t)
	b := reachedSIRBundle()
	params := sirParamBoxUnion()
	//
	i := poly.Variable(1)
	atom := stl.NewAtom(poly.Linear(1, i).Sub(poly.Constant(0.365)))
	//
	opts := Options{
		Mode:       bundle.OFO,
		AlphaVars:  []poly.Variable{20, 21, 22},
		ParamOrder: []poly.Variable{alpha, beta},
		Cache:      cache.New(),
	}
	//
	result, err := Synthesize(b, sys, params, atom, 0, opts)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	//
	if result.IsEmpty() {
		t.Fatalf("expected a non-empty refinement")
	}
	//
	if result.Len() != 1 {
		t.Fatalf("expected a single surviving polytope, got %d", result.Len())
	}
	//
	p := result.Members()[0]
	//
	if !pointSatisfies(p, []float64{0.6, 0.1}, 1e-9) {
		t.Errorf("expected (alpha=0.6, beta=0.1) to satisfy the refined region")
	}
	//
	if pointSatisfies(p, []float64{0.5, 0.2}, 1e-9) {
		t.Errorf("expected (alpha=0.5, beta=0.2) to violate the refined region")
	}
}

// Test_Synthesize_Atomic_InfeasibleAxis covers the spec's infeasible-axis
// synthesis scenario: the atom r - 2 <= 0 refines the parameter box to
// 7*alpha <= 4 alongside the surviving bounds beta <= 0.2, alpha >= 0.5,
// beta >= 0.1.
func Test_Synthesize_Atomic_InfeasibleAxis(t *testing.T) {
	sys, alpha, beta := sirParametricSystem(t)
	b := reachedSIRBundle()
	params := sirParamBoxUnion()
	//
	r := poly.Variable(2)
	atom := stl.NewAtom(poly.Linear(1, r).Sub(poly.Constant(2)))
	//
	opts := Options{
		Mode:       bundle.OFO,
		AlphaVars:  []poly.Variable{20, 21, 22},
		ParamOrder: []poly.Variable{alpha, beta},
		Cache:      cache.New(),
	}
	//
	result, err := Synthesize(b, sys, params, atom, 0, opts)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	//
	if result.IsEmpty() {
		t.Fatalf("expected a non-empty refinement")
	}
	//
	p := result.Members()[0]
	//
	if !pointSatisfies(p, []float64{0.5, 0.1}, 1e-9) {
		t.Errorf("expected (alpha=0.5, beta=0.1) to satisfy the refined region")
	}
	//
	if pointSatisfies(p, []float64{0.6, 0.1}, 1e-9) {
		t.Errorf("expected (alpha=0.6, beta=0.1) to violate 7*alpha <= 4")
	}
}
