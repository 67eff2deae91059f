package reach

import (
	"math"
	"testing"

	"github.com/sapogo/sapogo/pkg/bundle"
	"github.com/sapogo/sapogo/pkg/cache"
	"github.com/sapogo/sapogo/pkg/dynamics"
	"github.com/sapogo/sapogo/pkg/poly"
	"github.com/sapogo/sapogo/pkg/polytope"
	"gonum.org/v1/gonum/mat"
)

const tol = 1e-9

func identityDirections() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
}

// sirParametricSystem builds s' = s - beta*s*i, i' = i + beta*s*i - alpha*i,
// r' = r + alpha*i, with alpha and beta as free parameter variables.
func sirParametricSystem(t *testing.T) (*dynamics.DiscreteSystem, poly.Variable, poly.Variable) {
	s, i, r := poly.Variable(0), poly.Variable(1), poly.Variable(2)
	alpha, beta := poly.Variable(10), poly.Variable(11)
	si := poly.Linear(1, s).Mul(poly.Linear(1, i))
	betaSi := si.Mul(poly.Linear(1, beta))
	alphaI := poly.Linear(1, i).Mul(poly.Linear(1, alpha))
	//
	sprime := poly.Linear(1, s).Sub(betaSi)
	iprime := poly.Linear(1, i).Add(betaSi).Sub(alphaI)
	rprime := poly.Linear(1, r).Add(alphaI)
	//
	sys, err := dynamics.NewDiscreteSystem([]poly.Variable{s, i, r}, []poly.Variable{alpha, beta}, []poly.Polynomial{sprime, iprime, rprime})
	if err != nil {
		t.Fatalf("NewDiscreteSystem: %v", err)
	}
	//
	return sys, alpha, beta
}

// boundsOf reads the Maximize/Minimize bound of a polytope union's sole
// member along each coordinate axis.
func boundsOf(t *testing.T, u *polytope.Union, dims int) (upper, lower []float64) {
	if u.Len() != 1 {
		t.Fatalf("expected a single-member union, got %d members", u.Len())
	}
	//
	p := u.Members()[0]
	upper = make([]float64, dims)
	lower = make([]float64, dims)
	//
	for k := 0; k < dims; k++ {
		e := make([]float64, dims)
		e[k] = 1
		//
		maxRes := p.Maximize(e)
		minRes := p.Minimize(e)
		//
		if maxRes.Status != polytope.Optimal || minRes.Status != polytope.Optimal {
			t.Fatalf("axis %d: expected optimal bounds, got max=%v min=%v", k, maxRes.Status, minRes.Status)
		}
		//
		upper[k] = maxRes.Value
		lower[k] = minRes.Value
	}
	//
	return upper, lower
}

func closeSlice(t *testing.T, name string, got, want []float64) {
	if len(got) != len(want) {
		t.Fatalf("%s: length mismatch, got %d want %d", name, len(got), len(want))
	}
	//
	for i := range want {
		if math.Abs(got[i]-want[i]) > tol {
			t.Errorf("%s[%d]: got %v, want %v", name, i, got[i], want[i])
		}
	}
}

// Test_ReachParametric_SIR covers the spec's parametric SIR scenario: the
// unit cube under alpha in [0.5,0.6], beta in [0.1,0.2] reaches
// [0,1]x[0,0.7]x[0,1.6] after one step and [0,1]x[0,0.49]x[0,2.02] after two.
func Test_ReachParametric_SIR(t *testing.T) {
	sys, alpha, beta := sirParametricSystem(t)
	//
	paramBox := polytope.FromExpressions(2, []polytope.Expression{
		{Coeffs: []float64{1, 0}, Offset: 0.6},
		{Coeffs: []float64{-1, 0}, Offset: -0.5},
		{Coeffs: []float64{0, 1}, Offset: 0.2},
		{Coeffs: []float64{0, -1}, Offset: -0.1},
	})
	params := polytope.NewUnion()
	params.Add(paramBox)
	//
	b0 := bundle.New(identityDirections(), []float64{1, 1, 1}, []float64{0, 0, 0}, []bundle.Template{{0, 1, 2}})
	//
	opts := Options{
		Mode:       bundle.OFO,
		StateVars:  []poly.Variable{0, 1, 2},
		AlphaVars:  []poly.Variable{20, 21, 22},
		ParamOrder: []poly.Variable{alpha, beta},
		Cache:      cache.New(),
	}
	//
	fp, err := ReachParametric(b0, sys, params, 2, opts)
	if err != nil {
		t.Fatalf("ReachParametric: %v", err)
	}
	//
	if len(fp) != 3 {
		t.Fatalf("expected 3 flowpipe entries, got %d", len(fp))
	}
	//
	upper1, lower1 := boundsOf(t, fp[1], 3)
	closeSlice(t, "upper after step 1", upper1, []float64{1, 0.7, 1.6})
	closeSlice(t, "lower after step 1", lower1, []float64{0, 0, 0})
	//
	upper2, lower2 := boundsOf(t, fp[2], 3)
	closeSlice(t, "upper after step 2", upper2, []float64{1, 0.49, 2.02})
	closeSlice(t, "lower after step 2", lower2, []float64{0, 0, 0})
}
