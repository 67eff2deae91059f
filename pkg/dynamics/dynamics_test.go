package dynamics

import (
	"testing"

	"github.com/sapogo/sapogo/pkg/poly"
	"github.com/sapogo/sapogo/pkg/util/assert"
)

const (
	s poly.Variable = iota
	infc
	r
	beta
	alphaParam
)

func sirSystem() *ContinuousSystem {
	// s' = -beta*s*i, i' = beta*s*i - alpha*i, r' = alpha*i
	si := poly.FromTerms(poly.NewMonomial(1, s, infc))
	return &ContinuousSystem{
		StateVars: []poly.Variable{s, infc, r},
		ParamVars: []poly.Variable{beta, alphaParam},
		RHS: []poly.Polynomial{
			si.Mul(poly.Linear(1, beta)).Neg(),
			si.Mul(poly.Linear(1, beta)).Sub(poly.Linear(1, infc).Mul(poly.Linear(1, alphaParam))),
			poly.Linear(1, infc).Mul(poly.Linear(1, alphaParam)),
		},
	}
}

func Test_Euler_Identity_At_Step(t *testing.T) {
	sys := sirSystem()
	disc, err := Euler{}.Discretize(sys, 0.1)
	//
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	//
	env := poly.Env{s: 0.99, infc: 0.01, r: 0, beta: 0.3, alphaParam: 0.1}
	got := disc.Map[0].Eval(env)
	want := 0.99 + 0.1*(-0.3*0.99*0.01)
	//
	assert.FloatEqual(t, want, got, 1e-12)
}

func Test_RK4_PreservesDegree(t *testing.T) {
	// Fixed rates (beta = 0.3, alpha = 0.1): RK4's nested stages substitute
	// the right-hand side into itself, so the parametric sirSystem would
	// yield beta^2 terms and be rejected as non-affine in its parameters.
	si := poly.FromTerms(poly.NewMonomial(1, s, infc))
	sys := &ContinuousSystem{
		StateVars: []poly.Variable{s, infc, r},
		RHS: []poly.Polynomial{
			si.Scale(-0.3),
			si.Scale(0.3).Sub(poly.Linear(0.1, infc)),
			poly.Linear(0.1, infc),
		},
	}
	disc, err := RK4{}.Discretize(sys, 0.1)
	//
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	//
	// the i-dynamics involve s*i (degree 2 in state); RK4 combination
	// should not collapse this to a lower-degree approximation.
	if disc.Map[1].Degree() < 2 {
		t.Errorf("expected RK4 map to preserve degree >= 2, got %d", disc.Map[1].Degree())
	}
}

func Test_NonAffineParameter_Rejected(t *testing.T) {
	// beta^2 * s: beta appears with degree 2.
	bad := poly.FromTerms(poly.NewMonomial(1, beta, beta, s))
	_, err := NewDiscreteSystem([]poly.Variable{s}, []poly.Variable{beta}, []poly.Polynomial{bad})
	//
	if err == nil {
		t.Errorf("expected non-affine parameter error")
	}
}
