package bundle

import (
	"math"
	"testing"

	"github.com/sapogo/sapogo/pkg/cache"
	"github.com/sapogo/sapogo/pkg/dynamics"
	"github.com/sapogo/sapogo/pkg/poly"
	"gonum.org/v1/gonum/mat"
)

const tol = 1e-9

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

func identityDirections() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
}

// Test_Image_Identity3D is the spec scenario where f(x,y,z) = (x,y,z) leaves
// [0,5]^3 unchanged after one step.
func Test_Image_Identity3D(t *testing.T) {
	s, i, r := poly.Variable(0), poly.Variable(1), poly.Variable(2)
	alpha := []poly.Variable{3, 4, 5}
	//
	sys, err := dynamics.NewDiscreteSystem([]poly.Variable{s, i, r}, nil, []poly.Polynomial{
		poly.Linear(1, s),
		poly.Linear(1, i),
		poly.Linear(1, r),
	})
	if err != nil {
		t.Fatalf("NewDiscreteSystem: %v", err)
	}
	//
	b0 := New(identityDirections(), []float64{5, 5, 5}, []float64{0, 0, 0}, []Template{{0, 1, 2}})
	//
	b1, err := b0.Image(sys, OFO, alpha, nil, nil, cache.New())
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	//
	closeSlice(t, "Upper", b1.Upper, []float64{5, 5, 5})
	closeSlice(t, "Lower", b1.Lower, []float64{0, 0, 0})
}

// sirSystem builds the non-parametric SIR dynamics of the spec scenarios:
// s' = s - 0.1*s*i, i' = i + 0.1*s*i - 0.5*i, r' = r + 0.5*i.
func sirSystem(t *testing.T) (*dynamics.DiscreteSystem, poly.Variable, poly.Variable, poly.Variable) {
	s, i, r := poly.Variable(0), poly.Variable(1), poly.Variable(2)
	si := poly.Linear(1, s).Mul(poly.Linear(1, i))
	//
	sprime := poly.Linear(1, s).Sub(si.Scale(0.1))
	iprime := poly.Linear(0.5, i).Add(si.Scale(0.1))
	rprime := poly.Linear(1, r).Add(poly.Linear(0.5, i))
	//
	sys, err := dynamics.NewDiscreteSystem([]poly.Variable{s, i, r}, nil, []poly.Polynomial{sprime, iprime, rprime})
	if err != nil {
		t.Fatalf("NewDiscreteSystem: %v", err)
	}
	//
	return sys, s, i, r
}

// Test_Image_SIR_NonParametric covers the spec's two-step non-parametric SIR
// scenario: [0,1]^3 maps to [0,1]x[0,0.6]x[0,1.5] after one step and
// [0,1]x[0,0.36]x[0,1.8] after two.
func Test_Image_SIR_NonParametric(t *testing.T) {
	sys, _, _, _ := sirSystem(t)
	alpha := []poly.Variable{3, 4, 5}
	ch := cache.New()
	//
	b0 := New(identityDirections(), []float64{1, 1, 1}, []float64{0, 0, 0}, []Template{{0, 1, 2}})
	//
	b1, err := b0.Image(sys, OFO, alpha, nil, nil, ch)
	if err != nil {
		t.Fatalf("Image (step 1): %v", err)
	}
	//
	closeSlice(t, "Upper after step 1", b1.Upper, []float64{1, 0.6, 1.5})
	closeSlice(t, "Lower after step 1", b1.Lower, []float64{0, 0, 0})
	//
	b2, err := b1.Image(sys, OFO, alpha, nil, nil, ch)
	if err != nil {
		t.Fatalf("Image (step 2): %v", err)
	}
	//
	closeSlice(t, "Upper after step 2", b2.Upper, []float64{1, 0.36, 1.8})
	closeSlice(t, "Lower after step 2", b2.Lower, []float64{0, 0, 0})
}

// Test_Equal_AlternateDirections checks the spec's bundle-equality scenario:
// two bundles denoting [0,5]^3 ∩ {x+y<=3, y+z<=7}, built from different
// direction lists (one of them scaling the x-axis direction), compare equal.
func Test_Equal_AlternateDirections(t *testing.T) {
	neg := math.Inf(-1)
	//
	a := New(
		mat.NewDense(5, 3, []float64{
			1, 0, 0,
			0, 1, 0,
			0, 0, 1,
			1, 1, 0,
			0, 1, 1,
		}),
		[]float64{5, 5, 5, 3, 7},
		[]float64{0, 0, 0, neg, neg},
		[]Template{{0, 1, 2}},
	)
	//
	b := New(
		mat.NewDense(5, 3, []float64{
			2, 0, 0,
			1, 1, 0,
			0, 1, 0,
			0, 1, 1,
			0, 0, 1,
		}),
		[]float64{10, 3, 5, 7, 5},
		[]float64{0, neg, 0, neg, 0},
		[]Template{{0, 2, 4}},
	)
	//
	if !a.Equal(b) {
		t.Errorf("expected bundles with different direction lists to compare equal")
	}
	//
	if !a.GetPolytope().Contains(b.GetPolytope()) || !b.GetPolytope().Contains(a.GetPolytope()) {
		t.Errorf("expected mutual polytope containment")
	}
}
