package polytope

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

// unitCube is [0,1]^2 as a half-space system.
func unitCube() *Polytope {
	A := mat.NewDense(4, 2, []float64{
		1, 0,
		-1, 0,
		0, 1,
		0, -1,
	})
	//
	return New(A, []float64{1, 0, 1, 0})
}

func Test_Maximize(t *testing.T) {
	p := unitCube()
	res := p.Maximize([]float64{1, 1})
	//
	if res.Status != Optimal || res.Value < 2-1e-9 || res.Value > 2+1e-9 {
		t.Errorf("expected 2, got %v (%v)", res.Value, res.Status)
	}
}

func Test_IsEmpty_NonEmpty(t *testing.T) {
	if unitCube().IsEmpty() {
		t.Errorf("expected non-empty")
	}
}

func Test_IsEmpty_Empty(t *testing.T) {
	A := mat.NewDense(2, 1, []float64{1, -1})
	p := New(A, []float64{-1, -1})
	//
	if !p.IsEmpty() {
		t.Errorf("expected empty")
	}
}

func Test_Contains(t *testing.T) {
	outer := unitCube()
	A := mat.NewDense(4, 2, []float64{
		1, 0,
		-1, 0,
		0, 1,
		0, -1,
	})
	inner := New(A, []float64{0.5, 0, 0.5, 0})
	//
	if !outer.Contains(inner) {
		t.Errorf("expected outer to contain inner")
	}
	//
	if inner.Contains(outer) {
		t.Errorf("expected inner not to contain outer")
	}
}

func Test_Simplify_DropsRedundant(t *testing.T) {
	// x<=1, x<=2 (redundant), x>=0
	A := mat.NewDense(3, 1, []float64{1, 1, -1})
	p := New(A, []float64{1, 2, 0})
	p.Simplify()
	//
	m, _ := p.Dims()
	if m != 2 {
		t.Errorf("expected 2 surviving constraints, got %d", m)
	}
}

func Test_Union_InclusionMinimal(t *testing.T) {
	u := NewUnion()
	u.Add(unitCube())
	//
	A := mat.NewDense(4, 2, []float64{
		1, 0,
		-1, 0,
		0, 1,
		0, -1,
	})
	// half the cube: subset of the first member, should be discarded
	half := New(A, []float64{0.5, 0, 1, 0})
	u.Add(half)
	//
	if u.Len() != 1 {
		t.Errorf("expected 1 member, got %d", u.Len())
	}
}

func Test_Union_ReplacesContainedMembers(t *testing.T) {
	u := NewUnion()
	A := mat.NewDense(4, 2, []float64{
		1, 0,
		-1, 0,
		0, 1,
		0, -1,
	})
	half := New(A, []float64{0.5, 0, 1, 0})
	u.Add(half)
	u.Add(unitCube())
	//
	if u.Len() != 1 {
		t.Errorf("expected the larger cube to subsume the half, got %d members", u.Len())
	}
}
