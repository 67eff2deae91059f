package lp

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

// unitSquare is {x : 0<=x0<=1, 0<=x1<=1} expressed as A*x<=b.
func unitSquare() (*mat.Dense, []float64) {
	A := mat.NewDense(4, 2, []float64{
		1, 0,
		-1, 0,
		0, 1,
		0, -1,
	})
	b := []float64{1, 0, 1, 0}
	//
	return A, b
}

func Test_Simplex_Maximize(t *testing.T) {
	A, b := unitSquare()
	eng := NewSimplex()
	res := eng.Maximize(A, b, []float64{1, 1})
	//
	if res.Status != Optimal {
		t.Fatalf("expected optimal, got %v", res.Status)
	}
	//
	if got, want := res.Value, 2.0; got < want-1e-6 || got > want+1e-6 {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func Test_Simplex_Minimize(t *testing.T) {
	A, b := unitSquare()
	eng := NewSimplex()
	res := eng.Minimize(A, b, []float64{1, 1})
	//
	if res.Status != Optimal {
		t.Fatalf("expected optimal, got %v", res.Status)
	}
	//
	if got, want := res.Value, 0.0; got < want-1e-6 || got > want+1e-6 {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func Test_Simplex_Infeasible(t *testing.T) {
	// x <= -1 and x >= 1 simultaneously.
	A := mat.NewDense(2, 1, []float64{1, -1})
	b := []float64{-1, -1}
	eng := NewSimplex()
	res := eng.Maximize(A, b, []float64{1})
	//
	if res.Status != Infeasible {
		t.Errorf("expected infeasible, got %v", res.Status)
	}
}
