package poly

import "testing"

const (
	x Variable = iota
	y
	z
)

func name(v Variable) string {
	switch v {
	case x:
		return "x"
	case y:
		return "y"
	case z:
		return "z"
	default:
		return "?"
	}
}

func Test_Poly_Eval_Constant(t *testing.T) {
	p := Constant(42)
	//
	if got := p.Eval(Env{}); got != 42 {
		t.Errorf("expected 42, got %v", got)
	}
}

func Test_Poly_Eval_Linear(t *testing.T) {
	// 2x + 3y
	p := Linear(2, x).Add(Linear(3, y))
	env := Env{x: 5, y: 7}
	//
	if got := p.Eval(env); got != 2*5+3*7 {
		t.Errorf("expected %v, got %v", 2*5+3*7, got)
	}
}

func Test_Poly_Mul_Degree(t *testing.T) {
	// (x + y) * (x - y) = x^2 - y^2
	lhs := Linear(1, x).Add(Linear(1, y))
	rhs := Linear(1, x).Sub(Linear(1, y))
	prod := lhs.Mul(rhs)
	//
	if prod.Degree() != 2 {
		t.Errorf("expected degree 2, got %d", prod.Degree())
	}
	//
	env := Env{x: 3, y: 2}
	//
	if got, want := prod.Eval(env), float64(3*3-2*2); got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func Test_Poly_AddTerm_Cancels(t *testing.T) {
	p := Linear(1, x).Add(Linear(-1, x))
	//
	if !p.IsZero() {
		t.Errorf("expected zero polynomial, got %s", p.String(name))
	}
}

func Test_Poly_Substitute(t *testing.T) {
	// s*i, with s := 1 - i
	p := FromTerms(NewMonomial(1, x, y))
	repl := Constant(1).Sub(Linear(1, y))
	got := p.Substitute(x, repl)
	// (1-i)*i evaluated at i=0.4 should be 0.6*0.4=0.24
	env := Env{y: 0.4}
	//
	if v := got.Eval(env); v < 0.24-1e-12 || v > 0.24+1e-12 {
		t.Errorf("expected 0.24, got %v", v)
	}
}

func Test_Poly_DegreeOf(t *testing.T) {
	p := FromTerms(NewMonomial(1, x, x, y), NewMonomial(2, y))
	//
	if d := p.DegreeOf(x); d != 2 {
		t.Errorf("expected degree 2 in x, got %d", d)
	}
	//
	if d := p.DegreeOf(y); d != 1 {
		t.Errorf("expected degree 1 in y, got %d", d)
	}
}

func Test_Poly_Vars_Sorted(t *testing.T) {
	p := FromTerms(NewMonomial(1, z, x), NewMonomial(1, y))
	vars := p.Vars()
	//
	if len(vars) != 3 || vars[0] != x || vars[1] != y || vars[2] != z {
		t.Errorf("unexpected variable ordering: %v", vars)
	}
}
