package model

import (
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/sapogo/sapogo/pkg/poly"
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

// Test_Parse_Identity3D round-trips the spec's identity scenario through the
// plain-text format: f(x,y,z) = (x,y,z) over [0,5]^3 builds to a bundle with
// those bounds and a discrete system whose state variables pass through
// unchanged.
func Test_Parse_Identity3D(t *testing.T) {
	text := `
var x = x
var y = y
var z = z
dynamics discrete
direction 1 0 0 upper 5 lower 0
direction 0 1 0 upper 5 lower 0
direction 0 0 1 upper 5 lower 0
template 0 1 2
problem reach
iterations 1
`
	m, err := Parse(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	//
	b, sys, err := m.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	//
	closeSlice(t, "Upper", b.Upper, []float64{5, 5, 5})
	closeSlice(t, "Lower", b.Lower, []float64{0, 0, 0})
	//
	if len(b.Templates) != 1 || len(b.Templates[0]) != 3 {
		t.Fatalf("expected a single 3-wide template, got %v", b.Templates)
	}
	//
	if len(sys.StateVars) != 3 {
		t.Fatalf("expected 3 state variables, got %d", len(sys.StateVars))
	}
	//
	env := poly.Env{
		sys.StateVars[0]: 2,
		sys.StateVars[1]: 3,
		sys.StateVars[2]: 4,
	}
	//
	next := sys.Map
	//
	for i, want := range []float64{2, 3, 4} {
		if got := next[i].Eval(env); math.Abs(got-want) > tol {
			t.Errorf("state %d: got %v, want %v", i, got, want)
		}
	}
}

// Test_Parse_SIR_NonParametric round-trips the spec's non-parametric SIR
// dynamics and a unit-cube initial bundle.
func Test_Parse_SIR_NonParametric(t *testing.T) {
	text := `
# SIR, non-parametric
var s = s - 0.1*s*i
var i = 0.5*i + 0.1*s*i
var r = r + 0.5*i
dynamics discrete
direction 1 0 0 upper 1 lower 0
direction 0 1 0 upper 1 lower 0
direction 0 0 1 upper 1 lower 0
template 0 1 2
problem reach
iterations 2
`
	m, err := Parse(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	//
	b, sys, err := m.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	//
	closeSlice(t, "Upper", b.Upper, []float64{1, 1, 1})
	closeSlice(t, "Lower", b.Lower, []float64{0, 0, 0})
	//
	if m.Config.Iterations != 2 {
		t.Errorf("expected iterations 2, got %d", m.Config.Iterations)
	}
	//
	if m.Config.Problem != Reach {
		t.Errorf("expected problem reach")
	}
	//
	if sys.ParamVars != nil && len(sys.ParamVars) != 0 {
		t.Errorf("expected no parameters, got %v", sys.ParamVars)
	}
}

// Test_Parse_Parametric covers a paramset directive building a two-row
// parameter polytope.
func Test_Parse_Parametric(t *testing.T) {
	text := `
var s = s - beta*s*i
var i = i + beta*s*i - alpha*i
var r = r + alpha*i
param alpha
param beta
dynamics discrete
direction 1 0 0 upper 1 lower 0
direction 0 1 0 upper 1 lower 0
direction 0 0 1 upper 1 lower 0
template 0 1 2
paramset alpha <= 0.6
paramset -alpha <= -0.5
paramset beta <= 0.2
paramset -beta <= -0.1
problem synth
`
	m, err := Parse(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	//
	_, sys, err := m.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	//
	if len(sys.ParamVars) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(sys.ParamVars))
	}
	//
	if m.ParamUnion == nil || m.ParamUnion.Len() != 1 {
		t.Fatalf("expected a single-member parameter union")
	}
	//
	p := m.ParamUnion.Members()[0]
	//
	maxAlpha := p.Maximize([]float64{1, 0})
	minAlpha := p.Maximize([]float64{-1, 0})
	//
	if math.Abs(maxAlpha.Value-0.6) > tol {
		t.Errorf("expected alpha upper bound 0.6, got %v", maxAlpha.Value)
	}
	//
	if math.Abs(-minAlpha.Value-0.5) > tol {
		t.Errorf("expected alpha lower bound 0.5, got %v", -minAlpha.Value)
	}
}

// Test_Parse_UnknownDirective covers the ParseError path for an
// unrecognised keyword.
func Test_Parse_UnknownDirective(t *testing.T) {
	_, err := Parse(strings.NewReader("bogus directive\n"))
	if err == nil {
		t.Fatalf("expected an error")
	}
	//
	if _, ok := err.(*ParseError); !ok {
		t.Errorf("expected a *ParseError, got %T: %v", err, err)
	}
}

// Test_Parse_DuplicateName covers the ValidationError path for a variable
// name declared twice.
func Test_Parse_DuplicateName(t *testing.T) {
	text := `
var x = x
param x
`
	_, err := Parse(strings.NewReader(text))
	if err == nil {
		t.Fatalf("expected an error")
	}
	//
	if _, ok := err.(*ValidationError); !ok {
		t.Errorf("expected a *ValidationError, got %T: %v", err, err)
	}
}

// Test_Build_DimensionMismatch covers Build's DimensionError path directly:
// a direction matrix with one more column than there are state variables.
func Test_Build_DimensionMismatch(t *testing.T) {
	m := &Model{
		Vars:       NewVarTable(),
		StateVars:  []poly.Variable{0},
		Discrete:   nil,
		Directions: mat.NewDense(1, 2, []float64{1, 0}),
		Upper:      []float64{1},
		Lower:      []float64{0},
		Config:     DefaultConfig(),
	}
	//
	_, _, err := m.Build()
	if err == nil {
		t.Fatalf("expected an error")
	}
	//
	if _, ok := err.(*DimensionError); !ok {
		t.Errorf("expected a *DimensionError, got %T: %v", err, err)
	}
}

// Test_Build_NonIndependentTemplate covers ValidationError for a template
// whose directions are linearly dependent.
func Test_Build_NonIndependentTemplate(t *testing.T) {
	text := `
var x = x
var y = y
dynamics discrete
direction 1 0 upper 1 lower 0
direction 2 0 upper 2 lower 0
template 0 1
`
	m, err := Parse(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	//
	_, _, err = m.Build()
	if err == nil {
		t.Fatalf("expected an error")
	}
	//
	if _, ok := err.(*ValidationError); !ok {
		t.Errorf("expected a *ValidationError, got %T: %v", err, err)
	}
}
