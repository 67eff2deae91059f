package parallelotope

import (
	"testing"

	"github.com/sapogo/sapogo/pkg/poly"
	"github.com/sapogo/sapogo/pkg/util/assert"
	"gonum.org/v1/gonum/mat"
)

const (
	a0 poly.Variable = iota
	a1
)

func unitSquare() *Parallelotope {
	D := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	return New(D, []float64{1, 1}, []float64{0, 0})
}

func Test_BaseVertex(t *testing.T) {
	p := unitSquare()
	v := p.BaseVertex()
	//
	assert.FloatEqual(t, 0, v.AtVec(0), 1e-12)
	assert.FloatEqual(t, 0, v.AtVec(1), 1e-12)
}

func Test_EdgeLengths(t *testing.T) {
	p := unitSquare()
	lengths := p.EdgeLengths()
	//
	assert.FloatEqual(t, 1, lengths[0], 1e-12)
	assert.FloatEqual(t, 1, lengths[1], 1e-12)
}

func Test_GeneratorFunction_CornersMatch(t *testing.T) {
	p := unitSquare()
	g := p.GeneratorFunction([]poly.Variable{a0, a1})
	//
	origin := poly.Env{a0: 0, a1: 0}
	opposite := poly.Env{a0: 1, a1: 1}
	//
	assert.FloatEqual(t, 0, g[0].Eval(origin), 1e-12)
	assert.FloatEqual(t, 0, g[1].Eval(origin), 1e-12)
	assert.FloatEqual(t, 1, g[0].Eval(opposite), 1e-12)
	assert.FloatEqual(t, 1, g[1].Eval(opposite), 1e-12)
}
