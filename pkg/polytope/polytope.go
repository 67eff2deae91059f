// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package polytope implements the half-space-intersection polytope {x :
// A*x <= b}: LP-based maximize/minimize, containment, redundancy
// elimination, and the inclusion-minimal Union collection built on top of
// it.
package polytope

import (
	"fmt"
	"math"

	"github.com/sapogo/sapogo/pkg/lp"
	"gonum.org/v1/gonum/mat"
)

// Status mirrors lp.Status for callers that do not want to import pkg/lp
// directly.
type Status = lp.Status

const (
	Optimal    = lp.Optimal
	Infeasible = lp.Infeasible
	Unbounded  = lp.Unbounded
)

// Result is the outcome of a maximize/minimize query.
type Result struct {
	Value float64
	Status
}

// Polytope is the half-space intersection {x : A*x <= b}. Rows are
// non-zero and no two rows are exact duplicates; a Polytope may denote the
// empty set. Values are immutable except for in-place Simplify.
type Polytope struct {
	a    *mat.Dense
	b    []float64
	engine lp.Engine
}

// New constructs a polytope directly from a constraint matrix and offset
// vector. Rows of A are assumed non-zero and pairwise distinct; callers
// that cannot guarantee this should route construction through
// FromExpressions instead.
func New(A *mat.Dense, b []float64) *Polytope {
	return &Polytope{a: A, b: append([]float64{}, b...), engine: lp.NewSimplex()}
}

// Expression is a single affine inequality `coeffs . x <= offset` used to
// build a polytope from a named-variable model.
type Expression struct {
	Coeffs []float64
	Offset float64
}

// FromExpressions constructs a polytope from a list of affine expressions,
// dropping rows whose coefficient vector is identically zero (such a row
// either constrains nothing, when offset >= 0, or denotes the whole space
// as empty, when offset < 0 — callers are expected to have rejected the
// latter upstream).
func FromExpressions(dims int, exprs []Expression) *Polytope {
	rows := make([]float64, 0, len(exprs)*dims)
	offs := make([]float64, 0, len(exprs))
	//
	for _, e := range exprs {
		if isZero(e.Coeffs) {
			continue
		}
		//
		rows = append(rows, e.Coeffs...)
		offs = append(offs, e.Offset)
	}
	//
	m := len(offs)
	A := mat.NewDense(m, dims, rows)
	//
	return New(A, offs)
}

// Empty constructs a polytope with no feasible point in the given
// dimension: the single unsatisfiable constraint 0.x <= -1.
func Empty(dims int) *Polytope {
	return New(mat.NewDense(1, dims, make([]float64, dims)), []float64{-1})
}

func isZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	//
	return true
}

// Dims returns the number of constraints and the dimensionality of the
// ambient space.
func (p *Polytope) Dims() (rows, cols int) {
	return p.a.Dims()
}

// A returns the constraint matrix.
func (p *Polytope) A() *mat.Dense {
	return p.a
}

// B returns the offset vector.
func (p *Polytope) B() []float64 {
	return p.b
}

// Row returns the ith constraint as (coefficients, offset).
func (p *Polytope) Row(i int) ([]float64, float64) {
	_, n := p.a.Dims()
	row := make([]float64, n)
	mat.Row(row, i, p.a)
	//
	return row, p.b[i]
}

// Clone performs a deep copy of this polytope.
func (p *Polytope) Clone() *Polytope {
	var a mat.Dense
	//
	a.CloneFrom(p.a)
	//
	return &Polytope{a: &a, b: append([]float64{}, p.b...), engine: p.engine}
}

// Maximize solves max c.x over this polytope.
func (p *Polytope) Maximize(c []float64) Result {
	res := p.engine.Maximize(p.a, p.b, c)
	//
	return Result{Value: res.Value, Status: res.Status}
}

// Minimize solves min c.x over this polytope.
func (p *Polytope) Minimize(c []float64) Result {
	res := p.engine.Minimize(p.a, p.b, c)
	//
	return Result{Value: res.Value, Status: res.Status}
}

// Satisfies returns true iff max c.x <= beta over this polytope. An
// infeasible polytope vacuously satisfies every bound.
func (p *Polytope) Satisfies(c []float64, beta float64) bool {
	res := p.Maximize(c)
	//
	switch res.Status {
	case Infeasible:
		return true
	case Unbounded:
		return false
	default:
		return res.Value <= beta
	}
}

// IsEmpty returns true iff no point satisfies every constraint.
func (p *Polytope) IsEmpty() bool {
	_, n := p.a.Dims()
	if n == 0 {
		return false
	}
	//
	zero := make([]float64, n)
	res := p.Maximize(zero)
	//
	return res.Status == Infeasible
}

// HasSolutions returns true when a feasible point exists; if strict is
// true, the polytope must additionally have non-empty interior (no
// direction pinned exactly to a point).
func (p *Polytope) HasSolutions(strict bool) bool {
	if p.IsEmpty() {
		return false
	}
	//
	if !strict {
		return true
	}
	//
	m, _ := p.a.Dims()
	//
	for i := 0; i < m; i++ {
		c, _ := p.Row(i)
		max := p.Maximize(c)
		min := p.Minimize(c)
		//
		if max.Status != Optimal || min.Status != Optimal {
			continue
		}
		//
		if math.Abs(max.Value-min.Value) < 1e-12 {
			return false
		}
	}
	//
	return true
}

// Contains returns true iff every row of q is satisfied by p, i.e. the
// region denoted by q is a subset of the region denoted by p.
func (p *Polytope) Contains(q *Polytope) bool {
	m, _ := p.a.Dims()
	//
	for i := 0; i < m; i++ {
		c, beta := p.Row(i)
		//
		if !q.Satisfies(c, beta) {
			return false
		}
	}
	//
	return true
}

// Intersect returns the polytope denoting the intersection of p and q's
// feasible regions: the concatenation of both constraint systems.
func (p *Polytope) Intersect(q *Polytope) *Polytope {
	_, n := p.a.Dims()
	pm, _ := p.a.Dims()
	qm, _ := q.a.Dims()
	//
	data := make([]float64, 0, (pm+qm)*n)
	offs := make([]float64, 0, pm+qm)
	//
	for i := 0; i < pm; i++ {
		row, beta := p.Row(i)
		data = append(data, row...)
		offs = append(offs, beta)
	}
	//
	for i := 0; i < qm; i++ {
		row, beta := q.Row(i)
		data = append(data, row...)
		offs = append(offs, beta)
	}
	//
	return New(mat.NewDense(pm+qm, n, data), offs)
}

// Simplify drops constraints whose removal does not change the feasible
// region, in place. Rows are visited in order, and row i is dropped when the
// rows kept before it already imply Ai.x <= bi. Among mutually redundant
// constraints, the lowest-index member is kept (an arbitrary but
// deterministic tie-break). A kept row that only later rows make redundant
// is not revisited, so the result need not be minimal.
func (p *Polytope) Simplify() {
	m, n := p.a.Dims()
	kept := make([][]float64, 0, m)
	keptB := make([]float64, 0, m)
	//
	for i := 0; i < m; i++ {
		ci, bi := p.Row(i)
		//
		if redundantAgainst(kept, keptB, n, ci, bi) {
			continue
		}
		//
		kept = append(kept, ci)
		keptB = append(keptB, bi)
	}
	//
	data := make([]float64, 0, len(kept)*n)
	//
	for _, row := range kept {
		data = append(data, row...)
	}
	//
	p.a = mat.NewDense(len(kept), n, data)
	p.b = keptB
}

// redundantAgainst tests whether constraint (c, beta) is implied by the
// already-accepted rows, i.e. whether max c.x over those rows alone is
// already <= beta. Accepted rows are, by construction, a surviving
// subsystem of the original polytope, so a row this test drops is
// redundant in the original system too; rows not yet visited play no part.
func redundantAgainst(rows [][]float64, b []float64, n int, c []float64, beta float64) bool {
	if len(rows) == 0 {
		return false
	}
	//
	data := make([]float64, 0, len(rows)*n)
	//
	for _, row := range rows {
		data = append(data, row...)
	}
	//
	A := mat.NewDense(len(rows), n, data)
	q := New(A, b)
	//
	return q.Satisfies(c, beta)
}

// String renders the polytope's constraint system.
func (p *Polytope) String() string {
	m, n := p.a.Dims()
	//
	return fmt.Sprintf("Polytope{%d constraints, %d dims}", m, n)
}
