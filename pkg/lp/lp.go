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

// Package lp provides the linear-programming primitive shared by pkg/polytope
// (maximize / minimize / redundancy) and pkg/bernstein (parametric
// coefficient bounding): optimizing a linear objective over a closed
// half-space polytope {x : A*x <= b}, with no sign restriction on x. It is
// backed by gonum's dense Simplex solver rather than a hand-rolled tableau
// method, following the teacher pack's reliance on gonum for numerical
// kernels.
package lp

import (
	"errors"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// Status classifies the outcome of an optimization.
type Status uint8

const (
	// Optimal indicates a finite optimum was found.
	Optimal Status = iota
	// Infeasible indicates the constraint region {x : A*x <= b} is empty.
	Infeasible
	// Unbounded indicates the objective is unbounded over the constraint
	// region.
	Unbounded
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Infeasible:
		return "infeasible"
	case Unbounded:
		return "unbounded"
	default:
		return "unknown"
	}
}

// Result is the outcome of a single optimization call.
type Result struct {
	// Value is the optimal objective value. Meaningful only when Status
	// is Optimal.
	Value float64
	// Point is the optimizing point. Meaningful only when Status is
	// Optimal.
	Point []float64
	Status
}

// Engine optimizes a linear objective over a polytope given in half-space
// form {x : A*x <= b}.
type Engine interface {
	// Maximize returns the supremum of c.x subject to A*x <= b.
	Maximize(A *mat.Dense, b []float64, c []float64) Result
	// Minimize returns the infimum of c.x subject to A*x <= b.
	Minimize(A *mat.Dense, b []float64, c []float64) Result
}

// Simplex is an Engine backed by gonum's dense revised-simplex
// implementation.
type Simplex struct {
	// Tolerance is passed through to the underlying solver as its
	// feasibility/optimality tolerance.
	Tolerance float64
}

// NewSimplex constructs a Simplex engine with a sensible default tolerance.
func NewSimplex() *Simplex {
	return &Simplex{Tolerance: 1e-10}
}

// Maximize implements Engine.
func (s *Simplex) Maximize(A *mat.Dense, b []float64, c []float64) Result {
	res := s.minimizeStandardForm(A, b, negate(c))
	//
	if res.Status == Optimal {
		res.Value = -res.Value
	}
	//
	return res
}

// Minimize implements Engine.
func (s *Simplex) Minimize(A *mat.Dense, b []float64, c []float64) Result {
	return s.minimizeStandardForm(A, b, c)
}

// minimizeStandardForm minimizes c.x subject to A*x <= b with x
// unrestricted in sign, by splitting x = xPos - xNeg and introducing slack
// variables to convert the inequality system into gonum/lp's required
// equality form Aeq*y = beq, y >= 0.
func (s *Simplex) minimizeStandardForm(A *mat.Dense, b []float64, c []float64) Result {
	m, n := A.Dims()
	width := 2*n + m
	//
	data := make([]float64, m*width)
	//
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			v := A.At(i, j)
			data[i*width+j] = v
			data[i*width+n+j] = -v
		}
		//
		data[i*width+2*n+i] = 1
	}
	//
	Aeq := mat.NewDense(m, width, data)
	beq := make([]float64, m)
	copy(beq, b)
	//
	cStd := make([]float64, width)
	//
	for j := 0; j < n; j++ {
		cStd[j] = c[j]
		cStd[n+j] = -c[j]
	}
	//
	tol := s.Tolerance
	if tol <= 0 {
		tol = 1e-10
	}
	//
	z, y, err := lp.Simplex(cStd, Aeq, beq, tol, nil)
	if err != nil {
		if errors.Is(err, lp.ErrUnbounded) {
			return Result{Status: Unbounded}
		}
		//
		return Result{Status: Infeasible}
	}
	//
	point := make([]float64, n)
	//
	for j := 0; j < n; j++ {
		point[j] = y[j] - y[n+j]
	}
	//
	return Result{Value: z, Point: point, Status: Optimal}
}

func negate(c []float64) []float64 {
	out := make([]float64, len(c))
	//
	for i, v := range c {
		out[i] = -v
	}
	//
	return out
}
