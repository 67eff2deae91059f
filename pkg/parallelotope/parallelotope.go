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

// Package parallelotope implements the n-dimensional centrally-symmetric
// region spanned by n linearly independent directions with per-direction
// offsets, and its generator function g(alpha) = v + sum_i alpha_i * l_i *
// d_i used by the bundle image operator.
package parallelotope

import (
	"fmt"

	"github.com/sapogo/sapogo/pkg/linalg"
	"github.com/sapogo/sapogo/pkg/poly"
	"gonum.org/v1/gonum/mat"
)

// Parallelotope is spanned by n linearly independent direction rows, each
// with an upper and lower offset.
type Parallelotope struct {
	directions *mat.Dense // n x n, row i is direction i
	upper      []float64
	lower      []float64
}

// New constructs a parallelotope from a non-singular direction matrix and
// matching offset vectors. Panics if the direction matrix is singular,
// mirroring the construction-time invariant of spec §4.
func New(directions *mat.Dense, upper, lower []float64) *Parallelotope {
	if linalg.IsSingular(directions) {
		panic("parallelotope: direction matrix is singular")
	}
	//
	return &Parallelotope{directions: directions, upper: append([]float64{}, upper...), lower: append([]float64{}, lower...)}
}

// Dim returns the dimensionality n.
func (p *Parallelotope) Dim() int {
	n, _ := p.directions.Dims()
	return n
}

// Directions returns the direction matrix.
func (p *Parallelotope) Directions() *mat.Dense {
	return p.directions
}

// Upper returns the upper offset vector.
func (p *Parallelotope) Upper() []float64 {
	return p.upper
}

// Lower returns the lower offset vector.
func (p *Parallelotope) Lower() []float64 {
	return p.lower
}

// BaseVertex computes the base vertex v, the unique point satisfying all n
// lower facets with equality: D*v = lower.
func (p *Parallelotope) BaseVertex() *linalg.Vector {
	b := linalg.NewVector(p.lower...)
	return linalg.Solve(p.directions, b)
}

// EdgeLengths computes the signed edge lengths l_i = u_i - l_i read off the
// facet offsets along each direction.
func (p *Parallelotope) EdgeLengths() []float64 {
	n := p.Dim()
	lengths := make([]float64, n)
	//
	for i := 0; i < n; i++ {
		lengths[i] = p.upper[i] - p.lower[i]
	}
	//
	return lengths
}

// GeneratorFunction returns g(alpha) = v + sum_i alpha_i * l_i * d_i as a
// vector of polynomials over the given n alpha variables, one polynomial
// per state-space coordinate. d_i is the ith row of the direction matrix
// written in its dual (inverse) basis, since the direction rows are, in
// general, not orthonormal: v + sum_i alpha_i*l_i*d_i must reduce to the
// base vertex at alpha=0 and to the opposite vertex along direction i at
// alpha_i=1, which holds when d_i is the ith column of D^-1 rather than the
// ith row of D itself.
func (p *Parallelotope) GeneratorFunction(alphas []poly.Variable) []poly.Polynomial {
	n := p.Dim()
	if len(alphas) != n {
		panic("parallelotope: alpha variable count mismatch")
	}
	//
	v := p.BaseVertex()
	lengths := p.EdgeLengths()
	dual := linalg.Inverse(p.directions)
	//
	g := make([]poly.Polynomial, n)
	//
	for k := 0; k < n; k++ {
		g[k] = poly.Constant(v.AtVec(k))
		//
		for i := 0; i < n; i++ {
			coeff := lengths[i] * dual.At(k, i)
			if coeff == 0 {
				continue
			}
			//
			g[k] = g[k].Add(poly.Linear(coeff, alphas[i]))
		}
	}
	//
	return g
}

// Signature is a content fingerprint of the parallelotope's generator
// function, used by pkg/cache to invalidate a memoized Bernstein expansion
// when the underlying template has changed shape.
type Signature struct {
	dims   int
	values []float64
}

// ComputeSignature returns the current signature of this parallelotope.
func (p *Parallelotope) ComputeSignature() Signature {
	n := p.Dim()
	values := make([]float64, 0, n*n+2*n)
	//
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			values = append(values, p.directions.At(i, j))
		}
	}
	//
	values = append(values, p.upper...)
	values = append(values, p.lower...)
	//
	return Signature{dims: n, values: values}
}

// Equal compares two signatures for exact equality.
func (s Signature) Equal(other Signature) bool {
	if s.dims != other.dims || len(s.values) != len(other.values) {
		return false
	}
	//
	for i := range s.values {
		if s.values[i] != other.values[i] {
			return false
		}
	}
	//
	return true
}

func (s Signature) String() string {
	return fmt.Sprintf("Signature{dim=%d}", s.dims)
}
