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

// Package bundle implements the bundle representation B = (L, u, l, T,
// tau): an intersection of parallelotopes denoted by a shared direction
// matrix, per-direction offsets, and a set of templates selecting which
// n-tuples of directions form each parallelotope. It exposes the image
// operator that advances a bundle one discrete step under a polynomial
// map, canonicalization, intersection with new half-spaces, and template
// decomposition.
package bundle

import (
	"math"

	"github.com/sapogo/sapogo/pkg/linalg"
	"github.com/sapogo/sapogo/pkg/parallelotope"
	"github.com/sapogo/sapogo/pkg/polytope"
	"gonum.org/v1/gonum/mat"
)

// Template is an n-tuple of indices into a Bundle's direction matrix,
// selecting the directions of one parallelotope. Rows must be linearly
// independent.
type Template []int

// Bundle is (L, u, l, T): a direction matrix, upper/lower offsets, and a
// set of templates. A missing upper bound is +Inf; a missing lower bound
// is -Inf.
type Bundle struct {
	Directions *mat.Dense
	Upper      []float64
	Lower      []float64
	Templates  []Template
}

// New constructs a bundle from a direction matrix and offsets, trimming no
// templates; callers should ensure every direction index is covered by at
// least one template.
func New(directions *mat.Dense, upper, lower []float64, templates []Template) *Bundle {
	return &Bundle{
		Directions: directions,
		Upper:      append([]float64{}, upper...),
		Lower:      append([]float64{}, lower...),
		Templates:  templates,
	}
}

// NumDirections returns D, the number of rows of the direction matrix.
func (b *Bundle) NumDirections() int {
	d, _ := b.Directions.Dims()
	return d
}

// Dim returns n, the dimensionality of the ambient state space.
func (b *Bundle) Dim() int {
	_, n := b.Directions.Dims()
	return n
}

// Direction returns the ith direction row.
func (b *Bundle) Direction(i int) []float64 {
	_, n := b.Directions.Dims()
	row := make([]float64, n)
	mat.Row(row, i, b.Directions)
	//
	return row
}

// Clone performs a deep copy of this bundle.
func (b *Bundle) Clone() *Bundle {
	var d mat.Dense
	//
	d.CloneFrom(b.Directions)
	//
	templates := make([]Template, len(b.Templates))
	//
	for i, t := range b.Templates {
		templates[i] = append(Template{}, t...)
	}
	//
	return &Bundle{
		Directions: &d,
		Upper:      append([]float64{}, b.Upper...),
		Lower:      append([]float64{}, b.Lower...),
		Templates:  templates,
	}
}

// GetPolytope returns the half-space form (L,u) ∧ (-L,-l) denoting this
// bundle: the intersection over every direction's lower and upper
// half-space. A direction with an infinite bound on one side contributes
// no row on that side.
func (b *Bundle) GetPolytope() *polytope.Polytope {
	n := b.Dim()
	exprs := make([]polytope.Expression, 0, 2*b.NumDirections())
	//
	for i := 0; i < b.NumDirections(); i++ {
		row := b.Direction(i)
		//
		if !math.IsInf(b.Upper[i], 1) {
			exprs = append(exprs, polytope.Expression{Coeffs: row, Offset: b.Upper[i]})
		}
		//
		if !math.IsInf(b.Lower[i], -1) {
			neg := make([]float64, n)
			//
			for k, v := range row {
				neg[k] = -v
			}
			//
			exprs = append(exprs, polytope.Expression{Coeffs: neg, Offset: -b.Lower[i]})
		}
	}
	//
	return polytope.FromExpressions(n, exprs)
}

// ParallelotopeOf builds the parallelotope for a template: the direction
// submatrix picked out by t, with matching offsets.
func (b *Bundle) ParallelotopeOf(t Template) *parallelotope.Parallelotope {
	n := b.Dim()
	data := make([]float64, 0, n*n)
	upper := make([]float64, n)
	lower := make([]float64, n)
	//
	for i, idx := range t {
		data = append(data, b.Direction(idx)...)
		upper[i] = b.Upper[idx]
		lower[i] = b.Lower[idx]
	}
	//
	return parallelotope.New(linalg.NewMatrix(n, n, data), upper, lower)
}

// TemplateLinearlyIndependent returns true iff the directions named by t
// form a valid (linearly independent) basis.
func (b *Bundle) TemplateLinearlyIndependent(t Template) bool {
	rows := make([]*linalg.Vector, len(t))
	//
	for i, idx := range t {
		rows[i] = linalg.NewVector(b.Direction(idx)...)
	}
	//
	return linalg.LinearlyIndependent(rows)
}
