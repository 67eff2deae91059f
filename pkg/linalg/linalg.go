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

// Package linalg provides the dense linear-algebra primitives (vectors,
// matrices, linear dependence, solving and inversion) shared by the polytope,
// parallelotope and bundle packages. It wraps gonum.org/v1/gonum/mat rather
// than reimplementing dense matrix storage, following the teacher pack's
// own usage of gonum for discrete-time system models.
package linalg

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Vector is a dense real row vector, typically a direction `ℓ` or a state
// point `x`.
type Vector = mat.VecDense

// NewVector constructs a dense vector from its entries.
func NewVector(values ...float64) *Vector {
	return mat.NewVecDense(len(values), values)
}

// Dot returns the scalar (inner) product of two vectors of equal length.
func Dot(a, b *Vector) float64 {
	return mat.Dot(a, b)
}

// Norm returns the Euclidean norm of v.
func Norm(v *Vector) float64 {
	return mat.Norm(v, 2)
}

// Matrix is a dense real matrix, typically the direction matrix `L` of a
// bundle or the constraint matrix `A` of a polytope.
type Matrix = mat.Dense

// NewMatrix constructs a dense r-by-c matrix from row-major data.
func NewMatrix(r, c int, data []float64) *Matrix {
	return mat.NewDense(r, c, data)
}

// Row returns a copy of the ith row of m as a vector.
func Row(m *Matrix, i int) *Vector {
	_, c := m.Dims()
	row := make([]float64, c)
	mat.Row(row, i, m)
	//
	return mat.NewVecDense(c, row)
}

// IsSingular determines whether a square matrix is (numerically)
// singular, i.e. whether its rows fail to be linearly independent.
func IsSingular(m *Matrix) bool {
	r, c := m.Dims()
	if r != c {
		return true
	}
	//
	var lu mat.LU
	//
	lu.Factorize(m)
	//
	return math.Abs(lu.Det()) < 1e-12
}

// Solve solves the square linear system m*x = b, returning the unique
// solution x. Panics if m is singular; callers must check IsSingular (or
// rely on a construction-time invariant) first.
func Solve(m *Matrix, b *Vector) *Vector {
	n, _ := m.Dims()
	x := mat.NewVecDense(n, nil)
	//
	if err := x.SolveVec(m, b); err != nil {
		panic("linalg: singular system: " + err.Error())
	}
	//
	return x
}

// Inverse computes the inverse of a square, non-singular matrix.
func Inverse(m *Matrix) *Matrix {
	n, _ := m.Dims()
	inv := mat.NewDense(n, n, nil)
	//
	if err := inv.Inverse(m); err != nil {
		panic("linalg: singular matrix: " + err.Error())
	}
	//
	return inv
}

// LinearlyIndependent determines whether a set of row vectors is linearly
// independent, by checking that the matrix they form has full row rank
// (via its Gram determinant).
func LinearlyIndependent(rows []*Vector) bool {
	n := len(rows)
	if n == 0 {
		return true
	}
	//
	dim := rows[0].Len()
	data := make([]float64, n*dim)
	//
	for i, r := range rows {
		for j := 0; j < dim; j++ {
			data[i*dim+j] = r.AtVec(j)
		}
	}
	//
	m := mat.NewDense(n, dim, data)
	var gram mat.Dense
	//
	gram.Mul(m, m.T())
	//
	var lu mat.LU
	//
	lu.Factorize(&gram)
	//
	return math.Abs(lu.Det()) > 1e-12
}
