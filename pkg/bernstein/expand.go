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
package bernstein

import (
	"fmt"

	"github.com/sapogo/sapogo/pkg/poly"
)

// NonAffineParameterError indicates that a polynomial submitted for
// Bernstein expansion had a term whose non-alpha variables (the
// parameters) did not combine affinely, violating the invariant that every
// control-point coefficient must be an affine form in the model's
// parameters.
type NonAffineParameterError struct {
	Term string
}

func (e *NonAffineParameterError) Error() string {
	return fmt.Sprintf("bernstein: term %q is not affine in its parameters", e.Term)
}

// Expand converts p into its Bernstein-basis coefficient tensor over
// [0,1]^n, treating alphaVars as the n "space" variables of the expansion
// and every other variable mentioned in p as a parameter contributing to
// each coefficient's affine form.
func Expand(p poly.Polynomial, alphaVars []poly.Variable) (*Tensor, error) {
	degrees := make([]uint, len(alphaVars))
	//
	for i, v := range alphaVars {
		degrees[i] = p.DegreeOf(v)
	}
	//
	dims := make([]uint, len(alphaVars))
	//
	for i, d := range degrees {
		dims[i] = d + 1
	}
	//
	monomialTensor := NewTensor(dims)
	//
	for i := uint(0); i < p.Len(); i++ {
		term := p.Term(i)
		index := make([]int, len(alphaVars))
		leftover := make([]poly.Variable, 0, len(term.Vars()))
		//
		for _, v := range term.Vars() {
			if axis, ok := indexOf(alphaVars, v); ok {
				index[axis]++
			} else {
				leftover = append(leftover, v)
			}
		}
		//
		coeff, err := affineCoefficient(term.Coefficient(), leftover)
		if err != nil {
			return nil, err
		}
		//
		monomialTensor.AddAt(index, coeff)
	}
	//
	return toBernsteinBasis(monomialTensor, degrees), nil
}

func indexOf(vars []poly.Variable, v poly.Variable) (int, bool) {
	for i, u := range vars {
		if u == v {
			return i, true
		}
	}
	//
	return 0, false
}

// affineCoefficient builds the affine-form coefficient contributed by a
// term's leftover (non-alpha) variables, erroring if they fail to combine
// affinely (more than one distinct parameter, or any parameter squared).
func affineCoefficient(scalar float64, leftover []poly.Variable) (Coefficient, error) {
	switch len(leftover) {
	case 0:
		return ConstCoefficient(scalar), nil
	case 1:
		return Coefficient{Linear: map[poly.Variable]float64{leftover[0]: scalar}}, nil
	default:
		distinct := map[poly.Variable]bool{}
		//
		for _, v := range leftover {
			distinct[v] = true
		}
		//
		if len(distinct) == 1 {
			return Coefficient{}, &NonAffineParameterError{Term: fmt.Sprintf("parameter raised to power %d", len(leftover))}
		}
		//
		return Coefficient{}, &NonAffineParameterError{Term: "product of distinct parameters"}
	}
}

// toBernsteinBasis applies the standard monomial-to-Bernstein basis change,
// independently along each axis in turn (the conversion is separable:
// converting axis k leaves every other axis's basis untouched).
func toBernsteinBasis(t *Tensor, degrees []uint) *Tensor {
	for axis, d := range degrees {
		t = convertAxis(t, axis, d)
	}
	//
	return t
}

// convertAxis rewrites t's axis-th dimension from the monomial basis to the
// Bernstein basis of degree d, using b_j = sum_{i=0}^{j} [C(j,i)/C(d,i)] a_i.
func convertAxis(t *Tensor, axis int, d uint) *Tensor {
	out := NewTensor(t.dims)
	coeffMatrix := basisChangeMatrix(d)
	//
	forEachIndex(t.dims, func(index []int) {
		j := index[axis]
		var acc Coefficient
		//
		for i := 0; i <= j; i++ {
			src := append([]int{}, index...)
			src[axis] = i
			acc = acc.Add(t.At(src).Scale(coeffMatrix[j][i]))
		}
		//
		out.Set(index, acc)
	})
	//
	return out
}

// basisChangeMatrix returns, for a given degree d, the lower-triangular
// matrix M with M[j][i] = C(j,i)/C(d,i) for i<=j, used by convertAxis.
func basisChangeMatrix(d uint) [][]float64 {
	n := int(d) + 1
	m := make([][]float64, n)
	//
	for j := 0; j < n; j++ {
		m[j] = make([]float64, j+1)
		//
		for i := 0; i <= j; i++ {
			m[j][i] = binomial(j, i) / binomial(int(d), i)
		}
	}
	//
	return m
}

func binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	//
	result := 1.0
	//
	for i := 0; i < k; i++ {
		result *= float64(n-i) / float64(i+1)
	}
	//
	return result
}

// forEachIndex calls fn once for every multi-index in the cross product of
// [0,dims[0]) x ... x [0,dims[n-1]).
func forEachIndex(dims []uint, fn func(index []int)) {
	index := make([]int, len(dims))
	//
	for {
		fn(append([]int{}, index...))
		//
		axis := len(dims) - 1
		//
		for axis >= 0 {
			index[axis]++
			//
			if index[axis] < int(dims[axis]) {
				break
			}
			//
			index[axis] = 0
			axis--
		}
		//
		if axis < 0 {
			return
		}
	}
}
