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
package model

import (
	"github.com/sapogo/sapogo/pkg/poly"
)

// linearize reads an affine polynomial (every term degree <= 1) into a
// dense coefficient row ordered by order plus the remaining constant term,
// failing with a ValidationError if e mentions a variable outside order or
// any term of degree > 1.
func linearize(e poly.Polynomial, order []poly.Variable) ([]float64, float64, error) {
	index := make(map[poly.Variable]int, len(order))
	//
	for i, v := range order {
		index[v] = i
	}
	//
	row := make([]float64, len(order))
	var constant float64
	//
	for i := uint(0); i < e.Len(); i++ {
		t := e.Term(i)
		//
		switch t.Degree() {
		case 0:
			constant += t.Coefficient()
		case 1:
			v := t.Vars()[0]
			//
			idx, ok := index[v]
			if !ok {
				return nil, 0, &ValidationError{Reason: "expression mentions a variable outside the expected set"}
			}
			//
			row[idx] += t.Coefficient()
		default:
			return nil, 0, &ValidationError{Reason: "expression is not affine"}
		}
	}
	//
	return row, constant, nil
}

// expressionToRow converts an affine "e <= 0" test into the polytope row
// `coeffs . x <= offset` form FromExpressions expects.
func expressionToRow(e poly.Polynomial, order []poly.Variable) ([]float64, float64, error) {
	coeffs, constant, err := linearize(e, order)
	if err != nil {
		return nil, 0, err
	}
	//
	return coeffs, -constant, nil
}
