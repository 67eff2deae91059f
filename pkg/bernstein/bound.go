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
	"math"

	"github.com/sapogo/sapogo/pkg/poly"
	"github.com/sapogo/sapogo/pkg/polytope"
)

// MaxOverUnion computes max_{p in U} max_cell coeff(p) for every cell of
// t, i.e. the tightest upper bound the parameter polytope union allows.
// Cells for which no union member is feasible are skipped; ok is false
// only when that holds for every cell.
func MaxOverUnion(t *Tensor, paramOrder []poly.Variable, params *polytope.Union) (float64, bool) {
	best := math.Inf(-1)
	found := false
	//
	for _, cell := range t.data {
		v, ok := maxOfCoefficient(cell, paramOrder, params)
		if !ok {
			continue
		}
		//
		found = true
		//
		if v > best {
			best = v
		}
	}
	//
	return best, found
}

// MinOverUnion computes min_{p in U} min_cell coeff(p).
func MinOverUnion(t *Tensor, paramOrder []poly.Variable, params *polytope.Union) (float64, bool) {
	best := math.Inf(1)
	found := false
	//
	for _, cell := range t.data {
		v, ok := minOfCoefficient(cell, paramOrder, params)
		if !ok {
			continue
		}
		//
		found = true
		//
		if v < best {
			best = v
		}
	}
	//
	return best, found
}

func maxOfCoefficient(c Coefficient, paramOrder []poly.Variable, params *polytope.Union) (float64, bool) {
	if c.IsConstant() || params == nil || params.IsEmpty() {
		return c.Const, true
	}
	//
	vec := c.Vector(paramOrder)
	best := math.Inf(-1)
	found := false
	//
	for _, m := range params.Members() {
		res := m.Maximize(vec)
		//
		switch res.Status {
		case polytope.Unbounded:
			return math.Inf(1), true
		case polytope.Optimal:
			found = true
			//
			if v := res.Value + c.Const; v > best {
				best = v
			}
		}
	}
	//
	return best, found
}

func minOfCoefficient(c Coefficient, paramOrder []poly.Variable, params *polytope.Union) (float64, bool) {
	if c.IsConstant() || params == nil || params.IsEmpty() {
		return c.Const, true
	}
	//
	vec := c.Vector(paramOrder)
	best := math.Inf(1)
	found := false
	//
	for _, m := range params.Members() {
		res := m.Minimize(vec)
		//
		switch res.Status {
		case polytope.Unbounded:
			return math.Inf(-1), true
		case polytope.Optimal:
			found = true
			//
			if v := res.Value + c.Const; v < best {
				best = v
			}
		}
	}
	//
	return best, found
}
