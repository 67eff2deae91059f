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

// Package bernstein expands a polynomial into the Bernstein basis over
// [0,1]^n and exposes the minimum/maximum of its coefficient tensor, the
// bound the bundle image operator needs on the range of h(alpha) =
// l.f(g(alpha), p) over a parallelotope's generator function.
//
// Every coefficient here is an affine form in the model's parameter
// variables rather than a bare float64: because dynamics that are
// non-affine in parameters are rejected at model-build time (pkg/dynamics),
// and generator functions are themselves affine in alpha, composing
// l.f(g(alpha),p) and expanding in the monomial basis always yields
// coefficients that are, at worst, affine in p. This lets Expand stay
// purely linear-algebraic rather than tracking general polynomial-in-p
// coefficients.
package bernstein

import "github.com/sapogo/sapogo/pkg/poly"

// Coefficient is an affine form `Const + sum_v Linear[v]*v` in zero or more
// parameter variables.
type Coefficient struct {
	Const  float64
	Linear map[poly.Variable]float64
}

// ConstCoefficient constructs a parameter-free coefficient.
func ConstCoefficient(c float64) Coefficient {
	return Coefficient{Const: c}
}

// IsConstant returns true iff this coefficient mentions no parameters.
func (c Coefficient) IsConstant() bool {
	for _, v := range c.Linear {
		if v != 0 {
			return false
		}
	}
	//
	return true
}

// Add returns the sum of two coefficients.
func (c Coefficient) Add(other Coefficient) Coefficient {
	out := Coefficient{Const: c.Const + other.Const, Linear: cloneLinear(c.Linear)}
	//
	for v, coeff := range other.Linear {
		out.Linear[v] += coeff
	}
	//
	return out
}

// Scale returns this coefficient multiplied by a scalar.
func (c Coefficient) Scale(s float64) Coefficient {
	if s == 0 {
		return Coefficient{}
	}
	//
	out := Coefficient{Const: c.Const * s, Linear: make(map[poly.Variable]float64, len(c.Linear))}
	//
	for v, coeff := range c.Linear {
		out.Linear[v] = coeff * s
	}
	//
	return out
}

// Neg returns the negation of this coefficient.
func (c Coefficient) Neg() Coefficient {
	return c.Scale(-1)
}

// Eval evaluates this coefficient for a concrete parameter assignment.
func (c Coefficient) Eval(env poly.Env) float64 {
	sum := c.Const
	//
	for v, coeff := range c.Linear {
		sum += coeff * env[v]
	}
	//
	return sum
}

// Vector renders the linear part of this coefficient as a dense vector
// ordered by paramOrder, for use as an LP objective.
func (c Coefficient) Vector(paramOrder []poly.Variable) []float64 {
	v := make([]float64, len(paramOrder))
	//
	for i, p := range paramOrder {
		v[i] = c.Linear[p]
	}
	//
	return v
}

func cloneLinear(m map[poly.Variable]float64) map[poly.Variable]float64 {
	out := make(map[poly.Variable]float64, len(m))
	//
	for k, v := range m {
		out[k] = v
	}
	//
	return out
}
