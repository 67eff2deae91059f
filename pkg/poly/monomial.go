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
package poly

import (
	"bytes"
	"fmt"
	"slices"
)

// Monomial represents a single product term of a polynomial: a numeric
// coefficient times zero or more variables. A variable's power is encoded
// by repetition in vars (e.g. x^2*y is {vars: [x,x,y]}), mirroring the
// teacher's array-term representation but over float64 rather than
// arbitrary-precision integers.
type Monomial struct {
	coefficient float64
	vars        []Variable
}

// NewMonomial constructs a monomial with a given coefficient and zero or
// more variables (with repetition encoding powers).
func NewMonomial(coefficient float64, vars ...Variable) Monomial {
	vars = slices.Clone(vars)
	slices.Sort(vars)
	//
	return Monomial{coefficient, vars}
}

// Clone returns a deep copy of this monomial.
func (m Monomial) Clone() Monomial {
	return Monomial{m.coefficient, slices.Clone(m.vars)}
}

// Coefficient returns the numeric coefficient of this monomial.
func (m Monomial) Coefficient() float64 {
	return m.coefficient
}

// Vars returns the (sorted, with repetition) variables of this monomial.
func (m Monomial) Vars() []Variable {
	return m.vars
}

// Degree returns the total degree of this monomial (sum of all powers).
func (m Monomial) Degree() uint {
	return uint(len(m.vars))
}

// DegreeOf returns the power to which v is raised in this monomial.
func (m Monomial) DegreeOf(v Variable) uint {
	var count uint
	//
	for _, u := range m.vars {
		if u == v {
			count++
		}
	}
	//
	return count
}

// IsZero checks whether this monomial's coefficient is (numerically) zero.
func (m Monomial) IsZero() bool {
	return m.coefficient == 0
}

// IsConstant checks whether this monomial mentions no variables.
func (m Monomial) IsConstant() bool {
	return len(m.vars) == 0
}

// Neg returns a negated copy of this monomial.
func (m Monomial) Neg() Monomial {
	return Monomial{-m.coefficient, slices.Clone(m.vars)}
}

// MulScalar returns a copy of this monomial scaled by a constant.
func (m Monomial) MulScalar(scalar float64) Monomial {
	return Monomial{m.coefficient * scalar, slices.Clone(m.vars)}
}

// Mul returns the product of this monomial and another.
func (m Monomial) Mul(other Monomial) Monomial {
	vars := make([]Variable, 0, len(m.vars)+len(other.vars))
	vars = append(vars, m.vars...)
	vars = append(vars, other.vars...)
	slices.Sort(vars)
	//
	return Monomial{m.coefficient * other.coefficient, vars}
}

// Matches determines whether this monomial and another share exactly the
// same variables (including multiplicity), i.e. whether they are "like
// terms" that can be combined by adding coefficients.
func (m Monomial) Matches(other Monomial) bool {
	return slices.Equal(m.vars, other.vars)
}

// String renders this monomial using env to name variables.
func (m Monomial) String(env func(Variable) string) string {
	var buf bytes.Buffer
	//
	switch {
	case len(m.vars) == 0:
		buf.WriteString(fmt.Sprintf("%v", m.coefficient))
	case m.coefficient == 1:
		writeVars(&buf, m.vars, env)
	default:
		buf.WriteString(fmt.Sprintf("%v*", m.coefficient))
		writeVars(&buf, m.vars, env)
	}
	//
	return buf.String()
}

func writeVars(buf *bytes.Buffer, vars []Variable, env func(Variable) string) {
	for i, v := range vars {
		if i != 0 {
			buf.WriteString("*")
		}
		//
		buf.WriteString(env(v))
	}
}
