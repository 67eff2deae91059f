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
	"slices"
)

// Polynomial is a sum of monomials, i.e. an unexpanded-form polynomial
// expression. An unitialised Polynomial value corresponds with zero.
type Polynomial struct {
	terms []Monomial
}

// Zero is the polynomial which is identically zero.
var Zero = Polynomial{}

// Constant constructs a polynomial which is everywhere equal to c.
func Constant(c float64) Polynomial {
	if c == 0 {
		return Polynomial{}
	}
	//
	return Polynomial{[]Monomial{NewMonomial(c)}}
}

// Linear constructs the polynomial coeff*v.
func Linear(coeff float64, v Variable) Polynomial {
	if coeff == 0 {
		return Polynomial{}
	}
	//
	return Polynomial{[]Monomial{NewMonomial(coeff, v)}}
}

// FromTerms constructs a polynomial directly from a list of monomials,
// combining like terms.
func FromTerms(terms ...Monomial) Polynomial {
	var p Polynomial
	//
	for _, t := range terms {
		p.AddTerm(t)
	}
	//
	return p
}

// Len returns the number of (non-zero) terms in this polynomial.
func (p Polynomial) Len() uint {
	return uint(len(p.terms))
}

// Term returns the ith term of this polynomial.
func (p Polynomial) Term(ith uint) Monomial {
	return p.terms[ith]
}

// Terms returns all terms of this polynomial.
func (p Polynomial) Terms() []Monomial {
	return p.terms
}

// Clone performs a deep copy of this polynomial.
func (p Polynomial) Clone() Polynomial {
	terms := make([]Monomial, len(p.terms))
	//
	for i, t := range p.terms {
		terms[i] = t.Clone()
	}
	//
	return Polynomial{terms}
}

// IsZero returns true iff this polynomial has no non-zero terms.
func (p Polynomial) IsZero() bool {
	return len(p.terms) == 0
}

// IsConstant returns true iff this polynomial mentions no variables.
func (p Polynomial) IsConstant() bool {
	return len(p.terms) == 0 || (len(p.terms) == 1 && p.terms[0].IsConstant())
}

// AddTerm adds a single monomial into this polynomial in place, merging it
// with a matching term if one exists and dropping the result if it
// cancels to zero.
func (p *Polynomial) AddTerm(term Monomial) {
	if term.IsZero() {
		return
	}
	//
	for i := range p.terms {
		if p.terms[i].Matches(term) {
			p.terms[i].coefficient += term.coefficient
			//
			if p.terms[i].IsZero() {
				p.terms = append(p.terms[:i], p.terms[i+1:]...)
			}
			//
			return
		}
	}
	//
	p.terms = append(p.terms, term.Clone())
}

// Add returns the sum of this polynomial and another.
func (p Polynomial) Add(other Polynomial) Polynomial {
	res := p.Clone()
	//
	for _, t := range other.terms {
		res.AddTerm(t)
	}
	//
	return res
}

// Sub returns the difference of this polynomial and another.
func (p Polynomial) Sub(other Polynomial) Polynomial {
	res := p.Clone()
	//
	for _, t := range other.terms {
		res.AddTerm(t.Neg())
	}
	//
	return res
}

// Neg returns the negation of this polynomial.
func (p Polynomial) Neg() Polynomial {
	terms := make([]Monomial, len(p.terms))
	//
	for i, t := range p.terms {
		terms[i] = t.Neg()
	}
	//
	return Polynomial{terms}
}

// Scale returns this polynomial multiplied by a scalar.
func (p Polynomial) Scale(c float64) Polynomial {
	if c == 0 {
		return Polynomial{}
	}
	//
	terms := make([]Monomial, len(p.terms))
	//
	for i, t := range p.terms {
		terms[i] = t.MulScalar(c)
	}
	//
	return Polynomial{terms}
}

// Mul returns the product of this polynomial and another.
func (p Polynomial) Mul(other Polynomial) Polynomial {
	var res Polynomial
	//
	for _, lhs := range p.terms {
		for _, rhs := range other.terms {
			res.AddTerm(lhs.Mul(rhs))
		}
	}
	//
	return res
}

// Pow raises this polynomial to a non-negative integer power by repeated
// multiplication.
func (p Polynomial) Pow(n uint) Polynomial {
	res := Constant(1)
	//
	for i := uint(0); i < n; i++ {
		res = res.Mul(p)
	}
	//
	return res
}

// Vars returns the set of distinct variables mentioned anywhere in this
// polynomial, in ascending order.
func (p Polynomial) Vars() []Variable {
	var seen []Variable
	//
	for _, t := range p.terms {
		for _, v := range t.vars {
			if !slices.Contains(seen, v) {
				seen = append(seen, v)
			}
		}
	}
	//
	slices.Sort(seen)
	//
	return seen
}

// Degree returns the total degree of this polynomial (the maximum degree
// across its terms).
func (p Polynomial) Degree() uint {
	var max uint
	//
	for _, t := range p.terms {
		if d := t.Degree(); d > max {
			max = d
		}
	}
	//
	return max
}

// DegreeOf returns the degree of this polynomial in a single variable v
// (the maximum power of v across its terms).
func (p Polynomial) DegreeOf(v Variable) uint {
	var max uint
	//
	for _, t := range p.terms {
		if d := t.DegreeOf(v); d > max {
			max = d
		}
	}
	//
	return max
}

// Eval evaluates this polynomial under a given variable assignment.
func (p Polynomial) Eval(env Env) float64 {
	var sum float64
	//
	for _, t := range p.terms {
		prod := t.coefficient
		//
		for _, v := range t.vars {
			prod *= env[v]
		}
		//
		sum += prod
	}
	//
	return sum
}

// Substitute replaces every occurrence of v by the polynomial repl,
// returning a new polynomial. Terms where v occurs with multiplicity k
// contribute repl^k.
func (p Polynomial) Substitute(v Variable, repl Polynomial) Polynomial {
	var res Polynomial
	//
	for _, t := range p.terms {
		power := t.DegreeOf(v)
		rest := NewMonomial(t.coefficient)
		//
		for _, u := range t.vars {
			if u != v {
				rest.vars = append(rest.vars, u)
			}
		}
		//
		slices.Sort(rest.vars)
		//
		contribution := Polynomial{[]Monomial{rest}}
		if power > 0 {
			contribution = contribution.Mul(repl.Pow(power))
		}
		//
		res = res.Add(contribution)
	}
	//
	return res
}

// SubstituteAll replaces every variable named in mapping by its
// corresponding polynomial, applying substitutions independently (as if
// simultaneously) against the original polynomial.
func (p Polynomial) SubstituteAll(mapping map[Variable]Polynomial) Polynomial {
	var res Polynomial
	//
	for _, t := range p.terms {
		res = res.Add(substituteTerm(t, mapping))
	}
	//
	return res
}

func substituteTerm(t Monomial, mapping map[Variable]Polynomial) Polynomial {
	res := Constant(t.coefficient)
	//
	for _, v := range t.vars {
		if repl, ok := mapping[v]; ok {
			res = res.Mul(repl)
		} else {
			res = res.Mul(Polynomial{[]Monomial{NewMonomial(1, v)}})
		}
	}
	//
	return res
}

// String renders this polynomial using env to name variables.
func (p Polynomial) String(env func(Variable) string) string {
	var buf bytes.Buffer
	//
	if len(p.terms) == 0 {
		return "0"
	}
	//
	for i, t := range p.terms {
		if i != 0 {
			buf.WriteString(" + ")
		}
		//
		buf.WriteString(t.String(env))
	}
	//
	return buf.String()
}
