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

// Package stl implements Signal Temporal Logic formulas as a persistent
// tagged tree: atoms, Boolean combinators, and the time-bounded temporal
// operators Always/Eventually/Until. It supports time-bound envelope
// analysis and positive-normal-form rewriting, the two structural queries
// pkg/reach's synthesis recursion needs.
package stl

import (
	"fmt"

	"github.com/sapogo/sapogo/pkg/poly"
)

// Env names state variables for String rendering.
type Env func(poly.Variable) string

// Relation is the comparison an Atom tests its expression against zero
// with.
type Relation uint8

const (
	// LE is `e(x) <= 0`.
	LE Relation = iota
	// GT is `e(x) > 0`, the negation of LE used only as a PNF
	// intermediate (pkg/reach treats GT atoms by negating the
	// expression and testing LE, since the underlying refinement
	// machinery is phrased in terms of <=).
	GT
)

// Formula is a node of the STL formula tree.
type Formula interface {
	// TimeBounds returns the envelope [min a, max b] over every
	// temporal operator in this formula's descendants (including
	// itself). A formula with no temporal operators has bounds (0, 0).
	TimeBounds() (min, max int)
	// PNF returns a structurally equivalent formula with negations
	// pushed down to atoms.
	PNF() Formula
	// String renders the formula using env to name state variables.
	String(env Env) string
}

// Atom is the atomic predicate `e(x) <= 0` (or, after negation, `e(x) >
// 0`).
type Atom struct {
	Expr     poly.Polynomial
	Relation Relation
}

// NewAtom constructs the atom e(x) <= 0.
func NewAtom(e poly.Polynomial) Atom {
	return Atom{Expr: e, Relation: LE}
}

func (a Atom) TimeBounds() (int, int) { return 0, 0 }

func (a Atom) PNF() Formula { return a }

func (a Atom) Negate() Atom {
	rel := GT
	if a.Relation == GT {
		rel = LE
	}
	//
	return Atom{Expr: a.Expr, Relation: rel}
}

func (a Atom) String(env Env) string {
	op := "<="
	if a.Relation == GT {
		op = ">"
	}
	//
	return fmt.Sprintf("%s %s 0", a.Expr.String(env), op)
}

// Conjunction is `phi1 && phi2`.
type Conjunction struct {
	Left, Right Formula
}

func (c Conjunction) TimeBounds() (int, int) { return envelope(c.Left, c.Right) }

func (c Conjunction) PNF() Formula {
	return Conjunction{Left: c.Left.PNF(), Right: c.Right.PNF()}
}

func (c Conjunction) String(env Env) string {
	return fmt.Sprintf("(%s) && (%s)", c.Left.String(env), c.Right.String(env))
}

// Disjunction is `phi1 || phi2`.
type Disjunction struct {
	Left, Right Formula
}

func (d Disjunction) TimeBounds() (int, int) { return envelope(d.Left, d.Right) }

func (d Disjunction) PNF() Formula {
	return Disjunction{Left: d.Left.PNF(), Right: d.Right.PNF()}
}

func (d Disjunction) String(env Env) string {
	return fmt.Sprintf("(%s) || (%s)", d.Left.String(env), d.Right.String(env))
}

// Negation is `!phi`.
type Negation struct {
	Sub Formula
}

func (n Negation) TimeBounds() (int, int) { return n.Sub.TimeBounds() }

// PNF pushes the negation through its subformula's top connective,
// recursing on the result; Until has no clean dual in this logic's node
// set (no Release operator is specified), so a negated Until is left as a
// Negation wrapping the PNF of its operands' subformulas, fully pushed
// down to atoms but not eliminated at the Until node itself.
func (n Negation) PNF() Formula {
	switch f := n.Sub.(type) {
	case Atom:
		return f.Negate()
	case Negation:
		return f.Sub.PNF()
	case Conjunction:
		return Disjunction{Left: Negation{f.Left}.PNF(), Right: Negation{f.Right}.PNF()}
	case Disjunction:
		return Conjunction{Left: Negation{f.Left}.PNF(), Right: Negation{f.Right}.PNF()}
	case Always:
		return Eventually{A: f.A, B: f.B, Sub: Negation{f.Sub}.PNF()}
	case Eventually:
		return Always{A: f.A, B: f.B, Sub: Negation{f.Sub}.PNF()}
	case Until:
		return Negation{Until{A: f.A, B: f.B, Left: f.Left.PNF(), Right: f.Right.PNF()}}
	default:
		return n
	}
}

func (n Negation) String(env Env) string {
	return fmt.Sprintf("!(%s)", n.Sub.String(env))
}

// Always is `Always[a,b] phi`.
type Always struct {
	A, B int
	Sub  Formula
}

func (a Always) TimeBounds() (int, int) { return temporalEnvelope(a.A, a.B, a.Sub) }

func (a Always) PNF() Formula { return Always{A: a.A, B: a.B, Sub: a.Sub.PNF()} }

func (a Always) String(env Env) string {
	return fmt.Sprintf("G[%d,%d](%s)", a.A, a.B, a.Sub.String(env))
}

// Eventually is `Eventually[a,b] phi`.
type Eventually struct {
	A, B int
	Sub  Formula
}

func (e Eventually) TimeBounds() (int, int) { return temporalEnvelope(e.A, e.B, e.Sub) }

func (e Eventually) PNF() Formula { return Eventually{A: e.A, B: e.B, Sub: e.Sub.PNF()} }

func (e Eventually) String(env Env) string {
	return fmt.Sprintf("F[%d,%d](%s)", e.A, e.B, e.Sub.String(env))
}

// Until is `Left Until[a,b] Right`.
type Until struct {
	A, B        int
	Left, Right Formula
}

func (u Until) TimeBounds() (int, int) { return temporalEnvelope(u.A, u.B, Conjunction{u.Left, u.Right}) }

func (u Until) PNF() Formula { return Until{A: u.A, B: u.B, Left: u.Left.PNF(), Right: u.Right.PNF()} }

func (u Until) String(env Env) string {
	return fmt.Sprintf("(%s) U[%d,%d] (%s)", u.Left.String(env), u.A, u.B, u.Right.String(env))
}

func envelope(fs ...Formula) (int, int) {
	min, max := 0, 0
	first := true
	//
	for _, f := range fs {
		if !hasTemporal(f) {
			continue
		}
		//
		a, b := f.TimeBounds()
		//
		if first {
			min, max = a, b
			first = false
			continue
		}
		//
		if a < min {
			min = a
		}
		//
		if b > max {
			max = b
		}
	}
	//
	return min, max
}

// hasTemporal reports whether f contains a temporal operator.
func hasTemporal(f Formula) bool {
	switch g := f.(type) {
	case Conjunction:
		return hasTemporal(g.Left) || hasTemporal(g.Right)
	case Disjunction:
		return hasTemporal(g.Left) || hasTemporal(g.Right)
	case Negation:
		return hasTemporal(g.Sub)
	case Atom:
		return false
	}
	//
	return true
}

// temporalEnvelope combines a temporal operator's own bounds [a,b] with its
// subformula's envelope by taking the componentwise min/max, per the
// original implementation's Conjunction::time_bounds pattern (aggregate,
// not nest-and-add). A subformula without temporal operators contributes
// nothing.
func temporalEnvelope(a, b int, sub Formula) (int, int) {
	if !hasTemporal(sub) {
		return a, b
	}
	//
	subMin, subMax := sub.TimeBounds()
	min, max := a, b
	//
	if subMin < min {
		min = subMin
	}
	//
	if subMax > max {
		max = subMax
	}
	//
	return min, max
}
