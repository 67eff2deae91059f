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
package reach

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/sapogo/sapogo/pkg/bernstein"
	"github.com/sapogo/sapogo/pkg/bundle"
	"github.com/sapogo/sapogo/pkg/dynamics"
	"github.com/sapogo/sapogo/pkg/poly"
	"github.com/sapogo/sapogo/pkg/polytope"
	"github.com/sapogo/sapogo/pkg/stl"
)

// Synthesize implements the synthesize(B, P_param, phi, t) recursion of
// spec §4.6: it returns the subset of paramUnion under which every
// trajectory starting in b satisfies phi at time t. phi must already be in
// positive normal form; Negation is never a valid node kind here.
func Synthesize(b *bundle.Bundle, sys *dynamics.DiscreteSystem, paramUnion *polytope.Union, phi stl.Formula, t int, opts Options) (*polytope.Union, error) {
	switch f := phi.(type) {
	case stl.Atom:
		return synthesizeAtom(b, sys, paramUnion, f, opts)
	case stl.Conjunction:
		left, err := Synthesize(b, sys, paramUnion, f.Left, t, opts)
		if err != nil {
			return nil, err
		}
		//
		right, err := Synthesize(b, sys, paramUnion, f.Right, t, opts)
		if err != nil {
			return nil, err
		}
		//
		return left.Intersect(right), nil
	case stl.Disjunction:
		left, err := Synthesize(b, sys, paramUnion, f.Left, t, opts)
		if err != nil {
			return nil, err
		}
		//
		right, err := Synthesize(b, sys, paramUnion, f.Right, t, opts)
		if err != nil {
			return nil, err
		}
		//
		out := left.Clone()
		out.Update(right)
		//
		return out, nil
	case stl.Always:
		return synthesizeAlways(b, sys, paramUnion, f, t, opts)
	case stl.Eventually:
		return synthesizeEventually(b, sys, paramUnion, f, t, opts)
	case stl.Until:
		return synthesizeUntil(b, sys, paramUnion, f, t, opts)
	case stl.Negation:
		return nil, fmt.Errorf("reach: Negation reached during synthesis; rewrite to PNF first")
	default:
		return nil, fmt.Errorf("reach: unsupported formula node %T", phi)
	}
}

// synthesizeAtom refines paramUnion against e(x') <= 0, where x' = F(x,p) is
// the dynamics map's image of the state (or, for a negated atom rewritten
// to GT, e(x') > 0 approximated by testing -e(x') <= 0): for every template
// of b, the Bernstein coefficients of e composed with F and the template's
// generator function are affine forms in p, each contributing a half-space
// {coeff(p) <= 0} intersected with paramUnion.
func synthesizeAtom(b *bundle.Bundle, sys *dynamics.DiscreteSystem, paramUnion *polytope.Union, atom stl.Atom, opts Options) (*polytope.Union, error) {
	expr := atom.Expr
	if atom.Relation == stl.GT {
		expr = expr.Neg()
	}
	//
	out := polytope.NewUnion()
	//
	for _, q := range paramUnion.Members() {
		refined, err := refineAgainstAtom(b, sys, q, expr, opts)
		if err != nil {
			return nil, err
		}
		//
		out.Add(refined)
	}
	//
	return out, nil
}

// refineAgainstAtom intersects q with one half-space per Bernstein cell of
// e composed with one step of the dynamics map, across every template of
// b, per spec §4.6's atom rule. A cell found to be a positive constant (e
// provably exceeds zero somewhere in b regardless of p) makes the whole
// atom infeasible for q, short-circuiting to the empty polytope.
func refineAgainstAtom(b *bundle.Bundle, sys *dynamics.DiscreteSystem, q *polytope.Polytope, e poly.Polynomial, opts Options) (*polytope.Polytope, error) {
	_, dims := q.Dims()
	exprs := make([]polytope.Expression, 0)
	//
	for _, t := range b.Templates {
		para := b.ParallelotopeOf(t)
		g := para.GeneratorFunction(opts.AlphaVars)
		next := sys.Substitute(stateSubstitution(sys.StateVars, g))
		composed := e.SubstituteAll(stateSubstitution(sys.StateVars, next))
		//
		tensor, err := bernstein.Expand(composed, opts.AlphaVars)
		if err != nil {
			return nil, err
		}
		//
		for _, cell := range tensor.Cells() {
			if cell.IsConstant() {
				if cell.Const > 0 {
					return polytope.Empty(dims), nil
				}
				//
				continue
			}
			//
			exprs = append(exprs, polytope.Expression{Coeffs: cell.Vector(opts.ParamOrder), Offset: -cell.Const})
		}
	}
	//
	refined := q
	//
	if len(exprs) > 0 {
		refined = refined.Intersect(polytope.FromExpressions(dims, exprs))
	}
	//
	refined.Simplify()
	//
	log.WithFields(log.Fields{"templates": len(b.Templates), "constraints": len(exprs)}).Debug("synthesize: refined parameter region against atom")
	//
	return refined, nil
}

// stateSubstitution builds the map x_i -> g_i(alpha) used to compose an
// atom's expression with a template's generator function.
func stateSubstitution(stateVars []poly.Variable, g []poly.Polynomial) map[poly.Variable]poly.Polynomial {
	repl := make(map[poly.Variable]poly.Polynomial, len(stateVars))
	//
	for i, v := range stateVars {
		repl[v] = g[i]
	}
	//
	return repl
}
