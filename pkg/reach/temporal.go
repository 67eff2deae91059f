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
	"github.com/sapogo/sapogo/pkg/bundle"
	"github.com/sapogo/sapogo/pkg/dynamics"
	"github.com/sapogo/sapogo/pkg/polytope"
	"github.com/sapogo/sapogo/pkg/stl"
)

// advanceAndRecurse implements the "advance the bundle one step — for each
// member Q of P_param, compute B'=image(B,Q) — and recurse ... at t+1"
// refrain shared by Always, Eventually and Until: one branch per member of
// paramUnion, each advanced under its own member only, then synthesis
// continued independently on that singleton union before the results are
// unioned back together.
func advanceAndRecurse(b *bundle.Bundle, sys *dynamics.DiscreteSystem, paramUnion *polytope.Union, phi stl.Formula, t int, opts Options) (*polytope.Union, error) {
	out := polytope.NewUnion()
	//
	for _, q := range paramUnion.Members() {
		qu := singleton(q)
		//
		next, err := b.Image(sys, opts.Mode, opts.AlphaVars, opts.ParamOrder, qu, opts.Cache)
		if err != nil {
			return nil, err
		}
		//
		refined, err := Synthesize(next, sys, qu, phi, t, opts)
		if err != nil {
			return nil, err
		}
		//
		out.Update(refined)
	}
	//
	return out, nil
}

func synthesizeAlways(b *bundle.Bundle, sys *dynamics.DiscreteSystem, paramUnion *polytope.Union, f stl.Always, t int, opts Options) (*polytope.Union, error) {
	switch {
	case t < f.A:
		return advanceAndRecurse(b, sys, paramUnion, f, t+1, opts)
	case t <= f.B:
		now, err := Synthesize(b, sys, paramUnion, f.Sub, t, opts)
		if err != nil {
			return nil, err
		}
		//
		tail, err := advanceAndRecurse(b, sys, paramUnion, f, t+1, opts)
		if err != nil {
			return nil, err
		}
		//
		return now.Intersect(tail), nil
	default:
		return paramUnion, nil
	}
}

func synthesizeEventually(b *bundle.Bundle, sys *dynamics.DiscreteSystem, paramUnion *polytope.Union, f stl.Eventually, t int, opts Options) (*polytope.Union, error) {
	switch {
	case t < f.A:
		return advanceAndRecurse(b, sys, paramUnion, f, t+1, opts)
	case t <= f.B:
		now, err := Synthesize(b, sys, paramUnion, f.Sub, t, opts)
		if err != nil {
			return nil, err
		}
		//
		tail, err := advanceAndRecurse(b, sys, paramUnion, f, t+1, opts)
		if err != nil {
			return nil, err
		}
		//
		out := now.Clone()
		out.Update(tail)
		//
		return out, nil
	default:
		return polytope.NewUnion(), nil
	}
}

func synthesizeUntil(b *bundle.Bundle, sys *dynamics.DiscreteSystem, paramUnion *polytope.Union, f stl.Until, t int, opts Options) (*polytope.Union, error) {
	switch {
	case t < f.A:
		left, err := Synthesize(b, sys, paramUnion, f.Left, t, opts)
		if err != nil {
			return nil, err
		}
		//
		tail, err := advanceAndRecurse(b, sys, paramUnion, f, t+1, opts)
		if err != nil {
			return nil, err
		}
		//
		return left.Intersect(tail), nil
	case t <= f.B:
		terminal, err := Synthesize(b, sys, paramUnion, f.Right, t, opts)
		if err != nil {
			return nil, err
		}
		//
		left, err := Synthesize(b, sys, paramUnion, f.Left, t, opts)
		if err != nil {
			return nil, err
		}
		//
		tail, err := advanceAndRecurse(b, sys, paramUnion, f, t+1, opts)
		if err != nil {
			return nil, err
		}
		//
		out := terminal.Clone()
		out.Update(left.Intersect(tail))
		//
		return out, nil
	default:
		return polytope.NewUnion(), nil
	}
}
