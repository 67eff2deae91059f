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
	log "github.com/sirupsen/logrus"

	"github.com/sapogo/sapogo/pkg/bundle"
	"github.com/sapogo/sapogo/pkg/dynamics"
	"github.com/sapogo/sapogo/pkg/polytope"
	"github.com/sapogo/sapogo/pkg/stl"
	mathutil "github.com/sapogo/sapogo/pkg/util/math"
)

// SynthesizeWithSplits is the top-level driver of spec §4.6:
// synthesize_with_splits(phi, max_splits). It rewrites phi to positive
// normal form, optionally presplits the parameter polytope into 2^presplits
// leaves to expose parallelism before the first recursion, then for each
// leaf invokes the synthesis recursion and, on an empty result, bisects
// that leaf along its longest axis and retries up to maxSplits deep. It
// returns the non-empty refined unions across every leaf of the split
// tree.
func SynthesizeWithSplits(b0 *bundle.Bundle, sys *dynamics.DiscreteSystem, paramUnion *polytope.Union, phi stl.Formula, maxSplits, presplits int, opts Options) ([]*polytope.Union, error) {
	pnf := phi.PNF()
	leaves := presplitUnion(paramUnion, presplits)
	//
	results := make([][]*polytope.Union, len(leaves))
	errs := make([]error, len(leaves))
	//
	run := func(i int) {
		results[i], errs[i] = splitRecurse(b0, sys, leaves[i], pnf, maxSplits, opts)
	}
	//
	if opts.Pool == nil {
		for i := range leaves {
			run(i)
		}
	} else {
		batch := opts.Pool.CreateBatch()
		//
		for i := range leaves {
			i := i
			batch.Submit(func() { run(i) })
		}
		//
		batch.Join()
	}
	//
	var out []*polytope.Union
	//
	for i, err := range errs {
		if err != nil {
			return nil, err
		}
		//
		out = append(out, results[i]...)
	}
	//
	return out, nil
}

// splitRecurse is one node of the split tree: synthesize against leaf; if
// the result is non-empty, it is a leaf of the result tree; otherwise,
// unless the depth budget is exhausted, bisect leaf along its longest axis
// and recurse into both halves.
func splitRecurse(b0 *bundle.Bundle, sys *dynamics.DiscreteSystem, leaf *polytope.Polytope, phi stl.Formula, remaining int, opts Options) ([]*polytope.Union, error) {
	u := singleton(leaf)
	//
	result, err := Synthesize(b0, sys, u, phi, 0, opts)
	if err != nil {
		return nil, err
	}
	//
	if !result.IsEmpty() {
		return []*polytope.Union{result}, nil
	}
	//
	if remaining <= 0 {
		log.WithFields(log.Fields{"depth": remaining}).Debug("synthesize: split budget exhausted on empty refinement")
		return nil, nil
	}
	//
	left, right, ok := splitLongestAxis(leaf)
	if !ok {
		return nil, nil
	}
	//
	leftResults, err := splitRecurse(b0, sys, left, phi, remaining-1, opts)
	if err != nil {
		return nil, err
	}
	//
	rightResults, err := splitRecurse(b0, sys, right, phi, remaining-1, opts)
	if err != nil {
		return nil, err
	}
	//
	return append(leftResults, rightResults...), nil
}

// presplitUnion eagerly bisects every member of u along its longest axis,
// k times, before the first synthesis recursion begins.
func presplitUnion(u *polytope.Union, k int) []*polytope.Polytope {
	leaves := append([]*polytope.Polytope{}, u.Members()...)
	//
	for i := 0; i < k; i++ {
		var next []*polytope.Polytope
		//
		for _, p := range leaves {
			left, right, ok := splitLongestAxis(p)
			if !ok {
				next = append(next, p)
				continue
			}
			//
			next = append(next, left, right)
		}
		//
		leaves = next
	}
	//
	return leaves
}

// splitLongestAxis bisects p at the midpoint of its widest bounding
// interval, returning false if p has no dimensions or every axis is
// unbounded in one direction (no finite midpoint to split at).
func splitLongestAxis(p *polytope.Polytope) (left, right *polytope.Polytope, ok bool) {
	_, dims := p.Dims()
	bestAxis := -1
	bestWidth := 0.0
	bestMid := 0.0
	//
	for axis := 0; axis < dims; axis++ {
		e := unitVector(dims, axis)
		//
		max := p.Maximize(e)
		min := p.Minimize(e)
		//
		if max.Status != polytope.Optimal || min.Status != polytope.Optimal {
			continue
		}
		//
		extent := mathutil.NewInterval(min.Value, max.Value)
		//
		if width := extent.Width(); width > bestWidth {
			bestWidth = width
			bestAxis = axis
			bestMid = (extent.Min() + extent.Max()) / 2
		}
	}
	//
	if bestAxis < 0 {
		return nil, nil, false
	}
	//
	axisVec := unitVector(dims, bestAxis)
	negAxisVec := unitVector(dims, bestAxis)
	negAxisVec[bestAxis] = -1
	//
	lower := polytope.FromExpressions(dims, []polytope.Expression{{Coeffs: axisVec, Offset: bestMid}})
	upper := polytope.FromExpressions(dims, []polytope.Expression{{Coeffs: negAxisVec, Offset: -bestMid}})
	//
	return p.Intersect(lower), p.Intersect(upper), true
}

func unitVector(dims, axis int) []float64 {
	v := make([]float64, dims)
	v[axis] = 1
	//
	return v
}
