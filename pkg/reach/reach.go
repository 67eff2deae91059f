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

// Package reach implements flowpipe construction and STL parameter
// synthesis: the recursion that interleaves bundle image computation with
// formula semantics to refine a parameter polytope union, plus the
// top-level splitting driver that retries on an empty refinement.
package reach

import (
	log "github.com/sirupsen/logrus"

	"github.com/sapogo/sapogo/pkg/bundle"
	"github.com/sapogo/sapogo/pkg/cache"
	"github.com/sapogo/sapogo/pkg/dynamics"
	"github.com/sapogo/sapogo/pkg/poly"
	"github.com/sapogo/sapogo/pkg/polytope"
	"github.com/sapogo/sapogo/pkg/workpool"
)

// Flowpipe is the ordered sequence of reachable-set over-approximations
// F0, F1, ..., Fk spec §3 names; each element is a polytope union (a
// singleton in the non-parametric case).
type Flowpipe []*polytope.Union

// Options collects everything the engine needs beyond the model data
// itself: the image operator's direction-selection mode, the alpha/param
// variable orderings the Bernstein machinery is keyed on, an optional
// invariant applied after every image computation, and the shared worker
// pool / control-point cache backing the parallelism opportunities of
// spec §5.
type Options struct {
	Mode       bundle.DirectionMode
	StateVars  []poly.Variable
	AlphaVars  []poly.Variable
	ParamOrder []poly.Variable
	Invariant  *polytope.Polytope
	Pool       *workpool.Pool
	Cache      *cache.Cache
}

func singleton(p *polytope.Polytope) *polytope.Union {
	u := polytope.NewUnion()
	u.Add(p)
	//
	return u
}

// applyInvariant intersects p with the model's invariant, if any, per the
// "apply at every step" rule recovered from original_source/sapo.
func applyInvariant(p *polytope.Polytope, invariant *polytope.Polytope) *polytope.Polytope {
	if invariant == nil {
		return p
	}
	//
	return p.Intersect(invariant)
}

// Reach constructs the non-parametric flowpipe of spec §4.6:
// F0 = {P(B0)}, B_{i+1} = image(B_i), F_{i+1} = {P(B_{i+1})}, for k steps.
func Reach(b0 *bundle.Bundle, sys *dynamics.DiscreteSystem, steps int, opts Options) (Flowpipe, error) {
	fp := make(Flowpipe, 0, steps+1)
	fp = append(fp, singleton(applyInvariant(b0.GetPolytope(), opts.Invariant)))
	cur := b0
	//
	for i := 0; i < steps; i++ {
		next, err := cur.Image(sys, opts.Mode, opts.AlphaVars, opts.ParamOrder, nil, opts.Cache)
		if err != nil {
			return nil, err
		}
		//
		cur = next
		fp = append(fp, singleton(applyInvariant(cur.GetPolytope(), opts.Invariant)))
		//
		log.WithFields(log.Fields{"step": i + 1}).Debug("reach: computed non-parametric step")
	}
	//
	return fp, nil
}

// branch is one parameter-union member and the bundle tracking the
// reachable set of trajectories under that member alone.
type branch struct {
	param *polytope.Polytope
	state *bundle.Bundle
}

// ReachParametric constructs the parametric flowpipe of spec §4.6:
// F_{i+1} = union_{Q in U_param} image(B_i, Q). Each member of the initial
// parameter union starts its own branch that evolves only under its own
// member thereafter (so the per-step fan-out is exactly |U_param| image
// computations, the parallel opportunity spec §5 item 2 names), and every
// step's flowpipe entry is the union of every branch's current polytope.
func ReachParametric(b0 *bundle.Bundle, sys *dynamics.DiscreteSystem, params *polytope.Union, steps int, opts Options) (Flowpipe, error) {
	if params == nil || params.IsEmpty() {
		return Reach(b0, sys, steps, opts)
	}
	//
	branches := make([]*branch, len(params.Members()))
	//
	for i, q := range params.Members() {
		branches[i] = &branch{param: q, state: b0}
	}
	//
	fp := make(Flowpipe, 0, steps+1)
	fp = append(fp, unionOfBranches(branches, opts.Invariant))
	//
	for i := 0; i < steps; i++ {
		if err := advanceBranches(branches, sys, opts); err != nil {
			return nil, err
		}
		//
		fp = append(fp, unionOfBranches(branches, opts.Invariant))
		//
		log.WithFields(log.Fields{"step": i + 1, "branches": len(branches)}).Debug("reach: computed parametric step")
	}
	//
	return fp, nil
}

// advanceBranches advances every branch one step, in parallel over the
// shared pool when one is configured.
func advanceBranches(branches []*branch, sys *dynamics.DiscreteSystem, opts Options) error {
	errs := make([]error, len(branches))
	//
	if opts.Pool == nil {
		for i, br := range branches {
			errs[i] = advanceOne(br, sys, opts)
		}
	} else {
		batch := opts.Pool.CreateBatch()
		//
		for i := range branches {
			i := i
			batch.Submit(func() { errs[i] = advanceOne(branches[i], sys, opts) })
		}
		//
		batch.Join()
	}
	//
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	//
	return nil
}

func advanceOne(br *branch, sys *dynamics.DiscreteSystem, opts Options) error {
	next, err := br.state.Image(sys, opts.Mode, opts.AlphaVars, opts.ParamOrder, singleton(br.param), opts.Cache)
	if err != nil {
		return err
	}
	//
	br.state = next
	//
	return nil
}

func unionOfBranches(branches []*branch, invariant *polytope.Polytope) *polytope.Union {
	u := polytope.NewUnion()
	//
	for _, br := range branches {
		u.Add(applyInvariant(br.state.GetPolytope(), invariant))
	}
	//
	return u
}
