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
package bundle

import (
	"math"

	"github.com/sapogo/sapogo/pkg/bernstein"
	"github.com/sapogo/sapogo/pkg/cache"
	"github.com/sapogo/sapogo/pkg/dynamics"
	"github.com/sapogo/sapogo/pkg/poly"
	"github.com/sapogo/sapogo/pkg/polytope"
)

// DirectionMode selects which directions the image operator re-bounds per
// template.
type DirectionMode uint8

const (
	// OFO (one-for-one) re-bounds only the n directions of the current
	// template, canonicalizing the result afterward.
	OFO DirectionMode = iota
	// AFO (all-for-one) re-bounds every direction in L against every
	// template, with no post-canonicalization.
	AFO
)

// Image computes the over-approximating image of this bundle under a
// discrete polynomial map, keeping the same directions and templates and
// updating offsets per spec §4.5. If params is nil the map is treated as
// non-parametric; otherwise each Bernstein coefficient's extremum is taken
// over the parameter polytope union.
func (b *Bundle) Image(sys *dynamics.DiscreteSystem, mode DirectionMode, alphaVars []poly.Variable, paramOrder []poly.Variable, params *polytope.Union, ch *cache.Cache) (*Bundle, error) {
	d := b.NumDirections()
	newUpper := fillInf(d)
	negatedLower := fillInf(d)
	//
	for ti, t := range b.Templates {
		para := b.ParallelotopeOf(t)
		signature := para.ComputeSignature()
		g := para.GeneratorFunction(alphaVars)
		repl := make(map[poly.Variable]poly.Polynomial, len(sys.StateVars))
		//
		for i, v := range sys.StateVars {
			repl[v] = g[i]
		}
		//
		composed := sys.Substitute(repl)
		targets := t
		//
		if mode == AFO {
			targets = allDirections(d)
		}
		//
		for _, j := range targets {
			key := cache.Key{Template: ti, Direction: j}
			tensor, hit := ch.Lookup(key, signature)
			//
			if !hit {
				h := dot(b.Direction(j), composed)
				//
				expanded, err := bernstein.Expand(h, alphaVars)
				if err != nil {
					return nil, err
				}
				//
				tensor = expanded
				ch.Store(key, signature, tensor)
			}
			//
			mPlus, okMax := bernstein.MaxOverUnion(tensor, paramOrder, params)
			mMinus, okMin := bernstein.MinOverUnion(tensor, paramOrder, params)
			//
			if okMax && mPlus < newUpper[j] {
				newUpper[j] = mPlus
			}
			//
			if okMin && -mMinus < negatedLower[j] {
				negatedLower[j] = -mMinus
			}
		}
	}
	//
	result := b.Clone()
	//
	for j := 0; j < d; j++ {
		if !math.IsInf(newUpper[j], 1) {
			result.Upper[j] = newUpper[j]
		}
		//
		if !math.IsInf(negatedLower[j], 1) {
			result.Lower[j] = -negatedLower[j]
		}
	}
	//
	if mode == OFO {
		result.Canonize()
	}
	//
	return result, nil
}

// dot forms the polynomial ell . f, the composition step 2 of the image
// operator asks for.
func dot(ell []float64, f []poly.Polynomial) poly.Polynomial {
	var sum poly.Polynomial
	//
	for i, c := range ell {
		if c == 0 {
			continue
		}
		//
		sum = sum.Add(f[i].Scale(c))
	}
	//
	return sum
}

func fillInf(n int) []float64 {
	out := make([]float64, n)
	//
	for i := range out {
		out[i] = math.Inf(1)
	}
	//
	return out
}

func allDirections(n int) []int {
	out := make([]int, n)
	//
	for i := range out {
		out[i] = i
	}
	//
	return out
}
