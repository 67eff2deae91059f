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

	"gonum.org/v1/gonum/mat"
)

// Constraint is a single half-space `coeffs . x <= offset` to be merged
// into a bundle's direction set.
type Constraint struct {
	Coeffs []float64
	Offset float64
}

// IntersectWith adds each constraint as an additional direction if its
// coefficient vector is not a scalar multiple of any existing direction;
// otherwise it tightens the offset of whichever existing direction it is
// parallel to. New directions carry no template membership: in OFO mode
// the image operator does not re-bound them (only the post-image
// canonicalization tightens them), while in AFO mode they are re-bounded
// like every other direction.
func (b *Bundle) IntersectWith(constraints []Constraint) {
	for _, c := range constraints {
		if idx, scale, ok := b.parallelDirection(c.Coeffs); ok {
			b.tighten(idx, scale, c.Offset)
		} else {
			b.addDirection(c.Coeffs, c.Offset)
		}
	}
}

// parallelDirection finds an existing direction that is a scalar multiple
// of coeffs, returning its index and the scale factor (coeffs = scale *
// direction).
func (b *Bundle) parallelDirection(coeffs []float64) (int, float64, bool) {
	for i := 0; i < b.NumDirections(); i++ {
		if scale, ok := proportional(coeffs, b.Direction(i)); ok {
			return i, scale, true
		}
	}
	//
	return 0, 0, false
}

// proportional determines whether a = scale*b for some non-zero scale,
// returning that scale.
func proportional(a, b []float64) (float64, bool) {
	var scale float64
	found := false
	//
	for i := range a {
		switch {
		case a[i] == 0 && b[i] == 0:
			continue
		case b[i] == 0:
			return 0, false
		default:
			ratio := a[i] / b[i]
			//
			if !found {
				scale = ratio
				found = true
			} else if math.Abs(ratio-scale) > 1e-9 {
				return 0, false
			}
		}
	}
	//
	if !found {
		return 0, false
	}
	//
	return scale, true
}

// tighten folds a newly-seen constraint parallel to direction idx (with
// coeffs = scale*direction) into that direction's offsets.
func (b *Bundle) tighten(idx int, scale, offset float64) {
	bound := offset / scale
	//
	if scale > 0 {
		if bound < b.Upper[idx] {
			b.Upper[idx] = bound
		}
	} else {
		if bound > b.Lower[idx] {
			b.Lower[idx] = bound
		}
	}
}

// addDirection appends coeffs as a brand new direction with only the
// upper bound implied by offset; its lower bound is unconstrained.
func (b *Bundle) addDirection(coeffs []float64, offset float64) {
	n := b.Dim()
	d := b.NumDirections()
	data := make([]float64, (d+1)*n)
	//
	for i := 0; i < d; i++ {
		copy(data[i*n:(i+1)*n], b.Direction(i))
	}
	//
	copy(data[d*n:(d+1)*n], coeffs)
	//
	b.Directions = mat.NewDense(d+1, n, data)
	b.Upper = append(b.Upper, offset)
	b.Lower = append(b.Lower, math.Inf(-1))
}
