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

import "github.com/sapogo/sapogo/pkg/polytope"

// Canonize tightens every offset in place to the support value of its
// direction on the denoted polytope: u_i <- max l_i.x, l_i <- min l_i.x.
// This does not change the denoted set.
func (b *Bundle) Canonize() {
	p := b.GetPolytope()
	//
	for i := 0; i < b.NumDirections(); i++ {
		row := b.Direction(i)
		//
		if max := p.Maximize(row); max.Status == polytope.Optimal {
			b.Upper[i] = max.Value
		}
		//
		if min := p.Minimize(row); min.Status == polytope.Optimal {
			b.Lower[i] = min.Value
		}
	}
}

// GetCanonical returns a canonicalized copy of this bundle, leaving it
// unmodified.
func (b *Bundle) GetCanonical() *Bundle {
	c := b.Clone()
	c.Canonize()
	//
	return c
}

// IsSubsetOf returns true iff this bundle's denoted polytope is contained
// in other's.
func (b *Bundle) IsSubsetOf(other *Bundle) bool {
	return other.GetPolytope().Contains(b.GetPolytope())
}

// Includes returns true iff other's denoted polytope is contained in this
// bundle's.
func (b *Bundle) Includes(other *Bundle) bool {
	return b.GetPolytope().Contains(other.GetPolytope())
}

// Equal compares two bundles via their denoted polytopes, so that bundles
// with different direction lists but the same feasible region compare
// equal.
func (b *Bundle) Equal(other *Bundle) bool {
	return b.Includes(other) && other.Includes(b)
}
