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
	"math/rand"
	"slices"

	log "github.com/sirupsen/logrus"

	"github.com/sapogo/sapogo/pkg/linalg"
	"github.com/sapogo/sapogo/pkg/util/collection/set"
)

// Decompose performs the optional randomized template refinement: up to
// maxCandidates candidate templates are generated by swapping one index
// in one existing template row; a candidate is accepted, replacing the
// template it was derived from, when it remains a valid basis, is not a
// duplicate (up to permutation) of an existing template, and reduces the
// cost function alpha*prod(dists) + (1-alpha)*maxOrthogonalProximity.
func (b *Bundle) Decompose(alpha float64, maxCandidates int) {
	if len(b.Templates) == 0 {
		return
	}
	//
	d := b.NumDirections()
	if d == 0 {
		return
	}
	//
	baseCost := b.templateCost(alpha)
	//
	for attempt := 0; attempt < maxCandidates; attempt++ {
		ti := rand.Intn(len(b.Templates))
		pos := rand.Intn(len(b.Templates[ti]))
		newIdx := rand.Intn(d)
		//
		candidate := append(Template{}, b.Templates[ti]...)
		candidate[pos] = newIdx
		//
		if !b.TemplateLinearlyIndependent(candidate) {
			continue
		}
		//
		if b.isDuplicateTemplate(candidate, ti) {
			continue
		}
		//
		trial := b.Clone()
		trial.Templates[ti] = candidate
		trialCost := trial.templateCost(alpha)
		//
		if trialCost < baseCost {
			b.Templates[ti] = candidate
			baseCost = trialCost
			//
			log.WithFields(log.Fields{"template": ti, "cost": trialCost}).Debug("decompose: accepted candidate template")
		}
	}
}

// isDuplicateTemplate reports whether candidate matches, up to
// permutation, any template other than the one at index skip.
func (b *Bundle) isDuplicateTemplate(candidate Template, skip int) bool {
	sorted := normalizedTemplate(candidate)
	//
	for i, t := range b.Templates {
		if i == skip {
			continue
		}
		//
		if slices.Equal(*sorted, *normalizedTemplate(t)) {
			return true
		}
	}
	//
	return false
}

// normalizedTemplate reads a template's indices into a set.SortedSet,
// giving two templates differing only by index order the same
// representation for the duplicate check above.
func normalizedTemplate(t Template) *set.SortedSet[int] {
	s := set.NewSortedSet[int]()
	//
	for _, idx := range t {
		s.Insert(idx)
	}
	//
	return s
}

// templateCost is alpha*prod(edge lengths) + (1-alpha)*max
// orthogonal-proximity, summed across templates: a proxy for how tight and
// how axis-aligned the current template set is.
func (b *Bundle) templateCost(alpha float64) float64 {
	var total float64
	//
	for _, t := range b.Templates {
		para := b.ParallelotopeOf(t)
		lengths := para.EdgeLengths()
		//
		volumeTerm := 1.0
		//
		for _, l := range lengths {
			volumeTerm *= math.Abs(l)
		}
		//
		total += alpha*volumeTerm + (1-alpha)*maxOrthogonalProximity(para.Directions())
	}
	//
	return total
}

// maxOrthogonalProximity measures how far the template's directions are
// from mutual orthogonality: the largest absolute cosine between any two
// distinct direction rows.
func maxOrthogonalProximity(directions *linalg.Matrix) float64 {
	n, _ := directions.Dims()
	var maxCos float64
	//
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			cos := math.Abs(cosine(directions, i, j))
			//
			if cos > maxCos {
				maxCos = cos
			}
		}
	}
	//
	return maxCos
}

// cosine returns the cosine of the angle between rows i and j of
// directions, or 0 if either row is the zero vector.
func cosine(directions *linalg.Matrix, i, j int) float64 {
	a, b := linalg.Row(directions, i), linalg.Row(directions, j)
	na, nb := linalg.Norm(a), linalg.Norm(b)
	//
	if na == 0 || nb == 0 {
		return 0
	}
	//
	return linalg.Dot(a, b) / (na * nb)
}
