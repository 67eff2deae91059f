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
package polytope

import (
	"fmt"

	"github.com/sapogo/sapogo/pkg/workpool"
)

// Union is an ordered, inclusion-minimal collection of polytopes: no
// member is a subset of another. Empty polytopes never enter a union.
type Union struct {
	members []*Polytope
}

// NewUnion constructs an empty union.
func NewUnion() *Union {
	return &Union{}
}

// Members returns the polytopes currently in the union.
func (u *Union) Members() []*Polytope {
	return u.members
}

// Len returns the number of members.
func (u *Union) Len() int {
	return len(u.members)
}

// IsEmpty returns true iff the union has no members.
func (u *Union) IsEmpty() bool {
	return len(u.members) == 0
}

// Add inserts q into the union, preserving the inclusion-minimal
// invariant: q is discarded if empty or if some existing member already
// contains it; otherwise every member that q contains is removed and q is
// appended. Every member of a union shares one dimension; Add panics if q's
// dimension does not match the dimension already established by the
// union's existing members.
func (u *Union) Add(q *Polytope) {
	if q.IsEmpty() {
		return
	}
	//
	if len(u.members) > 0 {
		_, want := u.members[0].Dims()
		//
		if _, got := q.Dims(); got != want {
			panic(fmt.Sprintf("polytope.Union.Add: dimension mismatch, union is %d-dimensional, got %d", want, got))
		}
	}
	//
	for _, m := range u.members {
		if m.Contains(q) {
			return
		}
	}
	//
	survivors := u.members[:0]
	//
	for _, m := range u.members {
		if !q.Contains(m) {
			survivors = append(survivors, m)
		}
	}
	//
	u.members = append(survivors, q)
}

// Update merges other into u in place, inserting each of its members via
// Add so the inclusion-minimal invariant is preserved.
func (u *Union) Update(other *Union) {
	for _, m := range other.members {
		u.Add(m)
	}
}

// Intersect returns the pairwise intersection of u and other: every
// combination of a member of u and a member of other, inserted into a
// fresh union via the same inclusion-minimal Add discipline (empty and
// dominated combinations are dropped automatically).
func (u *Union) Intersect(other *Union) *Union {
	out := NewUnion()
	//
	for _, a := range u.members {
		for _, b := range other.members {
			out.Add(a.Intersect(b))
		}
	}
	//
	return out
}

// Clone performs a deep copy of this union.
func (u *Union) Clone() *Union {
	out := &Union{members: make([]*Polytope, len(u.members))}
	//
	for i, m := range u.members {
		out.members[i] = m.Clone()
	}
	//
	return out
}

// AnyIncludes returns true iff some member of the union contains q,
// checking membership of every member concurrently over a shared worker
// pool and exiting as soon as any check succeeds.
func (u *Union) AnyIncludes(pool *workpool.Pool, q *Polytope) bool {
	if len(u.members) == 0 {
		return false
	}
	//
	found := workpool.NewFlag()
	batch := pool.CreateBatch()
	//
	for _, m := range u.members {
		member := m
		//
		batch.Submit(func() {
			if found.IsSet() {
				return
			}
			//
			if member.Contains(q) {
				found.Set()
			}
		})
	}
	//
	batch.Join()
	//
	return found.IsSet()
}
