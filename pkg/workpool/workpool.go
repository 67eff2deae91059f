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

// Package workpool provides the create_batch / submit_to_batch /
// join_threads / close_batch contract used to parallelize independent
// per-member work across a flowpipe step, a polytope union membership
// check, or a parameter-splitting search: real goroutines under a bounded
// semaphore, with no dependency ordering between jobs, because this
// domain's units of work carry no inter-batch dependency edges — every
// submission within a batch is independent by construction.
package workpool

import "sync"

// Pool bounds the number of goroutines live at once across all batches it
// creates, mirroring a "-t N" worker-count CLI flag.
type Pool struct {
	sem chan struct{}
}

// New constructs a pool with the given worker capacity. A capacity of zero
// or less is treated as unbounded.
func New(workers int) *Pool {
	if workers <= 0 {
		return &Pool{}
	}
	//
	return &Pool{sem: make(chan struct{}, workers)}
}

// CreateBatch starts a new batch of independent jobs sharing this pool's
// worker budget.
func (p *Pool) CreateBatch() *Batch {
	return &Batch{pool: p}
}

// Batch is one atomic group of independent jobs, all of which are
// submitted before a single Join.
type Batch struct {
	pool *Pool
	wg   sync.WaitGroup
}

// Submit schedules job to run on a goroutine, acquiring a slot from the
// pool's worker budget first if the pool is bounded.
func (b *Batch) Submit(job func()) {
	b.wg.Add(1)
	//
	go func() {
		defer b.wg.Done()
		//
		if b.pool.sem != nil {
			b.pool.sem <- struct{}{}
			defer func() { <-b.pool.sem }()
		}
		//
		job()
	}()
}

// Join blocks until every job submitted to this batch has completed.
func (b *Batch) Join() {
	b.wg.Wait()
}

// Close is a no-op provided for symmetry with the create/submit/join/close
// batch lifecycle; a Batch holds no resources beyond its WaitGroup, which
// Join already drains.
func (b *Batch) Close() {}

// Flag is a shared atomic boolean used for the early-exit pattern in
// AnyIncludes-style scans: many goroutines may test and set it
// concurrently.
type Flag struct {
	mu  sync.Mutex
	set bool
}

// NewFlag constructs an unset flag.
func NewFlag() *Flag {
	return &Flag{}
}

// IsSet returns the flag's current value.
func (f *Flag) IsSet() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	//
	return f.set
}

// Set marks the flag as set.
func (f *Flag) Set() {
	f.mu.Lock()
	defer f.mu.Unlock()
	//
	f.set = true
}
