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

// Package cache memoizes the Bernstein expansion of l.f(g_t(alpha)) keyed
// by (template, direction), invalidated whenever the parallelotope's
// generator-function signature no longer matches the one the entry was
// computed for.
package cache

import (
	"sync"

	"github.com/sapogo/sapogo/pkg/bernstein"
	"github.com/sapogo/sapogo/pkg/parallelotope"
)

// Key identifies one control-point cache entry.
type Key struct {
	Template  int
	Direction int
}

type entry struct {
	signature parallelotope.Signature
	tensor    *bernstein.Tensor
}

// Cache is safe for concurrent use: lookups take a shared (read) lock,
// insertions an exclusive (write) lock.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]entry
}

// New constructs an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[Key]entry)}
}

// Lookup returns the memoized tensor for key if present and still valid
// against the given signature.
func (c *Cache) Lookup(key Key, signature parallelotope.Signature) (*bernstein.Tensor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	//
	e, ok := c.entries[key]
	if !ok || !e.signature.Equal(signature) {
		return nil, false
	}
	//
	return e.tensor, true
}

// Store memoizes tensor for key under the given signature, overwriting any
// prior (necessarily stale) entry.
func (c *Cache) Store(key Key, signature parallelotope.Signature, tensor *bernstein.Tensor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	//
	c.entries[key] = entry{signature: signature, tensor: tensor}
}

// Len returns the number of memoized entries, regardless of validity.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	//
	return len(c.entries)
}
