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

// Package model builds the internal model (variables, parameters,
// dynamics, initial bundle, parameter polytope union, STL formula,
// assumptions, invariants) from the structural input contract of spec §6,
// and carries the Config every optional input in that contract maps onto.
package model

import (
	"fmt"

	"github.com/sapogo/sapogo/pkg/poly"
)

// VarTable assigns a stable poly.Variable index to each name it sees,
// first-come first-served, and rejects a name registered twice — the
// duplicate-name validation error of spec §7.
type VarTable struct {
	names []string
	index map[string]poly.Variable
}

// NewVarTable constructs an empty table.
func NewVarTable() *VarTable {
	return &VarTable{index: make(map[string]poly.Variable)}
}

// Declare registers a new name, failing if it was already declared in this
// table or any table sharing the same namespace (callers merge state and
// parameter tables' Declare calls against one shared table to catch
// cross-namespace collisions, per spec §7's "duplicate variable or
// parameter names" rule).
func (t *VarTable) Declare(name string) (poly.Variable, error) {
	if _, ok := t.index[name]; ok {
		return 0, &ValidationError{Reason: fmt.Sprintf("duplicate variable or parameter name %q", name)}
	}
	//
	v := poly.Variable(len(t.names))
	t.names = append(t.names, name)
	t.index[name] = v
	//
	return v, nil
}

// Lookup returns the variable registered under name.
func (t *VarTable) Lookup(name string) (poly.Variable, bool) {
	v, ok := t.index[name]
	return v, ok
}

// Name returns the name registered for v.
func (t *VarTable) Name(v poly.Variable) string {
	if int(v) < len(t.names) {
		return t.names[v]
	}
	//
	return fmt.Sprintf("_%d", v)
}

// Env adapts this table's naming into a stl.Env / poly naming function.
func (t *VarTable) Env() func(poly.Variable) string {
	return t.Name
}
