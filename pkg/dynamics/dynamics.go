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

// Package dynamics builds the discrete-time polynomial map x' = f(x,p)
// that drives the bundle image operator, either taken directly (an
// already-discrete system) or obtained from a continuous-time ODE by
// Euler or Runge-Kutta 4 discretization, both carried out symbolically on
// pkg/poly trees so the resulting map's polynomial degree is exact rather
// than a numerical approximation.
package dynamics

import (
	"fmt"

	"github.com/sapogo/sapogo/pkg/poly"
)

// NonAffineParameterError indicates a discretized dynamics expression
// where some parameter fails to appear affinely, violating the invariant
// every downstream Bernstein coefficient must be an affine form in p.
type NonAffineParameterError struct {
	Variable poly.Variable
}

func (e *NonAffineParameterError) Error() string {
	return fmt.Sprintf("dynamics: parameter variable %d does not appear affinely", e.Variable)
}

// ContinuousSystem is an ODE x'(t) = f(x(t), p) given as one polynomial
// right-hand side per state variable.
type ContinuousSystem struct {
	StateVars []poly.Variable
	ParamVars []poly.Variable
	RHS       []poly.Polynomial
}

// DiscreteSystem is the polynomial map x' = f(x,p) applied once per
// reachability step.
type DiscreteSystem struct {
	StateVars []poly.Variable
	ParamVars []poly.Variable
	Map       []poly.Polynomial
}

// NewDiscreteSystem validates and wraps an already-discrete map.
func NewDiscreteSystem(stateVars, paramVars []poly.Variable, m []poly.Polynomial) (*DiscreteSystem, error) {
	if len(m) != len(stateVars) {
		return nil, fmt.Errorf("dynamics: expected %d map components, got %d", len(stateVars), len(m))
	}
	//
	for _, f := range m {
		if err := checkAffineInParams(f, paramVars); err != nil {
			return nil, err
		}
	}
	//
	return &DiscreteSystem{StateVars: stateVars, ParamVars: paramVars, Map: m}, nil
}

// checkAffineInParams verifies that every term of p, restricted to the
// variables in params, has total degree <= 1 in those variables.
func checkAffineInParams(p poly.Polynomial, params []poly.Variable) error {
	for i := uint(0); i < p.Len(); i++ {
		term := p.Term(i)
		var count int
		var last poly.Variable
		//
		for _, v := range term.Vars() {
			if contains(params, v) {
				count++
				last = v
			}
		}
		//
		if count > 1 {
			return &NonAffineParameterError{Variable: last}
		}
	}
	//
	return nil
}

func contains(vars []poly.Variable, v poly.Variable) bool {
	for _, u := range vars {
		if u == v {
			return true
		}
	}
	//
	return false
}

// Substitute evaluates the discrete map's image of a symbolic point,
// substituting repl for every state variable simultaneously (used to
// compose f with a parallelotope's generator function).
func (d *DiscreteSystem) Substitute(repl map[poly.Variable]poly.Polynomial) []poly.Polynomial {
	out := make([]poly.Polynomial, len(d.Map))
	//
	for i, f := range d.Map {
		out[i] = f.SubstituteAll(repl)
	}
	//
	return out
}
