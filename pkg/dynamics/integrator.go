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
package dynamics

import "github.com/sapogo/sapogo/pkg/poly"

// Integrator discretizes a continuous-time system with a fixed step size,
// producing the one-step polynomial map the bundle image operator applies.
type Integrator interface {
	Discretize(sys *ContinuousSystem, step float64) (*DiscreteSystem, error)
}

// Euler is the forward-Euler integrator: x' = x + h*f(x,p).
type Euler struct{}

// Discretize implements Integrator.
func (Euler) Discretize(sys *ContinuousSystem, step float64) (*DiscreteSystem, error) {
	m := make([]poly.Polynomial, len(sys.StateVars))
	//
	for i, v := range sys.StateVars {
		m[i] = poly.Linear(1, v).Add(sys.RHS[i].Scale(step))
	}
	//
	return NewDiscreteSystem(sys.StateVars, sys.ParamVars, m)
}

// RK4 is the classical 4th-order Runge-Kutta integrator, carried out
// symbolically: each stage k1..k4 is itself a polynomial in the state and
// parameter variables, built by substitution rather than numeric
// evaluation, so the final combination preserves the dynamics' exact
// polynomial degree (no truncation of higher-order terms as a floating
// point RK4 step would produce).
type RK4 struct{}

// Discretize implements Integrator.
func (RK4) Discretize(sys *ContinuousSystem, step float64) (*DiscreteSystem, error) {
	n := len(sys.StateVars)
	h := step
	//
	k1 := sys.RHS
	k2 := evalAt(sys, offsetState(sys.StateVars, k1, h/2))
	k3 := evalAt(sys, offsetState(sys.StateVars, k2, h/2))
	k4 := evalAt(sys, offsetState(sys.StateVars, k3, h))
	//
	m := make([]poly.Polynomial, n)
	//
	for i, v := range sys.StateVars {
		sum := k1[i].Add(k2[i].Scale(2)).Add(k3[i].Scale(2)).Add(k4[i])
		m[i] = poly.Linear(1, v).Add(sum.Scale(h / 6))
	}
	//
	return NewDiscreteSystem(sys.StateVars, sys.ParamVars, m)
}

// offsetState builds the substitution x_i -> x_i + h*stage_i used to
// evaluate the right-hand side at an intermediate RK stage.
func offsetState(stateVars []poly.Variable, stage []poly.Polynomial, h float64) map[poly.Variable]poly.Polynomial {
	repl := make(map[poly.Variable]poly.Polynomial, len(stateVars))
	//
	for i, v := range stateVars {
		repl[v] = poly.Linear(1, v).Add(stage[i].Scale(h))
	}
	//
	return repl
}

// evalAt substitutes repl into every RHS component simultaneously.
func evalAt(sys *ContinuousSystem, repl map[poly.Variable]poly.Polynomial) []poly.Polynomial {
	out := make([]poly.Polynomial, len(sys.RHS))
	//
	for i, f := range sys.RHS {
		out[i] = f.SubstituteAll(repl)
	}
	//
	return out
}
