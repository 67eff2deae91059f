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
package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/sapogo/sapogo/pkg/bundle"
	"github.com/sapogo/sapogo/pkg/dynamics"
	"github.com/sapogo/sapogo/pkg/poly"
	"github.com/sapogo/sapogo/pkg/polytope"
	"github.com/sapogo/sapogo/pkg/stl"
)

// Model is the structural contract spec §6 asks for: variables with their
// dynamics, parameters, the initial bundle's directions and offsets, an
// optional template set, a parameter polytope union, optional assumptions
// and invariant, an optional STL specification and problem type, and the
// engine Config. It is the shared product of pkg/model's textual parser
// and any other front-end, and the sole input pkg/cmd hands to pkg/reach.
type Model struct {
	Vars      *VarTable
	StateVars []poly.Variable
	ParamVars []poly.Variable

	// Continuous is non-nil when the dynamics were given as an ODE
	// right-hand side and must be discretized by Config.Integrator before
	// use; Discrete is non-nil when dynamics were given already discrete.
	// Once Build succeeds Discrete is always set; for ODE input Continuous
	// stays set as well.
	Continuous *dynamics.ContinuousSystem
	Discrete   *dynamics.DiscreteSystem

	Directions *mat.Dense
	Upper      []float64
	Lower      []float64
	Templates  []bundle.Template

	ParamUnion *polytope.Union

	Assumptions *polytope.Polytope
	Invariant   *polytope.Polytope

	Formula     stl.Formula
	HasFormula  bool
	FormulaTime int

	Config Config
}

// Build validates a fully populated Model against spec §7's structural
// and semantic rules and, if dynamics were given continuous, discretizes
// them, returning the ready-to-run dynamics.DiscreteSystem alongside the
// model's initial bundle.
func (m *Model) Build() (*bundle.Bundle, *dynamics.DiscreteSystem, error) {
	if err := m.validateDimensions(); err != nil {
		return nil, nil, err
	}
	//
	if err := m.validateTemplates(); err != nil {
		return nil, nil, err
	}
	//
	if err := m.validateFormulaBounds(); err != nil {
		return nil, nil, err
	}
	//
	sys, err := m.resolveDynamics()
	if err != nil {
		return nil, nil, err
	}
	//
	b := bundle.New(m.Directions, m.Upper, m.Lower, m.Templates)
	//
	if m.Assumptions != nil {
		b = intersectBundleWith(b, m.Assumptions)
	}
	//
	return b, sys, nil
}

// validateDimensions checks the structural error class of spec §7:
// directions, offsets, templates and parameters must agree in size.
func (m *Model) validateDimensions() error {
	rows, n := m.Directions.Dims()
	//
	if len(m.Upper) != rows {
		return &DimensionError{What: "upper offsets", Expected: rows, Got: len(m.Upper)}
	}
	//
	if len(m.Lower) != rows {
		return &DimensionError{What: "lower offsets", Expected: rows, Got: len(m.Lower)}
	}
	//
	if n != len(m.StateVars) {
		return &DimensionError{What: "direction columns vs. state variables", Expected: len(m.StateVars), Got: n}
	}
	//
	for i, t := range m.Templates {
		if len(t) != n {
			return &DimensionError{What: fmt.Sprintf("template %d size", i), Expected: n, Got: len(t)}
		}
		//
		for _, idx := range t {
			if idx < 0 || idx >= rows {
				return &DimensionError{What: fmt.Sprintf("template %d direction index", i), Expected: rows, Got: idx}
			}
		}
	}
	//
	return nil
}

// validateTemplates checks the semantic rule that every template's
// directions are linearly independent.
func (m *Model) validateTemplates() error {
	b := bundle.New(m.Directions, m.Upper, m.Lower, m.Templates)
	//
	for i, t := range m.Templates {
		if !b.TemplateLinearlyIndependent(t) {
			return &ValidationError{Reason: fmt.Sprintf("template %d is not linearly independent", i)}
		}
	}
	//
	return nil
}

// validateFormulaBounds checks the semantic rule that every STL temporal
// bound satisfies a <= b.
func (m *Model) validateFormulaBounds() error {
	if !m.HasFormula {
		return nil
	}
	//
	return checkBounds(m.Formula)
}

func checkBounds(f stl.Formula) error {
	switch n := f.(type) {
	case stl.Always:
		if n.A > n.B {
			return &ValidationError{Reason: "STL bound has lower endpoint exceeding upper endpoint"}
		}
		//
		return checkBounds(n.Sub)
	case stl.Eventually:
		if n.A > n.B {
			return &ValidationError{Reason: "STL bound has lower endpoint exceeding upper endpoint"}
		}
		//
		return checkBounds(n.Sub)
	case stl.Until:
		if n.A > n.B {
			return &ValidationError{Reason: "STL bound has lower endpoint exceeding upper endpoint"}
		}
		//
		if err := checkBounds(n.Left); err != nil {
			return err
		}
		//
		return checkBounds(n.Right)
	case stl.Conjunction:
		if err := checkBounds(n.Left); err != nil {
			return err
		}
		//
		return checkBounds(n.Right)
	case stl.Disjunction:
		if err := checkBounds(n.Left); err != nil {
			return err
		}
		//
		return checkBounds(n.Right)
	case stl.Negation:
		return checkBounds(n.Sub)
	default:
		return nil
	}
}

// resolveDynamics discretizes Continuous via Config.Integrator when the
// model's dynamics were given as an ODE, otherwise returns Discrete
// unchanged. It fails per spec §7 when an integrator is required but no
// step was configured.
func (m *Model) resolveDynamics() (*dynamics.DiscreteSystem, error) {
	if m.Discrete != nil {
		return m.Discrete, nil
	}
	//
	if m.Continuous == nil {
		return nil, &ValidationError{Reason: "model declares no dynamics"}
	}
	//
	if m.Config.Integrator == NoIntegrator {
		return nil, &ValidationError{Reason: "continuous dynamics given but no integrator selected"}
	}
	//
	if m.Config.Step <= 0 {
		return nil, &ValidationError{Reason: "integrator required but step unset"}
	}
	//
	var integrator dynamics.Integrator
	//
	switch m.Config.Integrator {
	case IntegratorEuler:
		integrator = dynamics.Euler{}
	case IntegratorRK4:
		integrator = dynamics.RK4{}
	default:
		return nil, &ValidationError{Reason: "unknown integrator kind"}
	}
	//
	discrete, err := integrator.Discretize(m.Continuous, m.Config.Step)
	if err != nil {
		return nil, &NonAffineParameterError{Cause: err}
	}
	//
	m.Discrete = discrete
	//
	return m.Discrete, nil
}

func intersectBundleWith(b *bundle.Bundle, assumptions *polytope.Polytope) *bundle.Bundle {
	p := b.GetPolytope().Intersect(assumptions)
	//
	// Assumptions narrow the feasible region but the bundle's template
	// representation is kept: offsets are tightened to the assumption-
	// intersected polytope's per-direction extent, matching how Canonize
	// reads bounds off a polytope.
	n := b.Dim()
	out := b.Clone()
	//
	for i := 0; i < b.NumDirections(); i++ {
		dir := b.Direction(i)
		//
		res := p.Maximize(dir)
		if res.Status == polytope.Optimal && res.Value < out.Upper[i] {
			out.Upper[i] = res.Value
		}
		//
		neg := make([]float64, n)
		//
		for k, v := range dir {
			neg[k] = -v
		}
		//
		resMin := p.Maximize(neg)
		if resMin.Status == polytope.Optimal && -resMin.Value > out.Lower[i] {
			out.Lower[i] = -resMin.Value
		}
	}
	//
	return out
}
