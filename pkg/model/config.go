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

import "github.com/sapogo/sapogo/pkg/bundle"

// ProblemType selects which of the two engine operations a model asks for.
type ProblemType uint8

const (
	// Reach asks for a flowpipe.
	Reach ProblemType = iota
	// Synth asks for a refined parameter region.
	Synth
)

// IntegratorKind names a pluggable ODE-to-discrete integrator.
type IntegratorKind uint8

const (
	// NoIntegrator means the model's dynamics are already discrete.
	NoIntegrator IntegratorKind = iota
	// IntegratorEuler is the forward-Euler discretization.
	IntegratorEuler
	// IntegratorRK4 is the classical 4th-order Runge-Kutta discretization.
	IntegratorRK4
)

// Config captures every optional input named in spec §6: integration
// step, integrator kind, iteration count, parameter-split cap, presplit
// count, decomposition weight alpha, OFO/AFO mode, and worker count.
type Config struct {
	Problem ProblemType

	Integrator IntegratorKind
	Step       float64

	Iterations int
	MaxSplits  int
	Presplits  int

	DecompositionAlpha   float64
	DecompositionEnabled bool
	MaxDecomposeCandidates int

	Mode bundle.DirectionMode

	Workers int
}

// DefaultConfig returns a Config with the engine's baseline defaults: one
// iteration, no splitting, OFO mode, and a single worker (no parallelism)
// unless the CLI or model input overrides it.
func DefaultConfig() Config {
	return Config{
		Problem:    Reach,
		Integrator: NoIntegrator,
		Iterations: 1,
		MaxSplits:  0,
		Presplits:  0,
		Mode:       bundle.OFO,
		Workers:    1,
	}
}
