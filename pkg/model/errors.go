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

import "fmt"

// DimensionError reports a mismatch between the sizes of two quantities
// that a well-formed model requires to agree (directions vs. offsets vs.
// templates vs. parameters), per spec §7's structural error class.
type DimensionError struct {
	What     string
	Expected int
	Got      int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("model: dimension mismatch in %s: expected %d, got %d", e.What, e.Expected, e.Got)
}

// ValidationError reports a semantic model-build failure: duplicate
// names, a non-independent template row, an STL bound with a > b, or an
// integrator required with no step configured.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("model: %s", e.Reason)
}

// NonAffineParameterError surfaces dynamics.NonAffineParameterError (or
// bernstein.NonAffineParameterError) with the user-directed diagnostic
// spec §7 asks for when ODE integration or Bernstein expansion detects
// non-affine parameter dependence.
type NonAffineParameterError struct {
	Cause error
}

func (e *NonAffineParameterError) Error() string {
	return fmt.Sprintf("model: dynamics are not affine in parameters: %v", e.Cause)
}

func (e *NonAffineParameterError) Unwrap() error {
	return e.Cause
}

// ParseError reports a syntax error at a byte offset in the input text,
// letting pkg/cmd render a caret-highlighted diagnostic the way the
// teacher's printSyntaxError does for its own S-expression front-end.
type ParseError struct {
	Message string
	Offset  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Message)
}
