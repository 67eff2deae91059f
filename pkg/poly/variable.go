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

// Package poly implements multivariate polynomial expressions over
// float64-valued variables: construction, substitution, degree queries and
// numeric evaluation. Variables carry no notion of "state" vs "parameter" —
// that distinction belongs to callers (pkg/model, pkg/dynamics); a
// polynomial here is simply an expression over whichever variables its
// monomials mention.
package poly

// Variable identifies a single scalar unknown by its index into some
// external name table (owned by the model that constructed the
// polynomial). Two variables are the same iff their indices are equal.
type Variable uint

// Env maps variables to concrete values for evaluation.
type Env map[Variable]float64
