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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/sapogo/sapogo/pkg/bundle"
	"github.com/sapogo/sapogo/pkg/dynamics"
	"github.com/sapogo/sapogo/pkg/poly"
	"github.com/sapogo/sapogo/pkg/polytope"
	"github.com/sapogo/sapogo/pkg/stl"
)

// Parse reads the plain-text model format pkg/cmd feeds from a file or
// standard input and builds a Model. The format is one directive per
// line, "#" starting a trailing comment, with state variables and their
// dynamics, parameters, initial bundle directions/offsets, templates, the
// parameter polytope union, optional assumptions/invariant/STL formula,
// and the engine Config's optional inputs:
//
//	var NAME = EXPR            state variable and its right-hand side
//	param NAME                 parameter
//	dynamics continuous|discrete
//	direction C... upper U lower L
//	template I...
//	paramset EXPR <= 0         one constraint of the parameter polytope
//	assume EXPR <= 0           one constraint of the initial-state assumption
//	invariant EXPR <= 0        one constraint of the per-step invariant
//	stl FORMULA
//	time T                     stored in Model.FormulaTime; synthesis always starts at instant 0
//	problem reach|synth
//	iterations N
//	splits N
//	presplits N
//	mode ofo|afo
//	step H
//	integrator none|euler|rk4
//	decompose ALPHA MAXCANDIDATES
func Parse(r io.Reader) (*Model, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	//
	vars := NewVarTable()
	m := &Model{Vars: vars, Config: DefaultConfig()}
	//
	var varExprs []string
	var continuous bool
	var paramsetExprs, assumeExprs, invariantExprs []string
	//
	for _, ln := range lines {
		keyword, rest := splitKeyword(ln)
		//
		switch keyword {
		case "var":
			name, exprText, ok := strings.Cut(rest, "=")
			if !ok {
				return nil, &ParseError{Message: "var directive requires '=' followed by its dynamics expression"}
			}
			//
			v, err := vars.Declare(strings.TrimSpace(name))
			if err != nil {
				return nil, err
			}
			//
			m.StateVars = append(m.StateVars, v)
			varExprs = append(varExprs, strings.TrimSpace(exprText))
		case "param":
			v, err := vars.Declare(strings.TrimSpace(rest))
			if err != nil {
				return nil, err
			}
			//
			m.ParamVars = append(m.ParamVars, v)
		case "dynamics":
			switch strings.TrimSpace(rest) {
			case "continuous":
				continuous = true
			case "discrete":
				continuous = false
			default:
				return nil, &ParseError{Message: "dynamics directive must be 'continuous' or 'discrete'"}
			}
		case "paramset":
			paramsetExprs = append(paramsetExprs, rest)
		case "assume":
			assumeExprs = append(assumeExprs, rest)
		case "invariant":
			invariantExprs = append(invariantExprs, rest)
		case "stl":
			f, err := NewFormulaParser(rest, vars.Lookup).Parse()
			if err != nil {
				return nil, err
			}
			//
			m.Formula = f
			m.HasFormula = true
		case "time":
			n, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil {
				return nil, &ParseError{Message: "time directive requires an integer"}
			}
			//
			m.FormulaTime = n
		case "problem":
			switch strings.TrimSpace(rest) {
			case "reach":
				m.Config.Problem = Reach
			case "synth":
				m.Config.Problem = Synth
			default:
				return nil, &ParseError{Message: "problem directive must be 'reach' or 'synth'"}
			}
		case "iterations":
			n, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil {
				return nil, &ParseError{Message: "iterations directive requires an integer"}
			}
			//
			m.Config.Iterations = n
		case "splits":
			n, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil {
				return nil, &ParseError{Message: "splits directive requires an integer"}
			}
			//
			m.Config.MaxSplits = n
		case "presplits":
			n, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil {
				return nil, &ParseError{Message: "presplits directive requires an integer"}
			}
			//
			m.Config.Presplits = n
		case "mode":
			switch strings.TrimSpace(rest) {
			case "ofo":
				m.Config.Mode = bundle.OFO
			case "afo":
				m.Config.Mode = bundle.AFO
			default:
				return nil, &ParseError{Message: "mode directive must be 'ofo' or 'afo'"}
			}
		case "step":
			v, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
			if err != nil {
				return nil, &ParseError{Message: "step directive requires a number"}
			}
			//
			m.Config.Step = v
		case "integrator":
			switch strings.TrimSpace(rest) {
			case "none":
				m.Config.Integrator = NoIntegrator
			case "euler":
				m.Config.Integrator = IntegratorEuler
			case "rk4":
				m.Config.Integrator = IntegratorRK4
			default:
				return nil, &ParseError{Message: "integrator directive must be 'none', 'euler' or 'rk4'"}
			}
		case "decompose":
			fields := strings.Fields(rest)
			if len(fields) != 2 {
				return nil, &ParseError{Message: "decompose directive requires alpha and a candidate count"}
			}
			//
			alpha, err := strconv.ParseFloat(fields[0], 64)
			if err != nil {
				return nil, &ParseError{Message: "decompose alpha must be a number"}
			}
			//
			candidates, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, &ParseError{Message: "decompose candidate count must be an integer"}
			}
			//
			m.Config.DecompositionEnabled = true
			m.Config.DecompositionAlpha = alpha
			m.Config.MaxDecomposeCandidates = candidates
		case "direction":
			if err := parseDirection(m, rest); err != nil {
				return nil, err
			}
		case "template":
			t, err := parseTemplate(rest)
			if err != nil {
				return nil, err
			}
			//
			m.Templates = append(m.Templates, t)
		default:
			return nil, &ParseError{Message: fmt.Sprintf("unrecognised directive %q", keyword)}
		}
	}
	//
	if err := buildDynamics(m, varExprs, continuous); err != nil {
		return nil, err
	}
	//
	if err := buildParamUnion(m, paramsetExprs); err != nil {
		return nil, err
	}
	//
	if err := buildRegion(m, assumeExprs, &m.Assumptions); err != nil {
		return nil, err
	}
	//
	if err := buildRegion(m, invariantExprs, &m.Invariant); err != nil {
		return nil, err
	}
	//
	return m, nil
}

func buildDynamics(m *Model, exprs []string, continuous bool) error {
	rhs := make([]poly.Polynomial, len(exprs))
	//
	for i, text := range exprs {
		e, err := NewExprParser(text, m.Vars.Lookup).Parse()
		if err != nil {
			return err
		}
		//
		rhs[i] = e
	}
	//
	if continuous {
		m.Continuous = &dynamics.ContinuousSystem{StateVars: m.StateVars, ParamVars: m.ParamVars, RHS: rhs}
		return nil
	}
	//
	sys, err := dynamics.NewDiscreteSystem(m.StateVars, m.ParamVars, rhs)
	if err != nil {
		return &NonAffineParameterError{Cause: err}
	}
	//
	m.Discrete = sys
	//
	return nil
}

func buildParamUnion(m *Model, exprs []string) error {
	if len(exprs) == 0 {
		m.ParamUnion = nil
		return nil
	}
	//
	rows := make([]polytope.Expression, 0, len(exprs))
	//
	for _, text := range exprs {
		e, err := parseAffineConstraint(text, m.Vars.Lookup)
		if err != nil {
			return err
		}
		//
		coeffs, offset, err := expressionToRow(e, m.ParamVars)
		if err != nil {
			return err
		}
		//
		rows = append(rows, polytope.Expression{Coeffs: coeffs, Offset: offset})
	}
	//
	u := polytope.NewUnion()
	u.Add(polytope.FromExpressions(len(m.ParamVars), rows))
	m.ParamUnion = u
	//
	return nil
}

func buildRegion(m *Model, exprs []string, dst **polytope.Polytope) error {
	if len(exprs) == 0 {
		return nil
	}
	//
	rows := make([]polytope.Expression, 0, len(exprs))
	//
	for _, text := range exprs {
		e, err := parseAffineConstraint(text, m.Vars.Lookup)
		if err != nil {
			return err
		}
		//
		coeffs, offset, err := expressionToRow(e, m.StateVars)
		if err != nil {
			return err
		}
		//
		rows = append(rows, polytope.Expression{Coeffs: coeffs, Offset: offset})
	}
	//
	*dst = polytope.FromExpressions(len(m.StateVars), rows)
	//
	return nil
}

// parseAffineConstraint parses "expr relop expr" and returns the
// normalized polynomial e such that the constraint holds iff e <= 0.
func parseAffineConstraint(text string, lookup func(string) (poly.Variable, bool)) (poly.Polynomial, error) {
	atom, err := NewFormulaParser(text, lookup).parseAtomPublic()
	if err != nil {
		return poly.Zero, err
	}
	//
	if atom.Relation == stl.GT {
		return atom.Expr.Neg(), nil
	}
	//
	return atom.Expr, nil
}

// parseAtomPublic exposes parseAtom to parse.go's single-atom directives
// without requiring the whole-formula Boolean/temporal grammar.
func (p *FormulaParser) parseAtomPublic() (stl.Atom, error) {
	f, err := p.parseAtom()
	if err != nil {
		return stl.Atom{}, err
	}
	//
	p.skipSpace()
	//
	if p.pos != len(p.src) {
		return stl.Atom{}, &ParseError{Message: "unexpected trailing input", Offset: p.pos}
	}
	//
	return f.(stl.Atom), nil
}

func parseDirection(m *Model, rest string) error {
	fields := strings.Fields(rest)
	n := len(m.StateVars)
	//
	if len(fields) != n+4 {
		return &ParseError{Message: fmt.Sprintf("direction requires %d coefficients followed by 'upper U lower L'", n)}
	}
	//
	row := make([]float64, n)
	//
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return &ParseError{Message: "direction coefficients must be numbers"}
		}
		//
		row[i] = v
	}
	//
	if fields[n] != "upper" || fields[n+2] != "lower" {
		return &ParseError{Message: "direction must end with 'upper U lower L'"}
	}
	//
	upper, err := strconv.ParseFloat(fields[n+1], 64)
	if err != nil {
		return &ParseError{Message: "direction upper bound must be a number"}
	}
	//
	lower, err := strconv.ParseFloat(fields[n+3], 64)
	if err != nil {
		return &ParseError{Message: "direction lower bound must be a number"}
	}
	//
	rows, cols := 0, n
	if m.Directions != nil {
		rows, cols = m.Directions.Dims()
	}
	data := make([]float64, 0, (rows+1)*cols)
	//
	for i := 0; i < rows; i++ {
		r := make([]float64, cols)
		mat.Row(r, i, m.Directions)
		data = append(data, r...)
	}
	//
	data = append(data, row...)
	m.Directions = mat.NewDense(rows+1, cols, data)
	m.Upper = append(m.Upper, upper)
	m.Lower = append(m.Lower, lower)
	//
	return nil
}

func parseTemplate(rest string) (bundle.Template, error) {
	fields := strings.Fields(rest)
	t := make(bundle.Template, len(fields))
	//
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, &ParseError{Message: "template indices must be integers"}
		}
		//
		t[i] = n
	}
	//
	return t, nil
}

func splitKeyword(line string) (keyword, rest string) {
	fields := strings.SplitN(line, " ", 2)
	//
	if len(fields) == 1 {
		return fields[0], ""
	}
	//
	return fields[0], strings.TrimSpace(fields[1])
}

func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	var lines []string
	//
	for scanner.Scan() {
		line := TrimComment(scanner.Text())
		line = strings.TrimSpace(line)
		//
		if line == "" {
			continue
		}
		//
		lines = append(lines, line)
	}
	//
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	//
	return lines, nil
}
