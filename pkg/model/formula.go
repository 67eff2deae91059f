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
	"strconv"
	"strings"

	"github.com/sapogo/sapogo/pkg/poly"
	"github.com/sapogo/sapogo/pkg/stl"
)

// FormulaParser reads the textual STL surface syntax the plain-text model
// format embeds for the "stl:" directive:
//
//	phi   := orExpr
//	orExpr  := andExpr ( "||" andExpr )*
//	andExpr := untilExpr ( "&&" untilExpr )*
//	untilExpr := unary ( "U" "[" INT "," INT "]" unary )?
//	unary := "!" unary | "G" bound "(" phi ")" | "F" bound "(" phi ")"
//	       | "(" phi ")" | atom
//	atom  := expr relop expr
//	relop := "<=" | "<" | ">=" | ">"
//	bound := "[" INT "," INT "]"
//
// relop "<" is read as "<=" and ">" as ">=": the engine works over closed
// half-spaces throughout, so strictness carries no distinct semantics here.
type FormulaParser struct {
	src    string
	pos    int
	lookup func(string) (poly.Variable, bool)
}

// NewFormulaParser constructs a parser over src, resolving state and
// parameter names via lookup.
func NewFormulaParser(src string, lookup func(string) (poly.Variable, bool)) *FormulaParser {
	return &FormulaParser{src: src, lookup: lookup}
}

// Parse consumes the entire input and returns the resulting formula.
func (p *FormulaParser) Parse() (stl.Formula, error) {
	f, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	//
	p.skipSpace()
	//
	if p.pos != len(p.src) {
		return nil, &ParseError{Message: "unexpected trailing input", Offset: p.pos}
	}
	//
	return f, nil
}

func (p *FormulaParser) parseOr() (stl.Formula, error) {
	lhs, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	//
	for p.consumeToken("||") {
		rhs, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		//
		lhs = stl.Disjunction{Left: lhs, Right: rhs}
	}
	//
	return lhs, nil
}

func (p *FormulaParser) parseAnd() (stl.Formula, error) {
	lhs, err := p.parseUntil()
	if err != nil {
		return nil, err
	}
	//
	for p.consumeToken("&&") {
		rhs, err := p.parseUntil()
		if err != nil {
			return nil, err
		}
		//
		lhs = stl.Conjunction{Left: lhs, Right: rhs}
	}
	//
	return lhs, nil
}

func (p *FormulaParser) parseUntil() (stl.Formula, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	//
	p.skipSpace()
	//
	if !p.consumeToken("U") {
		return lhs, nil
	}
	//
	a, b, err := p.parseBound()
	if err != nil {
		return nil, err
	}
	//
	rhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	//
	return stl.Until{A: a, B: b, Left: lhs, Right: rhs}, nil
}

func (p *FormulaParser) parseUnary() (stl.Formula, error) {
	p.skipSpace()
	//
	switch {
	case p.consumeToken("!"):
		sub, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		//
		return stl.Negation{Sub: sub}, nil
	case p.consumeToken("G"):
		return p.parseTemporal(func(a, b int, sub stl.Formula) stl.Formula {
			return stl.Always{A: a, B: b, Sub: sub}
		})
	case p.consumeToken("F"):
		return p.parseTemporal(func(a, b int, sub stl.Formula) stl.Formula {
			return stl.Eventually{A: a, B: b, Sub: sub}
		})
	case p.consumeToken("("):
		sub, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		//
		p.skipSpace()
		//
		if !p.consumeToken(")") {
			return nil, &ParseError{Message: "expected ')'", Offset: p.pos}
		}
		//
		return sub, nil
	default:
		return p.parseAtom()
	}
}

func (p *FormulaParser) parseTemporal(build func(a, b int, sub stl.Formula) stl.Formula) (stl.Formula, error) {
	a, b, err := p.parseBound()
	if err != nil {
		return nil, err
	}
	//
	p.skipSpace()
	//
	if !p.consumeToken("(") {
		return nil, &ParseError{Message: "expected '(' after temporal bound", Offset: p.pos}
	}
	//
	sub, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	//
	p.skipSpace()
	//
	if !p.consumeToken(")") {
		return nil, &ParseError{Message: "expected ')'", Offset: p.pos}
	}
	//
	return build(a, b, sub), nil
}

func (p *FormulaParser) parseBound() (int, int, error) {
	p.skipSpace()
	//
	if !p.consumeToken("[") {
		return 0, 0, &ParseError{Message: "expected '[' opening a time bound", Offset: p.pos}
	}
	//
	a, err := p.parseInt()
	if err != nil {
		return 0, 0, err
	}
	//
	p.skipSpace()
	//
	if !p.consumeToken(",") {
		return 0, 0, &ParseError{Message: "expected ',' in time bound", Offset: p.pos}
	}
	//
	b, err := p.parseInt()
	if err != nil {
		return 0, 0, err
	}
	//
	p.skipSpace()
	//
	if !p.consumeToken("]") {
		return 0, 0, &ParseError{Message: "expected ']' closing a time bound", Offset: p.pos}
	}
	//
	if a > b {
		return 0, 0, &ValidationError{Reason: "temporal bound lower endpoint exceeds upper endpoint"}
	}
	//
	return a, b, nil
}

func (p *FormulaParser) parseInt() (int, error) {
	p.skipSpace()
	//
	start := p.pos
	//
	if p.peek() == '-' {
		p.pos++
	}
	//
	for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
		p.pos++
	}
	//
	if p.pos == start || (p.pos == start+1 && p.src[start] == '-') {
		return 0, &ParseError{Message: "expected integer", Offset: start}
	}
	//
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return 0, &ParseError{Message: "invalid integer", Offset: start}
	}
	//
	return n, nil
}

func (p *FormulaParser) parseAtom() (stl.Formula, error) {
	lhs, next, err := p.parseSubExpr()
	if err != nil {
		return nil, err
	}
	//
	p.pos = next
	p.skipSpace()
	//
	relation, ok := p.consumeRelop()
	if !ok {
		return nil, &ParseError{Message: "expected comparison operator", Offset: p.pos}
	}
	//
	rhs, next, err := p.parseSubExpr()
	if err != nil {
		return nil, err
	}
	//
	p.pos = next
	//
	return stl.Atom{Expr: lhs.Sub(rhs), Relation: relation}, nil
}

// parseSubExpr parses an arithmetic expression starting at p.pos without
// requiring it to consume the rest of the input, returning the position
// just past the parsed expression.
func (p *FormulaParser) parseSubExpr() (poly.Polynomial, int, error) {
	sub := &ExprParser{src: p.src, pos: p.pos, lookup: p.lookup}
	//
	e, err := sub.parseExpr()
	if err != nil {
		return poly.Zero, 0, err
	}
	//
	return e, sub.pos, nil
}

func (p *FormulaParser) consumeRelop() (stl.Relation, bool) {
	switch {
	case strings.HasPrefix(p.src[p.pos:], "<="):
		p.pos += 2
		return stl.LE, true
	case strings.HasPrefix(p.src[p.pos:], "<"):
		p.pos++
		return stl.LE, true
	case strings.HasPrefix(p.src[p.pos:], ">="):
		p.pos += 2
		return stl.GT, true
	case strings.HasPrefix(p.src[p.pos:], ">"):
		p.pos++
		return stl.GT, true
	default:
		return 0, false
	}
}

func (p *FormulaParser) consumeToken(tok string) bool {
	p.skipSpace()
	//
	if !strings.HasPrefix(p.src[p.pos:], tok) {
		return false
	}
	//
	// Guard alphabetic keywords ("G", "F", "U") against matching a longer
	// identifier prefix (e.g. "Until" or a variable named "G0").
	if isIdentStart(tok[0]) {
		endsAt := p.pos + len(tok)
		if endsAt < len(p.src) && isIdentPart(p.src[endsAt]) {
			return false
		}
	}
	//
	p.pos += len(tok)
	//
	return true
}

func (p *FormulaParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *FormulaParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	//
	return p.src[p.pos]
}
