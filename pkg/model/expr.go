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
	"unicode"

	"github.com/sapogo/sapogo/pkg/poly"
)

// ExprParser is a small recursive-descent parser turning a textual affine
// or polynomial expression over declared variable names into a
// poly.Polynomial. It is the internal front-end pkg/model uses to read
// dynamics, atoms and parameter-region bounds from the plain-text model
// format; spec §6 treats the full input parser as an external
// collaborator specified only by its structural contract, so this parser
// makes no claim to any particular file grammar beyond what pkg/model
// itself consumes.
type ExprParser struct {
	src    string
	pos    int
	lookup func(string) (poly.Variable, bool)
}

// NewExprParser constructs a parser over src, resolving identifiers via
// lookup.
func NewExprParser(src string, lookup func(string) (poly.Variable, bool)) *ExprParser {
	return &ExprParser{src: src, lookup: lookup}
}

// Parse consumes the entire input and returns the resulting polynomial.
func (p *ExprParser) Parse() (poly.Polynomial, error) {
	p.skipSpace()
	//
	e, err := p.parseExpr()
	if err != nil {
		return poly.Zero, err
	}
	//
	p.skipSpace()
	//
	if p.pos != len(p.src) {
		return poly.Zero, &ParseError{Message: "unexpected trailing input", Offset: p.pos}
	}
	//
	return e, nil
}

func (p *ExprParser) parseExpr() (poly.Polynomial, error) {
	lhs, err := p.parseTerm()
	if err != nil {
		return poly.Zero, err
	}
	//
	for {
		p.skipSpace()
		//
		switch p.peek() {
		case '+':
			p.pos++
			//
			rhs, err := p.parseTerm()
			if err != nil {
				return poly.Zero, err
			}
			//
			lhs = lhs.Add(rhs)
		case '-':
			p.pos++
			//
			rhs, err := p.parseTerm()
			if err != nil {
				return poly.Zero, err
			}
			//
			lhs = lhs.Sub(rhs)
		default:
			return lhs, nil
		}
	}
}

func (p *ExprParser) parseTerm() (poly.Polynomial, error) {
	lhs, err := p.parsePower()
	if err != nil {
		return poly.Zero, err
	}
	//
	for {
		p.skipSpace()
		//
		if p.peek() != '*' {
			return lhs, nil
		}
		//
		p.pos++
		//
		rhs, err := p.parsePower()
		if err != nil {
			return poly.Zero, err
		}
		//
		lhs = lhs.Mul(rhs)
	}
}

func (p *ExprParser) parsePower() (poly.Polynomial, error) {
	base, err := p.parseUnary()
	if err != nil {
		return poly.Zero, err
	}
	//
	p.skipSpace()
	//
	if p.peek() != '^' {
		return base, nil
	}
	//
	p.pos++
	p.skipSpace()
	//
	start := p.pos
	//
	for p.pos < len(p.src) && unicode.IsDigit(rune(p.src[p.pos])) {
		p.pos++
	}
	//
	if p.pos == start {
		return poly.Zero, &ParseError{Message: "expected integer exponent", Offset: p.pos}
	}
	//
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return poly.Zero, &ParseError{Message: "invalid exponent", Offset: start}
	}
	//
	return base.Pow(uint(n)), nil
}

func (p *ExprParser) parseUnary() (poly.Polynomial, error) {
	p.skipSpace()
	//
	if p.peek() == '-' {
		p.pos++
		//
		e, err := p.parseUnary()
		if err != nil {
			return poly.Zero, err
		}
		//
		return e.Neg(), nil
	}
	//
	if p.peek() == '+' {
		p.pos++
		return p.parseUnary()
	}
	//
	return p.parsePrimary()
}

func (p *ExprParser) parsePrimary() (poly.Polynomial, error) {
	p.skipSpace()
	//
	switch {
	case p.peek() == '(':
		p.pos++
		//
		e, err := p.parseExpr()
		if err != nil {
			return poly.Zero, err
		}
		//
		p.skipSpace()
		//
		if p.peek() != ')' {
			return poly.Zero, &ParseError{Message: "expected ')'", Offset: p.pos}
		}
		//
		p.pos++
		//
		return e, nil
	case isDigit(p.peek()) || p.peek() == '.':
		return p.parseNumber()
	case isIdentStart(p.peek()):
		return p.parseIdent()
	default:
		return poly.Zero, &ParseError{Message: "unexpected character", Offset: p.pos}
	}
}

func (p *ExprParser) parseNumber() (poly.Polynomial, error) {
	start := p.pos
	//
	for p.pos < len(p.src) && (isDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
		p.pos++
	}
	//
	v, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return poly.Zero, &ParseError{Message: "invalid number", Offset: start}
	}
	//
	return poly.Constant(v), nil
}

func (p *ExprParser) parseIdent() (poly.Polynomial, error) {
	start := p.pos
	//
	for p.pos < len(p.src) && isIdentPart(p.src[p.pos]) {
		p.pos++
	}
	//
	name := p.src[start:p.pos]
	//
	v, ok := p.lookup(name)
	if !ok {
		return poly.Zero, &ParseError{Message: "unknown identifier " + strconv.Quote(name), Offset: start}
	}
	//
	return poly.Linear(1, v), nil
}

func (p *ExprParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *ExprParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	//
	return p.src[p.pos]
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

// TrimComment strips a trailing "# ..." line comment, mirroring the plain-
// text model format's comment convention.
func TrimComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	//
	return line
}
