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
package termio

// FormattedText is a single run of text carrying one ANSI escape, the unit
// a Canvas writes and a widget.TextLine lays out chunk by chunk.
type FormattedText struct {
	runes  []rune
	escape AnsiEscape
}

// NewFormattedText wraps a string with the escape used to colour it when
// rendered.
func NewFormattedText(text string, escape AnsiEscape) FormattedText {
	return FormattedText{[]rune(text), escape}
}

// Len returns the display width of this chunk.
func (p FormattedText) Len() uint {
	return uint(len(p.runes))
}

// Clip truncates this chunk to the half-open rune range [start,end).
func (p *FormattedText) Clip(start, end uint) {
	n := uint(len(p.runes))
	//
	if start > n {
		start = n
	}
	//
	if end > n {
		end = n
	}
	//
	if start >= end {
		p.runes = nil
		return
	}
	//
	p.runes = p.runes[start:end]
}

// Bytes renders this chunk as its escape sequence, text and a trailing
// reset, ready to append to a terminal write buffer.
func (p FormattedText) Bytes() []byte {
	if len(p.runes) == 0 {
		return nil
	}
	//
	var out []byte
	//
	out = append(out, []byte(p.escape.Build())...)
	out = append(out, []byte(string(p.runes))...)
	out = append(out, []byte(ResetAnsiEscape().Build())...)
	//
	return out
}

// String returns the plain, unescaped text of this chunk.
func (p FormattedText) String() string {
	return string(p.runes)
}
