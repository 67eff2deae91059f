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
package cmd

import (
	"fmt"

	"github.com/sapogo/sapogo/pkg/util/termio"
	"github.com/sapogo/sapogo/pkg/util/termio/widget"
)

// progressReporter renders the `-b` progress display named in spec §6: a
// single status line updated as the engine moves between coarse phases
// (model build, flowpipe construction, synthesis). A nil reporter is safe
// to call methods on, so callers do not need to guard every update behind
// the -b flag.
type progressReporter struct {
	term *termio.Terminal
	line *widget.TextLine
}

// newProgressReporter attaches to the controlling terminal, returning nil
// if -b was not requested or the terminal could not be attached (piped
// output, non-interactive shell).
func newProgressReporter(enabled bool) *progressReporter {
	if !enabled {
		return nil
	}
	//
	term, err := termio.NewTerminal()
	if err != nil {
		return nil
	}
	//
	line := widget.NewText()
	term.Add(line)
	//
	return &progressReporter{term, line}
}

// update replaces the status line's text and re-renders.
func (p *progressReporter) update(status string) {
	if p == nil {
		return
	}
	//
	p.line.Clear()
	p.line.Add(termio.NewFormattedText(fmt.Sprintf("sapo: %s", status), termio.NewAnsiEscape().FgColour(termio.TERM_CYAN)))
	//
	_ = p.term.Render()
}

// close restores the terminal to its prior state.
func (p *progressReporter) close() {
	if p == nil {
		return
	}
	//
	_ = p.term.Restore()
}
