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

// Package format renders an engine result — a flowpipe, or a synthesized
// parameter-set/flowpipe pairing — in the two output shapes spec §6 names:
// a plain-text matrix-and-vector dump, and a structured JSON envelope.
package format

import (
	"fmt"
	"io"

	"github.com/sapogo/sapogo/pkg/polytope"
	"github.com/sapogo/sapogo/pkg/reach"
)

// WriteFlowpipeText dumps each step's polytope union as its constraint
// matrix A and offset vector b, one member per block, steps separated by
// a blank line.
func WriteFlowpipeText(w io.Writer, fp reach.Flowpipe) error {
	for i, u := range fp {
		if _, err := fmt.Fprintf(w, "step %d:\n", i); err != nil {
			return err
		}
		//
		if err := writeUnionText(w, u); err != nil {
			return err
		}
		//
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	//
	return nil
}

// WriteSynthesisText dumps a list of (parameter set, flowpipe) results as
// produced by synthesize_with_splits: one block per split-tree leaf.
func WriteSynthesisText(w io.Writer, results []*polytope.Union, flowpipes []reach.Flowpipe) error {
	for i, params := range results {
		if _, err := fmt.Fprintf(w, "result %d parameter set:\n", i); err != nil {
			return err
		}
		//
		if err := writeUnionText(w, params); err != nil {
			return err
		}
		//
		if i < len(flowpipes) {
			if _, err := fmt.Fprintf(w, "result %d flowpipe:\n", i); err != nil {
				return err
			}
			//
			if err := WriteFlowpipeText(w, flowpipes[i]); err != nil {
				return err
			}
		}
	}
	//
	return nil
}

func writeUnionText(w io.Writer, u *polytope.Union) error {
	if u == nil || u.IsEmpty() {
		_, err := fmt.Fprintln(w, "  (empty)")
		return err
	}
	//
	for j, p := range u.Members() {
		if _, err := fmt.Fprintf(w, "  member %d:\n", j); err != nil {
			return err
		}
		//
		m, n := p.Dims()
		//
		for r := 0; r < m; r++ {
			row, beta := p.Row(r)
			//
			if _, err := fmt.Fprintf(w, "    %v <= %v\n", row, beta); err != nil {
				return err
			}
		}
		//
		if m == 0 {
			if _, err := fmt.Fprintf(w, "    (unconstrained, %d dims)\n", n); err != nil {
				return err
			}
		}
	}
	//
	return nil
}
