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
package format

import (
	"encoding/json"
	"io"

	"github.com/sapogo/sapogo/pkg/polytope"
	"github.com/sapogo/sapogo/pkg/reach"
)

// polytopeJSON is a polytope's wire form: {"A": [[...]], "b": [...]}.
type polytopeJSON struct {
	A [][]float64 `json:"A"`
	B []float64   `json:"b"`
}

// unionJSON is a polytope union's wire form: an array of polytopes.
type unionJSON []polytopeJSON

// envelope is the top-level structured-output object of spec §6.
type envelope struct {
	Variables  []string    `json:"variables"`
	Parameters []string    `json:"parameters"`
	Data       []dataEntry `json:"data"`
}

// dataEntry is one element of the envelope's data list: a bare flowpipe
// for REACH, or a parameter set paired with its flowpipe for SYNTH.
type dataEntry struct {
	ParameterSet unionJSON   `json:"parameter set,omitempty"`
	Flowpipe     []unionJSON `json:"flowpipe"`
}

func toPolytopeJSON(p *polytope.Polytope) polytopeJSON {
	m, _ := p.Dims()
	rows := make([][]float64, m)
	//
	for i := 0; i < m; i++ {
		row, _ := p.Row(i)
		rows[i] = row
	}
	//
	return polytopeJSON{A: rows, B: append([]float64{}, p.B()...)}
}

func toUnionJSON(u *polytope.Union) unionJSON {
	if u == nil {
		return unionJSON{}
	}
	//
	out := make(unionJSON, 0, u.Len())
	//
	for _, p := range u.Members() {
		out = append(out, toPolytopeJSON(p))
	}
	//
	return out
}

func toFlowpipeJSON(fp reach.Flowpipe) []unionJSON {
	out := make([]unionJSON, len(fp))
	//
	for i, u := range fp {
		out[i] = toUnionJSON(u)
	}
	//
	return out
}

// WriteReachJSON writes the structured REACH envelope: `data` is a
// single-element list wrapping the flowpipe.
func WriteReachJSON(w io.Writer, variables, parameters []string, fp reach.Flowpipe) error {
	env := envelope{
		Variables:  variables,
		Parameters: parameters,
		Data:       []dataEntry{{Flowpipe: toFlowpipeJSON(fp)}},
	}
	//
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	//
	return enc.Encode(env)
}

// WriteSynthesisJSON writes the structured SYNTH envelope: `data` is a
// list of {parameter set, flowpipe} entries, one per split-tree leaf that
// survived refinement — an empty list when every leaf's result was empty.
func WriteSynthesisJSON(w io.Writer, variables, parameters []string, results []*polytope.Union, flowpipes []reach.Flowpipe) error {
	entries := make([]dataEntry, 0, len(results))
	//
	for i, params := range results {
		entry := dataEntry{ParameterSet: toUnionJSON(params)}
		//
		if i < len(flowpipes) {
			entry.Flowpipe = toFlowpipeJSON(flowpipes[i])
		}
		//
		entries = append(entries, entry)
	}
	//
	env := envelope{
		Variables:  variables,
		Parameters: parameters,
		Data:       entries,
	}
	//
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	//
	return enc.Encode(env)
}
