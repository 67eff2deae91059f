package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sapogo/sapogo/pkg/polytope"
	"github.com/sapogo/sapogo/pkg/reach"
)

func unitSquareUnion() *polytope.Union {
	p := polytope.FromExpressions(2, []polytope.Expression{
		{Coeffs: []float64{1, 0}, Offset: 1},
		{Coeffs: []float64{-1, 0}, Offset: 0},
		{Coeffs: []float64{0, 1}, Offset: 1},
		{Coeffs: []float64{0, -1}, Offset: 0},
	})
	u := polytope.NewUnion()
	u.Add(p)
	//
	return u
}

func Test_WriteFlowpipeText(t *testing.T) {
	fp := reach.Flowpipe{unitSquareUnion(), unitSquareUnion()}
	//
	var buf bytes.Buffer
	if err := WriteFlowpipeText(&buf, fp); err != nil {
		t.Fatalf("WriteFlowpipeText: %v", err)
	}
	//
	out := buf.String()
	//
	if !strings.Contains(out, "step 0:") || !strings.Contains(out, "step 1:") {
		t.Errorf("expected both step headers, got:\n%s", out)
	}
	//
	if !strings.Contains(out, "member 0:") {
		t.Errorf("expected a member block, got:\n%s", out)
	}
}

func Test_WriteFlowpipeText_EmptyUnion(t *testing.T) {
	fp := reach.Flowpipe{polytope.NewUnion()}
	//
	var buf bytes.Buffer
	if err := WriteFlowpipeText(&buf, fp); err != nil {
		t.Fatalf("WriteFlowpipeText: %v", err)
	}
	//
	if !strings.Contains(buf.String(), "(empty)") {
		t.Errorf("expected the empty-union marker, got:\n%s", buf.String())
	}
}

func Test_WriteSynthesisText(t *testing.T) {
	results := []*polytope.Union{unitSquareUnion()}
	flowpipes := []reach.Flowpipe{{unitSquareUnion()}}
	//
	var buf bytes.Buffer
	if err := WriteSynthesisText(&buf, results, flowpipes); err != nil {
		t.Fatalf("WriteSynthesisText: %v", err)
	}
	//
	out := buf.String()
	//
	if !strings.Contains(out, "result 0 parameter set:") || !strings.Contains(out, "result 0 flowpipe:") {
		t.Errorf("expected both result headers, got:\n%s", out)
	}
}

func Test_WriteReachJSON_Shape(t *testing.T) {
	fp := reach.Flowpipe{unitSquareUnion()}
	//
	var buf bytes.Buffer
	if err := WriteReachJSON(&buf, []string{"x", "y"}, nil, fp); err != nil {
		t.Fatalf("WriteReachJSON: %v", err)
	}
	//
	var decoded struct {
		Variables  []string `json:"variables"`
		Parameters []string `json:"parameters"`
		Data       []struct {
			Flowpipe [][]struct {
				A [][]float64 `json:"A"`
				B []float64   `json:"b"`
			} `json:"flowpipe"`
		} `json:"data"`
	}
	//
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("json.Unmarshal: %v\n%s", err, buf.String())
	}
	//
	if len(decoded.Variables) != 2 || decoded.Variables[0] != "x" || decoded.Variables[1] != "y" {
		t.Errorf("expected variables [x y], got %v", decoded.Variables)
	}
	//
	if len(decoded.Data) != 1 {
		t.Fatalf("expected a single data entry, got %d", len(decoded.Data))
	}
	//
	if len(decoded.Data[0].Flowpipe) != 1 || len(decoded.Data[0].Flowpipe[0]) != 1 {
		t.Fatalf("expected one flowpipe step with one polytope member, got %+v", decoded.Data[0].Flowpipe)
	}
	//
	member := decoded.Data[0].Flowpipe[0][0]
	if len(member.A) != 4 || len(member.B) != 4 {
		t.Errorf("expected a 4-row unit square constraint matrix, got A=%v b=%v", member.A, member.B)
	}
}

func Test_WriteSynthesisJSON_EmptyResults(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSynthesisJSON(&buf, []string{"x"}, []string{"a", "b"}, nil, nil); err != nil {
		t.Fatalf("WriteSynthesisJSON: %v", err)
	}
	//
	var decoded struct {
		Parameters []string        `json:"parameters"`
		Data       []map[string]any `json:"data"`
	}
	//
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("json.Unmarshal: %v\n%s", err, buf.String())
	}
	//
	if len(decoded.Parameters) != 2 {
		t.Errorf("expected 2 parameters, got %v", decoded.Parameters)
	}
	//
	if len(decoded.Data) != 0 {
		t.Errorf("expected an empty data list, got %v", decoded.Data)
	}
}
