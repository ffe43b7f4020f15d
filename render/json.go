package render

import (
	"encoding/json"
	"io"

	"github.com/revelaction/arcstd/parse"
)

// Result is the parse of one sentence.
type Result struct {
	DocId      int         `json:"doc"`
	SentenceId int         `json:"sentence"`
	Text       string      `json:"text"`
	Predictor  string      `json:"predictor,omitempty"`
	Complete   bool        `json:"complete"`
	Arcs       []parse.Arc `json:"arcs"`
}

// JSONRenderer writes parse results as JSON to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Render serializes the results as a JSON array.
func (r *JSONRenderer) Render(results []Result) error {
	if results == nil {
		results = []Result{}
	}
	return json.NewEncoder(r.W).Encode(results)
}
