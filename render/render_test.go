package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/revelaction/arcstd/parse"
	sent "github.com/revelaction/arcstd/sentence"
)

func bookAFlight() []parse.Word {
	return []parse.Word{{Form: "book", Tag: "VB"}, {Form: "a", Tag: "DT"}, {Form: "flight", Tag: "NN"}}
}

func TestArcs(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	p := parse.NewPartialParse(bookAFlight())
	r.Arcs([]parse.Arc{
		{Head: 1, Dependent: 3, Label: "obj"},
		{Head: 3, Dependent: 2, Label: "det"},
		{Head: 0, Dependent: 1, Label: "root"},
	}, p.Sentence())

	want := "ROOT(0) -root-> book(1)\nflight(3) -det-> a(2)\nbook(1) -obj-> flight(3)\n"
	if buf.String() != want {
		t.Errorf("got\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestState(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	p := parse.NewPartialParse(bookAFlight())
	for _, tr := range []parse.Transition{parse.NewShift(), parse.NewShift(), parse.NewShift(), parse.NewLeftArc("det")} {
		if err := p.Step(tr); err != nil {
			t.Fatalf("step: %v", err)
		}
	}
	r.State(p)

	out := buf.String()
	for _, want := range []string{
		"stack:  [ROOT(0) book(1) flight(3)]",
		"buffer: []",
		"arcs:   1 (partial)",
		"flight(3) -det-> a(2)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%s", want, out)
		}
	}
}

func TestColor(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)
	r.HasColor = true

	r.Tokens(sent.Sentence{Tokens: []sent.Token{{Id: 1, Text: "go", Pos: "VERB", Head: 0, Dep: "root"}}})
	if !strings.Contains(buf.String(), Yellow256+"root"+Off) {
		t.Errorf("expected colored label in %q", buf.String())
	}
}

func TestTransitionsAndSentence(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.Sentence(sent.Sentence{Tokens: []sent.Token{{Text: "book"}, {Text: "a"}, {Text: "flight"}}}, "> ")
	r.Transitions([]parse.Transition{parse.NewShift(), parse.NewRightArc("root")}, "")

	want := "> book a flight\nSH RA-root\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestTitle(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{})
	r.AddDocName(1, "en_ewt-ud-train")
	r.AddDocName(2, "a very long document name indeed")

	if got := r.Title(1); got != "en_ewt-ud-train     " {
		t.Errorf("got %q", got)
	}
	if got := r.Title(2); got != "a very long document" {
		t.Errorf("got %q", got)
	}
}
