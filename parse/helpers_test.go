package parse_test

import (
	"github.com/revelaction/arcstd/parse"
)

// tree is a gold tree given by heads and labels indexed by word, root at 0.
type tree struct {
	heads  []int
	labels []string
}

func newTree(heads []int, labels []string) *tree {
	return &tree{heads: append([]int{-1}, heads...), labels: append([]string{""}, labels...)}
}

func (t *tree) Head(idx int) int     { return t.heads[idx] }
func (t *tree) Label(idx int) string { return t.labels[idx] }
func (t *tree) Dependants(idx int) []int {
	deps := []int{}
	for d, h := range t.heads {
		if d > 0 && h == idx {
			deps = append(deps, d)
		}
	}
	return deps
}

func (t *tree) arcs() []parse.Arc {
	arcs := []parse.Arc{}
	for d := 1; d < len(t.heads); d++ {
		arcs = append(arcs, parse.Arc{Head: t.heads[d], Dependent: d, Label: t.labels[d]})
	}
	return arcs
}

func bookAFlight() ([]parse.Word, *tree) {
	words := []parse.Word{{Form: "book", Tag: "VB"}, {Form: "a", Tag: "DT"}, {Form: "flight", Tag: "NN"}}
	return words, newTree([]int{0, 3, 1}, []string{"root", "det", "obj"})
}

// longer projective sentence with left and right dependants on several heads.
func morningFlight() ([]parse.Word, *tree) {
	words := []parse.Word{
		{Form: "I", Tag: "PRP"},
		{Form: "prefer", Tag: "VBP"},
		{Form: "the", Tag: "DT"},
		{Form: "morning", Tag: "NN"},
		{Form: "flight", Tag: "NN"},
		{Form: "through", Tag: "IN"},
		{Form: "Denver", Tag: "NNP"},
	}
	heads := []int{2, 0, 5, 5, 2, 7, 5}
	labels := []string{"nsubj", "root", "det", "compound", "obj", "case", "nmod"}
	return words, newTree(heads, labels)
}

func mustStep(t interface{ Fatalf(string, ...any) }, p *parse.PartialParse, ts ...parse.Transition) {
	for _, tr := range ts {
		if err := p.Step(tr); err != nil {
			t.Fatalf("step %s: %v", tr, err)
		}
	}
}
