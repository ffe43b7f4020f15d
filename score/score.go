// Package score computes attachment scores of parser output against gold
// arcs.
package score

import (
	"github.com/revelaction/arcstd/parse"
)

type Handler struct {
	sentences int
	tokens    int
	unlabeled int
	labeled   int
}

// Scores holds the unlabeled and labeled attachment scores, in [0, 1].
type Scores struct {
	Sentences int     `json:"sentences"`
	Tokens    int     `json:"tokens"`
	UAS       float64 `json:"uas"`
	LAS       float64 `json:"las"`
}

func NewHandler() *Handler {
	return &Handler{}
}

// Aggregate adds one sentence. Every expected arc is a token; a predicted arc
// with the same dependent and head is an unlabeled match, and a labeled one
// when the label matches too.
func (h *Handler) Aggregate(predicted, expected []parse.Arc) {
	byDep := make(map[int]parse.Arc, len(predicted))
	for _, a := range predicted {
		byDep[a.Dependent] = a
	}

	h.sentences++
	h.tokens += len(expected)
	for _, e := range expected {
		p, ok := byDep[e.Dependent]
		if !ok || p.Head != e.Head {
			continue
		}
		h.unlabeled++
		if p.Label == e.Label {
			h.labeled++
		}
	}
}

func (h *Handler) Get() Scores {
	s := Scores{Sentences: h.sentences, Tokens: h.tokens}
	if h.tokens == 0 {
		return s
	}
	s.UAS = float64(h.unlabeled) / float64(h.tokens)
	s.LAS = float64(h.labeled) / float64(h.tokens)
	return s
}
