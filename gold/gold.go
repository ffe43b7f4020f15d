// Package gold holds the annotated dependency tree of a sentence, the
// reference the oracle derives transitions from and the parser is scored
// against.
package gold

import (
	"errors"
	"fmt"

	"github.com/revelaction/arcstd/parse"
	sent "github.com/revelaction/arcstd/sentence"
)

// ErrInvalidTree is returned when heads do not form a tree rooted at 0.
var ErrInvalidTree = errors.New("gold: invalid dependency tree")

// Tree is a dependency tree over sentence indices, root at 0. It implements
// parse.GoldTree.
type Tree struct {
	heads      []int
	labels     []string
	dependants [][]int
}

var _ parse.GoldTree = (*Tree)(nil)

// New builds the tree of the gold heads and relations of the sentence.
func New(s sent.Sentence) (*Tree, error) {
	heads := make([]int, len(s.Tokens))
	labels := make([]string, len(s.Tokens))
	for i, tok := range s.Tokens {
		if tok.Id != i+1 {
			return nil, fmt.Errorf("sentence %d: %w: token %d has id %d", s.Id, ErrInvalidTree, i+1, tok.Id)
		}
		heads[i] = tok.Head
		labels[i] = tok.Dep
	}

	t, err := FromHeads(heads, labels)
	if err != nil {
		return nil, fmt.Errorf("sentence %d: %w", s.Id, err)
	}
	return t, nil
}

// FromHeads builds a tree where heads[i] and labels[i] belong to word i+1.
func FromHeads(heads []int, labels []string) (*Tree, error) {
	if len(heads) != len(labels) {
		return nil, fmt.Errorf("%w: %d heads for %d labels", ErrInvalidTree, len(heads), len(labels))
	}

	n := len(heads) + 1
	t := &Tree{
		heads:      make([]int, n),
		labels:     make([]string, n),
		dependants: make([][]int, n),
	}
	t.heads[0] = -1

	for i, h := range heads {
		d := i + 1
		if h < 0 || h >= n {
			return nil, fmt.Errorf("%w: head %d of word %d out of range", ErrInvalidTree, h, d)
		}
		if h == d {
			return nil, fmt.Errorf("%w: word %d is its own head", ErrInvalidTree, d)
		}
		t.heads[d] = h
		t.labels[d] = labels[i]
		t.dependants[h] = append(t.dependants[h], d)
	}

	if n > 1 && len(t.dependants[0]) == 0 {
		return nil, fmt.Errorf("%w: no word attached to root", ErrInvalidTree)
	}

	if err := t.checkAcyclic(); err != nil {
		return nil, err
	}

	return t, nil
}

// checkAcyclic walks up from every word; a walk longer than the sentence
// never reaches the root.
func (t *Tree) checkAcyclic() error {
	for d := 1; d < len(t.heads); d++ {
		h, steps := t.heads[d], 0
		for h != 0 {
			h = t.heads[h]
			steps++
			if steps > len(t.heads) {
				return fmt.Errorf("%w: cycle through word %d", ErrInvalidTree, d)
			}
		}
	}
	return nil
}

// Len is the number of words, root excluded.
func (t *Tree) Len() int {
	return len(t.heads) - 1
}

// Head returns the head of idx, -1 for the root.
func (t *Tree) Head(idx int) int {
	return t.heads[idx]
}

func (t *Tree) Label(idx int) string {
	return t.labels[idx]
}

// Dependants returns the direct dependants of idx in sentence order.
func (t *Tree) Dependants(idx int) []int {
	return t.dependants[idx]
}

// Arcs returns one arc per word, ordered by dependent.
func (t *Tree) Arcs() []parse.Arc {
	arcs := make([]parse.Arc, 0, t.Len())
	for d := 1; d < len(t.heads); d++ {
		arcs = append(arcs, parse.Arc{Head: t.heads[d], Dependent: d, Label: t.labels[d]})
	}
	return arcs
}

// Projective reports whether no two arcs cross when drawn above the
// sentence, root first.
func (t *Tree) Projective() bool {
	for a := 1; a < len(t.heads); a++ {
		i, j := span(t.heads[a], a)
		for b := a + 1; b < len(t.heads); b++ {
			k, l := span(t.heads[b], b)
			if (i < k && k < j && j < l) || (k < i && i < l && l < j) {
				return false
			}
		}
	}
	return true
}

func span(h, d int) (int, int) {
	if h < d {
		return h, d
	}
	return d, h
}
