// Package parse implements the arc-standard transition system: the partial
// parse of a sentence, the transitions that build its dependency tree, the
// static oracle deriving transitions from a gold tree and the batch driver
// that advances many partial parses with a predictor.
package parse

import (
	"fmt"
)

const (
	// RootTag is the part-of-speech tag given exclusively to the root.
	RootTag = "TOP"

	// All requests every dependant in Leftmost and Rightmost.
	All = -1

	noHead = -1
)

// Word is a word of the sentence and its part-of-speech tag.
type Word struct {
	Form string `json:"form"`
	Tag  string `json:"tag"`
}

// Arc is the dependency relation Head -Label-> Dependent, in sentence
// indices where 0 is the root.
type Arc struct {
	Head      int    `json:"head"`
	Dependent int    `json:"dep"`
	Label     string `json:"label"`
}

func (a Arc) String() string {
	return fmt.Sprintf("%d -%s-> %d", a.Head, a.Label, a.Dependent)
}

// PartialParse is a snapshot of an arc-standard parse: the sentence, the
// stack, the next buffer index and the arcs built so far.
//
// Index 0 of the sentence is the root (empty form, RootTag). The stack is
// bottom to top. When next == Len() the buffer is empty. Step is the only
// mutator.
type PartialParse struct {
	sentence []Word
	stack    []int
	next     int
	arcs     []Arc

	// heads[i] is the index of the head of word i, or noHead.
	heads []int
}

// NewPartialParse returns the initial configuration for the words: root on
// the stack, every word in the buffer and no arcs.
func NewPartialParse(words []Word) *PartialParse {
	sentence := make([]Word, 0, len(words)+1)
	sentence = append(sentence, Word{Tag: RootTag})
	sentence = append(sentence, words...)

	heads := make([]int, len(sentence))
	for i := range heads {
		heads[i] = noHead
	}

	return &PartialParse{
		sentence: sentence,
		stack:    []int{0},
		next:     1,
		arcs:     []Arc{},
		heads:    heads,
	}
}

// Len is the number of sentence positions, root included.
func (p *PartialParse) Len() int {
	return len(p.sentence)
}

// Word returns the word at sentence index i.
func (p *PartialParse) Word(i int) Word {
	return p.sentence[i]
}

// Sentence returns a copy of the sentence, root at index 0.
func (p *PartialParse) Sentence() []Word {
	return append([]Word(nil), p.sentence...)
}

// Stack returns a copy of the stack, bottom first.
func (p *PartialParse) Stack() []int {
	return append([]int(nil), p.stack...)
}

// Next is the next buffer index that can be shifted.
func (p *PartialParse) Next() int {
	return p.next
}

// Arcs returns a copy of the arcs in the order they were built.
func (p *PartialParse) Arcs() []Arc {
	return append([]Arc{}, p.arcs...)
}

// Head returns the head of the word at dep, if it has been attached.
func (p *PartialParse) Head(dep int) (int, bool) {
	if dep < 0 || dep >= len(p.heads) || p.heads[dep] == noHead {
		return 0, false
	}
	return p.heads[dep], true
}

// Label returns the label of the arc attaching dep, if any.
func (p *PartialParse) Label(dep int) (string, bool) {
	if _, ok := p.Head(dep); !ok {
		return "", false
	}
	for _, a := range p.arcs {
		if a.Dependent == dep {
			return a.Label, true
		}
	}
	return "", false
}

// Complete reports whether only the root is on the stack and the buffer is
// empty.
func (p *PartialParse) Complete() bool {
	return len(p.stack) == 1 && p.next == len(p.sentence)
}

// Clone returns an independent copy of the partial parse.
func (p *PartialParse) Clone() *PartialParse {
	return &PartialParse{
		sentence: p.sentence,
		stack:    append([]int(nil), p.stack...),
		next:     p.next,
		arcs:     append([]Arc{}, p.arcs...),
		heads:    append([]int(nil), p.heads...),
	}
}

// Step applies the transition. On error the partial parse is unchanged.
func (p *PartialParse) Step(t Transition) error {
	switch t.Kind {
	case Shift:
		if p.next >= len(p.sentence) {
			return fmt.Errorf("%w: shift with empty buffer", ErrIllegalTransition)
		}
		p.stack = append(p.stack, p.next)
		p.next++

	case LeftArc:
		if len(p.stack) < 2 {
			return fmt.Errorf("%w: left-arc needs two stack elements, have %d", ErrIllegalTransition, len(p.stack))
		}
		if t.Label == "" {
			return fmt.Errorf("%w: left-arc without label", ErrIllegalTransition)
		}
		top, second := p.stack[len(p.stack)-1], p.stack[len(p.stack)-2]
		if second == 0 {
			return fmt.Errorf("%w: root can not be a dependent", ErrIllegalTransition)
		}
		p.attach(top, second, t.Label)
		p.stack = append(p.stack[:len(p.stack)-2], top)

	case RightArc:
		if len(p.stack) < 2 {
			return fmt.Errorf("%w: right-arc needs two stack elements, have %d", ErrIllegalTransition, len(p.stack))
		}
		if t.Label == "" {
			return fmt.Errorf("%w: right-arc without label", ErrIllegalTransition)
		}
		top, second := p.stack[len(p.stack)-1], p.stack[len(p.stack)-2]
		p.attach(second, top, t.Label)
		p.stack = p.stack[:len(p.stack)-1]

	default:
		return fmt.Errorf("%w: %v", ErrUnknownTransition, t.Kind)
	}

	return nil
}

// Parse applies the transitions in order and returns the arcs. It stops at
// the first failing transition.
func (p *PartialParse) Parse(ts []Transition) ([]Arc, error) {
	for i, t := range ts {
		if err := p.Step(t); err != nil {
			return p.Arcs(), fmt.Errorf("transition %d (%s): %w", i, t, err)
		}
	}
	return p.Arcs(), nil
}

func (p *PartialParse) attach(head, dep int, label string) {
	p.arcs = append(p.arcs, Arc{Head: head, Dependent: dep, Label: label})
	p.heads[dep] = head
}

// String renders the configuration as stack | buffer start.
func (p *PartialParse) String() string {
	return fmt.Sprintf("stack=%v next=%d/%d arcs=%d", p.stack, p.next, len(p.sentence), len(p.arcs))
}
