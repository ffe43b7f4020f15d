package parse

import (
	"errors"
	"fmt"
)

// GoldTree is the read-only view of a gold dependency tree needed by the
// oracle. Indices follow the partial parse numbering, root at 0.
type GoldTree interface {
	// Head returns the gold head of idx, or -1 for the root.
	Head(idx int) int
	Label(idx int) string
	Dependants(idx int) []int
}

// Oracle returns the next transition on the path from p to the gold tree.
// Left-arc wins over right-arc, which wins over shift.
func (p *PartialParse) Oracle(g GoldTree) (Transition, error) {
	if p.Complete() {
		return Transition{}, ErrOracleExhausted
	}

	if len(p.stack) >= 2 {
		top, second := p.stack[len(p.stack)-1], p.stack[len(p.stack)-2]

		if second != 0 && g.Head(second) == top && p.resolved(g, second) {
			return NewLeftArc(g.Label(second)), nil
		}

		if g.Head(top) == second && p.resolved(g, top) {
			return NewRightArc(g.Label(top)), nil
		}
	}

	if p.next >= len(p.sentence) {
		return Transition{}, fmt.Errorf("%w: stack %v has no gold reduction", ErrNoDerivation, p.stack)
	}

	return NewShift(), nil
}

// resolved reports whether every gold dependant of idx is attached.
func (p *PartialParse) resolved(g GoldTree, idx int) bool {
	for _, d := range g.Dependants(idx) {
		if _, ok := p.Head(d); !ok {
			return false
		}
	}
	return true
}

// Derive runs the oracle from the initial configuration of words until the
// parse is complete and returns the transitions applied. Any failure along
// the way is reported as ErrNoDerivation.
func Derive(words []Word, g GoldTree) ([]Transition, error) {
	p := NewPartialParse(words)
	ts := make([]Transition, 0, 2*len(words))

	for !p.Complete() {
		t, err := p.Oracle(g)
		if err != nil {
			if errors.Is(err, ErrNoDerivation) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %w", ErrNoDerivation, err)
		}
		if err := p.Step(t); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNoDerivation, err)
		}
		ts = append(ts, t)
	}

	return ts, nil
}
