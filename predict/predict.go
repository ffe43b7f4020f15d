// Package predict provides the predictors driving parse.ParseStates.
package predict

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/revelaction/arcstd/parse"
)

const (
	NameOracle   = "oracle"
	NameBaseline = "baseline"
)

var (
	ErrUntracked        = errors.New("predict: state has no gold tree")
	ErrUnknownPredictor = errors.New("predict: unknown predictor")
)

// Tracker is a predictor that needs the gold tree of each state.
type Tracker interface {
	Track(state *parse.PartialParse, g parse.GoldTree)
	// Untrack forgets a state that will not be proposed for again.
	Untrack(state *parse.PartialParse)
}

// NeedsGold reports whether the predictor reads gold trees, looking through
// Noisy wrappers.
func NeedsGold(p parse.Predictor) bool {
	for {
		n, ok := p.(*Noisy)
		if !ok {
			break
		}
		p = n.Inner()
	}
	_, ok := p.(Tracker)
	return ok
}

// Oracle proposes the gold transition of each tracked state. When the gold
// tree has no derivation from a state (non projective trees) it proposes the
// zero transition, which the driver drops.
//
// A state is forgotten once its last transition or its zero transition has
// been proposed.
type Oracle struct {
	mu    sync.Mutex
	trees map[*parse.PartialParse]parse.GoldTree
}

var (
	_ parse.Predictor = (*Oracle)(nil)
	_ Tracker         = (*Oracle)(nil)
)

func NewOracle() *Oracle {
	return &Oracle{trees: map[*parse.PartialParse]parse.GoldTree{}}
}

// Track registers the gold tree of the state. Complete states are never
// proposed for and are not kept.
func (o *Oracle) Track(state *parse.PartialParse, g parse.GoldTree) {
	if state.Complete() {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.trees[state] = g
}

func (o *Oracle) Untrack(state *parse.PartialParse) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.trees, state)
}

// Tracked is the number of states with a gold tree.
func (o *Oracle) Tracked() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.trees)
}

func (o *Oracle) Predict(states []*parse.PartialParse) ([]parse.Transition, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]parse.Transition, len(states))
	for i, s := range states {
		g, ok := o.trees[s]
		if !ok {
			return nil, fmt.Errorf("%w: position %d in batch", ErrUntracked, i)
		}

		t, err := s.Oracle(g)
		if err != nil {
			if errors.Is(err, parse.ErrNoDerivation) {
				delete(o.trees, s)
				continue
			}
			return nil, err
		}
		if completes(s, t) {
			delete(o.trees, s)
		}
		out[i] = t
	}
	return out, nil
}

// completes reports whether t is the last transition of s.
func completes(s *parse.PartialParse, t parse.Transition) bool {
	return t.Kind == parse.RightArc && s.Next() == s.Len() && len(s.Stack()) == 2
}

// Baseline builds a right branching chain: it shifts the whole sentence,
// attaches every word to its left neighbour with RootLabel for the first.
type Baseline struct {
	Label     string
	RootLabel string
}

var _ parse.Predictor = Baseline{}

func NewBaseline() Baseline {
	return Baseline{Label: "dep", RootLabel: "root"}
}

func (b Baseline) Predict(states []*parse.PartialParse) ([]parse.Transition, error) {
	out := make([]parse.Transition, len(states))
	for i, s := range states {
		switch {
		case s.Next() < s.Len():
			out[i] = parse.NewShift()
		case len(s.Stack()) > 2:
			out[i] = parse.NewRightArc(b.Label)
		default:
			out[i] = parse.NewRightArc(b.RootLabel)
		}
	}
	return out, nil
}

// Noisy replaces a fraction Rate of the proposals of the wrapped predictor
// with illegal ones. It is safe for concurrent use; with concurrent callers
// the sequence of replaced proposals is not reproducible.
type Noisy struct {
	inner parse.Predictor
	rate  float64

	mu  sync.Mutex
	rnd *rand.Rand
}

var (
	_ parse.Predictor = (*Noisy)(nil)
	_ Tracker         = (*Noisy)(nil)
)

func NewNoisy(inner parse.Predictor, rate float64, seed int64) *Noisy {
	return &Noisy{inner: inner, rate: rate, rnd: rand.New(rand.NewSource(seed))}
}

// Inner returns the wrapped predictor.
func (n *Noisy) Inner() parse.Predictor {
	return n.inner
}

// Track forwards to the wrapped predictor when it is a Tracker.
func (n *Noisy) Track(state *parse.PartialParse, g parse.GoldTree) {
	if t, ok := n.inner.(Tracker); ok {
		t.Track(state, g)
	}
}

// Untrack forwards to the wrapped predictor when it is a Tracker.
func (n *Noisy) Untrack(state *parse.PartialParse) {
	if t, ok := n.inner.(Tracker); ok {
		t.Untrack(state)
	}
}

func (n *Noisy) Predict(states []*parse.PartialParse) ([]parse.Transition, error) {
	out, err := n.inner.Predict(states)
	if err != nil {
		return nil, err
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	for i := range out {
		if i < len(states) && n.rnd.Float64() < n.rate {
			// the driver drops the state
			out[i] = Illegal(states[i])
			n.Untrack(states[i])
		}
	}
	return out, nil
}

// Illegal returns a transition that Step rejects for the state.
func Illegal(s *parse.PartialParse) parse.Transition {
	stack := s.Stack()
	switch {
	case s.Next() >= s.Len():
		return parse.NewShift()
	case len(stack) < 2 || stack[len(stack)-2] == 0:
		return parse.NewLeftArc("illegal")
	}
	return parse.Transition{}
}

var constructors = map[string]func() parse.Predictor{
	NameOracle:   func() parse.Predictor { return NewOracle() },
	NameBaseline: func() parse.Predictor { return NewBaseline() },
}

// Names returns the predictor names accepted by ByName.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for n := range constructors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ByName returns the named predictor, wrapped in Noisy when noise > 0.
func ByName(name string, noise float64, seed int64) (parse.Predictor, error) {
	c, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (valid: %v)", ErrUnknownPredictor, name, Names())
	}

	p := c()
	if noise > 0 {
		return NewNoisy(p, noise, seed), nil
	}
	return p, nil
}
