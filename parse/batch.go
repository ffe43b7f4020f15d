package parse

import (
	"errors"
	"fmt"

	"github.com/revelaction/arcstd/logging"
)

// Predictor proposes one transition per state, in the order of states.
type Predictor interface {
	Predict(states []*PartialParse) ([]Transition, error)
}

// PredictorFunc adapts a function to the Predictor interface.
type PredictorFunc func(states []*PartialParse) ([]Transition, error)

func (f PredictorFunc) Predict(states []*PartialParse) ([]Transition, error) {
	return f(states)
}

type options struct {
	logger   *logging.Logger
	progress func(done, total int)
	dropped  func(pos int, err error)
}

// Option configures the batch driver.
type Option func(*options)

// WithLogger logs every round at DEBUG and every dropped state at WARN.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithProgress is called each time a state is finished, completed or dropped.
func WithProgress(f func(done, total int)) Option {
	return func(o *options) { o.progress = f }
}

// WithDropped is called with the input position and the engine error of a
// state removed from the pool after an illegal proposal.
func WithDropped(f func(pos int, err error)) Option {
	return func(o *options) { o.dropped = f }
}

func newOptions(opts []Option) *options {
	o := &options{logger: logging.NopLogger()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// item is a live state and its input position.
type item struct {
	pos   int
	state *PartialParse
}

// ParseAll parses each sentence with the predictor, at most batchSize at a
// time, and returns the arcs of every sentence in input order.
func ParseAll(sentences [][]Word, p Predictor, batchSize int, opts ...Option) ([][]Arc, error) {
	states := make([]*PartialParse, len(sentences))
	for i, words := range sentences {
		states[i] = NewPartialParse(words)
	}
	return ParseStates(states, p, batchSize, opts...)
}

// ParseStates drives the given states to completion.
//
// The pool holds at most batchSize unfinished states and is refilled from
// the input in order. A state whose proposal fails in Step is removed from
// the pool and keeps the arcs it had. A predictor error, or a proposal count
// different from the pool size, aborts the whole call.
func ParseStates(states []*PartialParse, p Predictor, batchSize int, opts ...Option) ([][]Arc, error) {
	if batchSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBatchSize, batchSize)
	}

	o := newOptions(opts)
	results := make([][]Arc, len(states))
	pool := make([]item, 0, batchSize)
	queued, done := 0, 0

	finish := func(it item) {
		results[it.pos] = it.state.Arcs()
		done++
		if o.progress != nil {
			o.progress(done, len(states))
		}
	}

	for round := 0; ; round++ {
		for len(pool) < batchSize && queued < len(states) {
			it := item{pos: queued, state: states[queued]}
			queued++
			if it.state.Complete() {
				finish(it)
				continue
			}
			pool = append(pool, it)
		}

		if len(pool) == 0 {
			break
		}

		live := make([]*PartialParse, len(pool))
		for i, it := range pool {
			live[i] = it.state
		}

		proposals, err := p.Predict(live)
		if err != nil {
			return nil, fmt.Errorf("predictor failed at round %d: %w", round, err)
		}
		if len(proposals) != len(live) {
			return nil, fmt.Errorf("%w: %d proposals for %d states", ErrPredictorMismatch, len(proposals), len(live))
		}

		o.logger.Debug("round", "round", round, "pool", len(pool), "done", done)

		kept := pool[:0]
		for i, it := range pool {
			t := proposals[i]
			if err := it.state.Step(t); err != nil {
				if !errors.Is(err, ErrIllegalTransition) && !errors.Is(err, ErrUnknownTransition) {
					return nil, err
				}
				o.logger.Warn("dropped partial parse", "pos", it.pos, "transition", t.String(), "error", err)
				if o.dropped != nil {
					o.dropped(it.pos, err)
				}
				finish(it)
				continue
			}
			if it.state.Complete() {
				finish(it)
				continue
			}
			kept = append(kept, it)
		}
		pool = kept
	}

	return results, nil
}
