package parse_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/arcstd/parse"
)

// goldPredictor proposes the oracle transition of each state. sabotage maps
// a state to the round at which it proposes an illegal shift instead.
type goldPredictor struct {
	trees    map[*parse.PartialParse]*tree
	sabotage map[*parse.PartialParse]int

	mu     sync.Mutex
	steps  map[*parse.PartialParse]int
	calls  int
	widest int
}

func newGoldPredictor() *goldPredictor {
	return &goldPredictor{
		trees:    map[*parse.PartialParse]*tree{},
		sabotage: map[*parse.PartialParse]int{},
		steps:    map[*parse.PartialParse]int{},
	}
}

func (g *goldPredictor) add(words []parse.Word, gold *tree) *parse.PartialParse {
	p := parse.NewPartialParse(words)
	g.trees[p] = gold
	return p
}

func (g *goldPredictor) Predict(states []*parse.PartialParse) ([]parse.Transition, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls++
	g.widest = max(g.widest, len(states))

	out := make([]parse.Transition, len(states))
	for i, s := range states {
		if s.Complete() {
			return nil, errors.New("complete state in pool")
		}
		if at, ok := g.sabotage[s]; ok && g.steps[s] == at {
			out[i] = parse.NewLeftArc("bad")
			if len(s.Stack()) >= 2 && s.Stack()[len(s.Stack())-2] != 0 {
				out[i] = parse.NewShift()
			}
			g.steps[s]++
			continue
		}
		tr, err := s.Oracle(g.trees[s])
		if err != nil {
			return nil, err
		}
		out[i] = tr
		g.steps[s]++
	}
	return out, nil
}

func TestParseStatesPartialFailure(t *testing.T) {
	g := newGoldPredictor()
	w1, t1 := morningFlight()
	w2, t2 := bookAFlight()
	w3, t3 := bookAFlight()

	s1 := g.add(w1, t1)
	s2 := g.add(w2, t2)
	s3 := g.add(w3, t3)
	// after SH SH SH LA-det the buffer of s2 is empty: the shift is illegal.
	g.sabotage[s2] = 4

	var dropped []int
	results, err := parse.ParseStates([]*parse.PartialParse{s1, s2, s3}, g, 3,
		parse.WithDropped(func(pos int, err error) {
			assert.ErrorIs(t, err, parse.ErrIllegalTransition)
			dropped = append(dropped, pos)
		}))
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.ElementsMatch(t, t1.arcs(), results[0])
	assert.Equal(t, []parse.Arc{{Head: 3, Dependent: 2, Label: "det"}}, results[1])
	assert.Less(t, len(results[1]), len(w2))
	assert.ElementsMatch(t, t3.arcs(), results[2])
	assert.Equal(t, []int{1}, dropped)
}

func TestParseStatesBatchSizes(t *testing.T) {
	for _, batch := range []int{1, 2, 3, 10} {
		t.Run(fmt.Sprintf("batch %d", batch), func(t *testing.T) {
			g := newGoldPredictor()
			var states []*parse.PartialParse
			var want [][]parse.Arc
			for i := 0; i < 5; i++ {
				w, tr := bookAFlight()
				if i%2 == 1 {
					w, tr = morningFlight()
				}
				states = append(states, g.add(w, tr))
				want = append(want, tr.arcs())
			}

			var progress []int
			results, err := parse.ParseStates(states, g, batch, parse.WithProgress(func(done, total int) {
				assert.Equal(t, 5, total)
				progress = append(progress, done)
			}))
			require.NoError(t, err)

			for i := range want {
				assert.ElementsMatch(t, want[i], results[i], "sentence %d", i)
			}
			assert.LessOrEqual(t, g.widest, batch)
			assert.Equal(t, []int{1, 2, 3, 4, 5}, progress)
		})
	}
}

func TestParseAllEmptySentenceNeverPredicted(t *testing.T) {
	calls := 0
	p := parse.PredictorFunc(func(states []*parse.PartialParse) ([]parse.Transition, error) {
		calls++
		return nil, errors.New("must not be called")
	})

	results, err := parse.ParseAll([][]parse.Word{nil, {}}, p, 2)
	require.NoError(t, err)
	assert.Equal(t, [][]parse.Arc{{}, {}}, results)
	assert.Zero(t, calls)
}

func TestParseAllBaselineOrder(t *testing.T) {
	// shift everything, then attach right to left.
	p := parse.PredictorFunc(func(states []*parse.PartialParse) ([]parse.Transition, error) {
		out := make([]parse.Transition, len(states))
		for i, s := range states {
			switch {
			case s.Next() < s.Len():
				out[i] = parse.NewShift()
			case len(s.Stack()) > 2:
				out[i] = parse.NewRightArc("dep")
			default:
				out[i] = parse.NewRightArc("root")
			}
		}
		return out, nil
	})

	results, err := parse.ParseAll([][]parse.Word{words(3), words(1), nil, words(2)}, p, 2)
	require.NoError(t, err)
	require.Len(t, results, 4)

	arc := func(h, d int, l string) parse.Arc { return parse.Arc{Head: h, Dependent: d, Label: l} }
	assert.Equal(t, []parse.Arc{arc(2, 3, "dep"), arc(1, 2, "dep"), arc(0, 1, "root")}, results[0])
	assert.Equal(t, []parse.Arc{arc(0, 1, "root")}, results[1])
	assert.Equal(t, []parse.Arc{}, results[2])
	assert.Equal(t, []parse.Arc{arc(1, 2, "dep"), arc(0, 1, "root")}, results[3])
}

func TestParseAllErrors(t *testing.T) {
	sentences := [][]parse.Word{words(2), words(3)}

	_, err := parse.ParseAll(sentences, parse.PredictorFunc(nil), 0)
	assert.ErrorIs(t, err, parse.ErrBatchSize)

	short := parse.PredictorFunc(func(states []*parse.PartialParse) ([]parse.Transition, error) {
		return []parse.Transition{parse.NewShift()}, nil
	})
	_, err = parse.ParseAll(sentences, short, 2)
	assert.ErrorIs(t, err, parse.ErrPredictorMismatch)

	boom := errors.New("model unavailable")
	failing := parse.PredictorFunc(func(states []*parse.PartialParse) ([]parse.Transition, error) {
		return nil, boom
	})
	_, err = parse.ParseAll(sentences, failing, 2)
	assert.ErrorIs(t, err, boom)
}

func TestParseAllUnknownProposalDrops(t *testing.T) {
	p := parse.PredictorFunc(func(states []*parse.PartialParse) ([]parse.Transition, error) {
		return make([]parse.Transition, len(states)), nil
	})

	results, err := parse.ParseAll([][]parse.Word{words(2)}, p, 1)
	require.NoError(t, err)
	assert.Equal(t, [][]parse.Arc{{}}, results)
}

func TestParseShardedMatchesSerial(t *testing.T) {
	build := func() (*goldPredictor, []*parse.PartialParse) {
		g := newGoldPredictor()
		var states []*parse.PartialParse
		for i := 0; i < 11; i++ {
			w, tr := bookAFlight()
			if i%3 == 0 {
				w, tr = morningFlight()
			}
			s := g.add(w, tr)
			if i == 7 {
				g.sabotage[s] = 4
			}
			states = append(states, s)
		}
		return g, states
	}

	g, states := build()
	serial, err := parse.ParseStates(states, g, 2)
	require.NoError(t, err)

	g, states = build()
	var mu sync.Mutex
	var dropped []int
	done := 0
	sharded, err := parse.ParseSharded(context.Background(), states, g, 2, 3,
		parse.WithDropped(func(pos int, err error) {
			mu.Lock()
			defer mu.Unlock()
			dropped = append(dropped, pos)
		}),
		parse.WithProgress(func(d, total int) {
			assert.Equal(t, 11, total)
			done = d
		}))
	require.NoError(t, err)

	assert.Equal(t, serial, sharded)
	assert.Equal(t, []int{7}, dropped)
	assert.Equal(t, 11, done)
}

func TestParseShardedCancelled(t *testing.T) {
	g := newGoldPredictor()
	var states []*parse.PartialParse
	for i := 0; i < 4; i++ {
		w, tr := bookAFlight()
		states = append(states, g.add(w, tr))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := parse.ParseSharded(ctx, states, g, 2, 2)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, g.calls)

	_, err = parse.ParseSharded(context.Background(), states, g, 0, 2)
	assert.ErrorIs(t, err, parse.ErrBatchSize)
}
