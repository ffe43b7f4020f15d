package feature_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/arcstd/feature"
	"github.com/revelaction/arcstd/gold"
	"github.com/revelaction/arcstd/parse"
	sent "github.com/revelaction/arcstd/sentence"
)

func bookAFlight() sent.Sentence {
	return sent.Sentence{Tokens: []sent.Token{
		{Id: 1, Text: "book", Pos: "VERB", Head: 0, Dep: "root"},
		{Id: 2, Text: "a", Pos: "DET", Head: 3, Dep: "det"},
		{Id: 3, Text: "flight", Pos: "NOUN", Head: 1, Dep: "obj"},
	}}
}

func nulls(n, null int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = null
	}
	return s
}

func TestIndex(t *testing.T) {
	x := feature.NewIndex([]string{"b", "a", "b"})
	assert.Equal(t, 1, x.Id("b"))
	assert.Equal(t, 2, x.Id("a"))
	assert.Equal(t, 3, x.Unknown())
	assert.Equal(t, 3, x.Id("zzz"))
	assert.Equal(t, 4, x.Null())
	assert.Equal(t, 4, x.Len())
	assert.Equal(t, []string{"b", "a"}, x.Values())
}

func TestNewVocabOrder(t *testing.T) {
	s := bookAFlight()
	other := sent.Sentence{Tokens: []sent.Token{{Id: 1, Text: "flight", Pos: "NOUN", Dep: "root"}}}

	v := feature.NewVocab([]sent.Sentence{s, other})
	assert.Equal(t, []string{"flight", "a", "book"}, v.Words.Values())
	assert.Equal(t, []string{"NOUN", "DET", "VERB"}, v.Tags.Values())
	assert.Equal(t, []string{"root", "det", "obj"}, v.Labels.Values())
}

func TestExtractInitial(t *testing.T) {
	s := bookAFlight()
	v := feature.NewVocab([]sent.Sentence{s})
	p := parse.NewPartialParse(s.Words())

	f := v.Extract(p)

	words := nulls(feature.NumWords, v.Words.Null())
	words[0] = 0
	words[3], words[4], words[5] = v.Words.Id("book"), v.Words.Id("a"), v.Words.Id("flight")
	assert.Equal(t, words, f.Words[:])

	tags := nulls(feature.NumWords, v.Tags.Null())
	tags[0] = 0
	tags[3], tags[4], tags[5] = v.Tags.Id("VERB"), v.Tags.Id("DET"), v.Tags.Id("NOUN")
	assert.Equal(t, tags, f.Tags[:])

	assert.Equal(t, nulls(feature.NumLabels, v.Labels.Null()), f.Labels[:])
}

func TestExtractDependants(t *testing.T) {
	s := bookAFlight()
	v := feature.NewVocab([]sent.Sentence{s})
	p := parse.NewPartialParse(s.Words())
	for _, tr := range []parse.Transition{parse.NewShift(), parse.NewShift(), parse.NewShift(), parse.NewLeftArc("det")} {
		require.NoError(t, p.Step(tr))
	}

	f := v.Extract(p)

	// stack is ROOT book flight, flight has "a" as leftmost dependant
	words := nulls(feature.NumWords, v.Words.Null())
	words[0], words[1], words[2] = v.Words.Id("flight"), v.Words.Id("book"), 0
	words[6] = v.Words.Id("a")
	assert.Equal(t, words, f.Words[:])

	labels := nulls(feature.NumLabels, v.Labels.Null())
	labels[0] = v.Labels.Id("det")
	assert.Equal(t, labels, f.Labels[:])

	require.NoError(t, p.Step(parse.NewRightArc("obj")))
	f = v.Extract(p)

	// book now has flight on its right
	assert.Equal(t, v.Words.Id("book"), f.Words[0])
	assert.Equal(t, 0, f.Words[1])
	assert.Equal(t, v.Words.Id("flight"), f.Words[10])
	assert.Equal(t, v.Labels.Id("obj"), f.Labels[4])
	assert.Equal(t, v.Words.Null(), f.Words[16])
	assert.Equal(t, v.Words.Null(), f.Words[14])
}

func TestExtractUnknown(t *testing.T) {
	v := feature.NewVocab([]sent.Sentence{bookAFlight()})
	p := parse.NewPartialParse([]parse.Word{{Form: "fly", Tag: "X"}})

	f := v.Extract(p)
	assert.Equal(t, v.Words.Unknown(), f.Words[3])
	assert.Equal(t, v.Tags.Unknown(), f.Tags[3])
}

func TestClass(t *testing.T) {
	v := feature.NewVocab([]sent.Sentence{bookAFlight()})
	// labels det, obj, root: ids 1 to 3, unknown 4
	assert.Equal(t, 11, v.NumClasses())
	assert.Equal(t, 0, v.Class(parse.NewShift()))
	assert.Equal(t, 2, v.Class(parse.NewLeftArc("det")))
	assert.Equal(t, 1+5+3, v.Class(parse.NewRightArc("root")))
	assert.Equal(t, 1+5+4, v.Class(parse.NewRightArc("nope")))
}

func TestInstances(t *testing.T) {
	s := bookAFlight()
	v := feature.NewVocab([]sent.Sentence{s})
	tree, err := gold.New(s)
	require.NoError(t, err)

	instances, err := v.Instances(s.Words(), tree)
	require.NoError(t, err)
	require.Len(t, instances, 6)

	classes := []int{}
	for _, in := range instances {
		classes = append(classes, in.Class)
	}
	assert.Equal(t, []int{0, 0, 0, 2, 1 + 5 + 2, 1 + 5 + 3}, classes)
	assert.Equal(t, v.Extract(parse.NewPartialParse(s.Words())), instances[0].Features)
	assert.Equal(t, parse.NewLeftArc("det"), instances[3].Transition)
}

func TestInstancesNonProjective(t *testing.T) {
	tree, err := gold.FromHeads([]int{0, 4, 1, 1}, []string{"root", "a", "b", "c"})
	require.NoError(t, err)

	words := []parse.Word{{Form: "a"}, {Form: "b"}, {Form: "c"}, {Form: "d"}}
	v := feature.NewVocab(nil)
	_, err = v.Instances(words, tree)
	assert.ErrorIs(t, err, parse.ErrNoDerivation)
}
