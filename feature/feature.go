// Package feature turns partial parses into the integer feature vectors of a
// feed-forward transition classifier, and gold trees into training
// instances.
//
// A vector has 18 word ids, 18 tag ids and 12 label ids:
//
//	words, tags  0-2   top three stack elements
//	             3-5   first three buffer words
//	             6-9   two leftmost dependants of stack top and second
//	             10-13 two rightmost dependants of stack top and second
//	             14-15 leftmost dependant of the first leftmost ones
//	             16-17 rightmost dependant of the first rightmost ones
//	labels       0-11  the labels of the dependants at word slots 6-17
//
// Empty slots hold the Null id of their index.
package feature

import (
	"sort"

	"github.com/revelaction/arcstd/parse"
	sent "github.com/revelaction/arcstd/sentence"
)

const (
	NumWords  = 18
	NumLabels = 12
)

// Index maps strings to ids. 0 is the root, the values follow from 1, then
// the unknown id and the null id.
type Index struct {
	ids    map[string]int
	values []string
}

// NewIndex returns an index of the values in order. Duplicates keep their
// first id.
func NewIndex(values []string) *Index {
	x := &Index{ids: map[string]int{}}
	for _, v := range values {
		if _, ok := x.ids[v]; ok {
			continue
		}
		x.values = append(x.values, v)
		x.ids[v] = len(x.values)
	}
	return x
}

// Id returns the id of s, or Unknown.
func (x *Index) Id(s string) int {
	if id, ok := x.ids[s]; ok {
		return id
	}
	return x.Unknown()
}

func (x *Index) Unknown() int {
	return len(x.values) + 1
}

func (x *Index) Null() int {
	return len(x.values) + 2
}

// Len is the number of ids from the root to Unknown.
func (x *Index) Len() int {
	return len(x.values) + 2
}

// Values returns the indexed values in id order, from id 1.
func (x *Index) Values() []string {
	return append([]string(nil), x.values...)
}

// Vocab holds the word, tag and label indexes of a corpus.
type Vocab struct {
	Words  *Index
	Tags   *Index
	Labels *Index
}

// NewVocab indexes the forms, universal tags and relations of the
// sentences, most frequent first.
func NewVocab(sentences []sent.Sentence) *Vocab {
	words, tags, labels := map[string]int{}, map[string]int{}, map[string]int{}
	for _, s := range sentences {
		for _, tok := range s.Tokens {
			words[tok.Text]++
			tags[tok.Pos]++
			labels[tok.Dep]++
		}
	}

	return &Vocab{
		Words:  NewIndex(byFrequency(words)),
		Tags:   NewIndex(byFrequency(tags)),
		Labels: NewIndex(byFrequency(labels)),
	}
}

func byFrequency(counts map[string]int) []string {
	values := make([]string, 0, len(counts))
	for v := range counts {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool {
		if counts[values[i]] != counts[values[j]] {
			return counts[values[i]] > counts[values[j]]
		}
		return values[i] < values[j]
	})
	return values
}

// Features is the feature vector triple of a partial parse.
type Features struct {
	Words  [NumWords]int  `json:"words"`
	Tags   [NumWords]int  `json:"tags"`
	Labels [NumLabels]int `json:"labels"`
}

// Extract returns the features of the partial parse.
func (v *Vocab) Extract(p *parse.PartialParse) Features {
	var f Features
	for i := range f.Words {
		f.Words[i] = v.Words.Null()
		f.Tags[i] = v.Tags.Null()
	}
	for i := range f.Labels {
		f.Labels[i] = v.Labels.Null()
	}

	stack := p.Stack()
	for i := 0; i < 3 && i < len(stack); i++ {
		idx := stack[len(stack)-1-i]
		v.word(&f, p, i, idx)
		if i == 2 {
			continue
		}

		for j, l := range p.Leftmost(idx, 2) {
			v.dependant(&f, p, l, 6+j+2*i, j+2*i)
			if j == 0 {
				for _, ll := range p.Leftmost(l, 1) {
					v.dependant(&f, p, ll, 14+i, 8+i)
				}
			}
		}

		for j, r := range p.Rightmost(idx, 2) {
			v.dependant(&f, p, r, 10+j+2*i, 4+j+2*i)
			if j == 0 {
				for _, rr := range p.Rightmost(r, 1) {
					v.dependant(&f, p, rr, 16+i, 10+i)
				}
			}
		}
	}

	for k, idx := 0, p.Next(); k < 3 && idx < p.Len(); k, idx = k+1, idx+1 {
		v.word(&f, p, 3+k, idx)
	}

	return f
}

func (v *Vocab) word(f *Features, p *parse.PartialParse, slot, idx int) {
	if idx == 0 {
		f.Words[slot], f.Tags[slot] = 0, 0
		return
	}
	w := p.Word(idx)
	f.Words[slot] = v.Words.Id(w.Form)
	f.Tags[slot] = v.Tags.Id(w.Tag)
}

func (v *Vocab) dependant(f *Features, p *parse.PartialParse, dep, slot, labelSlot int) {
	v.word(f, p, slot, dep)
	label, _ := p.Label(dep)
	f.Labels[labelSlot] = v.Labels.Id(label)
}

// NumClasses is the number of transition classes: shift, then one left-arc
// and one right-arc per label id.
func (v *Vocab) NumClasses() int {
	return 1 + 2*v.Labels.Len()
}

// Class returns the class of the transition: 0 for shift, 1+label for
// left-arc and 1+Labels.Len()+label for right-arc.
func (v *Vocab) Class(t parse.Transition) int {
	switch t.Kind {
	case parse.LeftArc:
		return 1 + v.Labels.Id(t.Label)
	case parse.RightArc:
		return 1 + v.Labels.Len() + v.Labels.Id(t.Label)
	}
	return 0
}

// Instance is the features of a configuration and the gold transition taken
// from it.
type Instance struct {
	Features
	Transition parse.Transition `json:"transition"`
	Class      int              `json:"class"`
}

// Instances derives the gold transitions of the sentence and returns one
// instance per transition. Trees without a derivation return
// parse.ErrNoDerivation.
func (v *Vocab) Instances(words []parse.Word, g parse.GoldTree) ([]Instance, error) {
	ts, err := parse.Derive(words, g)
	if err != nil {
		return nil, err
	}

	p := parse.NewPartialParse(words)
	out := make([]Instance, 0, len(ts))
	for _, t := range ts {
		out = append(out, Instance{Features: v.Extract(p), Transition: t, Class: v.Class(t)})
		if err := p.Step(t); err != nil {
			return nil, err
		}
	}
	return out, nil
}
