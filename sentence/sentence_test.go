package sentence

import (
	"testing"

	"github.com/revelaction/arcstd/parse"
)

func TestWords(t *testing.T) {
	s := Sentence{Tokens: []Token{
		{Id: 1, Text: "book", Pos: "VERB", Tag: "VB", Head: 0, Dep: "root"},
		{Id: 2, Text: "a", Pos: "DET", Tag: "DT", Head: 3, Dep: "det"},
		{Id: 3, Text: "flight", Pos: "NOUN", Tag: "NN", Head: 1, Dep: "obj"},
	}}

	words := s.Words()
	want := []parse.Word{{Form: "book", Tag: "VERB"}, {Form: "a", Tag: "DET"}, {Form: "flight", Tag: "NOUN"}}
	if len(words) != len(want) {
		t.Fatalf("got %d words, want %d", len(words), len(want))
	}
	for i := range want {
		if words[i] != want[i] {
			t.Errorf("word %d: got %v, want %v", i, words[i], want[i])
		}
	}

	if s.Len() != 3 {
		t.Errorf("Len: got %d", s.Len())
	}
	if got := s.Text(); got != "book a flight" {
		t.Errorf("Text: got %q", got)
	}
}

func TestDocNumTokens(t *testing.T) {
	d := Doc{Sentences: []Sentence{
		{Tokens: make([]Token, 3)},
		{Tokens: make([]Token, 4)},
		{},
	}}
	if d.NumTokens() != 7 {
		t.Errorf("got %d, want 7", d.NumTokens())
	}
	if len((Sentence{}).Words()) != 0 {
		t.Errorf("empty sentence must have no words")
	}
}
