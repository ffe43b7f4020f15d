package sentence

import (
	"strings"

	"github.com/revelaction/arcstd/parse"
)

type Doc struct {
	Id int `json:"id"`

	Title string `json:"title"`

	Labels    []string   `json:"labels,omitempty"`
	Sentences []Sentence `json:"sentences"`
}

// Library is a collection of Doc
type Library []Doc

// Sentence is one annotated sentence of a doc.
type Sentence struct {
	Id    int `json:"id"`
	DocId int `json:"doc"`

	// Comment lines without the leading "#", e.g. "sent_id = 1"
	Comments []string `json:"comments,omitempty"`

	Tokens []Token `json:"tokens"`
}

// Token represents a word of the sentence, with POS and gold dependency.
type Token struct {
	// The word id in the sentence, starting at 1.
	Id int `json:"id"`

	// The id of the gold head, 0 for the root.
	Head       int    `json:"head"`
	SentenceId int    `json:"sent"`
	Pos        string `json:"pos"`
	Dep        string `json:"dep"`

	// Language specific POS
	Tag string `json:"tag"`

	// The unmodified word
	Text string `json:"text"`

	// The lemma of the word
	Lemma string `json:"lemma"`

	Feats string `json:"feats,omitempty"`

	// The index of the word in the sentence, starting at 0.
	Index int `json:"index"`
}

// Words returns the form and universal POS of every token, without root.
func (s Sentence) Words() []parse.Word {
	words := make([]parse.Word, len(s.Tokens))
	for i, t := range s.Tokens {
		words[i] = parse.Word{Form: t.Text, Tag: t.Pos}
	}
	return words
}

func (s Sentence) Len() int {
	return len(s.Tokens)
}

// Text joins the token forms with spaces.
func (s Sentence) Text() string {
	forms := make([]string, len(s.Tokens))
	for i, t := range s.Tokens {
		forms[i] = t.Text
	}
	return strings.Join(forms, " ")
}

// NumTokens is the number of tokens of all sentences of the doc.
func (d Doc) NumTokens() int {
	n := 0
	for _, s := range d.Sentences {
		n += len(s.Tokens)
	}
	return n
}
