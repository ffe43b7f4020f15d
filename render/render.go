package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/revelaction/arcstd/parse"
	sent "github.com/revelaction/arcstd/sentence"
)

// RootForm is shown in place of the empty form of the root.
const RootForm = "ROOT"

var (
	Black   = "\033[1;30m"
	Red     = "\033[1;31m"
	Green   = "\033[1;32m"
	Yellow  = "\033[0;33m"
	Purple  = "\033[1;34m"
	Magenta = "\033[1;35m"
	Teal    = "\033[1;36m"
	Gray    = "\033[0;37m"
	White   = "\033[1;37m"
	Off     = "\033[0m"
	//Yellow256  = "\033[1;38;5;202m"
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
	ClearLine = "\033[K"
)

type Renderer struct {
	HasColor bool

	W io.Writer

	DocNames map[int]string
}

func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{W: w, DocNames: map[int]string{}}
}

func (r *Renderer) AddDocName(docId int, name string) {
	r.DocNames[docId] = name
}

// Sentence prints the forms of the sentence in one line.
func (r *Renderer) Sentence(s sent.Sentence, prefix string) {
	fmt.Fprintf(r.W, "%s%s\n", prefix, strings.ReplaceAll(s.Text(), "\n", " "))
}

// Tokens prints one line per token with its gold annotation.
func (r *Renderer) Tokens(s sent.Sentence) {
	for _, t := range s.Tokens {
		fmt.Fprintf(r.W, "%3d %-20s %-6s %-6s %3d %s\n", t.Id, t.Text, t.Pos, t.Tag, t.Head, r.color(Yellow256, t.Dep))
	}
}

// Arcs prints one line per arc, head -label-> dependent, ordered by
// dependent. words is the sentence of the partial parse, root at 0.
func (r *Renderer) Arcs(arcs []parse.Arc, words []parse.Word) {
	sorted := append([]parse.Arc(nil), arcs...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Dependent < sorted[j].Dependent })

	for _, a := range sorted {
		fmt.Fprintf(r.W, "%s -%s-> %s\n", r.word(words, a.Head), r.color(Yellow256, a.Label), r.word(words, a.Dependent))
	}
}

// State prints the stack, the buffer and the arcs of the partial parse.
func (r *Renderer) State(p *parse.PartialParse) {
	words := p.Sentence()

	stack := []string{}
	for _, i := range p.Stack() {
		stack = append(stack, r.word(words, i))
	}

	buffer := []string{}
	for i := p.Next(); i < p.Len(); i++ {
		buffer = append(buffer, r.word(words, i))
	}

	fmt.Fprintf(r.W, "%s [%s]\n", r.color(Grey256, "stack: "), strings.Join(stack, " "))
	fmt.Fprintf(r.W, "%s [%s]\n", r.color(Grey256, "buffer:"), strings.Join(buffer, " "))

	status := "partial"
	if p.Complete() {
		status = r.color(Green256, "complete")
	}
	fmt.Fprintf(r.W, "%s %d (%s)\n", r.color(Grey256, "arcs:  "), len(p.Arcs()), status)
	r.Arcs(p.Arcs(), words)
}

// Transitions prints the transitions in one line.
func (r *Renderer) Transitions(ts []parse.Transition, prefix string) {
	fmt.Fprintf(r.W, "%s%s\n", prefix, parse.FormatTransitions(ts))
}

// Title returns the doc name padded to 20 runes.
func (r *Renderer) Title(docId int) string {
	title := []rune(r.DocNames[docId])
	var part string
	if len(title) <= 20 {
		part = fmt.Sprintf("%-20s", string(title))
	} else {
		part = string(title[:20])
	}

	return r.color(Grey256, part)
}

func (r *Renderer) word(words []parse.Word, i int) string {
	form := RootForm
	if i > 0 && i < len(words) {
		form = words[i].Form
	}
	return fmt.Sprintf("%s%s", form, r.color(Gray, fmt.Sprintf("(%d)", i)))
}

func (r *Renderer) color(c, s string) string {
	if !r.HasColor {
		return s
	}
	return c + s + Off
}
