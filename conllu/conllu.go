// Package conllu reads and writes the CoNLL-U format of the Universal
// Dependencies treebanks.
//
// A sentence is a block of lines separated by a blank line. Lines starting
// with "#" are comments. Every other line is a word with ten tab separated
// fields: ID FORM LEMMA UPOS XPOS FEATS HEAD DEPREL DEPS MISC. Multiword
// token ranges (1-2) and empty nodes (1.1) are skipped.
package conllu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/revelaction/arcstd/parse"
	sent "github.com/revelaction/arcstd/sentence"
)

const numFields = 10

const (
	fieldId = iota
	fieldForm
	fieldLemma
	fieldUpos
	fieldXpos
	fieldFeats
	fieldHead
	fieldDeprel
)

var ErrMalformed = errors.New("conllu: malformed input")

// Read returns the sentences of r, numbered from 0 in reading order.
func Read(r io.Reader) ([]sent.Sentence, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	sentences := []sent.Sentence{}
	current := sent.Sentence{}
	lineNum := 0

	// blocks with only comments are not sentences
	flush := func() {
		if len(current.Tokens) > 0 {
			sentences = append(sentences, current)
		}
		current = sent.Sentence{Id: len(sentences)}
	}

	for sc.Scan() {
		lineNum++
		line := strings.TrimRight(sc.Text(), "\r")

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		if strings.HasPrefix(line, "#") {
			current.Comments = append(current.Comments, strings.TrimSpace(line[1:]))
			continue
		}

		tok, skip, err := parseToken(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformed, lineNum, err)
		}
		if skip {
			continue
		}

		if tok.Id != len(current.Tokens)+1 {
			return nil, fmt.Errorf("%w: line %d: word id %d, expected %d", ErrMalformed, lineNum, tok.Id, len(current.Tokens)+1)
		}

		tok.SentenceId = current.Id
		tok.Index = len(current.Tokens)
		current.Tokens = append(current.Tokens, tok)
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	flush()
	return sentences, nil
}

// ReadFile reads the sentences of the file at path.
func ReadFile(path string) ([]sent.Sentence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sentences, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sentences, nil
}

func parseToken(line string) (sent.Token, bool, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != numFields {
		return sent.Token{}, false, fmt.Errorf("%d fields, expected %d", len(fields), numFields)
	}

	id := fields[fieldId]
	if strings.ContainsAny(id, "-.") {
		return sent.Token{}, true, nil
	}

	n, err := strconv.Atoi(id)
	if err != nil || n < 1 {
		return sent.Token{}, false, fmt.Errorf("invalid word id %q", id)
	}

	head, err := strconv.Atoi(fields[fieldHead])
	if err != nil || head < 0 {
		return sent.Token{}, false, fmt.Errorf("invalid head %q", fields[fieldHead])
	}

	return sent.Token{
		Id:    n,
		Head:  head,
		Text:  fields[fieldForm],
		Lemma: value(fields[fieldLemma]),
		Pos:   value(fields[fieldUpos]),
		Tag:   value(fields[fieldXpos]),
		Feats: value(fields[fieldFeats]),
		Dep:   value(fields[fieldDeprel]),
	}, false, nil
}

func value(f string) string {
	if f == "_" {
		return ""
	}
	return f
}

func field(s string) string {
	if s == "" {
		return "_"
	}
	return s
}

// Write writes the sentence with HEAD and DEPREL taken from arcs. Words
// without an arc get "_" in both columns.
func Write(w io.Writer, s sent.Sentence, arcs []parse.Arc) error {
	byDep := make(map[int]parse.Arc, len(arcs))
	for _, a := range arcs {
		byDep[a.Dependent] = a
	}

	return write(w, s, func(tok sent.Token) (string, string) {
		a, ok := byDep[tok.Id]
		if !ok {
			return "_", "_"
		}
		return strconv.Itoa(a.Head), field(a.Label)
	})
}

// WriteGold writes the sentence with its own gold annotation.
func WriteGold(w io.Writer, s sent.Sentence) error {
	return write(w, s, func(tok sent.Token) (string, string) {
		return strconv.Itoa(tok.Head), field(tok.Dep)
	})
}

func write(w io.Writer, s sent.Sentence, dep func(sent.Token) (string, string)) error {
	bw := bufio.NewWriter(w)

	for _, c := range s.Comments {
		if _, err := fmt.Fprintf(bw, "# %s\n", c); err != nil {
			return err
		}
	}

	for _, tok := range s.Tokens {
		head, deprel := dep(tok)
		cols := []string{
			strconv.Itoa(tok.Id),
			field(tok.Text),
			field(tok.Lemma),
			field(tok.Pos),
			field(tok.Tag),
			field(tok.Feats),
			head,
			deprel,
			"_",
			"_",
		}
		if _, err := fmt.Fprintln(bw, strings.Join(cols, "\t")); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(bw); err != nil {
		return err
	}

	return bw.Flush()
}
