package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	sent "github.com/revelaction/arcstd/sentence"
)

const bookAFlightConllu = "# sent_id = 1\n" +
	"1\tBook\tbook\tVERB\tVB\t_\t0\troot\t_\t_\n" +
	"2\ta\ta\tDET\tDT\t_\t3\tdet\t_\t_\n" +
	"3\tflight\tflight\tNOUN\tNN\t_\t1\tobj\t_\t_\n" +
	"\n" +
	"1\tGo\tgo\tVERB\tVB\t_\t0\troot\t_\t_\n"

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestDocStore(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.conllu", bookAFlightConllu)
	writeFile(t, dir, "b.json", `{"title":"b","labels":["news","en"],"sentences":[{"id":0,"tokens":[{"id":1,"head":0,"dep":"root","text":"Hi","pos":"INTJ"}]}]}`)
	writeFile(t, dir, "notes.txt", "ignored")
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0755); err != nil {
		t.Fatal(err)
	}

	store, err := NewDocStore(dir)
	if err != nil {
		t.Fatalf("NewDocStore: %v", err)
	}

	docs, err := store.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 2 || docs[0].Title != "a.conllu" || docs[1].Title != "b.json" {
		t.Fatalf("unexpected docs %+v", docs)
	}

	doc, err := store.Read(0)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(doc.Sentences) != 2 || doc.Sentences[0].Len() != 3 {
		t.Fatalf("unexpected conllu doc %+v", doc)
	}
	if doc.Sentences[1].DocId != 0 || doc.Sentences[1].Id != 1 {
		t.Errorf("sentence ids not set: %+v", doc.Sentences[1])
	}

	doc, err = store.Read(1)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if doc.Id != 1 || doc.Title != "b.json" || doc.Sentences[0].Tokens[0].Text != "Hi" {
		t.Errorf("unexpected json doc %+v", doc)
	}

	if _, err := store.Read(2); err == nil {
		t.Errorf("expected out of range error")
	}

	news, err := store.List("new")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(news) != 1 || news[0].Title != "b.json" || news[0].Sentences != nil {
		t.Errorf("unexpected label match %+v", news)
	}

	labels, err := store.Labels("")
	if err != nil {
		t.Fatalf("Labels: %v", err)
	}
	if len(labels) != 2 || labels[0] != "en" || labels[1] != "news" {
		t.Errorf("got labels %v", labels)
	}
}

func TestDocStoreWrite(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDocStore(dir)
	if err != nil {
		t.Fatalf("NewDocStore: %v", err)
	}

	doc := sent.Doc{Title: "en_ewt-ud-dev.conllu", Labels: []string{"dev"}, Sentences: []sent.Sentence{
		{Tokens: []sent.Token{{Id: 1, Text: "Go", Pos: "VERB", Dep: "root"}}},
	}}
	if err := store.Write(doc); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := store.Write(doc); err == nil {
		t.Errorf("expected error writing an existing doc")
	}

	again, err := NewDocStore(dir)
	if err != nil {
		t.Fatalf("NewDocStore: %v", err)
	}
	read, err := again.Read(0)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if read.Title != "en_ewt-ud-dev.json" || read.Sentences[0].Tokens[0].Text != "Go" || read.Labels[0] != "dev" {
		t.Errorf("unexpected doc %+v", read)
	}
}

func TestFileName(t *testing.T) {
	cases := map[string]string{
		"a.conllu":        "a.json",
		"dir/b.json":      "b.json",
		"plain":           "plain.json",
		"":                "doc.json",
		"x.tar.gz.conllu": "x.tar.gz.json",
	}
	for in, want := range cases {
		if got := FileName(in); got != want {
			t.Errorf("FileName(%q): got %q, want %q", in, got, want)
		}
	}
}
