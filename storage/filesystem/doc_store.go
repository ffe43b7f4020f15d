package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/revelaction/arcstd/conllu"
	sent "github.com/revelaction/arcstd/sentence"
	"github.com/revelaction/arcstd/storage"
)

const (
	ExtConllu = ".conllu"
	ExtJSON   = ".json"
)

// DocStore reads the CoNLL-U and JSON docs of a directory. Doc ids are the
// positions of the files in name order.
type DocStore struct {
	docDir string

	// Metadata only; Title is the file name
	docs []sent.Doc
}

var _ storage.DocRepository = (*DocStore)(nil)

// NewDocStore creates a filesystem document store.
func NewDocStore(docDir string) (*DocStore, error) {
	files, err := os.ReadDir(docDir)
	if err != nil {
		return nil, err
	}

	docs := make([]sent.Doc, 0, len(files))
	for _, file := range files {
		if file.IsDir() || !IsDocFile(file.Name()) {
			continue
		}
		docs = append(docs, sent.Doc{
			Id:    len(docs),
			Title: file.Name(),
		})
	}

	return &DocStore{
		docDir: docDir,
		docs:   docs,
	}, nil
}

// IsDocFile reports whether the name has a doc extension.
func IsDocFile(name string) bool {
	ext := filepath.Ext(name)
	return ext == ExtConllu || ext == ExtJSON
}

func (h *DocStore) List(labelMatch string) ([]sent.Doc, error) {
	if labelMatch == "" {
		return append([]sent.Doc(nil), h.docs...), nil
	}

	docs := []sent.Doc{}
	for _, meta := range h.docs {
		doc, err := h.Read(meta.Id)
		if err != nil {
			return nil, err
		}
		for _, l := range doc.Labels {
			if strings.Contains(l, labelMatch) {
				doc.Sentences = nil
				docs = append(docs, doc)
				break
			}
		}
	}
	return docs, nil
}

func (h *DocStore) Read(id int) (sent.Doc, error) {
	if id < 0 || id >= len(h.docs) {
		return sent.Doc{}, fmt.Errorf("doc id out of range: %d", id)
	}

	meta := h.docs[id]
	path := filepath.Join(h.docDir, meta.Title)

	var doc sent.Doc
	switch filepath.Ext(meta.Title) {
	case ExtConllu:
		sentences, err := conllu.ReadFile(path)
		if err != nil {
			return sent.Doc{}, err
		}
		doc = sent.Doc{Sentences: sentences}
	default:
		d, err := ReadDoc(path)
		if err != nil {
			return sent.Doc{}, err
		}
		doc = d
	}

	doc.Id = meta.Id
	doc.Title = meta.Title
	for i := range doc.Sentences {
		doc.Sentences[i].DocId = meta.Id
	}
	return doc, nil
}

func (h *DocStore) Labels(pattern string) ([]string, error) {
	seen := map[string]bool{}
	for _, meta := range h.docs {
		if filepath.Ext(meta.Title) != ExtJSON {
			continue
		}
		doc, err := h.Read(meta.Id)
		if err != nil {
			return nil, err
		}
		for _, l := range doc.Labels {
			if pattern == "" || strings.Contains(l, pattern) {
				seen[l] = true
			}
		}
	}

	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels, nil
}

// Write stores the doc as JSON in the directory, named after its title with
// the extension replaced by .json. Existing files are not overwritten.
func (h *DocStore) Write(doc sent.Doc) error {
	name := FileName(doc.Title)
	path := filepath.Join(h.docDir, name)

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("JSON encoding error: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("IO error: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("IO error: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("IO error: %w", err)
	}

	h.docs = append(h.docs, sent.Doc{Id: len(h.docs), Title: name})
	return nil
}

// FileName is the JSON file name of a doc title.
func FileName(title string) string {
	base := strings.TrimSuffix(filepath.Base(title), filepath.Ext(title))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "doc"
	}
	return base + ExtJSON
}

// ReadDoc reads a Doc JSON from the given path and unmarshals it.
func ReadDoc(path string) (sent.Doc, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("IO error: %w", err)
	}

	var doc sent.Doc
	err = json.Unmarshal(f, &doc)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("JSON decoding error: %w", err)
	}

	return doc, nil
}
