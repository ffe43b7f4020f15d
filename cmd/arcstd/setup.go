package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	sent "github.com/revelaction/arcstd/sentence"
	"github.com/revelaction/arcstd/storage"
	"github.com/revelaction/arcstd/storage/filesystem"
	"github.com/revelaction/arcstd/storage/sqlite/zombiezen"
)

var errNoDocPath = errors.New("no doc path: use --doc-path, ARCSTD_DOC_PATH or doc_path in the config file")

// NewDocRepository opens a directory as filesystem store and anything else
// as sqlite database.
func NewDocRepository(p *Pool, path string) (storage.DocRepository, error) {
	if path == "" {
		return nil, errNoDocPath
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("repository not found: %s", path)
	}

	if info.IsDir() {
		return filesystem.NewDocStore(path)
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewDocStore(pool), nil
}

// NewParseStore opens the sqlite database at path, creating it if needed.
func NewParseStore(p *Pool, path string) (*zombiezen.ParseStore, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return nil, fmt.Errorf("store must be a sqlite file, got directory %s", path)
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewParseStore(pool), nil
}

func (e *env) docs() (storage.DocRepository, error) {
	return NewDocRepository(e.pool, e.cfg.DocPath)
}

// readDoc reads the doc given as argument i.
func (e *env) readDoc(c *cli.Context, i int) (sent.Doc, error) {
	id, err := intArg(c, i, "doc id")
	if err != nil {
		return sent.Doc{}, err
	}

	repo, err := e.docs()
	if err != nil {
		return sent.Doc{}, err
	}
	return repo.Read(id)
}

// readSentence reads the doc and sentence given as arguments i and i+1.
func (e *env) readSentence(c *cli.Context, i int) (sent.Sentence, error) {
	doc, err := e.readDoc(c, i)
	if err != nil {
		return sent.Sentence{}, err
	}

	sentId, err := intArg(c, i+1, "sentence id")
	if err != nil {
		return sent.Sentence{}, err
	}
	if sentId < 0 || sentId >= len(doc.Sentences) {
		return sent.Sentence{}, fmt.Errorf("sentence id out of range: %d (doc %d has %d)", sentId, doc.Id, len(doc.Sentences))
	}
	return doc.Sentences[sentId], nil
}

func intArg(c *cli.Context, i int, name string) (int, error) {
	if c.NArg() <= i {
		return 0, fmt.Errorf("missing %s", name)
	}
	n, err := strconv.Atoi(c.Args().Get(i))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, c.Args().Get(i))
	}
	return n, nil
}

// selectDocs reads the docs given as arguments, or every doc matching the
// --label flag when there are none.
func (e *env) selectDocs(c *cli.Context) ([]sent.Doc, error) {
	repo, err := e.docs()
	if err != nil {
		return nil, err
	}

	if c.NArg() > 0 {
		docs := make([]sent.Doc, 0, c.NArg())
		for i := 0; i < c.NArg(); i++ {
			id, err := intArg(c, i, "doc id")
			if err != nil {
				return nil, err
			}
			doc, err := repo.Read(id)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
		return docs, nil
	}

	metas, err := repo.List(c.String("label"))
	if err != nil {
		return nil, err
	}

	docs := make([]sent.Doc, 0, len(metas))
	for _, meta := range metas {
		doc, err := repo.Read(meta.Id)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
