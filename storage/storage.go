package storage

import (
	"github.com/revelaction/arcstd/parse"
	sent "github.com/revelaction/arcstd/sentence"
)

// DocReader defines read operations for document storage
type DocReader interface {
	// List returns the metadata (Id, Title, Labels) of documents.
	// If labelMatch is not empty, only documents with at least one label containing the string are returned.
	// Content (Sentences) is not loaded.
	List(labelMatch string) ([]sent.Doc, error)

	// Read returns a document by ID
	Read(id int) (sent.Doc, error)

	// Labels returns all unique labels found across all documents, sorted alphabetically.
	// If pattern is not empty, it returns labels that contain the pattern.
	Labels(pattern string) ([]string, error)
}

// DocWriter defines write operations for document storage
type DocWriter interface {
	// Write persists a document and its sentences to storage
	Write(doc sent.Doc) error
}

// DocRepository combines read and write operations
type DocRepository interface {
	DocReader
	DocWriter
}

// Parse is the parser output for one sentence.
type Parse struct {
	DocId      int         `json:"doc"`
	SentenceId int         `json:"sentence"`
	Predictor  string      `json:"predictor"`
	Complete   bool        `json:"complete"`
	Arcs       []parse.Arc `json:"arcs"`
}

// ParseWriter stores parser output. A second write for the same doc,
// sentence and predictor replaces the first.
type ParseWriter interface {
	WriteParse(p Parse) error
}

type ParseReader interface {
	// ReadParses returns the parses of a doc by the predictor, ordered by
	// sentence.
	ReadParses(docId int, predictor string) ([]Parse, error)
}

// Derivation is the oracle transition sequence of a sentence.
type Derivation struct {
	DocId       int                `json:"doc"`
	SentenceId  int                `json:"sentence"`
	Transitions []parse.Transition `json:"transitions"`
}

type DerivationWriter interface {
	WriteDerivation(d Derivation) error
}

type DerivationReader interface {
	// ReadDerivations returns the derivations of a doc, ordered by sentence.
	ReadDerivations(docId int) ([]Derivation, error)
}
