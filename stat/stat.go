package stat

import (
	"github.com/revelaction/arcstd/gold"
	sent "github.com/revelaction/arcstd/sentence"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumDocs               int            `json:"docs"`
	NumSentences          int            `json:"sentences"`
	NumTokens             int            `json:"tokens"`
	TokensPerSentenceMean int            `json:"tokens_per_sentence_mean"`
	TokensPerSentenceDis  map[int]int    `json:"tokens_per_sentence"`
	NumProjective         int            `json:"projective"`
	NumNonProjective      int            `json:"non_projective"`
	NumInvalid            int            `json:"invalid"`
	LabelDis              map[string]int `json:"labels"`
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{TokensPerSentenceDis: map[int]int{}, LabelDis: map[string]int{}}
	return &Handler{
		stats: stats,
	}
}

// Aggregate adds the doc to the statistics. It can be called for several
// docs.
func (h *Handler) Aggregate(doc sent.Doc) {
	h.stats.NumDocs++
	h.stats.NumSentences += len(doc.Sentences)

	for _, sentence := range doc.Sentences {
		h.stats.NumTokens += len(sentence.Tokens)
		h.stats.TokensPerSentenceDis[len(sentence.Tokens)]++

		for _, tok := range sentence.Tokens {
			h.stats.LabelDis[tok.Dep]++
		}

		tree, err := gold.New(sentence)
		switch {
		case err != nil:
			h.stats.NumInvalid++
		case tree.Projective():
			h.stats.NumProjective++
		default:
			h.stats.NumNonProjective++
		}
	}

	if h.stats.NumSentences > 0 {
		h.stats.TokensPerSentenceMean = h.stats.NumTokens / h.stats.NumSentences
	}
}
