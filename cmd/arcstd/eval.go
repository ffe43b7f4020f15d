package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/arcstd/gold"
	"github.com/revelaction/arcstd/score"
	sent "github.com/revelaction/arcstd/sentence"
	"github.com/revelaction/arcstd/storage"
)

func evalCommand(e *env) *cli.Command {
	flags := append(parseFlags(),
		&cli.BoolFlag{
			Name:  "json",
			Usage: "print the scores as JSON",
		},
		&cli.StringFlag{
			Name:  "from-store",
			Usage: "score the parses of the predictor stored in this sqlite database instead of parsing",
		},
	)

	return &cli.Command{
		Name:      "eval",
		Usage:     "parse docs and score the arcs against the gold trees",
		ArgsUsage: "[doc id]...",
		Flags:     flags,
		Action: func(c *cli.Context) error {
			pc, err := e.parseConfig(c)
			if err != nil {
				return err
			}

			docs, err := e.selectDocs(c)
			if err != nil {
				return err
			}

			hdl := score.NewHandler()
			var dropped, skipped int
			if path := c.String("from-store"); path != "" {
				store, err := NewParseStore(e.pool, path)
				if err != nil {
					return err
				}
				if dropped, skipped, err = e.scoreStored(hdl, store, docs, pc.Predictor); err != nil {
					return err
				}
			} else {
				res, err := e.parseDocs(c, docs, pc, true)
				if err != nil {
					return err
				}
				for _, j := range res.jobs {
					hdl.Aggregate(j.arcs, j.tree.Arcs())
				}
				dropped, skipped = res.dropped, res.skipped
			}
			scores := hdl.Get()

			if c.Bool("json") {
				return json.NewEncoder(e.ui.Out).Encode(scores)
			}

			fmt.Fprintf(e.ui.Out, "Predictor %s: %d sentences, %d tokens, %d dropped, %d skipped\n",
				pc.Predictor, scores.Sentences, scores.Tokens, dropped, skipped)
			fmt.Fprintf(e.ui.Out, "UAS %.4f LAS %.4f\n", scores.UAS, scores.LAS)
			return nil
		},
	}
}

// scoreStored aggregates the stored parses of the predictor. Incomplete
// parses count as dropped; sentences without a valid gold tree are skipped.
func (e *env) scoreStored(hdl *score.Handler, store storage.ParseReader, docs []sent.Doc, predictor string) (dropped, skipped int, err error) {
	for _, doc := range docs {
		parses, err := store.ReadParses(doc.Id, predictor)
		if err != nil {
			return 0, 0, err
		}
		if len(parses) == 0 {
			e.log.Warn("no stored parses", "doc", doc.Id, "predictor", predictor)
		}

		for _, p := range parses {
			if p.SentenceId < 0 || p.SentenceId >= len(doc.Sentences) {
				return 0, 0, fmt.Errorf("parse for sentence %d not in doc %d", p.SentenceId, doc.Id)
			}

			tree, err := gold.New(doc.Sentences[p.SentenceId])
			if err != nil {
				e.log.Warn("skipping sentence", "doc", doc.Id, "sentence", p.SentenceId, "err", err)
				skipped++
				continue
			}
			if !p.Complete {
				dropped++
			}
			hdl.Aggregate(p.Arcs, tree.Arcs())
		}
	}
	return dropped, skipped, nil
}
