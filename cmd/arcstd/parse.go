package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/arcstd/conllu"
	"github.com/revelaction/arcstd/parse"
	"github.com/revelaction/arcstd/render"
	"github.com/revelaction/arcstd/storage"
)

const (
	formatText   = "text"
	formatJSON   = "json"
	formatConllu = "conllu"
)

func parseCommand(e *env) *cli.Command {
	flags := append(parseFlags(),
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "output format: text, json or conllu",
			Value:   formatText,
		},
		&cli.StringFlag{
			Name:  "store",
			Usage: "sqlite database to store the parses in",
		},
	)

	return &cli.Command{
		Name:      "parse",
		Usage:     "parse the sentences of one or more docs",
		ArgsUsage: "[doc id]...",
		Flags:     flags,
		Action: func(c *cli.Context) error {
			format := c.String("format")
			switch format {
			case formatText, formatJSON, formatConllu:
			default:
				return fmt.Errorf("unknown format %q", format)
			}

			pc, err := e.parseConfig(c)
			if err != nil {
				return err
			}

			var store storage.ParseWriter
			if path := c.String("store"); path != "" {
				if store, err = NewParseStore(e.pool, path); err != nil {
					return err
				}
			}

			docs, err := e.selectDocs(c)
			if err != nil {
				return err
			}

			res, err := e.parseDocs(c, docs, pc, false)
			if err != nil {
				return err
			}

			if store != nil {
				for _, j := range res.jobs {
					p := storage.Parse{
						DocId:      j.docId,
						SentenceId: j.sentence.Id,
						Predictor:  pc.Predictor,
						Complete:   j.state.Complete(),
						Arcs:       j.arcs,
					}
					if err := store.WriteParse(p); err != nil {
						return err
					}
				}
			}

			switch format {
			case formatJSON:
				results := make([]render.Result, len(res.jobs))
				for i, j := range res.jobs {
					results[i] = render.Result{
						DocId:      j.docId,
						SentenceId: j.sentence.Id,
						Text:       j.sentence.Text(),
						Predictor:  pc.Predictor,
						Complete:   j.state.Complete(),
						Arcs:       j.arcs,
					}
				}
				return render.NewJSONRenderer(e.ui.Out).Render(results)

			case formatConllu:
				for _, j := range res.jobs {
					if err := conllu.Write(e.ui.Out, j.sentence, j.arcs); err != nil {
						return err
					}
				}

			default:
				r := render.NewRenderer(e.ui.Out)
				for _, doc := range docs {
					r.AddDocName(doc.Id, doc.Title)
				}
				for _, j := range res.jobs {
					status := "✔"
					if !j.state.Complete() {
						status = "✘"
					}
					r.Sentence(j.sentence, fmt.Sprintf("%s %s %d ", status, r.Title(j.docId), j.sentence.Id))
					r.Arcs(j.arcs, parse.NewPartialParse(j.sentence.Words()).Sentence())
				}
				fmt.Fprintf(e.ui.Out, "Parsed %d sentences, %d dropped, %d skipped\n", len(res.jobs), res.dropped, res.skipped)
			}

			return nil
		},
	}
}
