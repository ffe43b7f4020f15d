package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/arcstd/feature"
	"github.com/revelaction/arcstd/gold"
	"github.com/revelaction/arcstd/parse"
	"github.com/revelaction/arcstd/render"
	sent "github.com/revelaction/arcstd/sentence"
	"github.com/revelaction/arcstd/storage"
)

// featureLine is one training instance of the --features output.
type featureLine struct {
	DocId      int `json:"doc"`
	SentenceId int `json:"sentence"`
	Step       int `json:"step"`
	feature.Instance
}

func oracleCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "oracle",
		Usage:     "derive the transitions of the gold trees",
		ArgsUsage: "[doc id]...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "label",
				Aliases: []string{"l"},
				Usage:   "only docs with a label containing this string",
			},
			&cli.StringFlag{
				Name:  "store",
				Usage: "sqlite database to store the derivations in",
			},
			&cli.BoolFlag{
				Name:  "features",
				Usage: "print one JSON line of features and gold transition per step",
			},
			&cli.StringFlag{
				Name:  "replay",
				Usage: "sqlite database whose stored derivations are checked against the gold trees",
			},
		},
		Action: func(c *cli.Context) error {
			if c.IsSet("replay") && (c.IsSet("store") || c.Bool("features")) {
				return fmt.Errorf("--replay can not be combined with --store or --features")
			}

			docs, err := e.selectDocs(c)
			if err != nil {
				return err
			}

			if path := c.String("replay"); path != "" {
				return e.replayDerivations(docs, path)
			}

			var store storage.DerivationWriter
			if path := c.String("store"); path != "" {
				s, err := NewParseStore(e.pool, path)
				if err != nil {
					return err
				}
				store = s
			}

			var vocab *feature.Vocab
			if c.Bool("features") {
				all := []sent.Sentence{}
				for _, doc := range docs {
					all = append(all, doc.Sentences...)
				}
				vocab = feature.NewVocab(all)
				e.log.Info("vocabulary", "words", vocab.Words.Len(), "tags", vocab.Tags.Len(), "labels", vocab.Labels.Len())
			}

			total := 0
			for _, doc := range docs {
				total += len(doc.Sentences)
			}

			// output is printed after the progress bar is gone
			var buf bytes.Buffer
			r := render.NewRenderer(&buf)
			enc := json.NewEncoder(&buf)
			bar := e.progress(total)
			derived, skipped := 0, 0
			for _, doc := range docs {
				for _, s := range doc.Sentences {
					bar.Incr()
					tree, err := gold.New(s)
					if err != nil {
						e.log.Warn("skipping sentence", "doc", doc.Id, "sentence", s.Id, "err", err)
						skipped++
						continue
					}

					var ts []parse.Transition
					var instances []feature.Instance
					if vocab != nil {
						instances, err = vocab.Instances(s.Words(), tree)
						for _, in := range instances {
							ts = append(ts, in.Transition)
						}
					} else {
						ts, err = parse.Derive(s.Words(), tree)
					}
					if err != nil {
						e.log.Info("no derivation", "doc", doc.Id, "sentence", s.Id, "err", err)
						skipped++
						continue
					}

					if store != nil {
						d := storage.Derivation{DocId: doc.Id, SentenceId: s.Id, Transitions: ts}
						if err := store.WriteDerivation(d); err != nil {
							e.stopProgress()
							return err
						}
					}

					if vocab == nil {
						r.Transitions(ts, fmt.Sprintf("%d %d ", doc.Id, s.Id))
					}
					for i, in := range instances {
						if err := enc.Encode(featureLine{DocId: doc.Id, SentenceId: s.Id, Step: i, Instance: in}); err != nil {
							e.stopProgress()
							return err
						}
					}
					derived++
				}
			}

			e.stopProgress()

			if _, err := buf.WriteTo(e.ui.Out); err != nil {
				return err
			}
			if vocab == nil {
				fmt.Fprintf(e.ui.Out, "Derived %d sentences, %d skipped\n", derived, skipped)
			}
			e.log.Info("oracle done", "derived", derived, "skipped", skipped)
			return nil
		},
	}
}

// replayDerivations applies the stored derivations of the docs and compares
// the arcs with the gold trees.
func (e *env) replayDerivations(docs []sent.Doc, path string) error {
	store, err := NewParseStore(e.pool, path)
	if err != nil {
		return err
	}

	var reader storage.DerivationReader = store
	replayed, matched := 0, 0
	for _, doc := range docs {
		ds, err := reader.ReadDerivations(doc.Id)
		if err != nil {
			return err
		}

		for _, d := range ds {
			if d.SentenceId < 0 || d.SentenceId >= len(doc.Sentences) {
				return fmt.Errorf("derivation for sentence %d not in doc %d", d.SentenceId, doc.Id)
			}
			replayed++

			if err := replay(doc.Sentences[d.SentenceId], d.Transitions); err != nil {
				fmt.Fprintf(e.ui.Out, "✘ %d %d %v\n", doc.Id, d.SentenceId, err)
				continue
			}
			matched++
		}
	}

	fmt.Fprintf(e.ui.Out, "Replayed %d derivations, %d match the gold trees\n", replayed, matched)
	return nil
}

// replay parses the sentence with ts and checks the result is its gold tree.
func replay(s sent.Sentence, ts []parse.Transition) error {
	tree, err := gold.New(s)
	if err != nil {
		return err
	}

	p := parse.NewPartialParse(s.Words())
	arcs, err := p.Parse(ts)
	if err != nil {
		return err
	}
	if !p.Complete() {
		return fmt.Errorf("parse not complete: %s", p)
	}

	expected := tree.Arcs()
	if len(arcs) != len(expected) {
		return fmt.Errorf("%d arcs, gold has %d", len(arcs), len(expected))
	}
	byDep := make(map[int]parse.Arc, len(arcs))
	for _, a := range arcs {
		byDep[a.Dependent] = a
	}
	for _, want := range expected {
		got, ok := byDep[want.Dependent]
		if !ok {
			return fmt.Errorf("word %d unattached, gold %s", want.Dependent, want)
		}
		if got != want {
			return fmt.Errorf("arc %s, gold %s", got, want)
		}
	}
	return nil
}
