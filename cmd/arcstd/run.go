package main

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/arcstd/config"
	"github.com/revelaction/arcstd/gold"
	"github.com/revelaction/arcstd/parse"
	"github.com/revelaction/arcstd/predict"
	sent "github.com/revelaction/arcstd/sentence"
)

// job is one sentence handed to the batch driver.
type job struct {
	docId    int
	sentence sent.Sentence
	// nil when the gold annotation is not a tree
	tree  *gold.Tree
	state *parse.PartialParse
	arcs  []parse.Arc
}

// run is the outcome of parsing a set of docs.
type run struct {
	jobs    []*job
	skipped int
	dropped int
}

func parseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "label",
			Aliases: []string{"l"},
			Usage:   "only docs with a label containing this string",
		},
		&cli.StringFlag{
			Name:    "predictor",
			Aliases: []string{"p"},
			Usage:   "one of " + strings.Join(predict.Names(), ", "),
		},
		&cli.IntFlag{
			Name:    "batch-size",
			Aliases: []string{"b"},
			Usage:   "maximum sentences per predictor call",
		},
		&cli.IntFlag{
			Name:  "shards",
			Usage: "concurrent batch drivers",
		},
		&cli.Float64Flag{
			Name:  "noise",
			Usage: "fraction of proposals replaced by illegal transitions",
		},
		&cli.Int64Flag{
			Name:  "seed",
			Usage: "seed of the noise",
		},
	}
}

// parseConfig is the parse configuration with the command flags applied.
func (e *env) parseConfig(c *cli.Context) (config.ParseConfig, error) {
	cfg := *e.cfg
	if c.IsSet("predictor") {
		cfg.Parse.Predictor = c.String("predictor")
	}
	if c.IsSet("batch-size") {
		cfg.Parse.BatchSize = c.Int("batch-size")
	}
	if c.IsSet("shards") {
		cfg.Parse.Shards = c.Int("shards")
	}
	if c.IsSet("noise") {
		cfg.Parse.NoiseRate = c.Float64("noise")
	}
	if c.IsSet("seed") {
		cfg.Parse.Seed = c.Int64("seed")
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return config.ParseConfig{}, config.ValidationErrors(errs)
	}
	return cfg.Parse, nil
}

// parseDocs parses every sentence of the docs. Sentences without a valid
// gold tree are skipped when needGold is set or the predictor reads gold
// trees.
func (e *env) parseDocs(c *cli.Context, docs []sent.Doc, pc config.ParseConfig, needGold bool) (*run, error) {
	p, err := predict.ByName(pc.Predictor, pc.NoiseRate, pc.Seed)
	if err != nil {
		return nil, err
	}
	tracks := predict.NeedsGold(p)
	tracker, _ := p.(predict.Tracker)

	res := &run{}
	states := []*parse.PartialParse{}
	for _, doc := range docs {
		for _, s := range doc.Sentences {
			tree, err := gold.New(s)
			if err != nil {
				if needGold || tracks {
					e.log.Warn("skipping sentence", "doc", doc.Id, "sentence", s.Id, "err", err)
					res.skipped++
					continue
				}
			}

			j := &job{docId: doc.Id, sentence: s, tree: tree, state: parse.NewPartialParse(s.Words())}
			if tracks {
				tracker.Track(j.state, tree)
			}
			res.jobs = append(res.jobs, j)
			states = append(states, j.state)
		}
	}

	e.log.Info("parsing", "predictor", pc.Predictor, "sentences", len(states), "skipped", res.skipped,
		"batch_size", pc.BatchSize, "shards", pc.Shards)

	bar := e.progress(len(states))
	arcs, err := parse.ParseSharded(c.Context, states, p, pc.BatchSize, pc.Shards,
		parse.WithLogger(e.log),
		parse.WithProgress(func(done, total int) { _ = bar.Set(done) }),
		parse.WithDropped(func(pos int, err error) {
			res.dropped++
			j := res.jobs[pos]
			e.log.Info("sentence dropped", "doc", j.docId, "sentence", j.sentence.Id, "err", err)
		}),
	)
	e.stopProgress()
	if err != nil {
		return nil, err
	}

	for i, j := range res.jobs {
		j.arcs = arcs[i]
	}
	return res, nil
}
