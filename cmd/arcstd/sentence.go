package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/arcstd/gold"
	"github.com/revelaction/arcstd/parse"
	"github.com/revelaction/arcstd/render"
)

func sentenceCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "sentence",
		Usage:     "show the tokens, gold arcs and oracle derivation of a sentence",
		ArgsUsage: "<doc id> <sentence id>",
		Action: func(c *cli.Context) error {
			s, err := e.readSentence(c, 0)
			if err != nil {
				return err
			}

			r := render.NewRenderer(e.ui.Out)
			r.Sentence(s, fmt.Sprintf("✍  %d ", s.Id))
			fmt.Fprintln(e.ui.Out)
			r.Tokens(s)
			fmt.Fprintln(e.ui.Out)

			tree, err := gold.New(s)
			if err != nil {
				fmt.Fprintf(e.ui.Out, "gold: %v\n", err)
				return nil
			}

			words := parse.NewPartialParse(s.Words()).Sentence()
			r.Arcs(tree.Arcs(), words)
			fmt.Fprintln(e.ui.Out)

			if !tree.Projective() {
				fmt.Fprintln(e.ui.Out, "gold: non projective, no derivation")
				return nil
			}

			ts, err := parse.Derive(s.Words(), tree)
			if err != nil {
				return err
			}
			r.Transitions(ts, "⚙  ")
			return nil
		},
	}
}
