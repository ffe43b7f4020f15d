package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/arcstd/gold"
	"github.com/revelaction/arcstd/parse"
	"github.com/revelaction/arcstd/render"
	"github.com/revelaction/arcstd/step"
)

func stepCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "step",
		Usage:     "apply transitions to a sentence interactively",
		ArgsUsage: "<doc id> <sentence id>",
		Action: func(c *cli.Context) error {
			s, err := e.readSentence(c, 0)
			if err != nil {
				return err
			}

			// without a valid gold tree the oracle commands are disabled
			var g parse.GoldTree
			tree, err := gold.New(s)
			switch {
			case err == nil:
				g = tree
			case errors.Is(err, gold.ErrInvalidTree):
				e.log.Warn("sentence without gold tree", "sentence", s.Id, "err", err)
			default:
				return err
			}

			r := render.NewRenderer(e.ui.Out)
			r.HasColor = true
			r.Sentence(s, fmt.Sprintf("✍  %d ", s.Id))

			return step.NewSession(s.Words(), g, r).Run(e.ui.Err)
		},
	}
}
