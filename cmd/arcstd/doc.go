package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/arcstd/render"
)

func docCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "doc",
		Usage:     "list the docs, or show the sentences of one doc",
		ArgsUsage: "[doc id]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "label",
				Aliases: []string{"l"},
				Usage:   "only docs with a label containing this string",
			},
			&cli.BoolFlag{
				Name:  "labels",
				Usage: "list the labels instead of the docs",
			},
		},
		Action: func(c *cli.Context) error {
			repo, err := e.docs()
			if err != nil {
				return err
			}

			if c.Bool("labels") {
				labels, err := repo.Labels(c.String("label"))
				if err != nil {
					return err
				}
				for _, l := range labels {
					fmt.Fprintf(e.ui.Out, "🏷  %s\n", l)
				}
				return nil
			}

			if c.NArg() == 0 {
				docs, err := repo.List(c.String("label"))
				if err != nil {
					return err
				}
				for _, doc := range docs {
					line := fmt.Sprintf("📖 %d %s", doc.Id, doc.Title)
					if len(doc.Labels) > 0 {
						line += " [" + strings.Join(doc.Labels, ", ") + "]"
					}
					fmt.Fprintln(e.ui.Out, line)
				}
				return nil
			}

			doc, err := e.readDoc(c, 0)
			if err != nil {
				return err
			}

			r := render.NewRenderer(e.ui.Out)
			for i, s := range doc.Sentences {
				r.Sentence(s, fmt.Sprintf("✍  %d ", i))
			}
			return nil
		},
	}
}
