package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/arcstd/stat"
)

func statCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "corpus statistics of one doc or all docs",
		ArgsUsage: "[doc id]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "label",
				Aliases: []string{"l"},
				Usage:   "only docs with a label containing this string",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the statistics as JSON",
			},
		},
		Action: func(c *cli.Context) error {
			docs, err := e.selectDocs(c)
			if err != nil {
				return err
			}

			hdl := stat.NewHandler()
			for _, doc := range docs {
				hdl.Aggregate(doc)
			}
			stats := hdl.Get()

			if c.Bool("json") {
				enc := json.NewEncoder(e.ui.Out)
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			}

			fmt.Fprintf(e.ui.Out, "Num docs %d, num sentences %d, num tokens %d, num tokens per sentence %d\n",
				stats.NumDocs, stats.NumSentences, stats.NumTokens, stats.TokensPerSentenceMean)
			fmt.Fprintf(e.ui.Out, "Projective %d, non projective %d, invalid %d\n",
				stats.NumProjective, stats.NumNonProjective, stats.NumInvalid)

			labels := make([]string, 0, len(stats.LabelDis))
			for l := range stats.LabelDis {
				labels = append(labels, l)
			}
			sort.Slice(labels, func(i, j int) bool {
				if stats.LabelDis[labels[i]] != stats.LabelDis[labels[j]] {
					return stats.LabelDis[labels[i]] > stats.LabelDis[labels[j]]
				}
				return labels[i] < labels[j]
			})
			for _, l := range labels {
				fmt.Fprintf(e.ui.Out, "%12s %d\n", l, stats.LabelDis[l])
			}
			return nil
		},
	}
}
