package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/arcstd/storage/filesystem"
)

func exportCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write the docs of the repository as JSON files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "to",
				Usage:    "destination directory, created if missing",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "label",
				Aliases: []string{"l"},
				Usage:   "only docs with a label containing this string",
			},
		},
		Action: func(c *cli.Context) error {
			src, err := e.docs()
			if err != nil {
				return err
			}

			to := c.String("to")
			if err := os.MkdirAll(to, 0755); err != nil {
				return err
			}
			dst, err := filesystem.NewDocStore(to)
			if err != nil {
				return err
			}

			docs, err := src.List(c.String("label"))
			if err != nil {
				return err
			}

			bar := e.progress(len(docs))
			defer e.stopProgress()

			for _, meta := range docs {
				doc, err := src.Read(meta.Id)
				if err != nil {
					return err
				}
				if err := dst.Write(doc); err != nil {
					return fmt.Errorf("failed to export doc %d: %w", doc.Id, err)
				}
				e.log.Info("exported doc", "id", doc.Id, "file", filesystem.FileName(doc.Title))
				bar.Incr()
			}

			e.stopProgress()
			fmt.Fprintf(e.ui.Out, "Successfully exported %d docs to %s\n", len(docs), to)
			return nil
		},
	}
}
