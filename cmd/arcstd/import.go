package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/arcstd/conllu"
	sent "github.com/revelaction/arcstd/sentence"
	"github.com/revelaction/arcstd/storage/filesystem"
	"github.com/revelaction/arcstd/storage/sqlite/zombiezen"
)

func importCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "import CoNLL-U files into a sqlite database",
		ArgsUsage: "<file.conllu|dir>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "to",
				Usage:    "sqlite database, created if missing",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:    "label",
				Aliases: []string{"l"},
				Usage:   "label added to every imported doc",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("no CoNLL-U files given")
			}

			files, err := conlluFiles(c.Args().Slice())
			if err != nil {
				return err
			}

			pool, err := e.pool.Open(c.String("to"))
			if err != nil {
				return err
			}
			dst := zombiezen.NewDocStore(pool)

			bar := e.progress(len(files))

			count := 0
			for _, path := range files {
				sentences, err := conllu.ReadFile(path)
				if err != nil {
					e.stopProgress()
					return err
				}

				doc := sent.Doc{Title: filepath.Base(path), Labels: c.StringSlice("label"), Sentences: sentences}
				if err := dst.Write(doc); err != nil {
					e.stopProgress()
					return fmt.Errorf("failed to write doc %s: %w", doc.Title, err)
				}
				e.log.Info("imported doc", "title", doc.Title, "sentences", len(sentences))
				count++
				bar.Incr()
			}
			e.stopProgress()

			fmt.Fprintf(e.ui.Out, "Successfully imported %d docs to %s\n", count, c.String("to"))
			return nil
		},
	}
}

// conlluFiles expands directories to the .conllu files they contain.
func conlluFiles(args []string) ([]string, error) {
	files := []string{}
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() && filepath.Ext(entry.Name()) == filesystem.ExtConllu {
				files = append(files, filepath.Join(arg, entry.Name()))
			}
		}
	}
	return files, nil
}
