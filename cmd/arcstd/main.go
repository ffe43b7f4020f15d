package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/arcstd/config"
	"github.com/revelaction/arcstd/logging"
)

var (
	BuildTag    = "dev"
	BuildCommit = "none"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

// env is the state shared by the commands of one run.
type env struct {
	ui    UI
	cfg   *config.Config
	log   *logging.Logger
	pool  *Pool
	quiet bool

	// a progress bar is rendering
	progressing bool
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	if err := newApp(ui).Run(os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "arcstd: %v\n", err)
}

func newApp(ui UI) *cli.App {
	e := &env{ui: ui, pool: &Pool{}, log: logging.NopLogger()}

	return &cli.App{
		Name:      "arcstd",
		Usage:     "arc-standard dependency parsing of CoNLL-U corpora",
		Version:   BuildTag,
		Writer:    ui.Out,
		ErrWriter: ui.Err,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "config file (default " + config.ConfigFile() + ")",
			},
			&cli.StringFlag{
				Name:    "doc-path",
				Aliases: []string{"d"},
				Usage:   "directory of .conllu/.json docs or sqlite file",
				EnvVars: []string{"ARCSTD_DOC_PATH"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: fmt.Sprintf("one of %v", logging.ValidLevels()),
			},
			&cli.StringFlag{
				Name:  "log-dir",
				Usage: "directory of " + logging.FileName + " (default stderr)",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "no progress bars",
			},
		},
		Before: e.setup,
		After:  e.close,
		Commands: []*cli.Command{
			importCommand(e),
			exportCommand(e),
			docCommand(e),
			sentenceCommand(e),
			statCommand(e),
			oracleCommand(e),
			parseCommand(e),
			evalCommand(e),
			stepCommand(e),
			versionCommand(e),
		},
	}
}

// setup loads the configuration, global flags first, and opens the logger.
func (e *env) setup(c *cli.Context) error {
	v, err := config.New(c.String("config"))
	if err != nil {
		return err
	}

	overrides := map[string]string{
		"doc-path":  "doc_path",
		"log-level": "logging.level",
		"log-dir":   "logging.dir",
	}
	for flag, key := range overrides {
		if c.IsSet(flag) {
			v.Set(key, c.String(flag))
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	e.cfg = cfg
	e.quiet = c.Bool("quiet")

	log, err := logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		return err
	}
	e.log = log
	e.log.Debug("configuration loaded", "doc_path", cfg.DocPath, "config_file", v.ConfigFileUsed())
	return nil
}

func (e *env) close(c *cli.Context) error {
	if err := e.pool.Close(); err != nil {
		return err
	}
	return e.log.Close()
}
