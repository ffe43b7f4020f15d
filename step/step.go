// Package step is an interactive shell that applies arc-standard
// transitions to one sentence, one at a time.
package step

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	prompt "github.com/c-bata/go-prompt"

	"github.com/revelaction/arcstd/parse"
	"github.com/revelaction/arcstd/render"
)

const (
	cmdShift       = "sh"
	cmdLeftArc     = "la"
	cmdRightArc    = "ra"
	cmdOracle      = "oracle"
	cmdAuto        = "auto"
	cmdUndo        = "undo"
	cmdReset       = "reset"
	cmdState       = "state"
	cmdTransitions = "ts"
	cmdHelp        = "help"
	cmdQuit        = "quit"
)

var commands = []prompt.Suggest{
	{Text: cmdShift, Description: "shift the next buffer word"},
	{Text: cmdLeftArc, Description: "la <label>: attach second under top"},
	{Text: cmdRightArc, Description: "ra <label>: attach top under second"},
	{Text: cmdOracle, Description: "apply the gold transition"},
	{Text: cmdAuto, Description: "apply gold transitions until complete"},
	{Text: cmdUndo, Description: "revert the last transition"},
	{Text: cmdReset, Description: "back to the initial configuration"},
	{Text: cmdState, Description: "show stack, buffer and arcs"},
	{Text: cmdTransitions, Description: "show the applied transitions"},
	{Text: cmdHelp, Description: "list commands"},
	{Text: cmdQuit, Description: "leave"},
}

var (
	ErrNoGold         = errors.New("no gold tree for this sentence")
	ErrUnknownCommand = errors.New("unknown command")
	ErrNothingToUndo  = errors.New("nothing to undo")
)

// Session holds the partial parse being stepped and its history.
type Session struct {
	words []parse.Word
	gold  parse.GoldTree

	state   *parse.PartialParse
	history []*parse.PartialParse
	applied []parse.Transition

	labels []string

	r *render.Renderer
}

// NewSession starts at the initial configuration of words. gold may be nil;
// oracle and auto then fail.
func NewSession(words []parse.Word, gold parse.GoldTree, r *render.Renderer) *Session {
	s := &Session{
		words: words,
		gold:  gold,
		state: parse.NewPartialParse(words),
		r:     r,
	}

	if gold != nil {
		seen := map[string]bool{}
		for i := 1; i <= len(words); i++ {
			if l := gold.Label(i); l != "" && !seen[l] {
				seen[l] = true
				s.labels = append(s.labels, l)
			}
		}
		sort.Strings(s.labels)
	}

	return s
}

// State returns the current partial parse.
func (s *Session) State() *parse.PartialParse {
	return s.state
}

// Applied returns the transitions applied since the initial configuration.
func (s *Session) Applied() []parse.Transition {
	return append([]parse.Transition(nil), s.applied...)
}

// Exec runs one command line. It reports whether the session should end.
func (s *Session) Exec(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	cmd, args := fields[0], fields[1:]
	switch cmd {
	case cmdQuit:
		return true, nil

	case cmdShift:
		return false, s.apply(parse.NewShift())

	case cmdLeftArc, cmdRightArc:
		if len(args) != 1 {
			return false, fmt.Errorf("usage: %s <label>", cmd)
		}
		t := parse.NewLeftArc(args[0])
		if cmd == cmdRightArc {
			t = parse.NewRightArc(args[0])
		}
		return false, s.apply(t)

	case cmdOracle:
		if s.gold == nil {
			return false, ErrNoGold
		}
		t, err := s.state.Oracle(s.gold)
		if err != nil {
			return false, err
		}
		return false, s.apply(t)

	case cmdAuto:
		if s.gold == nil {
			return false, ErrNoGold
		}
		for !s.state.Complete() {
			t, err := s.state.Oracle(s.gold)
			if err != nil {
				return false, err
			}
			if err := s.apply(t); err != nil {
				return false, err
			}
		}
		return false, nil

	case cmdUndo:
		if len(s.history) == 0 {
			return false, ErrNothingToUndo
		}
		s.state = s.history[len(s.history)-1]
		s.history = s.history[:len(s.history)-1]
		s.applied = s.applied[:len(s.applied)-1]
		s.r.State(s.state)
		return false, nil

	case cmdReset:
		s.state = parse.NewPartialParse(s.words)
		s.history = nil
		s.applied = nil
		s.r.State(s.state)
		return false, nil

	case cmdState:
		s.r.State(s.state)
		return false, nil

	case cmdTransitions:
		s.r.Transitions(s.applied, "")
		return false, nil

	case cmdHelp:
		for _, c := range commands {
			fmt.Fprintf(s.r.W, "%-7s %s\n", c.Text, c.Description)
		}
		return false, nil
	}

	return false, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
}

func (s *Session) apply(t parse.Transition) error {
	prev := s.state.Clone()
	if err := s.state.Step(t); err != nil {
		return err
	}
	s.history = append(s.history, prev)
	s.applied = append(s.applied, t)
	fmt.Fprintf(s.r.W, "%s\n", t)
	s.r.State(s.state)
	return nil
}

// Run reads commands with a prompt until quit.
func (s *Session) Run(errW io.Writer) error {
	fmt.Fprintln(s.r.W, "🔑 help: commands, quit: leave")
	s.r.State(s.state)

	history := []string{}

	for {
		in := prompt.Input("   ➜ ", s.completer(),
			prompt.OptionTitle("arcstd step"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionHistory(history),
		)

		history = append(history, in)
		quit, err := s.Exec(in)
		if err != nil {
			fmt.Fprintf(errW, "❌ %s\n", err)
			continue
		}
		if quit {
			return nil
		}
	}
}

func (s *Session) completer() func(in prompt.Document) []prompt.Suggest {
	return func(in prompt.Document) []prompt.Suggest {
		return s.Suggest(in.TextBeforeCursor())
	}
}

// Suggest returns the completions for the text before the cursor: commands
// for the first word, gold labels after la and ra.
func (s *Session) Suggest(before string) []prompt.Suggest {
	if before == "" {
		return []prompt.Suggest{}
	}

	tokens := strings.Split(before, " ")
	if len(tokens) == 1 {
		return prompt.FilterHasPrefix(commands, before, true)
	}

	if len(tokens) != 2 || (tokens[0] != cmdLeftArc && tokens[0] != cmdRightArc) {
		return []prompt.Suggest{}
	}

	labels := make([]prompt.Suggest, len(s.labels))
	for i, l := range s.labels {
		labels[i] = prompt.Suggest{Text: l}
	}
	return prompt.FilterHasPrefix(labels, tokens[1], false)
}
