package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dop251/goja"
	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/delegate/page"
)

// fireHelper lets scripts typed at the prompt trigger events by id.
const fireHelper = `function fire(id, type) {
	var el = document.getElementById(id);
	if (el === null) { throw new Error("no element with id " + id); }
	return el.trigger(type || "click");
}`

const replHelp = `Enter JavaScript to evaluate it against the page, or a command:
  .fire ID [TYPE]   trigger TYPE (default click) on the element with id ID
  .entries          list delegation entries
  .html [ID]        print the outer HTML of ID, or of the body
  .reset            remove every delegating listener
  .help             show this help
  .exit             leave`

func newReplCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "repl PAGE.html [SCRIPT.js ...]",
		Short: "Load a page and evaluate JavaScript against it interactively",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			runner := page.NewRunner(cfg, logger)
			s, err := runner.Open(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			s.Runtime().SetOutput(out)

			for _, sr := range s.Load() {
				fmt.Fprintf(out, "%s: %s\n", sr.Name, sr.Message)
			}
			for _, path := range args[1:] {
				if sr := s.RunFile(path); sr.Status != page.StatusPass {
					fmt.Fprintf(out, "%s: %s\n", sr.Name, sr.Message)
				}
			}

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "\033[36m" + appName + ">\033[0m ",
				InterruptPrompt: "^C",
				EOFPrompt:       ".exit",
				Stdout:          out,
				Stderr:          cmd.ErrOrStderr(),
			})
			if err != nil {
				return fmt.Errorf("failed to create readline: %w", err)
			}
			defer rl.Close()

			fmt.Fprintln(out, "Type .help for commands.")
			return repl(s, rl, out)
		},
	}
}

// lineReader is the part of *readline.Instance the loop needs.
type lineReader interface {
	Readline() (string, error)
}

// repl reads lines until EOF or .exit and evaluates them against s.
func repl(s *page.Session, in lineReader, out io.Writer) error {
	if _, err := s.Eval(fireHelper); err != nil {
		return err
	}
	s.Runtime().ClearErrors()

	for {
		line, err := in.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ".") {
			if done := command(s, line, out); done {
				return nil
			}
			continue
		}

		v, err := s.Eval(line)
		if err != nil {
			fmt.Fprintf(out, "Uncaught %v\n", err)
			continue
		}
		if v != nil && !goja.IsUndefined(v) {
			fmt.Fprintln(out, v.String())
		}
	}
}

// command runs a dot command and reports whether the loop should end.
func command(s *page.Session, line string, out io.Writer) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ".exit", ".quit":
		return true
	case ".help":
		fmt.Fprintln(out, replHelp)
	case ".fire":
		if len(fields) < 2 {
			fmt.Fprintln(out, "usage: .fire ID [TYPE]")
			return false
		}
		eventType := "click"
		if len(fields) > 2 {
			eventType = fields[2]
		}
		if err := s.Fire(fields[1], eventType); err != nil {
			fmt.Fprintf(out, "Uncaught %v\n", err)
		}
	case ".entries":
		entries := s.Entries()
		if len(entries) == 0 {
			fmt.Fprintln(out, "no entries")
		}
		for _, entry := range entries {
			fmt.Fprintf(out, "%s on %s (%d handlers)\n", entry.EventType, entry.Container, entry.Handlers)
		}
	case ".html":
		el := s.Document.Body()
		if len(fields) > 1 {
			el = s.Document.GetElementById(fields[1])
		}
		if el == nil {
			fmt.Fprintln(out, "not found")
			return false
		}
		fmt.Fprintln(out, el.OuterHTML())
	case ".reset":
		s.Delegator().Reset()
	default:
		fmt.Fprintf(out, "unknown command %s, try .help\n", fields[0])
	}
	return false
}
