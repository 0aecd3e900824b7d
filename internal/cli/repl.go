package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/tvukit/decimal/internal/calc"
)

// lineReader is the part of readline used by the session loop.
type lineReader interface {
	Readline() (string, error)
}

func newReplCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive calculator session",
		Long: `Start an interactive calculator session.

Each line is a sequence of tokens applied to a stack kept between lines.
The top of the stack is printed after every line. "stack" prints the
whole stack, "quit" or "exit" ends the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rl, err := readline.NewEx(&readline.Config{
				Prompt: a.config.Prompt,
				Stdin:  io.NopCloser(cmd.InOrStdin()),
				Stdout: cmd.OutOrStdout(),
				Stderr: cmd.ErrOrStderr(),
			})
			if err != nil {
				return fmt.Errorf("failed to start readline: %w", err)
			}
			defer func() { _ = rl.Close() }()

			return a.repl(rl, cmd.OutOrStdout())
		},
	}
}

// repl reads lines until EOF or quit and applies them to one calculator.
func (a *app) repl(r lineReader, w io.Writer) error {
	c := calc.New(a.log)
	for {
		line, err := r.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if line == "" {
				return nil
			}
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return fmt.Errorf("failed to read line: %w", err)
		}

		line = strings.TrimSpace(line)
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "stack":
			for _, d := range c.Stack() {
				fmt.Fprintln(w, a.format(d))
			}
			continue
		}

		if err := c.Push(strings.Fields(line)...); err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
			continue
		}
		if top, ok := c.Top(); ok {
			fmt.Fprintln(w, a.format(top))
		}
	}
}
