package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tvukit/decimal/internal/calc"
)

func newEvalCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <token>...",
		Short: "Evaluate an expression in reverse Polish notation",
		Long: `Evaluate an expression in reverse Polish notation and print the result.

Operators: + - * / // % **
Unary:     neg abs
Rounding:  round floor ceil trunc (take the number of digits from the top of the stack)
Stack:     dup swap drop clear

Use -- before expressions starting with a negative number.`,
		Example: `  decicalc eval 1.2 3 + 2 /
  decicalc eval --format plain -- -7 2 //`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr := strings.Join(args, " ")
			d, err := calc.Eval(expr, a.log)
			if err != nil {
				return fmt.Errorf("failed to evaluate %q: %w", expr, err)
			}
			a.log.WithField("result", d.String()).Debug("expression evaluated")
			fmt.Fprintln(cmd.OutOrStdout(), a.format(d))
			return nil
		},
	}
}
