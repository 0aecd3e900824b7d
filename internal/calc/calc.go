// Package calc evaluates expressions over exact decimal numbers
// written in reverse Polish notation, such as "1.2 3 + 2 /".
package calc

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tvukit/decimal"
)

var (
	// ErrStackUnderflow is returned when a token needs more values than the stack holds.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrUnknownToken is returned for a token that is neither a word nor a number.
	ErrUnknownToken = errors.New("unknown token")
	// ErrNotInteger is returned when a digit count is not an integer.
	ErrNotInteger = errors.New("not an integer")
	// ErrResultCount is returned by [Eval] when the stack does not end with one value.
	ErrResultCount = errors.New("expression must leave exactly one value")
)

type binaryFunc func(x, y decimal.Number) (decimal.Number, error)

func exact(f func(x, y decimal.Number) decimal.Number) binaryFunc {
	return func(x, y decimal.Number) (decimal.Number, error) {
		return f(x, y), nil
	}
}

// binary operators pop y, then x, and push x op y.
var binary = map[string]binaryFunc{
	"+":  exact(decimal.Number.Add),
	"-":  exact(decimal.Number.Sub),
	"*":  exact(decimal.Number.Mul),
	"/":  decimal.Number.Quo,
	"//": decimal.Number.FloorDiv,
	"%":  decimal.Number.Mod,
	"**": decimal.Number.Pow,
}

var unary = map[string]func(decimal.Number) decimal.Number{
	"neg": decimal.Number.Neg,
	"abs": decimal.Number.Abs,
}

// rounding words pop ndigits, then the value.
var rounding = map[string]func(decimal.Number, int) decimal.Number{
	"round": decimal.Number.Round,
	"floor": decimal.Number.Floor,
	"ceil":  decimal.Number.Ceil,
	"trunc": decimal.Number.Trunc,
}

// Calculator is a stack of numbers manipulated by tokens.
// A Calculator is not safe for concurrent use.
type Calculator struct {
	stack []decimal.Number
	log   logrus.FieldLogger
}

// New returns an empty calculator.
// If log is nil, evaluation steps are not logged.
func New(log logrus.FieldLogger) *Calculator {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Calculator{log: log}
}

// Push applies tokens left to right.
// Tokens are either numbers, operators or stack words.
// If a token fails, the stack is left as it was before the call.
func (c *Calculator) Push(tokens ...string) error {
	stack := slices.Clone(c.stack)
	for _, token := range tokens {
		var err error
		stack, err = c.apply(stack, token)
		if err != nil {
			c.log.WithError(err).WithField("token", token).Debug("token rejected")
			return fmt.Errorf("token %q: %w", token, err)
		}
		c.log.WithFields(logrus.Fields{
			"token": token,
			"depth": len(stack),
		}).Debug("token applied")
	}
	c.stack = stack
	return nil
}

func (c *Calculator) apply(stack []decimal.Number, token string) ([]decimal.Number, error) {
	word := strings.ToLower(token)

	if f, ok := binary[word]; ok {
		if len(stack) < 2 {
			return nil, ErrStackUnderflow
		}
		x, y := stack[len(stack)-2], stack[len(stack)-1]
		z, err := f(x, y)
		if err != nil {
			return nil, err
		}
		return append(stack[:len(stack)-2], z), nil
	}

	if f, ok := unary[word]; ok {
		if len(stack) < 1 {
			return nil, ErrStackUnderflow
		}
		stack[len(stack)-1] = f(stack[len(stack)-1])
		return stack, nil
	}

	if f, ok := rounding[word]; ok {
		if len(stack) < 2 {
			return nil, ErrStackUnderflow
		}
		x, n := stack[len(stack)-2], stack[len(stack)-1]
		ndigits, err := toInt(n)
		if err != nil {
			return nil, err
		}
		return append(stack[:len(stack)-2], f(x, ndigits)), nil
	}

	switch word {
	case "dup":
		if len(stack) < 1 {
			return nil, ErrStackUnderflow
		}
		return append(stack, stack[len(stack)-1]), nil
	case "swap":
		if len(stack) < 2 {
			return nil, ErrStackUnderflow
		}
		stack[len(stack)-2], stack[len(stack)-1] = stack[len(stack)-1], stack[len(stack)-2]
		return stack, nil
	case "drop":
		if len(stack) < 1 {
			return nil, ErrStackUnderflow
		}
		return stack[:len(stack)-1], nil
	case "clear":
		return stack[:0], nil
	}

	d, err := decimal.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownToken, err)
	}
	return append(stack, d), nil
}

// toInt converts an integral number to int.
func toInt(d decimal.Number) (int, error) {
	if !d.IsInt() {
		return 0, fmt.Errorf("%f: %w", d, ErrNotInteger)
	}
	n, ok := d.Int64()
	if !ok || int64(int(n)) != n {
		return 0, fmt.Errorf("%f: %w", d, ErrNotInteger)
	}
	return int(n), nil
}

// Stack returns a copy of the stack, bottom first.
func (c *Calculator) Stack() []decimal.Number {
	return slices.Clone(c.stack)
}

// Top returns the value on top of the stack.
func (c *Calculator) Top() (decimal.Number, bool) {
	if len(c.stack) == 0 {
		return decimal.Number{}, false
	}
	return c.stack[len(c.stack)-1], true
}

// Len returns the depth of the stack.
func (c *Calculator) Len() int {
	return len(c.stack)
}

// Reset empties the stack.
func (c *Calculator) Reset() {
	c.stack = nil
}

// Eval evaluates a whitespace separated expression on a fresh calculator.
// The expression must leave exactly one value on the stack.
func Eval(expr string, log logrus.FieldLogger) (decimal.Number, error) {
	c := New(log)
	if err := c.Push(strings.Fields(expr)...); err != nil {
		return decimal.Number{}, err
	}
	if c.Len() != 1 {
		return decimal.Number{}, fmt.Errorf("%d values left: %w", c.Len(), ErrResultCount)
	}
	top, _ := c.Top()
	return top, nil
}
