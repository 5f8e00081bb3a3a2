package accumulator

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOperand is returned when a divide command is built with a zero operand.
	ErrInvalidOperand = errors.New("invalid operand")
	// ErrUnknownKind is returned for operation names or kinds outside Add..Divide.
	ErrUnknownKind = errors.New("unknown operation")
)

// Kind identifies the arithmetic operation a Command performs.
type Kind int

const (
	Add Kind = iota
	Subtract
	Multiply
	Divide
)

var kindNames = [...]string{
	Add:      "add",
	Subtract: "subtract",
	Multiply: "multiply",
	Divide:   "divide",
}

func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

func (k Kind) valid() bool {
	return k >= Add && k <= Divide
}

// ParseKind maps an operation name such as "add" to its Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Command is a recorded reversible operation. It is a plain value and is
// safe to copy.
type Command struct {
	Kind    Kind
	Operand float64
}

// NewCommand builds a validated command.
func NewCommand(kind Kind, operand float64) (Command, error) {
	cmd := Command{Kind: kind, Operand: operand}
	if err := cmd.Validate(); err != nil {
		return Command{}, err
	}
	return cmd, nil
}

// Validate reports whether the command can be executed.
func (c Command) Validate() error {
	if !c.Kind.valid() {
		return fmt.Errorf("%w: %s", ErrUnknownKind, c.Kind)
	}
	if c.Kind == Divide && c.Operand == 0 {
		return fmt.Errorf("divide by %g: %w", c.Operand, ErrInvalidOperand)
	}
	return nil
}

// Apply returns v with the command's forward formula applied.
func (c Command) Apply(v float64) float64 {
	return c.eval(v, false)
}

// Revert returns v with the command's inverse formula applied.
func (c Command) Revert(v float64) float64 {
	return c.eval(v, true)
}

// eval is the single dispatch point for both directions. The inverse of
// Multiply and Divide needs no zero guard since Validate already rejected
// a zero divisor on the way in.
func (c Command) eval(v float64, inverse bool) float64 {
	kind := c.Kind
	if inverse {
		kind = kind.inverse()
	}
	switch kind {
	case Add:
		return v + c.Operand
	case Subtract:
		return v - c.Operand
	case Multiply:
		return v * c.Operand
	case Divide:
		return v / c.Operand
	default:
		panic(fmt.Sprintf("accumulator: unhandled kind %s", kind))
	}
}

func (k Kind) inverse() Kind {
	switch k {
	case Add:
		return Subtract
	case Subtract:
		return Add
	case Multiply:
		return Divide
	case Divide:
		return Multiply
	default:
		return k
	}
}

// String returns a human-readable description, e.g. "multiply 2".
func (c Command) String() string {
	return fmt.Sprintf("%s %g", c.Kind, c.Operand)
}
