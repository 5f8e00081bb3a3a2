package accumulator

import (
	"errors"
	"testing"
)

func TestCommandApplyAndRevert(t *testing.T) {
	tests := []struct {
		cmd     Command
		start   float64
		forward float64
	}{
		{Command{Kind: Add, Operand: 3}, 2, 5},
		{Command{Kind: Subtract, Operand: 3}, 2, -1},
		{Command{Kind: Multiply, Operand: 4}, 2.5, 10},
		{Command{Kind: Divide, Operand: 4}, 10, 2.5},
		{Command{Kind: Add, Operand: -0.5}, 0, -0.5},
	}

	for _, tc := range tests {
		t.Run(tc.cmd.String(), func(t *testing.T) {
			got := tc.cmd.Apply(tc.start)
			if got != tc.forward {
				t.Fatalf("Apply(%g) = %g, want %g", tc.start, got, tc.forward)
			}
			if back := tc.cmd.Revert(got); back != tc.start {
				t.Fatalf("Revert(%g) = %g, want %g", got, back, tc.start)
			}
		})
	}
}

func TestNewCommandRejectsZeroDivisor(t *testing.T) {
	_, err := NewCommand(Divide, 0)
	if !errors.Is(err, ErrInvalidOperand) {
		t.Fatalf("expected ErrInvalidOperand, got %v", err)
	}

	// Zero is an ordinary operand for every other kind.
	for _, k := range []Kind{Add, Subtract, Multiply} {
		if _, err := NewCommand(k, 0); err != nil {
			t.Fatalf("%s 0: unexpected error: %v", k, err)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{Add, Subtract, Multiply, Divide} {
		got, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", k.String(), err)
		}
		if got != k {
			t.Fatalf("ParseKind(%q) = %s, want %s", k.String(), got, k)
		}
	}

	if _, err := ParseKind("modulo"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestKindStringOutOfRange(t *testing.T) {
	if got := Kind(9).String(); got != "kind(9)" {
		t.Fatalf("expected %q, got %q", "kind(9)", got)
	}
}
