package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"go-chi-accumulator/internal/accumulator"

	"github.com/google/go-cmp/cmp"
)

func TestRunPrintsValueAfterEachStep(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"run", "--initial", "10", "multiply:2", "subtract:5", "undo", "undo", "redo"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := []string{
		"start => 10",
		"multiply:2 => 20",
		"subtract:5 => 15",
		"undo => 20",
		"undo => 10",
		"redo => 20",
	}
	got := strings.Split(strings.TrimSpace(out.String()), "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestScenariosCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"scenarios"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if !strings.Contains(out.String(), "add:8 => 8\nundo => 0\nredo => 8\nundo => 0\n") {
		t.Fatalf("missing first scenario in output:\n%s", out.String())
	}
}

func TestApplyStepErrors(t *testing.T) {
	tests := []struct {
		step string
		want error
	}{
		{"divide:0", accumulator.ErrInvalidOperand},
		{"modulo:3", accumulator.ErrUnknownKind},
	}

	for _, tc := range tests {
		t.Run(tc.step, func(t *testing.T) {
			acc := accumulator.New()
			err := applyStep(acc, tc.step)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if acc.CanUndo() {
				t.Fatal("expected no history after a failed step")
			}
		})
	}

	if err := applyStep(accumulator.New(), "add"); err == nil {
		t.Fatal("expected error for step without a value")
	}
}
