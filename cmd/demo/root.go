package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"go-chi-accumulator/internal/accumulator"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var initial float64

	root := &cobra.Command{
		Use:   "demo",
		Short: "Replay accumulator operations with undo/redo",
		Long: `Replay accumulator operations and print the value after each step.

Steps are written as op:value (add:8, multiply:2, divide:4) or as the bare
words undo and redo.`,
		SilenceUsage: true,
	}

	run := &cobra.Command{
		Use:     "run STEP...",
		Short:   "Run the given steps against a fresh accumulator",
		Example: "  demo run --initial 10 multiply:2 subtract:5 undo undo redo",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return replay(cmd.OutOrStdout(), initial, args)
		},
	}
	run.Flags().Float64Var(&initial, "initial", 0, "starting value")

	scenarios := &cobra.Command{
		Use:   "scenarios",
		Short: "Run the built-in reference scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for i, sc := range builtinScenarios {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "# %s\n", sc.name)
				if err := replay(out, sc.initial, sc.steps); err != nil {
					return err
				}
			}
			return nil
		},
	}

	root.AddCommand(run, scenarios)
	return root
}

type scenario struct {
	name    string
	initial float64
	steps   []string
}

var builtinScenarios = []scenario{
	{"add then undo/redo", 0, []string{"add:8", "undo", "redo", "undo"}},
	{"multiply and subtract", 10, []string{"multiply:2", "subtract:5", "undo", "undo", "redo"}},
}

// replay runs steps in order, writing one "step => value" line per step.
func replay(out io.Writer, initial float64, steps []string) error {
	acc := accumulator.New(accumulator.WithInitialValue(initial))
	fmt.Fprintf(out, "start => %g\n", acc.Value())

	for _, step := range steps {
		if err := applyStep(acc, step); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s => %g\n", step, acc.Value())
	}
	return nil
}

func applyStep(acc *accumulator.Accumulator, step string) error {
	switch step {
	case "undo":
		acc.Undo()
		return nil
	case "redo":
		acc.Redo()
		return nil
	}

	name, raw, ok := strings.Cut(step, ":")
	if !ok {
		return fmt.Errorf("step %q: want op:value, undo or redo", step)
	}
	kind, err := accumulator.ParseKind(name)
	if err != nil {
		return fmt.Errorf("step %q: %w", step, err)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("step %q: %w", step, err)
	}
	cmd, err := accumulator.NewCommand(kind, v)
	if err != nil {
		return fmt.Errorf("step %q: %w", step, err)
	}
	return acc.Execute(cmd)
}
