package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corefuzz/corefuzz/internal/config"
	"github.com/corefuzz/corefuzz/mutator"
)

var recurseAttemptsFlag int

var recurseCmd = newRecurseCmd()

// newRecurseCmd builds the recurse-check subcommand: it runs
// mutator.ExprMutator - a self-referential parenthesized-integer grammar -
// through repeated generate/mutate/unmutate cycles, reporting the deepest
// nesting observed. ExprMutator's Nested variant recurses into itself
// through mutator.Recursive, so this is the recursive combinator stack
// exercised by something other than its own package tests.
func newRecurseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurse-check",
		Short: "Exercise the self-referential Expr grammar through Recursive",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			m := mutator.NewExprMutator()

			deepest := 0
			for i := 0; i < recurseAttemptsFlag; i++ {
				v, _ := m.RandomArbitrary(cfg.MaxComplexity)
				cache, ok := m.Validate(&v)
				if !ok {
					continue
				}
				if d := exprDepth(v); d > deepest {
					deepest = d
				}

				token, _ := m.RandomMutate(&v, &cache, cfg.MaxComplexity)
				m.Unmutate(&v, &cache, token)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ran %d generate/mutate/unmutate cycles, deepest nesting observed: %d\n", recurseAttemptsFlag, deepest)
			return nil
		},
	}
	cmd.Flags().IntVar(&recurseAttemptsFlag, "attempts", 200, "number of generate/mutate/unmutate cycles to run")
	return cmd
}

// exprDepth counts levels of nesting below e.
func exprDepth(e mutator.Expr) int {
	if e.IsLeaf || e.Nested == nil {
		return 0
	}
	return 1 + exprDepth(*e.Nested)
}

func init() {
	rootCmd.AddCommand(recurseCmd)
}
