package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corefuzz/corefuzz/internal/config"
	"github.com/corefuzz/corefuzz/pool"
)

var minifyAttemptsFlag int

var minifyCmd = newMinifyCmd()

// newMinifyCmd builds the minify subcommand: it repeatedly generates
// candidate strings from the demo grammar, keeps only ones that still
// trigger the planted crash, and uses pool.MaximiseObservation[float64]
// (observation = negative length, so "maximise" means "shortest")
// to track the smallest crashing input found, per spec.md §4.13's
// minification pool pair (Unit pins the known-interesting seed;
// MaximiseObservation narrows it down).
func newMinifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "minify",
		Short: "Search for a small input that still triggers the demo crash",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			mut, err := buildDemoMutator()
			if err != nil {
				return err
			}

			best := pool.NewMaximiseObservation[float64]()
			values := make(map[pool.StorageIndex]string)

			// pinned tracks the current smallest known crash as a Unit pool,
			// so GetRandomIndex always resolves to "the input we'd re-verify
			// against the target right now" the way spec.md §4.13 pins
			// minification around a single known-interesting seed.
			var pinned *pool.Unit[pool.CounterObservations]

			var nextID pool.StorageIndex
			found := false

			for i := 0; i < minifyAttemptsFlag; i++ {
				value, _ := mut.Generate(cfg.MaxComplexity)
				crashed := func() (c bool) {
					defer func() {
						if recover() != nil {
							c = true
						}
					}()
					runDemoTarget(value)
					return false
				}()
				if !crashed {
					continue
				}

				found = true
				id := nextID
				nextID++
				values[id] = value
				obs := -float64(len(value))
				if deltas := best.Process(id, &obs, float64(len(value))); len(deltas) > 0 {
					pinned = pool.NewUnit[pool.CounterObservations](id)
				}
			}

			if !found || pinned == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "no crashing input found in", minifyAttemptsFlag, "attempts")
				return nil
			}

			id, _ := pinned.GetRandomIndex()
			fmt.Fprintf(cmd.OutOrStdout(), "smallest crashing input (%d bytes): %q\n", len(values[id]), values[id])
			return nil
		},
	}
	cmd.Flags().IntVar(&minifyAttemptsFlag, "attempts", 10000, "number of candidate inputs to try")
	return cmd
}

func init() {
	rootCmd.AddCommand(minifyCmd)
}
