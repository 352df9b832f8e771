package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/corefuzz/corefuzz/internal/config"
	"github.com/corefuzz/corefuzz/report"
	"github.com/corefuzz/corefuzz/serialize"
	"github.com/corefuzz/corefuzz/world"
)

const seedCorpusSize = 16

var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the demonstration fuzz target until a crash or interruption",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg := config.Load()
			d, err := newDriver(driverConfig{
				CorpusDir:     cfg.CorpusDir,
				MaxComplexity: cfg.MaxComplexity,
				Seed:          cfg.Seed,
				Iterations:    cfg.Iterations,
				NumCounters:   cfg.NumCounters,
			}, globalLogger)
			if err != nil {
				return err
			}

			if err := d.seed(ctx, seedCorpusSize); err != nil {
				return err
			}

			go func() {
				err := world.Watch(ctx, cfg.CorpusDir, serialize.NewCBOR[string](".cbor"), func(value string) {
					d.AddSeed(ctx, value)
				})
				if err != nil {
					globalLogger.Warn("corpus watch stopped", "error", err)
				}
			}()

			err = d.Run(ctx, cfg.Iterations, func(n int) {
				fmt.Fprintln(cmd.OutOrStdout(), report.Summary(n, d.CorpusSize(), "-"))
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), report.Table(d.Stats()))
			return nil
		},
	}
	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}
