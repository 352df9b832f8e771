package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corefuzz/corefuzz/internal/config"
	"github.com/corefuzz/corefuzz/serialize"
	"github.com/corefuzz/corefuzz/world"
)

var statsCmd = newStatsCmd()

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Report how many inputs are currently stored in the corpus",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			corpus, err := world.NewCorpus[string](cfg.CorpusDir, serialize.NewCBOR[string](".cbor"))
			if err != nil {
				return err
			}
			values, err := corpus.Load()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "corpus directory: %s\nstored inputs: %d\n", cfg.CorpusDir, len(values))
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
