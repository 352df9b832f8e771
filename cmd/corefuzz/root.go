package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/corefuzz/corefuzz/internal/config"
)

var (
	corpusDirFlag     string
	maxComplexityFlag float64
	seedFlag          int64
	iterationsFlag    int
	numCountersFlag   int
	verboseFlag       bool
	logOutputFlag     string
)

var globalLogger *slog.Logger

const rootLongDescription = `corefuzz is a structure-aware, coverage-guided mutator framework.

This CLI is a thin demonstration driver around the core: it runs a single
built-in regex-grammar string fuzz target, persisting interesting inputs to
an on-disk corpus and reporting pool statistics.`

var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corefuzz",
		Short: "Structure-aware, coverage-guided mutator framework",
		Long:  rootLongDescription,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg := config.Load()
			if logOutputFlag != "" {
				cfg.LogFilename = logOutputFlag
			}
			if verboseFlag {
				cfg.LogVerbose = true
			}
			globalLogger = cfg.Logger()
			slog.SetDefault(globalLogger)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)
	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&corpusDirFlag, "corpus-dir", viper.GetString("corpus.dir"), "corpus directory")
	bindFlagToConfig(cmd.PersistentFlags().Lookup("corpus-dir"), "corpus.dir")

	cmd.PersistentFlags().Float64Var(&maxComplexityFlag, "max-complexity", viper.GetFloat64("run.max_complexity"), "maximum value complexity")
	bindFlagToConfig(cmd.PersistentFlags().Lookup("max-complexity"), "run.max_complexity")

	cmd.PersistentFlags().Int64Var(&seedFlag, "seed", viper.GetInt64("run.seed"), "RNG seed")
	bindFlagToConfig(cmd.PersistentFlags().Lookup("seed"), "run.seed")

	cmd.PersistentFlags().IntVar(&numCountersFlag, "num-counters", viper.GetInt("run.num_counters"), "counter space size for the counter-maximizing pool")
	bindFlagToConfig(cmd.PersistentFlags().Lookup("num-counters"), "run.num_counters")

	cmd.PersistentFlags().IntVar(&iterationsFlag, "iterations", viper.GetInt("run.iterations"), "number of iterations to run (0 = until interrupted)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup("iterations"), "run.iterations")

	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	cmd.PersistentFlags().StringVar(&logOutputFlag, "log-output", "", "path to the log output file")
}

func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute runs the root command. Called by main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
