package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corefuzz/corefuzz/world/layout"
)

var layoutCmd = newLayoutCmd()

// newLayoutCmd builds the layout subcommand: it reads a fuzz project's
// directory structure (fuzz_targets/, corpora/, an optional build.go) the
// way cargo-fuzzcheck's project reader does, reporting what it found
// without running anything.
func newLayoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout [root]",
		Short: "Discover and report a fuzz project's directory layout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			r, err := layout.Read(root)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "fuzz targets (%d):\n", len(r.FuzzTargets))
			for _, t := range r.FuzzTargets {
				fmt.Fprintf(out, "  %s\n", t.Path)
			}
			fmt.Fprintf(out, "corpora (%d):\n", len(r.Corpora))
			for _, c := range r.Corpora {
				fmt.Fprintf(out, "  %s -> %s\n", c.TargetName, c.Path)
			}
			if r.BuildScript != "" {
				fmt.Fprintf(out, "build script: %s\n", r.BuildScript)
			}
			for _, e := range r.Errors {
				fmt.Fprintf(out, "warning: %s\n", e.Error())
			}
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(layoutCmd)
}
