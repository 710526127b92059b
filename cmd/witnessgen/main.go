// SPDX-License-Identifier: Apache-2.0
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"witness/internal/obs"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		color.Red("✗ %s", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "witnessgen",
		Short: "Build, inspect, and evaluate BN254 witness graphs",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				obs.SetLevel(zerolog.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(buildCmd(), evalCmd(), demoCmd())
	return root
}

func buildCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "build <circuit>",
		Short: "Optimize and serialize a frontend-stand-in circuit to graph.bin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(args[0], out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "graph.bin", "output path for the serialized graph")
	return cmd
}

func evalCmd() *cobra.Command {
	var graphPath string
	var inputsFlag []string
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a serialized graph against named inputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(graphPath, inputsFlag)
		},
	}
	cmd.Flags().StringVarP(&graphPath, "graph", "g", "graph.bin", "path to the serialized graph")
	cmd.Flags().StringSliceVarP(&inputsFlag, "input", "i", nil, `named input as name=value (repeatable)`)
	return cmd
}

func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Optimize the in-tree example circuits and print their live node counts and inputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
}

