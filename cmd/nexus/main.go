package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/code-nexus/nexus/pkg/nexus"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "nexus",
		Short: "Nexus — polymorphic batch processing demo",
		Long: `Nexus routes labeled batches through a registry of polymorphic processors.

Each processor is a typed variant (sensor, transaction, event, json, csv,
stream). A manager dispatches named batches to the matching processors in
registration order and aggregates their summaries, continuing past
per-processor failures.`,
	}
	root.AddCommand(demoCmd())
	root.AddCommand(lintCmd())
	root.AddCommand(graphCmd())
	return root
}

// ─── lint ─────────────────────────────────────────────────────────────────────

func lintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint <topology.dot>",
		Short: "Validate a topology DOT file without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}
			t, err := nexus.ParseDOT(string(src))
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}
			for _, issue := range nexus.ValidateTopology(t) {
				if issue.Warning {
					fmt.Printf("warning: %s\n", issue.Error())
				}
			}
			if lintErr := nexus.ValidateErr(t); lintErr != nil {
				return lintErr
			}
			fmt.Printf("OK: topology %q is valid (%d processors, %d edges)\n",
				t.Name, len(t.Nodes), len(t.Edges))
			return nil
		},
	}
	return cmd
}
