package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/code-nexus/nexus/pkg/nexus"
	"github.com/code-nexus/nexus/pkg/nexus/build"
)

func demoCmd() *cobra.Command {
	var (
		scenarioPath string
		topologyPath string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the polymorphic processing demonstration",
		RunE: func(_ *cobra.Command, _ []string) error {
			scenario := defaultScenario()
			if scenarioPath != "" {
				loaded, err := loadScenario(scenarioPath)
				if err != nil {
					return err
				}
				scenario = loaded
			}

			var (
				m   *nexus.Manager
				err error
			)
			if topologyPath != "" {
				m, err = managerFromTopology(topologyPath)
			} else {
				m, err = managerFromSpecs(scenario.Processors)
			}
			if err != nil {
				return err
			}

			runDemo(m, scenario)
			return nil
		},
	}

	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file (processors, batches, criteria)")
	cmd.Flags().StringVar(&topologyPath, "topology", "", "DOT topology file; overrides the scenario's processor list")
	return cmd
}

func managerFromTopology(path string) (*nexus.Manager, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read topology: %w", err)
	}
	t, err := nexus.ParseDOT(string(src))
	if err != nil {
		return nil, fmt.Errorf("parse topology: %w", err)
	}
	if err := nexus.ValidateErr(t); err != nil {
		return nil, err
	}
	return build.FromTopology(t, build.Default())
}

func runDemo(m *nexus.Manager, scenario *Scenario) {
	fmt.Println("=== Nexus Batch Processing Demo ===")
	fmt.Printf("Capacity: %d streams/second, %d processors registered\n\n", m.Capacity, m.Len())

	for _, issue := range m.Lint() {
		fmt.Printf("warning: %s\n", issue.Error())
	}

	fmt.Println("Results:")
	for _, r := range m.Dispatch(scenario.Batches) {
		fmt.Printf("- %s\n", r)
	}

	if scenario.Criteria != "" {
		fmt.Printf("\nFiltered (criteria %q):\n", scenario.Criteria)
		filtered := m.FilterAll(scenario.Batches, scenario.Criteria)
		ids := make([]string, 0, len(filtered))
		for id := range filtered {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Printf("- %s: %v\n", id, filtered[id])
		}
	}

	fmt.Println("\n=== Processor Statistics ===")
	for _, stats := range m.CollectStats() {
		fmt.Printf("- %s\n", formatStats(stats))
	}

	fmt.Printf("\n%s\n", m.ChainSummary(100))
}

// formatStats renders a stats mapping as "id: k=v k=v" with deterministic
// key order.
func formatStats(stats map[string]any) string {
	id, _ := stats["id"].(string)
	keys := make([]string, 0, len(stats))
	for k := range stats {
		if k != "id" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, stats[k]))
	}
	return fmt.Sprintf("%s: %s", id, strings.Join(parts, " "))
}
