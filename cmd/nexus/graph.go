package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/code-nexus/nexus/pkg/nexus"
)

func graphCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "graph <topology.dot>",
		Short: "Print a human-readable summary of a topology",
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

			switch strings.ToLower(format) {
			case "dot":
				fmt.Print(renderDOT(t))
			case "text", "":
				fmt.Print(renderText(t))
			default:
				return fmt.Errorf("unknown format %q: use text or dot", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text or dot")
	return cmd
}

// renderText produces the human-readable text summary. Nodes appear in
// definition order, matching dispatch order.
func renderText(t *nexus.Topology) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Topology: %s  (%d processors, %d edges)\n", t.Name, len(t.Nodes), len(t.Edges))

	maxIDLen := 4
	for _, n := range t.Nodes {
		if len(n.ID) > maxIDLen {
			maxIDLen = len(n.ID)
		}
	}

	fmt.Fprintf(&sb, "\nProcessors:\n")
	for _, n := range t.Nodes {
		var attrParts []string
		keys := make([]string, 0, len(n.Attrs))
		for k := range n.Attrs {
			if k != "type" {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			attrParts = append(attrParts, k+"="+n.Attrs[k])
		}
		fmt.Fprintf(&sb, "  %-*s  %-12s  %s\n", maxIDLen, n.ID, string(n.Kind), strings.Join(attrParts, " "))
	}

	if len(t.Edges) > 0 {
		fmt.Fprintf(&sb, "\nEdges:\n")
		for _, e := range t.Edges {
			fmt.Fprintf(&sb, "  %s -> %s\n", e.From, e.To)
		}
	}

	return sb.String()
}

// dotQuote returns the value as a DOT-safe string, quoting if necessary.
func dotQuote(s string) string {
	needsQuote := s == "" ||
		strings.ContainsAny(s, " \t\n\\\"{}[]<>=;,")
	if needsQuote {
		escaped := strings.ReplaceAll(s, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, `"`, `\"`)
		return `"` + escaped + `"`
	}
	return s
}

// renderDOT produces a canonical DOT digraph string.
func renderDOT(t *nexus.Topology) string {
	var sb strings.Builder

	name := t.Name
	if name == "" {
		name = "topology"
	}
	fmt.Fprintf(&sb, "digraph %s {\n", dotQuote(name))

	for _, n := range t.Nodes {
		parts := []string{"type=" + dotQuote(string(n.Kind))}
		keys := make([]string, 0, len(n.Attrs))
		for k := range n.Attrs {
			if k != "type" {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			parts = append(parts, k+"="+dotQuote(n.Attrs[k]))
		}
		fmt.Fprintf(&sb, "    %s [%s]\n", dotQuote(n.ID), strings.Join(parts, " "))
	}

	for _, e := range t.Edges {
		fmt.Fprintf(&sb, "    %s -> %s\n", dotQuote(e.From), dotQuote(e.To))
	}

	sb.WriteString("}\n")
	return sb.String()
}
