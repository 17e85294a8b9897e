package nexus

import (
	"fmt"
	"strings"
)

// LintIssue describes a structural problem, or a suspect configuration, found
// in a topology or a registry.
type LintIssue struct {
	NodeID  string
	Message string
	// Warning issues do not fail validation; they flag behavior the system
	// permits but product owners may not intend.
	Warning bool
}

func (e LintIssue) Error() string {
	if e.NodeID != "" {
		return fmt.Sprintf("node %q: %s", e.NodeID, e.Message)
	}
	return e.Message
}

// ValidateTopology checks a topology for structural correctness.
// Returns all discovered issues (not just the first).
func ValidateTopology(t *Topology) []LintIssue {
	var issues []LintIssue

	if len(t.Nodes) == 0 {
		issues = append(issues, LintIssue{Message: "topology declares no processors"})
	}

	// Every node must carry a known processor kind.
	for _, n := range t.Nodes {
		switch {
		case n.Kind == "":
			issues = append(issues, LintIssue{NodeID: n.ID, Message: "missing required attribute \"type\""})
		case !KnownKinds[n.Kind]:
			issues = append(issues, LintIssue{
				NodeID:  n.ID,
				Message: fmt.Sprintf("unknown processor kind %q", n.Kind),
			})
		}
	}

	// All edge endpoints must reference declared nodes.
	for _, e := range t.Edges {
		if t.Node(e.From) == nil {
			issues = append(issues, LintIssue{Message: fmt.Sprintf("edge references unknown source node %q", e.From)})
		}
		if t.Node(e.To) == nil {
			issues = append(issues, LintIssue{Message: fmt.Sprintf("edge references unknown target node %q", e.To)})
		}
	}

	return issues
}

// ValidateErr calls ValidateTopology and returns nil if there are no error
// severity issues, or a combined error message listing them. Warnings are
// dropped; callers that want them should use ValidateTopology directly.
func ValidateErr(t *Topology) error {
	var msgs []string
	for _, issue := range ValidateTopology(t) {
		if issue.Warning {
			continue
		}
		msgs = append(msgs, issue.Error())
	}
	if len(msgs) == 0 {
		return nil
	}
	return fmt.Errorf("topology validation failed:\n  %s", strings.Join(msgs, "\n  "))
}
