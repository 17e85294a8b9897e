package nexus

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// DefaultCapacity is the advertised throughput of a Manager in streams per
// second. Informational only; dispatch is synchronous.
const DefaultCapacity = 1000

// Manager routes named batches to registered processors and aggregates their
// results. Registration order determines dispatch and stats order.
type Manager struct {
	procs    []Processor
	Capacity int
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{Capacity: DefaultCapacity}
}

// Register appends p to the registry. Duplicate identifiers are not rejected:
// every registered processor whose id matches a batch key fires independently.
// Lint surfaces duplicates as a warning.
func (m *Manager) Register(p Processor) {
	m.procs = append(m.procs, p)
}

// Len returns the number of registered processors.
func (m *Manager) Len() int { return len(m.procs) }

// Processors returns a copy of the registry in registration order.
func (m *Manager) Processors() []Processor {
	return append([]Processor(nil), m.procs...)
}

// Dispatch routes each batch to the processors whose id matches its key, in
// registration order. A failing processor contributes an error slot of the
// form "Error processing <id>: <message>" and never aborts the remaining
// processors.
func (m *Manager) Dispatch(batches map[string]any) []string {
	runID := uuid.New()
	results := make([]string, 0, len(m.procs))

	for _, p := range m.procs {
		data, ok := batches[p.ID()]
		if !ok {
			continue
		}

		slog.Info("dispatching batch", "run", runID, "processor", p.ID(), "kind", p.Kind())

		summary, err := p.Process(data)
		if err != nil {
			slog.Warn("processor failed", "run", runID, "processor", p.ID(), "error", err)
			results = append(results, fmt.Sprintf("Error processing %s: %s", p.ID(), err))
			continue
		}
		results = append(results, summary)
	}

	slog.Info("dispatch complete", "run", runID, "results", len(results))
	return results
}

// CollectStats returns each processor's stats mapping in registration order.
func (m *Manager) CollectStats() []map[string]any {
	stats := make([]map[string]any, 0, len(m.procs))
	for _, p := range m.procs {
		stats = append(stats, p.Stats())
	}
	return stats
}

// FilterAll applies each matched processor's Filter and returns a mapping
// from id to filtered batch. Processors without filter support pass their
// batch through unchanged.
func (m *Manager) FilterAll(batches map[string]any, criteria string) map[string]any {
	out := make(map[string]any, len(batches))
	for _, p := range m.procs {
		data, ok := batches[p.ID()]
		if !ok {
			continue
		}
		if f, ok := p.(Filterer); ok {
			out[p.ID()] = f.Filter(data, criteria)
		} else {
			out[p.ID()] = data
		}
	}
	return out
}

// ChainSummary describes a chained run of every registered processor.
func (m *Manager) ChainSummary(records int) string {
	return fmt.Sprintf("Chain result: %d records processed through %d-stage pipeline",
		records, len(m.procs))
}

// Lint checks the registry for suspect but permitted configurations.
// Currently the only finding is duplicate processor ids, which the registry
// deliberately allows (each duplicate fires independently on dispatch).
func (m *Manager) Lint() []LintIssue {
	seen := make(map[string]int)
	var issues []LintIssue
	for _, p := range m.procs {
		seen[p.ID()]++
		if seen[p.ID()] == 2 {
			issues = append(issues, LintIssue{
				NodeID:  p.ID(),
				Message: "multiple processors registered under this id; each will fire independently",
				Warning: true,
			})
		}
	}
	return issues
}
