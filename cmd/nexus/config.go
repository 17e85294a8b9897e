package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/code-nexus/nexus/pkg/nexus"
	"github.com/code-nexus/nexus/pkg/nexus/build"
)

// Scenario describes one demo run: the processors to register, the named
// batches to dispatch, and an optional filter criteria.
type Scenario struct {
	Processors []ProcessorSpec `yaml:"processors"`
	Batches    map[string]any  `yaml:"batches"`
	Criteria   string          `yaml:"criteria"`
}

// ProcessorSpec names one processor to register.
type ProcessorSpec struct {
	ID   string `yaml:"id"`
	Kind string `yaml:"kind"`
}

// loadScenario reads a YAML scenario file.
func loadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scenario unmarshal: %w", err)
	}
	return &s, nil
}

// managerFromSpecs registers one processor per entry using the default
// factory registry.
func managerFromSpecs(specs []ProcessorSpec) (*nexus.Manager, error) {
	reg := build.Default()
	m := nexus.NewManager()
	for _, spec := range specs {
		f, err := reg.Get(nexus.Kind(spec.Kind))
		if err != nil {
			return nil, fmt.Errorf("processor %q: %w", spec.ID, err)
		}
		p, err := f(&nexus.Node{ID: spec.ID, Kind: nexus.Kind(spec.Kind)})
		if err != nil {
			return nil, fmt.Errorf("processor %q: %w", spec.ID, err)
		}
		m.Register(p)
	}
	return m, nil
}

// defaultScenario mirrors the canonical demonstration inputs.
func defaultScenario() *Scenario {
	return &Scenario{
		Processors: []ProcessorSpec{
			{ID: "SENSOR_001", Kind: "sensor"},
			{ID: "FINANCE_001", Kind: "transaction"},
			{ID: "EVENTS_001", Kind: "event"},
			{ID: "JSON_001", Kind: "json"},
			{ID: "CSV_001", Kind: "csv"},
			{ID: "STREAM_001", Kind: "stream"},
		},
		Batches: map[string]any{
			"SENSOR_001":  []string{"temp:21.5", "temp:22.0", "humidity:48"},
			"FINANCE_001": []string{"buy:100", "sell:150", "buy:75"},
			"EVENTS_001":  []string{"login", "error", "logout"},
			"JSON_001":    map[string]any{"sensor": "pressure", "value": 55.0, "unit": "C"},
			"CSV_001":     "admin,login,2026-02-10\nguest,logout,2026-02-10",
			"STREAM_001":  []any{19.8, 20.1, 20.5, 21.0},
		},
		Criteria: "temp",
	}
}
