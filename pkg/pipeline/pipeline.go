// Package pipeline implements the staged processing pipelines: an ordered
// sequence of precondition-checked stages threaded by a Pipeline, plus the
// format adapters (JSON, CSV, stream) that type-check their input and emit a
// domain summary. Adapters satisfy the nexus.Processor contract.
package pipeline

import "fmt"

// DefaultEfficiency is the advertised efficiency figure reported in stats.
const DefaultEfficiency = 95.0

// Pipeline owns an ordered stage sequence and a processed-record counter.
// Format adapters embed it and add input typing and summary formatting.
type Pipeline struct {
	id               string
	stages           []Stage
	recordsProcessed int
	efficiency       float64
}

// New creates a pipeline with no stages attached.
func New(id string) *Pipeline {
	return &Pipeline{id: id, efficiency: DefaultEfficiency}
}

// ID returns the identifier batches are routed by.
func (p *Pipeline) ID() string { return p.id }

// AddStage appends a stage to the sequence.
func (p *Pipeline) AddStage(s Stage) {
	p.stages = append(p.stages, s)
}

// RunStages threads data through every stage in order and increments the
// record counter on completion. The first failing stage aborts the run.
func (p *Pipeline) RunStages(data any) (any, error) {
	result := data
	for _, s := range p.stages {
		var err error
		result, err = s.Process(result)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", s.Name(), err)
		}
	}
	p.recordsProcessed++
	return result, nil
}

// Stats reports the stage count, records processed, and efficiency figure.
func (p *Pipeline) Stats() map[string]any {
	return map[string]any{
		"id":                p.id,
		"stages":            len(p.stages),
		"records_processed": p.recordsProcessed,
		"efficiency":        p.efficiency,
	}
}
