// Package build binds topology node kinds to processor constructors and
// assembles a Manager from a parsed topology.
package build

import (
	"fmt"

	"github.com/code-nexus/nexus/pkg/nexus"
	"github.com/code-nexus/nexus/pkg/pipeline"
	"github.com/code-nexus/nexus/pkg/stream"
)

// Factory constructs a processor for one topology node.
type Factory func(node *nexus.Node) (nexus.Processor, error)

// Registry maps processor kinds to Factory implementations.
type Registry struct {
	factories map[nexus.Kind]Factory
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[nexus.Kind]Factory)}
}

// Register associates a factory with a processor kind.
func (r *Registry) Register(kind nexus.Kind, f Factory) {
	r.factories[kind] = f
}

// Get returns the factory for a kind, or an error if not registered.
func (r *Registry) Get(kind nexus.Kind) (Factory, error) {
	f, ok := r.factories[kind]
	if !ok {
		return nil, fmt.Errorf("no factory registered for processor kind %q", kind)
	}
	return f, nil
}

// Default returns a registry covering every built-in processor kind.
// Format adapters are created with the standard three-stage sequence.
func Default() *Registry {
	r := NewRegistry()
	r.Register(nexus.KindSensor, func(n *nexus.Node) (nexus.Processor, error) {
		return stream.NewSensorWorker(n.ID), nil
	})
	r.Register(nexus.KindTransaction, func(n *nexus.Node) (nexus.Processor, error) {
		return stream.NewTransactionWorker(n.ID), nil
	})
	r.Register(nexus.KindEvent, func(n *nexus.Node) (nexus.Processor, error) {
		return stream.NewEventWorker(n.ID), nil
	})
	r.Register(nexus.KindJSON, func(n *nexus.Node) (nexus.Processor, error) {
		a := pipeline.NewJSONAdapter(n.ID)
		attachDefaultStages(a.Pipeline)
		return a, nil
	})
	r.Register(nexus.KindCSV, func(n *nexus.Node) (nexus.Processor, error) {
		a := pipeline.NewCSVAdapter(n.ID)
		attachDefaultStages(a.Pipeline)
		return a, nil
	})
	r.Register(nexus.KindStream, func(n *nexus.Node) (nexus.Processor, error) {
		a := pipeline.NewStreamAdapter(n.ID)
		attachDefaultStages(a.Pipeline)
		return a, nil
	})
	return r
}

func attachDefaultStages(p *pipeline.Pipeline) {
	for _, s := range pipeline.DefaultStages() {
		p.AddStage(s)
	}
}

// FromTopology instantiates a Manager from a topology, registering
// processors in node definition order.
func FromTopology(t *nexus.Topology, r *Registry) (*nexus.Manager, error) {
	m := nexus.NewManager()
	for _, n := range t.Nodes {
		f, err := r.Get(n.Kind)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", n.ID, err)
		}
		p, err := f(n)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", n.ID, err)
		}
		m.Register(p)
	}
	return m, nil
}
