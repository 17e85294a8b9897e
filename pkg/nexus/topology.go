package nexus

import (
	"fmt"
	"strings"

	gographviz "github.com/awalterschulze/gographviz"
)

// Kind identifies a processor variant. The set is closed: new kinds require a
// new implementation and a factory registration, not subclassing.
type Kind string

const (
	KindSensor      Kind = "sensor"
	KindTransaction Kind = "transaction"
	KindEvent       Kind = "event"
	KindJSON        Kind = "json"
	KindCSV         Kind = "csv"
	KindStream      Kind = "stream"
)

// KnownKinds lists every processor kind a topology may declare.
var KnownKinds = map[Kind]bool{
	KindSensor:      true,
	KindTransaction: true,
	KindEvent:       true,
	KindJSON:        true,
	KindCSV:         true,
	KindStream:      true,
}

// Node declares one processor in a topology: its routing id, variant kind,
// and any extra DOT attributes.
type Node struct {
	ID    string
	Kind  Kind
	Attrs map[string]string
}

// Edge is a declared data-flow relation between two processors. Edges are
// descriptive only; dispatch is linear and ignores them.
type Edge struct {
	From string
	To   string
}

// Topology is the parsed representation of a .dot topology file. Nodes keep
// their definition order, which becomes registration (and therefore dispatch)
// order when a Manager is built from the topology.
type Topology struct {
	Name  string
	Nodes []*Node
	Edges []*Edge
}

// Node returns the first node with the given id, or nil.
func (t *Topology) Node(id string) *Node {
	for _, n := range t.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// ParseDOT parses a Graphviz DOT string into a Topology.
func ParseDOT(src string) (*Topology, error) {
	graphAst, err := gographviz.ParseString(src)
	if err != nil {
		return nil, fmt.Errorf("dot parse error: %w", err)
	}

	// Use a permissive graph collector that accepts any attribute name
	// without the strict validation that gographviz.Graph performs.
	collector := newDOTCollector()
	if err := gographviz.Analyse(graphAst, collector); err != nil {
		return nil, fmt.Errorf("dot analyse error: %w", err)
	}

	t := &Topology{Name: collector.name}

	for _, id := range collector.order {
		attrs := collector.nodes[id]
		nodeCopy := make(map[string]string, len(attrs))
		for k, v := range attrs {
			nodeCopy[k] = v
		}
		t.Nodes = append(t.Nodes, &Node{
			ID:    id,
			Kind:  Kind(attrs["type"]),
			Attrs: nodeCopy,
		})
	}

	for _, e := range collector.edges {
		t.Edges = append(t.Edges, &Edge{From: e.from, To: e.to})
	}

	return t, nil
}

// ─── permissive DOT collector ─────────────────────────────────────────────────

type rawEdge struct {
	from, to string
}

// dotCollector implements gographviz.Interface without attribute validation.
// It records node definition order, which the strict gographviz.Graph loses.
type dotCollector struct {
	name       string
	nodes      map[string]map[string]string // id → attrs
	order      []string                     // ids in first-definition order
	edges      []rawEdge
	graphAttrs map[string]string
	// defaultNodeAttrs holds attrs set at the graph level (node [...]).
	defaultNodeAttrs map[string]string
}

func newDOTCollector() *dotCollector {
	return &dotCollector{
		nodes:            make(map[string]map[string]string),
		graphAttrs:       make(map[string]string),
		defaultNodeAttrs: make(map[string]string),
	}
}

func (c *dotCollector) SetStrict(_ bool) error { return nil }
func (c *dotCollector) SetDir(_ bool) error    { return nil }
func (c *dotCollector) SetName(n string) error { c.name = unquote(n); return nil }
func (c *dotCollector) String() string         { return c.name }

func (c *dotCollector) AddNode(_ string, name string, attrs map[string]string) error {
	id := unquote(name)
	if _, ok := c.nodes[id]; !ok {
		c.order = append(c.order, id)
		// Copy default attrs first
		c.nodes[id] = make(map[string]string, len(c.defaultNodeAttrs))
		for k, v := range c.defaultNodeAttrs {
			c.nodes[id][k] = v
		}
	}
	for k, v := range attrs {
		c.nodes[id][k] = unquote(v)
	}
	return nil
}

func (c *dotCollector) AddEdge(src, dst string, _ bool, _ map[string]string) error {
	c.edges = append(c.edges, rawEdge{from: unquote(src), to: unquote(dst)})
	return nil
}

func (c *dotCollector) AddPortEdge(src, _, dst, _ string, directed bool, attrs map[string]string) error {
	return c.AddEdge(src, dst, directed, attrs)
}

func (c *dotCollector) AddAttr(_ string, field, value string) error {
	c.graphAttrs[field] = unquote(value)
	return nil
}

func (c *dotCollector) AddSubGraph(_, _ string, _ map[string]string) error { return nil }

// unquote strips surrounding double-quotes from a DOT attribute value.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
