package nexus_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/code-nexus/nexus/pkg/nexus"
)

// stub is a minimal Processor for registry tests.
type stub struct {
	id    string
	kind  string
	out   string
	err   error
	calls int
}

func (s *stub) ID() string   { return s.id }
func (s *stub) Kind() string { return s.kind }

func (s *stub) Process(_ any) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.out, nil
}

func (s *stub) Stats() map[string]any {
	return map[string]any{"id": s.id, "kind": s.kind, "calls": s.calls}
}

// filterStub additionally implements nexus.Filterer.
type filterStub struct {
	stub
}

func (s *filterStub) Filter(_ any, criteria string) any {
	return []string{"filtered:" + criteria}
}

// ─── Manager tests ────────────────────────────────────────────────────────────

func TestDispatch_RegistrationOrder(t *testing.T) {
	m := nexus.NewManager()
	m.Register(&stub{id: "A", kind: "sensor", out: "a-result"})
	m.Register(&stub{id: "B", kind: "event", out: "b-result"})
	m.Register(&stub{id: "C", kind: "csv", out: "c-result"})

	results := m.Dispatch(map[string]any{
		"C": []string{}, "A": []string{}, "B": []string{},
	})

	want := []string{"a-result", "b-result", "c-result"}
	if len(results) != len(want) {
		t.Fatalf("results = %d entries, want %d", len(results), len(want))
	}
	for i := range want {
		if results[i] != want[i] {
			t.Errorf("results[%d] = %q, want %q", i, results[i], want[i])
		}
	}
}

func TestDispatch_PartialFailure(t *testing.T) {
	m := nexus.NewManager()
	m.Register(&stub{id: "A", out: "a-result"})
	m.Register(&stub{id: "B", err: nexus.Validationf("boom")})
	m.Register(&stub{id: "C", out: "c-result"})

	results := m.Dispatch(map[string]any{"A": nil, "B": nil, "C": nil})

	if len(results) != 3 {
		t.Fatalf("results = %d entries, want 3", len(results))
	}
	if results[1] != "Error processing B: boom" {
		t.Errorf("results[1] = %q, want error slot for B", results[1])
	}
	if results[0] != "a-result" || results[2] != "c-result" {
		t.Errorf("surrounding results disturbed: %v", results)
	}
}

func TestDispatch_SkipsUnmatchedProcessors(t *testing.T) {
	b := &stub{id: "B", out: "b-result"}
	m := nexus.NewManager()
	m.Register(&stub{id: "A", out: "a-result"})
	m.Register(b)

	results := m.Dispatch(map[string]any{"A": nil})

	if len(results) != 1 || results[0] != "a-result" {
		t.Fatalf("results = %v, want [a-result]", results)
	}
	if b.calls != 0 {
		t.Errorf("unmatched processor was invoked %d times", b.calls)
	}
}

func TestDispatch_DuplicateIDsCoexist(t *testing.T) {
	// Duplicate ids are deliberately not rejected; each registration fires
	// independently on the same batch.
	first := &stub{id: "A", out: "first"}
	second := &stub{id: "A", out: "second"}
	m := nexus.NewManager()
	m.Register(first)
	m.Register(second)

	results := m.Dispatch(map[string]any{"A": nil})

	if len(results) != 2 {
		t.Fatalf("results = %d entries, want 2", len(results))
	}
	if first.calls != 1 || second.calls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", first.calls, second.calls)
	}
}

func TestCollectStats_RegistrationOrder(t *testing.T) {
	m := nexus.NewManager()
	m.Register(&stub{id: "A", kind: "sensor"})
	m.Register(&stub{id: "B", kind: "event"})

	stats := m.CollectStats()
	if len(stats) != 2 {
		t.Fatalf("stats = %d entries, want 2", len(stats))
	}
	if stats[0]["id"] != "A" || stats[1]["id"] != "B" {
		t.Errorf("stats order = %v, %v", stats[0]["id"], stats[1]["id"])
	}
}

func TestFilterAll(t *testing.T) {
	m := nexus.NewManager()
	m.Register(&filterStub{stub{id: "A"}})
	m.Register(&stub{id: "B"})

	batch := map[string]any{"A": []string{"x"}, "B": []string{"y"}, "Z": []string{"z"}}
	out := m.FilterAll(batch, "crit")

	got, ok := out["A"].([]string)
	if !ok || len(got) != 1 || got[0] != "filtered:crit" {
		t.Errorf("A = %v, want [filtered:crit]", out["A"])
	}
	// B has no filter support: batch passes through unchanged.
	if b, ok := out["B"].([]string); !ok || len(b) != 1 || b[0] != "y" {
		t.Errorf("B = %v, want [y]", out["B"])
	}
	// Z matches no processor and is absent from the output.
	if _, ok := out["Z"]; ok {
		t.Errorf("Z should not appear in filtered output")
	}
}

func TestChainSummary(t *testing.T) {
	m := nexus.NewManager()
	m.Register(&stub{id: "A"})
	m.Register(&stub{id: "B"})
	m.Register(&stub{id: "C"})

	got := m.ChainSummary(100)
	want := "Chain result: 100 records processed through 3-stage pipeline"
	if got != want {
		t.Errorf("ChainSummary = %q, want %q", got, want)
	}
}

func TestManagerLint_DuplicateIDs(t *testing.T) {
	m := nexus.NewManager()
	m.Register(&stub{id: "A"})
	m.Register(&stub{id: "A"})
	m.Register(&stub{id: "B"})

	issues := m.Lint()
	if len(issues) != 1 {
		t.Fatalf("issues = %d, want 1", len(issues))
	}
	if !issues[0].Warning {
		t.Errorf("duplicate-id issue must be a warning, got error severity")
	}
	if issues[0].NodeID != "A" {
		t.Errorf("issue node = %q, want A", issues[0].NodeID)
	}
}

func TestValidationError_Kind(t *testing.T) {
	err := nexus.Validationf("bad %s", "input")
	if err.Error() != "bad input" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !nexus.IsValidation(err) {
		t.Error("IsValidation(ValidationError) = false")
	}
	if !nexus.IsValidation(fmt.Errorf("stage input: %w", err)) {
		t.Error("IsValidation must see through wrapping")
	}
	if nexus.IsValidation(fmt.Errorf("plain")) {
		t.Error("IsValidation(plain error) = true")
	}
}

// ─── Parser tests ─────────────────────────────────────────────────────────────

func TestParseDOT_Minimal(t *testing.T) {
	src := `digraph demo {
		sensors [type=sensor]
		finance [type=transaction]
		events  [type=event]
		sensors -> finance
		finance -> events
	}`
	top, err := nexus.ParseDOT(src)
	if err != nil {
		t.Fatalf("ParseDOT: %v", err)
	}
	if top.Name != "demo" {
		t.Errorf("name = %q, want demo", top.Name)
	}
	if len(top.Nodes) != 3 {
		t.Fatalf("nodes = %d, want 3", len(top.Nodes))
	}
	if len(top.Edges) != 2 {
		t.Errorf("edges = %d, want 2", len(top.Edges))
	}
	if top.Nodes[1].Kind != nexus.KindTransaction {
		t.Errorf("nodes[1].Kind = %q, want transaction", top.Nodes[1].Kind)
	}
}

func TestParseDOT_DefinitionOrderPreserved(t *testing.T) {
	src := `digraph demo {
		c [type=csv]
		a [type=sensor]
		b [type=event]
	}`
	top, err := nexus.ParseDOT(src)
	if err != nil {
		t.Fatalf("ParseDOT: %v", err)
	}
	var ids []string
	for _, n := range top.Nodes {
		ids = append(ids, n.ID)
	}
	if got := strings.Join(ids, ","); got != "c,a,b" {
		t.Errorf("node order = %s, want c,a,b", got)
	}
}

func TestParseDOT_QuotedAttrs(t *testing.T) {
	src := `digraph demo {
		"JSON_001" [type="json", label="temperature feed"]
	}`
	top, err := nexus.ParseDOT(src)
	if err != nil {
		t.Fatalf("ParseDOT: %v", err)
	}
	n := top.Node("JSON_001")
	if n == nil {
		t.Fatal("node JSON_001 not found")
	}
	if n.Kind != nexus.KindJSON {
		t.Errorf("kind = %q, want json", n.Kind)
	}
	if n.Attrs["label"] != "temperature feed" {
		t.Errorf("label = %q", n.Attrs["label"])
	}
}

func TestParseDOT_BadSource(t *testing.T) {
	if _, err := nexus.ParseDOT("not a graph"); err == nil {
		t.Fatal("expected parse error")
	}
}

// ─── Validator tests ──────────────────────────────────────────────────────────

func TestValidateTopology_Valid(t *testing.T) {
	top, err := nexus.ParseDOT(`digraph ok {
		s [type=sensor]
		e [type=event]
		s -> e
	}`)
	if err != nil {
		t.Fatalf("ParseDOT: %v", err)
	}
	if issues := nexus.ValidateTopology(top); len(issues) != 0 {
		t.Errorf("issues = %v, want none", issues)
	}
	if err := nexus.ValidateErr(top); err != nil {
		t.Errorf("ValidateErr = %v", err)
	}
}

func TestValidateTopology_UnknownKind(t *testing.T) {
	top, err := nexus.ParseDOT(`digraph bad { x [type=quantum] }`)
	if err != nil {
		t.Fatalf("ParseDOT: %v", err)
	}
	issues := nexus.ValidateTopology(top)
	if len(issues) != 1 {
		t.Fatalf("issues = %d, want 1", len(issues))
	}
	if issues[0].Warning {
		t.Error("unknown kind must be an error, not a warning")
	}
	if err := nexus.ValidateErr(top); err == nil {
		t.Fatal("ValidateErr = nil, want error")
	}
}

func TestValidateTopology_MissingKind(t *testing.T) {
	top, err := nexus.ParseDOT(`digraph bad { x [label=whatever] }`)
	if err != nil {
		t.Fatalf("ParseDOT: %v", err)
	}
	issues := nexus.ValidateTopology(top)
	if len(issues) != 1 || !strings.Contains(issues[0].Message, "type") {
		t.Errorf("issues = %v, want missing type attribute", issues)
	}
}

func TestValidateTopology_EdgeToUnknownNode(t *testing.T) {
	// gographviz auto-declares edge endpoints, so build the topology by hand
	// to simulate a dangling edge.
	top := &nexus.Topology{
		Nodes: []*nexus.Node{{ID: "a", Kind: nexus.KindSensor}},
		Edges: []*nexus.Edge{{From: "a", To: "ghost"}},
	}
	issues := nexus.ValidateTopology(top)
	if len(issues) != 1 || !strings.Contains(issues[0].Message, "ghost") {
		t.Errorf("issues = %v, want unknown target node", issues)
	}
}

func TestValidateTopology_Empty(t *testing.T) {
	if issues := nexus.ValidateTopology(&nexus.Topology{}); len(issues) != 1 {
		t.Errorf("issues = %v, want one (no processors)", issues)
	}
}
