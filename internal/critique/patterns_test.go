package critique

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arglab/toulmin/internal/model"
)

func matchesByPattern(matches []Match) map[string][]Match {
	byPattern := map[string][]Match{}
	for _, match := range matches {
		byPattern[match.PatternID] = append(byPattern[match.PatternID], match)
	}
	return byPattern
}

func TestDetectPatterns_CircularReasoning(t *testing.T) {
	g := model.NewGraph("")
	a := g.AddClaim("a")
	b := g.AddClaim("b")
	c := g.AddClaim("c")
	w := g.AddWarrant("w", model.AsAxiom(1.0))
	g.AddSupport(a, b, model.WithWarrants(w))
	g.AddSupport(b, c, model.WithWarrants(w))
	g.AddSupport(c, a, model.WithWarrants(w))

	byPattern := matchesByPattern(DetectPatterns(g, nil))
	cycles := byPattern["circular_reasoning"]
	if len(cycles) != 1 {
		t.Fatalf("support cycle should match exactly once, got %d", len(cycles))
	}
	if diff := cmp.Diff([]string{a, b, c}, cycles[0].Nodes); diff != "" {
		t.Errorf("cycle nodes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"e0", "e1", "e2"}, cycles[0].Edges); diff != "" {
		t.Errorf("cycle edges mismatch (-want +got):\n%s", diff)
	}
}

func TestDetectPatterns_SelfAttackAndUnstatedWarrant(t *testing.T) {
	g := model.NewGraph("")
	a := g.AddClaim("a")
	g.AddAttack(a, a)

	byPattern := matchesByPattern(DetectPatterns(g, nil))
	if len(byPattern["self_attack"]) != 1 {
		t.Errorf("self_attack: got %d matches", len(byPattern["self_attack"]))
	}
	// The self-attack edge carries no warrants either.
	if len(byPattern["unstated_warrant"]) != 1 {
		t.Errorf("unstated_warrant: got %d matches", len(byPattern["unstated_warrant"]))
	}
}

func TestDetectPatterns_UnsupportedConclusion(t *testing.T) {
	g := model.NewGraph("")
	a := g.AddClaim("premise")
	b := g.AddClaim("conclusion")
	w := g.AddWarrant("w")
	g.AddSupport(a, b, model.WithWarrants(w))

	byPattern := matchesByPattern(DetectPatterns(g, nil))
	unsupported := byPattern["unsupported_conclusion"]
	if len(unsupported) != 1 {
		t.Fatalf("got %d unsupported matches", len(unsupported))
	}
	if diff := cmp.Diff([]string{a}, unsupported[0].Nodes); diff != "" {
		t.Errorf("unsupported nodes mismatch (-want +got):\n%s", diff)
	}
}

func TestDetectPatterns_Redundancy(t *testing.T) {
	g := model.NewGraph("")
	first := g.AddClaim("The study shows X.")
	second := g.AddClaim("the  study shows x.")
	target := g.AddClaim("conclusion")
	w := g.AddWarrant("w")
	g.AddSupport(first, target, model.WithWarrants(w))
	g.AddSupport(second, target, model.WithWarrants(w))

	byPattern := matchesByPattern(DetectPatterns(g, nil))
	redundancy := byPattern["redundancy"]
	if len(redundancy) != 1 {
		t.Fatalf("got %d redundancy matches", len(redundancy))
	}
	if diff := cmp.Diff([]string{first, second, target}, redundancy[0].Nodes); diff != "" {
		t.Errorf("redundancy nodes mismatch (-want +got):\n%s", diff)
	}
}

func TestDetectPatterns_Contradiction(t *testing.T) {
	g := model.NewGraph("")
	a := g.AddClaim("a")
	b := g.AddClaim("b")
	w := g.AddWarrant("w")
	g.AddSupport(a, b, model.WithWarrants(w))
	g.AddAttack(a, b, model.WithWarrants(w))

	byPattern := matchesByPattern(DetectPatterns(g, nil))
	contradictions := byPattern["contradiction"]
	if len(contradictions) != 1 {
		t.Fatalf("got %d contradiction matches", len(contradictions))
	}
	if diff := cmp.Diff([]string{"e0", "e1"}, contradictions[0].Edges); diff != "" {
		t.Errorf("contradiction edges mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyGateActions(t *testing.T) {
	g := model.NewGraph("")
	a := g.AddClaim("a")
	b := g.AddClaim("b")
	g.AddSupport(a, b)

	matches := []Match{
		{PatternID: "unstated_warrant", Action: ActionDisableEdge, Edges: []string{"e0"}},
		{PatternID: "ignored", Action: ActionFlagNode, Nodes: []string{a}},
		{PatternID: "bogus", Action: ActionDisableEdge, Edges: []string{"e99", "not-an-edge"}},
	}
	ApplyGateActions(g, matches)

	rel := g.Relations[0]
	if rel.GateStatus != model.GateDisabled {
		t.Errorf("gate status: got %q, want disabled", rel.GateStatus)
	}
	if rel.Metadata["gate_action"] != "unstated_warrant" {
		t.Errorf("gate_action metadata: got %v", rel.Metadata["gate_action"])
	}
}

func TestApplyGateActions_Restrict(t *testing.T) {
	g := model.NewGraph("")
	a := g.AddClaim("a")
	b := g.AddClaim("b")
	g.AddSupport(a, b, model.WithGateMode(model.GateOR))

	ApplyGateActions(g, []Match{
		{PatternID: "contradiction", Action: ActionRestrictEdge, Edges: []string{"e0"}},
	})

	rel := g.Relations[0]
	if rel.GateStatus != model.GateRestricted {
		t.Errorf("gate status: got %q, want restricted", rel.GateStatus)
	}
	if rel.GateMode != model.GateAND {
		t.Errorf("restricted edge should force AND gating, got %q", rel.GateMode)
	}
}

func TestAnalyzeWarrantFragility(t *testing.T) {
	g := model.NewGraph("")
	a := g.AddClaim("a")
	b := g.AddClaim("b")
	weak := g.AddWarrant("weak", model.AsAxiom(-1.0))
	strong := g.AddWarrant("strong", model.AsAxiom(1.0))
	g.AddSupport(a, b, model.WithWarrants(weak, strong), model.WithGateMode(model.GateAND))
	g.AddSupport(a, b, model.WithWarrants(weak, strong), model.WithGateMode(model.GateOR))
	g.AddSupport(a, b)

	fragility := AnalyzeWarrantFragility(g)
	if len(fragility) != 2 {
		t.Fatalf("warrantless edges should be skipped, got %d entries", len(fragility))
	}
	if diff := cmp.Diff([]string{weak}, fragility[0].CriticalWarrants); diff != "" {
		t.Errorf("AND binding warrant mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{strong}, fragility[1].CriticalWarrants); diff != "" {
		t.Errorf("OR binding warrant mismatch (-want +got):\n%s", diff)
	}
}
