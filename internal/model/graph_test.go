package model

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAddClaim_AllocatesSequentialIDs(t *testing.T) {
	g := NewGraph("")
	first := g.AddClaim("first")
	second := g.AddClaim("second")
	if first != "c1" || second != "c2" {
		t.Errorf("got ids %q, %q; want c1, c2", first, second)
	}

	g.AddClaim("pinned", WithID("c10"))
	next := g.AddClaim("after pin")
	if next != "c11" {
		t.Errorf("allocation should skip past explicit ids, got %q", next)
	}
}

func TestAddWarrant_SeparateNamespace(t *testing.T) {
	g := NewGraph("")
	g.AddClaim("claim")
	warrantID := g.AddWarrant("license")
	if warrantID != "w1" {
		t.Errorf("got %q, want w1", warrantID)
	}
	if _, ok := g.Warrants[warrantID]; !ok {
		t.Error("warrant not registered")
	}
}

func TestAddRelation_Defaults(t *testing.T) {
	g := NewGraph("")
	a := g.AddClaim("a")
	b := g.AddClaim("b")
	rel := g.AddSupport(a, b, WithWarrants("w1"), WithWeight(0.8))

	if rel.Kind != RelationSupport {
		t.Errorf("kind: got %q", rel.Kind)
	}
	if rel.GateMode != GateOR {
		t.Errorf("default gate mode: got %q, want OR", rel.GateMode)
	}
	if rel.GateStatus != GateOpen {
		t.Errorf("default gate status: got %q, want open", rel.GateStatus)
	}
	if len(g.Relations) != 1 {
		t.Fatalf("relations: got %d", len(g.Relations))
	}
}

func TestAddRelation_ToleratesUnknownEndpoints(t *testing.T) {
	g := NewGraph("")
	rel := g.AddAttack("missing1", "missing2")
	if rel == nil || len(g.Relations) != 1 {
		t.Error("relations between unknown units should still append")
	}
}

func TestAttachEvidence_UnknownUnit(t *testing.T) {
	g := NewGraph("")
	_, err := g.AttachEvidence("nope", "ev1", EvidenceSource{Structured: map[string]any{}}, StanceSupports, nil)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.Kind != "unit" || notFound.ID != "nope" {
		t.Errorf("got (%q, %q)", notFound.Kind, notFound.ID)
	}
}

func TestAttachEvidenceCard(t *testing.T) {
	g := NewGraph("")
	claimID := g.AddClaim("claim")
	if err := g.AddEvidenceCard(&EvidenceCard{ID: "card1", Title: "Study", Confidence: 0.9}, false); err != nil {
		t.Fatalf("AddEvidenceCard: %v", err)
	}

	item, err := g.AttachEvidenceCard(claimID, "card1", StanceSupports)
	if err != nil {
		t.Fatalf("AttachEvidenceCard: %v", err)
	}
	if item.Strength == nil || *item.Strength != 0.9 {
		t.Error("attached item should carry the card confidence as strength")
	}
	if diff := cmp.Diff([]string{"card1"}, g.Units[claimID].EvidenceIDs); diff != "" {
		t.Errorf("evidence ids mismatch (-want +got):\n%s", diff)
	}

	if _, err := g.AttachEvidenceCard(claimID, "missing", StanceSupports); err == nil {
		t.Error("expected an error for an unregistered card")
	}
	if err := g.AddEvidenceCard(&EvidenceCard{ID: "card1", Title: "Dup"}, false); err == nil {
		t.Error("expected duplicate card registration to fail without overwrite")
	}
}

func TestDefineArgument(t *testing.T) {
	g := NewGraph("")
	a := g.AddClaim("premise")
	b := g.AddClaim("conclusion")
	c := g.AddClaim("outside")
	g.AddSupport(a, b)
	g.AddSupport(c, b)

	bundle, err := g.DefineArgument([]string{a, b})
	if err != nil {
		t.Fatalf("DefineArgument: %v", err)
	}
	if bundle.ID != "arg_1" {
		t.Errorf("bundle id: got %q", bundle.ID)
	}
	if len(bundle.Relations) != 1 || bundle.Relations[0].Src != a {
		t.Errorf("internal relations should cover only in-bundle edges, got %v", bundle.Relations)
	}

	if _, err := g.DefineArgument([]string{a}); err == nil {
		t.Error("expected an error for a single-unit bundle")
	}
	if _, err := g.DefineArgument([]string{a, "ghost"}); err == nil {
		t.Error("expected an error for an unknown member")
	}
}

func TestToBundleGraph_MeanAggregation(t *testing.T) {
	g := NewGraph("")
	a := g.AddClaim("a")
	b := g.AddClaim("b")
	c := g.AddClaim("c")
	d := g.AddClaim("d")
	g.AddSupport(a, c, WithWeight(1.0))
	g.AddAttack(b, d, WithWeight(0.5))

	if _, err := g.DefineArgument([]string{a, b}, WithBundleID("left")); err != nil {
		t.Fatal(err)
	}
	if _, err := g.DefineArgument([]string{c, d}, WithBundleID("right")); err != nil {
		t.Fatal(err)
	}

	bg, err := g.ToBundleGraph(AggMean, true)
	if err != nil {
		t.Fatalf("ToBundleGraph: %v", err)
	}
	if len(bg.Relations) != 1 {
		t.Fatalf("collapsed relations: got %d, want 1", len(bg.Relations))
	}
	rel := bg.Relations[0]
	if rel.Src != "left" || rel.Dst != "right" {
		t.Errorf("endpoints: got %s -> %s", rel.Src, rel.Dst)
	}
	// mean(1.0, -0.5) = 0.25, positive, so the edge stays a support
	if rel.Kind != RelationSupport {
		t.Errorf("kind: got %q", rel.Kind)
	}
	if rel.Weight == nil || math.Abs(*rel.Weight-0.25) > 1e-9 {
		t.Errorf("weight: got %v, want 0.25", rel.Weight)
	}
}

func TestToBundleGraph_AttackWhenNegative(t *testing.T) {
	g := NewGraph("")
	a := g.AddClaim("a")
	b := g.AddClaim("b")
	g.AddAttack(a, b, WithWeight(2.0))

	if _, err := g.DefineArgument([]string{a, g.AddClaim("a2")}, WithBundleID("x")); err != nil {
		t.Fatal(err)
	}
	if _, err := g.DefineArgument([]string{b, g.AddClaim("b2")}, WithBundleID("y")); err != nil {
		t.Fatal(err)
	}

	bg, err := g.ToBundleGraph(AggSum, true)
	if err != nil {
		t.Fatalf("ToBundleGraph: %v", err)
	}
	rel := bg.Relations[0]
	if rel.Kind != RelationAttack {
		t.Errorf("kind: got %q, want attack", rel.Kind)
	}
	if rel.Weight == nil || *rel.Weight != -1.0 {
		t.Errorf("clamped weight: got %v, want -1.0", rel.Weight)
	}
}

func TestToBundleGraph_Errors(t *testing.T) {
	g := NewGraph("")
	a := g.AddClaim("a")
	b := g.AddClaim("b")

	if _, err := g.ToBundleGraph(AggMean, false); err == nil {
		t.Error("expected an error with no bundles defined")
	}

	if _, err := g.DefineArgument([]string{a, b}, WithBundleID("one")); err != nil {
		t.Fatal(err)
	}
	if _, err := g.DefineArgument([]string{a, b}, WithBundleID("two")); err != nil {
		t.Fatal(err)
	}
	if _, err := g.ToBundleGraph(AggMean, false); err == nil {
		t.Error("expected an error when a unit belongs to two bundles")
	}
}

func TestAggregateWeights_Modes(t *testing.T) {
	weights := []float64{1.0, -0.5, 0.25}

	sum, err := aggregateWeights(weights, AggSum)
	if err != nil || math.Abs(sum-0.75) > 1e-9 {
		t.Errorf("sum: got %v, %v", sum, err)
	}
	mean, err := aggregateWeights(weights, AggMean)
	if err != nil || math.Abs(mean-0.25) > 1e-9 {
		t.Errorf("mean: got %v, %v", mean, err)
	}
	max, err := aggregateWeights(weights, AggMax)
	if err != nil || max != 1.0 {
		t.Errorf("max should pick the largest magnitude with sign, got %v, %v", max, err)
	}
	neg, err := aggregateWeights([]float64{-2.0, 1.0}, AggMax)
	if err != nil || neg != -2.0 {
		t.Errorf("max should preserve a negative sign, got %v, %v", neg, err)
	}
	softmax, err := aggregateWeights(weights, AggSoftmax)
	if err != nil || softmax <= 0 {
		t.Errorf("softmax of mostly positive weights should be positive, got %v, %v", softmax, err)
	}
	if _, err := aggregateWeights(weights, Aggregation("median")); err == nil {
		t.Error("expected an error for an unknown aggregation mode")
	}
}

func TestWarrantAttack_RequiresKnownWarrant(t *testing.T) {
	g := NewGraph("")
	if _, err := g.AddWarrantAttack("c1", "w-missing", "no such warrant"); err == nil {
		t.Error("expected an error for an unknown warrant")
	}
	warrantID := g.AddWarrant("license")
	attack, err := g.AddWarrantAttack("c1", warrantID, "undermines the license")
	if err != nil {
		t.Fatalf("AddWarrantAttack: %v", err)
	}
	if attack.Kind != RelationAttack {
		t.Errorf("kind: got %q", attack.Kind)
	}
	if len(g.WarrantAttacks) != 1 {
		t.Errorf("warrant attacks: got %d", len(g.WarrantAttacks))
	}
}
