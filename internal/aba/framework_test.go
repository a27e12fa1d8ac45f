package aba

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDerive_ForwardChaining(t *testing.T) {
	f := New()
	f.AddRule("q", "a")
	f.AddRule("r", "q", "b")
	f.AddRule("s", "r")

	closure := f.Derive("a", "b")
	for _, symbol := range []string{"a", "b", "q", "r", "s"} {
		if !closure[symbol] {
			t.Errorf("expected %q in the closure", symbol)
		}
	}

	partial := f.Derive("a")
	if !partial["q"] {
		t.Error("expected q to follow from a alone")
	}
	if partial["r"] {
		t.Error("r needs b; it should not follow from a alone")
	}
}

func TestToDung_SingleAssumptionAttack(t *testing.T) {
	f := New()
	f.AddAssumption("a")
	f.AddAssumption("b")
	f.AddContrary("b", "p")
	f.AddRule("p", "a")

	af := f.ToDung(0)
	want := [][2]string{{"a", "b"}}
	if diff := cmp.Diff(want, af.Attacks()); diff != "" {
		t.Errorf("attacks mismatch (-want +got):\n%s", diff)
	}
}

func TestToDung_CompositeAttack(t *testing.T) {
	// r needs both a and b, so the minimal attacker of c is the pair
	f := New()
	f.AddAssumption("a")
	f.AddAssumption("b")
	f.AddAssumption("c")
	f.AddContrary("c", "r")
	f.AddRule("r", "a", "b")

	af := f.ToDung(0)
	want := [][2]string{{"{a&b}", "c"}}
	if diff := cmp.Diff(want, af.Attacks()); diff != "" {
		t.Errorf("attacks mismatch (-want +got):\n%s", diff)
	}
}

func TestToDung_MinimalSetsOnly(t *testing.T) {
	// a alone derives p, so no pair containing a may re-attack b
	f := New()
	f.AddAssumption("a")
	f.AddAssumption("b")
	f.AddAssumption("c")
	f.AddContrary("b", "p")
	f.AddRule("p", "a")

	af := f.ToDung(0)
	want := [][2]string{{"a", "b"}}
	if diff := cmp.Diff(want, af.Attacks()); diff != "" {
		t.Errorf("attacks mismatch (-want +got):\n%s", diff)
	}
}

func TestSetLabel(t *testing.T) {
	if got := SetLabel([]string{"a"}); got != "a" {
		t.Errorf("singleton label: got %q", got)
	}
	if got := SetLabel([]string{"b", "a"}); got != "{a&b}" {
		t.Errorf("pair label should sort members: got %q", got)
	}
}

func TestCompute_GroundedSemantics(t *testing.T) {
	f := New()
	f.AddAssumption("a")
	f.AddAssumption("b")
	f.AddContrary("b", "p")
	f.AddRule("p", "a")

	result := f.Compute("grounded")
	if result.Semantics != "grounded" {
		t.Errorf("semantics: got %q", result.Semantics)
	}
	want := [][]string{{"a"}}
	if diff := cmp.Diff(want, result.Extensions); diff != "" {
		t.Errorf("grounded extensions mismatch (-want +got):\n%s", diff)
	}
}

func TestCompute_UnsupportedSemanticsDegrades(t *testing.T) {
	f := New()
	f.AddAssumption("a")

	result := f.Compute("semistable")
	if result == nil {
		t.Fatal("expected a result for unsupported semantics")
	}
	if len(result.Extensions) != 0 {
		t.Errorf("expected empty extensions, got %v", result.Extensions)
	}
}

func TestFromMap(t *testing.T) {
	payload := map[string]any{
		"assumptions": []any{"a", "b"},
		"contraries":  map[string]any{"b": "p"},
		"rules": []any{
			map[string]any{"head": "p", "body": []any{"a"}},
		},
	}
	f, err := FromMap(payload)
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, f.Assumptions()); diff != "" {
		t.Errorf("assumptions mismatch (-want +got):\n%s", diff)
	}
	if f.Contraries()["b"] != "p" {
		t.Errorf("contrary of b: got %q", f.Contraries()["b"])
	}
	if len(f.Rules()) != 1 || f.Rules()[0].Head != "p" {
		t.Errorf("rules mismatch: %v", f.Rules())
	}
}

func TestFromMap_RejectsMalformedPayloads(t *testing.T) {
	cases := []map[string]any{
		{},
		{"assumptions": "not a list"},
		{"assumptions": []any{1}},
		{"assumptions": []any{"a"}, "contraries": map[string]any{"a": 2}},
		{"assumptions": []any{"a"}, "rules": []any{"not an object"}},
		{"assumptions": []any{"a"}, "rules": []any{map[string]any{"body": []any{"a"}}}},
	}
	for i, payload := range cases {
		if _, err := FromMap(payload); err == nil {
			t.Errorf("case %d: expected an error", i)
		}
	}
}
