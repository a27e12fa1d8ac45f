package dung

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func chainAF() *AF {
	// a -> b -> c
	af := New()
	af.AddAttack("a", "b")
	af.AddAttack("b", "c")
	return af
}

func mutualAF() *AF {
	af := New()
	af.AddAttack("a", "b")
	af.AddAttack("b", "a")
	return af
}

func TestGroundedExtension_AttackChain(t *testing.T) {
	grounded, err := chainAF().GroundedExtension()
	if err != nil {
		t.Fatalf("GroundedExtension: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "c"}, grounded); diff != "" {
		t.Errorf("grounded extension mismatch (-want +got):\n%s", diff)
	}
}

func TestPreferredAndStable_MutualAttack(t *testing.T) {
	af := mutualAF()

	preferred, err := af.PreferredExtensions()
	if err != nil {
		t.Fatalf("PreferredExtensions: %v", err)
	}
	want := [][]string{{"a"}, {"b"}}
	if diff := cmp.Diff(want, preferred); diff != "" {
		t.Errorf("preferred extensions mismatch (-want +got):\n%s", diff)
	}

	stable, err := af.StableExtensions()
	if err != nil {
		t.Fatalf("StableExtensions: %v", err)
	}
	if diff := cmp.Diff(want, stable); diff != "" {
		t.Errorf("stable extensions mismatch (-want +got):\n%s", diff)
	}
}

func TestSemanticsInclusion(t *testing.T) {
	// a <-> b, b -> c: a mix of even cycle and chain
	af := New()
	af.AddAttack("a", "b")
	af.AddAttack("b", "a")
	af.AddAttack("b", "c")

	admissible, err := af.AdmissibleSets()
	if err != nil {
		t.Fatalf("AdmissibleSets: %v", err)
	}
	complete, err := af.CompleteExtensions()
	if err != nil {
		t.Fatalf("CompleteExtensions: %v", err)
	}
	preferred, err := af.PreferredExtensions()
	if err != nil {
		t.Fatalf("PreferredExtensions: %v", err)
	}
	stable, err := af.StableExtensions()
	if err != nil {
		t.Fatalf("StableExtensions: %v", err)
	}

	assertEachContained(t, "stable in preferred", stable, preferred)
	assertEachContained(t, "preferred in complete", preferred, complete)
	assertEachContained(t, "complete in admissible", complete, admissible)
}

func TestGroundedContainedInEveryPreferred(t *testing.T) {
	af := New()
	af.AddAttack("a", "b")
	af.AddAttack("b", "a")
	af.AddAttack("a", "c")
	af.AddAttack("b", "c")
	af.AddAttack("c", "d")

	grounded, err := af.GroundedExtension()
	if err != nil {
		t.Fatalf("GroundedExtension: %v", err)
	}
	preferred, err := af.PreferredExtensions()
	if err != nil {
		t.Fatalf("PreferredExtensions: %v", err)
	}
	if len(preferred) == 0 {
		t.Fatal("expected at least one preferred extension")
	}
	for _, ext := range preferred {
		members := toSet(ext)
		for _, arg := range grounded {
			if !members[arg] {
				t.Errorf("grounded member %q missing from preferred extension %v", arg, ext)
			}
		}
	}
}

func TestGroundedLabeling_AttackChain(t *testing.T) {
	labelings, err := chainAF().Labelings("grounded")
	if err != nil {
		t.Fatalf("Labelings: %v", err)
	}
	if len(labelings) != 1 {
		t.Fatalf("expected exactly one grounded labeling, got %d", len(labelings))
	}
	want := map[string]Label{"a": LabelIn, "b": LabelOut, "c": LabelIn}
	if diff := cmp.Diff(want, labelings[0]); diff != "" {
		t.Errorf("grounded labeling mismatch (-want +got):\n%s", diff)
	}
}

func TestGroundedLabeling_OddCycleStaysUndecided(t *testing.T) {
	af := New()
	af.AddAttack("a", "b")
	af.AddAttack("b", "c")
	af.AddAttack("c", "a")

	labelings, err := af.Labelings("grounded")
	if err != nil {
		t.Fatalf("Labelings: %v", err)
	}
	for arg, label := range labelings[0] {
		if label != LabelUndec {
			t.Errorf("argument %q: expected undec in an odd cycle, got %q", arg, label)
		}
	}
}

func TestExtensions_UnknownSemantics(t *testing.T) {
	_, err := chainAF().Extensions("semistable")
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
	_, err = chainAF().Labelings("preferred")
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported for non-grounded labeling, got %v", err)
	}
}

func TestExtensions_GroundedDispatch(t *testing.T) {
	extensions, err := chainAF().Extensions("grounded")
	if err != nil {
		t.Fatalf("Extensions: %v", err)
	}
	want := [][]string{{"a", "c"}}
	if diff := cmp.Diff(want, extensions); diff != "" {
		t.Errorf("grounded dispatch mismatch (-want +got):\n%s", diff)
	}
}

func TestEnumerationCap(t *testing.T) {
	af := New()
	af.MaxArguments = 4
	for _, arg := range []string{"a", "b", "c", "d", "e"} {
		af.AddArgument(arg)
	}
	if _, err := af.AdmissibleSets(); err == nil {
		t.Error("expected enumeration refusal above the argument cap")
	}
}

func TestConflictFreeAndDefends(t *testing.T) {
	af := chainAF()
	if !af.ConflictFree([]string{"a", "c"}) {
		t.Error("expected {a, c} to be conflict-free")
	}
	if af.ConflictFree([]string{"a", "b"}) {
		t.Error("expected {a, b} to conflict")
	}
	if !af.Defends([]string{"a"}, "c") {
		t.Error("expected {a} to defend c against b")
	}
	if af.Defends([]string{}, "c") {
		t.Error("expected the empty set not to defend c")
	}
}

func assertEachContained(t *testing.T, label string, subset, superset [][]string) {
	t.Helper()
	for _, candidate := range subset {
		found := false
		for _, other := range superset {
			if equalSets(candidate, other) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("%s violated: %v not found", label, candidate)
		}
	}
}
