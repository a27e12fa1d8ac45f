package critique

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultBank_CoversBuiltins(t *testing.T) {
	bank := DefaultBank()
	for _, id := range []string{
		"circular_reasoning", "self_attack", "unsupported_conclusion",
		"redundancy", "contradiction", "unstated_warrant",
	} {
		definition, ok := bank[id]
		if !ok {
			t.Errorf("missing built-in pattern %q", id)
			continue
		}
		if definition.ID != id || definition.Action == "" {
			t.Errorf("pattern %q is incomplete: %+v", id, definition)
		}
	}
}

func TestLoadBank_OverridesAndBackfills(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.yaml")
	content := `patterns:
  - id: circular_reasoning
    name: Custom Circularity
    action: flag_edge
  - id: appeal_to_novelty
    description: Newer is treated as better.
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	bank, err := LoadBank(path)
	if err != nil {
		t.Fatalf("LoadBank: %v", err)
	}

	circular := bank["circular_reasoning"]
	if circular.Name != "Custom Circularity" || circular.Action != ActionFlagEdge {
		t.Errorf("override not applied: %+v", circular)
	}

	novelty := bank["appeal_to_novelty"]
	if novelty.Name != "appeal_to_novelty" || novelty.Kind != "fallacious" || novelty.Action != ActionFlagEdge {
		t.Errorf("defaults not filled for new pattern: %+v", novelty)
	}

	if _, ok := bank["self_attack"]; !ok {
		t.Error("built-ins should backfill patterns the file omits")
	}
}

func TestLoadBankOrDefault(t *testing.T) {
	if len(LoadBankOrDefault("")) != len(DefaultBank()) {
		t.Error("empty path should return the built-in bank")
	}
	if len(LoadBankOrDefault("/does/not/exist.yaml")) != len(DefaultBank()) {
		t.Error("unreadable path should fall back to the built-in bank")
	}
}
