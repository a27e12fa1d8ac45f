package critique

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Bank maps pattern ids to their definitions
type Bank map[string]Definition

// DefaultBank returns the six built-in patterns
func DefaultBank() Bank {
	return Bank{
		"circular_reasoning": {
			ID:          "circular_reasoning",
			Name:        "Circular Reasoning",
			Category:    "Structural",
			Kind:        "fallacious",
			Description: "A claim ultimately supports itself through a support cycle.",
			Action:      ActionDisableEdge,
		},
		"self_attack": {
			ID:          "self_attack",
			Name:        "Self-Attack",
			Category:    "Structural",
			Kind:        "fallacious",
			Description: "A node attacks itself, contradicting its own claim.",
			Action:      ActionDisableEdge,
		},
		"unsupported_conclusion": {
			ID:          "unsupported_conclusion",
			Name:        "Unsupported Conclusion",
			Category:    "Structural",
			Kind:        "fallacious",
			Description: "A claim has no incoming support edges.",
			Action:      ActionFlagNode,
		},
		"redundancy": {
			ID:          "redundancy",
			Name:        "Redundancy",
			Category:    "Structural",
			Kind:        "fallacious",
			Description: "Multiple equivalent supports to the same conclusion.",
			Action:      ActionFlagNode,
		},
		"contradiction": {
			ID:          "contradiction",
			Name:        "Contradiction",
			Category:    "Structural",
			Kind:        "fallacious",
			Description: "Support and attack edges target the same claim from a source.",
			Action:      ActionFlagEdge,
		},
		"unstated_warrant": {
			ID:          "unstated_warrant",
			Name:        "Unstated Warrant",
			Category:    "Substructural",
			Kind:        "fallacious",
			Description: "An edge has no explicit warrants gating its inference.",
			Action:      ActionDisableEdge,
		},
	}
}

type bankFile struct {
	Patterns []Definition `yaml:"patterns"`
}

// LoadBank reads an external YAML pattern bank. The built-in definitions
// always backfill ids the file does not mention.
func LoadBank(path string) (Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pattern bank: %w", err)
	}
	var file bankFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing pattern bank: %w", err)
	}

	bank := Bank{}
	for _, entry := range file.Patterns {
		if entry.ID == "" {
			continue
		}
		if entry.Name == "" {
			entry.Name = entry.ID
		}
		if entry.Category == "" {
			entry.Category = "Uncategorized"
		}
		if entry.Kind == "" {
			entry.Kind = "fallacious"
		}
		if entry.Action == "" {
			entry.Action = ActionFlagEdge
		}
		bank[entry.ID] = entry
	}
	for id, definition := range DefaultBank() {
		if _, ok := bank[id]; !ok {
			bank[id] = definition
		}
	}
	return bank, nil
}

// LoadBankOrDefault falls back to the built-ins when the path is empty or
// unreadable
func LoadBankOrDefault(path string) Bank {
	if path == "" {
		return DefaultBank()
	}
	bank, err := LoadBank(path)
	if err != nil {
		return DefaultBank()
	}
	return bank
}

func (b Bank) match(patternID string, nodes, edges []string, message string) Match {
	definition := b[patternID]
	if definition.ID == "" {
		definition = DefaultBank()[patternID]
	}
	return Match{
		PatternID:   definition.ID,
		Name:        definition.Name,
		Category:    definition.Category,
		Kind:        definition.Kind,
		Description: definition.Description,
		Action:      definition.Action,
		Nodes:       nodes,
		Edges:       edges,
		Message:     message,
	}
}
