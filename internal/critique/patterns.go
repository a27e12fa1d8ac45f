// Package critique detects structural fallacies in argument graphs and
// analyzes how fragile warrant-gated inferences are.
package critique

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/arglab/toulmin/internal/algorithms"
	"github.com/arglab/toulmin/internal/credibility"
	"github.com/arglab/toulmin/internal/model"
)

// Action is the remediation a pattern match calls for
type Action string

const (
	ActionDisableEdge  Action = "disable_edge"
	ActionRestrictEdge Action = "restrict_edge"
	ActionFlagEdge     Action = "flag_edge"
	ActionFlagNode     Action = "flag_node"
)

// Definition describes one detectable pattern
type Definition struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Category    string `yaml:"category" json:"category"`
	Kind        string `yaml:"kind" json:"kind"`
	Description string `yaml:"description" json:"description"`
	Action      Action `yaml:"action" json:"action"`
}

// Match is one detected occurrence of a pattern
type Match struct {
	PatternID   string   `json:"pattern_id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Kind        string   `json:"kind"`
	Description string   `json:"description"`
	Action      Action   `json:"action"`
	Nodes       []string `json:"nodes"`
	Edges       []string `json:"edges"`
	Message     string   `json:"message"`
}

// DetectPatterns scans the graph against the bank (nil means the built-in
// bank) and returns every match
func DetectPatterns(g *model.Graph, bank Bank) []Match {
	if bank == nil {
		bank = DefaultBank()
	}
	var matches []Match

	relations := g.Relations
	triples := make([][3]string, len(relations))
	for i, rel := range relations {
		triples[i] = [3]string{rel.Src, rel.Dst, string(rel.Kind)}
	}
	supportPairs := algorithms.BuildEdges(triples, []string{string(model.RelationSupport)})

	nodes := make([]string, 0, len(g.Units))
	for unitID := range g.Units {
		nodes = append(nodes, unitID)
	}
	sort.Strings(nodes)

	for _, cycle := range algorithms.FindCycles(nodes, supportPairs) {
		if len(cycle) < 2 {
			continue
		}
		matches = append(matches, bank.match("circular_reasoning", cycle,
			supportEdgeIDsForCycle(relations, cycle),
			fmt.Sprintf("Support cycle detected across %d claims.", len(cycle))))
	}

	for index, rel := range relations {
		edgeID := credibility.EdgeID(index)
		if rel.Kind == model.RelationAttack && rel.Src == rel.Dst {
			matches = append(matches, bank.match("self_attack",
				[]string{rel.Src}, []string{edgeID},
				"Attack edge targets the same claim."))
		}
		if len(rel.WarrantIDs) == 0 {
			matches = append(matches, bank.match("unstated_warrant",
				[]string{rel.Src, rel.Dst}, []string{edgeID},
				"Edge has no explicit warrants."))
		}
	}

	supported := map[string]bool{}
	for _, rel := range relations {
		if rel.Kind == model.RelationSupport {
			supported[rel.Dst] = true
		}
	}
	for _, claimID := range nodes {
		if !supported[claimID] {
			matches = append(matches, bank.match("unsupported_conclusion",
				[]string{claimID}, []string{},
				"Claim has no incoming support edges."))
		}
	}

	matches = append(matches, detectRedundancy(g, bank)...)
	matches = append(matches, detectContradiction(relations, bank)...)

	return matches
}

// ApplyGateActions mutates the graph in place according to the matches:
// disable_edge marks the relation's gate disabled, restrict_edge forces AND
// gating. Flag actions leave the graph untouched. Must not run concurrently
// with a credibility pass over the same graph.
func ApplyGateActions(g *model.Graph, matches []Match) {
	for _, match := range matches {
		if match.Action != ActionDisableEdge && match.Action != ActionRestrictEdge {
			continue
		}
		for _, edgeID := range match.Edges {
			index, ok := parseEdgeID(edgeID)
			if !ok || index < 0 || index >= len(g.Relations) {
				continue
			}
			rel := g.Relations[index]
			switch match.Action {
			case ActionDisableEdge:
				rel.GateStatus = model.GateDisabled
			case ActionRestrictEdge:
				rel.GateStatus = model.GateRestricted
				rel.GateMode = model.GateAND
			}
			if rel.Metadata == nil {
				rel.Metadata = map[string]any{}
			}
			rel.Metadata["gate_action"] = match.PatternID
		}
	}
}

func parseEdgeID(edgeID string) (int, bool) {
	if !strings.HasPrefix(edgeID, "e") {
		return 0, false
	}
	index, err := strconv.Atoi(edgeID[1:])
	if err != nil {
		return 0, false
	}
	return index, true
}

func supportEdgeIDsForCycle(relations []*model.Relation, cycle []string) []string {
	pairs := map[[2]string]bool{}
	for i, node := range cycle {
		next := cycle[(i+1)%len(cycle)]
		pairs[[2]string{node, next}] = true
	}
	var edgeIDs []string
	for index, rel := range relations {
		if rel.Kind != model.RelationSupport {
			continue
		}
		if pairs[[2]string{rel.Src, rel.Dst}] {
			edgeIDs = append(edgeIDs, credibility.EdgeID(index))
		}
	}
	return edgeIDs
}

// detectRedundancy flags distinct source claims with normalized-identical
// text supporting the same target
func detectRedundancy(g *model.Graph, bank Bank) []Match {
	byTarget := map[string]map[string][]string{}
	for _, rel := range g.Relations {
		if rel.Kind != model.RelationSupport {
			continue
		}
		source, ok := g.Units[rel.Src]
		if !ok {
			continue
		}
		key := normalizeText(source.Text)
		if byTarget[rel.Dst] == nil {
			byTarget[rel.Dst] = map[string][]string{}
		}
		byTarget[rel.Dst][key] = append(byTarget[rel.Dst][key], rel.Src)
	}

	targets := make([]string, 0, len(byTarget))
	for target := range byTarget {
		targets = append(targets, target)
	}
	sort.Strings(targets)

	var matches []Match
	for _, target := range targets {
		groups := byTarget[target]
		keys := make([]string, 0, len(groups))
		for key := range groups {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			sources := dedupeStrings(groups[key])
			if len(sources) < 2 {
				continue
			}
			nodes := append(append([]string{}, sources...), target)
			sort.Strings(nodes)
			matches = append(matches, bank.match("redundancy",
				dedupeStrings(nodes), []string{},
				fmt.Sprintf("Redundant supports to %s: %s.", target, strings.Join(sources, ", "))))
		}
	}
	return matches
}

// detectContradiction flags (src, dst) pairs carrying both a support and an
// attack relation
func detectContradiction(relations []*model.Relation, bank Bank) []Match {
	type pair struct{ src, dst string }
	byPair := map[pair]map[model.RelationKind][]int{}
	var order []pair
	for index, rel := range relations {
		key := pair{rel.Src, rel.Dst}
		if byPair[key] == nil {
			byPair[key] = map[model.RelationKind][]int{}
			order = append(order, key)
		}
		byPair[key][rel.Kind] = append(byPair[key][rel.Kind], index)
	}

	var matches []Match
	for _, key := range order {
		kinds := byPair[key]
		supports, hasSupport := kinds[model.RelationSupport]
		attacks, hasAttack := kinds[model.RelationAttack]
		if !hasSupport || !hasAttack {
			continue
		}
		var edges []string
		for _, index := range append(append([]int{}, supports...), attacks...) {
			edges = append(edges, credibility.EdgeID(index))
		}
		matches = append(matches, bank.match("contradiction",
			[]string{key.src, key.dst}, edges,
			"Same source both supports and attacks the target."))
	}
	return matches
}

func normalizeText(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

func dedupeStrings(items []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}
