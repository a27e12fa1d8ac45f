// Package credibility scores claims and warrants on a continuous scale.
// The warrant-gated engine turns attached evidence into signed support,
// gates each relation's influence by the credibility of the warrants
// licensing it, and iterates to a numeric fixed point.
package credibility

import (
	"fmt"
	"math"

	"github.com/arglab/toulmin/internal/model"
)

// Config tunes the warrant-gated fixed-point iteration
type Config struct {
	// Alpha scales evidence support inside the sigmoid
	Alpha float64
	// Beta scales relation influence inside the sigmoid
	Beta float64
	// MaxIterations bounds the fixed-point loop
	MaxIterations int
	// Epsilon is the max-delta convergence threshold
	Epsilon float64
	// GateRequired makes a warrantless relation score 0 instead of 1
	GateRequired bool
	// ClampInfluence bounds summed influence before the sigmoid
	ClampInfluence float64
}

// DefaultConfig mirrors the engine's reference tuning
func DefaultConfig() Config {
	return Config{
		Alpha:          1.0,
		Beta:           1.0,
		MaxIterations:  50,
		Epsilon:        1e-4,
		GateRequired:   true,
		ClampInfluence: 4.0,
	}
}

// Result carries the full trace of a warrant-gated run: the initial
// evidence maps, every iteration snapshot, and the converged scores. Gate
// scores are keyed by the relation's ordinal id (`e<index>`).
type Result struct {
	EvidenceSupport        map[string]float64   `json:"evidence_support"`
	WarrantEvidenceSupport map[string]float64   `json:"warrant_evidence_support"`
	GateScores             map[string]float64   `json:"gate_scores"`
	ClaimIterations        []map[string]float64 `json:"claim_iterations"`
	WarrantIterations      []map[string]float64 `json:"warrant_iterations"`
	FinalClaimScores       map[string]float64   `json:"final_claim_scores"`
	FinalWarrantScores     map[string]float64   `json:"final_warrant_scores"`
}

// EdgeID formats a relation's stable identifier from its ordinal position
func EdgeID(index int) string {
	return fmt.Sprintf("e%d", index)
}

// Compute runs the warrant-gated fixed point over the graph
func Compute(g *model.Graph, cfg Config) *Result {
	claimEv := map[string]float64{}
	for unitID, unit := range g.Units {
		if unit.IsAxiom {
			claimEv[unitID] = axiomSupport(unit.Score)
			continue
		}
		minBound, maxBound := -1.0, 1.0
		if unit.EvidenceMin != nil {
			minBound = *unit.EvidenceMin
		}
		if unit.EvidenceMax != nil {
			maxBound = *unit.EvidenceMax
		}
		claimEv[unitID] = evidenceSupport(unit.Evidence, unit.EvidenceIDs, g, minBound, maxBound)
	}

	warrantEv := map[string]float64{}
	for warrantID, warrant := range g.Warrants {
		if warrant.IsAxiom {
			warrantEv[warrantID] = axiomSupport(warrant.Score)
			continue
		}
		warrantEv[warrantID] = evidenceSupport(warrant.Evidence, warrant.EvidenceIDs, g, -1.0, 1.0)
	}

	claimScores := map[string]float64{}
	for unitID, ev := range claimEv {
		claimScores[unitID] = sigmoid(cfg.Alpha * ev)
	}
	warrantScores := map[string]float64{}
	for warrantID, ev := range warrantEv {
		warrantScores[warrantID] = sigmoid(cfg.Alpha * ev)
	}

	claimIterations := []map[string]float64{copyScores(claimScores)}
	warrantIterations := []map[string]float64{copyScores(warrantScores)}

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		newWarrantScores := updateWarrants(g, warrantEv, claimScores, cfg)
		gates := gateScores(g, newWarrantScores, cfg)
		newClaimScores := updateClaims(g, claimEv, claimScores, gates, cfg)

		claimIterations = append(claimIterations, copyScores(newClaimScores))
		warrantIterations = append(warrantIterations, copyScores(newWarrantScores))

		maxChange := 0.0
		for key, value := range newClaimScores {
			maxChange = math.Max(maxChange, math.Abs(value-claimScores[key]))
		}
		for key, value := range newWarrantScores {
			maxChange = math.Max(maxChange, math.Abs(value-warrantScores[key]))
		}

		claimScores = newClaimScores
		warrantScores = newWarrantScores
		if maxChange < cfg.Epsilon {
			break
		}
	}

	return &Result{
		EvidenceSupport:        claimEv,
		WarrantEvidenceSupport: warrantEv,
		GateScores:             gateScores(g, warrantScores, cfg),
		ClaimIterations:        claimIterations,
		WarrantIterations:      warrantIterations,
		FinalClaimScores:       claimScores,
		FinalWarrantScores:     warrantScores,
	}
}

func axiomSupport(score *float64) float64 {
	if score == nil {
		return 0.0
	}
	return clamp(*score, -1.0, 1.0)
}

// evidenceSupport averages the signed contribution of the node's attached
// evidence, deduplicated by evidence id, then clamps to the given bounds.
// A card-backed item scores stance sign × card confidence × document trust;
// a bare item scores stance sign × strength (default 1.0).
func evidenceSupport(items []model.EvidenceItem, evidenceIDs []string, g *model.Graph, minBound, maxBound float64) float64 {
	var signed []float64
	seen := map[string]bool{}

	for _, item := range items {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		signed = append(signed, evidenceItemScore(item, g))
	}
	for _, evidenceID := range evidenceIDs {
		if seen[evidenceID] {
			continue
		}
		card, ok := g.EvidenceCards[evidenceID]
		if !ok {
			continue
		}
		seen[evidenceID] = true
		signed = append(signed, cardScore(card, g, model.StanceSupports))
	}

	if len(signed) == 0 {
		return 0.0
	}
	total := 0.0
	for _, s := range signed {
		total += s
	}
	return clamp(total/float64(len(signed)), minBound, maxBound)
}

func evidenceItemScore(item model.EvidenceItem, g *model.Graph) float64 {
	sign := item.Stance.Sign()
	if sign == 0.0 {
		return 0.0
	}
	if card, ok := g.EvidenceCards[item.ID]; ok {
		return cardScore(card, g, item.Stance)
	}
	strength := 1.0
	if item.Strength != nil {
		strength = *item.Strength
	}
	return sign * clamp(strength, 0.0, 1.0)
}

func cardScore(card *model.EvidenceCard, g *model.Graph, stance model.Stance) float64 {
	sign := stance.Sign()
	if sign == 0.0 {
		return 0.0
	}
	trust := 1.0
	if card.SupportingDocID != "" {
		if doc, ok := g.SupportingDocuments[card.SupportingDocID]; ok && doc.Trust != nil {
			trust = clamp(*doc.Trust, 0.0, 1.0)
		}
	}
	return sign * trust * clamp(card.Confidence, 0.0, 1.0)
}

// updateWarrants folds warrant attacks into each warrant's score: every
// attack contributes the negative of the attacker's current score
func updateWarrants(g *model.Graph, warrantEv, claimScores map[string]float64, cfg Config) map[string]float64 {
	incoming := map[string]float64{}
	for _, attack := range g.WarrantAttacks {
		warrant, ok := g.Warrants[attack.WarrantID]
		if !ok || warrant.IgnoreInfluence {
			continue
		}
		incoming[attack.WarrantID] -= claimScores[attack.Src]
	}

	newScores := make(map[string]float64, len(g.Warrants))
	for warrantID, warrant := range g.Warrants {
		influence := 0.0
		if !warrant.IgnoreInfluence {
			influence = incoming[warrantID]
		}
		z := cfg.Alpha*warrantEv[warrantID] + cfg.Beta*clamp(influence, -cfg.ClampInfluence, cfg.ClampInfluence)
		newScores[warrantID] = sigmoid(z)
	}
	return newScores
}

// gateScores computes per-relation gate scores: disabled gates score 0,
// warrantless gates score 0 or 1 per GateRequired, otherwise the cited
// warrant scores combine by min (AND) or max (OR). Unknown warrant ids
// contribute a neutral 0.5.
func gateScores(g *model.Graph, warrantScores map[string]float64, cfg Config) map[string]float64 {
	scores := make(map[string]float64, len(g.Relations))
	for index, rel := range g.Relations {
		key := EdgeID(index)
		if rel.GateStatus == model.GateDisabled {
			scores[key] = 0.0
			continue
		}
		if len(rel.WarrantIDs) == 0 {
			if cfg.GateRequired {
				scores[key] = 0.0
			} else {
				scores[key] = 1.0
			}
			continue
		}
		gate := warrantScore(warrantScores, rel.WarrantIDs[0])
		for _, warrantID := range rel.WarrantIDs[1:] {
			value := warrantScore(warrantScores, warrantID)
			if rel.GateMode == model.GateAND {
				gate = math.Min(gate, value)
			} else {
				gate = math.Max(gate, value)
			}
		}
		scores[key] = gate
	}
	return scores
}

func warrantScore(warrantScores map[string]float64, warrantID string) float64 {
	if score, ok := warrantScores[warrantID]; ok {
		return score
	}
	return 0.5
}

// updateClaims folds gated relation influence into each claim's score
func updateClaims(g *model.Graph, claimEv, claimScores, gates map[string]float64, cfg Config) map[string]float64 {
	incoming := map[string]float64{}
	for index, rel := range g.Relations {
		dst, ok := g.Units[rel.Dst]
		if !ok || dst.IgnoreInfluence {
			continue
		}
		incoming[rel.Dst] += rel.Kind.Sign() * claimScores[rel.Src] * gates[EdgeID(index)]
	}

	newScores := make(map[string]float64, len(g.Units))
	for unitID, unit := range g.Units {
		influence := 0.0
		if !unit.IgnoreInfluence {
			influence = incoming[unitID]
		}
		z := cfg.Alpha*claimEv[unitID] + cfg.Beta*clamp(influence, -cfg.ClampInfluence, cfg.ClampInfluence)
		newScores[unitID] = sigmoid(z)
	}
	return newScores
}

func copyScores(scores map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(scores))
	for k, v := range scores {
		out[k] = v
	}
	return out
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

func clamp(v, low, high float64) float64 {
	return math.Max(low, math.Min(high, v))
}
