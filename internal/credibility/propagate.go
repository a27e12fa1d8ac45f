package credibility

import (
	"math"

	"github.com/arglab/toulmin/internal/model"
)

// PropagationOptions tunes the plain tanh propagation pass
type PropagationOptions struct {
	// Lambda scales evidence support relative to edge contributions
	Lambda float64
	// MaxIterations bounds the fixed-point loop
	MaxIterations int
	// Epsilon is the max-delta convergence threshold
	Epsilon float64
	// EvidenceMin and EvidenceMax clamp per-item evidence scores for units
	// without their own bounds
	EvidenceMin float64
	EvidenceMax float64
}

// DefaultPropagationOptions mirrors the reference tuning
func DefaultPropagationOptions() PropagationOptions {
	return PropagationOptions{
		Lambda:        0.5,
		MaxIterations: 100,
		Epsilon:       1e-6,
		EvidenceMin:   0.0,
		EvidenceMax:   1.0,
	}
}

// PropagationResult carries the trace of a propagation run
type PropagationResult struct {
	InitialEvidence map[string]float64   `json:"initial_evidence"`
	Iterations      []map[string]float64 `json:"iterations"`
	FinalScores     map[string]float64   `json:"final_scores"`
}

// Propagate runs the simpler, ungated credibility pass: evidence averages
// seed each unit, then weighted edge contributions push scores through tanh
// until the fixed point. Source nodes (no incoming edges) keep their
// evidence score. The warrant-gated engine is the primary scorer; this pass
// remains for quick, warrant-free graphs.
func Propagate(g *model.Graph, opts PropagationOptions) *PropagationResult {
	evidenceScores := make(map[string]float64, len(g.Units))
	for unitID, unit := range g.Units {
		scores := collectEvidenceScores(unit, g)
		if len(scores) == 0 {
			evidenceScores[unitID] = 0.0
			continue
		}
		minBound, maxBound := opts.EvidenceMin, opts.EvidenceMax
		if unit.EvidenceMin != nil {
			minBound = *unit.EvidenceMin
		}
		if unit.EvidenceMax != nil {
			maxBound = *unit.EvidenceMax
		}
		total := 0.0
		for _, score := range scores {
			total += clamp(score, minBound, maxBound)
		}
		evidenceScores[unitID] = total / float64(len(scores))
	}

	prev := copyScores(evidenceScores)
	iterations := []map[string]float64{copyScores(prev)}

	incoming := map[string][]*model.Relation{}
	for _, rel := range g.Relations {
		incoming[rel.Dst] = append(incoming[rel.Dst], rel)
	}

	for iter := 0; iter < opts.MaxIterations; iter++ {
		next := copyScores(prev)
		for unitID := range g.Units {
			edges := incoming[unitID]
			if len(edges) == 0 {
				continue
			}
			total := 0.0
			meaningful := false
			for _, edge := range edges {
				contribution := edgeContribution(edge, prev)
				total += contribution
				if math.Abs(contribution) > 0.001 {
					meaningful = true
				}
			}
			if meaningful {
				next[unitID] = math.Tanh(opts.Lambda*evidenceScores[unitID] + total)
			}
		}

		iterations = append(iterations, copyScores(next))
		maxChange := 0.0
		for unitID, value := range next {
			maxChange = math.Max(maxChange, math.Abs(value-prev[unitID]))
		}
		prev = next
		if maxChange < opts.Epsilon {
			break
		}
	}

	return &PropagationResult{
		InitialEvidence: evidenceScores,
		Iterations:      iterations,
		FinalScores:     iterations[len(iterations)-1],
	}
}

func collectEvidenceScores(unit *model.ArgumentUnit, g *model.Graph) []float64 {
	var scores []float64
	seen := map[string]bool{}

	for _, item := range unit.Evidence {
		if card, ok := g.EvidenceCards[item.ID]; ok {
			scores = append(scores, card.Confidence)
			seen[item.ID] = true
		} else if item.Strength != nil {
			scores = append(scores, *item.Strength)
			seen[item.ID] = true
		}
	}
	for _, evidenceID := range unit.EvidenceIDs {
		if seen[evidenceID] {
			continue
		}
		if card, ok := g.EvidenceCards[evidenceID]; ok {
			scores = append(scores, card.Confidence)
			seen[evidenceID] = true
		}
	}
	return scores
}

func edgeContribution(edge *model.Relation, scores map[string]float64) float64 {
	if edge.Weight != nil && *edge.Weight == 0.0 {
		return 0.0
	}
	weight := 1.0
	if edge.Weight != nil {
		weight = *edge.Weight
	}
	strength := math.Abs(weight)
	srcScore := scores[edge.Src]
	if edge.Kind == model.RelationSupport {
		return strength * srcScore
	}
	return -strength * math.Abs(srcScore)
}
