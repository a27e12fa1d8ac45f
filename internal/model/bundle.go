package model

import (
	"fmt"
	"math"
)

// ArgumentBundle groups related units into a single argumentative move
type ArgumentBundle struct {
	ID        string         `json:"id"`
	Units     []string       `json:"units"`
	Relations []*Relation    `json:"relations,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// BundleGraph is the collapsed graph whose nodes are bundles and whose
// edges aggregate the inter-bundle relations of the underlying graph
type BundleGraph struct {
	Bundles   map[string]*ArgumentBundle `json:"bundles"`
	Relations []*Relation                `json:"relations"`
	Metadata  map[string]any             `json:"metadata,omitempty"`
}

// Aggregation selects how multiple inter-bundle edge weights collapse into
// one. Aggregation is deterministic over the relations list's insertion
// order.
type Aggregation string

const (
	AggSum     Aggregation = "sum"
	AggMean    Aggregation = "mean"
	AggMax     Aggregation = "max" // largest magnitude, sign preserved
	AggSoftmax Aggregation = "softmax"
)

func signedWeight(rel *Relation) float64 {
	base := 1.0
	if rel.Weight != nil {
		base = *rel.Weight
	}
	if rel.Kind == RelationSupport {
		return base
	}
	return -math.Abs(base)
}

func aggregateWeights(weights []float64, mode Aggregation) (float64, error) {
	if len(weights) == 0 {
		return 0.0, nil
	}
	switch mode {
	case AggSum:
		total := 0.0
		for _, w := range weights {
			total += w
		}
		return total, nil
	case AggMean:
		total := 0.0
		for _, w := range weights {
			total += w
		}
		return total / float64(len(weights)), nil
	case AggMax:
		best := weights[0]
		for _, w := range weights[1:] {
			if math.Abs(w) > math.Abs(best) {
				best = w
			}
		}
		return best, nil
	case AggSoftmax:
		// TODO: exponentiates raw |w| without max-subtraction, so very large
		// magnitudes can overflow; confirm the intended weighting before
		// switching to a stable formulation.
		total := 0.0
		weighted := 0.0
		for _, w := range weights {
			ew := math.Exp(math.Abs(w))
			total += ew
			weighted += w * ew
		}
		if total == 0 {
			return 0.0, nil
		}
		return weighted / total, nil
	default:
		return 0, fmt.Errorf("unknown aggregation mode: %q", mode)
	}
}
