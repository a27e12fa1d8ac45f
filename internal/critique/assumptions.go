package critique

import (
	"context"

	"github.com/arglab/toulmin/internal/model"
)

// Assumption is one implicit premise a relation depends on. Importance,
// when present, is in [0,1].
type Assumption struct {
	Assumption string   `json:"assumption"`
	Rationale  string   `json:"rationale,omitempty"`
	Importance *float64 `json:"importance,omitempty"`
}

// AssumptionSuggester proposes implicit assumptions for one relation.
// Implementations typically sit on an LLM; the critique engine only needs
// this single capability.
type AssumptionSuggester interface {
	SuggestAssumptions(ctx context.Context, source, target string, kind model.RelationKind, k int) ([]Assumption, error)
}

// EdgeAssumptions pairs a relation with its suggested assumptions
type EdgeAssumptions struct {
	Src         string             `json:"src"`
	Dst         string             `json:"dst"`
	Kind        model.RelationKind `json:"kind"`
	Assumptions []Assumption       `json:"assumptions"`
}

// SuggestMissingAssumptions asks the suggester for up to k implicit
// assumptions per relation whose endpoints both resolve. A nil suggester
// yields an empty result; per-relation failures skip that relation rather
// than aborting the sweep.
func SuggestMissingAssumptions(ctx context.Context, g *model.Graph, suggester AssumptionSuggester, k int) []EdgeAssumptions {
	if suggester == nil {
		return []EdgeAssumptions{}
	}
	var out []EdgeAssumptions
	for _, rel := range g.Relations {
		source, srcOK := g.Units[rel.Src]
		target, dstOK := g.Units[rel.Dst]
		if !srcOK || !dstOK {
			continue
		}
		assumptions, err := suggester.SuggestAssumptions(ctx, source.Text, target.Text, rel.Kind, k)
		if err != nil {
			continue
		}
		out = append(out, EdgeAssumptions{
			Src:         rel.Src,
			Dst:         rel.Dst,
			Kind:        rel.Kind,
			Assumptions: assumptions,
		})
	}
	return out
}
