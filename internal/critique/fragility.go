package critique

import (
	"github.com/arglab/toulmin/internal/credibility"
	"github.com/arglab/toulmin/internal/model"
)

// Fragility reports the warrants whose score is the binding constraint on
// one warrant-gated relation
type Fragility struct {
	EdgeID           string         `json:"edge_id"`
	Dst              string         `json:"dst"`
	GateMode         model.GateMode `json:"gate_mode"`
	GateScore        float64        `json:"gate_score"`
	CriticalWarrants []string       `json:"critical_warrants"`
}

// AnalyzeWarrantFragility runs a credibility pass and, per warrant-gated
// relation, reports the warrant(s) at the binding extreme of the gate
// aggregation: the minimum-scoring warrant under AND, the maximum-scoring
// under OR. Warrantless relations are skipped.
func AnalyzeWarrantFragility(g *model.Graph) []Fragility {
	result := credibility.Compute(g, credibility.DefaultConfig())

	var out []Fragility
	for index, rel := range g.Relations {
		if len(rel.WarrantIDs) == 0 {
			continue
		}
		score := func(warrantID string) float64 {
			if s, ok := result.FinalWarrantScores[warrantID]; ok {
				return s
			}
			return 0.5
		}
		extreme := score(rel.WarrantIDs[0])
		for _, warrantID := range rel.WarrantIDs[1:] {
			s := score(warrantID)
			if rel.GateMode == model.GateAND {
				if s < extreme {
					extreme = s
				}
			} else if s > extreme {
				extreme = s
			}
		}
		var critical []string
		for _, warrantID := range rel.WarrantIDs {
			if score(warrantID) == extreme {
				critical = append(critical, warrantID)
			}
		}
		edgeID := credibility.EdgeID(index)
		out = append(out, Fragility{
			EdgeID:           edgeID,
			Dst:              rel.Dst,
			GateMode:         rel.GateMode,
			GateScore:        result.GateScores[edgeID],
			CriticalWarrants: critical,
		})
	}
	return out
}
