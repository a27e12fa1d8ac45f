package credibility

import "github.com/arglab/toulmin/internal/model"

// IncomingEdge is one relation's contribution to a claim's score
type IncomingEdge struct {
	EdgeID     string             `json:"edge_id"`
	Src        string             `json:"src"`
	Dst        string             `json:"dst"`
	Kind       model.RelationKind `json:"kind"`
	GateScore  float64            `json:"gate_score"`
	SrcScore   float64            `json:"src_score"`
	Influence  float64            `json:"influence"`
	WarrantIDs []string           `json:"warrant_ids"`
	GateMode   model.GateMode     `json:"gate_mode"`
}

// Explanation reconstructs how a claim's final score came together
type Explanation struct {
	EvidenceSupport float64        `json:"evidence_support"`
	Incoming        []IncomingEdge `json:"incoming"`
	TotalInfluence  float64        `json:"total_influence"`
	FinalScore      float64        `json:"final_score"`
}

// Explain projects a computed result back onto the graph's relations: per
// claim, the incoming edges with their gate score, source score, and signed
// influence contribution. This is purely a projection; no new computation
// happens here.
func Explain(g *model.Graph, result *Result) map[string]*Explanation {
	explanations := make(map[string]*Explanation, len(g.Units))
	for claimID := range g.Units {
		explanations[claimID] = &Explanation{
			EvidenceSupport: result.EvidenceSupport[claimID],
			Incoming:        []IncomingEdge{},
			FinalScore:      result.FinalClaimScores[claimID],
		}
	}

	for index, rel := range g.Relations {
		explanation, ok := explanations[rel.Dst]
		if !ok {
			continue
		}
		edgeID := EdgeID(index)
		gate := result.GateScores[edgeID]
		srcScore := result.FinalClaimScores[rel.Src]
		influence := rel.Kind.Sign() * srcScore * gate
		explanation.Incoming = append(explanation.Incoming, IncomingEdge{
			EdgeID:     edgeID,
			Src:        rel.Src,
			Dst:        rel.Dst,
			Kind:       rel.Kind,
			GateScore:  gate,
			SrcScore:   srcScore,
			Influence:  influence,
			WarrantIDs: append([]string{}, rel.WarrantIDs...),
			GateMode:   rel.GateMode,
		})
		explanation.TotalInfluence += influence
	}
	return explanations
}
