package model

// Warrant is the licensing rule behind an inference. It has the same shape
// as ArgumentUnit minus the evidence clamp bounds: warrant evidence support
// is always clamped to [-1, 1].
type Warrant struct {
	ID              string         `json:"id"`
	Text            string         `json:"text"`
	Type            ClaimType      `json:"type"`
	Spans           []TextSpan     `json:"spans,omitempty"`
	Evidence        []EvidenceItem `json:"evidence,omitempty"`
	EvidenceIDs     []string       `json:"evidence_ids,omitempty"`
	Score           *float64       `json:"score,omitempty"`
	IsAxiom         bool           `json:"is_axiom,omitempty"`
	IgnoreInfluence bool           `json:"ignore_influence,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

// WarrantAttack is an attack on a warrant itself rather than on a claim
type WarrantAttack struct {
	Src       string         `json:"src"`
	WarrantID string         `json:"warrant_id"`
	Kind      RelationKind   `json:"kind"`
	Rationale string         `json:"rationale,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}
