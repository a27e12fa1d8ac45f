package model

// ClaimType categorizes the nature of a claim or warrant
type ClaimType string

const (
	ClaimFact   ClaimType = "fact"   // Empirically checkable assertions
	ClaimValue  ClaimType = "value"  // Normative judgements
	ClaimPolicy ClaimType = "policy" // Proposals for action
	ClaimOther  ClaimType = "other"  // Anything else (default)
)

// ArgumentUnit is a single claim node in the argument graph.
//
// An axiom unit declares its own score and bypasses evidence aggregation
// entirely. A unit with IgnoreInfluence set receives no incoming relation
// influence during credibility propagation; it is scored from its own
// evidence or axiom value only.
type ArgumentUnit struct {
	ID              string         `json:"id"`
	Text            string         `json:"text"`
	Type            ClaimType      `json:"type"`
	Spans           []TextSpan     `json:"spans,omitempty"`
	Evidence        []EvidenceItem `json:"evidence,omitempty"`
	EvidenceIDs     []string       `json:"evidence_ids,omitempty"`
	EvidenceMin     *float64       `json:"evidence_min,omitempty"`
	EvidenceMax     *float64       `json:"evidence_max,omitempty"`
	Score           *float64       `json:"score,omitempty"`
	IsAxiom         bool           `json:"is_axiom,omitempty"`
	IgnoreInfluence bool           `json:"ignore_influence,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}
