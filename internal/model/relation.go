package model

// RelationKind classifies an edge between two units
type RelationKind string

const (
	RelationSupport  RelationKind = "support"
	RelationAttack   RelationKind = "attack"
	RelationUndercut RelationKind = "undercut"
	RelationRebut    RelationKind = "rebut"
)

// Sign is +1 for support and -1 for every adversarial kind
func (k RelationKind) Sign() float64 {
	if k == RelationSupport {
		return 1.0
	}
	return -1.0
}

// GateMode selects how multiple warrant scores combine into one gate score
type GateMode string

const (
	GateAND GateMode = "AND" // gate = min of warrant scores
	GateOR  GateMode = "OR"  // gate = max of warrant scores
)

// GateStatus is the critique engine's verdict on a relation's gate
type GateStatus string

const (
	GateOpen       GateStatus = ""           // default: gate operates normally
	GateDisabled   GateStatus = "disabled"   // gate score forced to zero
	GateRestricted GateStatus = "restricted" // gate mode forced to AND
)

// Relation is a directed edge between two units. Relations live in a list,
// not a map: their ordinal position is the stable edge identity (`e<index>`)
// used by gate scores, pattern matches, and explanations.
type Relation struct {
	Src        string         `json:"src"`
	Dst        string         `json:"dst"`
	Kind       RelationKind   `json:"kind"`
	WarrantIDs []string       `json:"warrant_ids,omitempty"`
	GateMode   GateMode       `json:"gate_mode,omitempty"`
	GateStatus GateStatus     `json:"gate_status,omitempty"`
	Weight     *float64       `json:"weight,omitempty"`
	Rationale  string         `json:"rationale,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}
