package model

import (
	"encoding/json"
	"fmt"
)

// Stance records whether an evidence item supports, attacks, or is neutral
// toward the unit it is attached to
type Stance string

const (
	StanceSupports Stance = "supports"
	StanceAttacks  Stance = "attacks"
	StanceNeutral  Stance = "neutral"
)

// Sign maps a stance onto the signed multiplier used in scoring
func (s Stance) Sign() float64 {
	switch s {
	case StanceSupports:
		return 1.0
	case StanceAttacks:
		return -1.0
	default:
		return 0.0
	}
}

// EvidenceSource is either a text span or a free-form structured payload.
// Exactly one of the two fields is set.
type EvidenceSource struct {
	Span       *TextSpan
	Structured map[string]any
}

type evidenceSourceJSON struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// MarshalJSON encodes the source as a tagged {type, value} payload
func (s EvidenceSource) MarshalJSON() ([]byte, error) {
	if s.Span != nil {
		value, err := json.Marshal(s.Span)
		if err != nil {
			return nil, err
		}
		return json.Marshal(evidenceSourceJSON{Type: "text_span", Value: value})
	}
	value, err := json.Marshal(s.Structured)
	if err != nil {
		return nil, err
	}
	return json.Marshal(evidenceSourceJSON{Type: "structured", Value: value})
}

// UnmarshalJSON accepts both the tagged form and a bare text-span object
// (legacy payloads carry the span fields directly)
func (s *EvidenceSource) UnmarshalJSON(data []byte) error {
	var tagged evidenceSourceJSON
	if err := json.Unmarshal(data, &tagged); err == nil && tagged.Type != "" {
		switch tagged.Type {
		case "text_span":
			span := &TextSpan{}
			if err := json.Unmarshal(tagged.Value, span); err != nil {
				return err
			}
			s.Span = span
			return nil
		case "structured":
			structured := map[string]any{}
			if len(tagged.Value) > 0 {
				if err := json.Unmarshal(tagged.Value, &structured); err != nil {
					return err
				}
			}
			s.Structured = structured
			return nil
		default:
			return fmt.Errorf("unknown evidence source type: %q", tagged.Type)
		}
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if _, ok := raw["doc_id"]; ok {
		span := &TextSpan{}
		if err := json.Unmarshal(data, span); err != nil {
			return err
		}
		s.Span = span
		return nil
	}
	s.Structured = raw
	return nil
}

// EvidenceItem ties a unit or warrant to a piece of evidence
type EvidenceItem struct {
	ID       string         `json:"id"`
	Source   EvidenceSource `json:"source"`
	Stance   Stance         `json:"stance"`
	Strength *float64       `json:"strength,omitempty"`
	Quality  map[string]any `json:"quality,omitempty"`
}

// EvidenceCard is a curated piece of evidence backed by a supporting
// document. Confidence is in [0,1].
type EvidenceCard struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	SupportingDocID string         `json:"supporting_doc_id,omitempty"`
	Excerpt         string         `json:"excerpt,omitempty"`
	Confidence      float64        `json:"confidence"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

// SupportingDocument is a source document evidence cards reference.
// Trust, when present, is in [0,1] and scales card confidence.
type SupportingDocument struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	URL      string         `json:"url,omitempty"`
	Trust    *float64       `json:"trust,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}
