package graphio

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ValidateGraphMap checks a decoded graph payload against the structural
// contract and returns every finding: external keys must equal the entity's
// own id field, relation endpoints must reference unit keys, warrant_ids
// must reference warrant keys, and cards must reference known documents.
func ValidateGraphMap(data map[string]any) []string {
	var errors []string

	units, ok := data["units"].(map[string]any)
	if !ok {
		if _, present := data["units"]; present {
			errors = append(errors, "units must be a dictionary of id -> unit.")
		}
		units = map[string]any{}
	}
	warrants, ok := data["warrants"].(map[string]any)
	if !ok {
		warrants = map[string]any{}
	}
	relations, ok := data["relations"].([]any)
	if !ok {
		if _, present := data["relations"]; present {
			errors = append(errors, "relations must be a list.")
		}
		relations = nil
	}
	if metadata, present := data["metadata"]; present && metadata != nil {
		if _, ok := metadata.(map[string]any); !ok {
			errors = append(errors, "metadata must be an object when provided.")
		}
	}
	evidenceCards, _ := data["evidence_cards"].(map[string]any)
	supportingDocuments, _ := data["supporting_documents"].(map[string]any)
	argumentBundles, _ := data["argument_bundles"].(map[string]any)

	for unitID, raw := range units {
		unit, ok := raw.(map[string]any)
		if !ok {
			errors = append(errors, fmt.Sprintf("unit '%s' must be an object.", unitID))
			continue
		}
		if unit["id"] == nil || unit["text"] == nil {
			errors = append(errors, fmt.Sprintf("unit '%s' must include 'id' and 'text'.", unitID))
		}
		if id, _ := unit["id"].(string); id != unitID {
			errors = append(errors, fmt.Sprintf("unit '%s' id field does not match its key.", unitID))
		}
		for _, evidenceID := range stringList(unit["evidence_ids"]) {
			if len(evidenceCards) > 0 {
				if _, known := evidenceCards[evidenceID]; !known {
					errors = append(errors, fmt.Sprintf(
						"unit '%s' evidence_id '%s' is not a known evidence card.", unitID, evidenceID))
				}
			}
		}
	}

	for warrantID, raw := range warrants {
		warrant, ok := raw.(map[string]any)
		if !ok {
			errors = append(errors, fmt.Sprintf("warrant '%s' must be an object.", warrantID))
			continue
		}
		if id, _ := warrant["id"].(string); id != warrantID {
			errors = append(errors, fmt.Sprintf("warrant '%s' id field does not match its key.", warrantID))
		}
	}

	for cardID, raw := range evidenceCards {
		card, ok := raw.(map[string]any)
		if !ok {
			errors = append(errors, fmt.Sprintf("evidence_card '%s' must be an object.", cardID))
			continue
		}
		if card["id"] == nil || card["title"] == nil {
			errors = append(errors, fmt.Sprintf("evidence_card '%s' must include 'id' and 'title'.", cardID))
		}
		if id, _ := card["id"].(string); id != cardID {
			errors = append(errors, fmt.Sprintf("evidence_card '%s' id field does not match its key.", cardID))
		}
		if docID, _ := card["supporting_doc_id"].(string); docID != "" {
			if _, known := supportingDocuments[docID]; !known {
				errors = append(errors, fmt.Sprintf(
					"evidence_card '%s' references unknown supporting_doc_id.", cardID))
			}
		}
	}

	for docID, raw := range supportingDocuments {
		doc, ok := raw.(map[string]any)
		if !ok {
			errors = append(errors, fmt.Sprintf("supporting_document '%s' must be an object.", docID))
			continue
		}
		if doc["id"] == nil || doc["name"] == nil {
			errors = append(errors, fmt.Sprintf("supporting_document '%s' must include 'id' and 'name'.", docID))
		}
		if id, _ := doc["id"].(string); id != docID {
			errors = append(errors, fmt.Sprintf("supporting_document '%s' id field does not match its key.", docID))
		}
	}

	for bundleID, raw := range argumentBundles {
		bundle, ok := raw.(map[string]any)
		if !ok {
			errors = append(errors, fmt.Sprintf("argument_bundle '%s' must be an object.", bundleID))
			continue
		}
		if id, _ := bundle["id"].(string); id != bundleID {
			errors = append(errors, fmt.Sprintf("argument_bundle '%s' id field does not match its key.", bundleID))
		}
		for _, unitID := range stringList(bundle["units"]) {
			if len(units) > 0 {
				if _, known := units[unitID]; !known {
					errors = append(errors, fmt.Sprintf(
						"argument_bundle '%s' references unknown unit '%s'.", bundleID, unitID))
				}
			}
		}
	}

	for index, raw := range relations {
		rel, ok := raw.(map[string]any)
		if !ok {
			errors = append(errors, fmt.Sprintf("relation[%d] must be an object.", index))
			continue
		}
		for _, key := range []string{"src", "dst", "kind"} {
			if rel[key] == nil {
				errors = append(errors, fmt.Sprintf("relation[%d] missing '%s'.", index, key))
			}
		}
		if src, _ := rel["src"].(string); src != "" {
			if _, known := units[src]; !known {
				errors = append(errors, fmt.Sprintf("relation[%d] src '%s' is not a known unit id.", index, src))
			}
		}
		if dst, _ := rel["dst"].(string); dst != "" {
			if _, known := units[dst]; !known {
				errors = append(errors, fmt.Sprintf("relation[%d] dst '%s' is not a known unit id.", index, dst))
			}
		}
		for _, warrantID := range stringList(rel["warrant_ids"]) {
			if _, known := warrants[warrantID]; !known {
				errors = append(errors, fmt.Sprintf(
					"relation[%d] warrant_id '%s' is not a known warrant id.", index, warrantID))
			}
		}
	}

	return errors
}

// ValidatePayload decodes and validates raw JSON, failing with every
// finding joined into one error
func ValidatePayload(data []byte) error {
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("parsing graph payload: %w", err)
	}
	findings := ValidateGraphMap(payload)
	if len(findings) == 0 {
		return nil
	}
	return fmt.Errorf("invalid graph payload:\n- %s", strings.Join(findings, "\n- "))
}

func stringList(raw any) []string {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
