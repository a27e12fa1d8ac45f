// Package graphio implements the structural export/import contract: a
// graph serializes to a keyed JSON structure that round-trips losslessly,
// and deserialization can validate referential integrity first.
package graphio

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/arglab/toulmin/internal/model"
)

// Dumps serializes a graph to indented JSON
func Dumps(g *model.Graph) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// Loads deserializes a graph, optionally validating the payload against
// the structural schema first
func Loads(data []byte, validate bool) (*model.Graph, error) {
	if validate {
		if err := ValidatePayload(data); err != nil {
			return nil, err
		}
	}
	g := model.NewGraph("")
	if err := json.Unmarshal(data, g); err != nil {
		return nil, fmt.Errorf("parsing graph: %w", err)
	}
	ensureContainers(g)
	return g, nil
}

// Save writes a graph to a file
func Save(path string, g *model.Graph) error {
	data, err := Dumps(g)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Load reads a graph from a file
func Load(path string, validate bool) (*model.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading graph: %w", err)
	}
	return Loads(data, validate)
}

// ensureContainers normalizes absent sections to empty containers so a
// freshly deserialized graph behaves like a newly constructed one
func ensureContainers(g *model.Graph) {
	if g.Units == nil {
		g.Units = map[string]*model.ArgumentUnit{}
	}
	if g.Warrants == nil {
		g.Warrants = map[string]*model.Warrant{}
	}
	if g.Relations == nil {
		g.Relations = []*model.Relation{}
	}
	if g.WarrantAttacks == nil {
		g.WarrantAttacks = []*model.WarrantAttack{}
	}
	if g.EvidenceCards == nil {
		g.EvidenceCards = map[string]*model.EvidenceCard{}
	}
	if g.SupportingDocuments == nil {
		g.SupportingDocuments = map[string]*model.SupportingDocument{}
	}
	if g.ArgumentBundles == nil {
		g.ArgumentBundles = map[string]*model.ArgumentBundle{}
	}
	if g.Metadata == nil {
		g.Metadata = map[string]any{}
	}
}
