package model

import (
	"fmt"
	"strconv"
	"strings"
)

// NotFoundError reports a reference to an entity the graph does not hold
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown %s id: %s", e.Kind, e.ID)
}

// Graph is the aggregate owning every argument entity by id. Relations and
// warrant attacks are ordered lists; the relation list's insertion order is
// the stable edge numbering every downstream engine keys on.
type Graph struct {
	Units               map[string]*ArgumentUnit       `json:"units"`
	Warrants            map[string]*Warrant            `json:"warrants"`
	Relations           []*Relation                    `json:"relations"`
	WarrantAttacks      []*WarrantAttack               `json:"warrant_attacks"`
	EvidenceCards       map[string]*EvidenceCard       `json:"evidence_cards"`
	SupportingDocuments map[string]*SupportingDocument `json:"supporting_documents"`
	ArgumentBundles     map[string]*ArgumentBundle     `json:"argument_bundles"`
	Metadata            map[string]any                 `json:"metadata"`
}

// NewGraph creates an empty graph, optionally titled
func NewGraph(title string) *Graph {
	metadata := map[string]any{}
	if title != "" {
		metadata["title"] = title
	}
	return &Graph{
		Units:               map[string]*ArgumentUnit{},
		Warrants:            map[string]*Warrant{},
		Relations:           []*Relation{},
		WarrantAttacks:      []*WarrantAttack{},
		EvidenceCards:       map[string]*EvidenceCard{},
		SupportingDocuments: map[string]*SupportingDocument{},
		ArgumentBundles:     map[string]*ArgumentBundle{},
		Metadata:            metadata,
	}
}

// Float is a convenience for optional numeric fields
func Float(v float64) *float64 { return &v }

// NodeOption customizes a claim or warrant at creation time
type NodeOption func(*nodeConfig)

type nodeConfig struct {
	id              string
	typ             ClaimType
	spans           []TextSpan
	evidence        []EvidenceItem
	evidenceIDs     []string
	evidenceMin     *float64
	evidenceMax     *float64
	score           *float64
	isAxiom         bool
	ignoreInfluence bool
	metadata        map[string]any
}

// WithID fixes the node id instead of allocating one
func WithID(id string) NodeOption { return func(c *nodeConfig) { c.id = id } }

// WithType sets the claim type (default "other")
func WithType(t ClaimType) NodeOption { return func(c *nodeConfig) { c.typ = t } }

// WithSpans attaches source text spans
func WithSpans(spans ...TextSpan) NodeOption {
	return func(c *nodeConfig) { c.spans = append(c.spans, spans...) }
}

// WithEvidence attaches pre-built evidence items
func WithEvidence(items ...EvidenceItem) NodeOption {
	return func(c *nodeConfig) { c.evidence = append(c.evidence, items...) }
}

// WithEvidenceIDs references evidence cards by id
func WithEvidenceIDs(ids ...string) NodeOption {
	return func(c *nodeConfig) { c.evidenceIDs = append(c.evidenceIDs, ids...) }
}

// WithEvidenceBounds clamps the node's aggregated evidence support.
// Only claims honor bounds; warrants are always clamped to [-1, 1].
func WithEvidenceBounds(min, max float64) NodeOption {
	return func(c *nodeConfig) {
		c.evidenceMin = &min
		c.evidenceMax = &max
	}
}

// WithScore declares a score without marking the node an axiom
func WithScore(score float64) NodeOption {
	return func(c *nodeConfig) { c.score = &score }
}

// AsAxiom declares the node's score directly, bypassing evidence aggregation
func AsAxiom(score float64) NodeOption {
	return func(c *nodeConfig) {
		c.score = &score
		c.isAxiom = true
	}
}

// WithIgnoreInfluence shields the node from incoming relation influence
func WithIgnoreInfluence() NodeOption {
	return func(c *nodeConfig) { c.ignoreInfluence = true }
}

// WithNodeMetadata merges free-form metadata onto the node
func WithNodeMetadata(metadata map[string]any) NodeOption {
	return func(c *nodeConfig) { c.metadata = metadata }
}

func buildNodeConfig(opts []NodeOption) nodeConfig {
	cfg := nodeConfig{typ: ClaimOther}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.metadata == nil {
		cfg.metadata = map[string]any{}
	}
	return cfg
}

// AddClaim creates a claim unit and returns its id
func (g *Graph) AddClaim(text string, opts ...NodeOption) string {
	cfg := buildNodeConfig(opts)
	if cfg.id == "" {
		cfg.id = g.nextID("c")
	}
	g.Units[cfg.id] = &ArgumentUnit{
		ID:              cfg.id,
		Text:            text,
		Type:            cfg.typ,
		Spans:           cfg.spans,
		Evidence:        cfg.evidence,
		EvidenceIDs:     cfg.evidenceIDs,
		EvidenceMin:     cfg.evidenceMin,
		EvidenceMax:     cfg.evidenceMax,
		Score:           cfg.score,
		IsAxiom:         cfg.isAxiom,
		IgnoreInfluence: cfg.ignoreInfluence,
		Metadata:        cfg.metadata,
	}
	return cfg.id
}

// AddWarrant creates a warrant and returns its id
func (g *Graph) AddWarrant(text string, opts ...NodeOption) string {
	cfg := buildNodeConfig(opts)
	if cfg.id == "" {
		cfg.id = g.nextID("w")
	}
	g.Warrants[cfg.id] = &Warrant{
		ID:              cfg.id,
		Text:            text,
		Type:            cfg.typ,
		Spans:           cfg.spans,
		Evidence:        cfg.evidence,
		EvidenceIDs:     cfg.evidenceIDs,
		Score:           cfg.score,
		IsAxiom:         cfg.isAxiom,
		IgnoreInfluence: cfg.ignoreInfluence,
		Metadata:        cfg.metadata,
	}
	return cfg.id
}

// RelationOption customizes a relation at creation time
type RelationOption func(*Relation)

// WithWarrants cites the warrants licensing the relation
func WithWarrants(ids ...string) RelationOption {
	return func(r *Relation) { r.WarrantIDs = append(r.WarrantIDs, ids...) }
}

// WithGateMode sets how multiple warrant scores combine (default OR)
func WithGateMode(mode GateMode) RelationOption {
	return func(r *Relation) { r.GateMode = mode }
}

// WithWeight sets the relation weight
func WithWeight(w float64) RelationOption {
	return func(r *Relation) { r.Weight = &w }
}

// WithRationale records why the relation holds
func WithRationale(rationale string) RelationOption {
	return func(r *Relation) { r.Rationale = rationale }
}

// WithRelationMetadata merges free-form metadata onto the relation
func WithRelationMetadata(metadata map[string]any) RelationOption {
	return func(r *Relation) { r.Metadata = metadata }
}

// AddRelation appends an edge to the relations list. Endpoints are not
// checked here: mined graphs may arrive incomplete, and the io schema
// validation is the place that enforces referential integrity.
func (g *Graph) AddRelation(src, dst string, kind RelationKind, opts ...RelationOption) *Relation {
	rel := &Relation{
		Src:      src,
		Dst:      dst,
		Kind:     kind,
		GateMode: GateOR,
		Metadata: map[string]any{},
	}
	for _, opt := range opts {
		opt(rel)
	}
	g.Relations = append(g.Relations, rel)
	return rel
}

// AddSupport appends a support edge
func (g *Graph) AddSupport(src, dst string, opts ...RelationOption) *Relation {
	return g.AddRelation(src, dst, RelationSupport, opts...)
}

// AddAttack appends an attack edge
func (g *Graph) AddAttack(src, dst string, opts ...RelationOption) *Relation {
	return g.AddRelation(src, dst, RelationAttack, opts...)
}

// AttachEvidence attaches an evidence item to a claim unit
func (g *Graph) AttachEvidence(unitID, evidenceID string, source EvidenceSource, stance Stance, strength *float64) (*EvidenceItem, error) {
	unit, ok := g.Units[unitID]
	if !ok {
		return nil, &NotFoundError{Kind: "unit", ID: unitID}
	}
	item := EvidenceItem{ID: evidenceID, Source: source, Stance: stance, Strength: strength}
	unit.Evidence = append(unit.Evidence, item)
	return &unit.Evidence[len(unit.Evidence)-1], nil
}

// AttachEvidenceToWarrant attaches an evidence item to a warrant
func (g *Graph) AttachEvidenceToWarrant(warrantID, evidenceID string, source EvidenceSource, stance Stance, strength *float64) (*EvidenceItem, error) {
	warrant, ok := g.Warrants[warrantID]
	if !ok {
		return nil, &NotFoundError{Kind: "warrant", ID: warrantID}
	}
	item := EvidenceItem{ID: evidenceID, Source: source, Stance: stance, Strength: strength}
	warrant.Evidence = append(warrant.Evidence, item)
	return &warrant.Evidence[len(warrant.Evidence)-1], nil
}

// AddWarrantAttack records an attack on a warrant itself
func (g *Graph) AddWarrantAttack(src, warrantID, rationale string) (*WarrantAttack, error) {
	if _, ok := g.Warrants[warrantID]; !ok {
		return nil, &NotFoundError{Kind: "warrant", ID: warrantID}
	}
	attack := &WarrantAttack{
		Src:       src,
		WarrantID: warrantID,
		Kind:      RelationAttack,
		Rationale: rationale,
		Metadata:  map[string]any{},
	}
	g.WarrantAttacks = append(g.WarrantAttacks, attack)
	return attack, nil
}

// AddSupportingDocument registers a source document
func (g *Graph) AddSupportingDocument(doc *SupportingDocument, overwrite bool) error {
	if _, exists := g.SupportingDocuments[doc.ID]; exists && !overwrite {
		return fmt.Errorf("supporting document already exists: %s", doc.ID)
	}
	g.SupportingDocuments[doc.ID] = doc
	return nil
}

// AddEvidenceCard registers an evidence card
func (g *Graph) AddEvidenceCard(card *EvidenceCard, overwrite bool) error {
	if _, exists := g.EvidenceCards[card.ID]; exists && !overwrite {
		return fmt.Errorf("evidence card already exists: %s", card.ID)
	}
	g.EvidenceCards[card.ID] = card
	return nil
}

// AttachEvidenceCard links a registered card to a unit with the given stance
func (g *Graph) AttachEvidenceCard(unitID, evidenceID string, stance Stance) (*EvidenceItem, error) {
	unit, ok := g.Units[unitID]
	if !ok {
		return nil, &NotFoundError{Kind: "unit", ID: unitID}
	}
	card, ok := g.EvidenceCards[evidenceID]
	if !ok {
		return nil, &NotFoundError{Kind: "evidence card", ID: evidenceID}
	}
	item := EvidenceItem{
		ID:       evidenceID,
		Source:   EvidenceSource{Structured: map[string]any{"evidence_card_id": evidenceID}},
		Stance:   stance,
		Strength: Float(card.Confidence),
	}
	unit.Evidence = append(unit.Evidence, item)
	known := false
	for _, id := range unit.EvidenceIDs {
		if id == evidenceID {
			known = true
			break
		}
	}
	if !known {
		unit.EvidenceIDs = append(unit.EvidenceIDs, evidenceID)
	}
	return &unit.Evidence[len(unit.Evidence)-1], nil
}

// BundleOption customizes an argument bundle at creation time
type BundleOption func(*ArgumentBundle)

// WithBundleID fixes the bundle id instead of allocating one
func WithBundleID(id string) BundleOption {
	return func(b *ArgumentBundle) { b.ID = id }
}

// WithBundleRelations fixes the bundle's internal relations instead of
// inferring them from the graph
func WithBundleRelations(relations ...*Relation) BundleOption {
	return func(b *ArgumentBundle) { b.Relations = relations }
}

// WithBundleMetadata merges free-form metadata onto the bundle
func WithBundleMetadata(metadata map[string]any) BundleOption {
	return func(b *ArgumentBundle) { b.Metadata = metadata }
}

// DefineArgument groups at least two units into a bundle. Internal relations
// default to every graph relation with both endpoints inside the bundle.
func (g *Graph) DefineArgument(unitIDs []string, opts ...BundleOption) (*ArgumentBundle, error) {
	if len(unitIDs) < 2 {
		return nil, fmt.Errorf("argument bundles require at least two units")
	}
	bundle := &ArgumentBundle{Units: append([]string{}, unitIDs...)}
	for _, opt := range opts {
		opt(bundle)
	}
	if bundle.ID == "" {
		bundle.ID = fmt.Sprintf("arg_%d", len(g.ArgumentBundles)+1)
	}
	if _, exists := g.ArgumentBundles[bundle.ID]; exists {
		return nil, fmt.Errorf("argument bundle already exists: %s", bundle.ID)
	}
	for _, unitID := range unitIDs {
		if _, ok := g.Units[unitID]; !ok {
			return nil, &NotFoundError{Kind: "unit", ID: unitID}
		}
	}
	if bundle.Relations == nil {
		members := map[string]bool{}
		for _, unitID := range unitIDs {
			members[unitID] = true
		}
		for _, rel := range g.Relations {
			if members[rel.Src] && members[rel.Dst] {
				bundle.Relations = append(bundle.Relations, rel)
			}
		}
	}
	if bundle.Metadata == nil {
		bundle.Metadata = map[string]any{}
	}
	g.ArgumentBundles[bundle.ID] = bundle
	return bundle, nil
}

// ToBundleGraph collapses the graph onto its bundles. Inter-bundle relation
// weights aggregate deterministically in the relations list's insertion
// order; the result edge kind follows the aggregated sign.
func (g *Graph) ToBundleGraph(mode Aggregation, clamp bool) (*BundleGraph, error) {
	lookup := map[string]string{}
	for bundleID, bundle := range g.ArgumentBundles {
		for _, unitID := range bundle.Units {
			if other, dup := lookup[unitID]; dup && other != bundleID {
				return nil, fmt.Errorf("unit %s is assigned to multiple bundles", unitID)
			}
			lookup[unitID] = bundleID
		}
	}
	if len(lookup) == 0 {
		return nil, fmt.Errorf("no argument bundles defined")
	}

	type pair struct{ src, dst string }
	edgeScores := map[pair][]float64{}
	var order []pair
	for _, rel := range g.Relations {
		srcBundle, srcOK := lookup[rel.Src]
		dstBundle, dstOK := lookup[rel.Dst]
		if !srcOK || !dstOK || srcBundle == dstBundle {
			continue
		}
		key := pair{srcBundle, dstBundle}
		if _, seen := edgeScores[key]; !seen {
			order = append(order, key)
		}
		edgeScores[key] = append(edgeScores[key], signedWeight(rel))
	}

	var relations []*Relation
	for _, key := range order {
		aggregated, err := aggregateWeights(edgeScores[key], mode)
		if err != nil {
			return nil, err
		}
		if clamp {
			aggregated = max(-1.0, min(1.0, aggregated))
		}
		kind := RelationSupport
		if aggregated < 0 {
			kind = RelationAttack
		}
		relations = append(relations, &Relation{
			Src:    key.src,
			Dst:    key.dst,
			Kind:   kind,
			Weight: Float(aggregated),
		})
	}

	return &BundleGraph{
		Bundles:   g.ArgumentBundles,
		Relations: relations,
		Metadata:  map[string]any{"aggregation": string(mode), "clamp": clamp},
	}, nil
}

// nextID allocates the next free id for a prefix ("c" for claims, "w" for
// warrants) by scanning existing numeric suffixes
func (g *Graph) nextID(prefix string) string {
	maxID := 0
	scan := func(id string) {
		if !strings.HasPrefix(id, prefix) {
			return
		}
		suffix := id[len(prefix):]
		n, err := strconv.Atoi(suffix)
		if err == nil && n > maxID {
			maxID = n
		}
	}
	if prefix == "w" {
		for id := range g.Warrants {
			scan(id)
		}
	} else {
		for id := range g.Units {
			scan(id)
		}
	}
	return fmt.Sprintf("%s%d", prefix, maxID+1)
}
