// Package diagnostics summarizes an argument graph's structure: counts,
// cycles, connectivity, degrees, reachability, and axiom warnings. It is
// lenient by construction — dangling relation endpoints are absorbed rather
// than rejected, since mined graphs often arrive incomplete.
package diagnostics

import (
	"fmt"
	"sort"

	"github.com/arglab/toulmin/internal/algorithms"
	"github.com/arglab/toulmin/internal/model"
)

// DegreeSummary aggregates the degree distribution
type DegreeSummary struct {
	AvgIn  float64 `json:"avg_in"`
	AvgOut float64 `json:"avg_out"`
	MaxIn  int     `json:"max_in"`
	MaxOut int     `json:"max_out"`
}

// Report is the full structural diagnostics payload
type Report struct {
	NodeCount         int                          `json:"node_count"`
	RelationCount     int                          `json:"relation_count"`
	AttackEdgeCount   int                          `json:"attack_edge_count"`
	SupportEdgeCount  int                          `json:"support_edge_count"`
	CycleCount        int                          `json:"cycle_count"`
	Cycles            [][]string                   `json:"cycles"`
	ComponentCount    int                          `json:"component_count"`
	Components        [][]string                   `json:"components"`
	SCCCount          int                          `json:"scc_count"`
	SCCs              [][]string                   `json:"strongly_connected_components"`
	IsolatedUnits     []string                     `json:"isolated_units"`
	UnsupportedClaims []string                     `json:"unsupported_claims"`
	Degrees           map[string]algorithms.Degree `json:"degrees"`
	DegreeSummary     DegreeSummary                `json:"degree_summary"`
	Reachability      map[string][]string          `json:"reachability"`
	MaxReachability   int                          `json:"max_reachability"`
	AxiomClaims       []string                     `json:"axiom_claims"`
	AxiomWarrants     []string                     `json:"axiom_warrants"`
	AxiomWarnings     []string                     `json:"axiom_warnings"`
}

// Analyze computes the structural report for a graph
func Analyze(g *model.Graph) *Report {
	nodes := make([]string, 0, len(g.Units))
	for unitID := range g.Units {
		nodes = append(nodes, unitID)
	}
	sort.Strings(nodes)

	triples := make([][3]string, len(g.Relations))
	for i, rel := range g.Relations {
		triples[i] = [3]string{rel.Src, rel.Dst, string(rel.Kind)}
	}
	allEdges := algorithms.BuildEdges(triples, nil)
	supportEdges := algorithms.BuildEdges(triples, []string{string(model.RelationSupport)})
	attackEdges := algorithms.BuildEdges(triples, []string{
		string(model.RelationAttack), string(model.RelationUndercut), string(model.RelationRebut),
	})

	cycles := algorithms.FindCycles(nodes, allEdges)
	components := algorithms.WeaklyConnectedComponents(nodes, allEdges)
	sccs := algorithms.StronglyConnectedComponents(nodes, allEdges)
	degrees := algorithms.InOutDegree(nodes, allEdges)
	reachability := algorithms.ReachabilityMap(nodes, allEdges)

	var isolated []string
	for node, degree := range degrees {
		if degree.In == 0 && degree.Out == 0 {
			isolated = append(isolated, node)
		}
	}
	sort.Strings(isolated)

	supportDegrees := algorithms.InOutDegree(nodes, supportEdges)
	var unsupported []string
	for node, degree := range supportDegrees {
		if degree.In == 0 {
			unsupported = append(unsupported, node)
		}
	}
	sort.Strings(unsupported)

	var axiomClaims []string
	for unitID, unit := range g.Units {
		if unit.IsAxiom {
			axiomClaims = append(axiomClaims, unitID)
		}
	}
	sort.Strings(axiomClaims)
	var axiomWarrants []string
	for warrantID, warrant := range g.Warrants {
		if warrant.IsAxiom {
			axiomWarrants = append(axiomWarrants, warrantID)
		}
	}
	sort.Strings(axiomWarrants)

	var warnings []string
	for _, unitID := range axiomClaims {
		warnings = append(warnings, fmt.Sprintf("axiom claim '%s' bypasses evidence requirements.", unitID))
	}
	for _, warrantID := range axiomWarrants {
		warnings = append(warnings, fmt.Sprintf("axiom warrant '%s' bypasses evidence requirements.", warrantID))
	}

	summary := DegreeSummary{}
	if len(degrees) > 0 {
		totalIn, totalOut := 0, 0
		for _, degree := range degrees {
			totalIn += degree.In
			totalOut += degree.Out
			if degree.In > summary.MaxIn {
				summary.MaxIn = degree.In
			}
			if degree.Out > summary.MaxOut {
				summary.MaxOut = degree.Out
			}
		}
		summary.AvgIn = float64(totalIn) / float64(len(degrees))
		summary.AvgOut = float64(totalOut) / float64(len(degrees))
	}

	maxReach := 0
	for _, targets := range reachability {
		if len(targets) > maxReach {
			maxReach = len(targets)
		}
	}

	return &Report{
		NodeCount:         len(nodes),
		RelationCount:     len(g.Relations),
		AttackEdgeCount:   len(attackEdges),
		SupportEdgeCount:  len(supportEdges),
		CycleCount:        len(cycles),
		Cycles:            cycles,
		ComponentCount:    len(components),
		Components:        components,
		SCCCount:          len(sccs),
		SCCs:              sccs,
		IsolatedUnits:     isolated,
		UnsupportedClaims: unsupported,
		Degrees:           degrees,
		DegreeSummary:     summary,
		Reachability:      reachability,
		MaxReachability:   maxReach,
		AxiomClaims:       axiomClaims,
		AxiomWarrants:     axiomWarrants,
		AxiomWarnings:     warnings,
	}
}
