// Package viz renders argument graphs to Graphviz DOT.
package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arglab/toulmin/internal/model"
)

var edgeColors = map[model.RelationKind]string{
	model.RelationSupport:  "green",
	model.RelationAttack:   "red",
	model.RelationUndercut: "orange",
	model.RelationRebut:    "blue",
}

// ToDOT renders the graph as a DOT digraph with one box per unit and
// color-coded relation edges
func ToDOT(g *model.Graph) string {
	lines := []string{"digraph ArgumentGraph {", "  node [shape=box];"}

	unitIDs := make([]string, 0, len(g.Units))
	for unitID := range g.Units {
		unitIDs = append(unitIDs, unitID)
	}
	sort.Strings(unitIDs)
	for _, unitID := range unitIDs {
		label := escapeLabel(fmt.Sprintf("%s: %s", unitID, g.Units[unitID].Text))
		lines = append(lines, fmt.Sprintf("  %q [label=%q];", unitID, label))
	}

	for _, rel := range g.Relations {
		color, ok := edgeColors[rel.Kind]
		if !ok {
			color = "black"
		}
		lines = append(lines, fmt.Sprintf("  %q -> %q [label=%q, color=%q];",
			rel.Src, rel.Dst, string(rel.Kind), color))
	}

	lines = append(lines, "}")
	return strings.Join(lines, "\n")
}

func escapeLabel(text string) string {
	return strings.ReplaceAll(text, "\n", " ")
}
