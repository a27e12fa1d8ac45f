package aba

import (
	"sort"

	"github.com/arglab/toulmin/internal/dung"
)

// Role marks which side of the dispute a node argues for
type Role string

const (
	RolePro Role = "pro"
	RoleCon Role = "con"
)

// DisputeNode is one node of a dispute tree. The structure is a tree, not
// a DAG: the same claim reached under different ancestors is expanded
// independently up to the depth bound.
type DisputeNode struct {
	Claim    string         `json:"claim"`
	Role     Role           `json:"role"`
	Children []*DisputeNode `json:"children"`
}

// DefaultDisputeDepth bounds dispute tree expansion
const DefaultDisputeDepth = 3

// BuildDisputeTree expands alternating pro/con argumentation rooted at the
// claim. A pro node's children are the assumptions whose contrary equals
// its claim (its direct attackers); a con node's children are the
// defenders: the attackers, in the reduced framework, of that con node's
// own attackers. Expansion stops at maxDepth (zero or negative means
// DefaultDisputeDepth) or on revisiting a (claim, role) pair along the
// current expansion.
func (f *Framework) BuildDisputeTree(root string, maxDepth int) *DisputeNode {
	if maxDepth <= 0 {
		maxDepth = DefaultDisputeDepth
	}
	builder := &disputeBuilder{
		framework: f,
		af:        f.ToDung(DefaultMaxAssumptionSetSize),
		maxDepth:  maxDepth,
		seen:      map[disputeKey]bool{},
	}
	return builder.expand(root, RolePro, 0)
}

// BuildDisputeTrees builds one tree per target claim
func (f *Framework) BuildDisputeTrees(targets []string, maxDepth int) map[string]*DisputeNode {
	trees := make(map[string]*DisputeNode, len(targets))
	for _, target := range targets {
		trees[target] = f.BuildDisputeTree(target, maxDepth)
	}
	return trees
}

type disputeKey struct {
	claim string
	role  Role
}

type disputeBuilder struct {
	framework *Framework
	af        *dung.AF
	maxDepth  int
	seen      map[disputeKey]bool
}

func (b *disputeBuilder) expand(claim string, role Role, depth int) *DisputeNode {
	node := &DisputeNode{Claim: claim, Role: role, Children: []*DisputeNode{}}
	if depth >= b.maxDepth {
		return node
	}
	key := disputeKey{claim: claim, role: role}
	if b.seen[key] {
		return node
	}
	b.seen[key] = true

	if role == RolePro {
		for _, attacker := range b.attackers(claim) {
			node.Children = append(node.Children, b.expand(attacker, RoleCon, depth+1))
		}
	} else {
		for _, defender := range b.defenders(claim) {
			node.Children = append(node.Children, b.expand(defender, RolePro, depth+1))
		}
	}
	return node
}

// attackers are the assumptions whose contrary is the claim
func (b *disputeBuilder) attackers(claim string) []string {
	var out []string
	for assumption, contrary := range b.framework.contraries {
		if contrary == claim {
			out = append(out, assumption)
		}
	}
	sort.Strings(out)
	return out
}

// defenders are the reduced framework's attackers of the claim's attackers
func (b *disputeBuilder) defenders(claim string) []string {
	set := map[string]bool{}
	for _, attacker := range b.af.AttackersOf(claim) {
		for _, defender := range b.af.AttackersOf(attacker) {
			set[defender] = true
		}
	}
	out := make([]string, 0, len(set))
	for defender := range set {
		out = append(out, defender)
	}
	sort.Strings(out)
	return out
}
