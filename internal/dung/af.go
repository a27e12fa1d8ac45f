// Package dung implements finite abstract argumentation frameworks: a set
// of arguments, an attack relation, and the classical acceptability
// semantics over them (conflict-free, admissible, complete, grounded,
// preferred, stable) plus the 3-valued grounded labeling.
//
// Extension enumeration is a reference implementation that walks the full
// powerset of arguments, so it is exponential in the argument count. It is
// meant for frameworks of tens of arguments, not thousands, and refuses to
// run past MaxArguments instead of silently hanging.
package dung

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnsupported marks a request for a semantics or task the engine does
// not implement. Callers detect it with errors.Is.
var ErrUnsupported = errors.New("unsupported operation")

// DefaultMaxArguments caps powerset enumeration (2^20 subsets)
const DefaultMaxArguments = 20

// Label is a 3-valued argument labeling
type Label string

const (
	LabelIn    Label = "in"
	LabelOut   Label = "out"
	LabelUndec Label = "undec"
)

// AF is an abstract argumentation framework
type AF struct {
	// MaxArguments bounds extension enumeration; zero means
	// DefaultMaxArguments
	MaxArguments int

	arguments map[string]bool
	attacks   map[attack]bool
}

type attack struct{ src, dst string }

// New creates an empty framework
func New() *AF {
	return &AF{
		arguments: map[string]bool{},
		attacks:   map[attack]bool{},
	}
}

// AddArgument registers an argument
func (af *AF) AddArgument(arg string) {
	af.arguments[arg] = true
}

// AddAttack registers an attack, adding both endpoints as arguments
func (af *AF) AddAttack(attacker, target string) {
	af.arguments[attacker] = true
	af.arguments[target] = true
	af.attacks[attack{attacker, target}] = true
}

// Arguments returns the sorted argument list
func (af *AF) Arguments() []string {
	args := make([]string, 0, len(af.arguments))
	for arg := range af.arguments {
		args = append(args, arg)
	}
	sort.Strings(args)
	return args
}

// Attacks returns the sorted attack pairs as [src, dst]
func (af *AF) Attacks() [][2]string {
	pairs := make([][2]string, 0, len(af.attacks))
	for a := range af.attacks {
		pairs = append(pairs, [2]string{a.src, a.dst})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
	return pairs
}

// HasAttack reports whether src attacks dst
func (af *AF) HasAttack(src, dst string) bool {
	return af.attacks[attack{src, dst}]
}

// AttackersOf returns the sorted attackers of arg
func (af *AF) AttackersOf(arg string) []string {
	var attackers []string
	for a := range af.attacks {
		if a.dst == arg {
			attackers = append(attackers, a.src)
		}
	}
	sort.Strings(attackers)
	return attackers
}

// AttacksFrom returns the sorted targets arg attacks
func (af *AF) AttacksFrom(arg string) []string {
	var targets []string
	for a := range af.attacks {
		if a.src == arg {
			targets = append(targets, a.dst)
		}
	}
	sort.Strings(targets)
	return targets
}

// ConflictFree reports whether no member of the set attacks another member
// (self-attack included)
func (af *AF) ConflictFree(set []string) bool {
	members := toSet(set)
	for a := range af.attacks {
		if members[a.src] && members[a.dst] {
			return false
		}
	}
	return true
}

// Defends reports whether every attacker of arg is attacked by some member
// of the set; vacuously true when arg has no attackers
func (af *AF) Defends(set []string, arg string) bool {
	members := toSet(set)
	for _, attacker := range af.AttackersOf(arg) {
		defended := false
		for defender := range members {
			if af.attacks[attack{defender, attacker}] {
				defended = true
				break
			}
		}
		if !defended {
			return false
		}
	}
	return true
}

// AdmissibleSets enumerates every conflict-free set that defends all of its
// members. Exponential: the full powerset is examined.
func (af *AF) AdmissibleSets() ([][]string, error) {
	var admissible [][]string
	err := af.forEachSubset(func(subset []string) {
		if !af.ConflictFree(subset) {
			return
		}
		for _, arg := range subset {
			if !af.Defends(subset, arg) {
				return
			}
		}
		admissible = append(admissible, subset)
	})
	if err != nil {
		return nil, err
	}
	sortExtensions(admissible)
	return admissible, nil
}

// CompleteExtensions returns the admissible sets containing exactly the
// arguments they defend
func (af *AF) CompleteExtensions() ([][]string, error) {
	admissible, err := af.AdmissibleSets()
	if err != nil {
		return nil, err
	}
	var complete [][]string
	for _, ext := range admissible {
		var defended []string
		for _, arg := range af.Arguments() {
			if af.Defends(ext, arg) {
				defended = append(defended, arg)
			}
		}
		if equalSets(ext, defended) {
			complete = append(complete, ext)
		}
	}
	return complete, nil
}

// GroundedExtension returns the intersection of all complete extensions:
// unique, always defined, possibly empty
func (af *AF) GroundedExtension() ([]string, error) {
	complete, err := af.CompleteExtensions()
	if err != nil {
		return nil, err
	}
	if len(complete) == 0 {
		return []string{}, nil
	}
	counts := map[string]int{}
	for _, ext := range complete {
		for _, arg := range ext {
			counts[arg]++
		}
	}
	var grounded []string
	for arg, n := range counts {
		if n == len(complete) {
			grounded = append(grounded, arg)
		}
	}
	sort.Strings(grounded)
	if grounded == nil {
		grounded = []string{}
	}
	return grounded, nil
}

// PreferredExtensions returns the inclusion-maximal admissible sets
func (af *AF) PreferredExtensions() ([][]string, error) {
	admissible, err := af.AdmissibleSets()
	if err != nil {
		return nil, err
	}
	var preferred [][]string
	for _, candidate := range admissible {
		maximal := true
		for _, other := range admissible {
			if strictSubset(candidate, other) {
				maximal = false
				break
			}
		}
		if maximal {
			preferred = append(preferred, candidate)
		}
	}
	sortExtensions(preferred)
	return preferred, nil
}

// StableExtensions returns the conflict-free sets attacking exactly their
// complement; always a subset of the preferred extensions
func (af *AF) StableExtensions() ([][]string, error) {
	all := af.Arguments()
	var stable [][]string
	err := af.forEachSubset(func(subset []string) {
		if !af.ConflictFree(subset) {
			return
		}
		members := toSet(subset)
		attacked := map[string]bool{}
		for a := range af.attacks {
			if members[a.src] {
				attacked[a.dst] = true
			}
		}
		for _, arg := range all {
			inSet := members[arg]
			if inSet == attacked[arg] {
				return
			}
		}
		stable = append(stable, subset)
	})
	if err != nil {
		return nil, err
	}
	sortExtensions(stable)
	return stable, nil
}

// Extensions dispatches over the supported semantics names. The grounded
// extension is returned as a single-element list.
func (af *AF) Extensions(semantics string) ([][]string, error) {
	switch strings.ToLower(semantics) {
	case "grounded":
		grounded, err := af.GroundedExtension()
		if err != nil {
			return nil, err
		}
		return [][]string{grounded}, nil
	case "preferred":
		return af.PreferredExtensions()
	case "stable":
		return af.StableExtensions()
	case "complete":
		return af.CompleteExtensions()
	default:
		return nil, fmt.Errorf("%w: semantics %q", ErrUnsupported, semantics)
	}
}

// Labelings computes 3-valued labelings. Only the grounded labeling is
// implemented: an argument goes "in" once all its attackers are "out",
// "out" once any attacker is "in", iterated to the least fixed point; the
// rest stays "undec".
func (af *AF) Labelings(semantics string) ([]map[string]Label, error) {
	if strings.ToLower(semantics) != "grounded" {
		return nil, fmt.Errorf("%w: only grounded labeling is implemented, got %q", ErrUnsupported, semantics)
	}

	labels := map[string]Label{}
	args := af.Arguments()
	for _, arg := range args {
		labels[arg] = LabelUndec
	}
	for changed := true; changed; {
		changed = false
		for _, arg := range args {
			if labels[arg] != LabelUndec {
				continue
			}
			attackers := af.AttackersOf(arg)
			allOut := true
			for _, attacker := range attackers {
				if labels[attacker] != LabelOut {
					allOut = false
					break
				}
			}
			if allOut {
				labels[arg] = LabelIn
				changed = true
			}
		}
		for _, arg := range args {
			if labels[arg] != LabelUndec {
				continue
			}
			for _, attacker := range af.AttackersOf(arg) {
				if labels[attacker] == LabelIn {
					labels[arg] = LabelOut
					changed = true
					break
				}
			}
		}
	}
	return []map[string]Label{labels}, nil
}

// forEachSubset visits every subset of the arguments (empty set included)
// as a sorted slice, or refuses when the framework exceeds the enumeration
// cap
func (af *AF) forEachSubset(visit func(subset []string)) error {
	limit := af.MaxArguments
	if limit <= 0 {
		limit = DefaultMaxArguments
	}
	args := af.Arguments()
	if len(args) > limit {
		return fmt.Errorf("refusing powerset enumeration over %d arguments (cap %d)", len(args), limit)
	}
	for mask := 0; mask < 1<<len(args); mask++ {
		subset := []string{}
		for i, arg := range args {
			if mask&(1<<i) != 0 {
				subset = append(subset, arg)
			}
		}
		visit(subset)
	}
	return nil
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

func equalSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	bs := toSet(b)
	for _, item := range a {
		if !bs[item] {
			return false
		}
	}
	return true
}

// strictSubset reports whether a is a proper subset of b
func strictSubset(a, b []string) bool {
	if len(a) >= len(b) {
		return false
	}
	bs := toSet(b)
	for _, item := range a {
		if !bs[item] {
			return false
		}
	}
	return true
}

func sortExtensions(extensions [][]string) {
	sort.Slice(extensions, func(i, j int) bool {
		a, b := extensions[i], extensions[j]
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})
}
