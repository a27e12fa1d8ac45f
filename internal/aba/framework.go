// Package aba implements assumption-based argumentation: assumptions with
// contraries, monotone Horn rules, and a reduction to an abstract
// argumentation framework by deriving attacks between assumption sets.
package aba

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arglab/toulmin/internal/dung"
)

// DefaultMaxAssumptionSetSize bounds the attacking-set enumeration in the
// Dung reduction. Larger sizes grow combinatorially.
const DefaultMaxAssumptionSetSize = 2

// Rule is a Horn rule: head holds once every body symbol is derived
type Rule struct {
	Head string   `json:"head"`
	Body []string `json:"body"`
}

// Framework is a minimal assumption-based argumentation framework
type Framework struct {
	assumptions map[string]bool
	contraries  map[string]string
	rules       []Rule
}

// New creates an empty framework
func New() *Framework {
	return &Framework{
		assumptions: map[string]bool{},
		contraries:  map[string]string{},
	}
}

// AddAssumption registers an assumption symbol
func (f *Framework) AddAssumption(assumption string) {
	f.assumptions[assumption] = true
}

// AddContrary maps an assumption to its contrary symbol
func (f *Framework) AddContrary(assumption, contrary string) {
	f.contraries[assumption] = contrary
}

// AddRule appends a Horn rule
func (f *Framework) AddRule(head string, body ...string) {
	f.rules = append(f.rules, Rule{Head: head, Body: append([]string{}, body...)})
}

// Assumptions returns the sorted assumption symbols
func (f *Framework) Assumptions() []string {
	out := make([]string, 0, len(f.assumptions))
	for a := range f.assumptions {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// Contraries returns a copy of the assumption→contrary map
func (f *Framework) Contraries() map[string]string {
	out := make(map[string]string, len(f.contraries))
	for k, v := range f.contraries {
		out[k] = v
	}
	return out
}

// Rules returns the rule list in insertion order
func (f *Framework) Rules() []Rule {
	return append([]Rule{}, f.rules...)
}

// Derive forward-chains the rules from the premises to a fixed point. The
// closure is monotone and terminates because the symbol universe is finite.
func (f *Framework) Derive(premises ...string) map[string]bool {
	derived := map[string]bool{}
	for _, p := range premises {
		derived[p] = true
	}
	for changed := true; changed; {
		changed = false
		for _, rule := range f.rules {
			if derived[rule.Head] {
				continue
			}
			fires := true
			for _, term := range rule.Body {
				if !derived[term] {
					fires = false
					break
				}
			}
			if fires {
				derived[rule.Head] = true
				changed = true
			}
		}
	}
	return derived
}

// SetLabel renders an assumption set as an AF argument name: a singleton is
// its member, a larger set is the sorted members joined by "&" in braces,
// e.g. {a&b}.
func SetLabel(set []string) string {
	if len(set) == 1 {
		return set[0]
	}
	sorted := append([]string{}, set...)
	sort.Strings(sorted)
	return "{" + strings.Join(sorted, "&") + "}"
}

// ToDung reduces the framework to an abstract argumentation framework.
// Every non-empty combination of assumptions up to maxSetSize (inclusive;
// zero or negative means DefaultMaxAssumptionSetSize) is closed under the
// rules, and each assumption whose contrary appears in a closure is
// attacked by that set. Only subset-minimal attacking sets are kept, so a
// composite set never repeats an attack a smaller set already delivers.
func (f *Framework) ToDung(maxSetSize int) *dung.AF {
	if maxSetSize <= 0 {
		maxSetSize = DefaultMaxAssumptionSetSize
	}
	af := dung.New()
	assumptions := f.Assumptions()
	for _, a := range assumptions {
		af.AddArgument(a)
	}

	// attackers[target] holds the minimal attacking sets found so far;
	// combinations are visited in ascending size, so minimality only needs
	// a subset check against earlier hits.
	attackers := map[string][][]string{}

	for size := 1; size <= maxSetSize && size <= len(assumptions); size++ {
		combos := combinations(assumptions, size)
		for _, combo := range combos {
			closure := f.Derive(combo...)
			for target, contrary := range f.contraries {
				if !closure[contrary] {
					continue
				}
				if coveredBySubset(attackers[target], combo) {
					continue
				}
				attackers[target] = append(attackers[target], combo)
				af.AddAttack(SetLabel(combo), target)
			}
		}
	}
	return af
}

// Result is the caller-facing summary of a semantics computation
type Result struct {
	Semantics   string            `json:"semantics"`
	Assumptions []string          `json:"assumptions"`
	Contraries  map[string]string `json:"contraries"`
	Rules       []Rule            `json:"rules"`
	Extensions  [][]string        `json:"extensions"`
	Note        string            `json:"note"`
}

// Compute reduces to Dung and evaluates the requested semantics. An
// unsupported semantics name degrades to an empty extension list instead of
// failing, so summary-style callers stay non-fatal.
func (f *Framework) Compute(semantics string) *Result {
	af := f.ToDung(DefaultMaxAssumptionSetSize)
	extensions, err := af.Extensions(semantics)
	if err != nil {
		extensions = [][]string{}
	}
	return &Result{
		Semantics:   semantics,
		Assumptions: f.Assumptions(),
		Contraries:  f.Contraries(),
		Rules:       f.Rules(),
		Extensions:  extensions,
		Note:        "Computed via a minimal assumption-contrary translation.",
	}
}

// FromMap rebuilds a framework from a generic metadata payload of the form
// {"assumptions": [...], "contraries": {...}, "rules": [{"head":..,
// "body": [...]}, ...]}
func FromMap(payload map[string]any) (*Framework, error) {
	f := New()

	rawAssumptions, ok := payload["assumptions"].([]any)
	if !ok {
		return nil, fmt.Errorf("aba framework payload: assumptions must be a list")
	}
	for _, item := range rawAssumptions {
		name, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("aba framework payload: assumption %v is not a string", item)
		}
		f.AddAssumption(name)
	}

	if rawContraries, ok := payload["contraries"].(map[string]any); ok {
		for assumption, contrary := range rawContraries {
			name, ok := contrary.(string)
			if !ok {
				return nil, fmt.Errorf("aba framework payload: contrary of %q is not a string", assumption)
			}
			f.AddContrary(assumption, name)
		}
	}

	if rawRules, ok := payload["rules"].([]any); ok {
		for i, item := range rawRules {
			rule, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("aba framework payload: rule[%d] is not an object", i)
			}
			head, ok := rule["head"].(string)
			if !ok {
				return nil, fmt.Errorf("aba framework payload: rule[%d] head is not a string", i)
			}
			var body []string
			if rawBody, ok := rule["body"].([]any); ok {
				for _, term := range rawBody {
					symbol, ok := term.(string)
					if !ok {
						return nil, fmt.Errorf("aba framework payload: rule[%d] body term %v is not a string", i, term)
					}
					body = append(body, symbol)
				}
			}
			f.AddRule(head, body...)
		}
	}

	return f, nil
}

// combinations returns all size-k subsets of the sorted items, each sorted
func combinations(items []string, k int) [][]string {
	var out [][]string
	combo := make([]int, k)
	var walk func(start, depth int)
	walk = func(start, depth int) {
		if depth == k {
			subset := make([]string, k)
			for i, idx := range combo {
				subset[i] = items[idx]
			}
			out = append(out, subset)
			return
		}
		for i := start; i <= len(items)-(k-depth); i++ {
			combo[depth] = i
			walk(i+1, depth+1)
		}
	}
	walk(0, 0)
	return out
}

func coveredBySubset(existing [][]string, combo []string) bool {
	members := map[string]bool{}
	for _, m := range combo {
		members[m] = true
	}
	for _, prior := range existing {
		subset := true
		for _, m := range prior {
			if !members[m] {
				subset = false
				break
			}
		}
		if subset {
			return true
		}
	}
	return false
}
