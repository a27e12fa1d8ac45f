// Package reasoner dispatches named reasoning tasks over an argument
// graph: abstract-semantics extensions, grounded labelings, and ABA
// dispute trees. Results are memoized because extension enumeration is
// exponential in the worst case.
package reasoner

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/arglab/toulmin/internal/aba"
	"github.com/arglab/toulmin/internal/cache"
	"github.com/arglab/toulmin/internal/dung"
	"github.com/arglab/toulmin/internal/model"
)

// ABAMetadataKey is the graph metadata key holding the assumption-based
// framework payload consumed by the ABA tasks.
const ABAMetadataKey = "aba_framework"

// Task names accepted by Run.
const (
	TaskGroundedExtension   = "grounded_extension"
	TaskPreferredExtensions = "preferred_extensions"
	TaskStableExtensions    = "stable_extensions"
	TaskCompleteExtensions  = "complete_extensions"
	TaskAdmissibleSets      = "admissible_sets"
	TaskGroundedLabeling    = "grounded_labeling"
	TaskABADisputeTrees     = "aba_dispute_trees"
)

// Tasks lists every task name Run accepts, sorted.
func Tasks() []string {
	return []string{
		TaskABADisputeTrees,
		TaskAdmissibleSets,
		TaskCompleteExtensions,
		TaskGroundedExtension,
		TaskGroundedLabeling,
		TaskPreferredExtensions,
		TaskStableExtensions,
	}
}

// Outcome is the serializable result of one reasoning task. Only the
// fields relevant to the task are populated.
type Outcome struct {
	Task         string                      `json:"task"`
	Extensions   [][]string                  `json:"extensions,omitempty"`
	Labeling     map[string]dung.Label       `json:"labeling,omitempty"`
	DisputeTrees map[string]*aba.DisputeNode `json:"dispute_trees,omitempty"`
}

// Reasoner runs tasks with optional result caching. A nil store disables
// memoization.
type Reasoner struct {
	store cache.Store
	ttl   time.Duration
}

// New creates a reasoner backed by the given store
func New(store cache.Store, ttl time.Duration) *Reasoner {
	return &Reasoner{store: store, ttl: ttl}
}

// Run executes the named task against the graph, consulting the cache
// first. Unknown task names fail with dung.ErrUnsupported.
func (r *Reasoner) Run(g *model.Graph, task string) (*Outcome, error) {
	key := cache.Key("reason", task, graphDigest(g))
	if r.store != nil {
		if data, found := r.store.Get(key); found {
			var cached Outcome
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	outcome, err := run(g, task)
	if err != nil {
		return nil, err
	}

	if r.store != nil {
		if data, err := json.Marshal(outcome); err == nil {
			_ = r.store.Set(key, data, r.ttl)
		}
	}
	return outcome, nil
}

func run(g *model.Graph, task string) (*Outcome, error) {
	outcome := &Outcome{Task: task}

	switch task {
	case TaskGroundedExtension:
		ext, err := BuildAF(g).GroundedExtension()
		if err != nil {
			return nil, err
		}
		outcome.Extensions = [][]string{ext}
	case TaskAdmissibleSets:
		extensions, err := BuildAF(g).AdmissibleSets()
		if err != nil {
			return nil, err
		}
		outcome.Extensions = extensions
	case TaskPreferredExtensions, TaskStableExtensions, TaskCompleteExtensions:
		semantics := strings.SplitN(task, "_", 2)[0]
		extensions, err := BuildAF(g).Extensions(semantics)
		if err != nil {
			return nil, err
		}
		outcome.Extensions = extensions
	case TaskGroundedLabeling:
		labelings, err := BuildAF(g).Labelings("grounded")
		if err != nil {
			return nil, err
		}
		if len(labelings) > 0 {
			outcome.Labeling = labelings[0]
		}
	case TaskABADisputeTrees:
		framework, err := frameworkFromMetadata(g)
		if err != nil {
			return nil, err
		}
		outcome.DisputeTrees = framework.BuildDisputeTrees(framework.Assumptions(), aba.DefaultDisputeDepth)
	default:
		return nil, fmt.Errorf("unknown reasoning task %q: %w", task, dung.ErrUnsupported)
	}

	return outcome, nil
}

// BuildAF projects a graph onto an abstract framework: every unit becomes
// an argument and every non-support relation becomes an attack on its
// target.
func BuildAF(g *model.Graph) *dung.AF {
	af := dung.New()
	for unitID := range g.Units {
		af.AddArgument(unitID)
	}
	for _, rel := range g.Relations {
		if rel.Kind.Sign() < 0 {
			af.AddAttack(rel.Src, rel.Dst)
		}
	}
	return af
}

func frameworkFromMetadata(g *model.Graph) (*aba.Framework, error) {
	raw, present := g.Metadata[ABAMetadataKey]
	if !present {
		return nil, fmt.Errorf("graph metadata has no %q entry", ABAMetadataKey)
	}
	payload, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("graph metadata %q must be an object", ABAMetadataKey)
	}
	return aba.FromMap(payload)
}

// graphDigest produces a canonical description of the inputs a task can
// observe, so structurally identical graphs share cache entries.
func graphDigest(g *model.Graph) string {
	unitIDs := make([]string, 0, len(g.Units))
	for unitID := range g.Units {
		unitIDs = append(unitIDs, unitID)
	}
	sort.Strings(unitIDs)

	relations := make([]string, 0, len(g.Relations))
	for _, rel := range g.Relations {
		relations = append(relations, rel.Src+">"+rel.Dst+":"+string(rel.Kind))
	}
	sort.Strings(relations)

	abaPart := ""
	if raw, present := g.Metadata[ABAMetadataKey]; present {
		if data, err := json.Marshal(raw); err == nil {
			abaPart = string(data)
		}
	}

	return strings.Join(unitIDs, ",") + "|" + strings.Join(relations, ",") + "|" + abaPart
}
