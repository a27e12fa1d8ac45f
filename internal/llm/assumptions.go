package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arglab/toulmin/internal/critique"
	"github.com/arglab/toulmin/internal/model"
	"github.com/arglab/toulmin/internal/worker"
)

const assumptionSystemPrompt = "You identify the implicit assumptions an argumentative relation depends on. Respond with JSON only."

// AssumptionSuggester adapts a Provider to the critique engine's
// suggestion interface. Calls share a per-provider rate budget.
type AssumptionSuggester struct {
	provider Provider
	limiter  *worker.Limiter
}

// NewAssumptionSuggester creates a suggester; limiter may be nil
func NewAssumptionSuggester(provider Provider, limiter *worker.Limiter) *AssumptionSuggester {
	return &AssumptionSuggester{provider: provider, limiter: limiter}
}

// SuggestAssumptions asks the provider for up to k implicit assumptions
// behind one relation
func (s *AssumptionSuggester) SuggestAssumptions(ctx context.Context, source, target string, kind model.RelationKind, k int) ([]critique.Assumption, error) {
	if k <= 0 {
		k = 3
	}
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx, s.provider.Name()); err != nil {
			return nil, err
		}
	}

	resp, err := s.provider.Complete(ctx, CompletionRequest{
		System: assumptionSystemPrompt,
		Prompt: buildAssumptionPrompt(source, target, kind, k),
	})
	if err != nil {
		return nil, err
	}

	assumptions, err := parseAssumptions(resp.Text)
	if err != nil {
		return nil, err
	}
	if len(assumptions) > k {
		assumptions = assumptions[:k]
	}
	return assumptions, nil
}

func buildAssumptionPrompt(source, target string, kind model.RelationKind, k int) string {
	return fmt.Sprintf(`Statement A: %q
Statement B: %q
A is asserted to %s B.

List up to %d implicit assumptions this %s relation depends on. Respond
with a JSON array of objects, each with fields "assumption" (string),
"rationale" (string), and "importance" (number in [0,1]).`,
		source, target, string(kind), k, string(kind))
}

// parseAssumptions tolerates code fences and prose around the JSON array
func parseAssumptions(text string) ([]critique.Assumption, error) {
	text = strings.TrimSpace(text)
	if start := strings.Index(text, "["); start >= 0 {
		if end := strings.LastIndex(text, "]"); end > start {
			text = text[start : end+1]
		}
	}

	var assumptions []critique.Assumption
	if err := json.Unmarshal([]byte(text), &assumptions); err != nil {
		return nil, fmt.Errorf("parsing assumption response: %w", err)
	}

	out := assumptions[:0]
	for _, a := range assumptions {
		if strings.TrimSpace(a.Assumption) == "" {
			continue
		}
		if a.Importance != nil {
			v := *a.Importance
			if v < 0 {
				v = 0
			}
			if v > 1 {
				v = 1
			}
			a.Importance = &v
		}
		out = append(out, a)
	}
	return out, nil
}
