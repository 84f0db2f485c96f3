package adjust

import (
	"fmt"
	"strings"

	"github.com/fmf-tmt/tmtcore/internal/context"
	"github.com/fmf-tmt/tmtcore/internal/xerrors"
)

// Rule is one parsed `adjust` entry.
type Rule struct {
	When     string
	Continue bool
	Because  string
	Payload  map[string]any
}

// Apply evaluates and merges a node's `adjust` rules against ctx, returning a new raw node
// with `adjust` consumed (spec §4.1). The returned bool slice records, per rule in
// declaration order, whether it fired — callers that track "unused adjust rules" warnings
// across a whole tree can accumulate this.
func Apply(raw map[string]any, ctx context.Context) (map[string]any, []bool, error) {
	rawAdjust, ok := raw["adjust"]
	if !ok {
		return raw, nil, nil
	}

	rules, err := parseRules(rawAdjust)
	if err != nil {
		return nil, nil, err
	}

	out := make(map[string]any, len(raw))
	for k, v := range raw {
		if k != "adjust" {
			out[k] = v
		}
	}

	fired := make([]bool, len(rules))
	for i, rule := range rules {
		expr, err := Parse(rule.When)
		if err != nil {
			return nil, nil, xerrors.Syntax(rule.When, "malformed when expression", err)
		}

		matched, err := expr.Eval(ctx)
		if err != nil {
			return nil, nil, xerrors.Syntax(rule.When, "when expression evaluation failed", err)
		}
		if !matched {
			continue
		}

		fired[i] = true
		for k, v := range rule.Payload {
			mergeKey(out, k, v)
		}

		if !rule.Continue {
			break
		}
	}

	return out, fired, nil
}

func parseRules(raw any) ([]Rule, error) {
	switch v := raw.(type) {
	case map[string]any:
		r, err := parseRule(v)
		if err != nil {
			return nil, err
		}
		return []Rule{r}, nil
	case []any:
		rules := make([]Rule, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, xerrors.Semantic("adjust entry must be a mapping", fmt.Errorf("got %T", item))
			}
			r, err := parseRule(m)
			if err != nil {
				return nil, err
			}
			rules = append(rules, r)
		}
		return rules, nil
	default:
		return nil, xerrors.Semantic("adjust must be a mapping or a sequence of mappings", fmt.Errorf("got %T", raw))
	}
}

func parseRule(m map[string]any) (Rule, error) {
	when, ok := m["when"].(string)
	if !ok {
		return Rule{}, xerrors.Syntax("", "adjust rule missing required 'when' string", nil)
	}

	r := Rule{When: when, Continue: true, Payload: map[string]any{}}
	if b, ok := m["because"].(string); ok {
		r.Because = b
	}
	if c, ok := m["continue"]; ok {
		b, ok := c.(bool)
		if !ok {
			return Rule{}, xerrors.Schema("continue", "adjust rule's 'continue' must be a bool", nil)
		}
		r.Continue = b
	}

	for k, v := range m {
		if k == "when" || k == "continue" || k == "because" {
			continue
		}
		r.Payload[k] = v
	}

	return r, nil
}

// mergeKey applies one payload key into the node, honoring a trailing "+" as append/merge
// against the node's own current value for that key, replacing otherwise (spec §4.1).
func mergeKey(node map[string]any, key string, val any) {
	if !strings.HasSuffix(key, "+") {
		node[key] = val
		return
	}

	base := strings.TrimSuffix(key, "+")
	existing, ok := node[base]
	if !ok {
		node[base] = val
		return
	}
	node[base] = rawMerge(existing, val)
}

// rawMerge is the untyped append/merge used while rewriting a raw node, before normalization
// assigns Kinds. Sequences and mappings merge; anything else is replaced.
func rawMerge(existing, incoming any) any {
	switch e := existing.(type) {
	case []any:
		if inc, ok := incoming.([]any); ok {
			return append(append([]any{}, e...), inc...)
		}
	case map[string]any:
		if inc, ok := incoming.(map[string]any); ok {
			merged := make(map[string]any, len(e)+len(inc))
			for k, v := range e {
				merged[k] = v
			}
			for k, v := range inc {
				merged[k] = v
			}
			return merged
		}
	}
	return incoming
}
