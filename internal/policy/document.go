// Package policy implements the second metadata-rewrite pass: a policy document of ordered
// rules, each rewriting one or more test keys by rendering a template against the
// already-adjusted, normalized test and re-parsing/renormalizing the result (spec §4.3).
package policy

import (
	"fmt"

	"github.com/fmf-tmt/tmtcore/internal/xerrors"
	"gopkg.in/yaml.v3"
)

// KeyRule rewrites one test key with a template string.
type KeyRule struct {
	Key      string
	Template string
}

// Rule is one entry of the test-policy sequence; it may rewrite more than one key, applied in
// the declaration order recorded here.
type Rule struct {
	Keys []KeyRule
}

// Document is a parsed policy document: an ordered sequence of rules.
type Document struct {
	Rules []Rule
}

// Parse decodes a policy document's `test-policy` sequence, preserving both rule order and,
// within a rule, key order — a plain map[string]string would lose the latter, so this walks
// the YAML node tree directly rather than decoding into a Go map.
func Parse(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, xerrors.Syntax("", "malformed policy document", err)
	}
	if len(root.Content) == 0 {
		return &Document{}, nil
	}

	docNode := root.Content[0]
	seq := findMapValue(docNode, "test-policy")
	if seq == nil {
		return nil, xerrors.Semantic("policy document missing 'test-policy' sequence", nil)
	}
	if seq.Kind != yaml.SequenceNode {
		return nil, xerrors.Semantic("'test-policy' must be a sequence", nil)
	}

	doc := &Document{}
	for _, ruleNode := range seq.Content {
		if ruleNode.Kind != yaml.MappingNode {
			return nil, xerrors.Semantic("each policy rule must be a mapping", nil)
		}
		rule := Rule{}
		for i := 0; i+1 < len(ruleNode.Content); i += 2 {
			keyNode, valNode := ruleNode.Content[i], ruleNode.Content[i+1]
			if valNode.Kind != yaml.ScalarNode {
				return nil, xerrors.Semantic(fmt.Sprintf("policy rule key %q must map to a template string", keyNode.Value), nil)
			}
			rule.Keys = append(rule.Keys, KeyRule{Key: keyNode.Value, Template: valNode.Value})
		}
		doc.Rules = append(doc.Rules, rule)
	}
	return doc, nil
}

func findMapValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}
