package policy

import (
	"bytes"
	"fmt"
	"sync"
	"text/template"

	"github.com/fmf-tmt/tmtcore/internal/schema"
	"github.com/fmf-tmt/tmtcore/internal/xerrors"
	"gopkg.in/yaml.v3"
)

// Engine renders a Document against normalized tests. It caches one parsed *template.Template
// per distinct template string, mirroring the teacher's regoEval query cache: templates are
// read-only and pure, so there's nothing test-specific to key the cache on beyond the text
// itself.
type Engine struct {
	mu        sync.Mutex
	templates map[string]*template.Template
}

// NewEngine returns a ready-to-use Engine.
func NewEngine() *Engine {
	return &Engine{templates: make(map[string]*template.Template)}
}

func (e *Engine) template(text string) (*template.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if t, ok := e.templates[text]; ok {
		return t, nil
	}
	t, err := template.New("policy").Funcs(funcMap()).Parse(text)
	if err != nil {
		return nil, err
	}
	e.templates[text] = t
	return t, nil
}

// Render applies every rule of doc to test in order, rewriting one key at a time (spec §4.3).
// It returns a new Test; the input is left untouched. A rendering or re-parse failure is fatal
// and names both the offending rule and key.
func (e *Engine) Render(doc *Document, test *schema.Test) (*schema.Test, error) {
	out := test.Clone()

	for ri, rule := range doc.Rules {
		ruleLabel := fmt.Sprintf("test-policy[%d]", ri)

		for _, kr := range rule.Keys {
			tmpl, err := e.template(kr.Template)
			if err != nil {
				return nil, xerrors.Render(ruleLabel, kr.Key, "template parse failed", err)
			}

			current, _ := out.Get(kr.Key)
			data := map[string]any{
				"VALUE":        current.ToAny(),
				"VALUE_SOURCE": string(current.Source),
				"TEST":         out.View(),
			}

			var buf bytes.Buffer
			if err := tmpl.Execute(&buf, data); err != nil {
				return nil, xerrors.Render(ruleLabel, kr.Key, "template execution failed", err)
			}

			var raw any
			if err := yaml.Unmarshal(buf.Bytes(), &raw); err != nil {
				return nil, xerrors.Render(ruleLabel, kr.Key, "rendered value is not valid structured data", err)
			}

			if err := schema.ApplyKey(out, kr.Key, raw, schema.SourcePolicy); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
