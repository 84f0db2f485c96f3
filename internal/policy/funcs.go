package policy

import (
	"bytes"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"gopkg.in/yaml.v3"
)

// funcMap extends Sprig's function set with the small template capability set spec §4.3 calls
// for beyond plain text manipulation: attribute-extraction over sequences, enumeration, and a
// YAML re-emitter so a rule can hand VALUE back unchanged.
func funcMap() template.FuncMap {
	fm := sprig.TxtFuncMap()
	fm["attr"] = attrFunc
	fm["enumerate"] = enumerateFunc
	fm["toYaml"] = toYamlFunc
	return fm
}

// attr extracts one attribute from each mapping in a sequence, e.g. {{ attr "how" VALUE }}.
func attrFunc(name string, items any) []any {
	seq, ok := items.([]any)
	if !ok {
		return nil
	}
	out := make([]any, 0, len(seq))
	for _, it := range seq {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, m[name])
	}
	return out
}

type enumerated struct {
	Index int
	Value any
}

func enumerateFunc(items any) []enumerated {
	seq, ok := items.([]any)
	if !ok {
		return nil
	}
	out := make([]enumerated, len(seq))
	for i, it := range seq {
		out[i] = enumerated{Index: i, Value: it}
	}
	return out
}

func toYamlFunc(v any) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	_ = enc.Close()
	return buf.String(), nil
}
