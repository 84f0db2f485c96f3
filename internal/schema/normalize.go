package schema

import (
	"fmt"
	"strings"

	"github.com/fmf-tmt/tmtcore/internal/xerrors"
)

// Normalize turns a raw fmf node (as loaded, possibly with "key+" merge-marker suffixes) into
// a typed Test (spec §4.2). parent is the already-normalized parent node in the fmf tree, or
// nil at the tree root; every key parent carries is inherited unless this node redeclares it.
func Normalize(raw map[string]any, parent *Test, source Source) (*Test, error) {
	t := &Test{Values: map[string]Value{}, Extra: map[string]any{}}

	if parent != nil {
		for k, v := range parent.Values {
			t.Values[k] = v
		}
		for k, v := range parent.Extra {
			t.Extra[k] = v
		}
	}

	name := nameOf(raw, parent)

	for rawKey, rawVal := range raw {
		key := rawKey
		merge := false
		if strings.HasSuffix(rawKey, "+") {
			key = strings.TrimSuffix(rawKey, "+")
			merge = true
		}

		def, known := Registry[key]
		if !known {
			if merge {
				t.Extra[key] = mergeExtra(t.Extra[key], rawVal)
			} else {
				t.Extra[key] = rawVal
			}
			continue
		}

		val, err := coerce(rawVal, def.Kind, source)
		if err != nil {
			return nil, xerrors.Schema(key, err.Error(), err).WithTest(name)
		}

		if merge {
			if existing, ok := t.Values[key]; ok {
				val, err = mergeValue(def.Kind, existing, val)
				if err != nil {
					return nil, xerrors.Schema(key, err.Error(), err).WithTest(name)
				}
			}
		}

		t.Values[key] = val
	}

	for key, def := range Registry {
		if _, ok := t.Values[key]; !ok && def.Default != nil {
			t.Values[key] = def.Default()
		}
	}

	if nameVal, ok := t.Values["name"]; ok {
		t.Name = nameVal.Str()
	} else {
		t.Name = name
	}

	return t, nil
}

func nameOf(raw map[string]any, parent *Test) string {
	if s, ok := raw["name"].(string); ok {
		return s
	}
	if parent != nil {
		return parent.Name
	}
	return ""
}

// coerce converts a raw decoded value (string/bool/number/[]any/map[string]any, as produced by
// a YAML/fmf decoder) into a Value of the declared kind, expanding the scalar-to-sequence
// shorthand and rejecting type mismatches as fatal (spec §4.2).
func coerce(raw any, kind Kind, source Source) (Value, error) {
	switch kind {
	case KindString:
		s, ok := raw.(string)
		if !ok {
			return Value{}, fmt.Errorf("expected string, got %T", raw)
		}
		return String(s, source), nil

	case KindBool:
		b, ok := raw.(bool)
		if !ok {
			return Value{}, fmt.Errorf("expected bool, got %T", raw)
		}
		return Bool(b, source), nil

	case KindInt:
		switch n := raw.(type) {
		case int:
			return Int(int64(n), source), nil
		case int64:
			return Int(n, source), nil
		case float64:
			return Int(int64(n), source), nil
		default:
			return Value{}, fmt.Errorf("expected int, got %T", raw)
		}

	case KindDuration:
		s, ok := raw.(string)
		if !ok {
			return Value{}, fmt.Errorf("expected duration string, got %T", raw)
		}
		d, err := ParseDuration(s)
		if err != nil {
			return Value{}, err
		}
		return Duration(d, source), nil

	case KindSequence:
		items, ok := raw.([]any)
		if !ok {
			// scalar-to-list shorthand: a materialized sequence key is always a sequence,
			// even if the source used the bare scalar form (spec §3 invariant).
			return Sequence([]Value{inferValue(raw, source)}, source), nil
		}
		vals := make([]Value, len(items))
		for i, it := range items {
			vals[i] = inferValue(it, source)
		}
		return Sequence(vals, source), nil

	case KindMapping:
		m, ok := raw.(map[string]any)
		if !ok {
			return Value{}, fmt.Errorf("expected mapping, got %T", raw)
		}
		fields := make(map[string]Value, len(m))
		for k, v := range m {
			fields[k] = inferValue(v, source)
		}
		return Mapping(fields, source), nil

	default:
		return Value{}, fmt.Errorf("unsupported kind %v", kind)
	}
}

// inferValue converts an arbitrarily-shaped decoded value into a Value by inspecting its Go
// type, used for schema-free substructure (check/link entries, environment values, and any
// unknown-key payload) where there is no Registry entry to consult.
func inferValue(raw any, source Source) Value {
	switch v := raw.(type) {
	case string:
		return String(v, source)
	case bool:
		return Bool(v, source)
	case int:
		return Int(int64(v), source)
	case int64:
		return Int(v, source)
	case float64:
		return Int(int64(v), source)
	case []any:
		items := make([]Value, len(v))
		for i, it := range v {
			items[i] = inferValue(it, source)
		}
		return Sequence(items, source)
	case map[string]any:
		m := make(map[string]Value, len(v))
		for k, it := range v {
			m[k] = inferValue(it, source)
		}
		return Mapping(m, source)
	default:
		return String(fmt.Sprintf("%v", v), source)
	}
}

// mergeValue implements the "key+" append/merge semantics for sequences and mappings. Scalar
// kinds have no append concept in the source language; a "+" on a scalar key is treated as a
// plain replace (an explicit design decision, see DESIGN.md).
func mergeValue(kind Kind, existing, incoming Value) (Value, error) {
	switch kind {
	case KindSequence:
		merged := append(append([]Value{}, existing.Items()...), incoming.Items()...)
		return Sequence(merged, incoming.Source), nil
	case KindMapping:
		merged := make(map[string]Value, len(existing.Fields())+len(incoming.Fields()))
		for k, v := range existing.Fields() {
			merged[k] = v
		}
		for k, v := range incoming.Fields() {
			merged[k] = v
		}
		return Mapping(merged, incoming.Source), nil
	default:
		return incoming, nil
	}
}

// mergeExtra applies the same append/merge intent to an unknown (non-Registry) key.
func mergeExtra(existing, incoming any) any {
	if existing == nil {
		return incoming
	}
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
