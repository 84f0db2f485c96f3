// Package schema implements the normalized test-object data model: a tagged-union Value type
// carrying a source tag (default/fmf/cli/policy), a well-known-keys registry, and the
// normalizer that turns a loaded fmf node into a typed Test (spec §3, §4.2).
//
// Per the spec's design note on dynamic dictionaries, unknown keys are never forced into this
// tagged union — they are kept verbatim in Test.Extra so re-serialization stays lossless.
package schema

import "fmt"

// Kind is the declared semantic type of a test key.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
	KindDuration
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindDuration:
		return "duration"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Source records where a key's materialized value came from, per spec §3.
type Source string

const (
	SourceDefault Source = "default"
	SourceFMF     Source = "fmf"
	SourceCLI     Source = "cli"
	SourcePolicy  Source = "policy"
)

// Value is a tagged union over the schema kinds, annotated with the source that produced it.
type Value struct {
	Kind   Kind
	Source Source

	str      string
	boolean  bool
	integer  int64
	duration Seconds
	seq      []Value
	mapping  map[string]Value
}

// String builds a KindString value.
func String(s string, src Source) Value {
	return Value{Kind: KindString, Source: src, str: s}
}

// Bool builds a KindBool value.
func Bool(b bool, src Source) Value {
	return Value{Kind: KindBool, Source: src, boolean: b}
}

// Int builds a KindInt value.
func Int(i int64, src Source) Value {
	return Value{Kind: KindInt, Source: src, integer: i}
}

// Duration builds a KindDuration value.
func Duration(d Seconds, src Source) Value {
	return Value{Kind: KindDuration, Source: src, duration: d}
}

// Sequence builds a KindSequence value.
func Sequence(items []Value, src Source) Value {
	return Value{Kind: KindSequence, Source: src, seq: items}
}

// Mapping builds a KindMapping value.
func Mapping(m map[string]Value, src Source) Value {
	return Value{Kind: KindMapping, Source: src, mapping: m}
}

// Str returns the string payload; valid only if Kind == KindString.
func (v Value) Str() string { return v.str }

// Boolean returns the bool payload; valid only if Kind == KindBool.
func (v Value) Boolean() bool { return v.boolean }

// Integer returns the int payload; valid only if Kind == KindInt.
func (v Value) Integer() int64 { return v.integer }

// Dur returns the duration payload; valid only if Kind == KindDuration.
func (v Value) Dur() Seconds { return v.duration }

// Items returns the sequence payload; valid only if Kind == KindSequence.
func (v Value) Items() []Value { return v.seq }

// Fields returns the mapping payload; valid only if Kind == KindMapping.
func (v Value) Fields() map[string]Value { return v.mapping }

// ToAny projects a Value into plain structured data (string, bool, int64, []any, map[string]any)
// — never an internal object — for use as a policy template binding (spec §4.3, §9 design
// note on template/live-object decoupling).
func (v Value) ToAny() any {
	switch v.Kind {
	case KindString:
		return v.str
	case KindBool:
		return v.boolean
	case KindInt:
		return v.integer
	case KindDuration:
		return v.duration.String()
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, item := range v.seq {
			out[i] = item.ToAny()
		}
		return out
	case KindMapping:
		out := make(map[string]any, len(v.mapping))
		for k, item := range v.mapping {
			out[k] = item.ToAny()
		}
		return out
	default:
		return nil
	}
}

// Equal reports deep value equality, ignoring source tags (two values materialized from
// different sources can still be semantically identical, e.g. spec property 5).
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindString:
		return a.str == b.str
	case KindBool:
		return a.boolean == b.boolean
	case KindInt:
		return a.integer == b.integer
	case KindDuration:
		return a.duration == b.duration
	case KindSequence:
		if len(a.seq) != len(b.seq) {
			return false
		}
		for i := range a.seq {
			if !Equal(a.seq[i], b.seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(a.mapping) != len(b.mapping) {
			return false
		}
		for k, av := range a.mapping {
			bv, ok := b.mapping[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (v Value) String() string {
	return fmt.Sprintf("%s(%v)", v.Kind, v.ToAny())
}
