package hardware

import (
	"strconv"

	"github.com/Masterminds/semver/v3"
	"github.com/fmf-tmt/tmtcore/internal/rxsearch"
)

// Tri is a three-valued truth value: the satisfies predicate must account for hardware
// descriptions that lack a fact a constraint leaf asks about (spec §4.4).
type Tri int

const (
	Unknown Tri = iota
	Yes
	No
)

func (t Tri) String() string {
	switch t {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "unknown"
	}
}

// Facts is a concrete hardware description: a mapping from dotted leaf path to a concrete Go
// value (string, bool, or a number — whichever the caller's provisioner naturally produces).
type Facts map[string]any

// Satisfies evaluates a constraint tree against a hardware description under three-valued
// logic: and/or short-circuit toward a definite no/yes but otherwise propagate unknown (spec
// §4.4).
func Satisfies(t *Tree, facts Facts) Tri {
	switch t.Kind {
	case TreeLeaf:
		return satisfiesLeaves(t.Leaves, facts)
	case TreeAnd:
		return reduceAnd(t.Children, facts)
	case TreeOr:
		return reduceOr(t.Children, facts)
	default:
		return Unknown
	}
}

func satisfiesLeaves(leaves []*Leaf, facts Facts) Tri {
	// Sibling leaves at one level are implicitly conjoined.
	result := Yes
	for _, l := range leaves {
		switch satisfiesLeaf(l, facts) {
		case No:
			return No
		case Unknown:
			result = Unknown
		}
	}
	return result
}

func reduceAnd(children []*Tree, facts Facts) Tri {
	result := Yes
	for _, c := range children {
		switch Satisfies(c, facts) {
		case No:
			return No
		case Unknown:
			result = Unknown
		}
	}
	return result
}

func reduceOr(children []*Tree, facts Facts) Tri {
	result := No
	for _, c := range children {
		switch Satisfies(c, facts) {
		case Yes:
			return Yes
		case Unknown:
			result = Unknown
		}
	}
	return result
}

func satisfiesLeaf(l *Leaf, facts Facts) Tri {
	val, ok := facts[l.Path]
	if !ok {
		return Unknown
	}

	switch l.Kind {
	case KindNumeric:
		q, ok := factQuantity(val)
		if !ok {
			return Unknown
		}
		return boolTri(compareNumeric(l.Op, q, l.quantity))

	case KindBoolean:
		b, ok := factBool(val)
		if !ok {
			return Unknown
		}
		return boolTri(compareEquality(l.Op, b, l.boolean))

	case KindVersion:
		v, ok := factVersion(val)
		if !ok {
			return Unknown
		}
		return boolTri(compareVersion(l.Op, v, l.version))

	case KindString:
		s, ok := val.(string)
		if !ok {
			return Unknown
		}
		return boolTri(matchString(l.Op, s, l.Raw))
	}
	return Unknown
}

func boolTri(b bool) Tri {
	if b {
		return Yes
	}
	return No
}

func compareNumeric(op string, have, want uint64) bool {
	switch op {
	case "=":
		return have == want
	case "!=":
		return have != want
	case ">":
		return have > want
	case ">=":
		return have >= want
	case "<":
		return have < want
	case "<=":
		return have <= want
	}
	return false
}

func compareEquality[T comparable](op string, have, want T) bool {
	switch op {
	case "=":
		return have == want
	case "!=":
		return have != want
	}
	return false
}

func compareVersion(op string, have, want *semver.Version) bool {
	cmp := have.Compare(want)
	switch op {
	case "=":
		return cmp == 0
	case "!=":
		return cmp != 0
	case ">":
		return cmp > 0
	case ">=":
		return cmp >= 0
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	}
	return false
}

func matchString(op, have, pattern string) bool {
	switch op {
	case "=":
		return have == pattern
	case "!=":
		return have != pattern
	case "~":
		ok, _ := rxsearch.Match(pattern, have)
		return ok
	case "!~":
		ok, _ := rxsearch.Match(pattern, have)
		return !ok
	}
	return false
}

func factQuantity(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint64:
		return n, true
	case int:
		return uint64(n), true
	case int64:
		return uint64(n), true
	case float64:
		return uint64(n), true
	case string:
		q, err := parseQuantity(n)
		return q, err == nil
	default:
		return 0, false
	}
}

func factBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(b)
		return parsed, err == nil
	default:
		return false, false
	}
}

func factVersion(v any) (*semver.Version, bool) {
	s, ok := v.(string)
	if !ok {
		return nil, false
	}
	ver, err := semver.NewVersion(s)
	if err != nil {
		return nil, false
	}
	return ver, true
}
