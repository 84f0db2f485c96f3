package hardware

import "sort"

// Serialize re-emits a Tree as a plain document matching the shape Parse accepts: leaves as
// "path: 'OP RAW'", composites as {"and": [...]} / {"or": [...]}. Because Parse sorts leaf
// paths and Serialize always emits the explicit operator, serialize(parse(D)) is a fixed point
// for any D already in this canonical form (spec §4.4, invariant 3).
func Serialize(t *Tree) map[string]any {
	switch t.Kind {
	case TreeLeaf:
		paths := make([]string, 0, len(t.Leaves))
		byPath := make(map[string]*Leaf, len(t.Leaves))
		for _, l := range t.Leaves {
			paths = append(paths, l.Path)
			byPath[l.Path] = l
		}
		sort.Strings(paths)

		doc := make(map[string]any, len(paths))
		for _, p := range paths {
			doc[p] = byPath[p].String()
		}
		return doc

	case TreeAnd:
		return map[string]any{"and": serializeChildren(t.Children)}
	case TreeOr:
		return map[string]any{"or": serializeChildren(t.Children)}
	default:
		return map[string]any{}
	}
}

func serializeChildren(children []*Tree) []any {
	out := make([]any, len(children))
	for i, c := range children {
		out[i] = Serialize(c)
	}
	return out
}
