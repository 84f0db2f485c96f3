package hardware

// Simplify flattens trivially-nested boolean nodes per spec §4.4: and:[x] (or or:[x]) reduces
// to x, and nested and/or of the same operator flattens into their parent. Leaf nodes and
// empty and/or nodes (trivially satisfied / unsatisfiable, defined degenerate cases) are
// returned unchanged.
func Simplify(t *Tree) *Tree {
	if t == nil || t.Kind == TreeLeaf {
		return t
	}

	children := make([]*Tree, 0, len(t.Children))
	for _, c := range t.Children {
		simplified := Simplify(c)
		if simplified.Kind == t.Kind {
			children = append(children, simplified.Children...)
			continue
		}
		children = append(children, simplified)
	}

	if len(children) == 1 {
		return children[0]
	}

	return &Tree{Kind: t.Kind, Children: children}
}
