package hardware

import (
	"fmt"
	"sort"

	"github.com/fmf-tmt/tmtcore/internal/xerrors"
)

// TreeKind distinguishes a leaf-constraint level from a boolean composite.
type TreeKind int

const (
	TreeLeaf TreeKind = iota
	TreeAnd
	TreeOr
)

// Tree is a parsed hardware constraint document. A TreeLeaf node carries one or more sibling
// leaf constraints (implicitly conjoined — the document shape only allows multiple leaf keys
// at a level, never multiple and/or keys); a TreeAnd/TreeOr node carries an ordered list of
// sub-trees.
type Tree struct {
	Kind     TreeKind
	Leaves   []*Leaf // TreeLeaf only, sorted by path
	Children []*Tree // TreeAnd/TreeOr only, in declaration order
}

// Parse compiles a raw constraint document into a Tree. A document must be either one or more
// leaf constraints, or exactly one of "and"/"or" mapped to a sequence of sub-documents; mixing
// the two at the same level is a fatal parse error (spec §4.4).
func Parse(doc map[string]any) (*Tree, error) {
	_, hasAnd := doc["and"]
	_, hasOr := doc["or"]

	switch {
	case hasAnd && hasOr:
		return nil, xerrors.Semantic("constraint document cannot mix 'and' and 'or' at the same level", nil)
	case hasAnd:
		if len(doc) != 1 {
			return nil, xerrors.Semantic("'and' cannot be mixed with leaf constraints at the same level", nil)
		}
		return parseComposite(TreeAnd, doc["and"])
	case hasOr:
		if len(doc) != 1 {
			return nil, xerrors.Semantic("'or' cannot be mixed with leaf constraints at the same level", nil)
		}
		return parseComposite(TreeOr, doc["or"])
	default:
		return parseLeaves(doc)
	}
}

func parseComposite(kind TreeKind, raw any) (*Tree, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, xerrors.Semantic("'and'/'or' value must be a sequence of sub-documents", fmt.Errorf("got %T", raw))
	}

	children := make([]*Tree, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, xerrors.Semantic("'and'/'or' entries must be mappings", fmt.Errorf("got %T", item))
		}
		child, err := Parse(m)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return &Tree{Kind: kind, Children: children}, nil
}

func parseLeaves(doc map[string]any) (*Tree, error) {
	paths := make([]string, 0, len(doc))
	for path := range doc {
		paths = append(paths, path)
	}
	sort.Strings(paths) // deterministic leaf order for documents not already an ordered source

	leaves := make([]*Leaf, 0, len(paths))
	for _, path := range paths {
		str, ok := doc[path].(string)
		if !ok {
			return nil, xerrors.Schema(path, "constraint value must be a string", fmt.Errorf("got %T", doc[path]))
		}
		leaf, err := parseLeaf(path, str)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, leaf)
	}
	return &Tree{Kind: TreeLeaf, Leaves: leaves}, nil
}
