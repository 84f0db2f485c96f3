// Package fmfnode loads an fmf tree from disk into a tree of raw node maps. Per the spec's
// design note on attribute inheritance, a node's raw map is the node's own file content only
// — inheritance across the directory chain is resolved explicitly by the caller (the
// materialization pipeline), which normalizes parent-before-child and threads the parent's
// already-normalized Test down as the merge base (spec §4.2).
package fmfnode

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// mainFile is the fmf convention for a directory's own shared attributes.
const mainFile = "main.fmf"

// Node is one entry in the loaded fmf tree: either a directory-level node (from main.fmf,
// possibly with no own data) or a leaf test node (from a standalone *.fmf file).
type Node struct {
	// Name is the fmf name path, e.g. "/component/feature/test-one".
	Name string
	// Dir is the filesystem directory this node was discovered under.
	Dir string
	// Raw is this node's own declared data (not yet merged with ancestors).
	Raw map[string]any
	// IsLeaf is true for individual test files; false for directory-level (main.fmf) nodes.
	IsLeaf bool
	// Children are nested nodes, subdirectories and leaf files interleaved in lexical order of
	// their entry names.
	Children []*Node
}

// Load walks root and returns the directory-level root Node. Every directory becomes a Node
// (even without a main.fmf, contributing an empty Raw); every "*.fmf" file other than
// main.fmf becomes a leaf child Node named after the file (without extension).
func Load(root string) (*Node, error) {
	return loadDir(root, "/")
}

func loadDir(dir, name string) (*Node, error) {
	n := &Node{Name: name, Dir: dir, Raw: map[string]any{}}

	mainPath := filepath.Join(dir, mainFile)
	if data, err := os.ReadFile(mainPath); err == nil {
		m, err := decode(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", mainPath, err)
		}
		n.Raw = m
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", mainPath, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}

		if e.IsDir() {
			child, err := loadDir(filepath.Join(dir, e.Name()), path.Join(name, e.Name()))
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
			continue
		}

		if !strings.HasSuffix(e.Name(), ".fmf") || e.Name() == mainFile {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		raw, err := decode(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}

		leafName := strings.TrimSuffix(e.Name(), ".fmf")
		n.Children = append(n.Children, &Node{
			Name:   path.Join(name, leafName),
			Dir:    dir,
			Raw:    raw,
			IsLeaf: true,
		})
	}

	return n, nil
}

func decode(data []byte) (map[string]any, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

// Walk invokes fn for every node in the tree in parent-before-child order, so a normalizer
// pass over the tree always has the parent's result available before visiting children.
func Walk(n *Node, fn func(n *Node) error) error {
	if err := fn(n); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := Walk(c, fn); err != nil {
			return err
		}
	}
	return nil
}

// Leaves returns every leaf (test) node under root, in tree order.
func Leaves(root *Node) []*Node {
	var out []*Node
	_ = Walk(root, func(n *Node) error {
		if n.IsLeaf {
			out = append(out, n)
		}
		return nil
	})
	return out
}
