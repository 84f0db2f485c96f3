// Package hardware implements the hardware-requirement constraint language: parsing a nested
// and/or tree of typed leaf predicates, canonical re-serialization, tree simplification, and a
// three-valued satisfies predicate evaluated against a concrete hardware description (spec
// §4.4).
package hardware

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/dustin/go-humanize"
	"github.com/fmf-tmt/tmtcore/internal/xerrors"
)

// LeafKind is the value-syntax family a leaf path belongs to.
type LeafKind int

const (
	KindNumeric LeafKind = iota
	KindBoolean
	KindString
	KindVersion
)

// leafFamilies maps the known, non-exhaustive leaf paths of spec §4.4 to their value syntax.
// Paths carrying a sequence index (disk[0].size) are looked up with the index collapsed to
// "[]"; unknown paths fall back to KindString, the most permissive family (=, !=, ~, !~),
// honoring the spec's "accept unknown leaf paths as opaque constraints" requirement.
var leafFamilies = map[string]LeafKind{
	"arch":                          KindString,
	"memory":                        KindNumeric,
	"cpu.family":                    KindNumeric,
	"cpu.model":                     KindNumeric,
	"cpu.model-name":                KindString,
	"cpu.cores":                     KindNumeric,
	"cpu.threads":                   KindNumeric,
	"cpu.stepping":                  KindNumeric,
	"cpu.flag":                      KindString,
	"virtualization.is-virtualized": KindBoolean,
	"virtualization.hypervisor":     KindString,
	"tpm.version":                   KindVersion,
	"disk[].size":                   KindNumeric,
	"disk[].model-name":             KindString,
	"network[].type":                KindString,
	"hostname":                      KindString,
	"compatible.distro":             KindString,
	"boot.method":                   KindString,
}

var indexPattern = regexp.MustCompile(`\[\d+\]`)

// familyOf collapses a concrete leaf path's sequence indices and looks it up in leafFamilies.
func familyOf(path string) LeafKind {
	generic := indexPattern.ReplaceAllString(path, "[]")
	if kind, ok := leafFamilies[generic]; ok {
		return kind
	}
	return KindString
}

// allowedOps lists the operators spec §4.4 permits per leaf kind.
var allowedOps = map[LeafKind]map[string]bool{
	KindNumeric: {"=": true, "!=": true, ">": true, ">=": true, "<": true, "<=": true},
	KindBoolean: {"=": true, "!=": true},
	KindString:  {"=": true, "!=": true, "~": true, "!~": true},
	KindVersion: {"=": true, "!=": true, ">": true, ">=": true, "<": true, "<=": true},
}

// opPrefixes is checked longest-first so "!=" isn't mistaken for "=" etc.
var opPrefixes = []string{">=", "<=", "!=", "!~", ">", "<", "~", "="}

// Leaf is one typed constraint: a path, an operator, and the operator's parsed operand.
type Leaf struct {
	Path string
	Kind LeafKind
	Op   string
	Raw  string // the RHS exactly as written, trimmed

	quantity uint64
	boolean  bool
	version  *semver.Version
}

// parseLeaf parses a constraint value string ("[OP] RHS") for the given path, enforcing the
// operator allow-list and value syntax of the path's leaf family.
func parseLeaf(path, value string) (*Leaf, error) {
	kind := familyOf(path)

	op, rhs := splitOp(value)
	if !allowedOps[kind][op] {
		return nil, xerrors.Semantic(fmt.Sprintf("operator %q not allowed for leaf %q", op, path), nil)
	}

	leaf := &Leaf{Path: path, Kind: kind, Op: op, Raw: rhs}

	switch kind {
	case KindNumeric:
		q, err := parseQuantity(rhs)
		if err != nil {
			return nil, xerrors.Syntax(path, "invalid numeric quantity", err)
		}
		leaf.quantity = q
	case KindBoolean:
		switch rhs {
		case "true":
			leaf.boolean = true
		case "false":
			leaf.boolean = false
		default:
			return nil, xerrors.Syntax(path, fmt.Sprintf("boolean leaf must be true/false, got %q", rhs), nil)
		}
	case KindVersion:
		v, err := semver.NewVersion(rhs)
		if err != nil {
			return nil, xerrors.Syntax(path, "invalid version literal", err)
		}
		leaf.version = v
	case KindString:
		// Raw already trimmed by splitOp; nothing further to parse.
	}

	return leaf, nil
}

func splitOp(value string) (op, rhs string) {
	trimmed := strings.TrimSpace(value)
	for _, p := range opPrefixes {
		if strings.HasPrefix(trimmed, p) {
			return p, strings.TrimSpace(strings.TrimPrefix(trimmed, p))
		}
	}
	return "=", trimmed
}

func parseQuantity(s string) (uint64, error) {
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return n, nil
	}
	return humanize.ParseBytes(s)
}

// String renders the leaf in canonical form: "OP RAW".
func (l *Leaf) String() string {
	return l.Op + " " + l.Raw
}
