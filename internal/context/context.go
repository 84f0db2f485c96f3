// Package context models the execution context the metadata core materializes against: a
// mapping from dimension name (distro, arch, component, trigger, ...) to one or more values.
package context

import (
	"github.com/fmf-tmt/tmtcore/internal/verscmp"
)

// WellKnown lists the dimension names the spec calls out by name. Other dimension names are
// accepted; this set is documentation only and no code in the module consults it.
var WellKnown = []string{"distro", "arch", "component", "trigger", "collection", "initiator"}

// Context maps a lowercase dimension name to its values. A dimension may carry more than one
// value; comparisons against a multi-valued dimension are any-match (see internal/adjust).
type Context map[string][]string

// New returns an empty Context.
func New() Context {
	return Context{}
}

// Add appends one or more values to a dimension.
func (c Context) Add(dim string, values ...string) {
	c[dim] = append(c[dim], values...)
}

// Set replaces a dimension's values.
func (c Context) Set(dim string, values ...string) {
	c[dim] = values
}

// Has reports whether the dimension is defined (present with at least one value).
func (c Context) Has(dim string) bool {
	return len(c[dim]) > 0
}

// Values returns the values for a dimension, or nil if undefined.
func (c Context) Values(dim string) []string {
	return c[dim]
}

// Clone returns a deep copy.
func (c Context) Clone() Context {
	cp := make(Context, len(c))
	for k, v := range c {
		cp[k] = append([]string(nil), v...)
	}
	return cp
}

// Compare compares a context value against a literal using the versioned-comparison rules
// from §3: values like "fedora-33"/"fedora-40" are ordered numerically on their trailing
// version; any other pair of strings is comparable only for equality.
func Compare(value, literal string) (cmp int, ordered bool) {
	return verscmp.Compare(value, literal)
}
