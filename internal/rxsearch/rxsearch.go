// Package rxsearch implements the single anchored-search regex semantics shared by the
// when-expression language (internal/adjust) and the hardware constraint language
// (internal/hardware), per the spec's design note that both surface languages must route
// through one regex helper rather than reimplementing search semantics twice.
package rxsearch

import (
	"regexp"
	"strings"
	"sync"
)

var (
	mu    sync.Mutex
	cache = map[string]*regexp.Regexp{}
)

// compile returns a cached *regexp.Regexp for pattern, compiling it on first use.
func compile(pattern string) (*regexp.Regexp, error) {
	mu.Lock()
	defer mu.Unlock()

	if re, ok := cache[pattern]; ok {
		return re, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	cache[pattern] = re
	return re, nil
}

// Match reports whether pattern is found anywhere in value (search semantics, not a full-string
// anchor). Leading/trailing whitespace of pattern is stripped before compiling, per spec.
func Match(pattern, value string) (bool, error) {
	re, err := compile(strings.TrimSpace(pattern))
	if err != nil {
		return false, err
	}
	return re.MatchString(value), nil
}
