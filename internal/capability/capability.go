// Package capability answers an advisory question the materializer itself never needs in
// order to produce correct output: whether a given provisioner's capability policy claims it
// can filter guests on a given hardware-constraint leaf path. This is not part of the result
// the core must produce (§9's open question leaves the decision to drop or keep an
// unfilterable leaf to the caller); the materializer itself keeps every leaf, emits no
// warning, and never consults Checker.
package capability

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/open-policy-agent/opa/v1/rego"
)

// Checker evaluates per-provisioner Rego capability bundles, caching one prepared query per
// provisioner the same way the teacher's regoEval caches one prepared query per metric.
type Checker struct {
	root string
	qc   *queryCache
}

// NewChecker returns a Checker that loads "<root>/<provisioner>.rego" bundles on demand.
func NewChecker(root string) *Checker {
	return &Checker{root: root, qc: newQueryCache()}
}

// Supports reports whether the named provisioner's capability policy allows filtering on leaf.
// A missing bundle is not an error: it means the provisioner declares no capability policy, so
// Supports conservatively returns false (the leaf is "unsupported" from the core's point of
// view, which keeps every leaf regardless).
func (c *Checker) Supports(provisioner, leaf string) (bool, error) {
	query, err := c.qc.Get(provisioner, func(key string) (*rego.PreparedEvalQuery, error) {
		return c.prepare(key)
	})
	if err != nil {
		return false, err
	}
	if query == nil {
		return false, nil
	}

	ctx := context.Background()
	results, err := query.Eval(ctx, rego.EvalInput(map[string]any{"leaf": leaf}))
	if err != nil {
		return false, fmt.Errorf("capability policy evaluation failed for %s: %w", provisioner, err)
	}
	if len(results) == 0 {
		return false, nil
	}

	allow, _ := results[0].Bindings["allow"].(bool)
	return allow, nil
}

func (c *Checker) prepare(provisioner string) (*rego.PreparedEvalQuery, error) {
	bundle := filepath.Join(c.root, provisioner+".rego")

	q, err := rego.New(
		rego.Query("allow = data.capability.allow"),
		rego.Load([]string{bundle}, nil),
	).PrepareForEval(context.Background())
	if err != nil {
		if strings.Contains(err.Error(), "no such file or directory") {
			return nil, nil
		}
		return nil, fmt.Errorf("could not prepare capability policy for %s: %w", provisioner, err)
	}
	return &q, nil
}

// Evict drops the cached query for a provisioner, e.g. after its bundle file changes on disk.
func (c *Checker) Evict(provisioner string) {
	c.qc.Evict(provisioner)
}

type queryCache struct {
	sync.Mutex
	cache map[string]*rego.PreparedEvalQuery
}

func newQueryCache() *queryCache {
	return &queryCache{cache: make(map[string]*rego.PreparedEvalQuery)}
}

type orElseFunc func(key string) (*rego.PreparedEvalQuery, error)

func (qc *queryCache) Get(key string, orElse orElseFunc) (*rego.PreparedEvalQuery, error) {
	qc.Lock()
	defer qc.Unlock()

	if q, ok := qc.cache[key]; ok {
		return q, nil
	}

	q, err := orElse(key)
	if err != nil {
		return nil, err
	}
	qc.cache[key] = q
	return q, nil
}

func (qc *queryCache) Evict(key string) {
	qc.Lock()
	defer qc.Unlock()
	delete(qc.cache, key)
}
