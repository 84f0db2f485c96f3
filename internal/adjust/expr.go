// Package adjust implements the when-expression language and the Adjuster that consumes a
// node's `adjust` rules against a context (spec §4.1).
package adjust

import (
	"fmt"

	"github.com/fmf-tmt/tmtcore/internal/context"
	"github.com/fmf-tmt/tmtcore/internal/rxsearch"
)

// Expr is a parsed when-expression.
type Expr interface {
	Eval(ctx context.Context) (bool, error)
}

type andExpr struct{ left, right Expr }

func (e *andExpr) Eval(ctx context.Context) (bool, error) {
	l, err := e.left.Eval(ctx)
	if err != nil || !l {
		return false, err
	}
	return e.right.Eval(ctx)
}

type orExpr struct{ left, right Expr }

func (e *orExpr) Eval(ctx context.Context) (bool, error) {
	l, err := e.left.Eval(ctx)
	if err != nil {
		return false, err
	}
	if l {
		return true, nil
	}
	return e.right.Eval(ctx)
}

type notExpr struct{ inner Expr }

func (e *notExpr) Eval(ctx context.Context) (bool, error) {
	v, err := e.inner.Eval(ctx)
	if err != nil {
		return false, err
	}
	return !v, nil
}

type definedExpr struct {
	dim  string
	want bool // true for "is defined", false for "is not defined"
}

func (e *definedExpr) Eval(ctx context.Context) (bool, error) {
	return ctx.Has(e.dim) == e.want, nil
}

type cmpExpr struct {
	dim     string
	op      string
	literal string
}

// Eval implements the any-match-over-multi-valued-dimension and undefined-dimension rules of
// spec §4.1: an undefined dimension never raises, comparing false except "!=" which is true
// only when the dimension is defined and differs (i.e. false when undefined, handled here).
func (e *cmpExpr) Eval(ctx context.Context) (bool, error) {
	values := ctx.Values(e.dim)
	if len(values) == 0 {
		return false, nil
	}

	for _, v := range values {
		ok, err := e.compare(v)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (e *cmpExpr) compare(value string) (bool, error) {
	switch e.op {
	case "==":
		if cmp, ordered := context.Compare(value, e.literal); ordered {
			return cmp == 0, nil
		}
		return value == e.literal, nil
	case "!=":
		if cmp, ordered := context.Compare(value, e.literal); ordered {
			return cmp != 0, nil
		}
		return value != e.literal, nil
	case "<", "<=", ">", ">=":
		cmp, ordered := context.Compare(value, e.literal)
		if !ordered {
			// Arbitrary string dimensions only compare for equality (spec §3); an
			// ordering operator applied to unordered values simply never matches.
			return false, nil
		}
		switch e.op {
		case "<":
			return cmp < 0, nil
		case "<=":
			return cmp <= 0, nil
		case ">":
			return cmp > 0, nil
		case ">=":
			return cmp >= 0, nil
		}
	case "~":
		return rxsearch.Match(e.literal, value)
	case "!~":
		m, err := rxsearch.Match(e.literal, value)
		return !m, err
	}
	return false, fmt.Errorf("unsupported operator %q", e.op)
}
