// Copyright 2025 Fraunhofer AISEC:
// This code is licensed under the terms of the Apache License, Version 2.0.
// See the LICENSE file in this project for details.

// Package xerrors defines the error taxonomy shared by every materialization-core package:
// a small closed set of error kinds, each carrying enough structured context (test name,
// rule, key) to report a per-test failure without aborting the siblings.
package xerrors

import (
	"errors"
	"fmt"
)

// Kind is one of the error kinds named by the materialization core.
type Kind string

const (
	// KindSchema marks a value that violates a key's declared type.
	KindSchema Kind = "schema"
	// KindSyntax marks a constraint string, when-expression, or template that cannot be parsed.
	KindSyntax Kind = "syntax"
	// KindSemantic marks well-formed input that is internally inconsistent.
	KindSemantic Kind = "semantic"
	// KindResolution marks a policy file outside its root, or a symbolic name that wasn't found.
	KindResolution Kind = "resolution"
	// KindRender marks a template evaluation failure.
	KindRender Kind = "render"
	// KindResult marks a malformed or schema-violating custom result file.
	KindResult Kind = "result"
	// KindConfig marks CLI/environment misconfiguration; not part of the spec's taxonomy, but
	// needed so climd has somewhere to put its own failures.
	KindConfig Kind = "config"
)

// Error is the concrete type behind every error kind the core raises. Callers recover the
// kind with errors.As and a *Error, the same way db errors are recovered upstream via
// errors.Is against sentinel values.
type Error struct {
	Kind Kind
	// Test is the test name the error applies to, if any.
	Test string
	// Rule names the adjust/policy rule under evaluation, if any.
	Rule string
	// Key names the test key under evaluation, if any.
	Key string
	Msg string
	Err error
}

func (e *Error) Error() string {
	msg := string(e.Kind) + ": " + e.Msg
	if e.Test != "" {
		msg = e.Test + ": " + msg
	}
	if e.Key != "" {
		msg += fmt.Sprintf(" (key=%s)", e.Key)
	}
	if e.Rule != "" {
		msg += fmt.Sprintf(" (rule=%s)", e.Rule)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any target *Error of the same Kind, so callers can test a kind with
// errors.Is(err, &xerrors.Error{Kind: xerrors.KindSchema}).
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Schema builds a KindSchema error for the given key.
func Schema(key, msg string, err error) *Error {
	e := newError(KindSchema, msg, err)
	e.Key = key
	return e
}

// Syntax builds a KindSyntax error, optionally naming the offending rule.
func Syntax(rule, msg string, err error) *Error {
	e := newError(KindSyntax, msg, err)
	e.Rule = rule
	return e
}

// Semantic builds a KindSemantic error.
func Semantic(msg string, err error) *Error {
	return newError(KindSemantic, msg, err)
}

// Resolution builds a KindResolution error for policy path/name resolution failures.
func Resolution(msg string, err error) *Error {
	return newError(KindResolution, msg, err)
}

// Render builds a KindRender error naming both the policy rule and the key being rewritten.
func Render(rule, key, msg string, err error) *Error {
	e := newError(KindRender, msg, err)
	e.Rule = rule
	e.Key = key
	return e
}

// Result builds a KindResult error for a malformed custom result file.
func Result(test, msg string, err error) *Error {
	e := newError(KindResult, msg, err)
	e.Test = test
	return e
}

// Config builds a KindConfig error for CLI/environment misconfiguration.
func Config(msg string, err error) *Error {
	return newError(KindConfig, msg, err)
}

// WithTest returns a copy of e annotated with the given test name.
func (e *Error) WithTest(test string) *Error {
	cp := *e
	cp.Test = test
	return &cp
}

// Report collects per-test failures without aborting materialization of sibling tests
// (spec §7 propagation rule): errors inside one test never stop the run, but the run as a
// whole must surface every failure it accumulated.
type Report struct {
	// Failures maps test name to the error that aborted its materialization.
	Failures map[string]error
	// Warnings holds the non-fatal messages recorded through Warn. materialize.Tree records
	// none: unknown leaf paths, adjust rules that never fire and hardware constraints a
	// provisioner cannot honor produce no warning.
	Warnings []string
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{Failures: make(map[string]error)}
}

// Fail records a fatal error for the named test. It does not stop the caller's loop; the
// caller is expected to continue with the next test.
func (r *Report) Fail(test string, err error) {
	r.Failures[test] = err
}

// Warn records a non-fatal warning.
func (r *Report) Warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// OK reports whether no test failed.
func (r *Report) OK() bool {
	return len(r.Failures) == 0
}
