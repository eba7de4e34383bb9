// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package refactor runs rewrite rules over a whole program tree.
//
// The host hands each method declaration of the program to every rule in
// turn. A rule mutates the shared tree in place and may additionally
// return a replacement for the visited method.
package refactor

import (
	"bytes"

	"golang.org/x/xerrors"

	"rsc.io/routemig/diff"
	"rsc.io/routemig/syntax"
)

// A Rule rewrites one method declaration at a time.
//
// Refactor returns a member to put in place of m, or nil if m stays where
// it is. Rules may have already mutated the tree when they return nil.
// An error wrapping a *syntax.Anomaly aborts the whole pass; any other
// error is recorded and the pass continues.
type Rule interface {
	Refactor(m *syntax.MethodDecl) (syntax.Member, error)
}

// Apply runs rules over every method of every class of p, in declaration
// order. The member list of each class is read before any rule runs on
// it, so members added or replaced by a rule are not visited again.
//
// If a rule reports a structural anomaly, Apply stops and returns it,
// wrapped with the class and method being visited. Otherwise it returns
// an *ErrorList of the rule errors, or nil.
func Apply(p *syntax.Program, rules ...Rule) error {
	var errs ErrorList
	for _, c := range p.Classes {
		if c == nil {
			return xerrors.Errorf("applying rules: %w", &syntax.Anomaly{Node: p, Msg: "nil class"})
		}
		members := append([]syntax.Member(nil), c.Members...)
		for _, mem := range members {
			m, ok := mem.(*syntax.MethodDecl)
			if !ok {
				continue
			}
			for _, r := range rules {
				repl, err := invoke(r, m)
				if err != nil {
					var a *syntax.Anomaly
					if xerrors.As(err, &a) {
						return xerrors.Errorf("%s::%s: %w", c.Name, m.Name, err)
					}
					errs.Add(&Error{Class: c.Name, Method: m.Name, Msg: err.Error()})
					continue
				}
				if repl == nil {
					continue
				}
				replace(c, m, repl)
				next, ok := repl.(*syntax.MethodDecl)
				if !ok {
					// The method is gone; later rules have nothing to visit.
					break
				}
				m = next
			}
		}
	}
	return errs.Err()
}

// invoke calls r on m, turning an anomaly panic into an error.
func invoke(r Rule, m *syntax.MethodDecl) (repl syntax.Member, err error) {
	defer syntax.Recover(&err)
	return r.Refactor(m)
}

func replace(c *syntax.ClassDecl, old, new syntax.Member) {
	for i, mem := range c.Members {
		if mem == old {
			c.Members[i] = new
			return
		}
	}
}

// ApplyDiff is like Apply but also returns the diff between the dumps of
// p before and after the rules ran. The diff is returned even when Apply
// fails, showing the mutations made before the failure.
func ApplyDiff(p *syntax.Program, rules ...Rule) ([]byte, error) {
	var before bytes.Buffer
	if err := syntax.Dump(&before, p); err != nil {
		return nil, err
	}
	err := Apply(p, rules...)
	d, derr := Diff(before.Bytes(), p)
	if err != nil {
		return d, err
	}
	return d, derr
}

// Diff returns the unified diff between an earlier dump of a program and
// the current state of p, or nil if nothing changed.
func Diff(before []byte, p *syntax.Program) ([]byte, error) {
	var after bytes.Buffer
	if err := syntax.Dump(&after, p); err != nil {
		return nil, err
	}
	return diff.Diff("before", before, "after", after.Bytes())
}
