// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"rsc.io/routemig/syntax"
)

const programYAML = `
classes:
  - name: A
    members:
      - property: cache
      - method: one
        body: [{return: x}]
      - method: two
        body: []
  - name: B
    members:
      - method: three
        abstract: true
`

func load(t *testing.T) *syntax.Program {
	t.Helper()
	p, err := syntax.Decode([]byte(programYAML))
	require.NoError(t, err)
	return p
}

// ruleFunc adapts a function to the Rule interface.
type ruleFunc func(m *syntax.MethodDecl) (syntax.Member, error)

func (f ruleFunc) Refactor(m *syntax.MethodDecl) (syntax.Member, error) { return f(m) }

func TestApplyVisitsMethodsInOrder(t *testing.T) {
	p := load(t)
	var visited []string
	err := Apply(p, ruleFunc(func(m *syntax.MethodDecl) (syntax.Member, error) {
		visited = append(visited, m.Name)
		return nil, nil
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, visited)
}

func TestApplyReplaces(t *testing.T) {
	p := load(t)
	var second []string
	rename := ruleFunc(func(m *syntax.MethodDecl) (syntax.Member, error) {
		if m.Name != "two" {
			return nil, nil
		}
		return &syntax.MethodDecl{Name: "renamed", Body: m.Body}, nil
	})
	record := ruleFunc(func(m *syntax.MethodDecl) (syntax.Member, error) {
		second = append(second, m.Name)
		return nil, nil
	})
	require.NoError(t, Apply(p, rename, record))
	assert.Equal(t, []string{"one", "renamed", "three"}, second)
	assert.Equal(t, "renamed", p.Classes[0].Members[2].(*syntax.MethodDecl).Name)
	assert.Len(t, p.Classes[0].Members, 3)
}

func TestApplyReplaceWithProperty(t *testing.T) {
	p := load(t)
	var second []string
	toProperty := ruleFunc(func(m *syntax.MethodDecl) (syntax.Member, error) {
		if m.Name != "one" {
			return nil, nil
		}
		return &syntax.Property{Name: "one"}, nil
	})
	record := ruleFunc(func(m *syntax.MethodDecl) (syntax.Member, error) {
		second = append(second, m.Name)
		return nil, nil
	})
	require.NoError(t, Apply(p, toProperty, record))
	assert.Equal(t, []string{"two", "three"}, second)
	assert.IsType(t, &syntax.Property{}, p.Classes[0].Members[1])
}

func TestApplyCollectsErrors(t *testing.T) {
	p := load(t)
	var visited int
	err := Apply(p, ruleFunc(func(m *syntax.MethodDecl) (syntax.Member, error) {
		visited++
		return nil, errors.New("cannot migrate")
	}))
	require.Error(t, err)
	assert.Equal(t, 3, visited, "ordinary errors must not stop the pass")

	var list *ErrorList
	require.True(t, xerrors.As(err, &list))
	assert.Equal(t, 3, list.Len())
	assert.Equal(t, "A::one: cannot migrate\nA::two: cannot migrate\nB::three: cannot migrate", err.Error())
}

func TestApplyAbortsOnAnomaly(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
	}{
		{"panic", ruleFunc(func(m *syntax.MethodDecl) (syntax.Member, error) {
			// Walking a nil statement panics with an anomaly.
			m.Body = append(m.Body, nil)
			syntax.Find(m, func(syntax.Node) bool { return false })
			return nil, nil
		})},
		{"error", ruleFunc(func(m *syntax.MethodDecl) (syntax.Member, error) {
			return nil, xerrors.Errorf("rule: %w", &syntax.Anomaly{Node: m, Msg: "bad body"})
		})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := load(t)
			var visited []string
			record := ruleFunc(func(m *syntax.MethodDecl) (syntax.Member, error) {
				visited = append(visited, m.Name)
				return nil, nil
			})
			err := Apply(p, tt.rule, record)
			require.Error(t, err)
			var a *syntax.Anomaly
			assert.True(t, xerrors.As(err, &a))
			assert.True(t, strings.HasPrefix(err.Error(), "A::one: "), err.Error())
			assert.Empty(t, visited, "pass must stop at the first anomaly")
		})
	}
}

func TestApplyPassesOtherPanics(t *testing.T) {
	p := load(t)
	assert.PanicsWithValue(t, "boom", func() {
		Apply(p, ruleFunc(func(m *syntax.MethodDecl) (syntax.Member, error) {
			panic("boom")
		}))
	})
}

func TestApplyDiff(t *testing.T) {
	p := load(t)
	d, err := ApplyDiff(p, ruleFunc(func(m *syntax.MethodDecl) (syntax.Member, error) {
		if m.Name == "one" {
			m.AddTag(syntax.NewTag("Route", syntax.Attr{Key: "path", Value: "a/one"}))
		}
		return nil, nil
	}))
	require.NoError(t, err)
	want := "diff before after\n" +
		"--- before\n" +
		"+++ after\n" +
		"@@ -1,6 +1,7 @@\n" +
		" class A\n" +
		" \tproperty public $cache\n" +
		" \tmethod public one()\n" +
		"+\t\ttag Route path=\"a/one\"\n" +
		" \t\treturn \"x\"\n" +
		" \tmethod public two()\n" +
		" class B\n"
	assert.Equal(t, want, string(d))

	d, err = ApplyDiff(p)
	require.NoError(t, err)
	assert.Nil(t, d)
}
