// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import "strings"

// A Tag is structured metadata attached to a method declaration,
// later rendered by an external serializer as an annotation of type Kind.
// Tags are values: NewTag copies its arguments and nothing modifies a Tag
// afterward.
type Tag struct {
	Kind  string
	attrs []Attr
}

// An Attr is one attribute of a tag. It holds either a single Value
// or, when List is non-nil, a set of values.
type Attr struct {
	Key   string
	Value string
	List  []string
}

// IsList reports whether a holds a set of values.
func (a Attr) IsList() bool { return a.List != nil }

// NewTag returns a tag of the given kind with attrs in order.
func NewTag(kind string, attrs ...Attr) *Tag {
	t := &Tag{Kind: kind, attrs: make([]Attr, len(attrs))}
	for i, a := range attrs {
		if a.List != nil {
			a.List = append([]string{}, a.List...)
		}
		t.attrs[i] = a
	}
	return t
}

// Attrs returns a copy of the attributes of t, in order.
func (t *Tag) Attrs() []Attr {
	out := make([]Attr, len(t.attrs))
	for i, a := range t.attrs {
		if a.List != nil {
			a.List = append([]string{}, a.List...)
		}
		out[i] = a
	}
	return out
}

// Lookup returns a copy of the attribute named key.
func (t *Tag) Lookup(key string) (Attr, bool) {
	for _, a := range t.attrs {
		if a.Key == key {
			if a.List != nil {
				a.List = append([]string{}, a.List...)
			}
			return a, true
		}
	}
	return Attr{}, false
}

// HasTag reports whether m carries a tag of the given kind.
func (m *MethodDecl) HasTag(kind string) bool {
	return m.Tag(kind) != nil
}

// Tag returns the tag of the given kind on m, or nil.
// Kinds are class names: they match case-insensitively and
// regardless of a leading backslash.
func (m *MethodDecl) Tag(kind string) *Tag {
	for _, t := range m.Tags {
		if sameKind(t.Kind, kind) {
			return t
		}
	}
	return nil
}

// AddTag attaches t to m unless m already has a tag of the same kind.
// It reports whether t was added.
func (m *MethodDecl) AddTag(t *Tag) bool {
	if m.HasTag(t.Kind) {
		return false
	}
	m.Tags = append(m.Tags, t)
	return true
}

func sameKind(a, b string) bool {
	return strings.EqualFold(strings.TrimPrefix(a, `\`), strings.TrimPrefix(b, `\`))
}
