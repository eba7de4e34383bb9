// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package registry indexes the classes of a whole program by name.
package registry

import (
	"strings"

	"rsc.io/routemig/syntax"
)

// An Index provides name-based lookup of the classes of a program.
//
// Class and method names are matched case-insensitively, as in the target
// language. Results that can hold several classes are in declaration order.
//
// The Index is built once and not modified afterward, so concurrent
// lookups are safe. It holds pointers into the program, which callers
// may keep mutating (adding tags, removing statements); adding or
// removing classes requires a new Index.
type Index struct {
	classes []*syntax.ClassDecl
	byName  map[string]*syntax.ClassDecl
	byShort map[string][]*syntax.ClassDecl
}

// New returns an index of the classes in p.
func New(p *syntax.Program) *Index {
	x := &Index{
		byName:  make(map[string]*syntax.ClassDecl),
		byShort: make(map[string][]*syntax.ClassDecl),
	}
	for _, c := range p.Classes {
		key := strings.ToLower(clean(c.Name))
		if x.byName[key] != nil {
			// First declaration wins, as for a redeclared class.
			continue
		}
		x.classes = append(x.classes, c)
		x.byName[key] = c
		short := strings.ToLower(c.ShortName())
		x.byShort[short] = append(x.byShort[short], c)
	}
	return x
}

func clean(name string) string {
	return strings.TrimPrefix(name, `\`)
}

// Classes returns every indexed class in declaration order.
func (x *Index) Classes() []*syntax.ClassDecl {
	return append([]*syntax.ClassDecl(nil), x.classes...)
}

// FindClass returns the class with the given fully qualified name, or nil.
func (x *Index) FindClass(name string) *syntax.ClassDecl {
	return x.byName[strings.ToLower(clean(name))]
}

// FindClassByShortName returns the first class whose name without
// namespace is short, or nil.
func (x *Index) FindClassByShortName(short string) *syntax.ClassDecl {
	list := x.byShort[strings.ToLower(short)]
	if len(list) == 0 {
		return nil
	}
	return list[0]
}

// FindClassesBySuffix returns the classes whose name ends in suffix.
func (x *Index) FindClassesBySuffix(suffix string) []*syntax.ClassDecl {
	suffix = strings.ToLower(suffix)
	var list []*syntax.ClassDecl
	for _, c := range x.classes {
		if strings.HasSuffix(strings.ToLower(c.Name), suffix) {
			list = append(list, c)
		}
	}
	return list
}

// Method returns the method of c with the given name, or nil.
// Inherited methods are not considered.
func (x *Index) Method(c *syntax.ClassDecl, name string) *syntax.MethodDecl {
	if c == nil {
		return nil
	}
	for _, m := range c.Methods() {
		if strings.EqualFold(m.Name, name) {
			return m
		}
	}
	return nil
}

// IsSubtype reports whether the class or interface name extends or
// implements of, directly or through its ancestors in the program.
// A name is not its own subtype.
func (x *Index) IsSubtype(name, of string) bool {
	of = strings.ToLower(clean(of))
	seen := make(map[string]bool)
	var walk func(string) bool
	walk = func(name string) bool {
		key := strings.ToLower(clean(name))
		if seen[key] {
			return false
		}
		seen[key] = true
		c := x.byName[key]
		if c == nil {
			return false
		}
		parents := c.Implements
		if c.Extends != "" {
			parents = append([]string{c.Extends}, parents...)
		}
		for _, p := range parents {
			if strings.ToLower(clean(p)) == of || walk(p) {
				return true
			}
		}
		return false
	}
	return walk(name)
}
