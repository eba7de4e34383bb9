// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package route

import (
	"strings"

	"rsc.io/routemig/syntax"
)

// A TypeResolver answers return-type questions about methods.
type TypeResolver interface {
	// DeclaredReturnTypes returns the types m is known to return,
	// or nil if they cannot be determined from the tree.
	DeclaredReturnTypes(m *syntax.MethodDecl) []string

	// ReflectReturnType asks the target runtime for the declared return
	// type of class::method. It is only consulted for methods outside
	// the program tree, or whose return type the tree does not give.
	ReflectReturnType(class, method string) (string, bool)
}

// Classes is the subset of the whole-program registry the resolver needs.
type Classes interface {
	FindClass(name string) *syntax.ClassDecl
	FindClassByShortName(short string) *syntax.ClassDecl
	Method(c *syntax.ClassDecl, name string) *syntax.MethodDecl
	IsSubtype(name, of string) bool
}

// Reflection is a table of return types keyed by "Class::method",
// standing in for the runtime reflection of the target language.
type Reflection map[string]string

// ReturnType returns the recorded return type of class::method.
func (r Reflection) ReturnType(class, method string) (string, bool) {
	if typ, ok := r[CleanClass(class)+"::"+method]; ok {
		return typ, true
	}
	// Class and method names are case-insensitive in the target language.
	for k, typ := range r {
		c, m, _ := strings.Cut(k, "::")
		if SameClass(c, class) && strings.EqualFold(m, method) {
			return typ, true
		}
	}
	return "", false
}

// StaticTypes is the default TypeResolver. It reads declared return types
// from the tree, inferring them from the method body when none are
// declared, and consults Reflection for everything else.
type StaticTypes struct {
	Reflection Reflection
}

// DeclaredReturnTypes returns the declared return types of m, without
// nullable markers. If m declares none, it returns the classes
// instantiated by its return statements, either directly
// (return new X) or through a local variable ($v = new X; return $v).
func (t *StaticTypes) DeclaredReturnTypes(m *syntax.MethodDecl) []string {
	if len(m.ReturnTypes) > 0 {
		var list []string
		for _, typ := range m.ReturnTypes {
			list = append(list, CleanClass(strings.TrimPrefix(typ, "?")))
		}
		return list
	}

	vars := make(map[string][]string)
	var list []string
	seen := make(map[string]bool)
	add := func(typ string) {
		typ = CleanClass(typ)
		if !seen[strings.ToLower(typ)] {
			seen[strings.ToLower(typ)] = true
			list = append(list, typ)
		}
	}
	syntax.Inspect(m, func(n syntax.Node) bool {
		switch n := n.(type) {
		case *syntax.Assign:
			v, ok1 := n.Target.(*syntax.Variable)
			x, ok2 := n.Value.(*syntax.New)
			if ok1 && ok2 {
				vars[v.Name] = append(vars[v.Name], x.Class)
			}
		case *syntax.Return:
			switch x := n.X.(type) {
			case *syntax.New:
				add(x.Class)
			case *syntax.Variable:
				for _, typ := range vars[x.Name] {
					add(typ)
				}
			}
		}
		return true
	})
	return list
}

// ReflectReturnType implements TypeResolver.
func (t *StaticTypes) ReflectReturnType(class, method string) (string, bool) {
	return t.Reflection.ReturnType(class, method)
}

// CleanClass removes a leading namespace separator from a class name.
func CleanClass(name string) string {
	return strings.TrimPrefix(name, `\`)
}

// SameClass reports whether a and b name the same class.
func SameClass(a, b string) bool {
	return strings.EqualFold(CleanClass(a), CleanClass(b))
}
