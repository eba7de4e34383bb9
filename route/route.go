// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package route turns route-producing expressions into route descriptors.
package route

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"rsc.io/routemig/syntax"
)

// A Descriptor is a resolved route registration.
type Descriptor struct {
	Path    string
	Methods []string // sorted, upper case; empty means any method
	Class   string
	Method  string
}

// A Resolver recognizes and resolves route-producing expressions.
type Resolver struct {
	// RouteClass is the route type instantiated by registrations.
	RouteClass string

	// RouterClass is the router contract; static factories must
	// return something assignable to it.
	RouterClass string

	// RouterTypes are further types known to implement the router
	// contract outside the program, such as the route list type.
	RouterTypes []string

	// DefaultAction is the handler method used when a registration
	// names only the handler class.
	DefaultAction string

	// HandlerSuffix and ActionPrefixes resolve "Presenter:action" targets.
	HandlerSuffix  string
	ActionPrefixes []string

	// HTTPVerbs are the static factory names that restrict a wrapped
	// route to one HTTP method, such as get or post.
	HTTPVerbs []string

	Classes Classes
	Types   TypeResolver
}

// IsRouteExpr reports whether x structurally produces a route:
// an instantiation of a router type, or a static call whose return type
// is the router contract, the route type, one of RouterTypes, or a
// subtype of any of them.
func (r *Resolver) IsRouteExpr(x syntax.Expr) bool {
	switch x := x.(type) {
	case *syntax.New:
		return r.isRouter(x.Class)
	case *syntax.StaticCall:
		if _, ok := r.verbCall(x); ok {
			return true
		}
		return r.returnsRouter(x)
	}
	return false
}

// Resolve returns the descriptor for x. It reports false when x is not a
// route instantiation, when a required field is missing or not a
// literal, and when the handler cannot be found.
func (r *Resolver) Resolve(x syntax.Expr) (*Descriptor, bool) {
	switch x := x.(type) {
	case *syntax.New:
		return r.resolveNew(x, nil)
	case *syntax.StaticCall:
		if n, ok := r.verbCall(x); ok {
			return r.resolveNew(n, []string{strings.ToUpper(x.Method)})
		}
	}
	return nil, false
}

func (r *Resolver) isRouter(class string) bool {
	for _, typ := range r.routerTypes() {
		if SameClass(class, typ) {
			return true
		}
	}
	if r.Classes == nil {
		return false
	}
	for _, typ := range r.routerTypes() {
		if r.Classes.IsSubtype(CleanClass(class), CleanClass(typ)) {
			return true
		}
	}
	return false
}

func (r *Resolver) routerTypes() []string {
	return append([]string{r.RouterClass, r.RouteClass}, r.RouterTypes...)
}

func (r *Resolver) isRoute(class string) bool {
	return SameClass(class, r.RouteClass) ||
		r.Classes != nil && r.Classes.IsSubtype(CleanClass(class), CleanClass(r.RouteClass))
}

// verbCall matches Factory::get(new Route(...)) and returns the wrapped
// instantiation.
func (r *Resolver) verbCall(x *syntax.StaticCall) (*syntax.New, bool) {
	if len(x.Args) == 0 {
		return nil, false
	}
	isVerb := false
	for _, v := range r.HTTPVerbs {
		if strings.EqualFold(v, x.Method) {
			isVerb = true
			break
		}
	}
	if !isVerb {
		return nil, false
	}
	n, ok := x.Args[0].(*syntax.New)
	if !ok || !r.isRoute(n.Class) {
		return nil, false
	}
	return n, true
}

// returnsRouter reports whether the static factory x returns a router.
// The declared return type is used when the tree knows it;
// reflection is the fallback.
func (r *Resolver) returnsRouter(x *syntax.StaticCall) bool {
	if r.Types == nil {
		return false
	}
	if r.Classes != nil {
		if c := r.Classes.FindClass(CleanClass(x.Class)); c != nil {
			if m := r.Classes.Method(c, x.Method); m != nil {
				if types := r.Types.DeclaredReturnTypes(m); len(types) > 0 {
					for _, typ := range types {
						if r.isRouter(typ) {
							return true
						}
					}
					return false
				}
			}
		}
	}
	typ, ok := r.Types.ReflectReturnType(x.Class, x.Method)
	return ok && r.isRouter(typ)
}

func (r *Resolver) resolveNew(n *syntax.New, methods []string) (*Descriptor, bool) {
	if !r.isRoute(n.Class) || len(n.Args) < 2 {
		return nil, false
	}
	lit, ok := n.Args[0].(*syntax.StringLit)
	if !ok {
		return nil, false
	}
	path := normalizePath(lit.Value)
	if path == "" {
		return nil, false
	}

	d := &Descriptor{Path: path, Methods: sortMethods(methods)}
	switch target := n.Args[1].(type) {
	default:
		return nil, false

	case *syntax.ClassRef:
		d.Class = CleanClass(target.Name)
		d.Method = r.DefaultAction
		if len(n.Args) > 2 {
			// A third argument that is not a literal is a route flag,
			// not a method name.
			if m, ok := n.Args[2].(*syntax.StringLit); ok && m.Value != "" {
				d.Method = m.Value
			}
		}

	case *syntax.StringLit:
		class, method, ok := r.resolveTarget(target.Value)
		if !ok {
			return nil, false
		}
		d.Class, d.Method = class, method
	}
	if d.Class == "" || d.Method == "" {
		return nil, false
	}
	return d, true
}

// resolveTarget resolves a "Module:Presenter:action" target to a handler
// class and method, using the first action prefix with an existing method.
func (r *Resolver) resolveTarget(target string) (class, method string, ok bool) {
	if r.Classes == nil {
		return "", "", false
	}
	presenter, action, ok := cutLast(target, ":")
	if !ok {
		return "", "", false
	}
	if _, p, ok := cutLast(presenter, ":"); ok {
		presenter = p
	}
	if presenter == "" {
		return "", "", false
	}
	if action == "" {
		action = "default"
	}
	c := r.Classes.FindClassByShortName(presenter + r.HandlerSuffix)
	if c == nil {
		return "", "", false
	}
	for _, prefix := range r.ActionPrefixes {
		if m := r.Classes.Method(c, prefix+upperFirst(action)); m != nil {
			return c.Name, m.Name, true
		}
	}
	return "", "", false
}

// normalizePath rewrites <param> placeholders as {param}.
func normalizePath(path string) string {
	return strings.NewReplacer("<", "{", ">", "}").Replace(path)
}

func sortMethods(list []string) []string {
	if len(list) == 0 {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, m := range list {
		m = strings.ToUpper(m)
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func cutLast(s, sep string) (before, after string, ok bool) {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[:i], s[i+len(sep):], true
	}
	return s, "", false
}
