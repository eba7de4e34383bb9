// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package route_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsc.io/routemig/registry"
	"rsc.io/routemig/route"
	"rsc.io/routemig/syntax"
)

const (
	routeClass  = `Nette\Application\Routers\Route`
	routerClass = `Nette\Application\IRouter`
)

const programYAML = `
classes:
  - name: App\HomePresenter
    members:
      - method: renderDefault
      - method: actionEdit
      - method: renderEdit
  - name: App\Admin\DashboardPresenter
    members:
      - method: renderDefault
  - name: App\Routes
    members:
      - method: admin
        visibility: public
        returns: [Nette\Application\IRouter]
        body: [{return: {new: Nette\Application\Routers\Route, args: [admin, {class: App\Admin\DashboardPresenter}]}}]
      - method: inferred
        body:
          - assign: {var: r}
            value: {new: App\CustomRoute}
          - return: {var: r}
      - method: text
        returns: [string]
        body: [{return: hello}]
      - method: undeclared
        body: []
  - name: App\CustomRoute
    extends: Nette\Application\Routers\Route
`

func newResolver(t *testing.T, refl route.Reflection) *route.Resolver {
	t.Helper()
	prog, err := syntax.Decode([]byte(programYAML))
	require.NoError(t, err)
	return &route.Resolver{
		RouteClass:     routeClass,
		RouterClass:    routerClass,
		DefaultAction:  "run",
		HandlerSuffix:  "Presenter",
		ActionPrefixes: []string{"action", "render"},
		HTTPVerbs:      []string{"get", "post"},
		Classes:        registry.New(prog),
		Types:          &route.StaticTypes{Reflection: refl},
	}
}

func newRoute(args ...syntax.Expr) *syntax.New {
	return &syntax.New{Class: routeClass, Args: args}
}

func str(s string) *syntax.StringLit { return &syntax.StringLit{Value: s} }

func TestResolveDefaultAction(t *testing.T) {
	r := newResolver(t, nil)
	d, ok := r.Resolve(newRoute(str("home"), &syntax.ClassRef{Name: "Home"}))
	require.True(t, ok)
	assert.Equal(t, &route.Descriptor{Path: "home", Class: "Home", Method: "run"}, d)
}

func TestResolveExplicitMethod(t *testing.T) {
	r := newResolver(t, nil)
	d, ok := r.Resolve(newRoute(str("about/<id>"), &syntax.ClassRef{Name: `\About`}, str("view")))
	require.True(t, ok)
	assert.Equal(t, &route.Descriptor{Path: "about/{id}", Class: "About", Method: "view"}, d)

	// A flag constant in third position is not a method name.
	d, ok = r.Resolve(newRoute(str("about"), &syntax.ClassRef{Name: "About"}, &syntax.ClassRef{Name: "Flags"}))
	require.True(t, ok)
	assert.Equal(t, "run", d.Method)
}

func TestResolvePresenterTarget(t *testing.T) {
	r := newResolver(t, nil)
	tests := []struct {
		target string
		class  string
		method string
	}{
		{"Home:edit", `App\HomePresenter`, "actionEdit"},
		{"Home:", `App\HomePresenter`, "renderDefault"},
		{"Admin:Dashboard:default", `App\Admin\DashboardPresenter`, "renderDefault"},
	}
	for _, tt := range tests {
		d, ok := r.Resolve(newRoute(str("p"), str(tt.target)))
		if assert.True(t, ok, tt.target) {
			assert.Equal(t, tt.class, d.Class, tt.target)
			assert.Equal(t, tt.method, d.Method, tt.target)
		}
	}
	for _, target := range []string{"Home", "Home:missing", "Nope:default", ":default"} {
		_, ok := r.Resolve(newRoute(str("p"), str(target)))
		assert.False(t, ok, target)
	}
}

func TestResolveMisses(t *testing.T) {
	r := newResolver(t, nil)
	misses := map[string]syntax.Expr{
		"no args":         newRoute(),
		"path only":       newRoute(str("home")),
		"variable path":   newRoute(&syntax.Variable{Name: "p"}, &syntax.ClassRef{Name: "Home"}),
		"empty path":      newRoute(str(""), &syntax.ClassRef{Name: "Home"}),
		"variable target": newRoute(str("home"), &syntax.Variable{Name: "c"}),
		"other class":     &syntax.New{Class: `App\Other`, Args: []syntax.Expr{str("home"), &syntax.ClassRef{Name: "Home"}}},
		"plain factory":   &syntax.StaticCall{Class: `App\Routes`, Method: "admin"},
		"bare variable":   &syntax.Variable{Name: "route"},
	}
	for name, x := range misses {
		d, ok := r.Resolve(x)
		assert.False(t, ok, name)
		assert.Nil(t, d, name)
	}
}

func TestResolveVerb(t *testing.T) {
	r := newResolver(t, nil)
	call := &syntax.StaticCall{Class: `App\RouteFactory`, Method: "Post", Args: []syntax.Expr{
		newRoute(str("login"), &syntax.ClassRef{Name: "Sign"}, str("in")),
	}}
	require.True(t, r.IsRouteExpr(call))
	d, ok := r.Resolve(call)
	require.True(t, ok)
	assert.Equal(t, &route.Descriptor{Path: "login", Methods: []string{"POST"}, Class: "Sign", Method: "in"}, d)
}

func TestIsRouteExpr(t *testing.T) {
	r := newResolver(t, route.Reflection{
		`Vendor\Routes::make`:   routerClass,
		`Vendor\Routes::helper`: "string",
	})
	tests := []struct {
		name string
		x    syntax.Expr
		want bool
	}{
		{"route instantiation", newRoute(), true},
		{"subclass instantiation", &syntax.New{Class: `App\CustomRoute`}, true},
		{"other instantiation", &syntax.New{Class: `App\Other`}, false},
		{"declared router return", &syntax.StaticCall{Class: `App\Routes`, Method: "admin"}, true},
		{"inferred router return", &syntax.StaticCall{Class: `App\Routes`, Method: "inferred"}, true},
		{"declared non-router return", &syntax.StaticCall{Class: `App\Routes`, Method: "text"}, false},
		{"reflected router return", &syntax.StaticCall{Class: `\Vendor\Routes`, Method: "MAKE"}, true},
		{"reflected other return", &syntax.StaticCall{Class: `Vendor\Routes`, Method: "helper"}, false},
		{"unknown to reflection", &syntax.StaticCall{Class: `Vendor\Routes`, Method: "missing"}, false},
		{"undeclared, not reflected", &syntax.StaticCall{Class: `App\Routes`, Method: "undeclared"}, false},
		{"variable", &syntax.Variable{Name: "r"}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.IsRouteExpr(tt.x), tt.name)
	}
}

// countingTypes records reflection lookups.
type countingTypes struct {
	route.StaticTypes
	reflected []string
}

func (c *countingTypes) ReflectReturnType(class, method string) (string, bool) {
	c.reflected = append(c.reflected, class+"::"+method)
	return c.StaticTypes.ReflectReturnType(class, method)
}

func TestReflectionOnlyAsFallback(t *testing.T) {
	r := newResolver(t, nil)
	types := &countingTypes{StaticTypes: route.StaticTypes{Reflection: route.Reflection{
		`App\Routes::undeclared`: routerClass,
	}}}
	r.Types = types

	assert.True(t, r.IsRouteExpr(&syntax.StaticCall{Class: `App\Routes`, Method: "admin"}))
	assert.Empty(t, types.reflected, "declared return type must not hit reflection")

	assert.True(t, r.IsRouteExpr(&syntax.StaticCall{Class: `App\Routes`, Method: "undeclared"}))
	assert.Equal(t, []string{`App\Routes::undeclared`}, types.reflected)
}

func TestDeclaredReturnTypes(t *testing.T) {
	types := &route.StaticTypes{}
	m := &syntax.MethodDecl{ReturnTypes: []string{`?\App\RouteList`, "null"}}
	assert.Equal(t, []string{`App\RouteList`, "null"}, types.DeclaredReturnTypes(m))

	m = &syntax.MethodDecl{Body: []syntax.Stmt{
		&syntax.If{
			Cond: &syntax.Variable{Name: "x"},
			Then: []syntax.Stmt{&syntax.Return{X: &syntax.New{Class: "A"}}},
		},
		&syntax.ExprStmt{X: &syntax.Assign{Target: &syntax.Variable{Name: "b"}, Value: &syntax.New{Class: "B"}}},
		&syntax.Return{X: &syntax.Variable{Name: "b"}},
		&syntax.Return{X: &syntax.New{Class: `\A`}},
	}}
	assert.Equal(t, []string{"A", "B"}, types.DeclaredReturnTypes(m))
	assert.Empty(t, types.DeclaredReturnTypes(&syntax.MethodDecl{}))
}

func TestIsRouteExprRouterTypes(t *testing.T) {
	const routeList = `Nette\Application\Routers\RouteList`
	r := newResolver(t, route.Reflection{`Vendor\Routes::list`: `\` + routeList})
	call := &syntax.StaticCall{Class: `Vendor\Routes`, Method: "list"}
	assert.False(t, r.IsRouteExpr(call))

	r.RouterTypes = []string{routeList}
	assert.True(t, r.IsRouteExpr(call))
	assert.True(t, r.IsRouteExpr(&syntax.New{Class: routeList}))
	_, ok := r.Resolve(call)
	assert.False(t, ok, "a nested route list has no descriptor")
}
