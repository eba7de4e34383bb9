// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package routemig migrates imperative route list registrations into
// route tags on the handler methods they name.
//
// A router factory in the source framework builds its routes by
// appending to a route list:
//
//	public function create(): RouteList
//	{
//		$routes = new RouteList();
//		$routes[] = new Route('about', AboutPresenter::class, 'view');
//		return $routes;
//	}
//
// The rule finds each registration, resolves it to a path and a handler
// method, attaches a route tag of the configured annotation class to that
// method and removes the registration. It then gives every remaining
// action method of every handler class a route derived from the class
// and method names, so that renderList on UserAccountPresenter is routed
// at user-account/list.
//
// Programs reach the rule as trees in package syntax, typically decoded
// from the YAML form produced by an external parser. The host in package
// refactor invokes the rule once per method declaration:
//
//	prog, err := syntax.Decode(data)
//	...
//	rule := routemig.New(routemig.DefaultConfig(), registry.New(prog), nil)
//	err = refactor.Apply(prog, rule)
//
// Registrations the rule cannot resolve are still removed. Tags are
// structured values; rendering them as annotation text is left to the
// caller.
package routemig
