// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package routemig

import (
	"io"
	"log/slog"

	"rsc.io/routemig/route"
	"rsc.io/routemig/syntax"
)

// A Registry looks up classes of the whole program by name.
// *registry.Index implements it.
type Registry interface {
	route.Classes
	FindClassesBySuffix(suffix string) []*syntax.ClassDecl
}

// A State is a step of a rule invocation.
type State int

const (
	Scanning State = iota
	Collecting
	Resolving
	Applying
	CompletingImplicit
	Cleanup
	Done
)

var stateNames = [...]string{
	Scanning:           "scanning",
	Collecting:         "collecting",
	Resolving:          "resolving",
	Applying:           "applying",
	CompletingImplicit: "completing implicit routes",
	Cleanup:            "cleanup",
	Done:               "done",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "invalid state"
	}
	return stateNames[s]
}

// Stats counts what one invocation of the rule did.
type Stats struct {
	Collected int // registration statements found
	Resolved  int // registrations turned into descriptors
	Applied   int // tags attached for registrations
	Implicit  int // tags attached by naming convention
	Removed   int // registration statements removed
}

// A Rule migrates route list registrations into route tags on the
// handler methods they name.
//
// A Rule mutates the program its registry indexes. It must not be
// invoked concurrently, nor concurrently with anything else that
// reads or writes that program.
type Rule struct {
	cfg      *Config
	reg      Registry
	types    route.TypeResolver
	resolver *route.Resolver
	log      *slog.Logger
	last     Stats
}

// An Option configures a Rule.
type Option func(*Rule)

// WithLogger sets the logger for skipped registrations and per-method
// summaries. By default the rule logs nothing.
func WithLogger(l *slog.Logger) Option {
	return func(r *Rule) {
		if l != nil {
			r.log = l
		}
	}
}

// New returns a rule that migrates routes using cfg. The registry must
// index the program whose methods are passed to Refactor. If types is nil,
// return types come from the program and cfg.Reflection.
func New(cfg *Config, reg Registry, types route.TypeResolver, opts ...Option) *Rule {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if types == nil {
		types = &route.StaticTypes{Reflection: cfg.Reflection}
	}
	r := &Rule{
		cfg:   cfg,
		reg:   reg,
		types: types,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	r.resolver = &route.Resolver{
		RouteClass:     cfg.RouteClass,
		RouterClass:    cfg.RouterClass,
		RouterTypes:    cfg.RouterTypeList(),
		DefaultAction:  cfg.DefaultAction,
		HandlerSuffix:  cfg.HandlerSuffix,
		ActionPrefixes: cfg.ActionPrefixes,
		HTTPVerbs:      cfg.HTTPVerbs,
		Classes:        reg,
		Types:          types,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Last returns the counts of the most recent invocation.
func (r *Rule) Last() Stats {
	return r.last
}

// Refactor runs the migration on method m. Methods that do not return
// the route list type, or that register no routes, are left alone.
// Otherwise every registration is removed from m, and the handler method
// it names gets a route tag when it can be found. Action methods of
// handler classes that still have no route tag get one derived from
// their names.
//
// Refactor mutates the program in place and always returns a nil member.
// It returns an error only when the tree is malformed, in which case the
// invocation stops in the state where the problem showed up.
func (r *Rule) Refactor(m *syntax.MethodDecl) (repl syntax.Member, err error) {
	r.last = Stats{}
	state := Scanning
	defer func() {
		if err != nil {
			err = &StateError{Method: m.Name, State: state, Err: err}
		}
	}()
	defer syntax.Recover(&err)

	log := r.log.With(slog.String("method", m.Name))

	if !r.scan(m) {
		return nil, nil
	}

	state = Collecting
	stmts := r.collect(m)
	r.last.Collected = len(stmts)
	if len(stmts) == 0 {
		log.Debug("no route registrations")
		return nil, nil
	}

	state = Resolving
	var routes []*route.Descriptor
	for _, s := range stmts {
		x := registration(s).Value
		d, ok := r.resolver.Resolve(x)
		if !ok {
			log.Debug("unresolved route", slog.String("expr", syntax.String(x)))
			continue
		}
		routes = append(routes, d)
	}
	r.last.Resolved = len(routes)

	state = Applying
	for _, d := range routes {
		if r.apply(log, d) {
			r.last.Applied++
		}
	}

	state = CompletingImplicit
	r.last.Implicit = r.completeImplicit(log)

	state = Cleanup
	rm := make(map[syntax.Stmt]bool)
	for _, s := range stmts {
		rm[s] = true
	}
	r.last.Removed = syntax.RemoveStmts(&m.Body, rm)

	state = Done
	log.Info("migrated routes",
		slog.Int("collected", r.last.Collected),
		slog.Int("resolved", r.last.Resolved),
		slog.Int("applied", r.last.Applied),
		slog.Int("implicit", r.last.Implicit),
		slog.Int("removed", r.last.Removed))
	return nil, nil
}

// scan reports whether m has a body and returns the route list type.
func (r *Rule) scan(m *syntax.MethodDecl) bool {
	if len(m.Body) == 0 {
		return false
	}
	for _, typ := range r.types.DeclaredReturnTypes(m) {
		if route.SameClass(typ, r.cfg.RouteListClass) {
			return true
		}
	}
	return false
}

// collect returns the statements of m of the form $list[] = <route>.
func (r *Rule) collect(m *syntax.MethodDecl) []*syntax.ExprStmt {
	found := syntax.FindIn(m.Body, func(n syntax.Node) bool {
		a := registration(n)
		if a == nil {
			return false
		}
		fetch, ok := a.Target.(*syntax.IndexFetch)
		if !ok || fetch.Index != nil {
			return false
		}
		if _, ok := fetch.X.(*syntax.Variable); !ok {
			return false
		}
		return r.resolver.IsRouteExpr(a.Value)
	})
	list := make([]*syntax.ExprStmt, len(found))
	for i, n := range found {
		list[i] = n.(*syntax.ExprStmt)
	}
	return list
}

// registration returns the assignment of expression statement n, or nil.
func registration(n syntax.Node) *syntax.Assign {
	s, ok := n.(*syntax.ExprStmt)
	if !ok {
		return nil
	}
	a, _ := s.X.(*syntax.Assign)
	return a
}

// apply attaches the tag for d to its handler method.
func (r *Rule) apply(log *slog.Logger, d *route.Descriptor) bool {
	c := r.reg.FindClass(d.Class)
	if c == nil {
		log.Debug("handler class not found", slog.String("class", d.Class), slog.String("path", d.Path))
		return false
	}
	m := r.reg.Method(c, d.Method)
	if m == nil {
		log.Debug("handler method not found", slog.String("class", c.Name), slog.String("handler", d.Method), slog.String("path", d.Path))
		return false
	}
	attrs := []syntax.Attr{{Key: "path", Value: d.Path}}
	if len(d.Methods) > 0 {
		attrs = append(attrs, syntax.Attr{Key: "methods", List: d.Methods})
	}
	if !m.AddTag(syntax.NewTag(r.cfg.AnnotationClass, attrs...)) {
		log.Debug("handler already routed", slog.String("class", c.Name), slog.String("handler", m.Name))
		return false
	}
	return true
}

// completeImplicit tags every untagged public action method of every
// handler class with its conventional path, returning how many it tagged.
func (r *Rule) completeImplicit(log *slog.Logger) int {
	n := 0
	for _, c := range r.reg.FindClassesBySuffix(r.cfg.HandlerSuffix) {
		for _, m := range c.Methods() {
			if !m.IsPublic() || m.HasTag(r.cfg.AnnotationClass) {
				continue
			}
			if _, ok := actionPrefix(m.Name, r.cfg.ActionPrefixes); !ok {
				continue
			}
			path := ImplicitPath(c.Name, m.Name, r.cfg.HandlerSuffix, r.cfg.ActionPrefixes)
			m.AddTag(syntax.NewTag(r.cfg.AnnotationClass, syntax.Attr{Key: "path", Value: path}))
			log.Debug("implicit route", slog.String("class", c.Name), slog.String("handler", m.Name), slog.String("path", path))
			n++
		}
	}
	return n
}
