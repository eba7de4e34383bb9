// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

// Decode parses the YAML interchange form of a program tree.
// This is how an external parser hands a program to routemig.
//
//	classes:
//	  - name: App\RouterFactory
//	    members:
//	      - method: create
//	        returns: [Nette\Application\Routers\RouteList]
//	        body:
//	          - assign: {var: router}
//	            value: {new: Nette\Application\Routers\RouteList}
//	          - assign: {append: {var: router}}
//	            value: {new: Nette\Application\Routers\Route, args: [about, {class: About}]}
//	          - return: {var: router}
//	  - name: App\AboutPresenter
//	    members:
//	      - method: renderTeam
//	        tags:
//	          - {kind: Symfony\Component\Routing\Annotation\Route, path: team, methods: [GET]}
//
// A tag mapping holds its kind and then its attributes in order; a list
// value makes a list attribute. Unknown keys are an error.
//
// A statement is return, if (with then and else), foreach (with as and
// body), or any expression. An expression is a mapping keyed by its kind
// (var, string, class, new, static, call, fetch, append, assign, op,
// array) or a plain scalar, which is a string literal.
func Decode(data []byte) (*Program, error) {
	var doc struct {
		Classes []classYAML `yaml:"classes"`
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !xerrors.Is(err, io.EOF) {
		return nil, xerrors.Errorf("decoding program: %w", err)
	}
	prog := new(Program)
	for _, cy := range doc.Classes {
		c, err := cy.decode()
		if err != nil {
			return nil, err
		}
		prog.Classes = append(prog.Classes, c)
	}
	return prog, nil
}

type classYAML struct {
	Name       string       `yaml:"name"`
	Extends    string       `yaml:"extends"`
	Implements []string     `yaml:"implements"`
	Members    []memberYAML `yaml:"members"`
}

type memberYAML struct {
	Method     string      `yaml:"method"`
	Property   string      `yaml:"property"`
	Visibility string      `yaml:"visibility"`
	Abstract   bool        `yaml:"abstract"`
	Params     []paramYAML `yaml:"params"`
	Returns    []string    `yaml:"returns"`
	Body       []yaml.Node `yaml:"body"`
	Tags       []yaml.Node `yaml:"tags"`
}

type paramYAML struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

func (cy *classYAML) decode() (*ClassDecl, error) {
	if cy.Name == "" {
		return nil, xerrors.New("decoding program: class without name")
	}
	c := &ClassDecl{Name: cy.Name, Extends: cy.Extends, Implements: cy.Implements}
	for _, my := range cy.Members {
		vis, err := parseVisibility(my.Visibility)
		if err != nil {
			return nil, xerrors.Errorf("class %s: %w", cy.Name, err)
		}
		switch {
		case my.Method != "" && my.Property != "":
			return nil, xerrors.Errorf("class %s: member is both method %s and property %s", cy.Name, my.Method, my.Property)
		case my.Property != "":
			if len(my.Tags) > 0 {
				return nil, xerrors.Errorf("class %s: property %s cannot carry tags", cy.Name, my.Property)
			}
			c.Members = append(c.Members, &Property{Name: my.Property, Visibility: vis})
		case my.Method != "":
			m := &MethodDecl{
				Name:        my.Method,
				Visibility:  vis,
				ReturnTypes: my.Returns,
			}
			for _, p := range my.Params {
				m.Params = append(m.Params, Param{Name: p.Name, Type: p.Type})
			}
			for i := range my.Tags {
				t, err := decodeTag(&my.Tags[i])
				if err != nil {
					return nil, xerrors.Errorf("method %s::%s: %w", cy.Name, my.Method, err)
				}
				if !m.AddTag(t) {
					return nil, xerrors.Errorf("method %s::%s: %w", cy.Name, my.Method, errorAt(&my.Tags[i], "duplicate tag %s", t.Kind))
				}
			}
			if !my.Abstract {
				m.Body = []Stmt{}
				for i := range my.Body {
					s, err := decodeStmt(&my.Body[i])
					if err != nil {
						return nil, xerrors.Errorf("method %s::%s: %w", cy.Name, my.Method, err)
					}
					m.Body = append(m.Body, s)
				}
			}
			c.Members = append(c.Members, m)
		default:
			return nil, xerrors.Errorf("class %s: member is neither method nor property", cy.Name)
		}
	}
	return c, nil
}

func parseVisibility(s string) (Visibility, error) {
	switch strings.ToLower(s) {
	case "", "public":
		return Public, nil
	case "protected":
		return Protected, nil
	case "private":
		return Private, nil
	}
	return Public, xerrors.Errorf("unknown visibility %q", s)
}

func errorAt(n *yaml.Node, format string, args ...interface{}) error {
	return xerrors.Errorf("line %d: "+format, append([]interface{}{n.Line}, args...)...)
}

// fields returns the keys of a mapping node.
func fields(n *yaml.Node) (map[string]*yaml.Node, error) {
	if n.Kind != yaml.MappingNode {
		return nil, errorAt(n, "expected mapping")
	}
	m := make(map[string]*yaml.Node)
	for i := 0; i+1 < len(n.Content); i += 2 {
		m[n.Content[i].Value] = n.Content[i+1]
	}
	return m, nil
}

func isNull(n *yaml.Node) bool {
	return n == nil || n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

func decodeTag(n *yaml.Node) (*Tag, error) {
	if n.Kind != yaml.MappingNode {
		return nil, errorAt(n, "expected tag mapping")
	}
	var kind string
	var attrs []Attr
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Value == "kind" {
			if v.Kind != yaml.ScalarNode {
				return nil, errorAt(v, "tag kind must be a name")
			}
			kind = v.Value
			continue
		}
		switch v.Kind {
		case yaml.ScalarNode:
			attrs = append(attrs, Attr{Key: k.Value, Value: v.Value})
		case yaml.SequenceNode:
			list := []string{}
			for _, item := range v.Content {
				if item.Kind != yaml.ScalarNode {
					return nil, errorAt(item, "tag attribute %s: expected scalar", k.Value)
				}
				list = append(list, item.Value)
			}
			attrs = append(attrs, Attr{Key: k.Value, List: list})
		default:
			return nil, errorAt(v, "tag attribute %s: expected scalar or list", k.Value)
		}
	}
	if kind == "" {
		return nil, errorAt(n, "tag without kind")
	}
	return NewTag(kind, attrs...), nil
}

func decodeStmts(n *yaml.Node) ([]Stmt, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, errorAt(n, "expected statement list")
	}
	var list []Stmt
	for _, c := range n.Content {
		s, err := decodeStmt(c)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, nil
}

func decodeStmt(n *yaml.Node) (Stmt, error) {
	if n.Kind != yaml.MappingNode {
		x, err := decodeExpr(n)
		if err != nil {
			return nil, err
		}
		return &ExprStmt{X: x}, nil
	}
	f, err := fields(n)
	if err != nil {
		return nil, err
	}
	switch {
	case f["return"] != nil:
		r := &Return{}
		if !isNull(f["return"]) {
			if r.X, err = decodeExpr(f["return"]); err != nil {
				return nil, err
			}
		}
		return r, nil

	case f["if"] != nil:
		s := &If{}
		if s.Cond, err = decodeExpr(f["if"]); err != nil {
			return nil, err
		}
		if s.Then, err = decodeStmts(f["then"]); err != nil {
			return nil, err
		}
		if s.Else, err = decodeStmts(f["else"]); err != nil {
			return nil, err
		}
		return s, nil

	case f["foreach"] != nil:
		s := &Foreach{}
		if s.X, err = decodeExpr(f["foreach"]); err != nil {
			return nil, err
		}
		if f["as"] == nil {
			return nil, errorAt(n, "foreach without as")
		}
		if s.Value, err = decodeExpr(f["as"]); err != nil {
			return nil, err
		}
		if s.Body, err = decodeStmts(f["body"]); err != nil {
			return nil, err
		}
		return s, nil
	}

	x, err := decodeExpr(n)
	if err != nil {
		return nil, err
	}
	return &ExprStmt{X: x}, nil
}

func decodeExprs(n *yaml.Node) ([]Expr, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, errorAt(n, "expected expression list")
	}
	var list []Expr
	for _, c := range n.Content {
		x, err := decodeExpr(c)
		if err != nil {
			return nil, err
		}
		list = append(list, x)
	}
	return list, nil
}

func decodeExpr(n *yaml.Node) (Expr, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if isNull(n) {
			return nil, errorAt(n, "missing expression")
		}
		return &StringLit{Value: n.Value}, nil
	case yaml.MappingNode:
		// handled below
	default:
		return nil, errorAt(n, "expected expression")
	}

	f, err := fields(n)
	if err != nil {
		return nil, err
	}
	switch {
	case f["var"] != nil:
		return &Variable{Name: strings.TrimPrefix(f["var"].Value, "$")}, nil

	case f["string"] != nil:
		return &StringLit{Value: f["string"].Value}, nil

	case f["class"] != nil:
		return &ClassRef{Name: f["class"].Value}, nil

	case f["new"] != nil:
		args, err := decodeExprs(f["args"])
		if err != nil {
			return nil, err
		}
		return &New{Class: f["new"].Value, Args: args}, nil

	case f["static"] != nil:
		class, method, ok := strings.Cut(f["static"].Value, "::")
		if !ok || class == "" || method == "" {
			return nil, errorAt(f["static"], "static call %q is not Class::method", f["static"].Value)
		}
		args, err := decodeExprs(f["args"])
		if err != nil {
			return nil, err
		}
		return &StaticCall{Class: class, Method: method, Args: args}, nil

	case f["call"] != nil:
		if f["on"] == nil {
			return nil, errorAt(n, "method call without receiver")
		}
		x, err := decodeExpr(f["on"])
		if err != nil {
			return nil, err
		}
		args, err := decodeExprs(f["args"])
		if err != nil {
			return nil, err
		}
		return &MethodCall{X: x, Method: f["call"].Value, Args: args}, nil

	case f["fetch"] != nil:
		x, err := decodeExpr(f["fetch"])
		if err != nil {
			return nil, err
		}
		if f["index"] == nil {
			return nil, errorAt(n, "fetch without index")
		}
		index, err := decodeExpr(f["index"])
		if err != nil {
			return nil, err
		}
		return &IndexFetch{X: x, Index: index}, nil

	case f["append"] != nil:
		x, err := decodeExpr(f["append"])
		if err != nil {
			return nil, err
		}
		return &IndexFetch{X: x}, nil

	case f["assign"] != nil:
		target, err := decodeExpr(f["assign"])
		if err != nil {
			return nil, err
		}
		if f["value"] == nil {
			return nil, errorAt(n, "assign without value")
		}
		value, err := decodeExpr(f["value"])
		if err != nil {
			return nil, err
		}
		return &Assign{Target: target, Value: value}, nil

	case f["op"] != nil:
		return decodeOp(n, f)

	case f["array"] != nil:
		items, err := decodeExprs(f["array"])
		if err != nil {
			return nil, err
		}
		return &ArrayLit{Items: items}, nil
	}
	return nil, errorAt(n, "unknown expression")
}

func decodeOp(n *yaml.Node, f map[string]*yaml.Node) (Expr, error) {
	op, ok := ParseOp(f["op"].Value)
	if !ok {
		return nil, errorAt(f["op"], "unknown operator %q", f["op"].Value)
	}
	if op.IsAssign() {
		if f["target"] == nil || f["value"] == nil {
			return nil, errorAt(n, "%v needs target and value", op)
		}
		target, err := decodeExpr(f["target"])
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(f["value"])
		if err != nil {
			return nil, err
		}
		return &AssignOp{Op: op, Target: target, Value: value}, nil
	}
	if f["x"] == nil || f["y"] == nil {
		return nil, errorAt(n, "%v needs x and y", op)
	}
	x, err := decodeExpr(f["x"])
	if err != nil {
		return nil, err
	}
	y, err := decodeExpr(f["y"])
	if err != nil {
		return nil, err
	}
	return &BinaryOp{Op: op, X: x, Y: y}, nil
}
