// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"bytes"
	"io"
	"strconv"
	"strings"
)

// Dump writes an indented debugging form of n to w, one declaration or
// statement per line. It is meant for tests and diffs, not for producing
// source code.
func Dump(w io.Writer, n Node) error {
	var p printer
	p.node(n, 0)
	_, err := w.Write(p.buf.Bytes())
	return err
}

// String returns the dump of n without a trailing newline.
// For an expression it is a single line.
func String(n Node) string {
	var p printer
	if x, ok := n.(Expr); ok {
		p.expr(x)
		return p.buf.String()
	}
	p.node(n, 0)
	return strings.TrimSuffix(p.buf.String(), "\n")
}

type printer struct {
	buf bytes.Buffer
}

func (p *printer) line(depth int, s string) {
	for i := 0; i < depth; i++ {
		p.buf.WriteByte('\t')
	}
	p.buf.WriteString(s)
	p.buf.WriteByte('\n')
}

func (p *printer) node(n Node, depth int) {
	switch n := n.(type) {
	case *Program:
		for _, c := range n.Classes {
			p.node(c, depth)
		}
	case *ClassDecl:
		s := "class " + n.Name
		if n.Extends != "" {
			s += " extends " + n.Extends
		}
		if len(n.Implements) > 0 {
			s += " implements " + strings.Join(n.Implements, ", ")
		}
		p.line(depth, s)
		for _, m := range n.Members {
			p.node(m, depth+1)
		}
	case *Property:
		p.line(depth, "property "+n.Visibility.String()+" $"+n.Name)
	case *MethodDecl:
		var params []string
		for _, prm := range n.Params {
			if prm.Type != "" {
				params = append(params, prm.Type+" $"+prm.Name)
			} else {
				params = append(params, "$"+prm.Name)
			}
		}
		s := "method " + n.Visibility.String() + " " + n.Name + "(" + strings.Join(params, ", ") + ")"
		if len(n.ReturnTypes) > 0 {
			s += ": " + strings.Join(n.ReturnTypes, "|")
		}
		p.line(depth, s)
		for _, t := range n.Tags {
			p.line(depth+1, tagString(t))
		}
		p.stmts(n.Body, depth+1)
	case Stmt:
		p.stmts([]Stmt{n}, depth)
	case Expr:
		var q printer
		q.expr(n)
		p.line(depth, q.buf.String())
	default:
		anomalyf(n, "unexpected node type")
	}
}

func tagString(t *Tag) string {
	s := "tag " + t.Kind
	for _, a := range t.attrs {
		s += " " + a.Key + "="
		if a.IsList() {
			s += "{" + strings.Join(a.List, ",") + "}"
		} else {
			s += strconv.Quote(a.Value)
		}
	}
	return s
}

func (p *printer) stmts(list []Stmt, depth int) {
	for _, s := range list {
		switch s := s.(type) {
		case *ExprStmt:
			p.node(s.X, depth)
		case *Return:
			if s.X == nil {
				p.line(depth, "return")
				break
			}
			var q printer
			q.expr(s.X)
			p.line(depth, "return "+q.buf.String())
		case *If:
			var q printer
			q.expr(s.Cond)
			p.line(depth, "if "+q.buf.String())
			p.stmts(s.Then, depth+1)
			if len(s.Else) > 0 {
				p.line(depth, "else")
				p.stmts(s.Else, depth+1)
			}
		case *Foreach:
			var q printer
			q.expr(s.X)
			q.buf.WriteString(" as ")
			q.expr(s.Value)
			p.line(depth, "foreach "+q.buf.String())
			p.stmts(s.Body, depth+1)
		default:
			anomalyf(s, "unexpected statement type")
		}
	}
}

func (p *printer) expr(x Expr) {
	b := &p.buf
	switch x := x.(type) {
	case *Variable:
		b.WriteString("$" + x.Name)
	case *IndexFetch:
		p.expr(x.X)
		b.WriteByte('[')
		if x.Index != nil {
			p.expr(x.Index)
		}
		b.WriteByte(']')
	case *Assign:
		p.expr(x.Target)
		b.WriteString(" = ")
		p.expr(x.Value)
	case *AssignOp:
		p.expr(x.Target)
		b.WriteString(" " + x.Op.String() + " ")
		p.expr(x.Value)
	case *BinaryOp:
		b.WriteByte('(')
		p.expr(x.X)
		b.WriteString(" " + x.Op.String() + " ")
		p.expr(x.Y)
		b.WriteByte(')')
	case *New:
		b.WriteString("new " + x.Class)
		p.args(x.Args)
	case *StaticCall:
		b.WriteString(x.Class + "::" + x.Method)
		p.args(x.Args)
	case *MethodCall:
		p.expr(x.X)
		b.WriteString("->" + x.Method)
		p.args(x.Args)
	case *StringLit:
		b.WriteString(strconv.Quote(x.Value))
	case *ClassRef:
		b.WriteString(x.Name + "::class")
	case *ArrayLit:
		b.WriteByte('[')
		p.list(x.Items)
		b.WriteByte(']')
	default:
		anomalyf(x, "unexpected expression type")
	}
}

func (p *printer) args(list []Expr) {
	p.buf.WriteByte('(')
	p.list(list)
	p.buf.WriteByte(')')
}

func (p *printer) list(list []Expr) {
	for i, x := range list {
		if i > 0 {
			p.buf.WriteString(", ")
		}
		p.expr(x)
	}
}
