// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import "fmt"

// An Anomaly reports a tree that violates the shape the walker relies on,
// such as a nil statement in a body or a node type it does not know.
// Walking functions panic with an *Anomaly; Recover turns the panic
// back into an error at an invocation boundary.
type Anomaly struct {
	Node Node
	Msg  string
}

func (a *Anomaly) Error() string {
	if a.Node == nil {
		return "malformed tree: " + a.Msg
	}
	return fmt.Sprintf("malformed tree at %T: %s", a.Node, a.Msg)
}

func anomalyf(n Node, format string, args ...interface{}) {
	panic(&Anomaly{Node: n, Msg: fmt.Sprintf(format, args...)})
}

// Recover stops a panicking *Anomaly and stores it in *errp.
// Any other panic continues. It must be called directly by a deferred
// function:
//
//	defer syntax.Recover(&err)
func Recover(errp *error) {
	p := recover()
	if p == nil {
		return
	}
	a, ok := p.(*Anomaly)
	if !ok {
		panic(p)
	}
	*errp = a
}

// Inspect traverses the tree rooted at n in pre-order, calling f(n) for
// every node. If f returns true, Inspect visits the children of n and then
// calls f(nil). Optional children that are absent are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil {
		anomalyf(nil, "nil node")
	}
	if !f(n) {
		return
	}

	switch n := n.(type) {
	case *Variable, *StringLit, *ClassRef, *Property:
		// leaves

	case *IndexFetch:
		inspectExpr(n, n.X, f)
		if n.Index != nil {
			Inspect(n.Index, f)
		}

	case *Assign:
		inspectExpr(n, n.Target, f)
		inspectExpr(n, n.Value, f)

	case *AssignOp:
		if !n.Op.IsAssign() {
			anomalyf(n, "operator %v is not a compound assignment", n.Op)
		}
		inspectExpr(n, n.Target, f)
		inspectExpr(n, n.Value, f)

	case *BinaryOp:
		if !n.Op.IsBinary() {
			anomalyf(n, "operator %v is not a binary operator", n.Op)
		}
		inspectExpr(n, n.X, f)
		inspectExpr(n, n.Y, f)

	case *New:
		inspectExprs(n, n.Args, f)

	case *StaticCall:
		inspectExprs(n, n.Args, f)

	case *MethodCall:
		inspectExpr(n, n.X, f)
		inspectExprs(n, n.Args, f)

	case *ArrayLit:
		inspectExprs(n, n.Items, f)

	case *ExprStmt:
		inspectExpr(n, n.X, f)

	case *Return:
		if n.X != nil {
			Inspect(n.X, f)
		}

	case *If:
		inspectExpr(n, n.Cond, f)
		inspectStmts(n, n.Then, f)
		inspectStmts(n, n.Else, f)

	case *Foreach:
		inspectExpr(n, n.X, f)
		inspectExpr(n, n.Value, f)
		inspectStmts(n, n.Body, f)

	case *MethodDecl:
		inspectStmts(n, n.Body, f)

	case *ClassDecl:
		for _, m := range n.Members {
			if m == nil {
				anomalyf(n, "nil member in class %s", n.Name)
			}
			Inspect(m, f)
		}

	case *Program:
		for _, c := range n.Classes {
			if c == nil {
				anomalyf(n, "nil class")
			}
			Inspect(c, f)
		}

	default:
		anomalyf(n, "unexpected node type")
	}

	f(nil)
}

func inspectExpr(parent Node, x Expr, f func(Node) bool) {
	if x == nil {
		anomalyf(parent, "missing operand")
	}
	Inspect(x, f)
}

func inspectExprs(parent Node, list []Expr, f func(Node) bool) {
	for _, x := range list {
		inspectExpr(parent, x, f)
	}
}

func inspectStmts(parent Node, list []Stmt, f func(Node) bool) {
	for _, s := range list {
		if s == nil {
			anomalyf(parent, "nil statement")
		}
		Inspect(s, f)
	}
}

// Find returns every node under root, root included, for which pred
// reports true, in pre-order. It does not modify the tree.
func Find(root Node, pred func(Node) bool) []Node {
	var found []Node
	Inspect(root, func(n Node) bool {
		if n != nil && pred(n) {
			found = append(found, n)
		}
		return true
	})
	return found
}

// FindIn is Find applied to each statement of list in order.
func FindIn(list []Stmt, pred func(Node) bool) []Node {
	var found []Node
	for _, s := range list {
		if s == nil {
			anomalyf(nil, "nil statement")
		}
		found = append(found, Find(s, pred)...)
	}
	return found
}

// RemoveStmts deletes from *body every statement in rm, looking inside
// nested If and Foreach bodies too. The remaining statements keep their
// order. It returns the number of statements removed.
func RemoveStmts(body *[]Stmt, rm map[Stmt]bool) int {
	if len(rm) == 0 {
		return 0
	}
	n := 0
	out := (*body)[:0]
	for _, s := range *body {
		if rm[s] {
			n++
			continue
		}
		switch s := s.(type) {
		case *If:
			n += RemoveStmts(&s.Then, rm)
			n += RemoveStmts(&s.Else, rm)
		case *Foreach:
			n += RemoveStmts(&s.Body, rm)
		}
		out = append(out, s)
	}
	for i := len(out); i < len(*body); i++ {
		(*body)[i] = nil
	}
	*body = out
	return n
}
