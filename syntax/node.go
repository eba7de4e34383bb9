// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package syntax defines the program tree handed to routemig by an external
// parser, together with a matcher for searching it.
//
// The tree is a closed set of node types. Every consumer switches on the
// concrete type and treats an unknown type as a structural anomaly.
package syntax

// A Node is any node in a program tree.
type Node interface {
	aNode()
}

// An Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// A Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// A Member is a class member declaration.
type Member interface {
	Node
	memberNode()
}

// Expressions.
type (
	// A Variable is a reference to a local variable, $Name.
	Variable struct {
		Name string
	}

	// An IndexFetch is X[Index]. A nil Index is the append form X[].
	IndexFetch struct {
		X     Expr
		Index Expr
	}

	// An Assign is Target = Value.
	Assign struct {
		Target Expr
		Value  Expr
	}

	// An AssignOp is a compound assignment such as Target += Value.
	// Op is always a compound-assignment operator.
	AssignOp struct {
		Op     Op
		Target Expr
		Value  Expr
	}

	// A BinaryOp is X Op Y.
	BinaryOp struct {
		Op Op
		X  Expr
		Y  Expr
	}

	// A New is an instantiation, new Class(Args...).
	New struct {
		Class string
		Args  []Expr
	}

	// A StaticCall is Class::Method(Args...).
	StaticCall struct {
		Class  string
		Method string
		Args   []Expr
	}

	// A MethodCall is X->Method(Args...).
	MethodCall struct {
		X      Expr
		Method string
		Args   []Expr
	}

	// A StringLit is a string literal with its quotes removed.
	StringLit struct {
		Value string
	}

	// A ClassRef is a class name reference, Name::class.
	ClassRef struct {
		Name string
	}

	// An ArrayLit is [Items...].
	ArrayLit struct {
		Items []Expr
	}
)

// Statements.
type (
	// An ExprStmt is an expression evaluated for its effect.
	ExprStmt struct {
		X Expr
	}

	// A Return is return X. X may be nil.
	Return struct {
		X Expr
	}

	// An If is if (Cond) { Then } else { Else }.
	If struct {
		Cond Expr
		Then []Stmt
		Else []Stmt
	}

	// A Foreach is foreach (X as Value) { Body }.
	Foreach struct {
		X     Expr
		Value Expr
		Body  []Stmt
	}
)

// Visibility of a class member.
type Visibility int

const (
	Public Visibility = iota
	Protected
	Private
)

func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case Protected:
		return "protected"
	case Private:
		return "private"
	}
	return "???"
}

// A Param is a method parameter.
type Param struct {
	Name string
	Type string
}

// Members.
type (
	// A MethodDecl is a method declaration.
	// A nil Body means the method is abstract.
	MethodDecl struct {
		Name        string
		Visibility  Visibility
		Params      []Param
		Body        []Stmt
		ReturnTypes []string
		Tags        []*Tag
	}

	// A Property is a property declaration.
	Property struct {
		Name       string
		Visibility Visibility
	}
)

// IsPublic reports whether m is public.
func (m *MethodDecl) IsPublic() bool { return m.Visibility == Public }

// A ClassDecl is a class declaration. Name is fully qualified.
type ClassDecl struct {
	Name       string
	Extends    string
	Implements []string
	Members    []Member
}

// Methods returns the methods of c in declaration order.
func (c *ClassDecl) Methods() []*MethodDecl {
	var list []*MethodDecl
	for _, m := range c.Members {
		if m, ok := m.(*MethodDecl); ok {
			list = append(list, m)
		}
	}
	return list
}

// ShortName returns the class name without its namespace.
func (c *ClassDecl) ShortName() string {
	return ShortName(c.Name)
}

// ShortName returns name with everything up to the last namespace
// separator removed.
func ShortName(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '\\' {
			return name[i+1:]
		}
	}
	return name
}

// A Program is the whole program: every class the parser found.
type Program struct {
	Classes []*ClassDecl
}

func (*Variable) aNode()   {}
func (*IndexFetch) aNode() {}
func (*Assign) aNode()     {}
func (*AssignOp) aNode()   {}
func (*BinaryOp) aNode()   {}
func (*New) aNode()        {}
func (*StaticCall) aNode() {}
func (*MethodCall) aNode() {}
func (*StringLit) aNode()  {}
func (*ClassRef) aNode()   {}
func (*ArrayLit) aNode()   {}
func (*ExprStmt) aNode()   {}
func (*Return) aNode()     {}
func (*If) aNode()         {}
func (*Foreach) aNode()    {}
func (*MethodDecl) aNode() {}
func (*Property) aNode()   {}
func (*ClassDecl) aNode()  {}
func (*Program) aNode()    {}

func (*Variable) exprNode()   {}
func (*IndexFetch) exprNode() {}
func (*Assign) exprNode()     {}
func (*AssignOp) exprNode()   {}
func (*BinaryOp) exprNode()   {}
func (*New) exprNode()        {}
func (*StaticCall) exprNode() {}
func (*MethodCall) exprNode() {}
func (*StringLit) exprNode()  {}
func (*ClassRef) exprNode()   {}
func (*ArrayLit) exprNode()   {}

func (*ExprStmt) stmtNode() {}
func (*Return) stmtNode()   {}
func (*If) stmtNode()       {}
func (*Foreach) stmtNode()  {}

func (*MethodDecl) memberNode() {}
func (*Property) memberNode()   {}
