// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package opmap relates operator kinds to one another: compound
// assignments to the binary operators they abbreviate, and comparisons
// to their logical negations.
package opmap

import "rsc.io/routemig/syntax"

// A Table holds the fixed operator correspondences.
// It is never modified after New and is safe for concurrent use.
type Table struct {
	assignToBinary map[syntax.Op]syntax.Op
	binaryToAssign map[syntax.Op]syntax.Op
	inverse        map[syntax.Op]syntax.Op
}

// BooleanOr maps to BooleanAnd but not back.
var inversePairs = []struct{ op, inv syntax.Op }{
	{syntax.BooleanOr, syntax.BooleanAnd},
	{syntax.Identical, syntax.NotIdentical},
	{syntax.NotIdentical, syntax.Identical},
	{syntax.Equal, syntax.NotEqual},
	{syntax.NotEqual, syntax.Equal},
	{syntax.Greater, syntax.SmallerOrEqual},
	{syntax.Smaller, syntax.GreaterOrEqual},
	{syntax.GreaterOrEqual, syntax.Smaller},
	{syntax.SmallerOrEqual, syntax.Greater},
}

var assignPairs = []struct{ assign, binary syntax.Op }{
	{syntax.AssignBitwiseOr, syntax.BitwiseOr},
	{syntax.AssignBitwiseAnd, syntax.BitwiseAnd},
	{syntax.AssignBitwiseXor, syntax.BitwiseXor},
	{syntax.AssignPlus, syntax.Plus},
	{syntax.AssignDiv, syntax.Div},
	{syntax.AssignMul, syntax.Mul},
	{syntax.AssignMinus, syntax.Minus},
	{syntax.AssignConcat, syntax.Concat},
	{syntax.AssignPow, syntax.Pow},
	{syntax.AssignMod, syntax.Mod},
	{syntax.AssignShiftLeft, syntax.ShiftLeft},
	{syntax.AssignShiftRight, syntax.ShiftRight},
}

// New returns the operator table.
func New() *Table {
	t := &Table{
		assignToBinary: make(map[syntax.Op]syntax.Op),
		binaryToAssign: make(map[syntax.Op]syntax.Op),
		inverse:        make(map[syntax.Op]syntax.Op),
	}
	for _, p := range assignPairs {
		t.assignToBinary[p.assign] = p.binary
		t.binaryToAssign[p.binary] = p.assign
	}
	for _, p := range inversePairs {
		t.inverse[p.op] = p.inv
	}
	return t
}

// Alternative returns the operator corresponding to the one in n:
// the binary operator for a compound assignment, the compound
// assignment for a binary operator. It reports false for any other
// node and for operators without a partner.
func (t *Table) Alternative(n syntax.Expr) (syntax.Op, bool) {
	switch n := n.(type) {
	case *syntax.AssignOp:
		op, ok := t.assignToBinary[n.Op]
		return op, ok
	case *syntax.BinaryOp:
		op, ok := t.binaryToAssign[n.Op]
		return op, ok
	}
	return 0, false
}

// AlternativeOp is Alternative for a bare operator.
func (t *Table) AlternativeOp(op syntax.Op) (syntax.Op, bool) {
	if op.IsAssign() {
		alt, ok := t.assignToBinary[op]
		return alt, ok
	}
	alt, ok := t.binaryToAssign[op]
	return alt, ok
}

// Inversed returns the logical negation of the operator in n.
func (t *Table) Inversed(n *syntax.BinaryOp) (syntax.Op, bool) {
	return t.InversedOp(n.Op)
}

// InversedOp is Inversed for a bare operator.
func (t *Table) InversedOp(op syntax.Op) (syntax.Op, bool) {
	inv, ok := t.inverse[op]
	return inv, ok
}

// Expand rewrites a compound assignment into a plain one:
// $a += $b becomes $a = $a + $b.
// It returns nil if the operator has no binary partner.
// The operands are shared with n, not copied.
func (t *Table) Expand(n *syntax.AssignOp) *syntax.Assign {
	op, ok := t.Alternative(n)
	if !ok {
		return nil
	}
	return &syntax.Assign{
		Target: n.Target,
		Value:  &syntax.BinaryOp{Op: op, X: n.Target, Y: n.Value},
	}
}

// Collapse is the reverse of Expand: $a = $a + $b becomes $a += $b.
// It returns nil unless the assigned value is a binary operation with a
// compound form whose left operand is the same variable as the target.
func (t *Table) Collapse(n *syntax.Assign) *syntax.AssignOp {
	bin, ok := n.Value.(*syntax.BinaryOp)
	if !ok || !sameVar(n.Target, bin.X) {
		return nil
	}
	op, ok := t.Alternative(bin)
	if !ok {
		return nil
	}
	return &syntax.AssignOp{Op: op, Target: n.Target, Value: bin.Y}
}

func sameVar(x, y syntax.Expr) bool {
	vx, ok1 := x.(*syntax.Variable)
	vy, ok2 := y.(*syntax.Variable)
	return ok1 && ok2 && vx.Name == vy.Name
}

// Negate returns the negation of n as a new node sharing n's operands,
// or nil if its operator has no registered negation.
func (t *Table) Negate(n *syntax.BinaryOp) *syntax.BinaryOp {
	op, ok := t.Inversed(n)
	if !ok {
		return nil
	}
	return &syntax.BinaryOp{Op: op, X: n.X, Y: n.Y}
}
