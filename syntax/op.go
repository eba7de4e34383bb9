// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// An Op is an operator kind.
// Compound-assignment operators are distinct kinds from the binary
// operators they abbreviate: AssignPlus is +=, Plus is +.
type Op int

const (
	badOp Op = iota

	// Binary arithmetic and bitwise operators.
	Plus
	Minus
	Mul
	Div
	Mod
	Pow
	Concat
	BitwiseAnd
	BitwiseOr
	BitwiseXor
	ShiftLeft
	ShiftRight
	Coalesce

	// Binary comparison operators.
	Identical
	NotIdentical
	Equal
	NotEqual
	Greater
	GreaterOrEqual
	Smaller
	SmallerOrEqual

	// Boolean logic operators.
	BooleanAnd
	BooleanOr

	// Compound-assignment operators.
	AssignPlus
	AssignMinus
	AssignMul
	AssignDiv
	AssignMod
	AssignPow
	AssignConcat
	AssignBitwiseAnd
	AssignBitwiseOr
	AssignBitwiseXor
	AssignShiftLeft
	AssignShiftRight
	AssignCoalesce

	numOps
)

// An OpCategory groups operators by the node kind that carries them.
type OpCategory int

const (
	BadCategory OpCategory = iota
	CompoundAssign
	BinaryArithmeticOrBitwise
	BinaryComparison
	BooleanLogic
)

func (c OpCategory) String() string {
	switch c {
	case CompoundAssign:
		return "compound-assign"
	case BinaryArithmeticOrBitwise:
		return "arithmetic-or-bitwise"
	case BinaryComparison:
		return "comparison"
	case BooleanLogic:
		return "boolean-logic"
	}
	return "???"
}

// Category returns the category of op.
func (op Op) Category() OpCategory {
	switch {
	case Plus <= op && op <= Coalesce:
		return BinaryArithmeticOrBitwise
	case Identical <= op && op <= SmallerOrEqual:
		return BinaryComparison
	case op == BooleanAnd || op == BooleanOr:
		return BooleanLogic
	case AssignPlus <= op && op <= AssignCoalesce:
		return CompoundAssign
	}
	return BadCategory
}

// IsAssign reports whether op is a compound-assignment operator.
func (op Op) IsAssign() bool { return op.Category() == CompoundAssign }

// IsBinary reports whether op can appear in a BinaryOp.
func (op Op) IsBinary() bool {
	c := op.Category()
	return c != BadCategory && c != CompoundAssign
}

var opText = [numOps]string{
	Plus:             "+",
	Minus:            "-",
	Mul:              "*",
	Div:              "/",
	Mod:              "%",
	Pow:              "**",
	Concat:           ".",
	BitwiseAnd:       "&",
	BitwiseOr:        "|",
	BitwiseXor:       "^",
	ShiftLeft:        "<<",
	ShiftRight:       ">>",
	Coalesce:         "??",
	Identical:        "===",
	NotIdentical:     "!==",
	Equal:            "==",
	NotEqual:         "!=",
	Greater:          ">",
	GreaterOrEqual:   ">=",
	Smaller:          "<",
	SmallerOrEqual:   "<=",
	BooleanAnd:       "&&",
	BooleanOr:        "||",
	AssignPlus:       "+=",
	AssignMinus:      "-=",
	AssignMul:        "*=",
	AssignDiv:        "/=",
	AssignMod:        "%=",
	AssignPow:        "**=",
	AssignConcat:     ".=",
	AssignBitwiseAnd: "&=",
	AssignBitwiseOr:  "|=",
	AssignBitwiseXor: "^=",
	AssignShiftLeft:  "<<=",
	AssignShiftRight: ">>=",
	AssignCoalesce:   "??=",
}

func (op Op) String() string {
	if op > badOp && op < numOps {
		return opText[op]
	}
	return "???"
}

// ParseOp returns the operator spelled s.
func ParseOp(s string) (Op, bool) {
	for op := badOp + 1; op < numOps; op++ {
		if opText[op] == s {
			return op, true
		}
	}
	return badOp, false
}
