package uiexpr

import (
	"strconv"
	"strings"
)

// opcode identifies one step of a compiled postfix program.
type opcode int8

const (
	opNone opcode = iota

	opPush // push an immediate value
	opLoad // resolve a name in the symbol table and push its value

	opNeg // negate the top of the stack

	opAdd // pop b, pop a, push a+b
	opSub
	opMul
	opDiv
	opMod
	opPow

	opLT // pop b, pop a, push 1 if a<b else 0
	opGT
	opLE
	opGE
	opEQ
	opNE

	opAnd // pop b, pop a, push 1 if both nonzero
	opOr
	opXor

	opCall // apply a builtin to the top of the stack

	opJumpFalse // pop; continue at to when the popped value is zero
	opJump      // continue at to
)

// instr is one instruction of a postfix program.
type instr struct {
	op   opcode
	val  float64 // opPush
	name string  // opLoad
	fn   *builtin
	to   int // jump target
}

// program is the postfix form of one parsed statement. It exists only
// for the duration of the Evaluate call that compiled it.
type program []instr

// glyph returns the source spelling of an operator opcode.
func (op opcode) glyph() string {
	switch op {
	case opNeg:
		return "neg"
	case opAdd:
		return "+"
	case opSub:
		return "-"
	case opMul:
		return "*"
	case opDiv:
		return "/"
	case opMod:
		return "%"
	case opPow:
		return "^"
	case opLT:
		return "<"
	case opGT:
		return ">"
	case opLE:
		return "<="
	case opGE:
		return ">="
	case opEQ:
		return "=="
	case opNE:
		return "!="
	case opAnd:
		return "&"
	case opOr:
		return "|"
	case opXor:
		return "$"
	}
	return "opcode(" + strconv.Itoa(int(op)) + ")"
}

// String renders the program in classic postfix order, one word per
// instruction: "2 + 3 * 4 ^ 2" compiles to "2 3 4 2 ^ * +".
func (p program) String() string {
	var b strings.Builder
	for i, in := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch in.op {
		case opPush:
			b.WriteString(strconv.FormatFloat(in.val, 'g', -1, 64))
		case opLoad:
			b.WriteString(in.name)
		case opCall:
			b.WriteString(in.fn.name)
		case opJumpFalse:
			b.WriteString("jf:" + strconv.Itoa(in.to))
		case opJump:
			b.WriteString("jmp:" + strconv.Itoa(in.to))
		default:
			b.WriteString(in.op.glyph())
		}
	}
	return b.String()
}
