package uiexpr

import (
	"fmt"
	"io"
	"math"
	"strconv"
)

// Engine evaluates expression statements against its own symbol table.
// The zero Engine is not usable; create one with New.
//
// An Engine is not internally synchronized. Concurrent calls against
// one instance, or accessor callbacks that re-enter the engine that
// invoked them, are undefined.
type Engine struct {
	syms *symtab
	out  io.Writer
}

// New creates an engine with the builtin function table and the seeded
// constants, then applies the given options in order.
func New(opts ...Option) *Engine {
	e := &Engine{syms: newSymtab(), out: io.Discard}
	for _, opt := range opts {
		opt.engineOption(e)
	}
	return e
}

// Result is the outcome of one Evaluate call. Void is set for
// declarations, assignments, and bare print statements, whose effect is
// the side effect rather than a value; Value still carries the computed
// right-hand side for those forms.
type Result struct {
	Value float64
	Void  bool
}

// Evaluate parses and executes one statement: a var declaration, an
// assignment, or an expression. The statement parses completely before
// any side effect applies, so a failing statement leaves the symbol
// table untouched.
func (e *Engine) Evaluate(src string) (Result, error) {
	toks, err := lexAll(src)
	if err != nil {
		return Result{}, err
	}
	st, err := parseStatement(toks, e.syms, false)
	if err != nil {
		return Result{}, err
	}
	v, err := e.run(st.code)
	if err != nil {
		return Result{}, err
	}
	switch st.kind {
	case stmtDeclare:
		if err := e.syms.declare(st.target, v); err != nil {
			return Result{}, err
		}
		return Result{Value: v, Void: true}, nil
	case stmtAssign:
		if err := e.syms.assign(st.target, v); err != nil {
			return Result{}, err
		}
		return Result{Value: v, Void: true}, nil
	}
	return Result{Value: v, Void: st.print}, nil
}

// EvaluateArithmetic parses and executes a pure expression. Assignment,
// declaration, and any name that is not a constant or builtin function
// are rejected at parse time; the variable and accessor namespaces are
// never consulted.
func (e *Engine) EvaluateArithmetic(src string) (float64, error) {
	toks, err := lexAll(src)
	if err != nil {
		return 0, err
	}
	st, err := parseStatement(toks, e.syms, true)
	if err != nil {
		return 0, err
	}
	return e.run(st.code)
}

// DeclareVariable creates a variable without going through a var
// statement. The name must not exist in any namespace.
func (e *Engine) DeclareVariable(name string, val float64) error {
	return e.syms.declare(name, val)
}

// Lookup returns the current value of a constant, variable, or
// accessor.
func (e *Engine) Lookup(name string) (float64, error) {
	return e.syms.resolve(name)
}

// BindAccessor binds name to an externally owned value through a getter
// and a setter. The engine holds only the callbacks; ownership of the
// value stays with the caller. The name must not exist in any
// namespace. Panics if either callback is nil.
func (e *Engine) BindAccessor(name string, get func() float64, set func(float64)) error {
	if get == nil || set == nil {
		panic("uiexpr: nil accessor callback for " + strconv.Quote(name))
	}
	return e.syms.bind(name, get, set)
}

// UnbindAccessor removes an accessor binding. Unbinding a name that is
// not bound as an accessor is a no-op.
func (e *Engine) UnbindAccessor(name string) {
	e.syms.unbind(name)
}

// UnbindAllAccessors removes every accessor binding, leaving constants
// and variables.
func (e *Engine) UnbindAllAccessors() {
	e.syms.unbindAll()
}

// run executes a postfix program against a fresh operand stack. Any
// stack imbalance is an EvalError: the parser guarantees balance for
// every program it emits, so reaching one means a compiler bug, not bad
// input.
func (e *Engine) run(code program) (float64, error) {
	stack := make([]float64, 0, 8)
	for pc := 0; pc < len(code); pc++ {
		in := code[pc]
		switch in.op {
		case opPush:
			stack = append(stack, in.val)
		case opLoad:
			v, err := e.syms.resolve(in.name)
			if err != nil {
				return 0, err
			}
			stack = append(stack, v)
		case opNeg:
			if len(stack) < 1 {
				return 0, underflow(pc)
			}
			stack[len(stack)-1] = -stack[len(stack)-1]
		case opCall:
			if len(stack) < 1 {
				return 0, underflow(pc)
			}
			x := stack[len(stack)-1]
			if in.fn.print {
				fmt.Fprintf(e.out, "%g\n", x)
			} else {
				stack[len(stack)-1] = in.fn.fn(x)
			}
		case opJumpFalse:
			if len(stack) < 1 {
				return 0, underflow(pc)
			}
			c := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if c == 0 {
				pc = in.to - 1
			}
		case opJump:
			pc = in.to - 1
		default:
			if len(stack) < 2 {
				return 0, underflow(pc)
			}
			b := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			stack[len(stack)-1] = apply(in.op, stack[len(stack)-1], b)
		}
	}
	if len(stack) != 1 {
		return 0, &EvalError{Msg: "program ended with " + strconv.Itoa(len(stack)) + " operands"}
	}
	return stack[0], nil
}

func underflow(pc int) error {
	return &EvalError{Msg: "operand stack underflow at instruction " + strconv.Itoa(pc)}
}

// apply executes one binary operator. Arithmetic follows IEEE-754:
// division by zero yields an infinity or NaN rather than an error, and
// scripts use isnan/isinf to detect it. Comparisons and logical
// operators yield 1 or 0, with any nonzero operand counting as true.
func apply(op opcode, a, b float64) float64 {
	switch op {
	case opAdd:
		return a + b
	case opSub:
		return a - b
	case opMul:
		return a * b
	case opDiv:
		return a / b
	case opMod:
		return math.Mod(a, b)
	case opPow:
		return math.Pow(a, b)
	case opLT:
		return b2f(a < b)
	case opGT:
		return b2f(a > b)
	case opLE:
		return b2f(a <= b)
	case opGE:
		return b2f(a >= b)
	case opEQ:
		return b2f(a == b)
	case opNE:
		return b2f(a != b)
	case opAnd:
		return b2f(a != 0 && b != 0)
	case opOr:
		return b2f(a != 0 || b != 0)
	case opXor:
		return b2f((a != 0) != (b != 0))
	}
	panic("uiexpr: invalid opcode " + op.glyph())
}
