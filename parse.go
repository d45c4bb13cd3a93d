package uiexpr

import "strconv"

// Stmt     = "var" ident "=" Expr | ident "=" Expr | Expr
// Expr     = Ternary
// Ternary  = Logical [ "?" Ternary ":" Ternary ]
// Logical  = Compare { ("&" | "|" | "$") Compare }
// Compare  = Sum { ("<" | ">" | "<=" | ">=" | "==" | "!=") Sum }
// Sum      = Term { ("+" | "-") Term }
// Term     = Power { ("*" | "/" | "%") Power }
// Power    = Unary [ "^" Power ]
// Unary    = "-" Unary | num | ident | funcname "(" Expr ")" | "(" Expr ")"

type stmtKind int8

const (
	stmtExpr stmtKind = iota
	stmtDeclare
	stmtAssign
)

// stmt is one parsed statement: its compiled postfix program plus the
// statement-level form that decides what Evaluate does with the result.
type stmt struct {
	kind   stmtKind
	target string // declaration or assignment target
	code   program
	// print marks an expression statement that is a bare print call;
	// its result is a side effect, not a value.
	print bool
}

// operator describes a binary operator for precedence climbing.
type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the opcode emitted when this operator is selected.
	op opcode
}

// binop gets the binary operator for a token string. If there is no
// such operator, the result has an op of opNone.
func binop(text string) operator {
	switch text {
	case "^":
		return operator{60, true, opPow}
	case "*":
		return operator{50, false, opMul}
	case "/":
		return operator{50, false, opDiv}
	case "%":
		return operator{50, false, opMod}
	case "+":
		return operator{40, false, opAdd}
	case "-":
		return operator{40, false, opSub}
	case "<":
		return operator{30, false, opLT}
	case ">":
		return operator{30, false, opGT}
	case "<=":
		return operator{30, false, opLE}
	case ">=":
		return operator{30, false, opGE}
	case "==":
		return operator{30, false, opEQ}
	case "!=":
		return operator{30, false, opNE}
	case "&":
		return operator{20, false, opAnd}
	case "|":
		return operator{20, false, opOr}
	case "$":
		return operator{20, false, opXor}
	default:
		return operator{}
	}
}

const (
	// exprPrec admits every operator, ternary included.
	exprPrec = int8(0)
	// ternaryPrec is the precedence of ?:, the loosest operator.
	ternaryPrec = int8(10)
	// unaryPrec binds tighter than ^, so -2^2 is (-2)^2.
	unaryPrec = int8(70)
)

type parser struct {
	toks []lexToken
	pos  int
	prog program
	// arith restricts the grammar to pure expressions over constants
	// and builtin functions; see Engine.EvaluateArithmetic.
	arith bool
	syms  *symtab
	// bareprint is true while the program parsed so far is exactly one
	// print call. Only its value after the whole statement matters.
	bareprint bool
}

// parseStatement parses one full statement from toks, which must end
// with an EOF token.
func parseStatement(toks []lexToken, syms *symtab, arith bool) (*stmt, error) {
	p := &parser{toks: toks, syms: syms, arith: arith}
	if !arith && toks[0].kind == tokenIdent {
		switch {
		case toks[0].text == "var":
			return p.declaration()
		case toks[1].kind == tokenAssign:
			p.pos = 2
			if err := p.expr(exprPrec); err != nil {
				return nil, err
			}
			if err := p.expectEOF(); err != nil {
				return nil, err
			}
			return &stmt{kind: stmtAssign, target: toks[0].text, code: p.prog}, nil
		}
	}
	if err := p.expr(exprPrec); err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return &stmt{kind: stmtExpr, code: p.prog, print: p.bareprint}, nil
}

// declaration parses "var" ident "=" Expr. The var keyword has already
// been recognized at position 0.
func (p *parser) declaration() (*stmt, error) {
	p.pos = 1
	name := p.next()
	if name.kind != tokenIdent {
		return nil, &SyntaxError{Col: name.pos, Msg: "expected identifier after var, found " + describe(name)}
	}
	if eq := p.next(); eq.kind != tokenAssign {
		return nil, &SyntaxError{Col: eq.pos, Msg: "expected \"=\" in declaration of " + strconv.Quote(name.text) + ", found " + describe(eq)}
	}
	if err := p.expr(exprPrec); err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return &stmt{kind: stmtDeclare, target: name.text, code: p.prog}, nil
}

func (p *parser) next() lexToken {
	tok := p.toks[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) peek() lexToken {
	return p.toks[p.pos]
}

func (p *parser) emit(in instr) int {
	p.prog = append(p.prog, in)
	return len(p.prog) - 1
}

// expr parses an expression, emitting its postfix program, consuming
// operators that bind at least as tightly as min.
func (p *parser) expr(min int8) error {
	if err := p.primary(); err != nil {
		return err
	}
	for {
		tok := p.peek()
		switch tok.kind {
		case tokenOp:
			prec := binop(tok.text)
			if prec.prec < min {
				return nil
			}
			p.pos++
			next := prec.prec + 1
			if prec.right {
				next = prec.prec
			}
			if err := p.expr(next); err != nil {
				return err
			}
			p.emit(instr{op: prec.op})
			p.bareprint = false
		case tokenQuery:
			if ternaryPrec < min {
				return nil
			}
			p.pos++
			// The untaken branch is skipped, not merely discarded, so
			// compile both branches behind jumps.
			jf := p.emit(instr{op: opJumpFalse})
			if err := p.expr(ternaryPrec); err != nil {
				return err
			}
			if colon := p.next(); colon.kind != tokenColon {
				return &SyntaxError{Col: colon.pos, Msg: "expected \":\" in conditional, found " + describe(colon)}
			}
			jmp := p.emit(instr{op: opJump})
			p.prog[jf].to = len(p.prog)
			if err := p.expr(ternaryPrec); err != nil {
				return err
			}
			p.prog[jmp].to = len(p.prog)
			p.bareprint = false
		default:
			return nil
		}
	}
}

// primary parses the first component of a term: a literal, a name, a
// function call, a unary minus, or a parenthesized subexpression.
func (p *parser) primary() error {
	tok := p.next()
	switch tok.kind {
	case tokenNum:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return &SyntaxError{Col: tok.pos, Msg: "invalid number " + strconv.Quote(tok.text)}
		}
		p.emit(instr{op: opPush, val: v})
		p.bareprint = false
	case tokenIdent:
		return p.name(tok)
	case tokenOp:
		if tok.text != "-" {
			return &SyntaxError{Col: tok.pos, Msg: "unexpected operator " + strconv.Quote(tok.text)}
		}
		if err := p.expr(unaryPrec); err != nil {
			return err
		}
		p.emit(instr{op: opNeg})
		p.bareprint = false
	case tokenOpen:
		if err := p.expr(exprPrec); err != nil {
			return err
		}
		if end := p.next(); end.kind != tokenClose {
			return &SyntaxError{Col: end.pos, Msg: "expected \")\", found " + describe(end)}
		}
		p.bareprint = false
	case tokenEOF:
		if p.pos == 0 {
			return &SyntaxError{Col: tok.pos, Msg: "no expression"}
		}
		return &SyntaxError{Col: tok.pos, Msg: "missing operand at end"}
	default:
		return &SyntaxError{Col: tok.pos, Msg: "unexpected " + describe(tok)}
	}
	return nil
}

// name parses an identifier: a function call when the next token is an
// open parenthesis, otherwise a symbol reference.
func (p *parser) name(tok lexToken) error {
	if p.peek().kind == tokenOpen {
		fn := lookupFunc(tok.text)
		if fn == nil {
			return &SyntaxError{Col: tok.pos, Msg: "unknown function " + strconv.Quote(tok.text)}
		}
		p.pos++
		if err := p.expr(exprPrec); err != nil {
			return err
		}
		switch end := p.next(); end.kind {
		case tokenClose:
		case tokenSep:
			return &SyntaxError{Col: end.pos, Msg: fn.name + " takes exactly one argument"}
		default:
			return &SyntaxError{Col: end.pos, Msg: "expected \")\", found " + describe(end)}
		}
		p.emit(instr{op: opCall, fn: fn})
		p.bareprint = fn.print
		return nil
	}
	if p.arith {
		// Arithmetic-only expressions may reference constants and
		// builtins, never variables or accessors. Constants fold to
		// immediates here so evaluation cannot touch the symbol table.
		v, ok := p.syms.lookupConstant(tok.text)
		if !ok {
			return &SyntaxError{Col: tok.pos, Msg: strconv.Quote(tok.text) + " is not a constant or function"}
		}
		p.emit(instr{op: opPush, val: v})
		p.bareprint = false
		return nil
	}
	p.emit(instr{op: opLoad, name: tok.text})
	p.bareprint = false
	return nil
}

// expectEOF checks that the whole input was consumed by the statement.
func (p *parser) expectEOF() error {
	switch tok := p.next(); tok.kind {
	case tokenEOF:
		return nil
	case tokenClose:
		return &SyntaxError{Col: tok.pos, Msg: "unbalanced \")\""}
	case tokenAssign:
		return &SyntaxError{Col: tok.pos, Msg: "\"=\" is only valid at the start of a statement"}
	case tokenColon:
		return &SyntaxError{Col: tok.pos, Msg: "\":\" without matching \"?\""}
	default:
		return &SyntaxError{Col: tok.pos, Msg: "unexpected " + describe(tok)}
	}
}

// describe renders a token for an error message.
func describe(tok lexToken) string {
	if tok.kind == tokenEOF {
		return "end of input"
	}
	return strconv.Quote(tok.text)
}
