package uiexpr

import "strconv"

// SyntaxError indicates malformed grammar: unbalanced parentheses, a ?
// without its :, an unknown function name, a call with the wrong number
// of arguments, an empty expression, or a misplaced token. It implements
// InputError.
type SyntaxError struct {
	// Col is the rune column of the token that caused the error.
	Col int
	// Msg describes the failure.
	Msg string
}

func (err *SyntaxError) Error() string {
	return errpos(err.Col, err.Msg)
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// DuplicateSymbolError indicates an attempt to create a variable or
// accessor under a name that already exists in the symbol table.
type DuplicateSymbolError struct {
	// Name is the name that was redeclared.
	Name string
	// Existing is the kind of the entry already holding the name.
	Existing symbolKind
}

func (err *DuplicateSymbolError) Error() string {
	return strconv.Quote(err.Name) + " already exists as a " + err.Existing.String()
}

// ConstantAssignmentError indicates an assignment targeting a constant.
type ConstantAssignmentError struct {
	// Name is the constant that was targeted.
	Name string
}

func (err *ConstantAssignmentError) Error() string {
	return "cannot assign to constant " + strconv.Quote(err.Name)
}

// UnknownSymbolError indicates a reference or assignment to a name
// absent from the symbol table.
type UnknownSymbolError struct {
	// Name is the name that was missing.
	Name string
}

func (err *UnknownSymbolError) Error() string {
	return "undefined name " + strconv.Quote(err.Name)
}

// EvalError indicates an internal stack-machine fault. It should be
// unreachable for any program the parser accepts; seeing one means the
// parser and evaluator disagree about a program's stack effect.
type EvalError struct {
	// Msg describes the fault.
	Msg string
}

func (err *EvalError) Error() string {
	return "evaluation fault: " + err.Msg
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Errors produced by
// scanning or parsing invalid input implement InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to
	// and including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*SyntaxError)(nil)
)
