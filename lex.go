package uiexpr

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is a numeric literal.
	tokenNum
	// tokenIdent is a variable, constant, accessor, or function name.
	tokenIdent
	// tokenOp is an arithmetic, comparison, or logical operator.
	tokenOp
	// tokenOpen and tokenClose are ( and ).
	tokenOpen
	tokenClose
	// tokenSep is the argument separator ,.
	tokenSep
	// tokenQuery and tokenColon are the two halves of the conditional.
	tokenQuery
	tokenColon
	// tokenAssign is a bare =, valid only at statement level.
	tokenAssign
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenNum:
		return "Num"
	case tokenIdent:
		return "Ident"
	case tokenOp:
		return "Op"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	case tokenSep:
		return "Sep"
	case tokenQuery:
		return "Query"
	case tokenColon:
		return "Colon"
	case tokenAssign:
		return "Assign"
	}
	return "tokenKind(" + strconv.Itoa(int(k)) + ")"
}

// operators contains the runes which begin an operator token. < > ! =
// may extend to two characters; the rest stand alone.
const operators = "+-*/^%&|$<>!="

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	eof  bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{
		src:  src,
		rune: 1,
	}
}

// lexAll scans an entire statement into tokens. The returned slice
// always ends with an EOF token.
func lexAll(src string) ([]lexToken, error) {
	l := lex(strings.NewReader(src))
	var toks []lexToken
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.kind == tokenEOF {
			return toks, nil
		}
	}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input.
func (l *lexer) next() (lexToken, error) {
	if l.eof {
		return lexToken{}, io.EOF
	}
	defer l.buf.Reset()
	tok := lexToken{pos: l.rune}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.kind = tokenEOF
				l.eof = true
				return tok, nil
			}
			return tok, err
		}
		switch {
		case unicode.IsSpace(r):
			tok.pos++
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			if err := l.scanNum(); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenNum
			return tok, nil
		case r == '_', unicode.IsLetter(r):
			l.unreadRune()
			l.scanIdent()
			tok.text = l.buf.String()
			tok.kind = tokenIdent
			return tok, nil
		case r == '(':
			tok.text = "("
			tok.kind = tokenOpen
			return tok, nil
		case r == ')':
			tok.text = ")"
			tok.kind = tokenClose
			return tok, nil
		case r == ',':
			tok.text = ","
			tok.kind = tokenSep
			return tok, nil
		case r == '?':
			tok.text = "?"
			tok.kind = tokenQuery
			return tok, nil
		case r == ':':
			tok.text = ":"
			tok.kind = tokenColon
			return tok, nil
		case strings.ContainsRune(operators, r):
			l.buf.WriteRune(r)
			return l.scanOp(r, tok)
		default:
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return tok, l.error("")
		}
	}
}

// scanOp finishes an operator token begun by r, fusing <= >= == !=.
func (l *lexer) scanOp(r rune, tok lexToken) (lexToken, error) {
	switch r {
	case '<', '>', '=', '!':
		q, err := l.readRune()
		if err != nil && !errors.Is(err, io.EOF) {
			return tok, err
		}
		if err == nil {
			if q == '=' {
				l.buf.WriteRune(q)
			} else {
				l.unreadRune()
			}
		}
	}
	tok.text = l.buf.String()
	switch tok.text {
	case "=":
		tok.kind = tokenAssign
	case "!":
		// ! exists only as part of !=.
		return tok, l.error("operator")
	default:
		tok.kind = tokenOp
	}
	return tok, nil
}

// scanNum scans a numeric literal: digits with at most one decimal
// point. Exponent notation is not part of the grammar.
func (l *lexer) scanNum() error {
	var dig, dot bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		switch {
		case r == '.':
			if dot {
				l.buf.WriteRune(r)
				return l.error("number")
			}
			dot = true
			l.buf.WriteRune(r)
		case '0' <= r && r <= '9':
			dig = true
			l.buf.WriteRune(r)
		case r == '_', unicode.IsLetter(r):
			l.buf.WriteRune(r)
			return l.error("number")
		default:
			l.unreadRune()
			if !dig {
				return l.error("number")
			}
			return nil
		}
	}
	if !dig {
		return l.error("number")
	}
	return nil
}

// scanIdent scans an identifier: a letter or underscore followed by any
// run of letters, digits, and underscores.
func (l *lexer) scanIdent() {
	for {
		r, err := l.readRune()
		if err != nil {
			// next unreads the rune that decides ident scanning before
			// calling scanIdent, so we have scanned at least one rune.
			return
		}
		switch {
		case r == '_', unicode.IsLetter(r), unicode.IsDigit(r):
			l.buf.WriteRune(r)
		default:
			l.unreadRune()
			return
		}
	}
}

func (l *lexer) error(kind string) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  l.rune,
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This may be
	// "number", "operator", or the empty string (if a token kind hadn't
	// been decided).
	Kind string
	// Col is the total number of runes scanned by the lexer up to and
	// including this error.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + err.Text
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}
