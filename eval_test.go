package uiexpr_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	uiexpr "github.com/Liam-BK/OTK.UI-sub001"
)

func evalValue(t *testing.T, e *uiexpr.Engine, src string) float64 {
	t.Helper()
	res, err := e.Evaluate(src)
	if err != nil {
		t.Fatalf("%q failed to evaluate: %v", src, err)
	}
	if res.Void {
		t.Fatalf("%q gave no value", src)
	}
	return res.Value
}

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    float64
	}{
		{"num", "1", 1},
		{"precedence", "2 + 3 * 4 ^ 2", 50},
		{"parens", "(2 + 3) * 4", 20},
		{"pow-right", "4 ^ 3 ^ 2", 262144},
		{"neg-tightest", "-2 ^ 2", 4},
		{"mod", "10 % 3", 1},
		{"div", "1 / 4", 0.25},
		{"cmp-true", "2 < 3", 1},
		{"cmp-false", "2 >= 3", 0},
		{"eq", "1 + 1 == 2", 1},
		{"ne", "1 != 1", 0},
		{"and", "1 & 0", 0},
		{"or", "1 | 0", 1},
		{"xor", "1 $ 1", 0},
		{"xor-mixed", "2 $ 0", 1},
		{"and-nonzero", "0.5 & -3", 1},
		{"ternary-true", "1 ? 2 : 3", 2},
		{"ternary-false", "0 ? 2 : 3", 3},
		{"ternary-right", "1 ? 2 : 0 ? 3 : 4", 2},
		{"ternary-chain", "0 ? 2 : 0 ? 3 : 4", 4},
		{"ternary-nonzero-cond", "0.1 ? 5 : 6", 5},
		{"const-pi", "pi", math.Pi},
		{"const-tau", "tau", 2 * math.Pi},
		{"const-phi", "phi", math.Phi},
		{"const-e", "e", math.E},
		{"const-true", "true", 1},
		{"const-false", "false", 0},
		{"call", "floor(2.7)", 2},
		{"call-in-expr", "2 * abs(-3)", 6},
	}
	e := uiexpr.New()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if r := evalValue(t, e, c.src); r != c.r {
				t.Errorf("%q: want %g, got %g", c.src, c.r, r)
			}
		})
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	e := uiexpr.New()
	src := "sin(1) + 2 ^ 0.5 * pi"
	a := evalValue(t, e, src)
	b := evalValue(t, e, src)
	if a != b {
		t.Errorf("%q changed between calls: %g then %g", src, a, b)
	}
}

func TestDivisionByZero(t *testing.T) {
	e := uiexpr.New()
	if r := evalValue(t, e, "1 / 0"); !math.IsInf(r, 1) {
		t.Errorf("1/0: want +Inf, got %g", r)
	}
	if r := evalValue(t, e, "0 / 0"); !math.IsNaN(r) {
		t.Errorf("0/0: want NaN, got %g", r)
	}
	// Scripts detect these with the builtins instead of an error.
	if r := evalValue(t, e, "isnan(0 / 0)"); r != 1 {
		t.Errorf("isnan(0/0): want 1, got %g", r)
	}
	if r := evalValue(t, e, "isinf(1 / 0)"); r != 1 {
		t.Errorf("isinf(1/0): want 1, got %g", r)
	}
}

func TestTernarySkipsUntakenBranch(t *testing.T) {
	e := uiexpr.New()
	// The untaken branch holds an unknown name; it must not resolve.
	if r := evalValue(t, e, "1 ? 5 : unknown_name"); r != 5 {
		t.Errorf("want 5, got %g", r)
	}
	if r := evalValue(t, e, "0 ? unknown_name : 7"); r != 7 {
		t.Errorf("want 7, got %g", r)
	}
	// And an accessor in the untaken branch must not be read.
	reads := 0
	e.BindAccessor("probe",
		func() float64 { reads++; return 0 },
		func(float64) {})
	if r := evalValue(t, e, "0 ? probe : 3"); r != 3 {
		t.Errorf("want 3, got %g", r)
	}
	if reads != 0 {
		t.Errorf("untaken branch read the accessor %d times", reads)
	}
}

func TestVariableLifecycle(t *testing.T) {
	e := uiexpr.New()
	res, err := e.Evaluate("var x = 10")
	if err != nil {
		t.Fatalf("declaration failed: %v", err)
	}
	if !res.Void {
		t.Error("declaration produced a value")
	}
	if v, err := e.Lookup("x"); err != nil || v != 10 {
		t.Errorf("x is %g (%v), want 10", v, err)
	}

	res, err = e.Evaluate("x = x * 2")
	if err != nil {
		t.Fatalf("assignment failed: %v", err)
	}
	if !res.Void {
		t.Error("assignment produced a value")
	}
	if v, err := e.Lookup("x"); err != nil || v != 20 {
		t.Errorf("x is %g (%v), want 20", v, err)
	}
	if r := evalValue(t, e, "x + 1"); r != 21 {
		t.Errorf("x + 1: want 21, got %g", r)
	}

	_, err = e.Evaluate("var x = 1")
	var dup *uiexpr.DuplicateSymbolError
	if !errors.As(err, &dup) {
		t.Errorf("redeclaring x gave %#v, not *DuplicateSymbolError", err)
	}
	if v, _ := e.Lookup("x"); v != 20 {
		t.Errorf("failed redeclaration changed x to %g", v)
	}

	_, err = e.Evaluate("pi = 1")
	var ca *uiexpr.ConstantAssignmentError
	if !errors.As(err, &ca) {
		t.Errorf("assigning pi gave %#v, not *ConstantAssignmentError", err)
	}

	_, err = e.Evaluate("y = 1")
	var unk *uiexpr.UnknownSymbolError
	if !errors.As(err, &unk) {
		t.Errorf("assigning undeclared y gave %#v, not *UnknownSymbolError", err)
	}

	// Names are case-sensitive: X is not x.
	_, err = e.Evaluate("X")
	if !errors.As(err, &unk) {
		t.Errorf("reading X gave %#v, not *UnknownSymbolError", err)
	}
}

func TestDeclareVariable(t *testing.T) {
	e := uiexpr.New()
	if err := e.DeclareVariable("margin", 4); err != nil {
		t.Fatal(err)
	}
	if r := evalValue(t, e, "margin * 2"); r != 8 {
		t.Errorf("margin * 2: want 8, got %g", r)
	}
	err := e.DeclareVariable("pi", 3)
	var dup *uiexpr.DuplicateSymbolError
	if !errors.As(err, &dup) {
		t.Errorf("declaring over pi gave %#v, not *DuplicateSymbolError", err)
	}
}

func TestAccessorRoundTrip(t *testing.T) {
	ext := 5.0
	e := uiexpr.New()
	err := e.BindAccessor("ext",
		func() float64 { return ext },
		func(v float64) { ext = v })
	if err != nil {
		t.Fatal(err)
	}

	res, err := e.Evaluate("ext = ext * 2")
	if err != nil {
		t.Fatalf("accessor assignment failed: %v", err)
	}
	if !res.Void {
		t.Error("accessor assignment produced a value")
	}
	if ext != 10 {
		t.Errorf("external value is %g, want 10", ext)
	}

	// Mutation from outside is visible without rebinding.
	ext = 30
	if r := evalValue(t, e, "ext + 1"); r != 31 {
		t.Errorf("ext + 1: want 31, got %g", r)
	}

	// The accessor namespace shares names with the others.
	err = e.BindAccessor("ext", func() float64 { return 0 }, func(float64) {})
	var dup *uiexpr.DuplicateSymbolError
	if !errors.As(err, &dup) {
		t.Errorf("rebinding ext gave %#v, not *DuplicateSymbolError", err)
	}

	e.UnbindAccessor("ext")
	_, err = e.Evaluate("ext")
	var unk *uiexpr.UnknownSymbolError
	if !errors.As(err, &unk) {
		t.Errorf("reading unbound ext gave %#v, not *UnknownSymbolError", err)
	}
	// Unbinding an unknown name is a no-op.
	e.UnbindAccessor("ext")
	e.UnbindAccessor("never_bound")
}

func TestUnbindLeavesOtherKinds(t *testing.T) {
	e := uiexpr.New()
	if err := e.DeclareVariable("x", 1); err != nil {
		t.Fatal(err)
	}
	e.BindAccessor("a", func() float64 { return 2 }, func(float64) {})
	e.BindAccessor("b", func() float64 { return 3 }, func(float64) {})

	// Unbind only removes accessors, never variables or constants.
	e.UnbindAccessor("x")
	e.UnbindAccessor("pi")
	if v, err := e.Lookup("x"); err != nil || v != 1 {
		t.Errorf("x is %g (%v) after unbind, want 1", v, err)
	}
	if v, err := e.Lookup("pi"); err != nil || v != math.Pi {
		t.Errorf("pi is %g (%v) after unbind", v, err)
	}

	e.UnbindAllAccessors()
	if _, err := e.Lookup("a"); err == nil {
		t.Error("a survived UnbindAllAccessors")
	}
	if _, err := e.Lookup("b"); err == nil {
		t.Error("b survived UnbindAllAccessors")
	}
	if v, err := e.Lookup("x"); err != nil || v != 1 {
		t.Errorf("x is %g (%v) after UnbindAllAccessors, want 1", v, err)
	}
}

func TestNoPartialMutation(t *testing.T) {
	e := uiexpr.New()
	if err := e.DeclareVariable("x", 7); err != nil {
		t.Fatal(err)
	}
	// A right-hand side that fails to parse must not touch x.
	if _, err := e.Evaluate("x = 1 +"); err == nil {
		t.Fatal("x = 1 + parsed")
	}
	if v, _ := e.Lookup("x"); v != 7 {
		t.Errorf("failed assignment changed x to %g", v)
	}
	// Same for one that fails to evaluate.
	if _, err := e.Evaluate("x = nosuch + 1"); err == nil {
		t.Fatal("x = nosuch + 1 evaluated")
	}
	if v, _ := e.Lookup("x"); v != 7 {
		t.Errorf("failed assignment changed x to %g", v)
	}
}

func TestEvaluateArithmetic(t *testing.T) {
	e := uiexpr.New()
	if err := e.DeclareVariable("x", 3); err != nil {
		t.Fatal(err)
	}

	r, err := e.EvaluateArithmetic("2 * (pi - pi) + floor(2.7)")
	if err != nil {
		t.Fatalf("arithmetic evaluation failed: %v", err)
	}
	if r != 2 {
		t.Errorf("want 2, got %g", r)
	}

	bad := []string{"x", "1 + x", "x = 1", "var y = 1", "nosuch"}
	for _, src := range bad {
		_, err := e.EvaluateArithmetic(src)
		var serr *uiexpr.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("%q gave %#v, not *SyntaxError", src, err)
		}
	}
}

func TestPrintStatement(t *testing.T) {
	var buf strings.Builder
	e := uiexpr.New(uiexpr.WithOutput(&buf))

	res, err := e.Evaluate("print(2 + 3)")
	if err != nil {
		t.Fatalf("print failed: %v", err)
	}
	if !res.Void {
		t.Error("bare print statement produced a value")
	}
	if res.Value != 5 {
		t.Errorf("printed value is %g, want 5", res.Value)
	}
	if buf.String() != "5\n" {
		t.Errorf("print wrote %q, want %q", buf.String(), "5\n")
	}

	// print passes its argument through inside larger expressions.
	buf.Reset()
	if r := evalValue(t, e, "print(2) + 1"); r != 3 {
		t.Errorf("print(2) + 1: want 3, got %g", r)
	}
	if buf.String() != "2\n" {
		t.Errorf("print wrote %q, want %q", buf.String(), "2\n")
	}
}

func TestWithConstant(t *testing.T) {
	e := uiexpr.New(uiexpr.WithConstant("contentmargin", 8))
	if r := evalValue(t, e, "contentmargin * 2"); r != 16 {
		t.Errorf("contentmargin * 2: want 16, got %g", r)
	}
	_, err := e.Evaluate("contentmargin = 1")
	var ca *uiexpr.ConstantAssignmentError
	if !errors.As(err, &ca) {
		t.Errorf("assigning a host constant gave %#v, not *ConstantAssignmentError", err)
	}
	_, err = e.Evaluate("var contentmargin = 1")
	var dup *uiexpr.DuplicateSymbolError
	if !errors.As(err, &dup) {
		t.Errorf("declaring over a host constant gave %#v, not *DuplicateSymbolError", err)
	}
}

func TestErrorKinds(t *testing.T) {
	e := uiexpr.New()
	syntax := []string{"1 ? 2", "notafunc(1)", "sin(1, 2)", "(1", "", "1 + (x = 2)"}
	for _, src := range syntax {
		_, err := e.Evaluate(src)
		var serr *uiexpr.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("%q gave %#v, not *SyntaxError", src, err)
		}
	}
	_, err := e.Evaluate("2 @ 3")
	var lerr *uiexpr.LexError
	if !errors.As(err, &lerr) {
		t.Errorf("2 @ 3 gave %#v, not *LexError", err)
	}
	_, err = e.Evaluate("unknown_name + 1")
	var unk *uiexpr.UnknownSymbolError
	if !errors.As(err, &unk) {
		t.Errorf("unknown_name + 1 gave %#v, not *UnknownSymbolError", err)
	}
}

func TestInputErrorPositions(t *testing.T) {
	e := uiexpr.New()
	_, err := e.Evaluate("1 + @")
	var in uiexpr.InputError
	if !errors.As(err, &in) {
		t.Fatalf("%#v is not InputError", err)
	}
	// Col counts runes scanned through the offending @.
	if in.Pos() != 6 {
		t.Errorf("error position is %d, want 6", in.Pos())
	}
}
