package uiexpr

import (
	"math"
	"strings"
)

// builtin is one entry of the function registry. Every builtin takes
// exactly one argument. print is flagged rather than given a body
// because its side effect needs the engine's output writer.
type builtin struct {
	name  string
	fn    func(float64) float64
	print bool
}

// lookupFunc finds a builtin by name, case-insensitively. Variable,
// constant, and accessor names are never normalized; only function
// dispatch ignores case.
func lookupFunc(name string) *builtin {
	return builtins[strings.ToLower(name)]
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

var builtins = map[string]*builtin{
	"sin":   {name: "sin", fn: math.Sin},
	"cos":   {name: "cos", fn: math.Cos},
	"tan":   {name: "tan", fn: math.Tan},
	"asin":  {name: "asin", fn: math.Asin},
	"acos":  {name: "acos", fn: math.Acos},
	"atan":  {name: "atan", fn: math.Atan},
	"sinh":  {name: "sinh", fn: math.Sinh},
	"cosh":  {name: "cosh", fn: math.Cosh},
	"tanh":  {name: "tanh", fn: math.Tanh},
	"asinh": {name: "asinh", fn: math.Asinh},
	"acosh": {name: "acosh", fn: math.Acosh},
	"atanh": {name: "atanh", fn: math.Atanh},

	"ln":   {name: "ln", fn: math.Log},
	"log":  {name: "log", fn: math.Log10},
	"log2": {name: "log2", fn: math.Log2},
	"sqrt": {name: "sqrt", fn: math.Sqrt},
	"exp":  {name: "exp", fn: math.Exp},

	"abs":   {name: "abs", fn: math.Abs},
	"floor": {name: "floor", fn: math.Floor},
	"ceil":  {name: "ceil", fn: math.Ceil},
	// round is half away from zero: round(2.5) is 3, round(-2.5) is -3.
	"round": {name: "round", fn: math.Round},
	"sign": {name: "sign", fn: func(x float64) float64 {
		// sign(0) is 0, not ±1.
		if x > 0 {
			return 1
		}
		if x < 0 {
			return -1
		}
		return 0
	}},
	"negate":   {name: "negate", fn: func(x float64) float64 { return -x }},
	"degtorad": {name: "degtorad", fn: func(x float64) float64 { return x * math.Pi / 180 }},

	"eqz":  {name: "eqz", fn: func(x float64) float64 { return b2f(x == 0) }},
	"neqz": {name: "neqz", fn: func(x float64) float64 { return b2f(x != 0) }},
	"geqz": {name: "geqz", fn: func(x float64) float64 { return b2f(x >= 0) }},
	"leqz": {name: "leqz", fn: func(x float64) float64 { return b2f(x <= 0) }},
	"gtz":  {name: "gtz", fn: func(x float64) float64 { return b2f(x > 0) }},
	"ltz":  {name: "ltz", fn: func(x float64) float64 { return b2f(x < 0) }},

	"isnan": {name: "isnan", fn: func(x float64) float64 { return b2f(math.IsNaN(x)) }},
	"isinf": {name: "isinf", fn: func(x float64) float64 { return b2f(math.IsInf(x, 0)) }},
	"not":   {name: "not", fn: func(x float64) float64 { return b2f(x == 0) }},
	"bool":  {name: "bool", fn: func(x float64) float64 { return b2f(x != 0) }},

	"print": {name: "print", print: true},
}
