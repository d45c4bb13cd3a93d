// Package uiexpr implements the expression engine embedded in OTK.UI.
//
// The engine evaluates one statement per call. A statement is a variable
// declaration ("var width = 120"), an assignment to an existing variable
// or accessor ("width = width + 8"), or a bare expression. Expressions
// use IEEE-754 double precision throughout and support arithmetic
// (+ - * / % ^), comparisons (< > <= >= == !=), logical & | $ (and, or,
// exclusive or), the conditional operator ?:, and calls to a fixed table
// of unary builtin functions. Function names match case-insensitively;
// every other name is case-sensitive.
//
// Each engine owns a symbol table spanning three kinds of names:
// immutable constants seeded at construction (pi, tau, phi, e, true,
// false, plus any supplied with WithConstant), mutable variables created
// by var statements, and accessors bound to externally owned values
// through a getter/setter pair. A name occupies at most one of the three
// kinds at a time.
//
// An Engine is not safe for concurrent use; callers must serialize
// access. Accessor callbacks run synchronously during evaluation and
// must not call back into the engine that invoked them.
package uiexpr
