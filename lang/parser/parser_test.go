// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/probechain/go-lox/lang/ast"
	"github.com/probechain/go-lox/lang/lexer"
	"github.com/probechain/go-lox/lang/token"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

func scan(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, errs := lexer.Scan([]byte(src))
	if len(errs) > 0 {
		t.Fatalf("unexpected lexer errors: %v", errs)
	}
	return toks
}

// mustParse asserts that the source parses without errors and returns the
// statements.
func mustParse(t *testing.T, src string, opts ...Option) []ast.Stmt {
	t.Helper()
	stmts, err := Parse(scan(t, src), opts...)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return stmts
}

// parseWithError parses and expects an error to be reported.
func parseWithError(t *testing.T, src string, opts ...Option) error {
	t.Helper()
	stmts, err := Parse(scan(t, src), opts...)
	if err == nil {
		t.Fatal("expected parse error, but none was reported")
	}
	if stmts != nil {
		t.Errorf("expected no statements alongside an error, got %d", len(stmts))
	}
	return err
}

func render(stmts []ast.Stmt) []string {
	out := make([]string, len(stmts))
	for i, s := range stmts {
		out[i] = ast.Sprint(s, token.Shortest)
	}
	return out
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`42`, `42.0`},
		{`"hello"`, `hello`},
		{`true`, `true`},
		{`nil`, `nil`},
		{`x`, `x`},
		{`(1)`, `(group 1.0)`},
		{`((x))`, `(group (group x))`},
		{`-x`, `(- x)`},
		{`!-x`, `(! (- x))`},
		{`!!true`, `(! (! true))`},
		{`1 + 2 * 3`, `(+ 1.0 (* 2.0 3.0))`},
		{`(1 + 2) * 3`, `(* (group (+ 1.0 2.0)) 3.0)`},
		{`1 - 2 - 3`, `(- (- 1.0 2.0) 3.0)`},
		{`8 / 4 / 2`, `(/ (/ 8.0 4.0) 2.0)`},
		{`-1 * 2`, `(* (- 1.0) 2.0)`},
		{`1 < 2 == true`, `(== (< 1.0 2.0) true)`},
		{`1 + 2 >= 3 - 4`, `(>= (+ 1.0 2.0) (- 3.0 4.0))`},
		{`a != b == c`, `(== (!= a b) c)`},
		{`a or b and c`, `(or a (and b c))`},
		{`a and b or c`, `(or (and a b) c)`},
		{`a == b and c`, `(and (== a b) c)`},
		{`a = 1`, `(assign a 1.0)`},
		{`a = b = 3`, `(assign a (assign b 3.0))`},
		{`a = b or c`, `(assign a (or b c))`},
		{`12.5`, `12.5`},
	}
	for _, tt := range tests {
		stmts := mustParse(t, tt.src)
		if len(stmts) != 1 {
			t.Fatalf("%q: want 1 statement, got %d", tt.src, len(stmts))
		}
		if _, ok := stmts[0].(*ast.ExprStmt); !ok {
			t.Fatalf("%q: want *ast.ExprStmt, got %T", tt.src, stmts[0])
		}
		if got := stmts[0].String(); got != tt.want {
			t.Errorf("%q: want %s, got %s", tt.src, tt.want, got)
		}
	}
}

func TestParseLogicalOperatorsAreBinary(t *testing.T) {
	stmts := mustParse(t, `a or b`)
	bin, ok := stmts[0].(*ast.ExprStmt).Expr.(*ast.Binary)
	if !ok {
		t.Fatalf("want *ast.Binary, got %T", stmts[0].(*ast.ExprStmt).Expr)
	}
	if bin.Operator.Type != token.OR {
		t.Errorf("operator: want OR, got %s", bin.Operator.Type)
	}
}

func TestParseAssignKeepsNameToken(t *testing.T) {
	stmts := mustParse(t, "\n\ncounter = 1;")
	assign, ok := stmts[0].(*ast.ExprStmt).Expr.(*ast.Assign)
	if !ok {
		t.Fatalf("want *ast.Assign, got %T", stmts[0].(*ast.ExprStmt).Expr)
	}
	if assign.Name.Lexeme != "counter" || assign.Name.Line != 3 {
		t.Errorf("name: want counter@3, got %s@%d", assign.Name.Lexeme, assign.Name.Line)
	}
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

func TestParseStatements(t *testing.T) {
	src := `
var a = 1;
var b;
print a + b;
{
  var a = "inner";
  print a;
  {}
}
a = 2;
`
	want := []string{
		`(var a 1.0)`,
		`(var b nil)`,
		`(print (+ a b))`,
		`(block (var a inner) (print a) (block))`,
		`(assign a 2.0)`,
	}
	got := render(mustParse(t, src, RequireSemicolons()))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("statements mismatch (-want +got):\n%s", diff)
	}
}

func TestParseVarDeclWithoutInitializer(t *testing.T) {
	stmts := mustParse(t, `var x;`)
	decl, ok := stmts[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("want *ast.VarDecl, got %T", stmts[0])
	}
	if decl.Initializer != nil {
		t.Errorf("initializer: want nil, got %v", decl.Initializer)
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, src := range []string{"", "   \n// only a comment\n"} {
		if stmts := mustParse(t, src); len(stmts) != 0 {
			t.Errorf("%q: want no statements, got %d", src, len(stmts))
		}
	}
	// A token slice without a trailing EOF is accepted too.
	stmts, err := Parse(nil)
	if err != nil || len(stmts) != 0 {
		t.Errorf("Parse(nil): want no statements and no error, got %d, %v", len(stmts), err)
	}
}

// ---------------------------------------------------------------------------
// Statement terminators
// ---------------------------------------------------------------------------

func TestOptionalSemicolons(t *testing.T) {
	want := []string{`(print 1.0)`, `(+ 2.0 3.0)`, `(var x 4.0)`}
	got := render(mustParse(t, "print 1\n2 + 3;\nvar x = 4"))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("statements mismatch (-want +got):\n%s", diff)
	}
}

func TestRequiredSemicolons(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`print 1`, `[line 1] Error at end: Expect ';' after value.`},
		{`1 + 2`, `[line 1] Error at end: Expect ';' after expression.`},
		{"var x = 1\nprint x;", `[line 2] Error at 'print': Expect ';' after variable declaration.`},
	}
	for _, tt := range tests {
		err := parseWithError(t, tt.src, RequireSemicolons())
		if err.Error() != tt.want {
			t.Errorf("%q:\nwant %s\ngot  %s", tt.src, tt.want, err)
		}
	}
}

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`1 = 2;`, `[line 1] Error at '=': Invalid assignment target.`},
		{`(a) = 2;`, `[line 1] Error at '=': Invalid assignment target.`},
		{`a + b = c;`, `[line 1] Error at '=': Invalid assignment target.`},
		{`(1 + 2`, `[line 1] Error at end: Expect ')' after expression.`},
		{"(1 + 2\n;", `[line 2] Error at ';': Expect ')' after expression.`},
		{`{ print 1;`, `[line 1] Error at end: Expect '}' after block.`},
		{"{\n  var x = 1;\n", `[line 3] Error at end: Expect '}' after block.`},
		{`print ;`, `[line 1] Error at ';': Expect expression.`},
		{`var 1 = 2;`, `[line 1] Error at '1': Expect variable name.`},
		{`1 +;`, `[line 1] Error at ';': Expect expression.`},
		{`)`, `[line 1] Error at ')': Expect expression.`},
		{`{ print }`, `[line 1] Error at '}': Expect expression.`},
	}
	for _, tt := range tests {
		err := parseWithError(t, tt.src)
		if err.Error() != tt.want {
			t.Errorf("%q:\nwant %s\ngot  %s", tt.src, tt.want, err)
		}
		if !errors.Is(err, ErrParse) {
			t.Errorf("%q: error does not match ErrParse", tt.src)
		}
		var perr *Error
		if !errors.As(err, &perr) {
			t.Errorf("%q: want *parser.Error, got %T", tt.src, err)
		}
	}
}

func TestParseErrorFields(t *testing.T) {
	err := parseWithError(t, "var a = 1;\na + 1 = 3;")
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("want *parser.Error, got %T", err)
	}
	want := &Error{Line: 2, Lexeme: "=", Msg: "Invalid assignment target."}
	if diff := cmp.Diff(want, perr); diff != "" {
		t.Errorf("error mismatch (-want +got):\n%s", diff)
	}
}

// Parse reports only the first error; ParseAll synchronises after each one
// and keeps going.
const multiErrorSrc = `print ;
var x = 1;
print (2;
print 3;
1 = 4;
var ok = true;
`

func TestParseStopsAtFirstError(t *testing.T) {
	err := parseWithError(t, multiErrorSrc)
	if want := `[line 1] Error at ';': Expect expression.`; err.Error() != want {
		t.Errorf("want %s, got %s", want, err)
	}
}

func TestParseAllAccumulatesErrors(t *testing.T) {
	stmts, errs := ParseAll(scan(t, multiErrorSrc), RequireSemicolons())

	wantErrs := []string{
		`[line 1] Error at ';': Expect expression.`,
		`[line 3] Error at ';': Expect ')' after expression.`,
		`[line 5] Error at '=': Invalid assignment target.`,
	}
	gotErrs := make([]string, len(errs))
	for i, e := range errs {
		gotErrs[i] = e.Error()
	}
	if diff := cmp.Diff(wantErrs, gotErrs); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}

	wantStmts := []string{`(var x 1.0)`, `(print 3.0)`, `(var ok true)`}
	if diff := cmp.Diff(wantStmts, render(stmts)); diff != "" {
		t.Errorf("statements mismatch (-want +got):\n%s", diff)
	}
}

func TestSynchronizeStopsAtStatementKeyword(t *testing.T) {
	// No ';' after the broken expression: recovery resumes at 'print'.
	stmts, errs := ParseAll(scan(t, "1 + + 2 3 print 4;"))
	if len(errs) != 1 {
		t.Fatalf("want 1 error, got %d: %v", len(errs), errs)
	}
	if got := strings.Join(render(stmts), " "); got != `(print 4.0)` {
		t.Errorf("want (print 4.0), got %s", got)
	}
}

func TestErrorInsideBlock(t *testing.T) {
	src := "{\n  var a = 1;\n  print ;\n  print a;\n}\nprint 2;"

	err := parseWithError(t, src)
	if want := `[line 3] Error at ';': Expect expression.`; err.Error() != want {
		t.Errorf("want %s, got %s", want, err)
	}

	stmts, errs := ParseAll(scan(t, src))
	if len(errs) != 1 {
		t.Fatalf("want 1 error, got %d: %v", len(errs), errs)
	}
	// The block containing the error is dropped; the following statement
	// still parses.
	if diff := cmp.Diff([]string{`(print 2.0)`}, render(stmts)); diff != "" {
		t.Errorf("statements mismatch (-want +got):\n%s", diff)
	}
}
