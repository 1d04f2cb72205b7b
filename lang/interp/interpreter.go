// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package interp executes glox syntax trees.
//
// The interpreter walks the tree directly: execute handles statements and
// evaluate handles expressions, each as one exhaustive type switch over the
// ast node set. Evaluation is fail-fast; the first RuntimeError stops the
// run. Scopes form a chain of Environments linked by parent pointers. A block
// swaps in a child scope and restores the previous one on every exit path.
package interp

import (
	"fmt"
	"io"

	"github.com/probechain/go-lox/lang/ast"
	"github.com/probechain/go-lox/lang/token"
)

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput directs print output (and echoed values) to w.
func WithOutput(w io.Writer) Option {
	return func(in *Interpreter) { in.out = w }
}

// WithEcho makes every expression statement write its value to the output,
// as a calculator or REPL would.
func WithEcho() Option {
	return func(in *Interpreter) { in.echo = true }
}

// WithNumberFormat sets how numbers are rendered by print and echo.
func WithNumberFormat(nf token.NumberFormat) Option {
	return func(in *Interpreter) { in.nf = nf }
}

// Interpreter holds the global scope and the current scope. It is not safe
// for concurrent use.
type Interpreter struct {
	globals *Environment
	env     *Environment

	out  io.Writer
	echo bool
	nf   token.NumberFormat
}

// New creates an Interpreter with an empty global scope. Output defaults to
// io.Discard.
func New(opts ...Option) *Interpreter {
	globals := NewEnvironment(nil)
	in := &Interpreter{globals: globals, env: globals, out: io.Discard}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Globals returns the outermost scope. Bindings persist across calls to
// Interpret.
func (in *Interpreter) Globals() *Environment { return in.globals }

// Interpret executes stmts in order, stopping at the first error. A failed
// run leaves the current scope at the global scope.
func (in *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := in.execute(s); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate computes the value of a single expression in the current scope.
func (in *Interpreter) Evaluate(expr ast.Expr) (Value, error) {
	return in.evaluate(expr)
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

func (in *Interpreter) execute(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		v, err := in.evaluate(s.Expr)
		if err != nil {
			return err
		}
		if in.echo {
			return in.emit(v)
		}
		return nil

	case *ast.PrintStmt:
		v, err := in.evaluate(s.Expr)
		if err != nil {
			return err
		}
		return in.emit(v)

	case *ast.VarDecl:
		var v Value = Nil{}
		if s.Initializer != nil {
			var err error
			if v, err = in.evaluate(s.Initializer); err != nil {
				return err
			}
		}
		in.env.Define(s.Name.Lexeme, v)
		return nil

	case *ast.Block:
		return in.executeBlock(s.Statements, NewEnvironment(in.env))

	default:
		panic(fmt.Sprintf("interp: unexpected statement %T", stmt))
	}
}

// executeBlock runs stmts with env as the current scope.
func (in *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) error {
	prev := in.env
	in.env = env
	defer func() { in.env = prev }()

	for _, s := range stmts {
		if err := in.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) emit(v Value) error {
	if _, err := fmt.Fprintln(in.out, Stringify(v, in.nf)); err != nil {
		return fmt.Errorf("interp: write output: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

func (in *Interpreter) evaluate(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return FromLiteral(e.Value), nil

	case *ast.Grouping:
		return in.evaluate(e.Inner)

	case *ast.Variable:
		return in.env.Get(e.Name)

	case *ast.Assign:
		v, err := in.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if err := in.env.Assign(e.Name, v); err != nil {
			return nil, err
		}
		return v, nil

	case *ast.Unary:
		v, err := in.evaluate(e.Operand)
		if err != nil {
			return nil, err
		}
		return unary(e.Operator, v)

	case *ast.Binary:
		if e.Operator.Type == token.AND || e.Operator.Type == token.OR {
			return in.logical(e)
		}
		left, err := in.evaluate(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := in.evaluate(e.Right)
		if err != nil {
			return nil, err
		}
		return binary(e.Operator, left, right)

	default:
		panic(fmt.Sprintf("interp: unexpected expression %T", expr))
	}
}

// logical short-circuits and yields the operand that decided the result.
func (in *Interpreter) logical(e *ast.Binary) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Operator.Type == token.OR {
		if Truthy(left) {
			return left, nil
		}
	} else if !Truthy(left) {
		return left, nil
	}
	return in.evaluate(e.Right)
}

func unary(op token.Token, v Value) (Value, error) {
	switch op.Type {
	case token.BANG:
		return Bool(!Truthy(v)), nil
	case token.MINUS:
		n, ok := v.(Number)
		if !ok {
			return nil, &RuntimeError{Kind: InvalidUnaryOperand, Line: op.Line, Operator: op.Lexeme}
		}
		return -n, nil
	}
	panic(fmt.Sprintf("interp: unexpected unary operator %s", op.Type))
}

func binary(op token.Token, left, right Value) (Value, error) {
	switch op.Type {
	case token.EQ:
		return Bool(Equal(left, right)), nil
	case token.NEQ:
		return Bool(!Equal(left, right)), nil
	case token.PLUS:
		if l, ok := left.(String); ok {
			if r, ok := right.(String); ok {
				return l + r, nil
			}
		}
	}

	l, lok := left.(Number)
	r, rok := right.(Number)
	if !lok || !rok {
		return nil, &RuntimeError{Kind: InvalidBinaryOperands, Line: op.Line, Operator: op.Lexeme}
	}
	switch op.Type {
	case token.PLUS:
		return l + r, nil
	case token.MINUS:
		return l - r, nil
	case token.STAR:
		return l * r, nil
	case token.SLASH:
		if r == 0 {
			return nil, &RuntimeError{Kind: DivisionByZero, Line: op.Line, Operator: op.Lexeme}
		}
		return l / r, nil
	case token.GT:
		return Bool(l > r), nil
	case token.GTE:
		return Bool(l >= r), nil
	case token.LT:
		return Bool(l < r), nil
	case token.LTE:
		return Bool(l <= r), nil
	}
	panic(fmt.Sprintf("interp: unexpected binary operator %s", op.Type))
}
