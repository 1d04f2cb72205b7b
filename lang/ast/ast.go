// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package ast defines the Abstract Syntax Tree for glox.
//
// Design overview:
//
//   - All AST nodes implement Node via TokenLiteral and String.
//   - Expr and Stmt are closed marker interfaces: the unexported marker
//     methods keep the variant sets fixed to this package, so traversals
//     (the printer here, the evaluator in package interp) are single
//     functions switching exhaustively over the concrete node types.
//   - Each node exclusively owns its children; the tree has no sharing.
//   - Nodes keep the originating token.Token so diagnostics can report the
//     source line.
package ast

import "github.com/probechain/go-lox/lang/token"

// ---------------------------------------------------------------------------
// Core interfaces
// ---------------------------------------------------------------------------

// Node is the base interface that every AST node must implement.
type Node interface {
	// TokenLiteral returns the lexeme of the token that originated this node.
	TokenLiteral() string

	// String returns the fully parenthesised s-expression form of the node.
	String() string
}

// Expr is a marker interface for all expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a marker interface for all statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// Literal is a constant: a number, string, boolean or nil.
type Literal struct {
	Token token.Token
	Value any // float64, string, bool or nil
}

func (e *Literal) exprNode()            {}
func (e *Literal) TokenLiteral() string { return e.Token.Lexeme }
func (e *Literal) String() string       { return Sprint(e, token.Shortest) }

// Binary is an infix operation. The logical keywords `and` and `or` are also
// represented as Binary nodes; the evaluator short-circuits them.
type Binary struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (e *Binary) exprNode()            {}
func (e *Binary) TokenLiteral() string { return e.Operator.Lexeme }
func (e *Binary) String() string       { return Sprint(e, token.Shortest) }

// Grouping is a parenthesised expression.
type Grouping struct {
	Token token.Token // '('
	Inner Expr
}

func (e *Grouping) exprNode()            {}
func (e *Grouping) TokenLiteral() string { return e.Token.Lexeme }
func (e *Grouping) String() string       { return Sprint(e, token.Shortest) }

// Unary is a prefix operation: -x or !x.
type Unary struct {
	Operator token.Token
	Operand  Expr
}

func (e *Unary) exprNode()            {}
func (e *Unary) TokenLiteral() string { return e.Operator.Lexeme }
func (e *Unary) String() string       { return Sprint(e, token.Shortest) }

// Variable reads a variable by name.
type Variable struct {
	Name token.Token
}

func (e *Variable) exprNode()            {}
func (e *Variable) TokenLiteral() string { return e.Name.Lexeme }
func (e *Variable) String() string       { return Sprint(e, token.Shortest) }

// Assign stores Value into an existing variable. Assignment is an
// expression: it yields the assigned value.
type Assign struct {
	Name  token.Token
	Value Expr
}

func (e *Assign) exprNode()            {}
func (e *Assign) TokenLiteral() string { return e.Name.Lexeme }
func (e *Assign) String() string       { return Sprint(e, token.Shortest) }

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// ExprStmt evaluates an expression for its side effects.
type ExprStmt struct {
	Expr Expr
}

func (s *ExprStmt) stmtNode()            {}
func (s *ExprStmt) TokenLiteral() string { return s.Expr.TokenLiteral() }
func (s *ExprStmt) String() string       { return Sprint(s, token.Shortest) }

// PrintStmt writes the stringified value of Expr.
type PrintStmt struct {
	Token token.Token // 'print'
	Expr  Expr
}

func (s *PrintStmt) stmtNode()            {}
func (s *PrintStmt) TokenLiteral() string { return s.Token.Lexeme }
func (s *PrintStmt) String() string       { return Sprint(s, token.Shortest) }

// VarDecl declares a variable in the current scope.
type VarDecl struct {
	Name        token.Token
	Initializer Expr // nil means the variable starts as nil
}

func (s *VarDecl) stmtNode()            {}
func (s *VarDecl) TokenLiteral() string { return s.Name.Lexeme }
func (s *VarDecl) String() string       { return Sprint(s, token.Shortest) }

// Block runs its statements in a fresh nested scope.
type Block struct {
	Token      token.Token // '{'
	Statements []Stmt
}

func (s *Block) stmtNode()            {}
func (s *Block) TokenLiteral() string { return s.Token.Lexeme }
func (s *Block) String() string       { return Sprint(s, token.Shortest) }
