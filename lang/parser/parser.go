// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package parser implements a recursive-descent parser for glox.
//
// Design overview:
//
//   - Declarations and statements are parsed with straightforward recursive
//     descent.
//   - Binary operators are parsed by precedence climbing over a table, so
//     every level of the grammar (or, and, equality, comparison, term,
//     factor) is one row rather than one function.
//   - A syntax error abandons the current declaration; the parser then
//     synchronises by skipping to the next statement boundary.
//   - Parse stops at the first erroneous declaration. ParseAll keeps going
//     and reports every error.
package parser

import (
	mapset "github.com/deckarep/golang-set"

	"github.com/probechain/go-lox/lang/ast"
	"github.com/probechain/go-lox/lang/token"
)

// ---------------------------------------------------------------------------
// Precedence levels
// ---------------------------------------------------------------------------

type precedence int

const (
	precLowest     precedence = iota
	precOr                    // or
	precAnd                   // and
	precEquality              // == !=
	precComparison            // > >= < <=
	precTerm                  // + -
	precFactor                // * /
)

// binaryPrecedence maps a token type to its infix binding power. All binary
// operators are left associative.
var binaryPrecedence = map[token.Type]precedence{
	token.OR:    precOr,
	token.AND:   precAnd,
	token.EQ:    precEquality,
	token.NEQ:   precEquality,
	token.GT:    precComparison,
	token.GTE:   precComparison,
	token.LT:    precComparison,
	token.LTE:   precComparison,
	token.PLUS:  precTerm,
	token.MINUS: precTerm,
	token.STAR:  precFactor,
	token.SLASH: precFactor,
}

// syncKeywords are the tokens that start a new declaration or statement.
// Error recovery stops in front of them.
var syncKeywords = mapset.NewSet(
	token.CLASS, token.FUN, token.VAR, token.FOR,
	token.IF, token.WHILE, token.PRINT, token.RETURN,
)

// ---------------------------------------------------------------------------
// Parser
// ---------------------------------------------------------------------------

// Option configures a Parser.
type Option func(*Parser)

// RequireSemicolons makes ';' mandatory after every statement. Without it a
// trailing ';' is accepted but optional.
func RequireSemicolons() Option {
	return func(p *Parser) { p.requireSemi = true }
}

// Parser holds the mutable state for a single parse run.
type Parser struct {
	toks []token.Token
	pos  int

	requireSemi bool
	errors      []error
}

// bailout unwinds the current declaration after a syntax error.
type bailout struct{}

func newParser(toks []token.Token, opts ...Option) *Parser {
	if n := len(toks); n == 0 || toks[n-1].Type != token.EOF {
		line := 1
		if n > 0 {
			line = toks[n-1].Line
		}
		toks = append(toks[:n:n], token.Token{Type: token.EOF, Line: line})
	}
	p := &Parser{toks: toks}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse builds the statement list for toks. It stops at the first
// declaration containing a syntax error and returns that error; no
// statements are returned in that case.
func Parse(toks []token.Token, opts ...Option) ([]ast.Stmt, error) {
	p := newParser(toks, opts...)
	var stmts []ast.Stmt
	for !p.atEnd() {
		stmt := p.parseDeclaration()
		if len(p.errors) > 0 {
			return nil, p.errors[0]
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// ParseAll parses the whole token stream, synchronising after each syntax
// error. It returns the statements that parsed cleanly together with every
// error, in source order.
func ParseAll(toks []token.Token, opts ...Option) ([]ast.Stmt, []error) {
	p := newParser(toks, opts...)
	var stmts []ast.Stmt
	for !p.atEnd() {
		before := len(p.errors)
		if stmt := p.parseDeclaration(); stmt != nil && len(p.errors) == before {
			stmts = append(stmts, stmt)
		}
	}
	return stmts, p.errors
}

// ---------------------------------------------------------------------------
// Token navigation helpers
// ---------------------------------------------------------------------------

func (p *Parser) cur() token.Token { return p.toks[p.pos] }

func (p *Parser) atEnd() bool { return p.cur().Type == token.EOF }

func (p *Parser) curIs(typ token.Type) bool { return p.cur().Type == typ }

// next consumes and returns the current token. EOF is never consumed.
func (p *Parser) next() token.Token {
	tok := p.cur()
	if !p.atEnd() {
		p.pos++
	}
	return tok
}

// accept consumes the current token if it has the given type.
func (p *Parser) accept(typ token.Type) bool {
	if p.curIs(typ) {
		p.next()
		return true
	}
	return false
}

// expect consumes the current token if it matches typ, otherwise reports msg
// at the current token and abandons the declaration.
func (p *Parser) expect(typ token.Type, msg string) token.Token {
	if p.curIs(typ) {
		return p.next()
	}
	p.fail(p.cur(), msg)
	return token.Token{}
}

// terminator handles the ';' after a statement.
func (p *Parser) terminator(msg string) {
	if p.requireSemi {
		p.expect(token.SEMICOLON, msg)
		return
	}
	p.accept(token.SEMICOLON)
}

// report records a syntax error at tok without unwinding.
func (p *Parser) report(tok token.Token, msg string) {
	p.errors = append(p.errors, &Error{
		Line:   tok.Line,
		Lexeme: tok.Lexeme,
		AtEnd:  tok.Type == token.EOF,
		Msg:    msg,
	})
}

// fail records a syntax error at tok and unwinds to parseDeclaration.
func (p *Parser) fail(tok token.Token, msg string) {
	p.report(tok, msg)
	panic(bailout{})
}

// synchronize discards tokens until just past a ';' or just before a token
// that starts a new statement. It always consumes at least one token unless
// the parser is at EOF.
func (p *Parser) synchronize() {
	p.next()
	for !p.atEnd() {
		if p.toks[p.pos-1].Type == token.SEMICOLON {
			return
		}
		if syncKeywords.Contains(p.cur().Type) {
			return
		}
		p.next()
	}
}

// ---------------------------------------------------------------------------
// Declarations and statements
// ---------------------------------------------------------------------------

// parseDeclaration returns nil if the declaration was abandoned.
func (p *Parser) parseDeclaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			p.synchronize()
			stmt = nil
		}
	}()
	if p.accept(token.VAR) {
		return p.parseVarDecl()
	}
	return p.parseStatement()
}

func (p *Parser) parseVarDecl() *ast.VarDecl {
	decl := &ast.VarDecl{Name: p.expect(token.IDENT, "Expect variable name.")}
	if p.accept(token.ASSIGN) {
		decl.Initializer = p.parseExpression()
	}
	p.terminator("Expect ';' after variable declaration.")
	return decl
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur().Type {
	case token.PRINT:
		stmt := &ast.PrintStmt{Token: p.next()}
		stmt.Expr = p.parseExpression()
		p.terminator("Expect ';' after value.")
		return stmt
	case token.LBRACE:
		return p.parseBlock()
	default:
		stmt := &ast.ExprStmt{Expr: p.parseExpression()}
		p.terminator("Expect ';' after expression.")
		return stmt
	}
}

func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{Token: p.next()}
	for !p.curIs(token.RBRACE) && !p.atEnd() {
		if stmt := p.parseDeclaration(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
	}
	p.expect(token.RBRACE, "Expect '}' after block.")
	return block
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

func (p *Parser) parseExpression() ast.Expr {
	return p.parseAssignment()
}

// parseAssignment is right associative: a = b = c assigns c to both.
func (p *Parser) parseAssignment() ast.Expr {
	expr := p.parseBinary(precOr)
	if !p.curIs(token.ASSIGN) {
		return expr
	}
	eq := p.next()
	value := p.parseAssignment()
	if v, ok := expr.(*ast.Variable); ok {
		return &ast.Assign{Name: v.Name, Value: value}
	}
	// The expression is still well formed, so there is nothing to recover
	// from; record the error and carry on.
	p.report(eq, "Invalid assignment target.")
	return expr
}

// parseBinary parses a left-associative chain of binary operators whose
// precedence is at least min.
func (p *Parser) parseBinary(min precedence) ast.Expr {
	left := p.parseUnary()
	for {
		prec, ok := binaryPrecedence[p.cur().Type]
		if !ok || prec < min {
			return left
		}
		op := p.next()
		right := p.parseBinary(prec + 1)
		left = &ast.Binary{Left: left, Operator: op, Right: right}
	}
}

func (p *Parser) parseUnary() ast.Expr {
	if p.curIs(token.BANG) || p.curIs(token.MINUS) {
		op := p.next()
		return &ast.Unary{Operator: op, Operand: p.parseUnary()}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.cur()
	switch tok.Type {
	case token.NUMBER, token.STRING:
		p.next()
		return &ast.Literal{Token: tok, Value: tok.Literal}
	case token.TRUE:
		p.next()
		return &ast.Literal{Token: tok, Value: true}
	case token.FALSE:
		p.next()
		return &ast.Literal{Token: tok, Value: false}
	case token.NIL:
		p.next()
		return &ast.Literal{Token: tok, Value: nil}
	case token.IDENT:
		p.next()
		return &ast.Variable{Name: tok}
	case token.LPAREN:
		p.next()
		inner := p.parseExpression()
		p.expect(token.RPAREN, "Expect ')' after expression.")
		return &ast.Grouping{Token: tok, Inner: inner}
	}
	p.fail(tok, "Expect expression.")
	return nil
}
