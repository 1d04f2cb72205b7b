// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package lexer implements a single-pass, no-backtracking scanner for glox.
//
// Design principles:
//   - Byte-oriented input; only string literal bodies may contain non-ASCII
//   - // line comments produce no token
//   - Errors never abort the scan: they are recorded and scanning resumes
//     with the next byte, so one run reports every problem in the input
//   - The token stream always ends with exactly one EOF token
package lexer

import (
	"strconv"
	"unicode/utf8"

	"github.com/probechain/go-lox/lang/token"
)

// Lexer holds the state for a single tokenization run.
type Lexer struct {
	input []byte

	off  int  // index of ch in input; len(input) once exhausted
	line int  // 1-based current line number
	ch   byte // current character; 0 when past end

	errors []error
}

// New creates a new Lexer for the given source bytes.
func New(input []byte) *Lexer {
	l := &Lexer{input: input, off: -1, line: 1}
	l.advance() // prime l.ch with the first byte
	return l
}

// Scan tokenizes src and returns every token (terminated by EOF) together
// with every error encountered, in source order.
func Scan(src []byte) ([]token.Token, []error) {
	l := New(src)
	toks := l.Tokenize()
	return toks, l.Errors()
}

// advance moves to the next byte, bumping the line counter when the byte
// being left behind is a newline.
func (l *Lexer) advance() {
	if l.ch == '\n' && l.off < len(l.input) {
		l.line++
	}
	if l.off < len(l.input) {
		l.off++
	}
	if l.off >= len(l.input) {
		l.ch = 0
		return
	}
	l.ch = l.input[l.off]
}

// atEnd reports whether the input is exhausted. A literal NUL byte in the
// input is not mistaken for end of input.
func (l *Lexer) atEnd() bool {
	return l.off >= len(l.input)
}

// peek returns the byte after the current character without consuming it.
func (l *Lexer) peek() byte {
	if l.off+1 >= len(l.input) {
		return 0
	}
	return l.input[l.off+1]
}

func (l *Lexer) errorf(kind ErrorKind, line int, ch rune) {
	l.errors = append(l.errors, &Error{Kind: kind, Line: line, Char: ch})
}

// Errors returns the errors recorded so far.
func (l *Lexer) Errors() []error {
	return l.errors
}

// skipTrivia consumes whitespace and line comments.
func (l *Lexer) skipTrivia() {
	for !l.atEnd() {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.advance()
		case l.ch == '/' && l.peek() == '/':
			for !l.atEnd() && l.ch != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

// NextToken scans and returns the next token. Bad input is recorded in
// Errors and skipped. After EOF is reached, subsequent calls keep returning
// EOF tokens.
func (l *Lexer) NextToken() token.Token {
	for {
		l.skipTrivia()
		if l.atEnd() {
			return token.Token{Type: token.EOF, Line: l.line}
		}
		if tok, ok := l.scanToken(); ok {
			return tok
		}
	}
}

// Tokenize returns all tokens (including the final EOF) produced by repeated
// calls to NextToken.
func (l *Lexer) Tokenize() []token.Token {
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

// scanToken consumes one lexeme starting at l.ch. It reports false when the
// lexeme was erroneous and no token was produced.
func (l *Lexer) scanToken() (token.Token, bool) {
	start, line := l.off, l.line
	ch := l.ch

	simple := func(typ token.Type) (token.Token, bool) {
		return token.Token{Type: typ, Lexeme: string(l.input[start:l.off]), Line: line}, true
	}
	// twoChar greedily consumes a trailing '='.
	twoChar := func(single, double token.Type) (token.Token, bool) {
		if l.ch == '=' {
			l.advance()
			return simple(double)
		}
		return simple(single)
	}

	switch {
	case isIdentStart(ch):
		for isIdentContinue(l.ch) {
			l.advance()
		}
		lit := string(l.input[start:l.off])
		return token.Token{Type: token.LookupIdent(lit), Lexeme: lit, Line: line}, true

	case isDigit(ch):
		return l.scanNumber(start, line), true

	case ch == '"':
		return l.scanString(start, line)
	}

	l.advance() // consume ch; from here on, l.ch is the character AFTER ch

	switch ch {
	case '(':
		return simple(token.LPAREN)
	case ')':
		return simple(token.RPAREN)
	case '{':
		return simple(token.LBRACE)
	case '}':
		return simple(token.RBRACE)
	case ',':
		return simple(token.COMMA)
	case '.':
		return simple(token.DOT)
	case '-':
		return simple(token.MINUS)
	case '+':
		return simple(token.PLUS)
	case ';':
		return simple(token.SEMICOLON)
	case '*':
		return simple(token.STAR)
	case '/':
		return simple(token.SLASH)
	case '!':
		return twoChar(token.BANG, token.NEQ)
	case '=':
		return twoChar(token.ASSIGN, token.EQ)
	case '<':
		return twoChar(token.LT, token.LTE)
	case '>':
		return twoChar(token.GT, token.GTE)
	}

	// Report whole UTF-8 characters rather than their individual bytes.
	r, size := rune(ch), 1
	if ch >= utf8.RuneSelf {
		r, size = utf8.DecodeRune(l.input[start:])
		if r == utf8.RuneError {
			r, size = rune(ch), 1
		}
		for i := 1; i < size; i++ {
			l.advance()
		}
	}
	l.errorf(UnexpectedCharacter, line, r)
	return token.Token{}, false
}

// scanNumber reads digits, optionally followed by '.' and more digits. A '.'
// that is not followed by a digit is left for the next token.
func (l *Lexer) scanNumber(start, line int) token.Token {
	for isDigit(l.ch) {
		l.advance()
	}
	if l.ch == '.' && isDigit(l.peek()) {
		l.advance() // consume '.'
		for isDigit(l.ch) {
			l.advance()
		}
	}
	lexeme := string(l.input[start:l.off])
	// Digit-only input cannot fail to parse; overflow yields +Inf.
	val, _ := strconv.ParseFloat(lexeme, 64)
	return token.Token{Type: token.NUMBER, Lexeme: lexeme, Literal: val, Line: line}
}

// scanString reads a string literal; l.ch is the opening quote. Newlines in
// the body are legal. Errors are reported at the line of the opening quote.
func (l *Lexer) scanString(start, line int) (token.Token, bool) {
	l.advance() // consume opening '"'
	for !l.atEnd() && l.ch != '"' {
		l.advance()
	}
	if l.atEnd() {
		l.errorf(UnterminatedString, line, 0)
		return token.Token{}, false
	}
	body := l.input[start+1 : l.off]
	l.advance() // consume closing '"'

	if !utf8.Valid(body) {
		l.errorf(InvalidEncoding, line, 0)
		return token.Token{}, false
	}
	return token.Token{
		Type:    token.STRING,
		Lexeme:  string(l.input[start:l.off]),
		Literal: string(body),
		Line:    line,
	}, true
}

// ---------------------------------------------------------------------------
// Character classification helpers
// ---------------------------------------------------------------------------

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
