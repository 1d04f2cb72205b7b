// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package token defines the lexical vocabulary shared by every stage of the
// glox pipeline: token kinds, the Token record and literal rendering.
package token

import (
	"fmt"
	"strings"
)

// Token is a single lexical token. Tokens are immutable once produced.
type Token struct {
	Type    Type
	Lexeme  string // exact source text the token was scanned from
	Literal any    // nil, float64 (NUMBER) or string (STRING)
	Line    int    // 1-based
}

// String renders the token in the `<KIND> <lexeme> <literal>` form using the
// shortest number format.
func (t Token) String() string {
	return t.Format(Shortest)
}

// Format renders the token like String but with the given number format.
func (t Token) Format(nf NumberFormat) string {
	return fmt.Sprintf("%s %s %s", t.Type, t.Lexeme, t.LiteralString(nf))
}

// LiteralString renders the literal value, or "null" when there is none.
func (t Token) LiteralString(nf NumberFormat) string {
	switch v := t.Literal.(type) {
	case float64:
		return nf.Format(v)
	case string:
		return v
	default:
		return "null"
	}
}

// Type is the set of lexical token types.
type Type int

const (
	// Single-character tokens
	LPAREN    Type = iota // (
	RPAREN                // )
	LBRACE                // {
	RBRACE                // }
	COMMA                 // ,
	DOT                   // .
	MINUS                 // -
	PLUS                  // +
	SEMICOLON             // ;
	SLASH                 // /
	STAR                  // *

	// One or two character tokens
	BANG   // !
	NEQ    // !=
	ASSIGN // =
	EQ     // ==
	GT     // >
	GTE    // >=
	LT     // <
	LTE    // <=

	// Literals
	IDENT
	STRING
	NUMBER

	keywordStart
	AND
	CLASS
	ELSE
	FALSE
	FOR
	FUN
	IF
	NIL
	OR
	PRINT
	RETURN
	SUPER
	THIS
	TRUE
	VAR
	WHILE
	keywordEnd

	EOF
)

var tokenNames = [...]string{
	LPAREN:    "LEFT_PAREN",
	RPAREN:    "RIGHT_PAREN",
	LBRACE:    "LEFT_BRACE",
	RBRACE:    "RIGHT_BRACE",
	COMMA:     "COMMA",
	DOT:       "DOT",
	MINUS:     "MINUS",
	PLUS:      "PLUS",
	SEMICOLON: "SEMICOLON",
	SLASH:     "SLASH",
	STAR:      "STAR",

	BANG:   "BANG",
	NEQ:    "BANG_EQUAL",
	ASSIGN: "EQUAL",
	EQ:     "EQUAL_EQUAL",
	GT:     "GREATER",
	GTE:    "GREATER_EQUAL",
	LT:     "LESS",
	LTE:    "LESS_EQUAL",

	IDENT:  "IDENTIFIER",
	STRING: "STRING",
	NUMBER: "NUMBER",

	AND:    "AND",
	CLASS:  "CLASS",
	ELSE:   "ELSE",
	FALSE:  "FALSE",
	FOR:    "FOR",
	FUN:    "FUN",
	IF:     "IF",
	NIL:    "NIL",
	OR:     "OR",
	PRINT:  "PRINT",
	RETURN: "RETURN",
	SUPER:  "SUPER",
	THIS:   "THIS",
	TRUE:   "TRUE",
	VAR:    "VAR",
	WHILE:  "WHILE",

	EOF: "EOF",
}

// String returns the upper-case kind name used by the tokenize output.
func (t Type) String() string {
	if t >= 0 && int(t) < len(tokenNames) && tokenNames[t] != "" {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// IsKeyword returns true if the token is a reserved word.
func (t Type) IsKeyword() bool {
	return t > keywordStart && t < keywordEnd
}

// IsLiteral returns true for identifier, string and number tokens.
func (t Type) IsLiteral() bool {
	return t >= IDENT && t <= NUMBER
}

// keywords maps reserved words to their token types.
var keywords map[string]Type

func init() {
	keywords = make(map[string]Type)
	for i := keywordStart + 1; i < keywordEnd; i++ {
		keywords[strings.ToLower(tokenNames[i])] = i
	}
}

// LookupIdent checks if an identifier is a keyword.
func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
