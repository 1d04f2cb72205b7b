// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package ast

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/probechain/go-lox/lang/token"
)

// Sprint renders node as a fully parenthesised s-expression:
//
//	1 + 2 * 3        →  (+ 1.0 (* 2.0 3.0))
//	var x = (1);     →  (var x (group 1.0))
//	{ print x; }     →  (block (print x))
func Sprint(node Node, nf token.NumberFormat) string {
	var out bytes.Buffer
	p := printer{w: &out, nf: nf}
	p.node(node)
	return out.String()
}

// Fprint writes one line per statement to w.
func Fprint(w io.Writer, stmts []Stmt, nf token.NumberFormat) error {
	for _, s := range stmts {
		if _, err := fmt.Fprintln(w, Sprint(s, nf)); err != nil {
			return err
		}
	}
	return nil
}

type printer struct {
	w  *bytes.Buffer
	nf token.NumberFormat
}

func (p *printer) node(n Node) {
	switch n := n.(type) {
	// Expressions
	case *Literal:
		p.literal(n.Value)
	case *Binary:
		p.parens(n.Operator.Lexeme, n.Left, n.Right)
	case *Grouping:
		p.parens("group", n.Inner)
	case *Unary:
		p.parens(n.Operator.Lexeme, n.Operand)
	case *Variable:
		p.w.WriteString(n.Name.Lexeme)
	case *Assign:
		p.w.WriteString("(assign " + n.Name.Lexeme + " ")
		p.node(n.Value)
		p.w.WriteByte(')')

	// Statements
	case *ExprStmt:
		p.node(n.Expr)
	case *PrintStmt:
		p.parens("print", n.Expr)
	case *VarDecl:
		p.w.WriteString("(var " + n.Name.Lexeme + " ")
		if n.Initializer != nil {
			p.node(n.Initializer)
		} else {
			p.w.WriteString("nil")
		}
		p.w.WriteByte(')')
	case *Block:
		p.w.WriteString("(block")
		for _, s := range n.Statements {
			p.w.WriteByte(' ')
			p.node(s)
		}
		p.w.WriteByte(')')

	default:
		panic(fmt.Sprintf("ast: unexpected node %T", n))
	}
}

func (p *printer) parens(name string, children ...Node) {
	p.w.WriteByte('(')
	p.w.WriteString(name)
	for _, c := range children {
		p.w.WriteByte(' ')
		p.node(c)
	}
	p.w.WriteByte(')')
}

func (p *printer) literal(v any) {
	switch v := v.(type) {
	case nil:
		p.w.WriteString("nil")
	case bool:
		p.w.WriteString(strconv.FormatBool(v))
	case float64:
		p.w.WriteString(p.nf.Format(v))
	case string:
		p.w.WriteString(v)
	default:
		panic(fmt.Sprintf("ast: unexpected literal %T", v))
	}
}
