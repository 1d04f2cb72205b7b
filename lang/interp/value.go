// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package interp

import (
	"fmt"
	"strconv"

	"github.com/probechain/go-lox/lang/token"
)

// Kind identifies the dynamic type of a Value.
type Kind uint8

const (
	NilKind Kind = iota
	BoolKind
	NumberKind
	StringKind
)

var kindNames = [...]string{
	NilKind:    "nil",
	BoolKind:   "bool",
	NumberKind: "number",
	StringKind: "string",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a runtime value. The set of implementations is closed: Nil, Bool,
// Number and String.
type Value interface {
	Kind() Kind
}

type (
	Nil    struct{}
	Bool   bool
	Number float64
	String string
)

func (Nil) Kind() Kind    { return NilKind }
func (Bool) Kind() Kind   { return BoolKind }
func (Number) Kind() Kind { return NumberKind }
func (String) Kind() Kind { return StringKind }

// FromLiteral converts a literal carried by the AST into a Value.
func FromLiteral(lit any) Value {
	switch v := lit.(type) {
	case nil:
		return Nil{}
	case bool:
		return Bool(v)
	case float64:
		return Number(v)
	case string:
		return String(v)
	default:
		panic(fmt.Sprintf("interp: unexpected literal %T", lit))
	}
}

// Truthy reports whether v counts as true in a condition. Only nil and false
// are falsy.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case Nil:
		return false
	case Bool:
		return bool(v)
	default:
		return true
	}
}

// Equal compares two values. Values of different kinds are never equal.
func Equal(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a := a.(type) {
	case Nil:
		return true
	case Bool:
		return a == b.(Bool)
	case Number:
		return a == b.(Number)
	case String:
		return a == b.(String)
	}
	return false
}

// Stringify renders v the way print shows it. Strings are not quoted.
func Stringify(v Value, nf token.NumberFormat) string {
	switch v := v.(type) {
	case Nil:
		return "nil"
	case Bool:
		return strconv.FormatBool(bool(v))
	case Number:
		return nf.Format(float64(v))
	case String:
		return string(v)
	default:
		panic(fmt.Sprintf("interp: unexpected value %T", v))
	}
}
