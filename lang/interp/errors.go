// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package interp

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidUnaryOperand   = errors.New("interp: invalid unary operand")
	ErrInvalidBinaryOperands = errors.New("interp: invalid binary operands")
	ErrUndefinedVariable     = errors.New("interp: undefined variable")
	ErrDivisionByZero        = errors.New("interp: division by zero")
)

// ErrorKind classifies a RuntimeError.
type ErrorKind int

const (
	InvalidUnaryOperand ErrorKind = iota
	InvalidBinaryOperands
	UndefinedVariable
	DivisionByZero
)

// RuntimeError aborts interpretation. Line is the line of the operator or
// variable token that raised it.
type RuntimeError struct {
	Kind     ErrorKind
	Line     int
	Name     string // UndefinedVariable only
	Operator string // operator lexeme, if any
}

func (e *RuntimeError) message() string {
	switch e.Kind {
	case InvalidUnaryOperand:
		return "Operand must be a number."
	case InvalidBinaryOperands:
		if e.Operator == "+" {
			return "Operands must be two numbers or two strings."
		}
		return "Operands must be numbers."
	case UndefinedVariable:
		return fmt.Sprintf("Undefined variable '%s'.", e.Name)
	case DivisionByZero:
		return "Division by zero."
	}
	return "Runtime error."
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.message(), e.Line)
}

func (e *RuntimeError) Unwrap() error {
	switch e.Kind {
	case InvalidUnaryOperand:
		return ErrInvalidUnaryOperand
	case InvalidBinaryOperands:
		return ErrInvalidBinaryOperands
	case UndefinedVariable:
		return ErrUndefinedVariable
	case DivisionByZero:
		return ErrDivisionByZero
	}
	return nil
}
