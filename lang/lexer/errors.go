// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package lexer

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedCharacter is matched by errors for bytes that cannot
	// start any token.
	ErrUnexpectedCharacter = errors.New("lexer: unexpected character")

	// ErrUnterminatedString is matched by errors for string literals that
	// reach end of input before the closing quote.
	ErrUnterminatedString = errors.New("lexer: unterminated string")

	// ErrInvalidEncoding is matched by errors for string literals whose
	// content is not valid UTF-8.
	ErrInvalidEncoding = errors.New("lexer: invalid encoding")
)

// ErrorKind classifies a lexer error.
type ErrorKind int

const (
	UnexpectedCharacter ErrorKind = iota
	UnterminatedString
	InvalidEncoding
)

// Error is a recoverable scan error. The lexer records it and keeps going.
type Error struct {
	Kind ErrorKind
	Line int
	Char rune // offending character, UnexpectedCharacter only
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnterminatedString:
		return fmt.Sprintf("[line %d] Error: Unterminated string.", e.Line)
	case InvalidEncoding:
		return fmt.Sprintf("[line %d] Error: Invalid UTF-8 sequence in string.", e.Line)
	default:
		return fmt.Sprintf("[line %d] Error: Unexpected character: %c", e.Line, e.Char)
	}
}

// Unwrap lets callers match an Error against the package sentinels.
func (e *Error) Unwrap() error {
	switch e.Kind {
	case UnterminatedString:
		return ErrUnterminatedString
	case InvalidEncoding:
		return ErrInvalidEncoding
	default:
		return ErrUnexpectedCharacter
	}
}
