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
	"fmt"
)

// ErrParse is matched by every error returned from this package.
var ErrParse = errors.New("parser: syntax error")

// Error is a syntax error anchored at the offending token.
type Error struct {
	Line   int
	Lexeme string
	AtEnd  bool // the offending token was EOF
	Msg    string
}

func (e *Error) Error() string {
	if e.AtEnd {
		return fmt.Sprintf("[line %d] Error at end: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Line, e.Lexeme, e.Msg)
}

func (e *Error) Unwrap() error { return ErrParse }
