// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package interp

import "github.com/probechain/go-lox/lang/token"

// Environment is one lexical scope. Lookups that miss fall through to the
// enclosing scope; the global scope has no enclosing scope.
type Environment struct {
	values    map[string]Value
	enclosing *Environment
}

// NewEnvironment creates an empty scope nested inside enclosing, which may
// be nil.
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{values: make(map[string]Value), enclosing: enclosing}
}

// Enclosing returns the parent scope, or nil for the global scope.
func (e *Environment) Enclosing() *Environment { return e.enclosing }

// Define binds name in this scope, replacing any existing binding here.
func (e *Environment) Define(name string, v Value) {
	e.values[name] = v
}

// Get resolves name through the scope chain.
func (e *Environment) Get(name token.Token) (Value, error) {
	for env := e; env != nil; env = env.enclosing {
		if v, ok := env.values[name.Lexeme]; ok {
			return v, nil
		}
	}
	return nil, undefined(name)
}

// Assign overwrites the innermost existing binding of name. It never creates
// a binding.
func (e *Environment) Assign(name token.Token, v Value) error {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values[name.Lexeme]; ok {
			env.values[name.Lexeme] = v
			return nil
		}
	}
	return undefined(name)
}

func undefined(name token.Token) error {
	return &RuntimeError{Kind: UndefinedVariable, Line: name.Line, Name: name.Lexeme}
}
