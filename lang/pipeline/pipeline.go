// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package pipeline strings the glox stages together: source decoding,
// scanning, parsing and execution. Each failure is reported as an *Error
// tagged with the stage that produced it, so callers can choose a policy
// (such as an exit code) per stage.
package pipeline

import (
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/probechain/go-lox/lang/ast"
	"github.com/probechain/go-lox/lang/interp"
	"github.com/probechain/go-lox/lang/lexer"
	"github.com/probechain/go-lox/lang/parser"
	"github.com/probechain/go-lox/lang/token"
)

// Mode selects parser behaviour.
type Mode uint8

const (
	// RequireSemicolons makes ';' mandatory after every statement.
	RequireSemicolons Mode = 1 << iota
	// AllErrors reports every syntax error instead of only the first.
	AllErrors
)

// Stage identifies the pipeline step that failed.
type Stage int

const (
	DecodeStage Stage = iota
	LexStage
	ParseStage
	RuntimeStage
)

func (s Stage) String() string {
	switch s {
	case DecodeStage:
		return "decode"
	case LexStage:
		return "lex"
	case ParseStage:
		return "parse"
	case RuntimeStage:
		return "runtime"
	}
	return "unknown"
}

// Error collects the failures of one stage.
type Error struct {
	Stage Stage
	Errs  []error
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

func (e *Error) Unwrap() []error { return e.Errs }

// Pipeline runs sources through the stages. It is not safe for concurrent
// use.
type Pipeline struct {
	cache *Cache
	log   log.Logger
}

// New creates a Pipeline. cache may be nil.
func New(cache *Cache) *Pipeline {
	return &Pipeline{cache: cache, log: log.New("module", "pipeline")}
}

// Tokenize scans src. The token stream is returned even when there are scan
// errors, which come back as a LexStage *Error.
func (p *Pipeline) Tokenize(src []byte) ([]token.Token, error) {
	start := time.Now()
	toks, errs := lexer.Scan(src)
	p.log.Debug("Scanned source", "bytes", len(src), "tokens", len(toks), "errors", len(errs), "elapsed", time.Since(start))
	if len(errs) > 0 {
		return toks, &Error{Stage: LexStage, Errs: errs}
	}
	return toks, nil
}

// Parse scans and parses src. Scan errors stop the pipeline before parsing.
func (p *Pipeline) Parse(src []byte, mode Mode) ([]ast.Stmt, error) {
	// Error reporting does not change the tree of a clean parse.
	hash, key := HashSource(src), mode&^AllErrors
	if stmts, ok := p.cache.get(hash, key); ok {
		p.log.Trace("Parse cache hit", "hash", hash)
		return stmts, nil
	}

	toks, err := p.Tokenize(src)
	if err != nil {
		return nil, err
	}
	var opts []parser.Option
	if mode&RequireSemicolons != 0 {
		opts = append(opts, parser.RequireSemicolons())
	}

	start := time.Now()
	var (
		stmts []ast.Stmt
		errs  []error
	)
	if mode&AllErrors != 0 {
		stmts, errs = parser.ParseAll(toks, opts...)
	} else if stmts, err = parser.Parse(toks, opts...); err != nil {
		errs = []error{err}
	}
	p.log.Debug("Parsed program", "statements", len(stmts), "errors", len(errs), "elapsed", time.Since(start))
	if len(errs) > 0 {
		return nil, &Error{Stage: ParseStage, Errs: errs}
	}
	p.cache.add(hash, key, stmts)
	return stmts, nil
}

// Run parses src and executes it with in.
func (p *Pipeline) Run(in *interp.Interpreter, src []byte, mode Mode) error {
	stmts, err := p.Parse(src, mode)
	if err != nil {
		return err
	}
	start := time.Now()
	err = in.Interpret(stmts)
	p.log.Debug("Executed program", "statements", len(stmts), "ok", err == nil, "elapsed", time.Since(start))
	if err != nil {
		return &Error{Stage: RuntimeStage, Errs: []error{err}}
	}
	return nil
}

// DecodeFile runs Decode and tags a failure with DecodeStage.
func DecodeFile(src []byte) ([]byte, error) {
	out, err := Decode(src)
	if err != nil {
		return nil, &Error{Stage: DecodeStage, Errs: []error{err}}
	}
	return out, nil
}
