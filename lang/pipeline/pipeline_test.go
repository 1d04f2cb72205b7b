// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package pipeline

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probechain/go-lox/lang/interp"
	"github.com/probechain/go-lox/lang/lexer"
	"github.com/probechain/go-lox/lang/parser"
	"github.com/probechain/go-lox/lang/token"
)

func stageOf(t *testing.T, err error) Stage {
	t.Helper()
	var perr *Error
	require.True(t, errors.As(err, &perr), "want *pipeline.Error, got %T", err)
	return perr.Stage
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		src  []byte
		want string
	}{
		{"plain", []byte("print 1;"), "print 1;"},
		{"utf8 bom", []byte("\xEF\xBB\xBFprint 1;"), "print 1;"},
		{"utf8 content", []byte(`print "héllo";`), `print "héllo";`},
		{"utf16le bom", []byte{0xFF, 0xFE, 'v', 0, 'a', 0, 'r', 0}, "var"},
		{"utf16be bom", []byte{0xFE, 0xFF, 0, 'v', 0, 'a', 0, 'r'}, "var"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		got, err := Decode(tt.src)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, string(got), tt.name)
	}
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode([]byte("print \"\xC3\x28\";"))
	assert.True(t, errors.Is(err, ErrInvalidUTF8))

	_, err = DecodeFile([]byte{0x80})
	assert.Equal(t, DecodeStage, stageOf(t, err))
	assert.True(t, errors.Is(err, ErrInvalidUTF8))
}

func TestTokenize(t *testing.T) {
	p := New(nil)

	toks, err := p.Tokenize([]byte("var x = 1;"))
	require.NoError(t, err)
	assert.Len(t, toks, 6)

	toks, err = p.Tokenize([]byte("$ 1 \"open"))
	require.Error(t, err)
	assert.Equal(t, LexStage, stageOf(t, err))
	assert.True(t, errors.Is(err, lexer.ErrUnexpectedCharacter))
	assert.True(t, errors.Is(err, lexer.ErrUnterminatedString))
	assert.Equal(t, "[line 1] Error: Unexpected character: $\n[line 1] Error: Unterminated string.", err.Error())
	// Tokens are still returned.
	require.Len(t, toks, 2)
	assert.Equal(t, token.NUMBER, toks[0].Type)
	assert.Equal(t, token.EOF, toks[1].Type)
}

func TestParseStages(t *testing.T) {
	p := New(nil)

	// Scan errors stop the pipeline before the parser runs.
	_, err := p.Parse([]byte("print @;"), 0)
	assert.Equal(t, LexStage, stageOf(t, err))

	_, err = p.Parse([]byte("print (1;"), 0)
	assert.Equal(t, ParseStage, stageOf(t, err))
	assert.True(t, errors.Is(err, parser.ErrParse))

	stmts, err := p.Parse([]byte("print 1"), 0)
	require.NoError(t, err)
	assert.Len(t, stmts, 1)

	_, err = p.Parse([]byte("print 1"), RequireSemicolons)
	assert.Equal(t, "[line 1] Error at end: Expect ';' after value.", err.Error())
}

func TestParseAllErrors(t *testing.T) {
	p := New(nil)
	src := []byte("print ;\nprint (1;\nprint 2;")

	_, err := p.Parse(src, 0)
	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Len(t, perr.Errs, 1)

	_, err = p.Parse(src, AllErrors)
	require.True(t, errors.As(err, &perr))
	assert.Len(t, perr.Errs, 2)
}

func TestRun(t *testing.T) {
	p := New(nil)
	var out bytes.Buffer
	in := interp.New(interp.WithOutput(&out))

	require.NoError(t, p.Run(in, []byte(`var greeting = "hi"; print greeting + "!";`), RequireSemicolons))
	assert.Equal(t, "hi!\n", out.String())

	err := p.Run(in, []byte(`print greeting - 1;`), RequireSemicolons)
	assert.Equal(t, RuntimeStage, stageOf(t, err))
	assert.True(t, errors.Is(err, interp.ErrInvalidBinaryOperands))
	var rerr *interp.RuntimeError
	assert.True(t, errors.As(err, &rerr))
}

func TestCache(t *testing.T) {
	cache, err := NewCache(2)
	require.NoError(t, err)
	p := New(cache)

	src := []byte("print 1;")
	first, err := p.Parse(src, RequireSemicolons)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	// Same source and mode: the identical tree comes back.
	second, err := p.Parse(src, RequireSemicolons|AllErrors)
	require.NoError(t, err)
	assert.Same(t, first[0], second[0])
	assert.Equal(t, 1, cache.Len())

	// A different mode is a different entry.
	_, err = p.Parse(src, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())

	// Failed parses are not cached.
	_, err = p.Parse([]byte("print"), 0)
	require.Error(t, err)
	assert.Equal(t, 2, cache.Len())

	// Eviction keeps the size bounded.
	_, err = p.Parse([]byte("print 2;"), 0)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())
}

func TestDisabledCache(t *testing.T) {
	cache, err := NewCache(0)
	require.NoError(t, err)
	assert.Nil(t, cache)
	assert.Equal(t, 0, cache.Len())

	p := New(cache)
	first, err := p.Parse([]byte("1"), 0)
	require.NoError(t, err)
	second, err := p.Parse([]byte("1"), 0)
	require.NoError(t, err)
	assert.NotSame(t, first[0], second[0])
}

func TestHashSource(t *testing.T) {
	a := HashSource([]byte("print 1;"))
	b := HashSource([]byte("print 1;"))
	c := HashSource([]byte("print 2;"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a.String(), 64)
	assert.Equal(t, a.String()[:6]+"…"+a.String()[58:], a.TerminalString())
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "decode", DecodeStage.String())
	assert.Equal(t, "runtime", RuntimeStage.String())
	assert.Equal(t, "unknown", Stage(42).String())
}
