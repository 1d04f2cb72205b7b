// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/peterh/liner"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/go-lox/lang/interp"
	"github.com/probechain/go-lox/lang/lexer"
	"github.com/probechain/go-lox/lang/pipeline"
	"github.com/probechain/go-lox/lang/token"
)

var replCommand = cli.Command{
	Action:   repl,
	Name:     "repl",
	Usage:    "Start an interactive session",
	Category: "PIPELINE COMMANDS",
	Description: `
Reads statements interactively. All inputs share one global scope and the
value of every expression statement is printed. Input continues on the
next line while a block or string is left open. Type :quit to exit.`,
}

// lineReader is the part of *liner.State the session loop needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func repl(ctx *cli.Context) error {
	cfg, err := configOf(ctx)
	if err != nil {
		return err
	}
	pl, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if path := cfg.REPL.HistoryFile; path != "" {
		loadHistory(ln, path)
		defer saveHistory(ln, path)
	}

	fmt.Fprintf(ctx.App.Writer, "glox %s, type :quit to exit\n", version)
	runSession(ln, pl, cfg, ctx.App.Writer, ctx.App.ErrWriter)
	return nil
}

// historyStore is the history part of *liner.State.
type historyStore interface {
	ReadHistory(r io.Reader) (int, error)
	WriteHistory(w io.Writer) (int, error)
}

// loadHistory fills h from the file at path. A missing file is not an error.
func loadHistory(h historyStore, path string) {
	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn("Failed to open REPL history", "file", path, "err", err)
		}
		return
	}
	defer f.Close()
	if _, err := h.ReadHistory(f); err != nil {
		log.Warn("Failed to load REPL history", "file", path, "err", err)
	}
}

func saveHistory(h historyStore, path string) {
	f, err := os.Create(path)
	if err != nil {
		log.Warn("Failed to save REPL history", "file", path, "err", err)
		return
	}
	defer f.Close()
	if _, err := h.WriteHistory(f); err != nil {
		log.Warn("Failed to save REPL history", "file", path, "err", err)
	}
}

// runSession reads and runs inputs until EOF or :quit. Errors are reported
// and the session continues with its bindings intact.
func runSession(lr lineReader, pl *pipeline.Pipeline, cfg gloxConfig, out, errw io.Writer) {
	in := interp.New(
		interp.WithOutput(out),
		interp.WithEcho(),
		interp.WithNumberFormat(cfg.Interpreter.NumberFormat),
	)
	for {
		src, ok := readInput(lr, cfg.REPL.Prompt, cfg.REPL.ContinuationPrompt)
		if !ok {
			fmt.Fprintln(out)
			return
		}
		cmd := strings.TrimSpace(src)
		switch {
		case cmd == "":
			continue
		case cmd == ":quit":
			return
		case strings.HasPrefix(cmd, ":"):
			printFatal(errw, "unknown command %s, type :quit to exit", cmd)
			continue
		}
		lr.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if err := pl.Run(in, []byte(src), 0); err != nil {
			reportError(errw, err)
		}
	}
}

// readInput collects one complete input, prompting for continuation lines
// while it is incomplete. It reports false at end of input.
func readInput(lr lineReader, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := lr.Prompt(p)
		if errors.Is(err, liner.ErrPromptAborted) {
			// Ctrl-C discards the pending input.
			return "", true
		}
		if err != nil {
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !incomplete(b.String()) {
			return b.String(), true
		}
	}
}

// incomplete reports whether src stops inside an open block or string.
func incomplete(src string) bool {
	toks, errs := lexer.Scan([]byte(src))
	for _, err := range errs {
		if errors.Is(err, lexer.ErrUnterminatedString) {
			return true
		}
	}
	depth := 0
	for _, tok := range toks {
		switch tok.Type {
		case token.LBRACE:
			depth++
		case token.RBRACE:
			depth--
		}
	}
	return depth > 0
}
