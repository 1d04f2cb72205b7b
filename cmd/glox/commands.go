// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/go-lox/lang/ast"
	"github.com/probechain/go-lox/lang/interp"
	"github.com/probechain/go-lox/lang/pipeline"
	"github.com/probechain/go-lox/lang/token"
)

var (
	tableFlag = cli.BoolFlag{
		Name:  "table",
		Usage: "Render tokens as an aligned table",
	}
	dumpFlag = cli.BoolFlag{
		Name:  "dump",
		Usage: "Dump the raw syntax tree instead of s-expressions",
	}
	allErrorsFlag = cli.BoolFlag{
		Name:  "all-errors",
		Usage: "Report every syntax error instead of only the first",
	}
	watchFlag = cli.BoolFlag{
		Name:  "watch",
		Usage: "Re-run the script whenever its content changes",
	}

	tokenizeCommand = cli.Command{
		Action:    tokenize,
		Name:      "tokenize",
		Usage:     "Print the token stream of a script",
		ArgsUsage: "<filename>",
		Flags:     []cli.Flag{tableFlag},
		Category:  "PIPELINE COMMANDS",
		Description: `
Runs the scanner only and prints one line per token:

    <KIND> <lexeme> <literal-or-null>

Scan errors are written to stderr and make the command exit with 65.`,
	}
	parseCommand = cli.Command{
		Action:    parse,
		Name:      "parse",
		Usage:     "Print the syntax tree of a script",
		ArgsUsage: "<filename>",
		Flags:     []cli.Flag{dumpFlag, allErrorsFlag},
		Category:  "PIPELINE COMMANDS",
		Description: `
Scans and parses the script and prints each statement as a parenthesised
s-expression. Statement terminators are optional.`,
	}
	evaluateCommand = cli.Command{
		Action:    evaluate,
		Name:      "evaluate",
		Usage:     "Evaluate a script, echoing expression values",
		ArgsUsage: "<filename>",
		Category:  "PIPELINE COMMANDS",
		Description: `
Runs the script without requiring statement terminators. The value of every
expression statement is printed. Runtime errors exit with 70.`,
	}
	runCommand = cli.Command{
		Action:    run,
		Name:      "run",
		Usage:     "Run a script",
		ArgsUsage: "<filename>",
		Flags:     []cli.Flag{watchFlag},
		Category:  "PIPELINE COMMANDS",
		Description: `
Runs the script. Every statement must end with ';'. Runtime errors exit
with 70.`,
	}
)

// readSource loads and decodes the single file argument.
func readSource(ctx *cli.Context) (string, []byte, error) {
	errw := ctx.App.ErrWriter
	if ctx.NArg() != 1 {
		printFatal(errw, "usage: %s %s %s", ctx.App.Name, ctx.Command.Name, ctx.Command.ArgsUsage)
		return "", nil, cli.NewExitError("", exitUsage)
	}
	file := ctx.Args().First()
	raw, err := os.ReadFile(file)
	if err != nil {
		printFatal(errw, "could not read %s: %v", file, err)
		return "", nil, cli.NewExitError("", exitNoInput)
	}
	src, err := pipeline.DecodeFile(raw)
	if err != nil {
		printFatal(errw, "%s is not valid UTF-8", file)
		return "", nil, cli.NewExitError("", exitData)
	}
	return file, src, nil
}

func newPipeline(cfg gloxConfig) (*pipeline.Pipeline, error) {
	cache, err := pipeline.NewCache(cfg.Cache.Size)
	if err != nil {
		return nil, err
	}
	return pipeline.New(cache), nil
}

func tokenize(ctx *cli.Context) error {
	cfg, err := configOf(ctx)
	if err != nil {
		return err
	}
	_, src, err := readSource(ctx)
	if err != nil {
		return err
	}
	toks, scanErr := pipeline.New(nil).Tokenize(src)

	w := ctx.App.Writer
	if ctx.Bool(tableFlag.Name) {
		printTokenTable(w, toks, cfg.Interpreter.NumberFormat)
	} else {
		for _, tok := range toks {
			fmt.Fprintln(w, tok.Format(cfg.Interpreter.NumberFormat))
		}
	}
	if scanErr != nil {
		return fail(ctx, scanErr)
	}
	return nil
}

func printTokenTable(w io.Writer, toks []token.Token, nf token.NumberFormat) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Line", "Kind", "Lexeme", "Literal"})
	table.SetAutoWrapText(false)
	for _, tok := range toks {
		table.Append([]string{
			strconv.Itoa(tok.Line),
			tok.Type.String(),
			tok.Lexeme,
			tok.LiteralString(nf),
		})
	}
	table.Render()
}

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
}

func parse(ctx *cli.Context) error {
	cfg, err := configOf(ctx)
	if err != nil {
		return err
	}
	_, src, err := readSource(ctx)
	if err != nil {
		return err
	}
	pl, err := newPipeline(cfg)
	if err != nil {
		return err
	}
	var mode pipeline.Mode
	if ctx.Bool(allErrorsFlag.Name) {
		mode |= pipeline.AllErrors
	}
	stmts, err := pl.Parse(src, mode)
	if err != nil {
		return fail(ctx, err)
	}
	if ctx.Bool(dumpFlag.Name) {
		spewConfig.Fdump(ctx.App.Writer, stmts)
		return nil
	}
	return ast.Fprint(ctx.App.Writer, stmts, cfg.Interpreter.NumberFormat)
}

func evaluate(ctx *cli.Context) error {
	cfg, err := configOf(ctx)
	if err != nil {
		return err
	}
	_, src, err := readSource(ctx)
	if err != nil {
		return err
	}
	pl, err := newPipeline(cfg)
	if err != nil {
		return err
	}
	in := interp.New(
		interp.WithOutput(ctx.App.Writer),
		interp.WithEcho(),
		interp.WithNumberFormat(cfg.Interpreter.NumberFormat),
	)
	if err := pl.Run(in, src, 0); err != nil {
		return fail(ctx, err)
	}
	return nil
}

func run(ctx *cli.Context) error {
	cfg, err := configOf(ctx)
	if err != nil {
		return err
	}
	file, src, err := readSource(ctx)
	if err != nil {
		return err
	}
	pl, err := newPipeline(cfg)
	if err != nil {
		return err
	}
	runOnce := func(src []byte) error {
		in := interp.New(
			interp.WithOutput(ctx.App.Writer),
			interp.WithNumberFormat(cfg.Interpreter.NumberFormat),
		)
		return pl.Run(in, src, pipeline.RequireSemicolons)
	}
	if ctx.Bool(watchFlag.Name) {
		return watchScript(ctx, file, src, runOnce)
	}
	if err := runOnce(src); err != nil {
		return fail(ctx, err)
	}
	return nil
}
