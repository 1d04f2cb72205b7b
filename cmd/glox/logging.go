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
	"io"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/probechain/go-lox/lang/pipeline"
)

// useColor resolves a color mode against the writer output goes to.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// setupLogging installs the root log handler and the diagnostic color
// setting. Logs go to errw.
func setupLogging(cfg logConfig, errw io.Writer) {
	colored := useColor(cfg.Color, errw)
	out := errw
	if colored && errw == os.Stderr {
		out = colorable.NewColorableStderr()
	}
	color.NoColor = !colored

	handler := log.StreamHandler(out, log.TerminalFormat(colored))
	log.Root().SetHandler(log.LvlFilterHandler(log.Lvl(cfg.Verbosity), handler))
}

var (
	errorColor = color.New(color.FgRed)
	fatalColor = color.New(color.FgRed, color.Bold)
)

// printDiagnostics writes each line of a stage failure to w.
func printDiagnostics(w io.Writer, errs ...error) {
	for _, err := range errs {
		errorColor.Fprintln(w, err.Error())
	}
}

// reportError prints a pipeline failure one diagnostic per line.
func reportError(w io.Writer, err error) {
	var perr *pipeline.Error
	if errors.As(err, &perr) {
		printDiagnostics(w, perr.Errs...)
		return
	}
	printDiagnostics(w, err)
}

// printFatal writes an "error: ..." line to w.
func printFatal(w io.Writer, format string, args ...interface{}) {
	fatalColor.Fprint(w, "error: ")
	errorColor.Fprintf(w, format+"\n", args...)
}
