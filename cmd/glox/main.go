// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// glox is the command line front end of the glox interpreter.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/go-lox/lang/pipeline"
)

const version = "0.1.0"

// Process exit codes.
const (
	exitUsage   = 64 // bad command line
	exitData    = 65 // lexer, parser or encoding failure
	exitNoInput = 66 // source file cannot be read
	exitRuntime = 70 // runtime failure
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "glox"
	app.Usage = "scan, parse and run glox scripts"
	app.Version = version
	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr
	app.Flags = []cli.Flag{
		configFileFlag,
		verbosityFlag,
		colorFlag,
		numberFormatFlag,
	}
	app.Commands = []cli.Command{
		tokenizeCommand,
		parseCommand,
		evaluateCommand,
		runCommand,
		replCommand,
		dumpConfigCommand,
	}
	app.Before = func(ctx *cli.Context) error {
		if ctx.App.Metadata == nil {
			ctx.App.Metadata = make(map[string]interface{})
		}
		cfg, err := makeConfig(ctx)
		if err != nil {
			// An error returned from Before prints the app help on stdout,
			// so the failure is left for the command to report.
			ctx.App.Metadata[configKey] = err
			return nil
		}
		setupLogging(cfg.Log, ctx.App.ErrWriter)
		ctx.App.Metadata[configKey] = cfg
		log.Debug("Loaded configuration", "numberformat", cfg.Interpreter.NumberFormat, "cache", cfg.Cache.Size)
		return nil
	}
	app.Action = func(ctx *cli.Context) error {
		if _, err := configOf(ctx); err != nil {
			return err
		}
		if ctx.NArg() > 0 {
			printFatal(ctx.App.ErrWriter, "unknown command %q", ctx.Args().First())
			return cli.NewExitError("", exitUsage)
		}
		return cli.ShowAppHelp(ctx)
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		// Exit coders have already terminated the process.
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}
}

// exitCode maps a pipeline failure to the process exit code.
func exitCode(err error) int {
	var perr *pipeline.Error
	if errors.As(err, &perr) && perr.Stage == pipeline.RuntimeStage {
		return exitRuntime
	}
	return exitData
}

// fail reports a pipeline failure on the error stream and converts it into
// an exit error.
func fail(ctx *cli.Context, err error) error {
	reportError(ctx.App.ErrWriter, err)
	return cli.NewExitError("", exitCode(err))
}
