// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/naoina/toml"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/go-lox/lang/token"
)

var (
	dumpConfigCommand = cli.Command{
		Action:      dumpConfig,
		Name:        "dumpconfig",
		Usage:       "Show configuration values",
		ArgsUsage:   "[<file>]",
		Category:    "MISCELLANEOUS COMMANDS",
		Description: `The dumpconfig command shows the effective configuration as TOML.`,
	}

	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
		Value: defaultConfig.Log.Verbosity,
	}
	colorFlag = cli.StringFlag{
		Name:  "color",
		Usage: "Colorize diagnostics and logs: auto, always, never",
		Value: defaultConfig.Log.Color,
	}
	numberFormatFlag = cli.StringFlag{
		Name:  "number-format",
		Usage: "How numbers are printed: shortest, fixed2",
		Value: defaultConfig.Interpreter.NumberFormat.String(),
	}
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

type interpreterConfig struct {
	NumberFormat token.NumberFormat
}

type logConfig struct {
	Verbosity int
	Color     string
}

type replConfig struct {
	Prompt             string
	ContinuationPrompt string
	HistoryFile        string `toml:",omitempty"` // empty disables history persistence
}

type cacheConfig struct {
	Size int // parsed programs kept in memory; 0 disables the cache
}

type gloxConfig struct {
	Interpreter interpreterConfig
	Log         logConfig
	REPL        replConfig
	Cache       cacheConfig
}

var defaultConfig = gloxConfig{
	Interpreter: interpreterConfig{NumberFormat: token.Shortest},
	Log:         logConfig{Verbosity: 2, Color: "auto"},
	REPL:        replConfig{Prompt: "> ", ContinuationPrompt: "... "},
	Cache:       cacheConfig{Size: 128},
}

func loadConfig(file string, cfg *gloxConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// makeConfig loads defaults, then the config file, then applies flags.
func makeConfig(ctx *cli.Context) (gloxConfig, error) {
	cfg := defaultConfig

	if file := ctx.GlobalString(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, err
		}
	}

	if ctx.GlobalIsSet(verbosityFlag.Name) {
		cfg.Log.Verbosity = ctx.GlobalInt(verbosityFlag.Name)
	}
	if ctx.GlobalIsSet(colorFlag.Name) {
		cfg.Log.Color = ctx.GlobalString(colorFlag.Name)
	}
	if ctx.GlobalIsSet(numberFormatFlag.Name) {
		nf, err := token.ParseNumberFormat(ctx.GlobalString(numberFormatFlag.Name))
		if err != nil {
			return cfg, err
		}
		cfg.Interpreter.NumberFormat = nf
	}
	return cfg, validateConfig(&cfg)
}

func validateConfig(cfg *gloxConfig) error {
	if cfg.Log.Verbosity < 0 || cfg.Log.Verbosity > 5 {
		return fmt.Errorf("invalid verbosity %d, want 0-5", cfg.Log.Verbosity)
	}
	switch cfg.Log.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color mode %q, want auto, always or never", cfg.Log.Color)
	}
	if cfg.Cache.Size < 0 {
		return fmt.Errorf("invalid cache size %d", cfg.Cache.Size)
	}
	return nil
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := configOf(ctx)
	if err != nil {
		return err
	}
	comment := ""
	if cfg.REPL.HistoryFile == "" {
		comment += "# Note: REPL history is not persisted unless REPL.HistoryFile is set.\n\n"
	}

	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}

	var dump io.Writer = ctx.App.Writer
	if ctx.NArg() > 0 {
		f, err := os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		dump = f
	}
	io.WriteString(dump, comment)
	dump.Write(out)

	return nil
}

const configKey = "glox.config"

// configOf returns the configuration resolved in the app's Before hook. If
// that failed, the error is reported and converted into a usage exit.
func configOf(ctx *cli.Context) (gloxConfig, error) {
	switch v := ctx.App.Metadata[configKey].(type) {
	case gloxConfig:
		return v, nil
	case error:
		printFatal(ctx.App.ErrWriter, "%v", v)
		return gloxConfig{}, cli.NewExitError("", exitUsage)
	}
	return defaultConfig, nil
}
