// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/ethereum/go-ethereum/log"
	"github.com/rjeczalik/notify"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/go-lox/lang/pipeline"
)

// changeFilter suppresses re-runs for writes that leave the content as it
// was, such as editors saving an unmodified buffer.
type changeFilter struct {
	last pipeline.Hash
	seen bool
}

// changed records src and reports whether it differs from the previous
// content.
func (f *changeFilter) changed(src []byte) bool {
	h := pipeline.HashSource(src)
	if f.seen && h == f.last {
		return false
	}
	f.last, f.seen = h, true
	return true
}

// watchScript runs src, then re-runs the file each time its content changes
// until interrupted. Failures are reported but do not stop the watch.
func watchScript(ctx *cli.Context, file string, src []byte, runOnce func([]byte) error) error {
	path, err := filepath.Abs(file)
	if err != nil {
		return err
	}
	// Watch the directory: editors often replace files instead of writing
	// them in place.
	events := make(chan notify.EventInfo, 16)
	if err := notify.Watch(filepath.Dir(path), events, notify.Write, notify.Create, notify.Rename); err != nil {
		return err
	}
	defer notify.Stop(events)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	w := &scriptWatcher{
		file:    file,
		path:    path,
		runOnce: runOnce,
		errw:    ctx.App.ErrWriter,
	}
	w.filter.changed(src)
	w.run(src)
	log.Info("Watching script for changes", "file", path)
	w.loop(events, interrupt)
	return nil
}

// scriptWatcher re-runs one script as filesystem events arrive.
type scriptWatcher struct {
	file    string // as given on the command line, for diagnostics
	path    string // absolute
	filter  changeFilter
	runOnce func([]byte) error
	errw    io.Writer
}

func (w *scriptWatcher) run(src []byte) {
	if err := w.runOnce(src); err != nil {
		reportError(w.errw, err)
	}
}

// loop handles events until stop fires.
func (w *scriptWatcher) loop(events <-chan notify.EventInfo, stop <-chan os.Signal) {
	for {
		select {
		case ev := <-events:
			w.handle(ev)
		case <-stop:
			log.Info("Stopped watching", "file", w.path)
			return
		}
	}
}

func (w *scriptWatcher) handle(ev notify.EventInfo) {
	if filepath.Base(ev.Path()) != filepath.Base(w.path) {
		return
	}
	raw, err := os.ReadFile(w.path)
	if err != nil {
		// Mid-replace; the following event brings the new file.
		log.Debug("Script not readable", "file", w.path, "err", err)
		return
	}
	src, err := pipeline.DecodeFile(raw)
	if err != nil {
		printFatal(w.errw, "%s is not valid UTF-8", w.file)
		return
	}
	if !w.filter.changed(src) {
		log.Trace("Script content unchanged", "file", w.path, "event", ev.Event())
		return
	}
	log.Info("Script changed, re-running", "file", w.path)
	w.run(src)
}
