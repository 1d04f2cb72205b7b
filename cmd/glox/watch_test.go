// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.


package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rjeczalik/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probechain/go-lox/lang/pipeline"
)

type fileEvent struct{ path string }

func (e fileEvent) Event() notify.Event { return notify.Write }
func (e fileEvent) Path() string        { return e.path }
func (e fileEvent) Sys() interface{}    { return nil }

func TestChangeFilter(t *testing.T) {
	var f changeFilter
	assert.True(t, f.changed([]byte("print 1;")))
	assert.False(t, f.changed([]byte("print 1;")))
	assert.True(t, f.changed([]byte("print 2;")))
	assert.True(t, f.changed([]byte("print 1;")))
	assert.True(t, (&changeFilter{}).changed(nil))
}

func TestWatchLoop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.lox")
	write := func(content string) {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	write("print 1;")

	var (
		runs []string
		errw bytes.Buffer
	)
	w := &scriptWatcher{
		file: "script.lox",
		path: path,
		runOnce: func(src []byte) error {
			runs = append(runs, string(src))
			if string(src) == "print x;" {
				return &pipeline.Error{Stage: pipeline.RuntimeStage, Errs: []error{os.ErrInvalid}}
			}
			return nil
		},
		errw: &errw,
	}
	w.filter.changed([]byte("print 1;"))

	events := make(chan notify.EventInfo)
	stop := make(chan os.Signal)
	done := make(chan struct{})
	go func() {
		w.loop(events, stop)
		close(done)
	}()

	// Events for other files and unchanged content are ignored.
	events <- fileEvent{filepath.Join(dir, "other.lox")}
	events <- fileEvent{path}

	write("print 2;")
	events <- fileEvent{path}
	events <- fileEvent{path}

	// Undecodable and vanished files are skipped without stopping the loop.
	write("print \"caf\xe9\";")
	events <- fileEvent{path}
	require.NoError(t, os.Remove(path))
	events <- fileEvent{path}

	// A failing run is reported and the loop keeps going.
	write("print x;")
	events <- fileEvent{path}
	write("print 3;")
	events <- fileEvent{path}

	stop <- os.Interrupt
	<-done

	assert.Equal(t, []string{"print 2;", "print x;", "print 3;"}, runs)
	assert.Equal(t, "error: script.lox is not valid UTF-8\n"+os.ErrInvalid.Error()+"\n", errw.String())
}
