/*
 * midimerge - serial port wiring for the CLI, non-Linux stub.
 *
 * Copyright 2024, Richard Cornwell
 */

//go:build !linux

package main

import (
	"fmt"

	"github.com/rcornwell/midimerge/internal/merge"
)

func openSerialSource(name string) (merge.ByteSource, func() error, error) {
	return nil, nil, fmt.Errorf("midimerge: serial port support (%q) requires linux", name)
}

func openSerialSink(name string) (merge.ByteSink, func() error, error) {
	return nil, nil, fmt.Errorf("midimerge: serial port support (%q) requires linux", name)
}
