/*
 * midimerge - serial port wiring for the CLI, Linux only.
 *
 * Copyright 2024, Richard Cornwell
 */

//go:build linux

package main

import (
	"github.com/rcornwell/midimerge/internal/merge"
	"github.com/rcornwell/midimerge/internal/portio"
)

func openSerialSource(name string) (merge.ByteSource, func() error, error) {
	s, err := portio.OpenSerial(name)
	if err != nil {
		return nil, nil, err
	}
	return s, s.Close, nil
}

func openSerialSink(name string) (merge.ByteSink, func() error, error) {
	s, err := portio.OpenSerial(name)
	if err != nil {
		return nil, nil, err
	}
	return s, s.Close, nil
}
