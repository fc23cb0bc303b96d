/*
 * midimerge - Main process.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rcornwell/midimerge/internal/merge"
	"github.com/rcornwell/midimerge/internal/portio"
	logger "github.com/rcornwell/midimerge/util/logger"
)

var Logger *slog.Logger

func main() {
	optSerial := getopt.BoolLong("serial", 's', "Treat non-flag arguments as serial ports, not plain files")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.SetParameters("input... output")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLogFile != "" {
		var err error
		file, err = os.Create(*optLogFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "midimerge: %v\n", err)
			os.Exit(1)
		}
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelInfo)
	debug := false
	Logger = slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}, &debug))
	slog.SetDefault(Logger)

	args := getopt.Args()
	if len(args) < 2 {
		Logger.Error("need at least one input and one output")
		getopt.Usage()
		os.Exit(1)
	}

	inputNames, outputName := args[:len(args)-1], args[len(args)-1]
	if len(inputNames) > merge.DefaultMaxStreams {
		Logger.Error("too many input streams",
			"got", len(inputNames), "max", merge.DefaultMaxStreams)
		os.Exit(1)
	}

	sources := make([]merge.ByteSource, 0, len(inputNames))
	closers := make([]func() error, 0, len(inputNames)+1)
	defer func() {
		for _, c := range closers {
			_ = c()
		}
	}()

	for _, name := range inputNames {
		src, closeFn, err := openSource(name, *optSerial)
		if err != nil {
			Logger.Error("opening input", "name", name, "err", err)
			os.Exit(1)
		}
		sources = append(sources, src)
		closers = append(closers, closeFn)
	}

	sink, closeFn, err := openSink(outputName, *optSerial)
	if err != nil {
		Logger.Error("opening output", "name", outputName, "err", err)
		os.Exit(1)
	}
	closers = append(closers, closeFn)

	Logger.Info("midimerge started", "inputs", len(sources), "output", outputName)

	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		Logger.Info("shutting down on signal")
		cancel()
		// Run's workers are blocked in a read; closing their sources is
		// what actually wakes them, ctx cancellation alone cannot.
		for _, c := range closers {
			_ = c()
		}
	}()

	result := merge.Run(ctx, sources, sink, merge.Options{MaxStreams: merge.DefaultMaxStreams})

	for _, s := range result.Streams {
		if s.Error.Kind != merge.KindNone && s.Error.Kind != merge.KindEndOfInput {
			Logger.Error("stream ended", "id", s.ID, "name", s.Name, "err", s.Error.Error())
		} else {
			Logger.Info("stream ended", "id", s.ID, "name", s.Name)
		}
	}

	if result.Failed() {
		Logger.Error("midimerge exiting with errors", "err", result.Err())
		os.Exit(1)
	}
	Logger.Info("midimerge exiting cleanly")
}

// openSource opens name for reading, as a serial port if asSerial is set
// (an error on platforms without serial support), otherwise as a plain file.
func openSource(name string, asSerial bool) (merge.ByteSource, func() error, error) {
	if asSerial {
		return openSerialSource(name)
	}
	f, err := portio.OpenFile(name, os.O_RDONLY)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// openSink opens name for writing, as a serial port if asSerial is set
// (an error on platforms without serial support), otherwise as a plain file.
func openSink(name string, asSerial bool) (merge.ByteSink, func() error, error) {
	if asSerial {
		return openSerialSink(name)
	}
	f, err := portio.OpenFile(name, os.O_WRONLY)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
