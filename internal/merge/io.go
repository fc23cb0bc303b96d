/*
 * midimerge - byte source/sink contracts and blocking I/O helpers.
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

package merge

import (
	"errors"
	"io"

	"github.com/rcornwell/midimerge/util/hex"
)

// ByteSource is a blocking, one-byte-at-a-time MIDI input. Implementations
// must report clean end-of-input as io.EOF, never as a byte value.
type ByteSource interface {
	ReadByte() (byte, error)
}

// ByteSink is a blocking, one-byte-at-a-time MIDI output. A successful
// call has written exactly one byte; any other outcome is an error.
type ByteSink interface {
	WriteByte(b byte) error
}

// ErrorKind classifies why a Worker stopped.
type ErrorKind int

const (
	// KindNone means the worker has not stopped, or stopped cleanly.
	KindNone ErrorKind = iota
	// KindEndOfInput is a clean EOF on the input source. Not an error.
	KindEndOfInput
	// KindIORead is a non-EOF failure reading from the input.
	KindIORead
	// KindIOWrite is a failure writing to the shared sink.
	KindIOWrite
	// KindFraming is malformed MIDI: a status byte where a data byte was
	// expected, or a data byte with no established running status.
	KindFraming
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "ok"
	case KindEndOfInput:
		return "end_of_input"
	case KindIORead:
		return "io_read"
	case KindIOWrite:
		return "io_write"
	case KindFraming:
		return "framing"
	default:
		return "unknown"
	}
}

// StreamError is the terminal status of one Worker.
type StreamError struct {
	Kind ErrorKind
	Err  error
}

func (e *StreamError) Error() string {
	if e == nil || e.Kind == KindNone {
		return "ok"
	}
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Err.Error()
	}
	return e.Kind.String()
}

// framingError reports a data byte appearing with no established running
// status, or a status byte appearing where a data byte was expected,
// naming the offending byte for diagnostics.
func framingError(b byte) *StreamError {
	return &StreamError{
		Kind: KindFraming,
		Err:  errors.New(hex.Byte(b) + ": status byte or unestablished running status where a data byte was expected"),
	}
}

// readResult is the sum type returned by readByte: exactly one of its
// fields is meaningful, selected by err. Helpers never exit the calling
// goroutine directly; the framing loop in Worker.run is the only place
// that transitions to a terminal state.
type readResult struct {
	b   byte
	err *StreamError
}

// readByte performs one blocking read from src, translating io.EOF into
// KindEndOfInput and any other error into KindIORead.
func readByte(src ByteSource) readResult {
	b, err := src.ReadByte()
	if err == nil {
		return readResult{b: b}
	}
	if errors.Is(err, io.EOF) {
		return readResult{err: &StreamError{Kind: KindEndOfInput}}
	}
	return readResult{err: &StreamError{Kind: KindIORead, Err: err}}
}

// writeByte performs one blocking write to sink. Any error — short write,
// I/O failure — is reported as KindIOWrite; the underlying ByteSink
// contract guarantees a nil error means one byte was written.
func writeByte(sink ByteSink, b byte) *StreamError {
	if err := sink.WriteByte(b); err != nil {
		return &StreamError{Kind: KindIOWrite, Err: err}
	}
	return nil
}
