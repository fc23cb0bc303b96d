/*
 * midimerge - Stream Worker framing scenarios.
 *
 * Copyright 2024, Richard Cornwell
 */

package merge

import (
	"bytes"
	"context"
	"testing"
)

func runWorkerSync(src ByteSource, shared *SharedOutput) *Worker {
	w := NewWorker(0, "test", src, shared)
	w.run(context.Background())
	return w
}

// Scenario 1: single input, two Note On on channel 1, running status preserved.
func TestSingleInputRunningStatus(t *testing.T) {
	sink := &syncSink{}
	shared := NewSharedOutput(sink)
	src := newByteQueue("A", 0x90, 0x3C, 0x7F, 0x3C, 0x00)

	w := runWorkerSync(src, shared)

	if got := w.Result(); got.Kind != KindEndOfInput {
		t.Fatalf("worker result = %v, want end_of_input", got)
	}
	want := []byte{0x90, 0x3C, 0x7F, 0x3C, 0x00}
	if got := sink.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("sink = % X, want % X", got, want)
	}
}

// Scenario 3: real-time byte interleaved into a Control Change body,
// passed through without consuming a data slot.
func TestRealtimeInsideMessage(t *testing.T) {
	sink := &syncSink{}
	shared := NewSharedOutput(sink)
	src := newByteQueue("A", 0xB0, 0x07, 0xF8, 0x64)

	w := runWorkerSync(src, shared)

	if got := w.Result(); got.Kind != KindEndOfInput {
		t.Fatalf("worker result = %v, want end_of_input", got)
	}
	want := []byte{0xB0, 0x07, 0xF8, 0x64}
	if got := sink.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("sink = % X, want % X", got, want)
	}
	if _, rt := shared.Stats(); rt != 1 {
		t.Fatalf("realtime byte count = %d, want 1", rt)
	}
}

// Scenario 5: cross-worker status change invalidates running status when
// the two workers run strictly in sequence against the same shared output.
func TestCrossWorkerStatusChange(t *testing.T) {
	sink := &syncSink{}
	shared := NewSharedOutput(sink)

	a := newByteQueue("A", 0x90, 0x3C, 0x7F)
	wa := NewWorker(0, "A", a, shared)
	wa.run(context.Background())
	if got := wa.Result(); got.Kind != KindEndOfInput {
		t.Fatalf("worker A result = %v, want end_of_input", got)
	}

	b := newByteQueue("B", 0x80, 0x3C, 0x40, 0x3C, 0x40)
	wb := NewWorker(1, "B", b, shared)
	wb.run(context.Background())
	if got := wb.Result(); got.Kind != KindEndOfInput {
		t.Fatalf("worker B result = %v, want end_of_input", got)
	}

	want := []byte{0x90, 0x3C, 0x7F, 0x80, 0x3C, 0x40, 0x3C, 0x40}
	if got := sink.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("sink = % X, want % X", got, want)
	}
}

// Scenario 6: a data byte with no established running status is a framing error.
func TestFramingErrorNoStatus(t *testing.T) {
	sink := &syncSink{}
	shared := NewSharedOutput(sink)
	src := newByteQueue("A", 0x3C, 0x7F)

	w := runWorkerSync(src, shared)

	if got := w.Result(); got.Kind != KindFraming {
		t.Fatalf("worker result = %v, want framing", got)
	}
}

// A status byte appearing where a data byte was expected is a framing error.
func TestFramingErrorShortMessage(t *testing.T) {
	sink := &syncSink{}
	shared := NewSharedOutput(sink)
	// Note On declares 2 data bytes but only one arrives before a new status.
	src := newByteQueue("A", 0x90, 0x3C, 0x80, 0x40, 0x40)

	w := runWorkerSync(src, shared)

	if got := w.Result(); got.Kind != KindFraming {
		t.Fatalf("worker result = %v, want framing", got)
	}
}

// SysEx is fully atomic against a real-time-only peer.
func TestSysExAtomicAgainstRealtime(t *testing.T) {
	sink := &syncSink{}
	shared := NewSharedOutput(sink)

	sysex := []byte{0xF0, 0x7E, 0x00, 0x06, 0x01, 0xF7}
	a := newByteQueue("A", sysex...)
	b := newByteQueue("B", 0xF8, 0xF8)

	wa := NewWorker(0, "A", a, shared)
	wb := NewWorker(1, "B", b, shared)

	done := make(chan struct{}, 2)
	go func() { wa.run(context.Background()); done <- struct{}{} }()
	go func() { wb.run(context.Background()); done <- struct{}{} }()
	<-done
	<-done

	out := sink.Bytes()
	idx := bytes.Index(out, sysex)
	if idx < 0 {
		t.Fatalf("sink % X does not contain contiguous sysex % X", out, sysex)
	}
	before := out[:idx]
	after := out[idx+len(sysex):]
	rtCount := bytes.Count(before, []byte{0xF8}) + bytes.Count(after, []byte{0xF8})
	if rtCount != 2 {
		t.Fatalf("expected exactly 2 realtime bytes outside sysex, got %d in % X", rtCount, out)
	}
	if bytes.Contains(out[idx:idx+len(sysex)], []byte{0xF8}) {
		t.Fatalf("realtime byte leaked inside sysex span: % X", out)
	}
}

// A SysEx transfer with no internal buffer limit: length is bounded only
// by the input, not by any fixed-size buffer in the implementation.
func TestSysExUnboundedLength(t *testing.T) {
	sink := &syncSink{}
	shared := NewSharedOutput(sink)

	payload := make([]byte, 0, 10000)
	payload = append(payload, 0xF0)
	for i := 0; i < 9998; i++ {
		payload = append(payload, byte(i%0x80))
	}
	payload = append(payload, 0xF7)

	src := newByteQueue("A", payload...)
	w := runWorkerSync(src, shared)

	if got := w.Result(); got.Kind != KindEndOfInput {
		t.Fatalf("worker result = %v, want end_of_input", got)
	}
	if got := sink.Bytes(); !bytes.Equal(got, payload) {
		t.Fatalf("sink length = %d, want %d", len(got), len(payload))
	}
}

// Two identical-status inputs racing: either interleaving is valid, but
// the loser must take running status from the winner.
func TestIdenticalStatusCrossMerge(t *testing.T) {
	sink := &syncSink{}
	shared := NewSharedOutput(sink)

	a := newByteQueue("A", 0x90, 0x3C, 0x7F)
	b := newByteQueue("B", 0x90, 0x40, 0x7F)

	wa := NewWorker(0, "A", a, shared)
	wb := NewWorker(1, "B", b, shared)

	done := make(chan struct{}, 2)
	go func() { wa.run(context.Background()); done <- struct{}{} }()
	go func() { wb.run(context.Background()); done <- struct{}{} }()
	<-done
	<-done

	out := sink.Bytes()
	valid1 := []byte{0x90, 0x3C, 0x7F, 0x40, 0x7F}
	valid2 := []byte{0x90, 0x40, 0x7F, 0x3C, 0x7F}
	if !bytes.Equal(out, valid1) && !bytes.Equal(out, valid2) {
		t.Fatalf("sink = % X, want one of % X or % X", out, valid1, valid2)
	}
}

// An input ending mid-message surfaces as end_of_input, not framing: the
// worker does not distinguish a clean EOF from one that lands inside a
// message body.
func TestPartialMessageEOF(t *testing.T) {
	sink := &syncSink{}
	shared := NewSharedOutput(sink)
	src := newByteQueue("A", 0x90, 0x3C) // Note On declares 2 data bytes, only 1 arrives.

	w := runWorkerSync(src, shared)

	if got := w.Result(); got.Kind != KindEndOfInput {
		t.Fatalf("worker result = %v, want end_of_input", got)
	}
	want := []byte{0x90, 0x3C}
	if got := sink.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("sink = % X, want % X (partial write is not rolled back)", got, want)
	}
}

// A sink failure is reported as io_write and the worker stops promptly.
func TestSinkFailure(t *testing.T) {
	sink := &failAfterSink{n: 2}
	shared := NewSharedOutput(sink)
	src := newByteQueue("A", 0x90, 0x3C, 0x7F)

	w := runWorkerSync(src, shared)

	if got := w.Result(); got.Kind != KindIOWrite {
		t.Fatalf("worker result = %v, want io_write", got)
	}
}
