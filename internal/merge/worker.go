/*
 * midimerge - per-input framing state machine.
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
	"context"
	"sync"
)

// Worker is one concurrent framing agent, driving a single input source
// and emitting complete messages to the SharedOutput under the
// appropriate lock. Create with NewWorker; run with Worker.run.
type Worker struct {
	ID     int
	Name   string
	Source ByteSource
	Shared *SharedOutput

	status byte // this worker's own last-emitted non-real-time status. 0x00 = none established.
	expect int  // data bytes expected for status, tracked explicitly (never inferred from a stale loop variable).

	doneCh chan struct{}
	mu     sync.Mutex
	result StreamError
}

// NewWorker constructs a Worker. It does not start the framing loop.
func NewWorker(id int, name string, source ByteSource, shared *SharedOutput) *Worker {
	return &Worker{
		ID:     id,
		Name:   name,
		Source: source,
		Shared: shared,
		doneCh: make(chan struct{}),
	}
}

// Done returns a channel closed exactly once, when the worker has reached
// a terminal state. Run joins workers through a sync.WaitGroup instead;
// Done is for callers that wait on a single worker.
func (w *Worker) Done() <-chan struct{} {
	return w.doneCh
}

// Result returns the worker's terminal status. Valid only after Done()
// has been observed closed.
func (w *Worker) Result() StreamError {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.result
}

// finish records the terminal status and signals Done exactly once. It is
// the single place Worker transitions to a terminal state, so every lock
// acquired during run is already released by the time finish is called.
func (w *Worker) finish(result StreamError) {
	w.mu.Lock()
	w.result = result
	w.mu.Unlock()
	close(w.doneCh)
}

// run drives the framing loop for this input until end-of-input, an I/O
// error, a framing error, or ctx cancellation unblocks a pending read
// with a recognized error (the core itself cannot interrupt a blocking
// read; the Supervisor is expected to close the input handle on cancel).
func (w *Worker) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.finish(StreamError{Kind: KindEndOfInput})
			return
		default:
		}

		r := readByte(w.Source)
		if r.err != nil {
			if r.err.Kind == KindEndOfInput {
				w.finish(StreamError{Kind: KindEndOfInput})
			} else {
				w.finish(*r.err)
			}
			return
		}
		b := r.b

		switch {
		case isRealTime(b):
			if err := w.Shared.writeRealtime(b); err != nil {
				w.finish(*err)
				return
			}

		case b == sox:
			if err := w.runSysEx(); err != nil {
				w.finish(*err)
				return
			}
			w.status = 0x00
			w.expect = 0

		case isStatus(b):
			n := dataLength(b)
			if err := w.emitMessage(b, b, n); err != nil {
				w.finish(*err)
				return
			}
			w.status = b
			w.expect = n

		default:
			// Data byte at top of loop: running-status continuation.
			if w.status == 0x00 {
				w.finish(*framingError(b))
				return
			}
			if err := w.emitMessage(w.status, b, w.expect); err != nil {
				w.finish(*err)
				return
			}
		}
	}
}

// runSysEx transfers a complete SysEx atomically: msg_lock then rt_lock
// are held for the entire transfer, excluding every other worker's bytes
// — real-time included — from appearing on the wire until EOX.
func (w *Worker) runSysEx() *StreamError {
	w.Shared.mu.Lock()
	defer w.Shared.mu.Unlock()
	w.Shared.rtMu.Lock()
	defer w.Shared.rtMu.Unlock()

	if err := writeByte(w.Shared.sink, sox); err != nil {
		return err
	}
	for {
		r := readByte(w.Source)
		if r.err != nil {
			return r.err
		}
		if err := writeByte(w.Shared.sink, r.b); err != nil {
			return err
		}
		if r.b == eox {
			break
		}
	}
	w.Shared.globalStatus = 0x00
	w.Shared.messages.Add(1)
	return nil
}

// emitMessage is the shared emit procedure for a channel/system-common
// message, called with msg_lock held for its whole duration so the
// message is contiguous on the wire. status is the message's actual
// status byte; first is either status itself (caller just classified a
// status byte) or a data byte (running-status continuation); n is the
// expected data byte count.
func (w *Worker) emitMessage(status, first byte, n int) *StreamError {
	w.Shared.mu.Lock()
	defer w.Shared.mu.Unlock()

	count := 0
	if first == status {
		if w.Shared.globalStatus != status {
			if err := writeByte(w.Shared.sink, status); err != nil {
				return err
			}
			w.Shared.globalStatus = status
		}
	} else {
		if w.Shared.globalStatus != status {
			if err := writeByte(w.Shared.sink, status); err != nil {
				return err
			}
			w.Shared.globalStatus = status
		}
		if err := writeByte(w.Shared.sink, first); err != nil {
			return err
		}
		count = 1
	}

	for count < n {
		r := readByte(w.Source)
		if r.err != nil {
			return r.err
		}
		b := r.b
		if isRealTime(b) {
			// Permitted inside a message, never inside SysEx; holding
			// msg_lock here means no SysEx is in progress. rt_lock is
			// taken after msg_lock, the same order runSysEx uses.
			if err := w.Shared.writeRealtime(b); err != nil {
				return err
			}
			continue
		}
		if isStatus(b) {
			return framingError(b)
		}
		if err := writeByte(w.Shared.sink, b); err != nil {
			return err
		}
		count++
	}

	w.Shared.globalStatus = status
	w.Shared.messages.Add(1)
	return nil
}
