/*
 * midimerge - shared output state: the sink, running status, and locks.
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
	"sync"
	"sync/atomic"
)

// SharedOutput is the single sink shared by every Worker, plus the two
// mutual-exclusion primitives that make its use safe under concurrency.
//
// Lock order: mu (msg_lock) is always acquired before rtMu (rt_lock)
// when both are held. rtMu is never held while waiting on mu.
type SharedOutput struct {
	sink ByteSink

	mu           sync.Mutex // msg_lock: serializes a full non-real-time message, including SysEx.
	rtMu         sync.Mutex // rt_lock: serializes real-time bytes, and excludes them from SysEx.
	globalStatus byte       // protected by mu. 0x00 means "no running status".

	messages      atomic.Uint64 // non-real-time messages fully emitted, across all workers.
	realtimeBytes atomic.Uint64 // real-time bytes emitted, across all workers.
}

// NewSharedOutput constructs the shared state around sink. Construct once
// before starting any Worker; tear down only after every Worker has joined.
func NewSharedOutput(sink ByteSink) *SharedOutput {
	return &SharedOutput{sink: sink}
}

// Stats reports cumulative message and real-time byte counts, for tests
// and for optional CLI reporting. Safe to call concurrently.
func (s *SharedOutput) Stats() (messages, realtimeBytes uint64) {
	return s.messages.Load(), s.realtimeBytes.Load()
}

// writeRealtime emits a single real-time byte under rt_lock. It never
// touches globalStatus: real-time bytes never invoke or break running
// status.
func (s *SharedOutput) writeRealtime(b byte) *StreamError {
	s.rtMu.Lock()
	defer s.rtMu.Unlock()
	if err := writeByte(s.sink, b); err != nil {
		return err
	}
	s.realtimeBytes.Add(1)
	return nil
}
