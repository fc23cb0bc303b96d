/*
 * midimerge - supervisor: launch workers, join, aggregate.
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
	"errors"
	"fmt"
	"sync"
)

// DefaultMaxStreams is the recommended cap on input streams. It is
// enforced by callers of Run, not by Run itself.
const DefaultMaxStreams = 8

// Named is an optional interface a ByteSource can implement to give a
// Worker a human-readable name in error reporting. Sources that don't
// implement it are named "input N".
type Named interface {
	Name() string
}

// Options configures a Run invocation.
type Options struct {
	// MaxStreams documents the cap the caller has already enforced; Run
	// does not itself reject len(sources) > MaxStreams.
	MaxStreams int
}

// StreamResult is one input's terminal status, paired with its identity.
type StreamResult struct {
	ID    int
	Name  string
	Error StreamError
}

// Result is the aggregated outcome of Run.
type Result struct {
	Streams  []StreamResult
	ExitCode int
}

// Failed reports whether any stream terminated with a non-ok, non-EOF
// status, or Run was given no inputs at all.
func (r Result) Failed() bool {
	return r.ExitCode != 0
}

// Err renders a summary naming each failed input and its kind, or nil
// when Failed reports false. With no inputs the summary names no input.
func (r Result) Err() error {
	if !r.Failed() {
		return nil
	}
	var msgs []string
	for _, s := range r.Streams {
		if s.Error.Kind != KindNone && s.Error.Kind != KindEndOfInput {
			msgs = append(msgs, fmt.Sprintf("%s (id %d): %s", s.Name, s.ID, s.Error.Error()))
		}
	}
	return errors.New("midimerge: " + joinLines(msgs))
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "; "
		}
		out += l
	}
	return out
}

// Run constructs a SharedOutput around sink, starts one Worker per entry
// in sources, waits for every worker to reach a terminal state, and
// returns the aggregated Result. Every started worker is joined exactly
// once, via a sync.WaitGroup rather than a polling sleep loop.
//
// ctx cancellation does not interrupt a blocking read directly; callers
// that want clean shutdown must also close the corresponding source so
// its next read unblocks with an error.
func Run(ctx context.Context, sources []ByteSource, sink ByteSink, _ Options) Result {
	shared := NewSharedOutput(sink)

	workers := make([]*Worker, len(sources))
	var wg sync.WaitGroup
	for i, src := range sources {
		name := fmt.Sprintf("input %d", i)
		if n, ok := src.(Named); ok {
			name = n.Name()
		}
		w := NewWorker(i, name, src, shared)
		workers[i] = w

		wg.Add(1)
		go func(w *Worker) {
			defer wg.Done()
			w.run(ctx)
		}(w)
	}

	wg.Wait()

	result := Result{Streams: make([]StreamResult, len(workers))}
	for i, w := range workers {
		err := w.Result()
		result.Streams[i] = StreamResult{ID: w.ID, Name: w.Name, Error: err}
		if err.Kind != KindNone && err.Kind != KindEndOfInput {
			result.ExitCode = 1
		}
	}
	if len(sources) == 0 {
		result.ExitCode = 1
	}
	return result
}
