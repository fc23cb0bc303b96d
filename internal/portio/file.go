/*
 * midimerge - file-backed byte source/sink.
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

// Package portio implements merge.ByteSource/merge.ByteSink over real
// transports: plain files (and character devices such as ALSA rawmidi
// nodes) and, on Linux, raw serial ports carrying MIDI DIN traffic.
package portio

import (
	"errors"
	"os"
)

// ErrShortRead/ErrShortWrite mark the "anything but a clean one-byte
// transfer is an error" rule (the original C program's putbyte checked
// write(...) != 0 instead of < 0, which would treat a successful
// one-byte write, reported as retval 1, as failure; this package
// defines success unambiguously instead).
var (
	ErrShortRead  = errors.New("portio: short read")
	ErrShortWrite = errors.New("portio: short write")
)

// File wraps an *os.File as a one-byte-at-a-time ByteSource/ByteSink.
// It performs exactly one Read or Write syscall per MIDI byte, matching
// the core's blocking single-byte contract literally.
type File struct {
	f    *os.File
	name string
}

// OpenFile opens name with the given flag (os.O_RDONLY or os.O_WRONLY)
// and wraps it as a File.
func OpenFile(name string, flag int) (*File, error) {
	f, err := os.OpenFile(name, flag, 0o644)
	if err != nil {
		return nil, err
	}
	return &File{f: f, name: name}, nil
}

// Name satisfies merge.Named, used for error reporting.
func (p *File) Name() string { return p.name }

// ReadByte reads exactly one byte, blocking. Returns io.EOF at end of input.
func (p *File) ReadByte() (byte, error) {
	var b [1]byte
	n, err := p.f.Read(b[:])
	if n == 1 {
		return b[0], nil
	}
	if err == nil {
		err = ErrShortRead
	}
	return 0, err
}

// WriteByte writes exactly one byte, blocking. Any outcome other than a
// completed one-byte write is an error — a short write is not success.
func (p *File) WriteByte(b byte) error {
	n, err := p.f.Write([]byte{b})
	if err != nil {
		return err
	}
	if n != 1 {
		return ErrShortWrite
	}
	return nil
}

// Close releases the underlying file handle.
func (p *File) Close() error {
	return p.f.Close()
}
