/*
 * midimerge - serial-port byte source/sink for hardware MIDI DIN ports.
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

//go:build linux

package portio

import (
	serial "github.com/daedaluz/goserial"
)

// MIDIBaud is the MIDI 1.0 DIN wire rate. It has no POSIX Bxxxxx constant,
// so it has to be set through the custom-divisor termios2 path.
const MIDIBaud = 31250

// Serial wraps a raw serial port as a one-byte-at-a-time ByteSource/
// ByteSink, for merging streams arriving over a UART/USB-serial MIDI
// interface rather than a file or ALSA rawmidi device.
type Serial struct {
	port *serial.Port
	name string
}

// OpenSerial opens name (e.g. "/dev/ttyUSB0"), puts the line into raw
// mode, and configures it for the MIDI DIN bit rate.
func OpenSerial(name string) (*Serial, error) {
	port, err := serial.Open(name, nil)
	if err != nil {
		return nil, err
	}
	if err := port.MakeRaw(); err != nil {
		port.Close()
		return nil, err
	}
	attrs, err := port.GetAttr2()
	if err != nil {
		port.Close()
		return nil, err
	}
	attrs.MakeRaw()
	attrs.SetCustomIOSpeed(MIDIBaud, MIDIBaud)
	if err := port.SetAttr2(serial.TCSANOW, attrs); err != nil {
		port.Close()
		return nil, err
	}
	return &Serial{port: port, name: name}, nil
}

// Name satisfies merge.Named, used for error reporting.
func (s *Serial) Name() string { return s.name }

// ReadByte reads exactly one byte, blocking. Returns io.EOF if the port
// is closed out from under a pending read (the clean-shutdown path).
func (s *Serial) ReadByte() (byte, error) {
	var b [1]byte
	n, err := s.port.Read(b[:])
	if n == 1 {
		return b[0], nil
	}
	if err == nil {
		err = ErrShortRead
	}
	return 0, err
}

// WriteByte writes exactly one byte, blocking.
func (s *Serial) WriteByte(b byte) error {
	n, err := s.port.Write([]byte{b})
	if err != nil {
		return err
	}
	if n != 1 {
		return ErrShortWrite
	}
	return nil
}

// Close releases the underlying serial port.
func (s *Serial) Close() error {
	return s.port.Close()
}
