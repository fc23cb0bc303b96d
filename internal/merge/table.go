/*
 * midimerge - MIDI 1.0 message-length lookup table.
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

// Status byte classes, derived from the high bit and nybbles of a byte.
const (
	sox byte = 0xF0 // SysEx start
	eox byte = 0xF7 // End of SysEx
)

// isChannel reports whether b is a Channel Voice status (0x80-0xEF).
func isChannel(b byte) bool {
	return b&0x80 != 0 && b < 0xF0
}

// isSystem reports whether b is any System status (0xF0-0xFF).
func isSystem(b byte) bool {
	return b&0xF0 == 0xF0
}

// isRealTime reports whether b is a System Real-Time status (0xF8-0xFF).
func isRealTime(b byte) bool {
	return b&0xF8 == 0xF8
}

// isStatus reports whether b is any status byte (top bit set).
func isStatus(b byte) bool {
	return b&0x80 != 0
}

// msglen is the data-byte count for each status class, keyed by low
// nybble for system-common status (0xF0-0xF7) and by high nybble for
// channel status (0x80-0xEF). A value of -1 marks SysEx, whose length
// is not fixed but terminated by EOX.
var msglen = [16]int{
	0x0: -1, // SOX - variable length
	0x1: 1,  // MTC Quarter Frame
	0x2: 2,  // Song Position Pointer
	0x3: 1,  // Song Select
	0x4: 0,  // undefined
	0x5: 0,  // undefined
	0x6: 0,  // Tune Request
	0x7: 0,  // EOX
	0x8: 2,  // Note Off
	0x9: 2,  // Note On
	0xA: 2,  // Poly Aftertouch
	0xB: 2,  // Control Change
	0xC: 1,  // Program Change
	0xD: 1,  // Channel Pressure
	0xE: 2,  // Pitch Bend
	0xF: 0,  // system real-time, handled separately
}

// dataLength returns the number of data bytes expected for a complete
// non-SysEx status byte. Callers must special-case SysEx (0xF0) and
// real-time (0xF8-0xFF) before consulting this table.
func dataLength(status byte) int {
	if isChannel(status) {
		return msglen[status>>4]
	}
	return msglen[status&0x0F]
}
