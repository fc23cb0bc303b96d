/*
 * midimerge - hex formatting for diagnostic byte dumps.
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

// Package hex formats raw MIDI bytes for error and log output.
package hex

import "strings"

var hexMap = "0123456789ABCDEF"

// FormatByte appends the two-digit upper-case hex form of data to str.
func FormatByte(str *strings.Builder, data byte) {
	str.WriteByte(hexMap[(data>>4)&0xf])
	str.WriteByte(hexMap[data&0xf])
}

// FormatBytes appends the hex form of every byte in data to str,
// space-separated when space is true.
func FormatBytes(str *strings.Builder, space bool, data []byte) {
	for i, by := range data {
		if space && i > 0 {
			str.WriteByte(' ')
		}
		FormatByte(str, by)
	}
}

// Byte renders a single byte as "0xHH", the form used in StreamError text.
func Byte(data byte) string {
	var b strings.Builder
	b.WriteString("0x")
	FormatByte(&b, data)
	return b.String()
}
