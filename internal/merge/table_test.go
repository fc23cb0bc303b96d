/*
 * midimerge - message-length table tests.
 *
 * Copyright 2024, Richard Cornwell
 */

package merge

import "testing"

func TestDataLength(t *testing.T) {
	tests := []struct {
		status byte
		want   int
	}{
		{0x80, 2}, // Note Off
		{0x91, 2}, // Note On, channel 2
		{0xA5, 2}, // Poly Aftertouch
		{0xB0, 2}, // Control Change
		{0xC0, 1}, // Program Change
		{0xD0, 1}, // Channel Pressure
		{0xE0, 2}, // Pitch Bend
		{0xF1, 1}, // MTC Quarter Frame
		{0xF2, 2}, // Song Position Pointer
		{0xF3, 1}, // Song Select
		{0xF4, 0}, // undefined
		{0xF5, 0}, // undefined
		{0xF6, 0}, // Tune Request
		{0xF7, 0}, // EOX
	}
	for _, tc := range tests {
		if got := dataLength(tc.status); got != tc.want {
			t.Errorf("dataLength(%#x) = %d, want %d", tc.status, got, tc.want)
		}
	}
}

func TestClassification(t *testing.T) {
	for b := 0; b <= 0xFF; b++ {
		byt := byte(b)
		switch {
		case byt < 0x80:
			if isStatus(byt) {
				t.Errorf("isStatus(%#x) = true, want false", byt)
			}
		case byt >= 0x80 && byt < 0xF0:
			if !isChannel(byt) || isRealTime(byt) || isSystem(byt) {
				t.Errorf("classification wrong for channel byte %#x", byt)
			}
		case byt >= 0xF0 && byt < 0xF8:
			if !isSystem(byt) || isChannel(byt) || isRealTime(byt) {
				t.Errorf("classification wrong for system-common byte %#x", byt)
			}
		default: // 0xF8-0xFF
			if !isRealTime(byt) || !isSystem(byt) || isChannel(byt) {
				t.Errorf("classification wrong for real-time byte %#x", byt)
			}
		}
	}
}
