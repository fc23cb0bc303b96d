/*
 * midimerge - portio.Serial constructor validation.
 *
 * Copyright 2024, Richard Cornwell
 */

//go:build linux

package portio

import "testing"

// There is no real MIDI-capable UART in a test environment, so this only
// exercises the error path and the constant the rest of the stack (the
// CLI, and any hardware integration test run by hand) depends on.
func TestOpenSerialMissingDevice(t *testing.T) {
	_, err := OpenSerial("/dev/midimerge-test-nonexistent-port")
	if err == nil {
		t.Fatal("expected an error opening a nonexistent serial device")
	}
}

func TestMIDIBaudRate(t *testing.T) {
	if MIDIBaud != 31250 {
		t.Fatalf("MIDIBaud = %d, want 31250", MIDIBaud)
	}
}
