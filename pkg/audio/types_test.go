// ABOUTME: Tests for PCM format helpers
// ABOUTME: Tests duration/offset conversion and sample scaling
package audio

import (
	"testing"
	"time"
)

func TestFormatSizes(t *testing.T) {
	format := Format{SampleRate: 44100, Channels: 2}

	if format.BytesPerFrame() != 4 {
		t.Errorf("expected 4 bytes per frame, got %d", format.BytesPerFrame())
	}

	if format.BytesPerSecond() != 176400 {
		t.Errorf("expected 176400 bytes per second, got %d", format.BytesPerSecond())
	}
}

func TestDuration(t *testing.T) {
	format := Format{SampleRate: 44100, Channels: 2}

	// One second of stereo 16-bit audio
	d := format.Duration(176400)
	if d != time.Second {
		t.Errorf("expected 1s, got %v", d)
	}

	// Zero format must not divide by zero
	var zero Format
	if zero.Duration(1000) != 0 {
		t.Error("expected zero duration for zero format")
	}
}

func TestOffset(t *testing.T) {
	format := Format{SampleRate: 48000, Channels: 2}

	off := format.Offset(500 * time.Millisecond)
	if off != 24000*4 {
		t.Errorf("expected offset %d, got %d", 24000*4, off)
	}

	// Offsets are frame aligned
	if off%int64(format.BytesPerFrame()) != 0 {
		t.Error("offset not frame aligned")
	}

	if format.Offset(-time.Second) != 0 {
		t.Error("negative position should clamp to 0")
	}
}

func TestOffsetDurationRoundTrip(t *testing.T) {
	format := Format{SampleRate: 44100, Channels: 1}

	pos := 1250 * time.Millisecond
	got := format.Duration(format.Offset(pos))

	diff := got - pos
	if diff < 0 {
		diff = -diff
	}
	// Round trip may lose up to one frame
	if diff > time.Second/time.Duration(format.SampleRate) {
		t.Errorf("round trip drifted: want ~%v, got %v", pos, got)
	}
}

func TestClampInt16(t *testing.T) {
	if ClampInt16(40000) != 32767 {
		t.Error("expected positive clamp to 32767")
	}
	if ClampInt16(-40000) != -32768 {
		t.Error("expected negative clamp to -32768")
	}
	if ClampInt16(1234) != 1234 {
		t.Error("expected in-range value unchanged")
	}
}

func TestScale16(t *testing.T) {
	// 24-bit full scale maps to 16-bit full scale
	if Scale16(8388607, 24) != 32767 {
		t.Errorf("expected 32767, got %d", Scale16(8388607, 24))
	}

	// 8-bit scales up
	if Scale16(127, 8) != 127<<8 {
		t.Errorf("expected %d, got %d", 127<<8, Scale16(127, 8))
	}

	// 16-bit passes through
	if Scale16(-12345, 16) != -12345 {
		t.Errorf("expected -12345, got %d", Scale16(-12345, 16))
	}
}
