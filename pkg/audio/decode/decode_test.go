// ABOUTME: Tests for decoder dispatch
// ABOUTME: Tests codec detection and Open error paths
package decode

import (
	"bytes"
	"testing"
)

func TestCodecForPath(t *testing.T) {
	cases := []struct {
		path  string
		codec string
	}{
		{"sfx/jump.wav", "wav"},
		{"music/THEME.WAV", "wav"},
		{"music/theme.wave", "wav"},
		{"music/theme.mp3", "mp3"},
		{"music/theme.flac", "flac"},
		{"voice/line1.ogg", "opus"},
		{"voice/line1.opus", "opus"},
		{"data/settings.json", ""},
		{"noextension", ""},
	}

	for _, tc := range cases {
		if got := CodecForPath(tc.path); got != tc.codec {
			t.Errorf("CodecForPath(%q) = %q, want %q", tc.path, got, tc.codec)
		}
	}
}

func TestOpenUnknownCodec(t *testing.T) {
	if _, err := Open(bytes.NewReader(nil), "aiff"); err == nil {
		t.Error("expected error for unsupported codec")
	}

	if _, err := Open(bytes.NewReader(nil), ""); err == nil {
		t.Error("expected error for empty codec")
	}
}

func TestOpenGarbageInput(t *testing.T) {
	garbage := bytes.Repeat([]byte{0xde, 0xad}, 32)

	for _, codec := range []string{"wav", "flac"} {
		if _, err := Open(bytes.NewReader(garbage), codec); err == nil {
			t.Errorf("expected %s decoder to reject garbage", codec)
		}
	}
}
