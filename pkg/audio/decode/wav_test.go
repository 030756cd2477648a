// ABOUTME: Tests for the WAV decoder
// ABOUTME: Builds RIFF containers in memory and checks parsing and seeking
package decode

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
)

// buildWAV constructs a minimal RIFF/WAVE container around raw PCM.
// extraChunk optionally inserts an unknown chunk before the data chunk.
func buildWAV(t *testing.T, pcm []byte, sampleRate, channels, bitDepth int, extraChunk bool) []byte {
	t.Helper()

	var body bytes.Buffer

	writeChunk := func(id string, payload []byte) {
		body.WriteString(id)
		var size [4]byte
		binary.LittleEndian.PutUint32(size[:], uint32(len(payload)))
		body.Write(size[:])
		body.Write(payload)
		if len(payload)%2 == 1 {
			body.WriteByte(0)
		}
	}

	fmtChunk := make([]byte, 16)
	binary.LittleEndian.PutUint16(fmtChunk[0:2], 1) // PCM
	binary.LittleEndian.PutUint16(fmtChunk[2:4], uint16(channels))
	binary.LittleEndian.PutUint32(fmtChunk[4:8], uint32(sampleRate))
	byteRate := sampleRate * channels * bitDepth / 8
	binary.LittleEndian.PutUint32(fmtChunk[8:12], uint32(byteRate))
	binary.LittleEndian.PutUint16(fmtChunk[12:14], uint16(channels*bitDepth/8))
	binary.LittleEndian.PutUint16(fmtChunk[14:16], uint16(bitDepth))
	writeChunk("fmt ", fmtChunk)

	if extraChunk {
		writeChunk("LIST", []byte("INFOtest metadata"))
	}

	writeChunk("data", pcm)

	var file bytes.Buffer
	file.WriteString("RIFF")
	var size [4]byte
	binary.LittleEndian.PutUint32(size[:], uint32(4+body.Len()))
	file.Write(size[:])
	file.WriteString("WAVE")
	file.Write(body.Bytes())
	return file.Bytes()
}

func pcmSamples(samples ...int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}

func TestWAVDecode(t *testing.T) {
	pcm := pcmSamples(100, -100, 200, -200)
	file := buildWAV(t, pcm, 44100, 2, 16, false)

	stream, err := NewWAV(bytes.NewReader(file))
	if err != nil {
		t.Fatalf("failed to open wav: %v", err)
	}

	format := stream.Format()
	if format.SampleRate != 44100 || format.Channels != 2 {
		t.Errorf("unexpected format: %+v", format)
	}

	if stream.Length() != int64(len(pcm)) {
		t.Errorf("expected length %d, got %d", len(pcm), stream.Length())
	}

	got, err := io.ReadAll(stream)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !bytes.Equal(got, pcm) {
		t.Errorf("decoded PCM mismatch: want %v, got %v", pcm, got)
	}
}

func TestWAVSkipsUnknownChunks(t *testing.T) {
	pcm := pcmSamples(1, 2, 3, 4)
	file := buildWAV(t, pcm, 22050, 1, 16, true)

	stream, err := NewWAV(bytes.NewReader(file))
	if err != nil {
		t.Fatalf("failed to open wav with LIST chunk: %v", err)
	}

	got, err := io.ReadAll(stream)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !bytes.Equal(got, pcm) {
		t.Error("PCM mismatch after skipping metadata chunk")
	}
}

func TestWAVSeek(t *testing.T) {
	pcm := pcmSamples(10, 20, 30, 40, 50, 60, 70, 80)
	file := buildWAV(t, pcm, 8000, 1, 16, false)

	stream, err := NewWAV(bytes.NewReader(file))
	if err != nil {
		t.Fatalf("failed to open wav: %v", err)
	}

	// Seek halfway in, read the rest
	pos, err := stream.Seek(8, io.SeekStart)
	if err != nil {
		t.Fatalf("seek failed: %v", err)
	}
	if pos != 8 {
		t.Errorf("expected position 8, got %d", pos)
	}

	got, err := io.ReadAll(stream)
	if err != nil {
		t.Fatalf("read after seek failed: %v", err)
	}
	if !bytes.Equal(got, pcm[8:]) {
		t.Errorf("expected tail %v, got %v", pcm[8:], got)
	}

	// Rewind to start
	if _, err := stream.Seek(0, io.SeekStart); err != nil {
		t.Fatalf("rewind failed: %v", err)
	}
	got, err = io.ReadAll(stream)
	if err != nil {
		t.Fatalf("read after rewind failed: %v", err)
	}
	if !bytes.Equal(got, pcm) {
		t.Error("full read after rewind mismatch")
	}
}

func TestWAVRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"not riff", []byte("OGGS this is something else entirely")},
		{"8 bit depth", buildWAV(t, []byte{1, 2, 3, 4}, 44100, 1, 8, false)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewWAV(bytes.NewReader(tc.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
