// ABOUTME: Decoder entry points and the Stream interface
// ABOUTME: Dispatches file extensions and readers to codec-specific decoders
package decode

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/soundtable/soundtable-go/pkg/audio"
)

// Stream is decoded audio readable as 16-bit little-endian interleaved PCM.
// Seek offsets are byte offsets into the decoded PCM data.
type Stream interface {
	io.ReadSeeker

	// Format reports the sample rate and channel count of the PCM data.
	Format() audio.Format

	// Length returns the total PCM byte count, or 0 when unknown.
	Length() int64
}

// CodecForPath guesses the codec from a file extension. It returns an empty
// string for extensions no decoder handles.
func CodecForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return "wav"
	case ".mp3":
		return "mp3"
	case ".flac":
		return "flac"
	case ".ogg", ".opus":
		return "opus"
	}
	return ""
}

// Open decodes r with the named codec. The reader must remain valid for the
// lifetime of the returned Stream; the wav and mp3 decoders read from it on
// demand, the flac and opus decoders consume it up front.
func Open(r io.ReadSeeker, codec string) (Stream, error) {
	switch codec {
	case "wav":
		return NewWAV(r)
	case "mp3":
		return NewMP3(r)
	case "flac":
		return NewFLAC(r)
	case "opus":
		return NewOpus(r)
	case "":
		return nil, fmt.Errorf("no codec given")
	}
	return nil, fmt.Errorf("unsupported codec: %s", codec)
}
