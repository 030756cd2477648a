// ABOUTME: MP3 audio decoder
// ABOUTME: Wraps hajimehoshi/go-mp3 as a seekable PCM Stream
package decode

import (
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"

	"github.com/soundtable/soundtable-go/pkg/audio"
)

// MP3Decoder decodes MP3 audio on demand. go-mp3 always produces 16-bit
// stereo output, so only the sample rate varies per file.
type MP3Decoder struct {
	decoder *mp3.Decoder
}

// NewMP3 creates a decoder reading from r.
func NewMP3(r io.ReadSeeker) (Stream, error) {
	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create mp3 decoder: %w", err)
	}
	return &MP3Decoder{decoder: decoder}, nil
}

// Read decodes the next PCM bytes.
func (d *MP3Decoder) Read(p []byte) (int, error) {
	return d.decoder.Read(p)
}

// Seek repositions within the decoded PCM data.
func (d *MP3Decoder) Seek(offset int64, whence int) (int64, error) {
	return d.decoder.Seek(offset, whence)
}

// Format returns the stream format.
func (d *MP3Decoder) Format() audio.Format {
	return audio.Format{SampleRate: d.decoder.SampleRate(), Channels: 2}
}

// Length returns the total decoded PCM byte count.
func (d *MP3Decoder) Length() int64 {
	return d.decoder.Length()
}
