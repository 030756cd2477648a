// ABOUTME: In-memory PCM stream
// ABOUTME: Backs decoders that must consume their input up front
package decode

import (
	"bytes"

	"github.com/soundtable/soundtable-go/pkg/audio"
)

// bufferStream serves fully decoded PCM from memory. The flac and opus
// decoders produce one of these because neither container seeks cheaply.
type bufferStream struct {
	*bytes.Reader
	format audio.Format
}

func newBufferStream(pcm []byte, format audio.Format) *bufferStream {
	return &bufferStream{
		Reader: bytes.NewReader(pcm),
		format: format,
	}
}

func (b *bufferStream) Format() audio.Format {
	return b.format
}

func (b *bufferStream) Length() int64 {
	return b.Reader.Size()
}
