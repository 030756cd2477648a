// ABOUTME: FLAC audio decoder
// ABOUTME: Decodes FLAC frames with mewkiz/flac into an in-memory PCM stream
package decode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/mewkiz/flac"

	"github.com/soundtable/soundtable-go/pkg/audio"
)

// NewFLAC decodes the whole FLAC stream into memory and scales samples to
// 16-bit. FLAC frames are not independently seekable, so decoding up front
// keeps Seek cheap for loops and rewinds.
func NewFLAC(r io.ReadSeeker) (Stream, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse flac stream: %w", err)
	}

	info := stream.Info
	channels := int(info.NChannels)
	bitDepth := int(info.BitsPerSample)
	format := audio.Format{SampleRate: int(info.SampleRate), Channels: channels}

	var pcm bytes.Buffer
	if info.NSamples > 0 {
		pcm.Grow(int(info.NSamples) * format.BytesPerFrame())
	}

	var frameBytes [2]byte
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("flac decode error: %w", err)
		}

		if len(frame.Subframes) != channels {
			return nil, fmt.Errorf("flac frame has %d subframes, expected %d", len(frame.Subframes), channels)
		}

		// Interleave the per-channel subframes
		n := len(frame.Subframes[0].Samples)
		for i := 0; i < n; i++ {
			for ch := 0; ch < channels; ch++ {
				sample := audio.Scale16(frame.Subframes[ch].Samples[i], bitDepth)
				binary.LittleEndian.PutUint16(frameBytes[:], uint16(sample))
				pcm.Write(frameBytes[:])
			}
		}
	}

	return newBufferStream(pcm.Bytes(), format), nil
}
