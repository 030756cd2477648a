// ABOUTME: Ogg/Opus audio decoder
// ABOUTME: Decodes opus streams with hraban/opus into an in-memory PCM stream
package decode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"gopkg.in/hraban/opus.v2"

	"github.com/soundtable/soundtable-go/pkg/audio"
)

// libopusfile always decodes at the opus internal rate
const opusSampleRate = 48000

// NewOpus decodes an Ogg/Opus stream into memory. Opus files do not carry a
// seek table, so like FLAC the stream is decoded up front.
func NewOpus(r io.ReadSeeker) (Stream, error) {
	channels, err := opusChannelCount(r)
	if err != nil {
		return nil, err
	}

	stream, err := opus.NewStream(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open opus stream: %w", err)
	}
	defer func() { _ = stream.Close() }()

	pcm, err := decodeOpusPCM(stream.Read, channels)
	if err != nil {
		return nil, err
	}

	format := audio.Format{SampleRate: opusSampleRate, Channels: channels}
	return newBufferStream(pcm, format), nil
}

// decodeOpusPCM drains a stream into 16-bit LE PCM. read follows the
// opus.Stream contract: it returns samples per channel and fills
// n*channels interleaved values.
func decodeOpusPCM(read func([]int16) (int, error), channels int) ([]byte, error) {
	var pcm bytes.Buffer
	buf := make([]int16, 4096*channels)
	out := make([]byte, len(buf)*2)
	for {
		n, err := read(buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("opus decode error: %w", err)
		}
		if n == 0 {
			break
		}

		samples := buf[:n*channels]
		for i, s := range samples {
			binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
		}
		pcm.Write(out[:len(samples)*2])
	}
	return pcm.Bytes(), nil
}

// opusChannelCount reads the channel count from the OpusHead packet in the
// first Ogg page, then rewinds. The stream API does not expose it.
func opusChannelCount(r io.ReadSeeker) (int, error) {
	header := make([]byte, 512)
	n, err := io.ReadFull(r, header)
	if err != nil && err != io.ErrUnexpectedEOF {
		return 0, fmt.Errorf("failed to read opus header: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("failed to rewind opus stream: %w", err)
	}

	// OpusHead layout: 8-byte magic, 1-byte version, 1-byte channel count.
	i := bytes.Index(header[:n], []byte("OpusHead"))
	if i < 0 || i+10 > n {
		return 0, fmt.Errorf("missing OpusHead packet")
	}
	channels := int(header[i+9])
	if channels == 0 {
		return 0, fmt.Errorf("invalid opus channel count 0")
	}
	return channels, nil
}
