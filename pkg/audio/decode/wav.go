// ABOUTME: WAV audio decoder
// ABOUTME: Parses RIFF headers and exposes the PCM data chunk as a Stream
package decode

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/soundtable/soundtable-go/pkg/audio"
)

// WAVDecoder reads PCM straight out of a RIFF/WAVE container.
type WAVDecoder struct {
	r      io.ReadSeeker
	format audio.Format
	start  int64
	length int64
	pos    int64
}

// NewWAV parses the RIFF header and positions the reader at the start of
// the data chunk. Only uncompressed 16-bit PCM is supported.
func NewWAV(r io.ReadSeeker) (Stream, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return nil, fmt.Errorf("failed to read RIFF header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return nil, fmt.Errorf("not a RIFF/WAVE file")
	}

	d := &WAVDecoder{r: r}

	// Walk chunks until both fmt and data are found
	var haveFmt bool
	for {
		var hdr [8]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return nil, fmt.Errorf("failed to read chunk header: %w", err)
		}
		id := string(hdr[0:4])
		size := int64(binary.LittleEndian.Uint32(hdr[4:8]))

		switch id {
		case "fmt ":
			var fmtChunk [16]byte
			if size < 16 {
				return nil, fmt.Errorf("fmt chunk too small: %d bytes", size)
			}
			if _, err := io.ReadFull(r, fmtChunk[:]); err != nil {
				return nil, fmt.Errorf("failed to read fmt chunk: %w", err)
			}
			audioFormat := binary.LittleEndian.Uint16(fmtChunk[0:2])
			channels := int(binary.LittleEndian.Uint16(fmtChunk[2:4]))
			sampleRate := int(binary.LittleEndian.Uint32(fmtChunk[4:8]))
			bitDepth := int(binary.LittleEndian.Uint16(fmtChunk[14:16]))

			if audioFormat != 1 {
				return nil, fmt.Errorf("unsupported WAV encoding: %d (PCM only)", audioFormat)
			}
			if bitDepth != 16 {
				return nil, fmt.Errorf("unsupported WAV bit depth: %d (16 only)", bitDepth)
			}
			if channels < 1 || sampleRate <= 0 {
				return nil, fmt.Errorf("invalid WAV format: %d channels at %d Hz", channels, sampleRate)
			}

			d.format = audio.Format{SampleRate: sampleRate, Channels: channels}
			haveFmt = true

			// Skip any fmt extension bytes
			if size > 16 {
				if _, err := r.Seek(size-16, io.SeekCurrent); err != nil {
					return nil, fmt.Errorf("failed to skip fmt extension: %w", err)
				}
			}

		case "data":
			if !haveFmt {
				return nil, fmt.Errorf("data chunk before fmt chunk")
			}
			start, err := r.Seek(0, io.SeekCurrent)
			if err != nil {
				return nil, fmt.Errorf("failed to locate data chunk: %w", err)
			}
			d.start = start
			d.length = size
			return d, nil

		default:
			// Chunks are word aligned
			if size%2 == 1 {
				size++
			}
			if _, err := r.Seek(size, io.SeekCurrent); err != nil {
				return nil, fmt.Errorf("failed to skip %q chunk: %w", id, err)
			}
		}
	}
}

// Read reads PCM bytes from the data chunk.
func (d *WAVDecoder) Read(p []byte) (int, error) {
	remaining := d.length - d.pos
	if remaining <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}
	n, err := d.r.Read(p)
	d.pos += int64(n)
	if err == io.EOF && d.pos < d.length {
		err = io.ErrUnexpectedEOF
	}
	return n, err
}

// Seek repositions within the data chunk.
func (d *WAVDecoder) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = d.pos + offset
	case io.SeekEnd:
		target = d.length + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if target < 0 {
		return 0, fmt.Errorf("negative seek position")
	}
	if _, err := d.r.Seek(d.start+target, io.SeekStart); err != nil {
		return 0, err
	}
	d.pos = target
	return target, nil
}

// Format returns the PCM format from the fmt chunk.
func (d *WAVDecoder) Format() audio.Format {
	return d.format
}

// Length returns the data chunk size.
func (d *WAVDecoder) Length() int64 {
	return d.length
}
