// ABOUTME: PCM reader chain pieces for playbacks
// ABOUTME: Loop-count repetition and linear rate/channel conversion
package otoengine

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/soundtable/soundtable-go/pkg/audio"
	"github.com/soundtable/soundtable-go/pkg/audio/decode"
)

// loopReader repeats a PCM source: remaining 0 plays once, -1 repeats
// forever, n > 0 repeats n extra times.
type loopReader struct {
	src       io.ReadSeeker
	remaining int
}

func newLoopReader(src io.ReadSeeker, loops int) *loopReader {
	return &loopReader{src: src, remaining: loops}
}

func (l *loopReader) Read(p []byte) (int, error) {
	n, err := l.src.Read(p)
	if err != io.EOF || l.remaining == 0 {
		return n, err
	}

	// End of one pass: rewind and keep going
	if l.remaining > 0 {
		l.remaining--
	}
	if _, serr := l.src.Seek(0, io.SeekStart); serr != nil {
		return n, serr
	}
	if n > 0 {
		return n, nil
	}

	// Guard against a zero-length source spinning forever
	n, err = l.src.Read(p)
	if n == 0 && err == io.EOF {
		l.remaining = 0
	}
	return n, err
}

// Seek repositions within the current pass.
func (l *loopReader) Seek(offset int64, whence int) (int64, error) {
	return l.src.Seek(offset, whence)
}

// converter reads a decoded stream and produces PCM in the device format,
// duplicating or averaging channels and linearly interpolating between
// source frames for rate conversion.
type converter struct {
	src   decode.Stream
	from  audio.Format
	to    audio.Format
	ratio float64 // source frames consumed per output frame

	pos     float64 // fraction between prev and next source frame
	prev    []int16
	next    []int16
	scratch []int16
	primed  bool
	srcEOF  bool
}

func newConverter(src decode.Stream, to audio.Format) *converter {
	from := src.Format()
	return &converter{
		src:     src,
		from:    from,
		to:      to,
		ratio:   float64(from.SampleRate) / float64(to.SampleRate),
		prev:    make([]int16, from.Channels),
		next:    make([]int16, from.Channels),
		scratch: make([]int16, from.Channels),
	}
}

func (c *converter) Read(p []byte) (int, error) {
	frameBytes := c.to.BytesPerFrame()
	frames := len(p) / frameBytes
	if frames == 0 {
		return 0, nil
	}

	if !c.primed {
		if err := c.readFrame(c.prev); err != nil {
			return 0, err
		}
		if err := c.readFrame(c.next); err != nil {
			if err != io.EOF {
				return 0, err
			}
			copy(c.next, c.prev)
			c.srcEOF = true
		}
		c.primed = true
	}

	written := 0
	for i := 0; i < frames; i++ {
		// Advance through source frames until pos falls between prev
		// and next again
		for c.pos >= 1.0 {
			if c.srcEOF {
				break
			}
			err := c.readFrame(c.scratch)
			if err == io.EOF {
				// Let the final source frame interpolate with itself
				// so it is still emitted
				c.srcEOF = true
				copy(c.prev, c.next)
				c.pos -= 1.0
				continue
			}
			if err != nil {
				if written > 0 {
					return written, nil
				}
				return 0, err
			}
			copy(c.prev, c.next)
			copy(c.next, c.scratch)
			c.pos -= 1.0
		}
		if c.pos >= 1.0 {
			// Source exhausted
			break
		}

		c.writeFrame(p[i*frameBytes:], c.pos)
		written += frameBytes
		c.pos += c.ratio
	}

	if written == 0 {
		return 0, io.EOF
	}
	return written, nil
}

// readFrame fills dst with the next source frame.
func (c *converter) readFrame(dst []int16) error {
	var raw [2]byte
	for ch := 0; ch < c.from.Channels; ch++ {
		if _, err := io.ReadFull(c.src, raw[:]); err != nil {
			if err == io.ErrUnexpectedEOF {
				err = io.EOF
			}
			return err
		}
		dst[ch] = int16(binary.LittleEndian.Uint16(raw[:]))
	}
	return nil
}

// writeFrame interpolates one output frame between prev and next and maps
// the channel layout onto the device layout.
func (c *converter) writeFrame(p []byte, frac float64) {
	for ch := 0; ch < c.to.Channels; ch++ {
		var a, b int32
		switch {
		case c.from.Channels == 1:
			// Mono source feeds every device channel
			a, b = int32(c.prev[0]), int32(c.next[0])
		case ch < c.from.Channels && c.to.Channels >= c.from.Channels:
			a, b = int32(c.prev[ch]), int32(c.next[ch])
		default:
			// Downmix, and extra device channels: average the source frame
			var sumA, sumB int32
			for i := 0; i < c.from.Channels; i++ {
				sumA += int32(c.prev[i])
				sumB += int32(c.next[i])
			}
			a = sumA / int32(c.from.Channels)
			b = sumB / int32(c.from.Channels)
		}

		v := float64(a)*(1.0-frac) + float64(b)*frac
		binary.LittleEndian.PutUint16(p[ch*2:], uint16(audio.ClampInt16(int32(v))))
	}
}

// Seek maps a device-format byte offset onto the source and resets the
// interpolation state. Only absolute offsets are supported; that is all
// the player ever issues.
func (c *converter) Seek(offset int64, whence int) (int64, error) {
	if whence != io.SeekStart {
		return 0, fmt.Errorf("converter supports absolute seeks only")
	}

	dstFrame := offset / int64(c.to.BytesPerFrame())
	srcFrame := int64(float64(dstFrame) * c.ratio)
	if _, err := c.src.Seek(srcFrame*int64(c.from.BytesPerFrame()), io.SeekStart); err != nil {
		return 0, err
	}

	c.pos = 0
	c.primed = false
	c.srcEOF = false
	return offset, nil
}
