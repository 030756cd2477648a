// ABOUTME: Buffered and streaming sound resources for the oto engine
// ABOUTME: Decodes containers into device-format PCM readers per playback
package otoengine

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/soundtable/soundtable-go/pkg/audio"
	"github.com/soundtable/soundtable-go/pkg/audio/decode"
)

// sound implements soundtable.Sound for one engine. Buffered sounds hold
// their whole clip in device-format PCM; streaming sounds reopen and decode
// their source for every playback.
type sound struct {
	engine    *Engine
	streaming bool

	mu        sync.Mutex
	loaded    bool
	loops     int
	length    time.Duration
	clip      []byte // buffered only, device format
	path      string // streaming from file
	data      []byte // streaming from memory
	codec     string
	destroyed bool
}

// LoadFile prepares the sound from a file path.
func (s *sound) LoadFile(path string) error {
	return s.loadSource(path, nil, decode.CodecForPath(path))
}

// LoadBytes prepares the sound from an in-memory container. The codec is
// sniffed by trying the decoders in turn.
func (s *sound) LoadBytes(data []byte) error {
	codec := sniffCodec(data)
	if codec == "" {
		return fmt.Errorf("unrecognized audio container")
	}
	return s.loadSource("", data, codec)
}

func (s *sound) loadSource(path string, data []byte, codec string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return fmt.Errorf("sound already loaded")
	}
	if codec == "" {
		return fmt.Errorf("no decoder for %q", path)
	}

	if s.streaming {
		// Probe the header now so length and format errors surface at
		// load time, then decode lazily per playback.
		src, closer, err := openSource(path, data)
		if err != nil {
			return err
		}
		stream, err := decode.Open(src, codec)
		if err != nil {
			if closer != nil {
				_ = closer.Close()
			}
			return fmt.Errorf("decode %s: %w", codec, err)
		}
		s.length = stream.Format().Duration(stream.Length())
		if closer != nil {
			_ = closer.Close()
		}
	} else {
		clip, length, err := decodeClip(path, data, codec, s.engine.format)
		if err != nil {
			return err
		}
		s.clip = clip
		s.length = length
	}

	s.path = path
	s.data = data
	s.codec = codec
	s.loaded = true
	return nil
}

// open builds the PCM reader chain for one playback: decoded source,
// resampled to the device format, wrapped with the configured loop count.
func (s *sound) open() (io.ReadSeeker, io.Closer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded || s.destroyed {
		return nil, nil, fmt.Errorf("sound not loaded")
	}

	if !s.streaming {
		return newLoopReader(bytes.NewReader(s.clip), s.loops), nil, nil
	}

	src, closer, err := openSource(s.path, s.data)
	if err != nil {
		return nil, nil, err
	}
	stream, err := decode.Open(src, s.codec)
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, nil, fmt.Errorf("decode %s: %w", s.codec, err)
	}

	var r io.ReadSeeker = stream
	if stream.Format() != s.engine.format {
		r = newConverter(stream, s.engine.format)
	}
	return newLoopReader(r, s.loops), closer, nil
}

// LengthSeconds returns the decoded duration, 0 when unknown.
func (s *sound) LengthSeconds() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.length.Seconds()
}

// SetLooping stores the repeat count used by subsequent plays.
func (s *sound) SetLooping(loops int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loops = loops
}

// Destroy drops the clip. In-flight playbacks keep their own readers and
// finish normally.
func (s *sound) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroyed = true
	s.clip = nil
	s.data = nil
}

// openSource returns a read-seeker over the file or the in-memory bytes.
func openSource(path string, data []byte) (io.ReadSeeker, io.Closer, error) {
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		return f, f, nil
	}
	return bytes.NewReader(data), nil, nil
}

// decodeClip decodes a whole source into device-format PCM.
func decodeClip(path string, data []byte, codec string, device audio.Format) ([]byte, time.Duration, error) {
	src, closer, err := openSource(path, data)
	if err != nil {
		return nil, 0, err
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	stream, err := decode.Open(src, codec)
	if err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", codec, err)
	}

	var r io.Reader = stream
	if stream.Format() != device {
		r = newConverter(stream, device)
	}
	clip, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", codec, err)
	}
	return clip, device.Duration(int64(len(clip))), nil
}

// sniffCodec recognizes a container by its magic bytes.
func sniffCodec(data []byte) string {
	switch {
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE":
		return "wav"
	case len(data) >= 4 && string(data[0:4]) == "fLaC":
		return "flac"
	case len(data) >= 4 && string(data[0:4]) == "OggS":
		return "opus"
	case len(data) >= 3 && (string(data[0:3]) == "ID3" ||
		(data[0] == 0xff && data[1]&0xe0 == 0xe0)):
		return "mp3"
	}
	return ""
}
