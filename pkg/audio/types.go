// ABOUTME: Core PCM type definitions
// ABOUTME: Defines Format plus sample and duration conversion helpers
package audio

import "time"

// Format describes a decoded PCM stream. Decoders in this repository always
// produce 16-bit little-endian interleaved samples, so only the rate and the
// channel count vary.
type Format struct {
	SampleRate int
	Channels   int
}

// BytesPerFrame returns the size of one interleaved sample frame.
func (f Format) BytesPerFrame() int {
	return f.Channels * 2
}

// BytesPerSecond returns the PCM data rate.
func (f Format) BytesPerSecond() int {
	return f.SampleRate * f.BytesPerFrame()
}

// Duration converts a PCM byte count into playback time.
func (f Format) Duration(pcmBytes int64) time.Duration {
	bps := f.BytesPerSecond()
	if bps == 0 {
		return 0
	}
	return time.Duration(pcmBytes) * time.Second / time.Duration(bps)
}

// Offset converts a playback position into a frame-aligned byte offset.
func (f Format) Offset(pos time.Duration) int64 {
	if pos < 0 {
		pos = 0
	}
	frames := int64(pos) * int64(f.SampleRate) / int64(time.Second)
	return frames * int64(f.BytesPerFrame())
}

// ClampInt16 clamps an int32 sample into the int16 range. Decoders use this
// when scaling higher bit depths down to 16-bit output.
func ClampInt16(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

// Scale16 converts a sample at the given bit depth to 16-bit range.
func Scale16(sample int32, bitDepth int) int16 {
	switch {
	case bitDepth > 16:
		return int16(sample >> uint(bitDepth-16))
	case bitDepth < 16:
		return ClampInt16(sample << uint(16-bitDepth))
	default:
		return ClampInt16(sample)
	}
}
