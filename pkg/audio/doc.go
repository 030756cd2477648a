// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines the PCM Format type and sample conversion helpers
// Package audio provides fundamental PCM types shared by the decoders and
// the playback engine.
//
// Everything downstream of the decoders works on 16-bit little-endian
// interleaved PCM; Format carries the two properties that still vary, the
// sample rate and the channel count, and converts between byte offsets and
// playback positions:
//
//	format := audio.Format{SampleRate: 44100, Channels: 2}
//	pos := format.Duration(n)      // bytes consumed -> elapsed time
//	off := format.Offset(pos)      // seek target -> frame-aligned bytes
package audio
