// ABOUTME: Sentinel errors for mixer operations
// ABOUTME: All failures are reported through these, never panics
package soundtable

import "errors"

var (
	// ErrNotLoaded is returned when an operation names a sound id that is
	// not in the cache.
	ErrNotLoaded = errors.New("sound not loaded")

	// ErrBadChannel is returned for channel indices outside [1,N] (or
	// outside [0,N] where 0 is a valid broadcast target).
	ErrBadChannel = errors.New("channel index out of range")

	// ErrChannelBusy is returned when Play targets a channel that already
	// carries a sound. Channels are never implicitly preempted.
	ErrChannelBusy = errors.New("channel already in use")

	// ErrNoFreeChannel is returned when auto-assignment finds no inactive,
	// unreserved channel.
	ErrNoFreeChannel = errors.New("no free channel")

	// ErrNotActive is returned when a control operation targets a channel
	// with no playback bound to it.
	ErrNotActive = errors.New("channel not active")

	// ErrNotStreaming is returned when Rewind or Seek address a buffered
	// sound by id; id addressing is for streaming sources only.
	ErrNotStreaming = errors.New("sound is not a streaming source")

	// ErrBadTarget is returned when a Target names both a channel and an
	// id, or neither.
	ErrBadTarget = errors.New("target must name exactly one of channel or id")

	// ErrNoPitchControl is returned by SetPitch when the engine does not
	// implement PitchEngine.
	ErrNoPitchControl = errors.New("engine has no pitch control")
)
