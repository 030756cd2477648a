// ABOUTME: Engine facade interfaces
// ABOUTME: Defines the capability set a playback engine must provide
package soundtable

// PlaybackID identifies one in-flight playback in the engine.
type PlaybackID string

// PlayRequest carries the per-playback parameters of Engine.Play.
type PlayRequest struct {
	// Volume is the initial playback volume in [0,1].
	Volume float64

	// OnComplete, when non-nil, is invoked exactly once after the playback
	// ends for any reason other than an explicit Engine.Stop. The engine
	// must call it from a goroutine that holds none of the engine's locks,
	// and never before Play returns.
	OnComplete func()
}

// Engine is the playback facade the mixer delegates all audio work to:
// decoding, mixing, volume ramps, and device output. The mixer only keeps
// the channel bookkeeping on top.
//
// Engine methods are called with the mixer lock held, so they must not call
// back into the mixer synchronously.
type Engine interface {
	// NewBufferedSound creates an empty sound that decodes fully on load.
	NewBufferedSound() Sound

	// NewStreamingSound creates an empty sound that decodes on demand.
	NewStreamingSound() Sound

	// Play starts the sound and returns an id for later control calls.
	Play(s Sound, req PlayRequest) (PlaybackID, error)

	// Stop ends a playback. OnComplete is not invoked for stopped playbacks.
	Stop(id PlaybackID) error

	// SetPaused suspends or resumes a playback.
	SetPaused(id PlaybackID, paused bool) error

	// Seek moves the playback position, in seconds from the start.
	Seek(id PlaybackID, seconds float64) error

	// SetVolume sets the playback volume in [0,1].
	SetVolume(id PlaybackID, volume float64) error

	// FadeVolume ramps the playback volume to target over the given seconds.
	FadeVolume(id PlaybackID, target, seconds float64) error

	// ScheduleStop ends the playback after the given seconds. A scheduled
	// stop counts as completion and does invoke OnComplete.
	ScheduleStop(id PlaybackID, seconds float64) error

	// SetGlobalVolume sets the master gain applied on top of every
	// playback's own volume.
	SetGlobalVolume(volume float64)
}

// Sound is a loaded audio resource owned by the mixer's cache.
type Sound interface {
	// LoadFile reads and prepares the sound from a file path.
	LoadFile(path string) error

	// LoadBytes reads and prepares the sound from an in-memory container.
	LoadBytes(data []byte) error

	// LengthSeconds returns the sound's duration, or 0 when unknown.
	LengthSeconds() float64

	// SetLooping configures the repeat count for subsequent plays:
	// 0 plays once, -1 loops forever, n > 0 repeats n extra times.
	SetLooping(loops int)

	// Destroy releases the engine resources behind the sound.
	Destroy()
}

// PitchEngine is an optional Engine capability for engines that can change
// playback rate. Mixer.SetPitch reports ErrNoPitchControl when the engine
// does not implement it.
type PitchEngine interface {
	SetPitch(id PlaybackID, pitch float64) error
}
