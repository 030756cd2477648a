// ABOUTME: Mixer context object owning the channel table and sound cache
// ABOUTME: Validates arguments and forwards playback work to the engine
package soundtable

import (
	"fmt"
	"sync"
	"time"
)

// DefaultChannels is the table size used when Config.Channels is zero.
const DefaultChannels = 32

// Config configures a Mixer.
type Config struct {
	// Engine performs the actual audio work. Required.
	Engine Engine

	// Channels is the number of playback slots N (default 32). Channels
	// are addressed 1..N; 0 is the auto-assign / broadcast sentinel.
	Channels int
}

// Mixer maps a fixed table of numbered playback channels onto an Engine.
// All methods are safe for concurrent use; the table is guarded by one
// mutex so channel assignment and state changes are atomic.
type Mixer struct {
	mu       sync.Mutex
	engine   Engine
	pitch    PitchEngine // nil when the engine lacks the capability
	channels []channel   // index 0 unused; 1..N are the slots
	sounds   map[string]*cacheEntry
	master   float64
}

// New creates a Mixer with every channel inactive, unreserved, and bounded
// to the default volume range [0,1].
func New(config Config) (*Mixer, error) {
	if config.Engine == nil {
		return nil, fmt.Errorf("soundtable: config requires an engine")
	}
	n := config.Channels
	if n == 0 {
		n = DefaultChannels
	}
	if n < 1 {
		return nil, fmt.Errorf("soundtable: invalid channel count %d", n)
	}

	m := &Mixer{
		engine:   config.Engine,
		channels: make([]channel, n+1),
		sounds:   make(map[string]*cacheEntry),
		master:   1.0,
	}
	m.pitch, _ = config.Engine.(PitchEngine)

	for ch := 1; ch <= n; ch++ {
		c := &m.channels[ch]
		c.volume = 1.0
		c.minVolume = 0.0
		c.maxVolume = 1.0
	}
	return m, nil
}

// PlayOptions carries the optional arguments of Play.
type PlayOptions struct {
	// Channel picks the slot: 0 auto-assigns the first free channel
	// starting at 1, an explicit value must be in [1,N] and inactive.
	Channel int

	// Loops: 0 plays once, -1 loops forever, n > 0 repeats n extra times.
	Loops int

	// Duration, when positive, schedules an automatic stop after that much
	// playback time.
	Duration time.Duration

	// FadeIn, when positive, starts playback at the channel's minimum
	// volume and ramps to its maximum over this duration.
	FadeIn time.Duration

	// OnComplete is invoked after the playback ends on its own (natural
	// end or scheduled stop), after the channel has been cleared. It is
	// not invoked for explicit Stop or Dispose.
	OnComplete func(channel int, id string)
}

// Play starts a loaded sound on a channel and returns the channel index.
// A busy explicit channel is an error; channels are never preempted. On
// failure the channel table is left untouched.
func (m *Mixer) Play(id string, opts PlayOptions) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sounds[id]
	if !ok {
		return 0, fmt.Errorf("play %q: %w", id, ErrNotLoaded)
	}

	ch := opts.Channel
	switch {
	case ch == 0:
		ch = m.findFreeLocked(1)
		if ch == 0 {
			return 0, fmt.Errorf("play %q: %w", id, ErrNoFreeChannel)
		}
	case ch < 1 || ch >= len(m.channels):
		return 0, fmt.Errorf("play %q on channel %d: %w", id, opts.Channel, ErrBadChannel)
	case m.channels[ch].state != StateInactive:
		return 0, fmt.Errorf("play %q on channel %d: %w", id, ch, ErrChannelBusy)
	}

	c := &m.channels[ch]
	entry.sound.SetLooping(opts.Loops)

	initial := c.volume
	if opts.FadeIn > 0 {
		initial = c.minVolume
	}

	// The cell is filled below, before the lock releases; the engine may
	// not invoke OnComplete before Play returns, and the callback blocks
	// on the mixer lock, so it always sees the bound playback id.
	cell := new(PlaybackID)
	playback, err := m.engine.Play(entry.sound, PlayRequest{
		Volume:     initial,
		OnComplete: m.completionFunc(ch, id, cell, opts.OnComplete),
	})
	if err != nil {
		return 0, fmt.Errorf("play %q: %w", id, err)
	}
	*cell = playback

	c.state = StatePlaying
	c.id = id
	c.sound = entry.sound
	c.playback = playback

	entry.lastChannel = ch
	entry.lastLoops = opts.Loops
	entry.lastDuration = opts.Duration
	entry.lastFadeIn = opts.FadeIn

	if opts.FadeIn > 0 {
		_ = m.engine.FadeVolume(playback, c.maxVolume, opts.FadeIn.Seconds())
		c.volume = c.maxVolume
	}
	if opts.Duration > 0 {
		_ = m.engine.ScheduleStop(playback, opts.Duration.Seconds())
	}

	return ch, nil
}

// completionFunc wraps the caller's callback so the channel always clears
// itself when playback ends naturally, even with no callback supplied.
func (m *Mixer) completionFunc(ch int, id string, cell *PlaybackID, done func(int, string)) func() {
	return func() {
		m.mu.Lock()
		c := &m.channels[ch]
		cleared := false
		// An explicit Stop followed by a new play may have rebound the
		// channel; only clear when it still carries this exact playback.
		if c.id == id && c.playback == *cell {
			m.clearLocked(ch)
			cleared = true
		}
		m.mu.Unlock()

		if cleared && done != nil {
			done(ch, id)
		}
	}
}

// SetPitch changes the playback rate of an active channel. Engines without
// pitch control report ErrNoPitchControl.
func (m *Mixer) SetPitch(pitch float64, ch int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pitch == nil {
		return fmt.Errorf("set pitch: %w", ErrNoPitchControl)
	}
	if ch < 1 || ch >= len(m.channels) {
		return fmt.Errorf("set pitch on channel %d: %w", ch, ErrBadChannel)
	}
	c := &m.channels[ch]
	if c.state == StateInactive {
		return fmt.Errorf("set pitch on channel %d: %w", ch, ErrNotActive)
	}
	return m.pitch.SetPitch(c.playback, pitch)
}
