// ABOUTME: Per-channel volume accessors and the separate master gain path
// ABOUTME: Channel 0 means mean-of-all on reads and apply-to-all on writes
package soundtable

import "fmt"

// Volume returns a channel's stored volume. Channel 0 returns the
// arithmetic mean across all N channels.
func (m *Mixer) Volume(ch int) (float64, error) {
	return m.getVolume(ch, func(c *channel) float64 { return c.volume })
}

// MinVolume returns a channel's lower volume bound, or the mean for 0.
func (m *Mixer) MinVolume(ch int) (float64, error) {
	return m.getVolume(ch, func(c *channel) float64 { return c.minVolume })
}

// MaxVolume returns a channel's upper volume bound, or the mean for 0.
func (m *Mixer) MaxVolume(ch int) (float64, error) {
	return m.getVolume(ch, func(c *channel) float64 { return c.maxVolume })
}

func (m *Mixer) getVolume(ch int, field func(*channel) float64) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ch < 0 || ch >= len(m.channels) {
		return 0, fmt.Errorf("volume of channel %d: %w", ch, ErrBadChannel)
	}
	if ch > 0 {
		return field(&m.channels[ch]), nil
	}

	sum := 0.0
	for idx := 1; idx < len(m.channels); idx++ {
		sum += field(&m.channels[idx])
	}
	return sum / float64(len(m.channels)-1), nil
}

// SetVolume sets a channel's volume, clamped into that channel's bounds.
// Channel 0 applies the value to every channel individually, re-clamping
// against each channel's own bounds. Active channels forward the new value
// to the engine. This is distinct from SetMasterVolume.
func (m *Mixer) SetVolume(volume float64, ch int) error {
	return m.setVolume(ch, func(c *channel) {
		c.volume = c.clamp(volume)
	})
}

// SetMinVolume sets a channel's lower bound and re-clamps its current
// volume against the new range. Channel 0 applies to every channel.
func (m *Mixer) SetMinVolume(volume float64, ch int) error {
	return m.setVolume(ch, func(c *channel) {
		c.minVolume = volume
		c.volume = c.clamp(c.volume)
	})
}

// SetMaxVolume sets a channel's upper bound and re-clamps its current
// volume against the new range. Channel 0 applies to every channel.
func (m *Mixer) SetMaxVolume(volume float64, ch int) error {
	return m.setVolume(ch, func(c *channel) {
		c.maxVolume = volume
		c.volume = c.clamp(c.volume)
	})
}

func (m *Mixer) setVolume(ch int, apply func(*channel)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ch < 0 || ch >= len(m.channels) {
		return fmt.Errorf("set volume on channel %d: %w", ch, ErrBadChannel)
	}

	first, last := ch, ch
	if ch == 0 {
		first, last = 1, len(m.channels)-1
	}
	for idx := first; idx <= last; idx++ {
		c := &m.channels[idx]
		apply(c)
		if c.state != StateInactive {
			_ = m.engine.SetVolume(c.playback, c.volume)
		}
	}
	return nil
}

// SetMasterVolume sets the engine-wide gain applied on top of every
// channel's own volume. Per-channel volumes are untouched; this is the
// original API's "setVolume with no channel argument" path, kept separate
// from the channel-0 broadcast on purpose.
func (m *Mixer) SetMasterVolume(volume float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if volume < 0 {
		volume = 0
	}
	m.master = volume
	m.engine.SetGlobalVolume(volume)
}

// MasterVolume returns the engine-wide gain.
func (m *Mixer) MasterVolume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.master
}
