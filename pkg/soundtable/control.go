// ABOUTME: Transport controls over active channels
// ABOUTME: Fade, pause, resume, stop, rewind, and seek with broadcast support
package soundtable

import (
	"fmt"
	"time"
)

// FadeOptions carries the arguments of Fade.
type FadeOptions struct {
	// Channel targets one channel, or every active channel when 0.
	Channel int

	// Volume is the ramp target, clamped into each affected channel's own
	// [min,max] bounds before being handed to the engine.
	Volume float64

	// Duration is the ramp length.
	Duration time.Duration
}

// Fade ramps the volume of one or all active channels and returns how many
// channels were affected. The channel's stored volume is updated to the
// clamped target immediately; the ramp itself is the engine's job. Playback
// state is unchanged.
func (m *Mixer) Fade(opts FadeOptions) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if opts.Channel < 0 || opts.Channel >= len(m.channels) {
		return 0, fmt.Errorf("fade channel %d: %w", opts.Channel, ErrBadChannel)
	}

	seconds := opts.Duration.Seconds()
	count := 0
	for _, ch := range m.targetsLocked(opts.Channel) {
		c := &m.channels[ch]
		target := c.clamp(opts.Volume)
		_ = m.engine.FadeVolume(c.playback, target, seconds)
		c.volume = target
		count++
	}
	return count, nil
}

// Pause suspends one playing channel, or every playing channel when ch is
// 0, and returns how many were affected. Pausing an inactive channel is a
// no-op reporting zero affected channels; nothing reaches the engine.
func (m *Mixer) Pause(ch int) (int, error) {
	return m.setPaused(ch, true)
}

// Resume restarts paused channels the same way Pause suspends playing ones.
// Only channels in the Paused state are affected.
func (m *Mixer) Resume(ch int) (int, error) {
	return m.setPaused(ch, false)
}

func (m *Mixer) setPaused(ch int, paused bool) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	op := "pause"
	if !paused {
		op = "resume"
	}
	if ch < 0 || ch >= len(m.channels) {
		return 0, fmt.Errorf("%s channel %d: %w", op, ch, ErrBadChannel)
	}

	from, to := StatePlaying, StatePaused
	if !paused {
		from, to = StatePaused, StatePlaying
	}

	count := 0
	for _, idx := range m.targetsLocked(ch) {
		c := &m.channels[idx]
		if c.state != from {
			continue
		}
		_ = m.engine.SetPaused(c.playback, paused)
		c.state = to
		count++
	}
	return count, nil
}

// Stop ends playback on one active channel, or every active channel when
// ch is 0, and fully clears the affected channels. A stopped channel is
// indistinguishable from one that never played; completion callbacks do
// not fire for explicit stops.
func (m *Mixer) Stop(ch int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ch < 0 || ch >= len(m.channels) {
		return 0, fmt.Errorf("stop channel %d: %w", ch, ErrBadChannel)
	}

	count := 0
	for _, idx := range m.targetsLocked(ch) {
		_ = m.engine.Stop(m.channels[idx].playback)
		m.clearLocked(idx)
		count++
	}
	return count, nil
}

// Target addresses a playback for Rewind and Seek: exactly one of Channel
// or ID must be set. ID addressing works for streaming sources only and
// reaches every channel currently carrying that id.
type Target struct {
	Channel int
	ID      string
}

// Rewind moves a playback position back to the start.
func (m *Mixer) Rewind(t Target) error {
	return m.Seek(0, t)
}

// Seek moves a playback to an absolute position.
func (m *Mixer) Seek(pos time.Duration, t Target) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if pos < 0 {
		pos = 0
	}
	seconds := pos.Seconds()

	switch {
	case t.ID != "" && t.Channel != 0:
		return fmt.Errorf("seek: %w", ErrBadTarget)

	case t.ID != "":
		entry, ok := m.sounds[t.ID]
		if !ok {
			return fmt.Errorf("seek %q: %w", t.ID, ErrNotLoaded)
		}
		if !entry.streaming {
			return fmt.Errorf("seek %q: %w", t.ID, ErrNotStreaming)
		}
		found := false
		for ch := 1; ch < len(m.channels); ch++ {
			c := &m.channels[ch]
			if c.id == t.ID {
				if err := m.engine.Seek(c.playback, seconds); err != nil {
					return fmt.Errorf("seek %q on channel %d: %w", t.ID, ch, err)
				}
				found = true
			}
		}
		if !found {
			return fmt.Errorf("seek %q: %w", t.ID, ErrNotActive)
		}
		return nil

	case t.Channel != 0:
		if t.Channel < 1 || t.Channel >= len(m.channels) {
			return fmt.Errorf("seek channel %d: %w", t.Channel, ErrBadChannel)
		}
		c := &m.channels[t.Channel]
		if c.state == StateInactive {
			return fmt.Errorf("seek channel %d: %w", t.Channel, ErrNotActive)
		}
		if err := m.engine.Seek(c.playback, seconds); err != nil {
			return fmt.Errorf("seek channel %d: %w", t.Channel, err)
		}
		return nil
	}

	return fmt.Errorf("seek: %w", ErrBadTarget)
}

// targetsLocked resolves a channel argument into the affected indices:
// every active channel for 0, the single channel when it is active, and
// nothing otherwise.
func (m *Mixer) targetsLocked(ch int) []int {
	if ch == 0 {
		var out []int
		for idx := 1; idx < len(m.channels); idx++ {
			if m.channels[idx].state != StateInactive {
				out = append(out, idx)
			}
		}
		return out
	}
	if m.channels[ch].state == StateInactive {
		return nil
	}
	return []int{ch}
}
