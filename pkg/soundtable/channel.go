// ABOUTME: Channel state records and the free-channel allocator
// ABOUTME: Tracks per-channel volume bounds, playback state, and reservation
package soundtable

// State is the logical playback state of a channel.
type State int

const (
	StateInactive State = iota
	StatePlaying
	StatePaused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	}
	return "unknown"
}

// channel is one slot of the fixed table. A channel with state != Inactive
// always has a non-empty id, a sound handle, and a playback id; clearChannel
// resets all four together.
type channel struct {
	volume    float64
	minVolume float64
	maxVolume float64
	state     State
	id        string
	sound     Sound
	playback  PlaybackID
	reserved  bool
}

// clamp pulls the channel's stored volume back inside its own bounds.
func (c *channel) clamp(v float64) float64 {
	if v < c.minVolume {
		return c.minVolume
	}
	if v > c.maxVolume {
		return c.maxVolume
	}
	return v
}

// FindFreeChannel scans [max(startFrom,1)..N] for the first inactive,
// unreserved channel and returns 0 when none qualifies. Reserved channels
// are skipped here but stay addressable by explicit index.
func (m *Mixer) FindFreeChannel(startFrom int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findFreeLocked(startFrom)
}

func (m *Mixer) findFreeLocked(startFrom int) int {
	if startFrom < 1 {
		startFrom = 1
	}
	for ch := startFrom; ch < len(m.channels); ch++ {
		c := &m.channels[ch]
		if !c.reserved && c.state == StateInactive {
			return ch
		}
	}
	return 0
}

// clearLocked resets a channel to its never-played shape. Idempotent; called
// by Stop, Dispose, and the playback completion path.
func (m *Mixer) clearLocked(ch int) {
	c := &m.channels[ch]
	c.state = StateInactive
	c.id = ""
	c.sound = nil
	c.playback = ""
}

// Reserve marks a channel as excluded from auto-assignment. A reserved
// channel can still be played by explicit index.
func (m *Mixer) Reserve(ch int, reserved bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ch < 1 || ch >= len(m.channels) {
		return ErrBadChannel
	}
	m.channels[ch].reserved = reserved
	return nil
}

// Reserved reports whether a channel is excluded from auto-assignment.
func (m *Mixer) Reserved(ch int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ch < 1 || ch >= len(m.channels) {
		return false, ErrBadChannel
	}
	return m.channels[ch].reserved, nil
}

// State returns a channel's playback state.
func (m *Mixer) State(ch int) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ch < 1 || ch >= len(m.channels) {
		return StateInactive, ErrBadChannel
	}
	return m.channels[ch].state, nil
}

// ActiveID returns the sound id bound to a channel, or an empty string for
// an inactive channel.
func (m *Mixer) ActiveID(ch int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ch < 1 || ch >= len(m.channels) {
		return "", ErrBadChannel
	}
	return m.channels[ch].id, nil
}

// TotalChannels returns the table size N.
func (m *Mixer) TotalChannels() int {
	return len(m.channels) - 1
}

// FreeChannels counts channels available to auto-assignment.
func (m *Mixer) FreeChannels() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for ch := 1; ch < len(m.channels); ch++ {
		c := &m.channels[ch]
		if !c.reserved && c.state == StateInactive {
			count++
		}
	}
	return count
}

// UsedChannels counts channels currently carrying a sound.
func (m *Mixer) UsedChannels() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for ch := 1; ch < len(m.channels); ch++ {
		if m.channels[ch].state != StateInactive {
			count++
		}
	}
	return count
}
