// ABOUTME: Sound cache keyed by caller-chosen ids
// ABOUTME: Deduplicates loads and owns the engine sound handles
package soundtable

import (
	"fmt"
	"time"
)

// cacheEntry owns one loaded sound. The last* fields mirror the most recent
// play call; a sound playing on two channels at once has them overwritten,
// which is accepted because the channel table stays authoritative for
// per-playback state.
type cacheEntry struct {
	sound     Sound
	streaming bool

	lastChannel  int
	lastLoops    int
	lastDuration time.Duration
	lastFadeIn   time.Duration
}

// LoadSound loads a fully-buffered sound from a file path. Buffered sounds
// decode once at load time and suit short effects. Loading an id that is
// already cached is a no-op returning nil; the cached handle is kept.
func (m *Mixer) LoadSound(id, path string) error {
	return m.load(id, false, func(s Sound) error { return s.LoadFile(path) })
}

// LoadStream loads a streaming sound from a file path. Streaming sounds
// decode on demand and suit long-form audio.
func (m *Mixer) LoadStream(id, path string) error {
	return m.load(id, true, func(s Sound) error { return s.LoadFile(path) })
}

// LoadSoundBytes loads a fully-buffered sound from an in-memory container,
// e.g. bytes pulled out of an embed.FS or an archive.
func (m *Mixer) LoadSoundBytes(id string, data []byte) error {
	return m.load(id, false, func(s Sound) error { return s.LoadBytes(data) })
}

// LoadStreamBytes loads a streaming sound from an in-memory container.
func (m *Mixer) LoadStreamBytes(id string, data []byte) error {
	return m.load(id, true, func(s Sound) error { return s.LoadBytes(data) })
}

func (m *Mixer) load(id string, streaming bool, fill func(Sound) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		return fmt.Errorf("load: empty sound id")
	}
	if _, ok := m.sounds[id]; ok {
		// Idempotent: the first load wins, no reload
		return nil
	}

	var sound Sound
	if streaming {
		sound = m.engine.NewStreamingSound()
	} else {
		sound = m.engine.NewBufferedSound()
	}

	if err := fill(sound); err != nil {
		// No partial cache entry on failure
		sound.Destroy()
		return fmt.Errorf("load %q: %w", id, err)
	}

	m.sounds[id] = &cacheEntry{sound: sound, streaming: streaming}
	return nil
}

// IsLoaded reports whether an id is in the cache.
func (m *Mixer) IsLoaded(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.sounds[id]
	return ok
}

// Duration returns the length of a loaded sound, or 0 when the engine
// cannot tell (open-ended streams).
func (m *Mixer) Duration(id string) (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sounds[id]
	if !ok {
		return 0, fmt.Errorf("duration %q: %w", id, ErrNotLoaded)
	}
	return time.Duration(entry.sound.LengthSeconds() * float64(time.Second)), nil
}

// Dispose destroys a loaded sound. Every channel still bound to the id is
// force-stopped and cleared first, so disposing a playing sound is safe.
func (m *Mixer) Dispose(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sounds[id]
	if !ok {
		return fmt.Errorf("dispose %q: %w", id, ErrNotLoaded)
	}

	// Match by id, not by index: the sound may sit on several channels
	for ch := 1; ch < len(m.channels); ch++ {
		c := &m.channels[ch]
		if c.id == id {
			_ = m.engine.Stop(c.playback)
			m.clearLocked(ch)
		}
	}

	entry.sound.Destroy()
	delete(m.sounds, id)
	return nil
}
