// ABOUTME: Fake engine used by the mixer tests
// ABOUTME: Counts loads and records every forwarded engine call
package soundtable

import (
	"fmt"
	"testing"
)

type fakeSound struct {
	engine    *fakeEngine
	streaming bool
	loads     int
	loops     int
	length    float64
	destroyed bool
}

func (s *fakeSound) LoadFile(path string) error {
	if s.engine.failLoad {
		return fmt.Errorf("decode failed: %s", path)
	}
	s.loads++
	s.engine.loads++
	return nil
}

func (s *fakeSound) LoadBytes(data []byte) error {
	if s.engine.failLoad {
		return fmt.Errorf("decode failed: %d bytes", len(data))
	}
	s.loads++
	s.engine.loads++
	return nil
}

func (s *fakeSound) LengthSeconds() float64 { return s.length }
func (s *fakeSound) SetLooping(loops int)   { s.loops = loops }
func (s *fakeSound) Destroy()               { s.destroyed = true }

type fakePlayback struct {
	sound       *fakeSound
	volume      float64
	paused      bool
	stopped     bool
	position    float64
	fades       int
	fadeTarget  float64
	fadeSeconds float64
	stopAfter   float64
	onComplete  func()
}

type fakeEngine struct {
	loads     int
	seq       int
	global    float64
	failLoad  bool
	failPlay  bool
	playbacks map[PlaybackID]*fakePlayback
	pitches   map[PlaybackID]float64
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		global:    1.0,
		playbacks: make(map[PlaybackID]*fakePlayback),
		pitches:   make(map[PlaybackID]float64),
	}
}

func (e *fakeEngine) NewBufferedSound() Sound {
	return &fakeSound{engine: e, length: 1.5}
}

func (e *fakeEngine) NewStreamingSound() Sound {
	return &fakeSound{engine: e, streaming: true, length: 180}
}

func (e *fakeEngine) Play(s Sound, req PlayRequest) (PlaybackID, error) {
	if e.failPlay {
		return "", fmt.Errorf("device gone")
	}
	e.seq++
	id := PlaybackID(fmt.Sprintf("pb-%d", e.seq))
	e.playbacks[id] = &fakePlayback{
		sound:      s.(*fakeSound),
		volume:     req.Volume,
		onComplete: req.OnComplete,
	}
	return id, nil
}

func (e *fakeEngine) Stop(id PlaybackID) error {
	pb, ok := e.playbacks[id]
	if !ok {
		return fmt.Errorf("unknown playback %s", id)
	}
	pb.stopped = true
	return nil
}

func (e *fakeEngine) SetPaused(id PlaybackID, paused bool) error {
	pb, ok := e.playbacks[id]
	if !ok {
		return fmt.Errorf("unknown playback %s", id)
	}
	pb.paused = paused
	return nil
}

func (e *fakeEngine) Seek(id PlaybackID, seconds float64) error {
	pb, ok := e.playbacks[id]
	if !ok {
		return fmt.Errorf("unknown playback %s", id)
	}
	pb.position = seconds
	return nil
}

func (e *fakeEngine) SetVolume(id PlaybackID, volume float64) error {
	pb, ok := e.playbacks[id]
	if !ok {
		return fmt.Errorf("unknown playback %s", id)
	}
	pb.volume = volume
	return nil
}

func (e *fakeEngine) FadeVolume(id PlaybackID, target, seconds float64) error {
	pb, ok := e.playbacks[id]
	if !ok {
		return fmt.Errorf("unknown playback %s", id)
	}
	pb.fades++
	pb.fadeTarget = target
	pb.fadeSeconds = seconds
	return nil
}

func (e *fakeEngine) ScheduleStop(id PlaybackID, seconds float64) error {
	pb, ok := e.playbacks[id]
	if !ok {
		return fmt.Errorf("unknown playback %s", id)
	}
	pb.stopAfter = seconds
	return nil
}

func (e *fakeEngine) SetGlobalVolume(volume float64) {
	e.global = volume
}

func (e *fakeEngine) SetPitch(id PlaybackID, pitch float64) error {
	if _, ok := e.playbacks[id]; !ok {
		return fmt.Errorf("unknown playback %s", id)
	}
	e.pitches[id] = pitch
	return nil
}

// complete simulates the engine finishing a playback naturally.
func (e *fakeEngine) complete(id PlaybackID) {
	pb, ok := e.playbacks[id]
	if !ok {
		return
	}
	delete(e.playbacks, id)
	if pb.onComplete != nil {
		pb.onComplete()
	}
}

// playbackOn returns the live playback bound to a mixer channel.
func (e *fakeEngine) playbackOn(t *testing.T, m *Mixer, ch int) (PlaybackID, *fakePlayback) {
	t.Helper()
	m.mu.Lock()
	id := m.channels[ch].playback
	m.mu.Unlock()
	pb, ok := e.playbacks[id]
	if !ok {
		t.Fatalf("no playback on channel %d", ch)
	}
	return id, pb
}

// noPitchEngine hides the fake's pitch capability so tests can exercise the
// unsupported path.
type noPitchEngine struct {
	inner *fakeEngine
}

func (e *noPitchEngine) NewBufferedSound() Sound                        { return e.inner.NewBufferedSound() }
func (e *noPitchEngine) NewStreamingSound() Sound                       { return e.inner.NewStreamingSound() }
func (e *noPitchEngine) Play(s Sound, req PlayRequest) (PlaybackID, error) { return e.inner.Play(s, req) }
func (e *noPitchEngine) Stop(id PlaybackID) error                       { return e.inner.Stop(id) }
func (e *noPitchEngine) SetPaused(id PlaybackID, paused bool) error     { return e.inner.SetPaused(id, paused) }
func (e *noPitchEngine) Seek(id PlaybackID, seconds float64) error      { return e.inner.Seek(id, seconds) }
func (e *noPitchEngine) SetVolume(id PlaybackID, volume float64) error  { return e.inner.SetVolume(id, volume) }
func (e *noPitchEngine) FadeVolume(id PlaybackID, target, seconds float64) error {
	return e.inner.FadeVolume(id, target, seconds)
}
func (e *noPitchEngine) ScheduleStop(id PlaybackID, seconds float64) error {
	return e.inner.ScheduleStop(id, seconds)
}
func (e *noPitchEngine) SetGlobalVolume(volume float64) { e.inner.SetGlobalVolume(volume) }

// newTestMixer builds a mixer over a fresh fake engine.
func newTestMixer(t *testing.T, channels int) (*Mixer, *fakeEngine) {
	t.Helper()
	engine := newFakeEngine()
	mixer, err := New(Config{Engine: engine, Channels: channels})
	if err != nil {
		t.Fatalf("failed to create mixer: %v", err)
	}
	return mixer, engine
}
