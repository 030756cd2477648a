// ABOUTME: Engine facade implementation on top of oto
// ABOUTME: Owns the device context and the live playback registry
package otoengine

import (
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/google/uuid"

	"github.com/soundtable/soundtable-go/pkg/audio"
	"github.com/soundtable/soundtable-go/pkg/soundtable"
)

// Options configures the audio device.
type Options struct {
	// SampleRate is the device rate (default 44100). Sounds at other rates
	// are resampled.
	SampleRate int

	// Channels is the device channel count (default 2).
	Channels int

	// BufferSize is the device buffer length; 0 uses the driver default.
	BufferSize time.Duration
}

// Engine implements soundtable.Engine on an oto output device. One Engine
// owns one device context; sounds and playbacks created by it must not be
// mixed with another Engine.
type Engine struct {
	ctx    *oto.Context
	format audio.Format

	mu        sync.Mutex
	playbacks map[soundtable.PlaybackID]*playback
	global    float64
}

// playback is one in-flight sound on the device.
type playback struct {
	id         soundtable.PlaybackID
	player     *oto.Player
	closer     io.Closer // backing file for streamed sounds, nil otherwise
	volume     float64
	paused     bool
	stopped    bool
	fadeGen    int
	stopTimer  *time.Timer
	onComplete func()
}

// New opens the audio device and blocks until it is ready.
func New(opts Options) (*Engine, error) {
	if opts.SampleRate == 0 {
		opts.SampleRate = 44100
	}
	if opts.Channels == 0 {
		opts.Channels = 2
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   opts.SampleRate,
		ChannelCount: opts.Channels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   opts.BufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}
	<-ready

	log.Printf("Audio device ready: %dHz, %d channels", opts.SampleRate, opts.Channels)

	return &Engine{
		ctx:       ctx,
		format:    audio.Format{SampleRate: opts.SampleRate, Channels: opts.Channels},
		playbacks: make(map[soundtable.PlaybackID]*playback),
		global:    1.0,
	}, nil
}

// NewBufferedSound creates a sound that decodes fully on load.
func (e *Engine) NewBufferedSound() soundtable.Sound {
	return &sound{engine: e}
}

// NewStreamingSound creates a sound that decodes on demand per playback.
func (e *Engine) NewStreamingSound() soundtable.Sound {
	return &sound{engine: e, streaming: true}
}

// Play starts a playback of s and begins watching for its natural end.
func (e *Engine) Play(s soundtable.Sound, req soundtable.PlayRequest) (soundtable.PlaybackID, error) {
	snd, ok := s.(*sound)
	if !ok || snd.engine != e {
		return "", fmt.Errorf("sound was not created by this engine")
	}

	src, closer, err := snd.open()
	if err != nil {
		return "", fmt.Errorf("failed to open sound: %w", err)
	}

	pb := &playback{
		id:         soundtable.PlaybackID(uuid.NewString()),
		player:     e.ctx.NewPlayer(src),
		closer:     closer,
		volume:     req.Volume,
		onComplete: req.OnComplete,
	}

	e.mu.Lock()
	e.playbacks[pb.id] = pb
	pb.player.SetVolume(req.Volume * e.global)
	e.mu.Unlock()

	pb.player.Play()
	go e.watch(pb)

	return pb.id, nil
}

// watch polls the player until it drains, then finishes the playback.
// Polling follows the same ticker-loop shape as the fade ramp.
func (e *Engine) watch(pb *playback) {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		e.mu.Lock()
		if pb.stopped {
			e.mu.Unlock()
			return
		}
		if !pb.paused && !pb.player.IsPlaying() {
			e.mu.Unlock()
			e.finish(pb, true)
			return
		}
		e.mu.Unlock()
	}
}

// finish tears a playback down once. invoke controls whether the
// completion callback fires: true for natural ends and scheduled stops,
// false for explicit Stop.
func (e *Engine) finish(pb *playback, invoke bool) {
	e.mu.Lock()
	if pb.stopped {
		e.mu.Unlock()
		return
	}
	pb.stopped = true
	pb.fadeGen++
	if pb.stopTimer != nil {
		pb.stopTimer.Stop()
	}
	delete(e.playbacks, pb.id)
	e.mu.Unlock()

	_ = pb.player.Close()
	if pb.closer != nil {
		_ = pb.closer.Close()
	}

	if invoke && pb.onComplete != nil {
		pb.onComplete()
	}
}

// Stop ends a playback without invoking its completion callback.
func (e *Engine) Stop(id soundtable.PlaybackID) error {
	pb, err := e.lookup(id)
	if err != nil {
		return err
	}
	e.finish(pb, false)
	return nil
}

// SetPaused suspends or resumes a playback.
func (e *Engine) SetPaused(id soundtable.PlaybackID, paused bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	pb, ok := e.playbacks[id]
	if !ok {
		return fmt.Errorf("unknown playback %s", id)
	}
	pb.paused = paused
	if paused {
		pb.player.Pause()
	} else {
		pb.player.Play()
	}
	return nil
}

// Seek moves a playback to an absolute position. The oto player resets its
// internal buffer on seek, so the jump is audible immediately.
func (e *Engine) Seek(id soundtable.PlaybackID, seconds float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	pb, ok := e.playbacks[id]
	if !ok {
		return fmt.Errorf("unknown playback %s", id)
	}
	offset := e.format.Offset(time.Duration(seconds * float64(time.Second)))
	if _, err := pb.player.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("seek to %vs failed: %w", seconds, err)
	}
	return nil
}

// SetVolume sets a playback's own volume; the global gain stacks on top.
func (e *Engine) SetVolume(id soundtable.PlaybackID, volume float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	pb, ok := e.playbacks[id]
	if !ok {
		return fmt.Errorf("unknown playback %s", id)
	}
	pb.volume = volume
	pb.player.SetVolume(volume * e.global)
	return nil
}

// FadeVolume ramps a playback's volume to target. A new fade cancels any
// ramp still running on the same playback.
func (e *Engine) FadeVolume(id soundtable.PlaybackID, target, seconds float64) error {
	e.mu.Lock()
	pb, ok := e.playbacks[id]
	if !ok {
		e.mu.Unlock()
		return fmt.Errorf("unknown playback %s", id)
	}
	if seconds <= 0 {
		pb.volume = target
		pb.player.SetVolume(target * e.global)
		e.mu.Unlock()
		return nil
	}
	pb.fadeGen++
	gen := pb.fadeGen
	start := pb.volume
	e.mu.Unlock()

	go e.fade(pb, gen, start, target, time.Duration(seconds*float64(time.Second)))
	return nil
}

// fade steps the volume on a ticker until the ramp duration elapses.
func (e *Engine) fade(pb *playback, gen int, start, target float64, duration time.Duration) {
	began := time.Now()
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		v, done := rampValue(start, target, time.Since(began), duration)

		e.mu.Lock()
		if pb.stopped || pb.fadeGen != gen {
			e.mu.Unlock()
			return
		}
		pb.volume = v
		pb.player.SetVolume(v * e.global)
		e.mu.Unlock()

		if done {
			return
		}
	}
}

// ScheduleStop arms a timer that finishes the playback as a completion.
func (e *Engine) ScheduleStop(id soundtable.PlaybackID, seconds float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	pb, ok := e.playbacks[id]
	if !ok {
		return fmt.Errorf("unknown playback %s", id)
	}
	if pb.stopTimer != nil {
		pb.stopTimer.Stop()
	}
	pb.stopTimer = time.AfterFunc(time.Duration(seconds*float64(time.Second)), func() {
		e.finish(pb, true)
	})
	return nil
}

// SetGlobalVolume scales every playback's volume by a master gain.
func (e *Engine) SetGlobalVolume(volume float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.global = volume
	for _, pb := range e.playbacks {
		pb.player.SetVolume(pb.volume * volume)
	}
}

func (e *Engine) lookup(id soundtable.PlaybackID) (*playback, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pb, ok := e.playbacks[id]
	if !ok {
		return nil, fmt.Errorf("unknown playback %s", id)
	}
	return pb, nil
}

// rampValue interpolates a fade linearly and reports whether it finished.
func rampValue(start, target float64, elapsed, duration time.Duration) (float64, bool) {
	if duration <= 0 || elapsed >= duration {
		return target, true
	}
	frac := float64(elapsed) / float64(duration)
	return start + (target-start)*frac, false
}
