// ABOUTME: Channel-table playback API over a pluggable engine
// ABOUTME: Package documentation and usage example
// Package soundtable exposes the classic game-engine audio channel model: a
// fixed table of N numbered playback slots with per-channel volume bounds,
// reservation, fades, and pause/resume/stop/seek, on top of a pluggable
// playback engine.
//
// The Mixer owns only bookkeeping. Decoding, mixing, volume ramps, and
// device output all belong to the Engine implementation; this repository
// ships one built on oto (internal/otoengine), and tests supply fakes.
//
//	mixer, err := soundtable.New(soundtable.Config{Engine: engine})
//	if err != nil { ... }
//
//	err = mixer.LoadSound("jump", "assets/jump.wav")
//	ch, err := mixer.Play("jump", soundtable.PlayOptions{})
//	mixer.Fade(soundtable.FadeOptions{Channel: ch, Volume: 0.2, Duration: time.Second})
//	mixer.Stop(ch)
//
// Channel 0 is the sentinel meaning "auto-assign" on Play, "broadcast" on
// the transport controls, and "mean over all channels" on volume reads.
// All Mixer methods are safe for concurrent use.
package soundtable
